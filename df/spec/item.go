package spec

import "fmt"

const ItemHeaderLength = 8

func TypeAndID(typeID, id uint16) int32 {
	return int32(uint32(typeID)<<16 | uint32(id))
}

func SplitTypeAndID(typeAndID int32) (typeID, id uint16) {
	return uint16(uint32(typeAndID) >> 16), uint16(uint32(typeAndID) & 0xFFFF)
}

// ReadItem reads one item record spanning exactly recordLength bytes.
func ReadItem(r *Reader, recordLength int) (typeID, id uint16, payload []byte, err error) {
	start := r.Position()
	typeAndID, err := r.ReadInt32()
	if err != nil {
		return 0, 0, nil, err
	}
	size, err := r.ReadInt32()
	if err != nil {
		return 0, 0, nil, err
	}
	if int(size) != recordLength-ItemHeaderLength {
		return 0, 0, nil, fmt.Errorf("%w: item at offset %d declares %d bytes, table allows %d",
			ErrSizeMismatch, start, size, recordLength-ItemHeaderLength)
	}
	payload, err = r.ReadBytes(int(size))
	if err != nil {
		return 0, 0, nil, err
	}
	typeID, id = SplitTypeAndID(typeAndID)
	return typeID, id, payload, nil
}

func WriteItem(w *Writer, typeID, id uint16, payload []byte) error {
	if err := w.WriteInt32(TypeAndID(typeID, id)); err != nil {
		return err
	}
	if err := w.WriteInt32(int32(len(payload))); err != nil {
		return err
	}
	return w.WriteBytes(payload)
}
