package spec

import (
	"errors"
	"fmt"
)

var ErrInvalidItemTable = errors.New("invalid item table")

// ItemType is one entry of the item type directory: Count items of TypeID
// starting at item index Start.
type ItemType struct {
	TypeID int32
	Start  int32
	Count  int32
}

const ItemTypeLength = 12

func ReadInt32s(r *Reader, n int) ([]int32, error) {
	b, err := r.ReadBytes(n * 4)
	if err != nil {
		return nil, err
	}
	sub := NewReader(b)
	values := make([]int32, n)
	for i := range values {
		values[i], _ = sub.ReadInt32()
	}
	return values, nil
}

func WriteInt32s(w *Writer, values []int32) error {
	for _, v := range values {
		if err := w.WriteInt32(v); err != nil {
			return err
		}
	}
	return nil
}

func ReadItemTypes(r *Reader, n int) ([]ItemType, error) {
	values, err := ReadInt32s(r, n*3)
	if err != nil {
		return nil, err
	}
	types := make([]ItemType, n)
	for i := range types {
		types[i] = ItemType{TypeID: values[i*3], Start: values[i*3+1], Count: values[i*3+2]}
	}
	return types, nil
}

func WriteItemTypes(w *Writer, types []ItemType) error {
	for _, t := range types {
		if err := WriteInt32s(w, []int32{t.TypeID, t.Start, t.Count}); err != nil {
			return err
		}
	}
	return nil
}

// BuildItemTypes derives the type directory from item type ids that are
// already grouped into runs of ascending type id.
func BuildItemTypes(typeIDs []uint16) ([]ItemType, error) {
	types := make([]ItemType, 0)
	for i, typeID := range typeIDs {
		n := len(types)
		if n > 0 && types[n-1].TypeID == int32(typeID) {
			types[n-1].Count++
			continue
		}
		if n > 0 && types[n-1].TypeID > int32(typeID) {
			return nil, fmt.Errorf("%w: item %d has type %d after type %d", ErrInvalidItemTable, i, typeID, types[n-1].TypeID)
		}
		types = append(types, ItemType{TypeID: int32(typeID), Start: int32(i), Count: 1})
	}
	return types, nil
}

// CheckItemTypes verifies that types are sorted by type id and partition
// numItems items into contiguous runs.
func CheckItemTypes(types []ItemType, numItems int) error {
	next := int32(0)
	for i, t := range types {
		if t.TypeID < 0 || t.TypeID > 0xFFFF {
			return fmt.Errorf("%w: type id %d out of range", ErrInvalidItemTable, t.TypeID)
		}
		if i > 0 && t.TypeID <= types[i-1].TypeID {
			return fmt.Errorf("%w: type %d follows type %d", ErrInvalidItemTable, t.TypeID, types[i-1].TypeID)
		}
		if t.Start != next || t.Count < 0 {
			return fmt.Errorf("%w: type %d run [%d, +%d) is not contiguous", ErrInvalidItemTable, t.TypeID, t.Start, t.Count)
		}
		next += t.Count
	}
	if int(next) != numItems {
		return fmt.Errorf("%w: type runs cover %d items, header has %d", ErrInvalidItemTable, next, numItems)
	}
	return nil
}

// Offsets returns the running sum of lengths starting at 0.
func Offsets(lengths []int) []int32 {
	offsets := make([]int32, len(lengths))
	offset := 0
	for i, length := range lengths {
		offsets[i] = int32(offset)
		offset += length
	}
	return offsets
}

// Lengths is the inverse of Offsets for an area of areaSize bytes. It fails
// unless offsets start at 0, never decrease and stay within the area.
func Lengths(offsets []int32, areaSize int) ([]int, error) {
	lengths := make([]int, len(offsets))
	for i, offset := range offsets {
		end := int32(areaSize)
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if (i == 0 && offset != 0) || offset < 0 || end < offset || int(end) > areaSize {
			return nil, fmt.Errorf("%w: offset %d of entry %d in area of %d bytes", ErrSizeMismatch, offset, i, areaSize)
		}
		lengths[i] = int(end - offset)
	}
	return lengths, nil
}
