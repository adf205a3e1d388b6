package spec

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

type Header struct {
	Signature    [4]byte
	Version      int32
	Size         int32 // file length minus the first 16 bytes
	SwapLen      int32 // Size minus DataSize
	NumItemTypes int32
	NumItems     int32
	NumData      int32
	ItemSize     int32
	DataSize     int32
}

const (
	HeaderLength = 36

	// Size counts from the end of the Size field itself.
	headerSizeBias = 16

	Version3 int32 = 3
	Version4 int32 = 4

	// MaxFileLength is the largest file whose Size still fits the header.
	MaxFileLength int64 = math.MaxInt32 + headerSizeBias
)

var (
	Signature         = [4]byte{'D', 'A', 'T', 'A'}
	signatureReversed = [4]byte{'A', 'T', 'A', 'D'}
)

func SupportedVersion(version int32) bool {
	return version == Version3 || version == Version4
}

// HasDataSizes reports whether the version stores uncompressed data block sizes.
func HasDataSizes(version int32) bool {
	return version >= Version4
}

func SerializeHeader(header *Header) []byte {
	var buffer bytes.Buffer
	writer := bufio.NewWriter(&buffer)
	binary.Write(writer, binary.LittleEndian, header)
	writer.Flush()
	return buffer.Bytes()
}

func DeserializeHeader(buffer []byte) (*Header, error) {
	if len(buffer) < HeaderLength {
		return nil, &BoundsError{Offset: 0, Want: HeaderLength, Have: len(buffer)}
	}
	header := Header{}
	err := binary.Read(bytes.NewReader(buffer[:HeaderLength]), binary.LittleEndian, &header)
	if err != nil {
		return nil, err
	}
	if header.Signature != Signature && header.Signature != signatureReversed {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSignature, header.Signature[:])
	}
	if !SupportedVersion(header.Version) {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, header.Version)
	}
	for _, v := range []int32{
		header.Size, header.SwapLen,
		header.NumItemTypes, header.NumItems, header.NumData,
		header.ItemSize, header.DataSize,
	} {
		if v < 0 {
			return nil, fmt.Errorf("%w: negative header field %d", ErrSizeMismatch, v)
		}
	}
	return &header, nil
}

// Layout holds absolute offsets of the datafile sections derived from a header.
type Layout struct {
	ItemTypes   int
	ItemOffsets int
	DataOffsets int
	DataSizes   int // equals Items when the version has no size table
	Items       int
	Data        int
	End         int
}

func (h *Header) Layout() Layout {
	return PlanLayout(h.Version, int(h.NumItemTypes), int(h.NumItems), int(h.NumData), int(h.ItemSize), int(h.DataSize))
}

// PlanLayout computes section offsets from counts and area sizes before
// they are stored in a header.
func PlanLayout(version int32, numItemTypes, numItems, numData, itemSize, dataSize int) Layout {
	l := Layout{ItemTypes: HeaderLength}
	l.ItemOffsets = l.ItemTypes + numItemTypes*ItemTypeLength
	l.DataOffsets = l.ItemOffsets + numItems*4
	l.DataSizes = l.DataOffsets + numData*4
	l.Items = l.DataSizes
	if HasDataSizes(version) {
		l.Items += numData * 4
	}
	l.Data = l.Items + itemSize
	l.End = l.Data + dataSize
	return l
}

// Check fails with ErrSizeMismatch when the file is too large for the
// header's int32 fields.
func (l Layout) Check() error {
	if int64(l.End) > MaxFileLength {
		return fmt.Errorf("%w: file of %d bytes exceeds %d", ErrSizeMismatch, l.End, MaxFileLength)
	}
	return nil
}

// Finish fills Size and SwapLen from the counts and area sizes already set.
func (h *Header) Finish() {
	h.Size = int32(h.Layout().End - headerSizeBias)
	h.SwapLen = h.Size - h.DataSize
}

// Check verifies that Size and SwapLen agree with the counts and area sizes.
func (h *Header) Check() error {
	want := *h
	want.Finish()
	if h.Size != want.Size {
		return fmt.Errorf("%w: header size %d, computed %d", ErrSizeMismatch, h.Size, want.Size)
	}
	if h.SwapLen != want.SwapLen {
		return fmt.Errorf("%w: header swaplen %d, computed %d", ErrSizeMismatch, h.SwapLen, want.SwapLen)
	}
	return nil
}
