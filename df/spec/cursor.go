package spec

import "encoding/binary"

// Reader is a sequential little-endian cursor over a byte slice.
type Reader struct {
	buf []byte
	pos int
}

func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) Position() int  { return r.pos }
func (r *Reader) Remaining() int { return len(r.buf) - r.pos }

func (r *Reader) ReadInt32() (int32, error) {
	b, err := r.ReadBytes(4)
	if err != nil {
		return 0, err
	}
	return int32(binary.LittleEndian.Uint32(b)), nil
}

// ReadBytes returns the next n bytes without copying.
func (r *Reader) ReadBytes(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, &BoundsError{Offset: r.pos, Want: n, Have: r.Remaining()}
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Writer fills a buffer of fixed size; it never grows.
type Writer struct {
	buf []byte
	pos int
}

func NewWriter(size int) *Writer {
	return &Writer{buf: make([]byte, size)}
}

func (w *Writer) Position() int  { return w.pos }
func (w *Writer) Remaining() int { return len(w.buf) - w.pos }

func (w *Writer) WriteInt32(v int32) error {
	if w.Remaining() < 4 {
		return &BoundsError{Offset: w.pos, Want: 4, Have: w.Remaining()}
	}
	binary.LittleEndian.PutUint32(w.buf[w.pos:], uint32(v))
	w.pos += 4
	return nil
}

func (w *Writer) WriteBytes(b []byte) error {
	if w.Remaining() < len(b) {
		return &BoundsError{Offset: w.pos, Want: len(b), Have: w.Remaining()}
	}
	w.pos += copy(w.buf[w.pos:], b)
	return nil
}

// Bytes returns the underlying buffer, including any unwritten tail.
func (w *Writer) Bytes() []byte {
	return w.buf
}
