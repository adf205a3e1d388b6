package mapitem

import (
	"bytes"
	"fmt"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// StringEncoding selects how strings referenced from Info and Image items
// are stored in data blocks. Both forms are null-terminated.
type StringEncoding int

const (
	UTF16LE StringEncoding = iota
	UTF8
)

func (e StringEncoding) String() string {
	if e == UTF8 {
		return "utf-8"
	}
	return "utf-16le"
}

func (e StringEncoding) codec() encoding.Encoding {
	if e == UTF8 {
		return unicode.UTF8
	}
	return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
}

func (e StringEncoding) terminator() []byte {
	if e == UTF8 {
		return []byte{0}
	}
	return []byte{0, 0}
}

func EncodeString(s string, e StringEncoding) ([]byte, error) {
	data, err := e.codec().NewEncoder().Bytes([]byte(s))
	if err != nil {
		return nil, fmt.Errorf("failed to encode %v string: %w", e, err)
	}
	return append(data, e.terminator()...), nil
}

// DecodeString reads a string up to its terminator; data without a
// terminator is taken whole.
func DecodeString(data []byte, e StringEncoding) (string, error) {
	term := e.terminator()
	for i := 0; i+len(term) <= len(data); i += len(term) {
		if bytes.Equal(data[i:i+len(term)], term) {
			data = data[:i]
			break
		}
	}
	if len(data)%len(term) != 0 {
		return "", fmt.Errorf("%w: odd length %v string", ErrInvalidPayload, e)
	}
	s, err := e.codec().NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode %v string: %w", e, err)
	}
	return string(s), nil
}

// EncodeStrings concatenates null-terminated strings.
func EncodeStrings(list []string, e StringEncoding) ([]byte, error) {
	data := make([]byte, 0)
	for _, s := range list {
		b, err := EncodeString(s, e)
		if err != nil {
			return nil, err
		}
		data = append(data, b...)
	}
	return data, nil
}

func DecodeStrings(data []byte, e StringEncoding) ([]string, error) {
	term := e.terminator()
	list := make([]string, 0)
	start := 0
	for i := 0; i+len(term) <= len(data); i += len(term) {
		if !bytes.Equal(data[i:i+len(term)], term) {
			continue
		}
		s, err := DecodeString(data[start:i], e)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
		start = i + len(term)
	}
	if start < len(data) {
		s, err := DecodeString(data[start:], e)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, nil
}
