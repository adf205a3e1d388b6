package spec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"
)

const DefaultCompressionLevel = zlib.DefaultCompression

func Compress(data []byte, level int) ([]byte, error) {
	var buffer bytes.Buffer
	writer, err := zlib.NewWriterLevel(&buffer, level)
	if err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	_, err = writer.Write(data)
	if err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	err = writer.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to compress: %w", err)
	}

	return buffer.Bytes(), nil
}

// Decompress inflates a data block. A negative size means the uncompressed
// length is unknown and whatever the stream yields is accepted.
func Decompress(data []byte, size int) ([]byte, error) {
	if len(data) == 0 && size <= 0 {
		return []byte{}, nil
	}

	reader, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	defer reader.Close()

	if size < 0 {
		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decompress: %w", err)
		}
		return result, nil
	}

	// one extra byte detects streams longer than declared
	var buffer bytes.Buffer
	n, err := io.CopyN(&buffer, reader, int64(size)+1)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to decompress: %w", err)
	}
	if n != int64(size) {
		return nil, fmt.Errorf("%w: data block inflated %d bytes, declared %d", ErrSizeMismatch, n, size)
	}
	return buffer.Bytes(), nil
}
