package mapdir

import (
	"os"
	"path/filepath"
)

// Writer writes map files to paths produced by a file pattern.
type Writer struct {
	filePattern string
}

// NewWriter creates a new Writer for the given file pattern (e.g. "/home/user/maps/{name}.map").
func NewWriter(filePattern string) (*Writer, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}
	return &Writer{filePattern}, nil
}

func (w *Writer) WriteMap(name string, mapData []byte) error {
	if err := validateName(name); err != nil {
		return err
	}

	filePath := formatPattern(w.filePattern, name)
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return err
	}

	return os.WriteFile(filePath, mapData, 0644)
}

func (w *Writer) Finalize() error {
	return nil
}
