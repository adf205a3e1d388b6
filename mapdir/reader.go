package mapdir

import (
	"os"
	"path/filepath"
	"regexp"
)

// Reader reads map files matching a file pattern.
type Reader struct {
	filePattern string
	rootDir     string
	pathRegexp  *regexp.Regexp
}

// NewReader creates a new Reader for the given file pattern (e.g. "/home/user/maps/{name}.map").
func NewReader(filePattern string) (*Reader, error) {
	if err := validatePattern(filePattern); err != nil {
		return nil, err
	}

	pathRegexp, err := compilePattern(filePattern)
	if err != nil {
		return nil, err
	}

	return &Reader{filePattern, rootDir(filePattern), pathRegexp}, nil
}

// ReadMap returns the content of the named map file.
// If there is no such file, it returns an empty slice with no error.
func (r *Reader) ReadMap(name string) ([]byte, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}

	mapData, err := os.ReadFile(formatPattern(r.filePattern, name))
	if os.IsNotExist(err) {
		return make([]byte, 0), nil
	}
	if err != nil {
		return nil, err
	}
	return mapData, nil
}

// VisitMaps calls visitor for every file under the pattern's root directory
// that matches the pattern. Other files are skipped.
func (r *Reader) VisitMaps(visitor func(string, []byte) error) error {
	return filepath.WalkDir(r.rootDir, func(filePath string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		matches := r.pathRegexp.FindStringSubmatch(filePath)
		if matches == nil {
			return nil
		}

		mapData, err := os.ReadFile(filePath)
		if err != nil {
			return err
		}

		return visitor(matches[r.pathRegexp.SubexpIndex("name")], mapData)
	})
}
