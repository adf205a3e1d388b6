// Package mapdir provides API for reading and writing map files stored as
// individual files in a directory, with paths like "/maps/{name}.map".
package mapdir

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

const placeholder = "{name}"

var ErrInvalidPattern = errors.New("twmap: invalid file pattern")
var ErrInvalidName = errors.New("twmap: invalid map name")

func validatePattern(pattern string) error {
	if strings.Count(pattern, placeholder) != 1 {
		return fmt.Errorf("%w: expected exactly one %v placeholder", ErrInvalidPattern, placeholder)
	}
	return nil
}

func validateName(name string) error {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return nil
}

func formatPattern(pattern, name string) string {
	return strings.ReplaceAll(pattern, placeholder, name)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	prefix, suffix, _ := strings.Cut(pattern, placeholder)
	expr := "^" + regexp.QuoteMeta(prefix) + `(?P<name>[^/\\]+)` + regexp.QuoteMeta(suffix) + "$"
	pathRegexp, err := regexp.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPattern, err)
	}
	return pathRegexp, nil
}

// rootDir returns the deepest directory that contains every path the
// pattern can produce.
func rootDir(pattern string) string {
	path0 := formatPattern(pattern, "a")
	path1 := formatPattern(pattern, "b")
	for path0 != path1 {
		path0 = filepath.Dir(path0)
		path1 = filepath.Dir(path1)
	}
	return path0
}
