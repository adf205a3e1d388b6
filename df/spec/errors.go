package spec

import (
	"errors"
	"fmt"
)

var ErrInvalidSignature = errors.New("invalid datafile signature")
var ErrUnsupportedVersion = errors.New("unsupported datafile version")
var ErrOutOfBounds = errors.New("out of bounds")
var ErrSizeMismatch = errors.New("size mismatch")

// BoundsError reports an access of Want bytes at Offset when only Have bytes remain.
type BoundsError struct {
	Offset int
	Want   int
	Have   int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%v: need %d bytes at offset %d, have %d", ErrOutOfBounds, e.Want, e.Offset, e.Have)
}

func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}
