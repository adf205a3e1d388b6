package spec_test

import (
	"errors"
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	w := spec.NewWriter(12)
	require.NoError(t, w.WriteInt32(-1))
	require.NoError(t, w.WriteInt32(0x01020304))
	require.NoError(t, w.WriteBytes([]byte{9, 8, 7, 6}))
	require.Equal(t, 12, w.Position())
	require.Equal(t, 0, w.Remaining())
	require.Equal(t, []byte{0xff, 0xff, 0xff, 0xff, 4, 3, 2, 1, 9, 8, 7, 6}, w.Bytes())

	r := spec.NewReader(w.Bytes())
	v, err := r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(-1), v)
	v, err = r.ReadInt32()
	require.NoError(t, err)
	require.Equal(t, int32(0x01020304), v)
	b, err := r.ReadBytes(4)
	require.NoError(t, err)
	require.Equal(t, []byte{9, 8, 7, 6}, b)
	require.Equal(t, 0, r.Remaining())
}

func TestCursorOutOfBounds(t *testing.T) {
	r := spec.NewReader([]byte{1, 2, 3, 4, 5, 6})
	_, err := r.ReadInt32()
	require.NoError(t, err)

	_, err = r.ReadInt32()
	require.ErrorIs(t, err, spec.ErrOutOfBounds)
	var boundsErr *spec.BoundsError
	require.True(t, errors.As(err, &boundsErr))
	require.Equal(t, spec.BoundsError{Offset: 4, Want: 4, Have: 2}, *boundsErr)
	require.Equal(t, 4, r.Position(), "failed read must not advance")

	_, err = r.ReadBytes(3)
	require.ErrorIs(t, err, spec.ErrOutOfBounds)

	w := spec.NewWriter(3)
	require.ErrorIs(t, w.WriteInt32(1), spec.ErrOutOfBounds)
	require.ErrorIs(t, w.WriteBytes([]byte{1, 2, 3, 4}), spec.ErrOutOfBounds)
	require.NoError(t, w.WriteBytes([]byte{1, 2, 3}))
	require.Len(t, w.Bytes(), 3)
}
