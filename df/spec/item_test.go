package spec_test

import (
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/stretchr/testify/require"
)

func TestTypeAndID(t *testing.T) {
	for _, tc := range []struct {
		TypeID, ID uint16
	}{
		{0, 0}, {5, 3}, {0xFFFF, 0xFFFF}, {0x8000, 1},
	} {
		typeID, id := spec.SplitTypeAndID(spec.TypeAndID(tc.TypeID, tc.ID))
		require.Equal(t, tc.TypeID, typeID)
		require.Equal(t, tc.ID, id)
	}
	require.Equal(t, int32(0x00050002), spec.TypeAndID(5, 2))
	require.Less(t, spec.TypeAndID(0x8000, 0), int32(0), "high type ids set the sign bit")
}

func TestItemRecord(t *testing.T) {
	payload := []byte{1, 0, 0, 0, 2, 0, 0, 0}
	w := spec.NewWriter(spec.ItemHeaderLength + len(payload))
	require.NoError(t, spec.WriteItem(w, 4, 7, payload))
	require.Equal(t, 0, w.Remaining())

	typeID, id, got, err := spec.ReadItem(spec.NewReader(w.Bytes()), len(w.Bytes()))
	require.NoError(t, err)
	require.Equal(t, uint16(4), typeID)
	require.Equal(t, uint16(7), id)
	require.Equal(t, payload, got)

	_, _, _, err = spec.ReadItem(spec.NewReader(w.Bytes()), len(w.Bytes())+4)
	require.ErrorIs(t, err, spec.ErrSizeMismatch)

	_, _, _, err = spec.ReadItem(spec.NewReader(w.Bytes()[:12]), len(w.Bytes()))
	require.ErrorIs(t, err, spec.ErrOutOfBounds)
}
