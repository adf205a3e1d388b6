package spec_test

import (
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestBuildItemTypes(t *testing.T) {
	types, err := spec.BuildItemTypes([]uint16{0, 1, 2, 4, 5, 5, 6})
	require.NoError(t, err)
	want := []spec.ItemType{
		{TypeID: 0, Start: 0, Count: 1},
		{TypeID: 1, Start: 1, Count: 1},
		{TypeID: 2, Start: 2, Count: 1},
		{TypeID: 4, Start: 3, Count: 1},
		{TypeID: 5, Start: 4, Count: 2},
		{TypeID: 6, Start: 6, Count: 1},
	}
	if diff := cmp.Diff(want, types); diff != "" {
		t.Errorf("BuildItemTypes mismatch (-want +got):\n%v", diff)
	}
	require.NoError(t, spec.CheckItemTypes(types, 7))

	empty, err := spec.BuildItemTypes(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
	require.NoError(t, spec.CheckItemTypes(empty, 0))
}

func TestBuildItemTypesUngrouped(t *testing.T) {
	_, err := spec.BuildItemTypes([]uint16{0, 5, 4})
	require.ErrorIs(t, err, spec.ErrInvalidItemTable)
	_, err = spec.BuildItemTypes([]uint16{5, 4, 5})
	require.ErrorIs(t, err, spec.ErrInvalidItemTable)
}

func TestCheckItemTypes(t *testing.T) {
	for _, tc := range []struct {
		Name  string
		Types []spec.ItemType
		Items int
	}{
		{Name: "Unsorted", Types: []spec.ItemType{{5, 0, 1}, {4, 1, 1}}, Items: 2},
		{Name: "Duplicate", Types: []spec.ItemType{{4, 0, 1}, {4, 1, 1}}, Items: 2},
		{Name: "Gap", Types: []spec.ItemType{{1, 0, 1}, {2, 2, 1}}, Items: 3},
		{Name: "Overlap", Types: []spec.ItemType{{1, 0, 2}, {2, 1, 1}}, Items: 3},
		{Name: "ShortSum", Types: []spec.ItemType{{1, 0, 2}}, Items: 3},
		{Name: "TypeRange", Types: []spec.ItemType{{0x10000, 0, 1}}, Items: 1},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			require.ErrorIs(t, spec.CheckItemTypes(tc.Types, tc.Items), spec.ErrInvalidItemTable)
		})
	}
}

func TestItemTypesSerializer(t *testing.T) {
	types := []spec.ItemType{{0, 0, 1}, {5, 1, 10}}
	w := spec.NewWriter(len(types) * spec.ItemTypeLength)
	require.NoError(t, spec.WriteItemTypes(w, types))
	got, err := spec.ReadItemTypes(spec.NewReader(w.Bytes()), len(types))
	require.NoError(t, err)
	require.Equal(t, types, got)

	_, err = spec.ReadItemTypes(spec.NewReader(w.Bytes()[:20]), len(types))
	require.ErrorIs(t, err, spec.ErrOutOfBounds)
}

func TestOffsets(t *testing.T) {
	lengths := []int{8, 20, 0, 12}
	offsets := spec.Offsets(lengths)
	require.Equal(t, []int32{0, 8, 28, 28}, offsets)

	got, err := spec.Lengths(offsets, 40)
	require.NoError(t, err)
	require.Equal(t, lengths, got)

	_, err = spec.Lengths(offsets, 27)
	require.ErrorIs(t, err, spec.ErrSizeMismatch)
	_, err = spec.Lengths([]int32{4, 8}, 12)
	require.ErrorIs(t, err, spec.ErrSizeMismatch)
	_, err = spec.Lengths([]int32{0, 8, 4}, 12)
	require.ErrorIs(t, err, spec.ErrSizeMismatch)
}
