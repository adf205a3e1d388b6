package mapdir_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-twmap/mapdir"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	rootDir := t.TempDir()
	pattern := filepath.Join(rootDir, "maps", "{name}.map")

	maps := map[string][]byte{
		"ctf1":          []byte("map ctf1"),
		"dm1":           []byte("map dm1"),
		"Tutorial v1.2": []byte("map tutorial"),
	}

	writer, err := mapdir.NewWriter(pattern)
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}

	for name, mapData := range maps {
		if err := writer.WriteMap(name, mapData); err != nil {
			t.Errorf("WriteMap(%v) failed: %v", name, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}

	// Not matched by the pattern.
	require.NoError(t, os.WriteFile(filepath.Join(rootDir, "maps", "readme.txt"), []byte("x"), 0644))

	reader, err := mapdir.NewReader(pattern)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}

	visited := make(map[string][]byte)
	err = reader.VisitMaps(func(name string, mapData []byte) error {
		visited[name] = mapData
		return nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff(maps, visited); diff != "" {
		t.Errorf("VisitMaps mismatch (-want +got):\n%v", diff)
	}

	for name, want := range maps {
		got, err := reader.ReadMap(name)
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}

	mapData, err := reader.ReadMap("missing")
	require.NoError(t, err)
	require.Empty(t, mapData)
}

func TestInvalidPattern(t *testing.T) {
	for _, pattern := range []string{"maps/x.map", "{name}/{name}.map"} {
		_, err := mapdir.NewWriter(pattern)
		require.ErrorIs(t, err, mapdir.ErrInvalidPattern, pattern)
		_, err = mapdir.NewReader(pattern)
		require.ErrorIs(t, err, mapdir.ErrInvalidPattern, pattern)
	}
}

func TestInvalidName(t *testing.T) {
	writer, err := mapdir.NewWriter(filepath.Join(t.TempDir(), "{name}.map"))
	require.NoError(t, err)

	for _, name := range []string{"", "..", "../escape", `a\b`} {
		require.ErrorIs(t, writer.WriteMap(name, []byte("x")), mapdir.ErrInvalidName, name)
	}
}
