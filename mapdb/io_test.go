package mapdb_test

import (
	"path/filepath"
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/eak1mov/go-twmap/internal"
	"github.com/eak1mov/go-twmap/mapdb"
	"github.com/google/go-cmp/cmp"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

func TestWriterReader(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "maps.sqlite")
	metadata := map[string]string{"name": "test maps"}

	writer, err := mapdb.NewWriter(filePath, mapdb.WithMetadata(metadata))
	if err != nil {
		t.Fatalf("NewWriter failed: %v", err)
	}
	defer writer.Close()

	maps := make(map[string][]byte)
	for name, mapData := range internal.TestdataCases(t) {
		maps[name] = mapData
		if err := writer.WriteMap(name, mapData); err != nil {
			t.Fatalf("WriteMap(%v) failed: %v", name, err)
		}
	}

	if err := writer.Finalize(); err != nil {
		t.Fatalf("Finalize failed: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	reader, err := mapdb.NewReader(filePath)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()

	readerMetadata, err := reader.ReadMetadata()
	require.NoError(t, err)
	require.Equal(t, metadata, readerMetadata)

	visited := make(map[string][]byte)
	err = reader.VisitMaps(func(name string, mapData []byte) error {
		visited[name] = mapData
		return nil
	})
	require.NoError(t, err)
	if diff := cmp.Diff(maps, visited); diff != "" {
		t.Errorf("VisitMaps mismatch (-want +got):\n%v", diff)
	}

	entries, err := reader.ListMaps()
	require.NoError(t, err)
	require.Len(t, entries, len(maps))
	for _, entry := range entries {
		require.Len(t, maps[entry.Name], entry.Size)
		require.Contains(t, []int32{spec.Version3, spec.Version4}, entry.Version)
	}

	for name, want := range maps {
		got, err := reader.ReadMap(name)
		require.NoError(t, err)
		require.Equal(t, want, got, name)
	}

	missing, err := reader.ReadMap("missing.map")
	require.NoError(t, err)
	require.Empty(t, missing)
}

func TestWriteInvalidMap(t *testing.T) {
	writer, err := mapdb.NewWriter(filepath.Join(t.TempDir(), "maps.sqlite"))
	require.NoError(t, err)
	defer writer.Close()

	err = writer.WriteMap("broken.map", []byte("not a map"))
	require.ErrorIs(t, err, spec.ErrOutOfBounds)
}
