package tile

import (
	"fmt"

	"github.com/eak1mov/go-twmap/df/spec"
)

const TileLength = 4

func EncodedLength(width, height int) int {
	return width * height * TileLength
}

// Encode serializes the grid row-major as (id, flags, skip, reserved) per cell.
func Encode(g *Grid) []byte {
	buffer := make([]byte, 0, EncodedLength(g.Width, g.Height))
	for _, t := range g.Tiles {
		buffer = append(buffer, t.ID, uint8(t.Flags), t.Skip, t.Reserved)
	}
	return buffer
}

func Decode(width, height int, data []byte) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", spec.ErrSizeMismatch, width, height)
	}
	if got, want := len(data), EncodedLength(width, height); got != want {
		return nil, fmt.Errorf("%w: %dx%d grid needs %d bytes, got %d", spec.ErrSizeMismatch, width, height, want, got)
	}
	g := NewGrid(width, height)
	for i := range g.Tiles {
		b := data[i*TileLength : (i+1)*TileLength]
		g.Tiles[i] = Tile{ID: b[0], Flags: Flags(b[1]), Skip: b[2], Reserved: b[3]}
	}
	return g, nil
}

// DecodeSkip expands a grid whose stored tiles are each followed by Skip
// repeats of themselves. Expanded tiles have Skip cleared.
func DecodeSkip(width, height int, data []byte) (*Grid, error) {
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: grid %dx%d", spec.ErrSizeMismatch, width, height)
	}
	if len(data)%TileLength != 0 {
		return nil, fmt.Errorf("%w: %d bytes is not a whole number of tiles", spec.ErrSizeMismatch, len(data))
	}
	g := NewGrid(width, height)
	i := 0
	for offset := 0; offset < len(data); offset += TileLength {
		b := data[offset : offset+TileLength]
		t := Tile{ID: b[0], Flags: Flags(b[1]), Reserved: b[3]}
		n := 1 + int(b[2])
		if i+n > len(g.Tiles) {
			return nil, fmt.Errorf("%w: runs exceed %dx%d grid", spec.ErrSizeMismatch, width, height)
		}
		for range n {
			g.Tiles[i] = t
			i++
		}
	}
	if i != len(g.Tiles) {
		return nil, fmt.Errorf("%w: runs fill %d of %d tiles", spec.ErrSizeMismatch, i, len(g.Tiles))
	}
	return g, nil
}
