// Package tile provides tile grids of map layers and their byte encoding.
package tile

// Tile is one cell of a tile layer.
type Tile struct {
	ID       uint8
	Flags    Flags
	Skip     uint8
	Reserved uint8
}

// Flags packs tile orientation: bits 0-1 hold the rotation in steps of 90
// degrees, bit 2 flips horizontally and bit 3 flips vertically. Other bits
// are carried through unchanged.
type Flags uint8

const (
	FlagRotationMask Flags = 0b0011
	FlagFlipH        Flags = 0b0100
	FlagFlipV        Flags = 0b1000
)

func (f Flags) Rotation() int {
	return int(f & FlagRotationMask)
}

func (f Flags) WithRotation(steps int) Flags {
	return f&^FlagRotationMask | Flags(steps&3)
}

func (f Flags) FlipH() bool { return f&FlagFlipH != 0 }
func (f Flags) FlipV() bool { return f&FlagFlipV != 0 }

// Point addresses a cell, X grows to the right and Y downwards.
type Point struct {
	X int
	Y int
}

// Grid is a rectangular row-major tile grid.
type Grid struct {
	Width  int
	Height int
	Tiles  []Tile
}

func NewGrid(width, height int) *Grid {
	return &Grid{Width: width, Height: height, Tiles: make([]Tile, width*height)}
}

func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < g.Width && p.Y < g.Height
}

// At returns the tile at p, or the zero tile outside the grid.
func (g *Grid) At(p Point) Tile {
	if !g.Contains(p) {
		return Tile{}
	}
	return g.Tiles[p.Y*g.Width+p.X]
}

// Set stores t at p and reports whether p is inside the grid.
func (g *Grid) Set(p Point, t Tile) bool {
	if !g.Contains(p) {
		return false
	}
	g.Tiles[p.Y*g.Width+p.X] = t
	return true
}
