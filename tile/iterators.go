package tile

import "iter"

// All iterates over every cell in row-major order.
func (g *Grid) All() iter.Seq2[Point, Tile] {
	return func(yield func(Point, Tile) bool) {
		for i, t := range g.Tiles {
			if !yield(Point{X: i % g.Width, Y: i / g.Width}, t) {
				return
			}
		}
	}
}

// Used iterates over cells with a non-zero tile id.
func (g *Grid) Used() iter.Seq2[Point, Tile] {
	return func(yield func(Point, Tile) bool) {
		for p, t := range g.All() {
			if t.ID != 0 && !yield(p, t) {
				return
			}
		}
	}
}
