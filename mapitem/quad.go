package mapitem

import (
	"fmt"

	"github.com/eak1mov/go-twmap/df/spec"
)

// QuadLength is the byte size of one quad record.
const QuadLength = 38 * 4

// Point is a position in 22.10 fixed-point map units.
type Point struct {
	X, Y int32
}

// Quad is a textured quadrilateral. Points holds the four corners followed
// by the pivot.
type Quad struct {
	Points         [5]Point
	Colors         [4]Color
	TexCoords      [4]Point
	PosEnv         int32
	PosEnvOffset   int32
	ColorEnv       int32
	ColorEnvOffset int32
}

func EncodeQuads(quads []Quad) ([]byte, error) {
	w := spec.NewWriter(len(quads) * QuadLength)
	for _, q := range quads {
		values := make([]int32, 0, QuadLength/4)
		for _, p := range q.Points {
			values = append(values, p.X, p.Y)
		}
		for _, c := range q.Colors {
			values = append(values, c.R, c.G, c.B, c.A)
		}
		for _, p := range q.TexCoords {
			values = append(values, p.X, p.Y)
		}
		values = append(values, q.PosEnv, q.PosEnvOffset, q.ColorEnv, q.ColorEnvOffset)
		if err := spec.WriteInt32s(w, values); err != nil {
			return nil, err
		}
	}
	return w.Bytes(), nil
}

// DecodeQuads parses exactly n quad records.
func DecodeQuads(data []byte, n int) ([]Quad, error) {
	if n < 0 || len(data) != n*QuadLength {
		return nil, fmt.Errorf("%w: %d quads need %d bytes, got %d", spec.ErrSizeMismatch, n, n*QuadLength, len(data))
	}
	values, err := spec.ReadInt32s(spec.NewReader(data), len(data)/4)
	if err != nil {
		return nil, err
	}
	quads := make([]Quad, n)
	for i := range quads {
		v := values[i*QuadLength/4:]
		q := &quads[i]
		for j := range q.Points {
			q.Points[j] = Point{X: v[0], Y: v[1]}
			v = v[2:]
		}
		for j := range q.Colors {
			q.Colors[j] = Color{R: v[0], G: v[1], B: v[2], A: v[3]}
			v = v[4:]
		}
		for j := range q.TexCoords {
			q.TexCoords[j] = Point{X: v[0], Y: v[1]}
			v = v[2:]
		}
		q.PosEnv, q.PosEnvOffset, q.ColorEnv, q.ColorEnvOffset = v[0], v[1], v[2], v[3]
	}
	return quads, nil
}
