package mapitem

import (
	"fmt"

	"github.com/eak1mov/go-twmap/df/spec"
)

const (
	EnvelopeLength         = 13
	EnvPointLength         = 6
	BezierEnvPointLength   = 22
	CurrentEnvelopeVersion = 2
	BezierEnvelopeVersion  = 3

	envelopeNameWords = 8
)

// Envelope animates a position (3 channels) or a color (4 channels) over
// NumPoints points starting at StartPoint in the envpoints item.
type Envelope struct {
	Version      int32
	Channels     int32
	StartPoint   int32
	NumPoints    int32
	Name         string
	Synchronized bool
}

func (p *Envelope) ItemType() Type { return TypeEnvelope }

func (p *Envelope) words() []int32 {
	w := []int32{p.Version, p.Channels, p.StartPoint, p.NumPoints}
	w = append(w, PackName(p.Name, envelopeNameWords)...)
	return append(w, boolWord(p.Synchronized))
}

func decodeEnvelope(w words) (*Envelope, error) {
	if err := w.need(4); err != nil {
		return nil, err
	}
	p := &Envelope{
		Version:      w[0],
		Channels:     w[1],
		StartPoint:   w[2],
		NumPoints:    w[3],
		Synchronized: w.get(12, 0) != 0,
	}
	if len(w) >= 12 {
		p.Name = UnpackName(w[4:12])
	}
	return p, nil
}

type Curve int32

const (
	CurveStep Curve = iota
	CurveLinear
	CurveSlow
	CurveFast
	CurveSmooth
	CurveBezier
)

// Tangents are the bezier handles of a point per channel, as offsets in time
// (DX) and value (DY).
type Tangents struct {
	InDX, InDY   [4]int32
	OutDX, OutDY [4]int32
}

func (t *Tangents) words() []int32 {
	w := make([]int32, 0, BezierEnvPointLength-EnvPointLength)
	for _, v := range []*[4]int32{&t.InDX, &t.InDY, &t.OutDX, &t.OutDY} {
		w = append(w, v[:]...)
	}
	return w
}

// EnvPoint is a keyframe; Time is in milliseconds and Values are 22.10
// fixed-point numbers. Tangents are only stored in the bezier layout.
type EnvPoint struct {
	Time     int32
	Curve    Curve
	Values   [4]int32
	Tangents Tangents
}

// Envpoints holds the keyframes of all envelopes. It is the last item of a
// map and has an empty payload when the map has no envelopes.
type Envpoints struct {
	Points []EnvPoint

	// Bezier selects the 22-word point layout used with envelope version 3.
	Bezier bool
}

func (p *Envpoints) ItemType() Type { return TypeEnvpoints }

func (p *Envpoints) PointLength() int {
	return PointLength(p.Bezier)
}

// PointLength returns the number of words per point in either layout.
func PointLength(bezier bool) int {
	if bezier {
		return BezierEnvPointLength
	}
	return EnvPointLength
}

func (p *Envpoints) words() []int32 {
	w := make([]int32, 0, len(p.Points)*p.PointLength())
	for _, pt := range p.Points {
		w = append(w, pt.Time, int32(pt.Curve))
		w = append(w, pt.Values[:]...)
		if p.Bezier {
			w = append(w, pt.Tangents.words()...)
		}
	}
	return w
}

// decodeEnvpoints guesses the layout from the payload length alone, preferring
// the plain layout when both fit. DecodeEnvpoints takes the layout explicitly.
func decodeEnvpoints(w words) (*Envpoints, error) {
	bezier := len(w)%EnvPointLength != 0 && len(w)%BezierEnvPointLength == 0
	return decodeEnvpointWords(w, bezier)
}

// DecodeEnvpoints parses an envpoints payload in the given point layout.
func DecodeEnvpoints(data []byte, bezier bool) (*Envpoints, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: envpoints payload of %d bytes", ErrInvalidPayload, len(data))
	}
	w, err := spec.ReadInt32s(spec.NewReader(data), len(data)/4)
	if err != nil {
		return nil, err
	}
	return decodeEnvpointWords(w, bezier)
}

func decodeEnvpointWords(w words, bezier bool) (*Envpoints, error) {
	n := PointLength(bezier)
	if len(w)%n != 0 {
		return nil, fmt.Errorf("%w: %d words is not a whole number of %d-word points", ErrInvalidPayload, len(w), n)
	}
	p := &Envpoints{Points: make([]EnvPoint, len(w)/n), Bezier: bezier}
	for i := range p.Points {
		pw := w[i*n:]
		pt := EnvPoint{
			Time:   pw[0],
			Curve:  Curve(pw[1]),
			Values: [4]int32{pw[2], pw[3], pw[4], pw[5]},
		}
		if bezier {
			t := &pt.Tangents
			copy(t.InDX[:], pw[6:10])
			copy(t.InDY[:], pw[10:14])
			copy(t.OutDX[:], pw[14:18])
			copy(t.OutDY[:], pw[18:22])
		}
		p.Points[i] = pt
	}
	return p, nil
}
