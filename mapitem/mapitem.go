// Package mapitem encodes and decodes the payloads of map items.
//
// Every payload is a little-endian int32 array. Bulk content such as strings,
// pixels, tiles and quads is stored in data blocks and referenced by index;
// NoData marks an absent reference.
package mapitem

import (
	"errors"
	"fmt"

	"github.com/eak1mov/go-twmap/df/spec"
)

type Type uint16

const (
	TypeVersion   Type = 0
	TypeInfo      Type = 1
	TypeImage     Type = 2
	TypeEnvelope  Type = 3
	TypeGroup     Type = 4
	TypeLayer     Type = 5
	TypeEnvpoints Type = 6

	// TypeExtendedIndex items map an extended item type, stored as their ID,
	// to its UUID.
	TypeExtendedIndex Type = 0xFFFF
)

func (t Type) String() string {
	switch t {
	case TypeVersion:
		return "version"
	case TypeInfo:
		return "info"
	case TypeImage:
		return "image"
	case TypeEnvelope:
		return "envelope"
	case TypeGroup:
		return "group"
	case TypeLayer:
		return "layer"
	case TypeEnvpoints:
		return "envpoints"
	case TypeExtendedIndex:
		return "extended"
	}
	return fmt.Sprintf("type(%d)", uint16(t))
}

const NoData int32 = -1

var ErrInvalidPayload = errors.New("invalid item payload")

// Payload is one of *Version, *Info, *Image, *Envelope, *Group, *TileLayer,
// *QuadLayer, *Envpoints or *Unknown.
type Payload interface {
	ItemType() Type
	words() []int32
}

// Encode serializes p. The result length always equals the fixed layout size
// of the payload type; a mismatch is reported as spec.ErrSizeMismatch before
// any bytes are returned.
func Encode(p Payload) ([]byte, error) {
	var want int
	switch p := p.(type) {
	case *Version:
		want = VersionLength
	case *Info:
		want = InfoLength
	case *Image:
		want = ImageLength
	case *Envelope:
		want = EnvelopeLength
	case *Group:
		want = GroupLength
	case *TileLayer:
		want = TileLayerLength
	case *QuadLayer:
		want = QuadLayerLength
	case *Envpoints:
		want = len(p.Points) * p.PointLength()
	case *Unknown:
		return p.Data, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrInvalidPayload, p)
	}

	values := p.words()
	if len(values) != want {
		return nil, fmt.Errorf("%w: %v payload has %d words, layout has %d",
			spec.ErrSizeMismatch, p.ItemType(), len(values), want)
	}
	w := spec.NewWriter(want * 4)
	if err := spec.WriteInt32s(w, values); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Decode parses the payload of an item of type typeID. Unrecognized types and
// layer kinds decode to *Unknown.
func Decode(typeID uint16, data []byte) (Payload, error) {
	if len(data)%4 != 0 {
		return nil, fmt.Errorf("%w: %v payload of %d bytes", ErrInvalidPayload, Type(typeID), len(data))
	}
	w, err := spec.ReadInt32s(spec.NewReader(data), len(data)/4)
	if err != nil {
		return nil, err
	}

	var p Payload
	switch Type(typeID) {
	case TypeVersion:
		p, err = decodeVersion(w)
	case TypeInfo:
		p, err = decodeInfo(w)
	case TypeImage:
		p, err = decodeImage(w)
	case TypeEnvelope:
		p, err = decodeEnvelope(w)
	case TypeGroup:
		p, err = decodeGroup(w)
	case TypeLayer:
		p, err = decodeLayer(w, data)
	case TypeEnvpoints:
		p, err = decodeEnvpoints(w)
	default:
		p = &Unknown{Type: Type(typeID), Data: data}
	}
	if err != nil {
		return nil, fmt.Errorf("%v item: %w", Type(typeID), err)
	}
	return p, nil
}

type words []int32

func (w words) get(i int, fallback int32) int32 {
	if i < len(w) {
		return w[i]
	}
	return fallback
}

func (w words) need(n int) error {
	if len(w) < n {
		return fmt.Errorf("%w: %d words, need at least %d", ErrInvalidPayload, len(w), n)
	}
	return nil
}

func boolWord(b bool) int32 {
	if b {
		return 1
	}
	return 0
}

// Unknown keeps the raw payload of an item this package does not model.
type Unknown struct {
	Type Type
	Data []byte
}

func (p *Unknown) ItemType() Type { return p.Type }

func (p *Unknown) words() []int32 { return nil }
