// Package twmap converts between map files and an editable map document.
//
// Decoded documents refer to images, envelopes and layers by their position
// in the document, never by item id, so reordering items on export keeps all
// references intact.
package twmap

import (
	"errors"
	"iter"
	"log/slog"

	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/tile"
)

var ErrInvalidReference = errors.New("invalid reference")
var ErrInvalidLayer = errors.New("invalid layer")

// NoImage and NoEnvelope mark absent references.
const (
	NoImage    = -1
	NoEnvelope = -1
)

type Map struct {
	Info      Info
	Images    []*Image
	Envelopes []*Envelope
	Groups    []*Group

	// Extra holds items of types this package does not model. They are
	// written back after the known items.
	Extra []df.Item

	// ExtraData holds the data blocks no modeled item refers to, keyed by
	// block index. They keep their index on export so that references from
	// Extra items and raw layers stay valid.
	ExtraData map[int32][]byte
}

type Info struct {
	Author   string
	Version  string
	Credits  string
	License  string
	Settings []string
}

// Image is either embedded with RGBA Pixels or external, loaded by Name.
type Image struct {
	Name     string
	Width    int
	Height   int
	External bool
	Pixels   []byte
}

type Envelope struct {
	Name         string
	Channels     int
	Synchronized bool
	Points       []mapitem.EnvPoint
}

type Group struct {
	Name        string
	OffsetX     int32
	OffsetY     int32
	ParallaxX   int32
	ParallaxY   int32
	UseClipping bool
	ClipX       int32
	ClipY       int32
	ClipW       int32
	ClipH       int32
	Layers      []Layer
}

// Layer is one of *TileLayer, *QuadLayer or *RawLayer.
type Layer interface {
	LayerName() string
	layer()
}

type TileLayer struct {
	Name           string
	Kind           mapitem.LayerKind // LayerTiles or LayerGame
	Flags          int32             // mapitem.LayerFlagDetail
	TileFlags      int32             // mapitem.TileFlagGame
	Color          mapitem.Color
	ColorEnv       int // envelope index or NoEnvelope
	ColorEnvOffset int32
	Image          int // image index or NoImage
	Grid           *tile.Grid

	// Extra holds the data blocks referenced from the reserved words of the
	// layer item, nil where a word is unused.
	Extra [5][]byte
}

func (l *TileLayer) LayerName() string { return l.Name }
func (l *TileLayer) layer()            {}

func (l *TileLayer) IsGame() bool {
	return l.Kind == mapitem.LayerGame || l.TileFlags&mapitem.TileFlagGame != 0
}

type QuadLayer struct {
	Name  string
	Flags int32
	Image int // image index or NoImage
	Quads []mapitem.Quad
}

func (l *QuadLayer) LayerName() string { return l.Name }
func (l *QuadLayer) layer()            {}

// RawLayer keeps a layer of an unsupported kind verbatim. Data block
// references inside Data are not renumbered on export.
type RawLayer struct {
	Kind mapitem.LayerKind
	Data []byte
}

func (l *RawLayer) LayerName() string { return "" }
func (l *RawLayer) layer()            {}

// New returns a document with a single "Game" group holding an empty game
// layer of the given size.
func New(width, height int) *Map {
	return &Map{
		Groups: []*Group{{
			Name:      "Game",
			ParallaxX: 100,
			ParallaxY: 100,
			Layers:    []Layer{NewGameLayer(width, height)},
		}},
	}
}

func NewTileLayer(name string, width, height int) *TileLayer {
	return &TileLayer{
		Name:     name,
		Kind:     mapitem.LayerTiles,
		Color:    mapitem.White,
		ColorEnv: NoEnvelope,
		Image:    NoImage,
		Grid:     tile.NewGrid(width, height),
	}
}

func NewGameLayer(width, height int) *TileLayer {
	l := NewTileLayer("Game", width, height)
	l.TileFlags = mapitem.TileFlagGame
	return l
}

// Layers iterates over all layers in export order together with the index
// of their group.
func (m *Map) Layers() iter.Seq2[int, Layer] {
	return func(yield func(int, Layer) bool) {
		for gi, g := range m.Groups {
			for _, l := range g.Layers {
				if !yield(gi, l) {
					return
				}
			}
		}
	}
}

// bezierPoints reports whether any envelope needs the bezier point layout.
func (m *Map) bezierPoints() bool {
	for _, env := range m.Envelopes {
		for _, pt := range env.Points {
			if pt.Curve == mapitem.CurveBezier || pt.Tangents != (mapitem.Tangents{}) {
				return true
			}
		}
	}
	return false
}

// GameLayer returns the first game layer, or nil.
func (m *Map) GameLayer() *TileLayer {
	for _, l := range m.Layers() {
		if tl, ok := l.(*TileLayer); ok && tl.IsGame() {
			return tl
		}
	}
	return nil
}

type config struct {
	Logger    *slog.Logger
	Encoding  mapitem.StringEncoding
	dfOptions []df.Option
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		c.Logger = logger
		c.dfOptions = append(c.dfOptions, df.WithLogger(logger))
	}
}

// WithVersion selects the datafile version written by Encode.
func WithVersion(version int32) Option {
	return func(c *config) { c.dfOptions = append(c.dfOptions, df.WithVersion(version)) }
}

func WithCompressionLevel(level int) Option {
	return func(c *config) { c.dfOptions = append(c.dfOptions, df.WithCompressionLevel(level)) }
}

// WithStringEncoding selects the encoding of info and image name strings.
// The default is mapitem.UTF16LE.
func WithStringEncoding(encoding mapitem.StringEncoding) Option {
	return func(c *config) { c.Encoding = encoding }
}

func newConfig(opts []Option) config {
	config := config{
		Logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}
