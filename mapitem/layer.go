package mapitem

import "fmt"

type LayerKind int32

const (
	LayerInvalid LayerKind = 0
	LayerGame    LayerKind = 1
	LayerTiles   LayerKind = 2
	LayerQuads   LayerKind = 3
)

func (k LayerKind) String() string {
	switch k {
	case LayerGame:
		return "game"
	case LayerTiles:
		return "tiles"
	case LayerQuads:
		return "quads"
	}
	return fmt.Sprintf("kind(%d)", int32(k))
}

const (
	TileLayerLength = 23
	QuadLayerLength = 10

	CurrentTileLayerVersion = 3
	CurrentQuadLayerVersion = 2

	// SkipTileLayerVersion grids store runs of repeated tiles, see tile.DecodeSkip.
	SkipTileLayerVersion = 4

	layerHeaderWords = 3
	layerNameWords   = 3
	reservedWords    = 5
)

// LayerFlagDetail marks layers that are only shown with high detail enabled.
const LayerFlagDetail int32 = 1

// TileFlagGame marks the game (collision) layer.
const TileFlagGame int32 = 1

// LayerHeader starts every layer payload.
type LayerHeader struct {
	Version int32
	Kind    LayerKind
	Flags   int32
}

func (h LayerHeader) words() []int32 {
	return []int32{h.Version, int32(h.Kind), h.Flags}
}

type Color struct {
	R, G, B, A int32
}

var White = Color{R: 255, G: 255, B: 255, A: 255}

// TileLayer references its tile grid by data block index. Kind is LayerTiles
// or LayerGame.
type TileLayer struct {
	LayerHeader
	Version        int32
	Width          int32
	Height         int32
	Flags          int32
	Color          Color
	ColorEnv       int32
	ColorEnvOffset int32
	Image          int32
	Data           int32
	Name           string
	Reserved       [reservedWords]int32
}

func (p *TileLayer) ItemType() Type { return TypeLayer }

func (p *TileLayer) words() []int32 {
	w := p.LayerHeader.words()
	w = append(w,
		p.Version, p.Width, p.Height, p.Flags,
		p.Color.R, p.Color.G, p.Color.B, p.Color.A,
		p.ColorEnv, p.ColorEnvOffset,
		p.Image, p.Data,
	)
	w = append(w, PackName(p.Name, layerNameWords)...)
	return append(w, p.Reserved[:]...)
}

// EmptyReserved is the value of unused reserved words.
func EmptyReserved() [reservedWords]int32 {
	return [reservedWords]int32{NoData, NoData, NoData, NoData, NoData}
}

// QuadLayer references NumQuads quad records by data block index.
type QuadLayer struct {
	LayerHeader
	Version  int32
	NumQuads int32
	Data     int32
	Image    int32
	Name     string
}

func (p *QuadLayer) ItemType() Type { return TypeLayer }

func (p *QuadLayer) words() []int32 {
	w := p.LayerHeader.words()
	w = append(w, p.Version, p.NumQuads, p.Data, p.Image)
	return append(w, PackName(p.Name, layerNameWords)...)
}

func decodeLayer(w words, data []byte) (Payload, error) {
	if err := w.need(layerHeaderWords); err != nil {
		return nil, err
	}
	header := LayerHeader{Version: w[0], Kind: LayerKind(w[1]), Flags: w[2]}
	body := w[layerHeaderWords:]

	switch header.Kind {
	case LayerGame, LayerTiles:
		return decodeTileLayer(header, body)
	case LayerQuads:
		return decodeQuadLayer(header, body)
	}
	return &Unknown{Type: TypeLayer, Data: data}, nil
}

func decodeTileLayer(header LayerHeader, w words) (*TileLayer, error) {
	if err := w.need(12); err != nil {
		return nil, err
	}
	p := &TileLayer{
		LayerHeader:    header,
		Version:        w[0],
		Width:          w[1],
		Height:         w[2],
		Flags:          w[3],
		Color:          Color{R: w[4], G: w[5], B: w[6], A: w[7]},
		ColorEnv:       w[8],
		ColorEnvOffset: w[9],
		Image:          w[10],
		Data:           w[11],
		Reserved:       EmptyReserved(),
	}
	if len(w) >= 15 {
		p.Name = UnpackName(w[12:15])
	}
	for i := range p.Reserved {
		p.Reserved[i] = w.get(15+i, NoData)
	}
	return p, nil
}

func decodeQuadLayer(header LayerHeader, w words) (*QuadLayer, error) {
	if err := w.need(4); err != nil {
		return nil, err
	}
	p := &QuadLayer{
		LayerHeader: header,
		Version:     w[0],
		NumQuads:    w[1],
		Data:        w[2],
		Image:       w[3],
	}
	if len(w) >= 7 {
		p.Name = UnpackName(w[4:7])
	}
	return p, nil
}
