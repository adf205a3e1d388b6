package mapitem

const (
	GroupLength         = 15
	CurrentGroupVersion = 3

	groupNameWords = 3
)

// Group positions a contiguous run of layers, NumLayers layers starting
// at layer index StartLayer.
type Group struct {
	Version     int32
	OffsetX     int32
	OffsetY     int32
	ParallaxX   int32
	ParallaxY   int32
	StartLayer  int32
	NumLayers   int32
	UseClipping bool
	ClipX       int32
	ClipY       int32
	ClipW       int32
	ClipH       int32
	Name        string
}

func (p *Group) ItemType() Type { return TypeGroup }

func (p *Group) words() []int32 {
	w := []int32{
		p.Version,
		p.OffsetX, p.OffsetY,
		p.ParallaxX, p.ParallaxY,
		p.StartLayer, p.NumLayers,
		boolWord(p.UseClipping),
		p.ClipX, p.ClipY, p.ClipW, p.ClipH,
	}
	return append(w, PackName(p.Name, groupNameWords)...)
}

// decodeGroup accepts version 1 groups without clipping and version 2
// groups without a name.
func decodeGroup(w words) (*Group, error) {
	if err := w.need(7); err != nil {
		return nil, err
	}
	g := &Group{
		Version:     w[0],
		OffsetX:     w[1],
		OffsetY:     w[2],
		ParallaxX:   w[3],
		ParallaxY:   w[4],
		StartLayer:  w[5],
		NumLayers:   w[6],
		UseClipping: w.get(7, 0) != 0,
		ClipX:       w.get(8, 0),
		ClipY:       w.get(9, 0),
		ClipW:       w.get(10, 0),
		ClipH:       w.get(11, 0),
	}
	if len(w) >= GroupLength {
		g.Name = UnpackName(w[12:GroupLength])
	}
	return g, nil
}
