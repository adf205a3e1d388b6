package twmap

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/tile"
)

// Encode serializes m into a map file.
func Encode(m *Map, opts ...Option) ([]byte, error) {
	config := newConfig(opts)
	c, err := toContainer(m, config)
	if err != nil {
		return nil, err
	}
	return df.Serialize(c, config.dfOptions...)
}

// ToContainer lays m out as items in canonical order:
// version, info, images, envelopes, groups, layers, envpoints, then Extra.
// Item ids are the positions within each type.
func ToContainer(m *Map, opts ...Option) (*df.Container, error) {
	return toContainer(m, newConfig(opts))
}

type encoder struct {
	c        *df.Container
	encoding mapitem.StringEncoding
	m        *Map
	ids      map[uint16]uint16

	reserved []bool // data block slots taken by m.ExtraData
	next     int    // first data block slot not yet considered
}

func toContainer(m *Map, config config) (*df.Container, error) {
	e := &encoder{
		c:        &df.Container{},
		encoding: config.Encoding,
		m:        m,
		ids:      make(map[uint16]uint16),
	}
	for _, step := range []func() error{
		e.reserveData,
		e.encodeVersion,
		e.encodeInfo,
		e.encodeImages,
		e.encodeEnvelopes,
		e.encodeGroups,
		e.encodeLayers,
		e.encodeEnvpoints,
		e.encodeExtra,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return e.c, nil
}

func (e *encoder) add(p mapitem.Payload) error {
	data, err := mapitem.Encode(p)
	if err != nil {
		return err
	}
	e.addItem(uint16(p.ItemType()), data)
	return nil
}

func (e *encoder) addItem(typeID uint16, data []byte) {
	id := e.ids[typeID]
	e.ids[typeID] = id + 1
	e.c.Items = append(e.c.Items, df.Item{Type: typeID, ID: id, Data: data})
}

// reserveData places ExtraData blocks at their indices. Blocks of the
// document fill the remaining slots in order.
func (e *encoder) reserveData() error {
	n := 0
	for index := range e.m.ExtraData {
		if index < 0 {
			return fmt.Errorf("%w: extra data block %d", ErrInvalidReference, index)
		}
		n = max(n, int(index)+1)
	}
	e.c.Data = make([]df.DataBlock, n)
	e.reserved = make([]bool, n)
	for index, data := range e.m.ExtraData {
		e.c.Data[index].Data = data
		e.reserved[index] = true
	}
	return nil
}

func (e *encoder) addData(data []byte) int32 {
	for e.next < len(e.reserved) && e.reserved[e.next] {
		e.next++
	}
	index := e.next
	e.next++
	if index < len(e.c.Data) {
		e.c.Data[index].Data = data
		return int32(index)
	}
	return e.c.AddData(data)
}

func (e *encoder) text(s string) (int32, error) {
	if s == "" {
		return mapitem.NoData, nil
	}
	data, err := mapitem.EncodeString(s, e.encoding)
	if err != nil {
		return 0, err
	}
	return e.addData(data), nil
}

func (e *encoder) encodeVersion() error {
	return e.add(&mapitem.Version{Version: mapitem.CurrentVersion})
}

func (e *encoder) encodeInfo() error {
	info := mapitem.EmptyInfo()
	var err error
	for _, field := range []struct {
		src string
		dst *int32
	}{
		{e.m.Info.Author, &info.Author},
		{e.m.Info.Version, &info.MapVersion},
		{e.m.Info.Credits, &info.Credits},
		{e.m.Info.License, &info.License},
	} {
		if *field.dst, err = e.text(field.src); err != nil {
			return fmt.Errorf("info: %w", err)
		}
	}
	if len(e.m.Info.Settings) > 0 {
		data, err := mapitem.EncodeStrings(e.m.Info.Settings, e.encoding)
		if err != nil {
			return fmt.Errorf("info settings: %w", err)
		}
		info.Settings = e.addData(data)
	}
	return e.add(info)
}

func (e *encoder) encodeImages() error {
	for i, image := range e.m.Images {
		item := &mapitem.Image{
			Version:  mapitem.CurrentImageVersion,
			Width:    int32(image.Width),
			Height:   int32(image.Height),
			External: image.External,
			Data:     mapitem.NoData,
		}
		var err error
		if item.Name, err = e.text(image.Name); err != nil {
			return fmt.Errorf("image %d name: %w", i, err)
		}
		if !image.External {
			item.Data = e.addData(image.Pixels)
		}
		if err := e.add(item); err != nil {
			return err
		}
	}
	return nil
}

func (e *encoder) encodeEnvelopes() error {
	version := int32(mapitem.CurrentEnvelopeVersion)
	if e.m.bezierPoints() {
		version = mapitem.BezierEnvelopeVersion
	}
	start := 0
	for _, env := range e.m.Envelopes {
		item := &mapitem.Envelope{
			Version:      version,
			Channels:     int32(env.Channels),
			StartPoint:   int32(start),
			NumPoints:    int32(len(env.Points)),
			Name:         env.Name,
			Synchronized: env.Synchronized,
		}
		if err := e.add(item); err != nil {
			return err
		}
		start += len(env.Points)
	}
	return nil
}

func (e *encoder) encodeGroups() error {
	start := 0
	for _, g := range e.m.Groups {
		item := &mapitem.Group{
			Version:     mapitem.CurrentGroupVersion,
			OffsetX:     g.OffsetX,
			OffsetY:     g.OffsetY,
			ParallaxX:   g.ParallaxX,
			ParallaxY:   g.ParallaxY,
			StartLayer:  int32(start),
			NumLayers:   int32(len(g.Layers)),
			UseClipping: g.UseClipping,
			ClipX:       g.ClipX,
			ClipY:       g.ClipY,
			ClipW:       g.ClipW,
			ClipH:       g.ClipH,
			Name:        g.Name,
		}
		if err := e.add(item); err != nil {
			return err
		}
		start += len(g.Layers)
	}
	return nil
}

func (e *encoder) imageRef(index int) (int32, error) {
	if index == NoImage {
		return mapitem.NoData, nil
	}
	if index < 0 || index >= len(e.m.Images) {
		return 0, fmt.Errorf("%w: image %d of %d", ErrInvalidReference, index, len(e.m.Images))
	}
	return int32(index), nil
}

func (e *encoder) envelopeRef(index int) (int32, error) {
	if index == NoEnvelope {
		return mapitem.NoData, nil
	}
	if index < 0 || index >= len(e.m.Envelopes) {
		return 0, fmt.Errorf("%w: envelope %d of %d", ErrInvalidReference, index, len(e.m.Envelopes))
	}
	return int32(index), nil
}

func (e *encoder) encodeLayers() error {
	i := 0
	for gi, l := range e.m.Layers() {
		var err error
		switch l := l.(type) {
		case *TileLayer:
			err = e.encodeTileLayer(l)
		case *QuadLayer:
			err = e.encodeQuadLayer(l)
		case *RawLayer:
			e.addItem(uint16(mapitem.TypeLayer), l.Data)
		default:
			err = fmt.Errorf("%w: %T", ErrInvalidLayer, l)
		}
		if err != nil {
			return fmt.Errorf("group %d layer %d: %w", gi, i, err)
		}
		i++
	}
	return nil
}

func (e *encoder) encodeTileLayer(l *TileLayer) error {
	if l.Grid == nil {
		return fmt.Errorf("%w: tile layer %q has no grid", ErrInvalidLayer, l.Name)
	}
	if len(l.Grid.Tiles) != l.Grid.Width*l.Grid.Height {
		return fmt.Errorf("%w: %dx%d grid has %d tiles", spec.ErrSizeMismatch, l.Grid.Width, l.Grid.Height, len(l.Grid.Tiles))
	}
	kind := l.Kind
	if kind != mapitem.LayerGame {
		kind = mapitem.LayerTiles
	}
	item := &mapitem.TileLayer{
		LayerHeader:    mapitem.LayerHeader{Kind: kind, Flags: l.Flags},
		Version:        mapitem.CurrentTileLayerVersion,
		Width:          int32(l.Grid.Width),
		Height:         int32(l.Grid.Height),
		Flags:          l.TileFlags,
		Color:          l.Color,
		ColorEnvOffset: l.ColorEnvOffset,
		Name:           l.Name,
		Reserved:       mapitem.EmptyReserved(),
	}
	var err error
	if item.Image, err = e.imageRef(l.Image); err != nil {
		return err
	}
	if item.ColorEnv, err = e.envelopeRef(l.ColorEnv); err != nil {
		return err
	}
	item.Data = e.addData(tile.Encode(l.Grid))
	for i, data := range l.Extra {
		if data != nil {
			item.Reserved[i] = e.addData(data)
		}
	}
	return e.add(item)
}

func (e *encoder) encodeQuadLayer(l *QuadLayer) error {
	item := &mapitem.QuadLayer{
		LayerHeader: mapitem.LayerHeader{Kind: mapitem.LayerQuads, Flags: l.Flags},
		Version:     mapitem.CurrentQuadLayerVersion,
		NumQuads:    int32(len(l.Quads)),
		Name:        l.Name,
	}
	var err error
	if item.Image, err = e.imageRef(l.Image); err != nil {
		return err
	}
	for qi, q := range l.Quads {
		for _, env := range []int32{q.PosEnv, q.ColorEnv} {
			if _, err := e.envelopeRef(int(env)); err != nil {
				return fmt.Errorf("quad %d: %w", qi, err)
			}
		}
	}
	data, err := mapitem.EncodeQuads(l.Quads)
	if err != nil {
		return err
	}
	item.Data = e.addData(data)
	return e.add(item)
}

func (e *encoder) encodeEnvpoints() error {
	points := make([]mapitem.EnvPoint, 0)
	for _, env := range e.m.Envelopes {
		points = append(points, env.Points...)
	}
	return e.add(&mapitem.Envpoints{Points: points, Bezier: e.m.bezierPoints()})
}

func (e *encoder) encodeExtra() error {
	extra := slices.Clone(e.m.Extra)
	slices.SortStableFunc(extra, func(a, b df.Item) int {
		return cmp.Compare(a.Type, b.Type)
	})
	for _, item := range extra {
		if item.Type <= uint16(mapitem.TypeEnvpoints) {
			return fmt.Errorf("%w: extra item has known type %v", spec.ErrInvalidItemTable, mapitem.Type(item.Type))
		}
		if item.Type == uint16(mapitem.TypeExtendedIndex) {
			e.c.Items = append(e.c.Items, df.Item{Type: item.Type, ID: item.ID, Data: item.Data})
			continue
		}
		e.addItem(item.Type, item.Data)
	}
	return nil
}
