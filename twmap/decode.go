package twmap

import (
	"encoding/binary"
	"fmt"
	"log/slog"

	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/tile"
)

// Decode parses a map file into a document.
func Decode(buffer []byte, opts ...Option) (*Map, error) {
	config := newConfig(opts)
	c, err := df.Parse(buffer, config.dfOptions...)
	if err != nil {
		return nil, err
	}
	return fromContainer(c, config)
}

// FromContainer resolves the items and data blocks of c into a document.
func FromContainer(c *df.Container, opts ...Option) (*Map, error) {
	return fromContainer(c, newConfig(opts))
}

type decoder struct {
	c        *df.Container
	encoding mapitem.StringEncoding
	logger   *slog.Logger
	m        *Map
	used     []bool // data blocks resolved by modeled items
}

func fromContainer(c *df.Container, config config) (*Map, error) {
	d := &decoder{c: c, encoding: config.Encoding, logger: config.Logger, m: &Map{}, used: make([]bool, len(c.Data))}
	for _, step := range []func() error{
		d.decodeVersion,
		d.decodeInfo,
		d.decodeImages,
		d.decodeEnvelopes,
		d.decodeGroups,
		d.decodeExtra,
	} {
		if err := step(); err != nil {
			return nil, err
		}
	}
	return d.m, nil
}

func (d *decoder) payloads(t mapitem.Type) ([]mapitem.Payload, error) {
	items := d.c.FindType(uint16(t))
	payloads := make([]mapitem.Payload, len(items))
	for i, item := range items {
		p, err := mapitem.Decode(item.Type, item.Data)
		if err != nil {
			return nil, fmt.Errorf("%v %d: %w", t, i, err)
		}
		payloads[i] = p
	}
	return payloads, nil
}

func (d *decoder) data(index int32) ([]byte, error) {
	if index < 0 || int(index) >= len(d.c.Data) {
		return nil, fmt.Errorf("%w: data block %d of %d", ErrInvalidReference, index, len(d.c.Data))
	}
	d.used[index] = true
	return d.c.Data[index].Data, nil
}

func (d *decoder) text(index int32) (string, error) {
	if index == mapitem.NoData {
		return "", nil
	}
	data, err := d.data(index)
	if err != nil {
		return "", err
	}
	return mapitem.DecodeString(data, d.encoding)
}

func (d *decoder) decodeVersion() error {
	payloads, err := d.payloads(mapitem.TypeVersion)
	if err != nil {
		return err
	}
	for _, p := range payloads {
		if v, ok := p.(*mapitem.Version); ok && v.Version != mapitem.CurrentVersion {
			d.logger.Debug("twmap: unexpected map version", "version", v.Version)
		}
	}
	return nil
}

func (d *decoder) decodeInfo() error {
	payloads, err := d.payloads(mapitem.TypeInfo)
	if err != nil || len(payloads) == 0 {
		return err
	}
	info, ok := payloads[0].(*mapitem.Info)
	if !ok {
		return fmt.Errorf("%w: info item decoded as %T", mapitem.ErrInvalidPayload, payloads[0])
	}

	for _, field := range []struct {
		ref int32
		dst *string
	}{
		{info.Author, &d.m.Info.Author},
		{info.MapVersion, &d.m.Info.Version},
		{info.Credits, &d.m.Info.Credits},
		{info.License, &d.m.Info.License},
	} {
		if *field.dst, err = d.text(field.ref); err != nil {
			return fmt.Errorf("info: %w", err)
		}
	}

	if info.Settings != mapitem.NoData {
		data, err := d.data(info.Settings)
		if err != nil {
			return fmt.Errorf("info settings: %w", err)
		}
		if d.m.Info.Settings, err = mapitem.DecodeStrings(data, d.encoding); err != nil {
			return fmt.Errorf("info settings: %w", err)
		}
	}
	return nil
}

func (d *decoder) decodeImages() error {
	payloads, err := d.payloads(mapitem.TypeImage)
	if err != nil {
		return err
	}
	for i, p := range payloads {
		item, ok := p.(*mapitem.Image)
		if !ok {
			return fmt.Errorf("%w: image %d decoded as %T", mapitem.ErrInvalidPayload, i, p)
		}
		image := &Image{
			Width:    int(item.Width),
			Height:   int(item.Height),
			External: item.External,
		}
		if image.Name, err = d.text(item.Name); err != nil {
			return fmt.Errorf("image %d name: %w", i, err)
		}
		if !item.External {
			if image.Pixels, err = d.data(item.Data); err != nil {
				return fmt.Errorf("image %d pixels: %w", i, err)
			}
		}
		d.m.Images = append(d.m.Images, image)
	}
	return nil
}

func (d *decoder) decodeEnvelopes() error {
	payloads, err := d.payloads(mapitem.TypeEnvelope)
	if err != nil || len(payloads) == 0 {
		return err
	}
	items := make([]*mapitem.Envelope, len(payloads))
	bezier := false
	for i, p := range payloads {
		item, ok := p.(*mapitem.Envelope)
		if !ok {
			return fmt.Errorf("%w: envelope %d decoded as %T", mapitem.ErrInvalidPayload, i, p)
		}
		items[i] = item
		bezier = bezier || item.Version >= mapitem.BezierEnvelopeVersion
	}

	var points []mapitem.EnvPoint
	if envpoints := d.c.FindType(uint16(mapitem.TypeEnvpoints)); len(envpoints) > 0 {
		p, err := mapitem.DecodeEnvpoints(envpoints[0].Data, bezier)
		if err != nil {
			return fmt.Errorf("envpoints: %w", err)
		}
		points = p.Points
	}

	for i, item := range items {
		start, end := int(item.StartPoint), int(item.StartPoint)+int(item.NumPoints)
		if start < 0 || end < start || end > len(points) {
			return fmt.Errorf("%w: envelope %d points [%d, %d) of %d", ErrInvalidReference, i, start, end, len(points))
		}
		d.m.Envelopes = append(d.m.Envelopes, &Envelope{
			Name:         item.Name,
			Channels:     int(item.Channels),
			Synchronized: item.Synchronized,
			Points:       append([]mapitem.EnvPoint{}, points[start:end]...),
		})
	}
	return nil
}

func (d *decoder) imageRef(index int32) (int, error) {
	if index == mapitem.NoData {
		return NoImage, nil
	}
	if index < 0 || int(index) >= len(d.m.Images) {
		return 0, fmt.Errorf("%w: image %d of %d", ErrInvalidReference, index, len(d.m.Images))
	}
	return int(index), nil
}

func (d *decoder) envelopeRef(index int32) (int, error) {
	if index == mapitem.NoData {
		return NoEnvelope, nil
	}
	if index < 0 || int(index) >= len(d.m.Envelopes) {
		return 0, fmt.Errorf("%w: envelope %d of %d", ErrInvalidReference, index, len(d.m.Envelopes))
	}
	return int(index), nil
}

func (d *decoder) decodeLayer(p mapitem.Payload) (Layer, error) {
	switch p := p.(type) {
	case *mapitem.TileLayer:
		return d.decodeTileLayer(p)
	case *mapitem.QuadLayer:
		return d.decodeQuadLayer(p)
	case *mapitem.Unknown:
		l := &RawLayer{Data: p.Data}
		if len(p.Data) >= 8 {
			l.Kind = mapitem.LayerKind(binary.LittleEndian.Uint32(p.Data[4:]))
		}
		return l, nil
	}
	return nil, fmt.Errorf("%w: layer decoded as %T", mapitem.ErrInvalidPayload, p)
}

func (d *decoder) decodeTileLayer(p *mapitem.TileLayer) (*TileLayer, error) {
	l := &TileLayer{
		Name:           p.Name,
		Kind:           p.Kind,
		Flags:          p.LayerHeader.Flags,
		TileFlags:      p.Flags,
		Color:          p.Color,
		ColorEnvOffset: p.ColorEnvOffset,
	}
	var err error
	if l.Image, err = d.imageRef(p.Image); err != nil {
		return nil, err
	}
	if l.ColorEnv, err = d.envelopeRef(p.ColorEnv); err != nil {
		return nil, err
	}
	data, err := d.data(p.Data)
	if err != nil {
		return nil, err
	}
	decode := tile.Decode
	if p.Version >= mapitem.SkipTileLayerVersion {
		decode = tile.DecodeSkip
	}
	if l.Grid, err = decode(int(p.Width), int(p.Height), data); err != nil {
		return nil, err
	}
	for i, ref := range p.Reserved {
		if ref == mapitem.NoData {
			continue
		}
		if l.Extra[i], err = d.data(ref); err != nil {
			return nil, err
		}
	}
	return l, nil
}

func (d *decoder) decodeQuadLayer(p *mapitem.QuadLayer) (*QuadLayer, error) {
	l := &QuadLayer{
		Name:  p.Name,
		Flags: p.LayerHeader.Flags,
	}
	var err error
	if l.Image, err = d.imageRef(p.Image); err != nil {
		return nil, err
	}
	data, err := d.data(p.Data)
	if err != nil {
		return nil, err
	}
	if l.Quads, err = mapitem.DecodeQuads(data, int(p.NumQuads)); err != nil {
		return nil, err
	}
	for qi, q := range l.Quads {
		for _, env := range []int32{q.PosEnv, q.ColorEnv} {
			if _, err := d.envelopeRef(env); err != nil {
				return nil, fmt.Errorf("quad %d: %w", qi, err)
			}
		}
	}
	return l, nil
}

func (d *decoder) decodeGroups() error {
	layerPayloads, err := d.payloads(mapitem.TypeLayer)
	if err != nil {
		return err
	}
	layers := make([]Layer, len(layerPayloads))
	for i, p := range layerPayloads {
		if layers[i], err = d.decodeLayer(p); err != nil {
			return fmt.Errorf("layer %d: %w", i, err)
		}
	}

	payloads, err := d.payloads(mapitem.TypeGroup)
	if err != nil {
		return err
	}
	owner := make([]int, len(layers))
	for i := range owner {
		owner[i] = -1
	}
	for i, p := range payloads {
		item, ok := p.(*mapitem.Group)
		if !ok {
			return fmt.Errorf("%w: group %d decoded as %T", mapitem.ErrInvalidPayload, i, p)
		}
		start, end := int(item.StartLayer), int(item.StartLayer)+int(item.NumLayers)
		if start < 0 || end < start || end > len(layers) {
			return fmt.Errorf("%w: group %d layers [%d, %d) of %d", ErrInvalidReference, i, start, end, len(layers))
		}
		for li := start; li < end; li++ {
			if owner[li] != -1 {
				return fmt.Errorf("%w: layer %d is in groups %d and %d", ErrInvalidReference, li, owner[li], i)
			}
			owner[li] = i
		}
		d.m.Groups = append(d.m.Groups, &Group{
			Name:        item.Name,
			OffsetX:     item.OffsetX,
			OffsetY:     item.OffsetY,
			ParallaxX:   item.ParallaxX,
			ParallaxY:   item.ParallaxY,
			UseClipping: item.UseClipping,
			ClipX:       item.ClipX,
			ClipY:       item.ClipY,
			ClipW:       item.ClipW,
			ClipH:       item.ClipH,
			Layers:      append([]Layer{}, layers[start:end]...),
		})
	}
	for li, group := range owner {
		if group == -1 {
			return fmt.Errorf("%w: layer %d is in no group", ErrInvalidReference, li)
		}
	}
	return nil
}

func (d *decoder) decodeExtra() error {
	for _, item := range d.c.Items {
		if item.Type > uint16(mapitem.TypeEnvpoints) {
			d.m.Extra = append(d.m.Extra, item)
		}
	}
	for i, block := range d.c.Data {
		if d.used[i] {
			continue
		}
		if d.m.ExtraData == nil {
			d.m.ExtraData = make(map[int32][]byte)
		}
		d.m.ExtraData[int32(i)] = block.Data
	}
	if len(d.m.Extra) > 0 || len(d.m.ExtraData) > 0 {
		d.logger.Debug("twmap: keeping unknown items", "items", len(d.m.Extra), "data", len(d.m.ExtraData))
	}
	return nil
}
