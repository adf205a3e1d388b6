package twmap_test

import (
	"bytes"
	"testing"

	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/eak1mov/go-twmap/internal"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/tile"
	"github.com/eak1mov/go-twmap/twmap"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/require"
)

func TestEncodeDecode(t *testing.T) {
	for _, tc := range []struct {
		Name string
		Opts []twmap.Option
	}{
		{Name: "Default"},
		{Name: "Version3", Opts: []twmap.Option{twmap.WithVersion(spec.Version3)}},
		{Name: "UTF8", Opts: []twmap.Option{twmap.WithStringEncoding(mapitem.UTF8)}},
		{Name: "BestCompression", Opts: []twmap.Option{twmap.WithCompressionLevel(9)}},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			t.Parallel()

			want := internal.SampleMap()
			mapData, err := twmap.Encode(want, tc.Opts...)
			if err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := twmap.Decode(mapData, tc.Opts...)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Decode(Encode(m)) mismatch (-want +got):\n%v", diff)
			}

			again, err := twmap.Encode(got, tc.Opts...)
			if err != nil {
				t.Fatalf("Encode(Decode()) failed: %v", err)
			}
			if !bytes.Equal(mapData, again) {
				t.Errorf("re-encoding a decoded map is not stable")
			}
		})
	}
}

func TestTestdataCases(t *testing.T) {
	for name, mapData := range internal.TestdataCases(t) {
		t.Run(name, func(t *testing.T) {
			m, err := twmap.Decode(mapData)
			require.NoError(t, err)
			require.NotNil(t, m.GameLayer())
		})
	}
}

func TestCanonicalOrder(t *testing.T) {
	c, err := twmap.ToContainer(internal.SampleMap())
	require.NoError(t, err)

	typeIDs := make([]mapitem.Type, 0)
	for _, item := range c.Items {
		typeIDs = append(typeIDs, mapitem.Type(item.Type))
	}
	require.Equal(t, []mapitem.Type{
		mapitem.TypeVersion,
		mapitem.TypeInfo,
		mapitem.TypeImage, mapitem.TypeImage,
		mapitem.TypeEnvelope, mapitem.TypeEnvelope,
		mapitem.TypeGroup, mapitem.TypeGroup,
		mapitem.TypeLayer, mapitem.TypeLayer, mapitem.TypeLayer, mapitem.TypeLayer,
		mapitem.TypeEnvpoints,
		0x8000,
	}, typeIDs)

	ids := make(map[uint16][]uint16)
	for _, item := range c.Items {
		ids[item.Type] = append(ids[item.Type], item.ID)
	}
	require.Equal(t, []uint16{0, 1, 2, 3}, ids[uint16(mapitem.TypeLayer)])
	require.Equal(t, []uint16{0, 1}, ids[uint16(mapitem.TypeGroup)])
}

func TestMandatoryItems(t *testing.T) {
	c, err := twmap.ToContainer(&twmap.Map{})
	require.NoError(t, err)
	require.Len(t, c.Items, 3)
	require.Equal(t, uint16(mapitem.TypeVersion), c.Items[0].Type)
	require.Equal(t, uint16(mapitem.TypeInfo), c.Items[1].Type)
	require.Equal(t, uint16(mapitem.TypeEnvpoints), c.Items[2].Type)
	require.Empty(t, c.Items[2].Data)

	p, err := mapitem.Decode(c.Items[0].Type, c.Items[0].Data)
	require.NoError(t, err)
	require.Equal(t, &mapitem.Version{Version: 1}, p)
}

// A single 2x2 empty tile layer stores exactly 16 zero bytes.
func TestScenarioEmptyTileLayer(t *testing.T) {
	m := &twmap.Map{Groups: []*twmap.Group{{
		Layers: []twmap.Layer{twmap.NewTileLayer("Tiles", 2, 2)},
	}}}
	mapData, err := twmap.Encode(m)
	require.NoError(t, err)

	c, err := df.Parse(mapData)
	require.NoError(t, err)
	layers := c.FindType(uint16(mapitem.TypeLayer))
	require.Len(t, layers, 1)
	p, err := mapitem.Decode(layers[0].Type, layers[0].Data)
	require.NoError(t, err)
	layer := p.(*mapitem.TileLayer)

	require.Equal(t, make([]byte, 16), c.Data[layer.Data].Data)
	require.Equal(t, 16, c.Data[layer.Data].UncompressedLength())
}

// Info without strings is six words: version 1 and five absent references.
func TestScenarioEmptyInfo(t *testing.T) {
	c, err := twmap.ToContainer(&twmap.Map{})
	require.NoError(t, err)
	info := c.FindType(uint16(mapitem.TypeInfo))
	require.Len(t, info, 1)
	require.Equal(t, []byte{
		1, 0, 0, 0,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
		0xff, 0xff, 0xff, 0xff,
	}, info[0].Data)
}

func TestScenarioItemTypeTable(t *testing.T) {
	m := &twmap.Map{
		Images: []*twmap.Image{{Name: "img", Width: 1, Height: 1, Pixels: []byte{1, 2, 3, 4}}},
		Groups: []*twmap.Group{{Layers: []twmap.Layer{
			twmap.NewGameLayer(3, 3),
			twmap.NewTileLayer("Deco", 3, 3),
		}}},
	}
	mapData, err := twmap.Encode(m)
	require.NoError(t, err)

	decoded, err := twmap.Decode(mapData)
	require.NoError(t, err)
	again, err := twmap.Encode(decoded)
	require.NoError(t, err)

	c, err := df.Parse(again)
	require.NoError(t, err)
	require.Equal(t, []spec.ItemType{
		{TypeID: int32(mapitem.TypeVersion), Start: 0, Count: 1},
		{TypeID: int32(mapitem.TypeInfo), Start: 1, Count: 1},
		{TypeID: int32(mapitem.TypeImage), Start: 2, Count: 1},
		{TypeID: int32(mapitem.TypeGroup), Start: 3, Count: 1},
		{TypeID: int32(mapitem.TypeLayer), Start: 4, Count: 2},
		{TypeID: int32(mapitem.TypeEnvpoints), Start: 6, Count: 1},
	}, c.ItemTypes)
}

func TestNewMap(t *testing.T) {
	m := twmap.New(50, 40)
	game := m.GameLayer()
	require.NotNil(t, game)
	require.True(t, game.IsGame())
	require.Equal(t, 50, game.Grid.Width)
	require.Equal(t, 40, game.Grid.Height)

	game.Grid.Set(tile.Point{X: 3, Y: 4}, tile.Tile{ID: 1})
	mapData, err := twmap.Encode(m)
	require.NoError(t, err)
	decoded, err := twmap.Decode(mapData)
	require.NoError(t, err)
	require.Equal(t, tile.Tile{ID: 1}, decoded.GameLayer().Grid.At(tile.Point{X: 3, Y: 4}))

	count := 0
	for range m.Layers() {
		count++
	}
	require.Equal(t, 1, count)
}

func TestEncodeErrors(t *testing.T) {
	for _, tc := range []struct {
		Name   string
		Modify func(m *twmap.Map)
		Err    error
	}{
		{Name: "ImageRef", Modify: func(m *twmap.Map) {
			m.Groups[1].Layers[1].(*twmap.TileLayer).Image = 2
		}, Err: twmap.ErrInvalidReference},
		{Name: "EnvelopeRef", Modify: func(m *twmap.Map) {
			m.Groups[1].Layers[1].(*twmap.TileLayer).ColorEnv = 5
		}, Err: twmap.ErrInvalidReference},
		{Name: "QuadEnvelopeRef", Modify: func(m *twmap.Map) {
			m.Groups[0].Layers[0].(*twmap.QuadLayer).Quads[1].ColorEnv = 2
		}, Err: twmap.ErrInvalidReference},
		{Name: "NoGrid", Modify: func(m *twmap.Map) {
			m.Groups[1].Layers[0].(*twmap.TileLayer).Grid = nil
		}, Err: twmap.ErrInvalidLayer},
		{Name: "GridSize", Modify: func(m *twmap.Map) {
			m.Groups[1].Layers[0].(*twmap.TileLayer).Grid.Width = 5
		}, Err: spec.ErrSizeMismatch},
		{Name: "NilLayer", Modify: func(m *twmap.Map) {
			m.Groups[1].Layers[0] = nil
		}, Err: twmap.ErrInvalidLayer},
		{Name: "ExtraKnownType", Modify: func(m *twmap.Map) {
			m.Extra = append(m.Extra, df.Item{Type: uint16(mapitem.TypeGroup)})
		}, Err: spec.ErrInvalidItemTable},
		{Name: "Version", Modify: func(m *twmap.Map) {}, Err: spec.ErrUnsupportedVersion},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			m := internal.SampleMap()
			tc.Modify(m)
			opts := []twmap.Option{}
			if tc.Name == "Version" {
				opts = append(opts, twmap.WithVersion(2))
			}
			mapData, err := twmap.Encode(m, opts...)
			require.ErrorIs(t, err, tc.Err)
			require.Nil(t, mapData)
		})
	}
}
