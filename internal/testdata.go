// Package internal provides map documents shared by tests.
package internal

import (
	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/tile"
	"github.com/eak1mov/go-twmap/twmap"
)

// SampleMap exercises every item type and layer kind.
func SampleMap() *twmap.Map {
	game := twmap.NewGameLayer(4, 3)
	for x := range 4 {
		game.Grid.Set(tile.Point{X: x, Y: 2}, tile.Tile{ID: 1})
	}
	game.Grid.Set(tile.Point{X: 0, Y: 0}, tile.Tile{ID: 192})

	front := twmap.NewTileLayer("Front", 4, 3)
	front.Image = 0
	front.ColorEnv = 0
	front.ColorEnvOffset = 250
	front.Color = mapitem.Color{R: 255, G: 200, B: 150, A: 100}
	front.Flags = mapitem.LayerFlagDetail
	front.Grid.Set(tile.Point{X: 1, Y: 1}, tile.Tile{ID: 17, Flags: tile.FlagFlipH | 3})
	front.Grid.Set(tile.Point{X: 2, Y: 1}, tile.Tile{ID: 18, Flags: tile.FlagFlipV, Skip: 2, Reserved: 5})
	front.Extra[2] = []byte{1, 2, 3, 4}

	quads := &twmap.QuadLayer{Name: "Sky", Image: 1, Quads: make([]mapitem.Quad, 2)}
	for i := range quads.Quads {
		q := &quads.Quads[i]
		size := int32(1024 * (i + 1))
		q.Points = [5]mapitem.Point{{X: 0, Y: 0}, {X: size, Y: 0}, {X: 0, Y: size}, {X: size, Y: size}, {X: size / 2, Y: size / 2}}
		q.Colors = [4]mapitem.Color{mapitem.White, mapitem.White, {R: 0, G: 0, B: 64, A: 255}, {R: 0, G: 0, B: 64, A: 255}}
		q.TexCoords = [4]mapitem.Point{{X: 0, Y: 0}, {X: 1024, Y: 0}, {X: 0, Y: 1024}, {X: 1024, Y: 1024}}
		q.PosEnv = 1
		q.ColorEnv = -1
	}

	return &twmap.Map{
		Info: twmap.Info{
			Author:   "nameless tee",
			Version:  "1.2",
			Credits:  "Grass tiles by someone else",
			License:  "CC BY-SA 3.0",
			Settings: []string{"sv_gametype ctf", "sv_scorelimit 400"},
		},
		Images: []*twmap.Image{
			{Name: "checker", Width: 2, Height: 2, Pixels: []byte{
				255, 255, 255, 255, 0, 0, 0, 255,
				0, 0, 0, 255, 255, 255, 255, 255,
			}},
			{Name: "grass_main", Width: 1024, Height: 1024, External: true},
		},
		Envelopes: []*twmap.Envelope{
			{Name: "fade", Channels: 4, Points: []mapitem.EnvPoint{
				{Time: 0, Curve: mapitem.CurveLinear, Values: [4]int32{1024, 1024, 1024, 1024}},
				{Time: 1000, Curve: mapitem.CurveSmooth, Values: [4]int32{1024, 1024, 1024, 0}},
			}},
			{Name: "sway", Channels: 3, Synchronized: true, Points: []mapitem.EnvPoint{
				{Time: 0, Curve: mapitem.CurveStep, Values: [4]int32{0, 512, 0, 0}},
			}},
		},
		Groups: []*twmap.Group{
			{Name: "Background", ParallaxX: 0, ParallaxY: 0, Layers: []twmap.Layer{quads}},
			{
				Name: "Game", ParallaxX: 100, ParallaxY: 100,
				UseClipping: true, ClipX: -32, ClipY: -32, ClipW: 256, ClipH: 192,
				Layers: []twmap.Layer{game, front, &twmap.RawLayer{
					Kind: 10,
					Data: []byte{0, 0, 0, 0, 10, 0, 0, 0, 0, 0, 0, 0, 2, 0, 0, 0},
				}},
			},
		},
		Extra: []df.Item{
			{Type: 0x8000, ID: 0, Data: []byte{0xde, 0xad, 0xbe, 0xef}},
		},
	}
}

// MinimalMap is what a fresh editor session exports.
func MinimalMap() *twmap.Map {
	return twmap.New(2, 2)
}
