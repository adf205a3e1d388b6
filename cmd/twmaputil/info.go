package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-twmap/df"
	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/twmap"
	"github.com/google/subcommands"
)

type infoCmd struct {
	inputPath string
	encoding  string
}

func (c *infoCmd) Name() string     { return "info" }
func (c *infoCmd) Synopsis() string { return "print header, item table and layers of a map" }
func (c *infoCmd) Usage() string {
	return "twmaputil info -i <path> [-strings <encoding>]\n"
}
func (c *infoCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
	f.StringVar(&c.encoding, "strings", "", "String encoding (utf-16le, utf-8)")
}

func (c *infoCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	encoding, err := parseEncoding(c.encoding)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	mapData, err := os.ReadFile(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	container, err := df.Parse(mapData, df.WithLogger(slog.Default()))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	h := container.Header
	fmt.Printf("signature %q version %d size %d swaplen %d\n", h.Signature[:], h.Version, h.Size, h.SwapLen)
	fmt.Printf("items %d (%d bytes), data blocks %d (%d bytes)\n", h.NumItems, h.ItemSize, h.NumData, h.DataSize)
	for _, t := range container.ItemTypes {
		fmt.Printf("  type %-9v start %4d count %4d\n", mapitem.Type(t.TypeID), t.Start, t.Count)
	}

	m, err := twmap.FromContainer(container, twmap.WithLogger(slog.Default()), twmap.WithStringEncoding(encoding))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	fmt.Printf("author %q version %q credits %q license %q\n", m.Info.Author, m.Info.Version, m.Info.Credits, m.Info.License)
	for i, image := range m.Images {
		fmt.Printf("image %d %q %dx%d external=%v\n", i, image.Name, image.Width, image.Height, image.External)
	}
	for i, envelope := range m.Envelopes {
		fmt.Printf("envelope %d %q channels %d points %d\n", i, envelope.Name, envelope.Channels, len(envelope.Points))
	}
	for i, group := range m.Groups {
		fmt.Printf("group %d %q layers %d\n", i, group.Name, len(group.Layers))
		for _, layer := range group.Layers {
			switch l := layer.(type) {
			case *twmap.TileLayer:
				fmt.Printf("  tiles %q %dx%d game=%v\n", l.Name, l.Grid.Width, l.Grid.Height, l.IsGame())
			case *twmap.QuadLayer:
				fmt.Printf("  quads %q count %d\n", l.Name, len(l.Quads))
			case *twmap.RawLayer:
				fmt.Printf("  raw kind %d (%d bytes)\n", l.Kind, len(l.Data))
			}
		}
	}
	if len(m.Extra) > 0 || len(m.ExtraData) > 0 {
		fmt.Printf("extra items %d, unreferenced data blocks %d\n", len(m.Extra), len(m.ExtraData))
	}

	return subcommands.ExitSuccess
}
