package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/eak1mov/go-twmap/mapdb"
	"github.com/eak1mov/go-twmap/mapdir"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

type packCmd struct {
	inputPattern string
	outputPath   string
}

func (c *packCmd) Name() string     { return "pack" }
func (c *packCmd) Synopsis() string { return "store map files in a map database" }
func (c *packCmd) Usage() string {
	return "twmaputil pack -i <pattern> -o <path>\n"
}
func (c *packCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPattern, "i", "", "Input file pattern (e.g. maps/{name}.map)")
	f.StringVar(&c.outputPath, "o", "", "Output database path")
}

func (c *packCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := mapdir.NewReader(c.inputPattern)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	writer, err := mapdb.NewWriter(c.outputPath, mapdb.WithLogger(slog.Default()))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer writer.Close()

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitMaps(func(name string, mapData []byte) error {
		if err := writer.WriteMap(name, mapData); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		bar.Add(1)
		return nil
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}

type unpackCmd struct {
	inputPath     string
	outputPattern string
	list          bool
}

func (c *unpackCmd) Name() string     { return "unpack" }
func (c *unpackCmd) Synopsis() string { return "extract map files from a map database" }
func (c *unpackCmd) Usage() string {
	return "twmaputil unpack -i <path> [-o <pattern> | -l]\n"
}
func (c *unpackCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input database path")
	f.StringVar(&c.outputPattern, "o", "{name}", "Output file pattern (e.g. maps/{name}.map)")
	f.BoolVar(&c.list, "l", false, "List stored maps instead of extracting")
}

func (c *unpackCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	reader, err := mapdb.NewReader(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}
	defer reader.Close()

	if c.list {
		entries, err := reader.ListMaps()
		if err != nil {
			log.Println(err)
			return subcommands.ExitFailure
		}
		for _, entry := range entries {
			fmt.Printf("%s\tv%d\t%d\n", entry.Name, entry.Version, entry.Size)
		}
		return subcommands.ExitSuccess
	}

	writer, err := mapdir.NewWriter(c.outputPattern)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	bar := progressbar.NewOptions(-1, progressbar.OptionShowIts(), progressbar.OptionShowCount())
	err = reader.VisitMaps(func(name string, mapData []byte) error {
		err := writer.WriteMap(name, mapData)
		bar.Add(1)
		return err
	})
	bar.Finish()
	fmt.Println()

	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := writer.Finalize(); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
