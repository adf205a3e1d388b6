package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/eak1mov/go-twmap/twmap"
	"github.com/google/subcommands"
)

type convertCmd struct {
	inputPath      string
	outputPath     string
	version        int
	level          int
	inputEncoding  string
	outputEncoding string
}

func (c *convertCmd) Name() string     { return "convert" }
func (c *convertCmd) Synopsis() string { return "re-export a map in canonical item order" }
func (c *convertCmd) Usage() string {
	return "twmaputil convert -i <path> -o <path> [-version 3|4 -level <n> -is <encoding> -os <encoding>]\n"
}
func (c *convertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.inputPath, "i", "", "Input map path")
	f.StringVar(&c.outputPath, "o", "", "Output map path")
	f.IntVar(&c.version, "version", int(spec.Version4), "Output datafile version (3, 4)")
	f.IntVar(&c.level, "level", spec.DefaultCompressionLevel, "Data block compression level")
	f.StringVar(&c.inputEncoding, "is", "", "Input string encoding (utf-16le, utf-8)")
	f.StringVar(&c.outputEncoding, "os", "", "Output string encoding (utf-16le, utf-8)")
}

func (c *convertCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	if !spec.SupportedVersion(int32(c.version)) {
		log.Printf("invalid output version: %d", c.version)
		return subcommands.ExitUsageError
	}
	inputEncoding, err := parseEncoding(c.inputEncoding)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	outputEncoding, err := parseEncoding(c.outputEncoding)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}

	mapData, err := os.ReadFile(c.inputPath)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	m, err := twmap.Decode(mapData, twmap.WithLogger(slog.Default()), twmap.WithStringEncoding(inputEncoding))
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	output, err := twmap.Encode(
		m,
		twmap.WithLogger(slog.Default()),
		twmap.WithVersion(int32(c.version)),
		twmap.WithCompressionLevel(c.level),
		twmap.WithStringEncoding(outputEncoding),
	)
	if err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	if err := os.WriteFile(c.outputPath, output, 0o644); err != nil {
		log.Println(err)
		return subcommands.ExitFailure
	}

	return subcommands.ExitSuccess
}
