package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/eak1mov/go-twmap/mapitem"
	"github.com/eak1mov/go-twmap/twmap"
	"github.com/google/subcommands"
	"github.com/schollz/progressbar/v3"
)

var errNotStable = errors.New("re-export is not stable")

type verifyCmd struct {
	encoding string
}

func (c *verifyCmd) Name() string     { return "verify" }
func (c *verifyCmd) Synopsis() string { return "check that maps decode and re-export cleanly" }
func (c *verifyCmd) Usage() string {
	return "twmaputil verify [-strings <encoding>] <path>...\n"
}
func (c *verifyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.encoding, "strings", "", "String encoding (utf-16le, utf-8)")
}

func verifyMap(mapData []byte, encoding mapitem.StringEncoding) error {
	m, err := twmap.Decode(mapData, twmap.WithStringEncoding(encoding))
	if err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	exported, err := twmap.Encode(m, twmap.WithStringEncoding(encoding))
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	again, err := twmap.Decode(exported, twmap.WithStringEncoding(encoding))
	if err != nil {
		return fmt.Errorf("decode exported: %w", err)
	}
	reexported, err := twmap.Encode(again, twmap.WithStringEncoding(encoding))
	if err != nil {
		return fmt.Errorf("encode exported: %w", err)
	}
	if !bytes.Equal(exported, reexported) {
		return errNotStable
	}
	return nil
}

func (c *verifyCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...any) subcommands.ExitStatus {
	encoding, err := parseEncoding(c.encoding)
	if err != nil {
		log.Println(err)
		return subcommands.ExitUsageError
	}
	if f.NArg() == 0 {
		log.Println("no input maps")
		return subcommands.ExitUsageError
	}

	failed := 0
	bar := progressbar.Default(int64(f.NArg()))
	for _, path := range f.Args() {
		mapData, err := os.ReadFile(path)
		if err == nil {
			err = verifyMap(mapData, encoding)
		}
		if err != nil {
			bar.Clear()
			log.Printf("%s: %v", path, err)
			failed++
		}
		bar.Add(1)
	}
	bar.Finish()
	fmt.Println()

	if failed > 0 {
		log.Printf("%d of %d maps failed", failed, f.NArg())
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
