// Package df reads and writes the item and data block container used by
// Teeworlds and DDNet map files ("datafiles").
package df

import (
	"log/slog"

	"github.com/eak1mov/go-twmap/df/spec"
)

// Item is a typed record of the container. ID is the instance id within the type.
type Item struct {
	Type uint16
	ID   uint16
	Data []byte
}

// DataBlock is a bulk byte segment referenced by index from item payloads.
type DataBlock struct {
	Data []byte // uncompressed content
}

func (b DataBlock) UncompressedLength() int {
	return len(b.Data)
}

// Container is a decoded datafile. Items are grouped into runs of ascending
// type as described by ItemTypes.
type Container struct {
	Header    spec.Header
	ItemTypes []spec.ItemType
	Items     []Item
	Data      []DataBlock
}

// FindType returns the run of items with the given type.
func (c *Container) FindType(typeID uint16) []Item {
	for _, t := range c.ItemTypes {
		if t.TypeID == int32(typeID) {
			return c.Items[t.Start : t.Start+t.Count]
		}
	}
	return nil
}

// AddData appends a data block and returns its index.
func (c *Container) AddData(data []byte) int32 {
	c.Data = append(c.Data, DataBlock{Data: data})
	return int32(len(c.Data) - 1)
}

type config struct {
	Logger           *slog.Logger
	Version          int32
	CompressionLevel int
}

type Option func(*config)

func WithLogger(logger *slog.Logger) Option {
	return func(c *config) { c.Logger = logger }
}

// WithVersion selects the datafile version written by Serialize (3 or 4).
func WithVersion(version int32) Option {
	return func(c *config) { c.Version = version }
}

func WithCompressionLevel(level int) Option {
	return func(c *config) { c.CompressionLevel = level }
}

func newConfig(opts []Option) config {
	config := config{
		Logger:           slog.New(slog.DiscardHandler),
		CompressionLevel: spec.DefaultCompressionLevel,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return config
}
