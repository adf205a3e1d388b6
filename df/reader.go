package df

import (
	"fmt"
	"slices"

	"github.com/eak1mov/go-twmap/df/spec"
)

// Parse decodes a datafile. It either returns a complete container or an error.
// The container does not alias buffer.
func Parse(buffer []byte, opts ...Option) (*Container, error) {
	config := newConfig(opts)
	logger := config.Logger

	header, err := spec.DeserializeHeader(buffer)
	if err != nil {
		return nil, err
	}
	logger.Debug("twmap: header",
		"version", header.Version,
		"types", header.NumItemTypes,
		"items", header.NumItems,
		"data", header.NumData)

	r := spec.NewReader(buffer)
	if _, err := r.ReadBytes(spec.HeaderLength); err != nil {
		return nil, err
	}

	itemTypes, err := spec.ReadItemTypes(r, int(header.NumItemTypes))
	if err != nil {
		return nil, err
	}
	itemOffsets, err := spec.ReadInt32s(r, int(header.NumItems))
	if err != nil {
		return nil, err
	}
	dataOffsets, err := spec.ReadInt32s(r, int(header.NumData))
	if err != nil {
		return nil, err
	}
	var dataSizes []int32
	if spec.HasDataSizes(header.Version) {
		dataSizes, err = spec.ReadInt32s(r, int(header.NumData))
		if err != nil {
			return nil, err
		}
	}
	itemArea, err := r.ReadBytes(int(header.ItemSize))
	if err != nil {
		return nil, err
	}
	dataArea, err := r.ReadBytes(int(header.DataSize))
	if err != nil {
		return nil, err
	}
	if err := header.Check(); err != nil {
		return nil, err
	}
	if r.Remaining() > 0 {
		logger.Debug("twmap: trailing bytes ignored", "count", r.Remaining())
	}

	if err := spec.CheckItemTypes(itemTypes, int(header.NumItems)); err != nil {
		return nil, err
	}

	logger.Debug("twmap: read items")
	items, err := readItems(itemArea, itemOffsets, itemTypes)
	if err != nil {
		return nil, err
	}

	logger.Debug("twmap: read data")
	data, err := readData(dataArea, dataOffsets, dataSizes)
	if err != nil {
		return nil, err
	}

	return &Container{
		Header:    *header,
		ItemTypes: itemTypes,
		Items:     items,
		Data:      data,
	}, nil
}

func readItems(area []byte, offsets []int32, types []spec.ItemType) ([]Item, error) {
	lengths, err := spec.Lengths(offsets, len(area))
	if err != nil {
		return nil, fmt.Errorf("item offsets: %w", err)
	}

	items := make([]Item, len(offsets))
	for _, t := range types {
		for i := t.Start; i < t.Start+t.Count; i++ {
			r := spec.NewReader(area[offsets[i]:])
			typeID, id, payload, err := spec.ReadItem(r, lengths[i])
			if err != nil {
				return nil, fmt.Errorf("item %d: %w", i, err)
			}
			if int32(typeID) != t.TypeID {
				return nil, fmt.Errorf("%w: item %d has type %d inside run of type %d",
					spec.ErrInvalidItemTable, i, typeID, t.TypeID)
			}
			items[i] = Item{Type: typeID, ID: id, Data: slices.Clone(payload)}
		}
	}
	return items, nil
}

func readData(area []byte, offsets []int32, sizes []int32) ([]DataBlock, error) {
	lengths, err := spec.Lengths(offsets, len(area))
	if err != nil {
		return nil, fmt.Errorf("data offsets: %w", err)
	}

	blocks := make([]DataBlock, len(offsets))
	for i, offset := range offsets {
		compressed := area[offset : int(offset)+lengths[i]]
		size := -1
		if sizes != nil {
			size = int(sizes[i])
			if size < 0 {
				return nil, fmt.Errorf("%w: data block %d has negative size %d", spec.ErrSizeMismatch, i, size)
			}
		}
		data, err := spec.Decompress(compressed, size)
		if err != nil {
			return nil, fmt.Errorf("data block %d: %w", i, err)
		}
		blocks[i] = DataBlock{Data: data}
	}
	return blocks, nil
}
