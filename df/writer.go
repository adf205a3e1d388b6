package df

import (
	"fmt"

	"github.com/eak1mov/go-twmap/df/spec"
)

// Serialize encodes c into a new datafile. Items must be grouped into runs of
// ascending type; the item type table, offsets and header sizes are derived
// from Items and Data, so c.Header and c.ItemTypes are not consulted except
// for the version.
//
// On error no buffer is returned.
func Serialize(c *Container, opts ...Option) ([]byte, error) {
	config := newConfig(opts)
	logger := config.Logger

	version := config.Version
	if version == 0 {
		version = c.Header.Version
	}
	if version == 0 {
		version = spec.Version4
	}
	if !spec.SupportedVersion(version) {
		return nil, fmt.Errorf("%w: %d", spec.ErrUnsupportedVersion, version)
	}

	typeIDs := make([]uint16, len(c.Items))
	itemLengths := make([]int, len(c.Items))
	for i, item := range c.Items {
		typeIDs[i] = item.Type
		itemLengths[i] = spec.ItemHeaderLength + len(item.Data)
	}
	itemTypes, err := spec.BuildItemTypes(typeIDs)
	if err != nil {
		return nil, err
	}

	logger.Debug("twmap: compress", "blocks", len(c.Data))
	compressed := make([][]byte, len(c.Data))
	dataLengths := make([]int, len(c.Data))
	dataSizes := make([]int32, len(c.Data))
	for i, block := range c.Data {
		compressed[i], err = spec.Compress(block.Data, config.CompressionLevel)
		if err != nil {
			return nil, fmt.Errorf("data block %d: %w", i, err)
		}
		dataLengths[i] = len(compressed[i])
		dataSizes[i] = int32(len(block.Data))
	}

	itemSize, dataSize := sum(itemLengths), sum(dataLengths)
	plan := spec.PlanLayout(version, len(itemTypes), len(c.Items), len(c.Data), itemSize, dataSize)
	if err := plan.Check(); err != nil {
		return nil, err
	}

	itemOffsets := spec.Offsets(itemLengths)
	dataOffsets := spec.Offsets(dataLengths)

	header := spec.Header{
		Signature:    spec.Signature,
		Version:      version,
		NumItemTypes: int32(len(itemTypes)),
		NumItems:     int32(len(c.Items)),
		NumData:      int32(len(c.Data)),
		ItemSize:     int32(itemSize),
		DataSize:     int32(dataSize),
	}
	header.Finish()
	layout := header.Layout()

	logger.Debug("twmap: write", "version", version, "size", layout.End)
	w := spec.NewWriter(layout.End)
	if err := w.WriteBytes(spec.SerializeHeader(&header)); err != nil {
		return nil, err
	}
	if err := spec.WriteItemTypes(w, itemTypes); err != nil {
		return nil, err
	}
	if err := spec.WriteInt32s(w, itemOffsets); err != nil {
		return nil, err
	}
	if err := spec.WriteInt32s(w, dataOffsets); err != nil {
		return nil, err
	}
	if spec.HasDataSizes(version) {
		if err := spec.WriteInt32s(w, dataSizes); err != nil {
			return nil, err
		}
	}
	for i, item := range c.Items {
		if got, want := w.Position()-layout.Items, int(itemOffsets[i]); got != want {
			return nil, fmt.Errorf("%w: item %d written at %d, planned %d", spec.ErrSizeMismatch, i, got, want)
		}
		if err := spec.WriteItem(w, item.Type, item.ID, item.Data); err != nil {
			return nil, err
		}
	}
	for _, data := range compressed {
		if err := w.WriteBytes(data); err != nil {
			return nil, err
		}
	}
	if w.Remaining() != 0 {
		return nil, fmt.Errorf("%w: %d bytes left unwritten", spec.ErrSizeMismatch, w.Remaining())
	}

	logger.Debug("twmap: done!")
	return w.Bytes(), nil
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
