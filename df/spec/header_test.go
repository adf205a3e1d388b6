package spec_test

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/eak1mov/go-twmap/df/spec"
	"github.com/stretchr/testify/require"
)

func TestHeaderLength(t *testing.T) {
	require.Equal(t, binary.Size(spec.Header{}), spec.HeaderLength)
}

func TestHeaderSerializer(t *testing.T) {
	header1 := spec.Header{
		Signature:    spec.Signature,
		Version:      spec.Version4,
		NumItemTypes: 2,
		NumItems:     3,
		NumData:      1,
		ItemSize:     40,
		DataSize:     11,
	}
	header1.Finish()
	headerData := spec.SerializeHeader(&header1)
	require.Len(t, headerData, spec.HeaderLength)
	require.Equal(t, []byte("DATA"), headerData[:4])

	header2, err := spec.DeserializeHeader(headerData)
	require.NoError(t, err)
	require.Equal(t, header1, *header2)
	require.NoError(t, header2.Check())
}

func TestHeaderSignature(t *testing.T) {
	for _, tc := range []struct {
		Name      string
		Signature string
		Err       error
	}{
		{Name: "Forward", Signature: "DATA"},
		{Name: "Reversed", Signature: "ATAD"},
		{Name: "Lowercase", Signature: "data", Err: spec.ErrInvalidSignature},
		{Name: "Garbage", Signature: "PMTi", Err: spec.ErrInvalidSignature},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			header := spec.Header{Version: spec.Version4}
			copy(header.Signature[:], tc.Signature)
			_, err := spec.DeserializeHeader(spec.SerializeHeader(&header))
			if tc.Err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tc.Err)
			}
		})
	}
}

func TestHeaderVersion(t *testing.T) {
	for version, ok := range map[int32]bool{1: false, 2: false, 3: true, 4: true, 5: false, -1: false} {
		header := spec.Header{Signature: spec.Signature, Version: version}
		_, err := spec.DeserializeHeader(spec.SerializeHeader(&header))
		if ok {
			require.NoError(t, err, "version %d", version)
		} else {
			require.ErrorIs(t, err, spec.ErrUnsupportedVersion, "version %d", version)
		}
	}
}

func TestHeaderErrors(t *testing.T) {
	header := spec.Header{Signature: spec.Signature, Version: spec.Version4}
	data := spec.SerializeHeader(&header)

	_, err := spec.DeserializeHeader(data[:20])
	require.ErrorIs(t, err, spec.ErrOutOfBounds)

	header.NumItems = -1
	_, err = spec.DeserializeHeader(spec.SerializeHeader(&header))
	require.ErrorIs(t, err, spec.ErrSizeMismatch)
}

func TestHeaderLayout(t *testing.T) {
	header := spec.Header{
		Signature:    spec.Signature,
		Version:      spec.Version3,
		NumItemTypes: 1,
		NumItems:     2,
		NumData:      3,
		ItemSize:     20,
		DataSize:     30,
	}
	l3 := header.Layout()
	require.Equal(t, spec.Layout{
		ItemTypes:   36,
		ItemOffsets: 48,
		DataOffsets: 56,
		DataSizes:   68,
		Items:       68,
		Data:        88,
		End:         118,
	}, l3)

	header.Version = spec.Version4
	l4 := header.Layout()
	require.Equal(t, 80, l4.Items)
	require.Equal(t, 130, l4.End)

	header.Finish()
	require.Equal(t, int32(130-16), header.Size)
	require.Equal(t, int32(130-16-30), header.SwapLen)

	header.SwapLen++
	require.ErrorIs(t, header.Check(), spec.ErrSizeMismatch)
}

func TestLayoutCheck(t *testing.T) {
	header := spec.Header{Version: spec.Version4, NumItemTypes: 1, NumItems: 1, NumData: 1, ItemSize: 8, DataSize: 16}
	require.NoError(t, header.Layout().Check())
	require.Equal(t, header.Layout(), spec.PlanLayout(spec.Version4, 1, 1, 1, 8, 16))

	l := spec.PlanLayout(spec.Version4, 1, 1, 1, math.MaxInt32, 1)
	require.ErrorIs(t, l.Check(), spec.ErrSizeMismatch)

	l = spec.PlanLayout(spec.Version3, 0, 0, 0, 0, int(spec.MaxFileLength)-spec.HeaderLength)
	require.NoError(t, l.Check())
	l.End++
	require.ErrorIs(t, l.Check(), spec.ErrSizeMismatch)
}
