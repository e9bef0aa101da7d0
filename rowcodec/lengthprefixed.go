package rowcodec

import (
	"fmt"
	"math"

	"github.com/tskv/rowkey/endian"
	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// lpHeaderSize is the fixed per-pair header: 4-byte column id + 4-byte length.
const lpHeaderSize = 8

// LengthPrefixedCodec encodes each pair with fixed 4-byte little-endian
// headers:
//
//	[column id: uint32le][value length: uint32le][value bytes]
//
// There is no sequence-length prefix; decode reads pairs until the buffer is
// exhausted. The fixed-width headers make decode branch-free (no varint
// continuation loop) at the cost of larger output than VarintCodec.
type LengthPrefixedCodec struct {
	engine endian.EndianEngine
}

var _ Codec = LengthPrefixedCodec{}

// NewLengthPrefixedCodec creates a new length-prefixed codec.
// The byte order is fixed to little-endian; both sides of a round trip must
// agree on it.
func NewLengthPrefixedCodec() LengthPrefixedCodec {
	return LengthPrefixedCodec{engine: endian.GetLittleEndianEngine()}
}

// Kind returns format.KindLengthPrefixed.
func (LengthPrefixedCodec) Kind() format.Kind {
	return format.KindLengthPrefixed
}

// Encode appends the length-prefixed encoding of row to dst.
//
// Returns errs.ErrOverflow if a value is longer than the fixed 4-byte length
// field can represent.
func (c LengthPrefixedCodec) Encode(dst []byte, row Row) ([]byte, error) {
	for i := range row {
		if uint64(len(row[i].Value)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: value length %d exceeds uint32", errs.ErrOverflow, len(row[i].Value))
		}

		dst = c.engine.AppendUint32(dst, row[i].ColumnID)
		dst = c.engine.AppendUint32(dst, uint32(len(row[i].Value)))
		dst = append(dst, row[i].Value...)
	}

	return dst, nil
}

// Decode reads pairs until data is exhausted.
//
// Returns errs.ErrTruncated if fewer than 8 bytes remain for a pair header or
// a declared value length exceeds the remaining bytes.
func (c LengthPrefixedCodec) Decode(data []byte) (Row, error) {
	row := make(Row, 0, len(data)/lpHeaderSize)
	offset := 0

	for offset < len(data) {
		if len(data)-offset < lpHeaderSize {
			return nil, fmt.Errorf("%w: %d bytes remain for an 8-byte pair header", errs.ErrTruncated, len(data)-offset)
		}

		colID := c.engine.Uint32(data[offset:])
		vlen64 := uint64(c.engine.Uint32(data[offset+4:]))
		offset += lpHeaderSize

		if vlen64 > uint64(len(data)-offset) {
			return nil, fmt.Errorf("%w: value needs %d bytes, %d remain", errs.ErrTruncated, vlen64, len(data)-offset)
		}
		vlen := int(vlen64)

		value := append([]byte(nil), data[offset:offset+vlen]...)
		offset += vlen

		row = append(row, Pair{ColumnID: colID, Value: value})
	}

	return row, nil
}
