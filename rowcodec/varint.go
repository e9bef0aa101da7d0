package rowcodec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// VarintCodec encodes each pair as LEB128 variable-length integers:
//
//	[column id: uvarint][value length: uvarint][value bytes]
//
// There is no sequence-length prefix; decode reads pairs until the buffer is
// exhausted. Small column ids and short values dominate primary keys in
// practice, so this layout is usually the smallest of the non-dictionary
// codecs.
//
// A pair with column id 0 and an empty value encodes to exactly two zero
// bytes.
type VarintCodec struct{}

var _ Codec = VarintCodec{}

// NewVarintCodec creates a new varint codec.
func NewVarintCodec() VarintCodec {
	return VarintCodec{}
}

// Kind returns format.KindVarint.
func (VarintCodec) Kind() format.Kind {
	return format.KindVarint
}

// Encode appends the varint encoding of row to dst.
func (VarintCodec) Encode(dst []byte, row Row) ([]byte, error) {
	for i := range row {
		dst = binary.AppendUvarint(dst, uint64(row[i].ColumnID))
		dst = binary.AppendUvarint(dst, uint64(len(row[i].Value)))
		dst = append(dst, row[i].Value...)
	}

	return dst, nil
}

// Decode reads pairs until data is exhausted.
//
// Returns errs.ErrTruncated if a varint continuation or a declared value
// length runs past the end of the buffer, and errs.ErrOverflow if a column id
// or length field exceeds its representable range.
func (VarintCodec) Decode(data []byte) (Row, error) {
	row := make(Row, 0, 4)
	offset := 0

	for offset < len(data) {
		colID, n, err := readColumnID(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		vlen, n, err := readUvarint(data, offset)
		if err != nil {
			return nil, err
		}
		if vlen > math.MaxInt32 {
			return nil, fmt.Errorf("%w: value length %d", errs.ErrOverflow, vlen)
		}
		offset += n

		if int(vlen) > len(data)-offset {
			return nil, fmt.Errorf("%w: value needs %d bytes, %d remain", errs.ErrTruncated, vlen, len(data)-offset)
		}

		value := append([]byte(nil), data[offset:offset+int(vlen)]...)
		offset += int(vlen)

		row = append(row, Pair{ColumnID: colID, Value: value})
	}

	return row, nil
}
