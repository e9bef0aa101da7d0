package rowcodec

import (
	"bytes"
	"fmt"

	"github.com/tskv/rowkey/endian"
	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

const (
	// escapeChunkSize is the number of value bytes emitted per escape group.
	escapeChunkSize = 8

	// escapeContinue marks a full group with more groups following.
	// It must compare greater than any terminal marker so that a longer value
	// sorts after a shorter value sharing the same prefix.
	escapeContinue = 0xFF
)

// MemcomparableCodec produces encodings whose byte-lexicographic order matches
// Compare on the decoded rows.
//
// Each pair is encoded as a fixed-width big-endian column id followed by the
// value in an escaped chunk form:
//
//	[column id: uint32be][chunk: 8 bytes][marker: 1 byte]...
//
// A full 8-byte chunk with more value bytes following is emitted verbatim with
// marker 0xFF. The final chunk holds the remaining 0..8 value bytes,
// zero-padded to 8 bytes, with the marker set to the count of significant
// bytes (0x00..0x08). An exactly-full final chunk gets marker 0x08; no empty
// trailing group is emitted. Every value therefore produces at least one
// group, and no padding byte can be mistaken for a continuation marker.
//
// Big-endian column ids are mandatory: byte order of the encoded id must match
// numeric order for the comparison guarantee to hold.
type MemcomparableCodec struct {
	engine endian.EndianEngine
}

var _ Codec = MemcomparableCodec{}

// NewMemcomparableCodec creates a new order-preserving codec.
func NewMemcomparableCodec() MemcomparableCodec {
	return MemcomparableCodec{engine: endian.GetBigEndianEngine()}
}

// Kind returns format.KindMemcomparable.
func (MemcomparableCodec) Kind() format.Kind {
	return format.KindMemcomparable
}

// Encode appends the order-preserving encoding of row to dst.
func (c MemcomparableCodec) Encode(dst []byte, row Row) ([]byte, error) {
	for i := range row {
		dst = c.engine.AppendUint32(dst, row[i].ColumnID)
		dst = appendEscaped(dst, row[i].Value)
	}

	return dst, nil
}

// appendEscaped appends the escaped chunk form of value to dst.
func appendEscaped(dst, value []byte) []byte {
	for len(value) > escapeChunkSize {
		dst = append(dst, value[:escapeChunkSize]...)
		dst = append(dst, escapeContinue)
		value = value[escapeChunkSize:]
	}

	// Final group: 0..8 significant bytes, zero-padded, marker = count.
	dst = append(dst, value...)
	for pad := escapeChunkSize - len(value); pad > 0; pad-- {
		dst = append(dst, 0x00)
	}
	dst = append(dst, byte(len(value)))

	return dst
}

// Decode decodes a complete memcomparable row into owned pairs.
//
// Returns errs.ErrTruncated when a column id or escape group is cut short,
// and errs.ErrMalformed for an invalid marker byte or non-zero padding.
func (c MemcomparableCodec) Decode(data []byte) (Row, error) {
	row := make(Row, 0, 4)
	offset := 0

	for offset < len(data) {
		if len(data)-offset < 4 {
			return nil, fmt.Errorf("%w: %d bytes remain for a 4-byte column id", errs.ErrTruncated, len(data)-offset)
		}
		colID := c.engine.Uint32(data[offset:])
		offset += 4

		value, n, err := decodeEscaped(data[offset:])
		if err != nil {
			return nil, err
		}
		offset += n

		row = append(row, Pair{ColumnID: colID, Value: value})
	}

	return row, nil
}

// decodeEscaped decodes one escaped value starting at data[0].
// Returns the owned value bytes and the number of encoded bytes consumed.
func decodeEscaped(data []byte) ([]byte, int, error) {
	value := make([]byte, 0, escapeChunkSize)
	offset := 0

	for {
		if len(data)-offset < escapeChunkSize+1 {
			return nil, 0, fmt.Errorf("%w: %d bytes remain for a 9-byte escape group", errs.ErrTruncated, len(data)-offset)
		}

		chunk := data[offset : offset+escapeChunkSize]
		marker := data[offset+escapeChunkSize]
		offset += escapeChunkSize + 1

		if marker == escapeContinue {
			value = append(value, chunk...)
			continue
		}
		if marker > escapeChunkSize {
			return nil, 0, fmt.Errorf("%w: escape marker 0x%02x", errs.ErrMalformed, marker)
		}

		// Terminal group: marker counts the significant bytes; the padding
		// must be zero for the encoding to stay canonical and comparable.
		for _, pad := range chunk[marker:] {
			if pad != 0x00 {
				return nil, 0, fmt.Errorf("%w: non-zero escape padding 0x%02x", errs.ErrMalformed, pad)
			}
		}
		value = append(value, chunk[:marker]...)

		return value, offset, nil
	}
}

// CompareEncoded compares two memcomparable-encoded rows without decoding
// them. The result equals Compare on the decoded rows; that equivalence is
// the codec's defining property.
func (MemcomparableCodec) CompareEncoded(a, b []byte) int {
	return bytes.Compare(a, b)
}
