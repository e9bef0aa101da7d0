// Package rowkey provides binary encodings for the primary keys of a
// time-series storage format, plus a hash-based series identifier generator.
//
// A primary key is an ordered sequence of (column id, label value) pairs.
// Five interchangeable codecs cover the practical space/time/ordering
// trade-offs:
//
//   - Varint: LEB128 headers, compact for small ids and short values
//   - LengthPrefixed: fixed 4-byte headers, fastest sequential decode
//   - Memcomparable: encoded bytes compare like the decoded rows
//   - Dictionary: per-column value dictionaries for repetitive batches
//   - Schema: offset-based layout with zero-copy field access
//
// # Basic Usage
//
// Encoding and decoding a single row:
//
//	row := rowcodec.Row{
//	    {ColumnID: 0, Value: []byte("web1")},
//	    {ColumnID: 1, Value: []byte("us-east")},
//	}
//	encoded, _ := rowkey.Encode(format.KindVarint, nil, row)
//	decoded, _ := rowkey.Decode(format.KindVarint, encoded)
//
// Batching rows into a compressed key block:
//
//	block, _ := rowkey.EncodeBlock(format.KindDictionary, format.CompressionS2, rows)
//	rows, _ = rowkey.DecodeBlock(block)
//
// Deriving a series identifier from labels:
//
//	id := rowkey.SeriesID(tsid.LabelSet{{Name: "host", Value: "web1"}})
//
// This package provides convenient top-level wrappers; for fine-grained
// control (zero-copy views, custom hash families, collision measurement) use
// the rowcodec, tsid and collision packages directly.
package rowkey

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tskv/rowkey/compress"
	"github.com/tskv/rowkey/endian"
	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
	"github.com/tskv/rowkey/internal/pool"
	"github.com/tskv/rowkey/rowcodec"
	"github.com/tskv/rowkey/tsid"
)

// blockMagic identifies a key block header ("RK", little-endian).
const blockMagic uint16 = 0x4B52

// blockHeaderSize is the fixed block header:
// magic (2) + codec kind (1) + compression type (1).
const blockHeaderSize = 4

var blockEngine = endian.GetLittleEndianEngine()

// Encode encodes a single row with the given codec kind, appending to dst.
func Encode(kind format.Kind, dst []byte, row rowcodec.Row) ([]byte, error) {
	codec, err := rowcodec.New(kind)
	if err != nil {
		return nil, err
	}

	return codec.Encode(dst, row)
}

// Decode decodes a single row encoded with the given codec kind.
func Decode(kind format.Kind, data []byte) (rowcodec.Row, error) {
	codec, err := rowcodec.New(kind)
	if err != nil {
		return nil, err
	}

	return codec.Decode(data)
}

// SeriesID converts a label set to its 64-bit series identifier using the
// default hash family (xxHash64).
//
// The identifier is a pure function of the set's content: iteration order
// does not matter, and the same labels always produce the same identifier
// across processes. Use tsid.SeriesID directly to plug in another family.
func SeriesID(labels tsid.LabelSet) uint64 {
	return tsid.SeriesID(labels, tsid.XXHash64)
}

// EncodeBlock encodes a batch of rows into a single key block:
//
//	[magic: uint16le][codec kind: uint8][compression: uint8]
//	[compressed payload: uvarint(row count), then per row uvarint(length) + encoded row]
//
// The payload after the 4-byte header is compressed with the given
// compression type. Dictionary encoding plus a fast compressor is the usual
// configuration for batches with repetitive label values.
func EncodeBlock(kind format.Kind, compression format.CompressionType, rows []rowcodec.Row) ([]byte, error) {
	codec, err := rowcodec.New(kind)
	if err != nil {
		return nil, err
	}
	comp, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	buf := pool.GetKeyBuffer()
	defer pool.PutKeyBuffer(buf)

	buf.B = binary.AppendUvarint(buf.B, uint64(len(rows)))

	var rowBuf []byte
	for i := range rows {
		rowBuf, err = codec.Encode(rowBuf[:0], rows[i])
		if err != nil {
			return nil, err
		}

		buf.B = binary.AppendUvarint(buf.B, uint64(len(rowBuf)))
		buf.B = append(buf.B, rowBuf...)
	}

	compressed, err := comp.Compress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, blockHeaderSize+len(compressed))
	out = blockEngine.AppendUint16(out, blockMagic)
	out = append(out, byte(kind), byte(compression))
	out = append(out, compressed...)

	return out, nil
}

// DecodeBlock decodes a key block produced by EncodeBlock, returning the
// batch of rows in their original order.
func DecodeBlock(data []byte) ([]rowcodec.Row, error) {
	if len(data) < blockHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes for a 4-byte block header", errs.ErrTruncated, len(data))
	}
	if blockEngine.Uint16(data) != blockMagic {
		return nil, fmt.Errorf("%w: bad magic 0x%04x", errs.ErrInvalidBlock, blockEngine.Uint16(data))
	}

	kind := format.Kind(data[2])
	compression := format.CompressionType(data[3])

	codec, err := rowcodec.New(kind)
	if err != nil {
		return nil, err
	}
	comp, err := compress.GetCodec(compression)
	if err != nil {
		return nil, err
	}

	payload, err := comp.Decompress(data[blockHeaderSize:])
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidBlock, err)
	}

	offset := 0
	count, n := binary.Uvarint(payload)
	if n <= 0 {
		return nil, fmt.Errorf("%w: row count", errs.ErrTruncated)
	}
	offset += n

	// Every row costs at least a 1-byte length prefix.
	if count > uint64(len(payload)-offset) {
		return nil, fmt.Errorf("%w: row count %d exceeds payload", errs.ErrMalformed, count)
	}

	rows := make([]rowcodec.Row, 0, count)
	for i := uint64(0); i < count; i++ {
		rowLen, n := binary.Uvarint(payload[offset:])
		if n <= 0 {
			return nil, fmt.Errorf("%w: row length", errs.ErrTruncated)
		}
		if rowLen > math.MaxInt32 {
			return nil, fmt.Errorf("%w: row length %d", errs.ErrOverflow, rowLen)
		}
		offset += n

		if int(rowLen) > len(payload)-offset {
			return nil, fmt.Errorf("%w: row needs %d bytes, %d remain", errs.ErrTruncated, rowLen, len(payload)-offset)
		}

		row, err := codec.Decode(payload[offset : offset+int(rowLen)])
		if err != nil {
			return nil, err
		}
		offset += int(rowLen)

		rows = append(rows, row)
	}

	return rows, nil
}
