package rowcodec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// Codec encodes and decodes primary-key rows.
//
// Encode appends the encoded row to dst and returns the extended slice,
// allowing callers to reuse buffers across rows. Decode materializes owned
// pairs; the returned row does not reference the input buffer and stays valid
// after the caller mutates or frees it. Codecs that support partial reads
// expose additional entry points (see SchemaCodec.View and
// MemcomparableCodec.CompareEncoded).
//
// Implementations are stateless value types, safe for concurrent use.
type Codec interface {
	// Kind returns the codec kind identifier stored in key block headers.
	Kind() format.Kind

	// Encode appends the encoded form of row to dst.
	Encode(dst []byte, row Row) ([]byte, error)

	// Decode decodes a complete encoded row into owned pairs.
	Decode(data []byte) (Row, error)
}

// New returns the codec for the given kind.
//
// The set of codecs is closed; an unrecognized kind returns
// errs.ErrUnknownCodec.
func New(kind format.Kind) (Codec, error) {
	switch kind {
	case format.KindVarint:
		return NewVarintCodec(), nil
	case format.KindLengthPrefixed:
		return NewLengthPrefixedCodec(), nil
	case format.KindMemcomparable:
		return NewMemcomparableCodec(), nil
	case format.KindDictionary:
		return NewDictionaryCodec(), nil
	case format.KindSchema:
		return NewSchemaCodec(), nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCodec, uint8(kind))
	}
}

// readUvarint decodes an unsigned varint at data[offset:].
// It distinguishes running out of bytes (ErrTruncated) from a continuation
// chain wider than 64 bits (ErrOverflow).
func readUvarint(data []byte, offset int) (uint64, int, error) {
	v, n := binary.Uvarint(data[offset:])
	if n == 0 {
		return 0, 0, errs.ErrTruncated
	}
	if n < 0 {
		return 0, 0, errs.ErrOverflow
	}

	return v, n, nil
}

// readColumnID decodes a varint column id, rejecting values wider than uint32.
func readColumnID(data []byte, offset int) (uint32, int, error) {
	v, n, err := readUvarint(data, offset)
	if err != nil {
		return 0, 0, err
	}
	if v > math.MaxUint32 {
		return 0, 0, fmt.Errorf("%w: column id %d exceeds uint32", errs.ErrOverflow, v)
	}

	return uint32(v), n, nil
}
