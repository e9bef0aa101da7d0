// Package errs defines the sentinel errors shared across rowkey packages.
//
// Decode errors are classified into three kinds so callers can distinguish
// between input that ended too early, input that is structurally inconsistent,
// and fields that exceed the representable range of their encoding. Malformed
// input is an expected condition for a format library: no rowkey operation
// panics on hostile bytes.
package errs

import "errors"

var (
	// ErrTruncated indicates a decode operation ran out of bytes before
	// completing a field. The buffer must be treated as invalid input;
	// no partial data is returned.
	ErrTruncated = errors.New("buffer truncated")

	// ErrMalformed indicates a decoded offset, length, index or marker is
	// structurally inconsistent with the buffer (e.g. offset beyond the
	// buffer end, dictionary index out of range).
	ErrMalformed = errors.New("buffer malformed")

	// ErrOverflow indicates a length or index field exceeds the
	// representable range for its encoding (e.g. a value longer than the
	// fixed 4-byte length field, or a varint wider than 32 bits where a
	// column id is expected).
	ErrOverflow = errors.New("field overflows encoding")

	// ErrUnknownCodec indicates an unrecognized codec kind.
	ErrUnknownCodec = errors.New("unknown codec kind")

	// ErrUnknownCompression indicates an unrecognized compression type.
	ErrUnknownCompression = errors.New("unknown compression type")

	// ErrUnknownHash indicates an unrecognized hash kind.
	ErrUnknownHash = errors.New("unknown hash kind")

	// ErrInvalidBlock indicates a key block with a bad magic number or an
	// inconsistent header.
	ErrInvalidBlock = errors.New("invalid key block")

	// ErrInvalidLabelName indicates a label set failed validation: a label
	// has an empty name, or a name appears more than once.
	ErrInvalidLabelName = errors.New("invalid label name")
)
