package compress

import (
	"fmt"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// Compressor compresses an encoded key block.
type Compressor interface {
	// Compress compresses data and returns the result.
	//
	// The returned slice is newly allocated and owned by the caller (the
	// no-op codec returns the input as-is). The input is never modified.
	Compress(data []byte) ([]byte, error)
}

// Decompressor restores an encoded key block.
type Decompressor interface {
	// Decompress decompresses data previously produced by the matching
	// Compressor. Corrupted or mismatched input returns an error; it never
	// panics.
	Decompress(data []byte) ([]byte, error)
}

// Codec combines both directions. Every built-in implementation is a
// stateless value; internal encoder/decoder state is pooled.
type Codec interface {
	Compressor
	Decompressor
}

var builtinCodecs = map[format.CompressionType]Codec{
	format.CompressionNone: NewNoOpCodec(),
	format.CompressionZstd: NewZstdCodec(),
	format.CompressionS2:   NewS2Codec(),
	format.CompressionLZ4:  NewLZ4Codec(),
}

// GetCodec retrieves the built-in Codec for the specified compression type.
// An unrecognized type returns errs.ErrUnknownCompression.
func GetCodec(compressionType format.CompressionType) (Codec, error) {
	if codec, ok := builtinCodecs[compressionType]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownCompression, uint8(compressionType))
}
