//go:build gozstd

package compress

import (
	"github.com/valyala/gozstd"
)

// CgoZstdCodec provides Zstandard compression backed by the cgo libzstd
// bindings. It is an opt-in alternative to the pure-Go ZstdCodec for
// deployments where cgo is acceptable and the native library's throughput is
// worth the build complexity. Enable with the gozstd build tag.
type CgoZstdCodec struct{}

var _ Codec = (*CgoZstdCodec)(nil)

// NewCgoZstdCodec creates a new cgo-backed Zstd codec.
func NewCgoZstdCodec() CgoZstdCodec {
	return CgoZstdCodec{}
}

// Compress compresses data at the default level (3).
func (c CgoZstdCodec) Compress(data []byte) ([]byte, error) {
	return gozstd.CompressLevel(nil, data, 3), nil
}

// Decompress decompresses zstd data.
func (c CgoZstdCodec) Decompress(data []byte) ([]byte, error) {
	if len(data) == 0 {
		return nil, nil
	}

	return gozstd.Decompress(nil, data)
}
