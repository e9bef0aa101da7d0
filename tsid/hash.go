package tsid

import (
	"fmt"
	"hash/fnv"

	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// HashFunc maps a byte sequence to a 64-bit identifier.
//
// The generator is agnostic to which hash family is plugged in; any pure
// function of the input bytes works. Wider hashes are truncated to 64 bits.
type HashFunc func(data []byte) uint64

// XXHash64 hashes with xxHash64, the default family for series identifiers.
func XXHash64(data []byte) uint64 {
	return xxhash.Sum64(data)
}

// XXH3 hashes with XXH3-64.
func XXH3(data []byte) uint64 {
	return xxh3.Hash(data)
}

// Murmur3 hashes with 64-bit Murmur3.
func Murmur3(data []byte) uint64 {
	return murmur3.Sum64(data)
}

// Murmur3x128 hashes with 128-bit Murmur3 folded to 64 bits by XORing the
// two halves. Sum64 already equals the first half of Sum128, so folding keeps
// this family distinct from Murmur3.
func Murmur3x128(data []byte) uint64 {
	h1, h2 := murmur3.Sum128(data)
	return h1 ^ h2
}

// FNV1a hashes with 64-bit FNV-1a.
func FNV1a(data []byte) uint64 {
	h := fnv.New64a()
	_, _ = h.Write(data)

	return h.Sum64()
}

// HashFuncFor returns the HashFunc for the given hash kind.
func HashFuncFor(kind format.HashKind) (HashFunc, error) {
	switch kind {
	case format.HashXXHash64:
		return XXHash64, nil
	case format.HashXXH3:
		return XXH3, nil
	case format.HashMurmur3:
		return Murmur3, nil
	case format.HashMurmur3128:
		return Murmur3x128, nil
	case format.HashFNV1a:
		return FNV1a, nil
	default:
		return nil, fmt.Errorf("%w: 0x%02x", errs.ErrUnknownHash, uint8(kind))
	}
}
