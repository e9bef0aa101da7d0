package format

type (
	Kind            uint8
	CompressionType uint8
	HashKind        uint8
)

const (
	KindVarint         Kind = 0x1 // KindVarint represents LEB128 variable-length encoding.
	KindLengthPrefixed Kind = 0x2 // KindLengthPrefixed represents fixed 4-byte header encoding.
	KindMemcomparable  Kind = 0x3 // KindMemcomparable represents order-preserving encoding.
	KindDictionary     Kind = 0x4 // KindDictionary represents grouped dictionary encoding.
	KindSchema         Kind = 0x5 // KindSchema represents offset-based zero-copy encoding.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.

	HashXXHash64   HashKind = 0x1 // HashXXHash64 represents xxHash64.
	HashXXH3       HashKind = 0x2 // HashXXH3 represents XXH3-64.
	HashMurmur3    HashKind = 0x3 // HashMurmur3 represents Murmur3 64-bit.
	HashMurmur3128 HashKind = 0x4 // HashMurmur3128 represents Murmur3 128-bit truncated to 64 bits.
	HashFNV1a      HashKind = 0x5 // HashFNV1a represents FNV-1a 64-bit.
)

func (k Kind) String() string {
	switch k {
	case KindVarint:
		return "Varint"
	case KindLengthPrefixed:
		return "LengthPrefixed"
	case KindMemcomparable:
		return "Memcomparable"
	case KindDictionary:
		return "Dictionary"
	case KindSchema:
		return "Schema"
	default:
		return "Unknown"
	}
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

func (h HashKind) String() string {
	switch h {
	case HashXXHash64:
		return "XXHash64"
	case HashXXH3:
		return "XXH3"
	case HashMurmur3:
		return "Murmur3"
	case HashMurmur3128:
		return "Murmur3-128"
	case HashFNV1a:
		return "FNV1a"
	default:
		return "Unknown"
	}
}
