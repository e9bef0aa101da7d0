package compress

// NoOpCodec bypasses compression, returning input data as-is.
//
// It serves as the baseline for size comparisons and for blocks small enough
// that compression overhead outweighs the savings.
//
// Both directions return the input slice without copying; callers must not
// modify the input while the result is in use.
type NoOpCodec struct{}

var _ Codec = (*NoOpCodec)(nil)

// NewNoOpCodec creates a new no-op codec.
func NewNoOpCodec() NoOpCodec {
	return NoOpCodec{}
}

// Compress returns data unchanged.
func (c NoOpCodec) Compress(data []byte) ([]byte, error) {
	return data, nil
}

// Decompress returns data unchanged.
func (c NoOpCodec) Decompress(data []byte) ([]byte, error) {
	return data, nil
}
