package compress

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

func testPayloads() map[string][]byte {
	repetitive := bytes.Repeat([]byte("host=web1,dc=us-east-1;"), 200)

	incompressible := make([]byte, 512)
	state := uint64(0x9E3779B97F4A7C15)
	for i := range incompressible {
		state ^= state << 13
		state ^= state >> 7
		state ^= state << 17
		incompressible[i] = byte(state)
	}

	return map[string][]byte{
		"empty":          {},
		"single byte":    {0x42},
		"repetitive":     repetitive,
		"incompressible": incompressible,
	}
}

func TestCodecs_RoundTrip(t *testing.T) {
	types := []format.CompressionType{
		format.CompressionNone,
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	}

	for _, ct := range types {
		t.Run(ct.String(), func(t *testing.T) {
			codec, err := GetCodec(ct)
			require.NoError(t, err)

			for name, payload := range testPayloads() {
				compressed, err := codec.Compress(payload)
				require.NoError(t, err, name)

				decompressed, err := codec.Decompress(compressed)
				require.NoError(t, err, name)
				require.Equal(t, payload, decompressed, name)
			}
		})
	}
}

func TestCodecs_CompressRepetitiveData(t *testing.T) {
	payload := bytes.Repeat([]byte("host=web1,dc=us-east-1;"), 200)

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		compressed, err := codec.Compress(payload)
		require.NoError(t, err)
		require.Less(t, len(compressed), len(payload), ct.String())
	}
}

func TestNoOpCodec_PassesThrough(t *testing.T) {
	codec, err := GetCodec(format.CompressionNone)
	require.NoError(t, err)

	payload := []byte("untouched")
	compressed, err := codec.Compress(payload)
	require.NoError(t, err)
	require.Equal(t, payload, compressed)

	decompressed, err := codec.Decompress(compressed)
	require.NoError(t, err)
	require.Equal(t, payload, decompressed)
}

func TestGetCodec_Unknown(t *testing.T) {
	_, err := GetCodec(format.CompressionType(0x7F))
	require.ErrorIs(t, err, errs.ErrUnknownCompression)
}

func TestCodecs_DecompressGarbage(t *testing.T) {
	// A short declared length followed by impossible back-references; no
	// codec should decode this, and none should over-allocate trying.
	garbage := []byte{0x03, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

	for _, ct := range []format.CompressionType{
		format.CompressionZstd,
		format.CompressionS2,
		format.CompressionLZ4,
	} {
		codec, err := GetCodec(ct)
		require.NoError(t, err)

		_, err = codec.Decompress(garbage)
		require.Error(t, err, ct.String())
	}
}

func TestCodecs_ConcurrentUse(t *testing.T) {
	codec, err := GetCodec(format.CompressionZstd)
	require.NoError(t, err)

	payload := bytes.Repeat([]byte("concurrent payload "), 100)

	done := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 50; j++ {
				compressed, err := codec.Compress(payload)
				if err != nil {
					done <- err
					return
				}
				decompressed, err := codec.Decompress(compressed)
				if err != nil {
					done <- err
					return
				}
				if !bytes.Equal(payload, decompressed) {
					done <- errs.ErrMalformed
					return
				}
			}
			done <- nil
		}()
	}

	for i := 0; i < 8; i++ {
		require.NoError(t, <-done)
	}
}
