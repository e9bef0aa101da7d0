package rowcodec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tskv/rowkey/errs"
)

func TestVarintCodec_Layout_ZeroIDEmptyValue(t *testing.T) {
	codec := NewVarintCodec()

	encoded, err := codec.Encode(nil, Row{{ColumnID: 0, Value: nil}})
	require.NoError(t, err)

	// Column id 0 and an empty value each encode to a single zero byte.
	require.Equal(t, []byte{0x00, 0x00}, encoded)

	decoded, err := codec.Decode(encoded)
	require.NoError(t, err)
	require.Len(t, decoded, 1)
	require.Equal(t, uint32(0), decoded[0].ColumnID)
	require.Empty(t, decoded[0].Value)
}

func TestVarintCodec_Layout_VarintBoundaries(t *testing.T) {
	codec := NewVarintCodec()

	// 127 is the largest single-byte varint, 128 the smallest two-byte one.
	encoded, err := codec.Encode(nil, Row{
		{ColumnID: 127, Value: []byte("a")},
		{ColumnID: 128, Value: []byte("b")},
	})
	require.NoError(t, err)

	require.Equal(t, []byte{
		0x7F, 0x01, 'a',
		0x80, 0x01, 0x01, 'b',
	}, encoded)
}

func TestVarintCodec_Decode_EmptyBuffer(t *testing.T) {
	codec := NewVarintCodec()

	decoded, err := codec.Decode(nil)
	require.NoError(t, err)
	require.Empty(t, decoded)
}

func TestVarintCodec_Decode_TruncatedContinuation(t *testing.T) {
	codec := NewVarintCodec()

	// A lone continuation byte promises more bytes than remain.
	_, err := codec.Decode([]byte{0x80})
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestVarintCodec_Decode_TruncatedValue(t *testing.T) {
	codec := NewVarintCodec()

	// Column id 1, declared length 5, but only 2 value bytes present.
	_, err := codec.Decode([]byte{0x01, 0x05, 'a', 'b'})
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestVarintCodec_Decode_ColumnIDOverflow(t *testing.T) {
	codec := NewVarintCodec()

	// 2^35 is a valid uvarint but exceeds the uint32 column id range.
	_, err := codec.Decode([]byte{0x80, 0x80, 0x80, 0x80, 0x80, 0x01})
	require.ErrorIs(t, err, errs.ErrOverflow)
}

func TestVarintCodec_Decode_ContinuationChainTooLong(t *testing.T) {
	codec := NewVarintCodec()

	// Eleven continuation bytes exceed the maximum uvarint width.
	data := make([]byte, 11)
	for i := range data {
		data[i] = 0x80
	}
	data[10] = 0x02

	_, err := codec.Decode(data)
	require.ErrorIs(t, err, errs.ErrOverflow)
}
