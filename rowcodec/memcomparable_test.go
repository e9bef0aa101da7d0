package rowcodec

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/tskv/rowkey/errs"
)

func TestMemcomparableCodec_Layout(t *testing.T) {
	codec := NewMemcomparableCodec()

	encoded, err := codec.Encode(nil, Row{{ColumnID: 1, Value: []byte("ab")}})
	require.NoError(t, err)

	// Big-endian column id, then one zero-padded escape group with the
	// significant-byte count as its marker.
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x01,
		'a', 'b', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x02,
	}, encoded)
}

func TestMemcomparableCodec_Layout_FullChunk(t *testing.T) {
	codec := NewMemcomparableCodec()

	// An exactly-full final chunk takes marker 0x08; no empty group follows.
	encoded, err := codec.Encode(nil, Row{{ColumnID: 0, Value: []byte("exactly8")}})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x00,
		'e', 'x', 'a', 'c', 't', 'l', 'y', '8', 0x08,
	}, encoded)

	// Nine bytes need a continuation group followed by a terminal group.
	encoded, err = codec.Encode(nil, Row{{ColumnID: 0, Value: []byte("exactly8+")}})
	require.NoError(t, err)
	require.Equal(t, []byte{
		0x00, 0x00, 0x00, 0x00,
		'e', 'x', 'a', 'c', 't', 'l', 'y', '8', 0xFF,
		'+', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	}, encoded)
}

// orderedCorpus returns rows in strictly increasing Compare order, exercising
// every comparison axis: column id, value bytes, shared prefixes across chunk
// boundaries, embedded and trailing zero bytes, and row length.
func orderedCorpus() []Row {
	return []Row{
		{},
		{{ColumnID: 0, Value: []byte{}}},
		{{ColumnID: 0, Value: []byte{0x00}}},
		{{ColumnID: 0, Value: []byte{0x00, 0x00}}},
		{{ColumnID: 0, Value: []byte{0x00, 0x01}}},
		{{ColumnID: 0, Value: []byte("a")}},
		{{ColumnID: 0, Value: []byte("a\x00")}},
		{{ColumnID: 0, Value: []byte("aa")}},
		{{ColumnID: 0, Value: []byte("exactly8")}},
		{{ColumnID: 0, Value: []byte("exactly8")}, {ColumnID: 0, Value: []byte("x")}},
		{{ColumnID: 0, Value: []byte("exactly8+")}},
		{{ColumnID: 0, Value: []byte("exactly8+and then some more bytes")}},
		{{ColumnID: 0, Value: []byte("z")}},
		{{ColumnID: 1, Value: []byte{}}},
		{{ColumnID: 1, Value: []byte("a")}},
		{{ColumnID: 1, Value: []byte("a")}, {ColumnID: 0, Value: []byte{}}},
		{{ColumnID: 1, Value: []byte("a")}, {ColumnID: 2, Value: []byte("b")}},
		{{ColumnID: 256, Value: []byte("a")}},
		{{ColumnID: 0x01000000, Value: []byte{}}},
		{{ColumnID: 0xFFFFFFFF, Value: []byte{}}},
		{{ColumnID: 0xFFFFFFFF, Value: []byte{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}}},
	}
}

// The defining property: byte order of encodings matches Compare on rows,
// in both directions.
func TestMemcomparableCodec_OrderPreservation(t *testing.T) {
	codec := NewMemcomparableCodec()

	corpus := orderedCorpus()
	encoded := make([][]byte, len(corpus))
	for i, row := range corpus {
		var err error
		encoded[i], err = codec.Encode(nil, row)
		require.NoError(t, err)
	}

	for i := range corpus {
		for j := range corpus {
			want := Compare(corpus[i], corpus[j])
			got := codec.CompareEncoded(encoded[i], encoded[j])
			require.Equal(t, want, got,
				"row %d vs row %d: Compare=%d but CompareEncoded=%d", i, j, want, got)
		}
	}
}

func TestMemcomparableCodec_CorpusIsStrictlyIncreasing(t *testing.T) {
	corpus := orderedCorpus()
	for i := 1; i < len(corpus); i++ {
		require.Equal(t, -1, Compare(corpus[i-1], corpus[i]),
			"corpus rows %d and %d are not strictly increasing", i-1, i)
	}
}

func TestMemcomparableCodec_Decode_BadMarker(t *testing.T) {
	codec := NewMemcomparableCodec()

	// Marker 0x09 is neither a continuation nor a valid significant count.
	data := []byte{
		0x00, 0x00, 0x00, 0x01,
		'a', 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x09,
	}

	_, err := codec.Decode(data)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestMemcomparableCodec_Decode_NonZeroPadding(t *testing.T) {
	codec := NewMemcomparableCodec()

	// One significant byte but a non-zero byte in the padding region.
	data := []byte{
		0x00, 0x00, 0x00, 0x01,
		'a', 0x7F, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x01,
	}

	_, err := codec.Decode(data)
	require.ErrorIs(t, err, errs.ErrMalformed)
}

func TestMemcomparableCodec_Decode_TruncatedGroup(t *testing.T) {
	codec := NewMemcomparableCodec()

	encoded, err := codec.Encode(nil, Row{{ColumnID: 1, Value: []byte("hello")}})
	require.NoError(t, err)

	// Cut inside the escape group.
	_, err = codec.Decode(encoded[:len(encoded)-3])
	require.ErrorIs(t, err, errs.ErrTruncated)

	// Cut inside the column id.
	_, err = codec.Decode(encoded[:2])
	require.ErrorIs(t, err, errs.ErrTruncated)
}

func TestMemcomparableCodec_CompareEncoded_MatchesBytesCompare(t *testing.T) {
	codec := NewMemcomparableCodec()

	a, err := codec.Encode(nil, Row{{ColumnID: 1, Value: []byte("a")}})
	require.NoError(t, err)
	b, err := codec.Encode(nil, Row{{ColumnID: 1, Value: []byte("b")}})
	require.NoError(t, err)

	require.Equal(t, bytes.Compare(a, b), codec.CompareEncoded(a, b))
}
