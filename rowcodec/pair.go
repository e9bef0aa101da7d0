package rowcodec

import "bytes"

// Pair is a single primary-key component: a numeric column id standing in for
// a label name, and the label value as raw bytes. Values may contain arbitrary
// bytes, including zero bytes; they are not restricted to valid UTF-8.
type Pair struct {
	ColumnID uint32
	Value    []byte
}

// Row is an ordered sequence of pairs representing one primary key.
// Order is semantically significant: two rows with the same pairs in a
// different order are different rows.
type Row []Pair

// Compare returns the total order over rows used by the memcomparable codec:
// pair-wise by column id, then by value bytes, with a shorter row ordering
// before any longer row it is a prefix of.
//
// Returns -1 if a < b, 0 if a == b, and 1 if a > b.
func Compare(a, b Row) int {
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i].ColumnID != b[i].ColumnID {
			if a[i].ColumnID < b[i].ColumnID {
				return -1
			}

			return 1
		}
		if c := bytes.Compare(a[i].Value, b[i].Value); c != 0 {
			return c
		}
	}

	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Equal reports whether two rows contain the same pairs in the same order.
// A nil value and an empty value are considered equal.
func Equal(a, b Row) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].ColumnID != b[i].ColumnID || !bytes.Equal(a[i].Value, b[i].Value) {
			return false
		}
	}

	return true
}

// Clone returns a deep copy of the row. The copy owns its value bytes and
// remains valid after the source row's backing buffers are reused.
func (r Row) Clone() Row {
	if r == nil {
		return nil
	}

	out := make(Row, len(r))
	for i, p := range r {
		out[i] = Pair{ColumnID: p.ColumnID, Value: append([]byte(nil), p.Value...)}
	}

	return out
}
