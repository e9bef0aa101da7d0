package rowcodec

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

// DictionaryCodec groups pairs by column id and stores each column's distinct
// values once, replacing every occurrence with a dictionary index:
//
//	[column count: uvarint]
//	per column (first-appearance order):
//	  [column id: uvarint][dictionary size: uvarint]
//	  per distinct value: [length: uvarint][value bytes]
//	[pair count: uvarint]
//	per pair (original order): [column index: uvarint][dictionary index: uvarint]
//
// The reference section preserves the exact pair order, so round trips are
// lossless even though storage is grouped. Output shrinks dramatically when
// values repeat (the common case for label values across rows) and degrades
// gracefully to per-value overhead when every value is unique.
//
// The whole row must be buffered before any output is produced; this codec is
// not streamable.
type DictionaryCodec struct{}

var _ Codec = DictionaryCodec{}

// NewDictionaryCodec creates a new dictionary codec.
func NewDictionaryCodec() DictionaryCodec {
	return DictionaryCodec{}
}

// Kind returns format.KindDictionary.
func (DictionaryCodec) Kind() format.Kind {
	return format.KindDictionary
}

// dictColumn accumulates the distinct values observed for one column id
// during encoding.
type dictColumn struct {
	id     uint32
	values [][]byte
	lookup map[string]int
}

// Encode appends the dictionary encoding of row to dst.
func (DictionaryCodec) Encode(dst []byte, row Row) ([]byte, error) {
	columns := make([]*dictColumn, 0, 8)
	columnIndex := make(map[uint32]int, 8)

	// refs[i] is the (column index, dictionary index) reference for pair i.
	refs := make([][2]int, len(row))

	for i := range row {
		ci, ok := columnIndex[row[i].ColumnID]
		if !ok {
			ci = len(columns)
			columnIndex[row[i].ColumnID] = ci
			columns = append(columns, &dictColumn{
				id:     row[i].ColumnID,
				lookup: make(map[string]int, 4),
			})
		}

		col := columns[ci]
		di, ok := col.lookup[string(row[i].Value)]
		if !ok {
			di = len(col.values)
			col.lookup[string(row[i].Value)] = di
			col.values = append(col.values, row[i].Value)
		}

		refs[i] = [2]int{ci, di}
	}

	dst = binary.AppendUvarint(dst, uint64(len(columns)))
	for _, col := range columns {
		dst = binary.AppendUvarint(dst, uint64(col.id))
		dst = binary.AppendUvarint(dst, uint64(len(col.values)))
		for _, v := range col.values {
			dst = binary.AppendUvarint(dst, uint64(len(v)))
			dst = append(dst, v...)
		}
	}

	dst = binary.AppendUvarint(dst, uint64(len(row)))
	for _, ref := range refs {
		dst = binary.AppendUvarint(dst, uint64(ref[0]))
		dst = binary.AppendUvarint(dst, uint64(ref[1]))
	}

	return dst, nil
}

// Decode reads the per-column dictionaries, then resolves the reference
// section back into pairs in their original order.
//
// Returns errs.ErrTruncated when any field runs past the buffer,
// errs.ErrMalformed when a count or index is inconsistent with the buffer,
// and errs.ErrOverflow for fields wider than their encoding allows.
func (DictionaryCodec) Decode(data []byte) (Row, error) {
	offset := 0

	numColumns, n, err := readUvarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	// Each column needs at least two bytes (id + dictionary size), so any
	// count beyond the remaining length is structurally impossible. The same
	// bound caps allocation before it happens.
	if numColumns > uint64(len(data)-offset) {
		return nil, fmt.Errorf("%w: column count %d exceeds buffer", errs.ErrMalformed, numColumns)
	}

	columns := make([]dictColumn, numColumns)
	for i := range columns {
		colID, n, err := readColumnID(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		dictLen, n, err := readUvarint(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		if dictLen > uint64(len(data)-offset) {
			return nil, fmt.Errorf("%w: dictionary size %d exceeds buffer", errs.ErrMalformed, dictLen)
		}

		values := make([][]byte, dictLen)
		for j := range values {
			vlen, n, err := readUvarint(data, offset)
			if err != nil {
				return nil, err
			}
			if vlen > math.MaxInt32 {
				return nil, fmt.Errorf("%w: value length %d", errs.ErrOverflow, vlen)
			}
			offset += n

			if int(vlen) > len(data)-offset {
				return nil, fmt.Errorf("%w: value needs %d bytes, %d remain", errs.ErrTruncated, vlen, len(data)-offset)
			}

			values[j] = append([]byte(nil), data[offset:offset+int(vlen)]...)
			offset += int(vlen)
		}

		columns[i] = dictColumn{id: colID, values: values}
	}

	numPairs, n, err := readUvarint(data, offset)
	if err != nil {
		return nil, err
	}
	offset += n

	// Each reference needs at least two bytes (column index + dictionary
	// index), bounding both the count and the allocation below.
	if numPairs > uint64(len(data)-offset)/2 {
		return nil, fmt.Errorf("%w: pair count %d exceeds buffer", errs.ErrMalformed, numPairs)
	}

	row := make(Row, numPairs)
	for i := range row {
		ci, n, err := readUvarint(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		di, n, err := readUvarint(data, offset)
		if err != nil {
			return nil, err
		}
		offset += n

		if ci >= uint64(len(columns)) {
			return nil, fmt.Errorf("%w: column index %d of %d", errs.ErrMalformed, ci, len(columns))
		}
		col := &columns[ci]
		if di >= uint64(len(col.values)) {
			return nil, fmt.Errorf("%w: dictionary index %d of %d", errs.ErrMalformed, di, len(col.values))
		}

		row[i] = Pair{ColumnID: col.id, Value: col.values[di]}
	}

	if offset != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrMalformed, len(data)-offset)
	}

	return row, nil
}
