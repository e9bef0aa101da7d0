package rowcodec

import (
	"fmt"
	"math"

	"github.com/tskv/rowkey/endian"
	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/format"
)

const (
	// schemaEntrySize is the fixed entry per pair:
	// column id (4) + value offset (4) + value length (4).
	schemaEntrySize = 12

	// schemaFooterSize is the root footer written after the payload:
	// entry table offset (4) + pair count (4).
	schemaFooterSize = 8
)

// SchemaCodec implements a self-describing, offset-based layout that can be
// read in place without materializing pairs:
//
//	[value payload: concatenated value bytes]
//	[entry table: (column id u32le, value offset u32le, value length u32le) per pair]
//	[root footer: (entry table offset u32le, pair count u32le)]
//
// The root is written last and back-references the entry table, so the whole
// row must be known before any output is produced. In exchange, accessing
// pair i requires following two offsets from the root instead of scanning the
// preceding pairs, and the zero-copy path allocates nothing.
//
// All offsets are relative to the start of the encoded row, so View must be
// handed exactly the bytes produced by one Encode call.
type SchemaCodec struct {
	engine endian.EndianEngine
}

var _ Codec = SchemaCodec{}

// NewSchemaCodec creates a new schema-based zero-copy codec.
func NewSchemaCodec() SchemaCodec {
	return SchemaCodec{engine: endian.GetLittleEndianEngine()}
}

// Kind returns format.KindSchema.
func (SchemaCodec) Kind() format.Kind {
	return format.KindSchema
}

// Encode appends the schema encoding of row to dst.
//
// Returns errs.ErrOverflow if the payload, an offset, or the pair count does
// not fit its 4-byte field.
func (c SchemaCodec) Encode(dst []byte, row Row) ([]byte, error) {
	if uint64(len(row)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d pairs exceed uint32 count", errs.ErrOverflow, len(row))
	}

	base := len(dst)

	// Value payload first; record offsets relative to the encoding start.
	offsets := make([]uint32, len(row))
	payload := uint64(0)
	for i := range row {
		if payload > math.MaxUint32 || uint64(len(row[i].Value)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: payload exceeds uint32 offsets", errs.ErrOverflow)
		}
		offsets[i] = uint32(payload)
		payload += uint64(len(row[i].Value))
		dst = append(dst, row[i].Value...)
	}
	if payload > math.MaxUint32 {
		return nil, fmt.Errorf("%w: payload exceeds uint32 offsets", errs.ErrOverflow)
	}

	// Entry table, then the root footer back-referencing it.
	entriesOff := uint32(len(dst) - base)
	for i := range row {
		dst = c.engine.AppendUint32(dst, row[i].ColumnID)
		dst = c.engine.AppendUint32(dst, offsets[i])
		dst = c.engine.AppendUint32(dst, uint32(len(row[i].Value)))
	}

	dst = c.engine.AppendUint32(dst, entriesOff)
	dst = c.engine.AppendUint32(dst, uint32(len(row)))

	return dst, nil
}

// View interprets data in place and returns zero-copy accessors.
//
// View runs a structural verification pass before returning: the footer must
// be consistent with the buffer length, and the entry offsets must cover the
// payload region exactly in encoding order (the canonical layout Encode
// produces). The pass is O(pairs) but allocation-free; a truncated or
// corrupted buffer fails here with errs.ErrTruncated or errs.ErrMalformed
// instead of decoding into wrong pairs. Value bytes themselves are never
// touched until requested.
//
// The returned view (and any value slices it hands out) borrows from data
// and is invalidated once the caller mutates or frees the buffer.
func (c SchemaCodec) View(data []byte) (RowView, error) {
	if len(data) < schemaFooterSize {
		return RowView{}, fmt.Errorf("%w: %d bytes for an 8-byte root footer", errs.ErrTruncated, len(data))
	}

	footer := len(data) - schemaFooterSize
	entriesOff := uint64(c.engine.Uint32(data[footer:]))
	count := uint64(c.engine.Uint32(data[footer+4:]))

	// The entry table must sit exactly between the payload and the footer.
	if entriesOff > uint64(footer) || count*schemaEntrySize != uint64(footer)-entriesOff {
		return RowView{}, fmt.Errorf("%w: entry table offset %d count %d in %d-byte row", errs.ErrMalformed, entriesOff, count, len(data))
	}

	// Canonical encodings pack value bytes contiguously from offset 0 up to
	// the entry table. Verifying coverage rejects buffers whose interior
	// bytes happen to parse as a plausible footer (e.g. truncated rows).
	expectOff := uint64(0)
	for i := uint64(0); i < count; i++ {
		entry := data[entriesOff+i*schemaEntrySize:]
		off := uint64(c.engine.Uint32(entry[4:]))
		vlen := uint64(c.engine.Uint32(entry[8:]))
		if off != expectOff || off+vlen > entriesOff {
			return RowView{}, fmt.Errorf("%w: entry %d offset %d length %d (expected offset %d)", errs.ErrMalformed, i, off, vlen, expectOff)
		}
		expectOff = off + vlen
	}
	if expectOff != entriesOff {
		return RowView{}, fmt.Errorf("%w: payload ends at %d, entry table starts at %d", errs.ErrMalformed, expectOff, entriesOff)
	}

	return RowView{
		data:       data,
		entriesOff: int(entriesOff),
		count:      int(count),
		engine:     c.engine,
	}, nil
}

// Decode materializes every pair into an owned Row, providing decode parity
// with the other codecs. Prefer View when only a few fields are needed.
func (c SchemaCodec) Decode(data []byte) (Row, error) {
	view, err := c.View(data)
	if err != nil {
		return nil, err
	}

	row := make(Row, view.Len())
	for i := range row {
		pair, err := view.Pair(i)
		if err != nil {
			return nil, err
		}
		row[i] = Pair{ColumnID: pair.ColumnID, Value: append([]byte(nil), pair.Value...)}
	}

	return row, nil
}

// RowView provides zero-copy access to a schema-encoded row.
//
// The view borrows from the buffer passed to SchemaCodec.View. Value slices
// returned by Value and Pair alias that buffer; they must not be used after
// the caller mutates or frees it. Every access bounds-checks the stored
// offsets, so a corrupted buffer yields errs.ErrMalformed rather than an
// out-of-range read.
type RowView struct {
	data       []byte
	entriesOff int
	count      int
	engine     endian.EndianEngine
}

// Len returns the number of pairs in the row.
func (v RowView) Len() int {
	return v.count
}

// ColumnID returns the column id of pair i without touching the value bytes.
func (v RowView) ColumnID(i int) (uint32, error) {
	entry, err := v.entry(i)
	if err != nil {
		return 0, err
	}

	return v.engine.Uint32(entry), nil
}

// Value returns the value bytes of pair i. The slice aliases the underlying
// buffer; clone it if it must outlive the buffer.
func (v RowView) Value(i int) ([]byte, error) {
	entry, err := v.entry(i)
	if err != nil {
		return nil, err
	}

	off := uint64(v.engine.Uint32(entry[4:]))
	vlen := uint64(v.engine.Uint32(entry[8:]))

	// Values must live inside the payload region, before the entry table.
	if off+vlen < off || off+vlen > uint64(v.entriesOff) {
		return nil, fmt.Errorf("%w: value offset %d length %d beyond payload end %d", errs.ErrMalformed, off, vlen, v.entriesOff)
	}

	return v.data[off : off+vlen], nil
}

// Pair returns pair i. The value aliases the underlying buffer.
func (v RowView) Pair(i int) (Pair, error) {
	colID, err := v.ColumnID(i)
	if err != nil {
		return Pair{}, err
	}
	value, err := v.Value(i)
	if err != nil {
		return Pair{}, err
	}

	return Pair{ColumnID: colID, Value: value}, nil
}

// entry returns the 12-byte entry for pair i.
func (v RowView) entry(i int) ([]byte, error) {
	if i < 0 || i >= v.count {
		return nil, fmt.Errorf("%w: pair index %d of %d", errs.ErrMalformed, i, v.count)
	}

	start := v.entriesOff + i*schemaEntrySize

	return v.data[start : start+schemaEntrySize], nil
}
