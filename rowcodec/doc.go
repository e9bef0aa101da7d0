// Package rowcodec implements binary encodings for primary-key rows of a
// time-series storage format.
//
// A row is an ordered sequence of (column id, value) pairs. Five interchangeable
// codecs trade off space, speed, ordering and access patterns:
//
//   - VarintCodec: LEB128 headers, smallest output for small ids and lengths.
//   - LengthPrefixedCodec: fixed 4-byte headers, branch-free decode.
//   - MemcomparableCodec: order-preserving; byte comparison of encoded rows
//     matches Compare on the decoded rows.
//   - DictionaryCodec: per-column value dictionaries, smallest output for
//     rows with heavily repeated values.
//   - SchemaCodec: offset-based layout supporting zero-copy field access
//     without decoding the rest of the row.
//
// All codecs are stateless and safe for concurrent use. Decode never panics
// on malformed input; it reports errs.ErrTruncated, errs.ErrMalformed or
// errs.ErrOverflow instead.
package rowcodec
