// Package tsid derives fixed-width time-series identifiers from label sets.
//
// A series identity is an unordered set of name/value labels. The generator
// canonicalizes the set (sorted by name) and hashes an unambiguous byte
// stream built from it, so two sets with identical content always yield the
// same identifier regardless of iteration order. The hash function is a
// capability parameter: see HashFunc and the five supported families.
package tsid

import (
	"encoding/binary"
	"fmt"
	"slices"
	"strings"

	"github.com/tskv/rowkey/errs"
	"github.com/tskv/rowkey/internal/pool"
)

// Label is a single name/value pair describing a time series,
// e.g. host=web1.
type Label struct {
	Name  string
	Value string
}

// LabelSet is a collection of labels forming a series identity. Names are
// expected to be unique within the set; iteration order carries no meaning.
type LabelSet []Label

// Validate checks that every label has a nonempty name and that no name
// repeats. SeriesID does not validate; it is total over any set, degenerate or
// not. Call Validate at the ingestion boundary where label sets enter the
// system.
func (s LabelSet) Validate() error {
	seen := make(map[string]struct{}, len(s))
	for _, label := range s {
		if label.Name == "" {
			return fmt.Errorf("%w: empty name (value %q)", errs.ErrInvalidLabelName, label.Value)
		}
		if _, dup := seen[label.Name]; dup {
			return fmt.Errorf("%w: duplicate name %q", errs.ErrInvalidLabelName, label.Name)
		}
		seen[label.Name] = struct{}{}
	}

	return nil
}

// SeriesID computes the 64-bit identifier of the label set using fn.
//
// The set is canonicalized before hashing: labels are sorted by name (then by
// value, so even a set with duplicate names hashes deterministically), and
// every name and value is length-prefixed with a uvarint in the hashed
// stream. Length prefixes make the stream unambiguous: ("ab","c") and
// ("a","bc") concatenate to the same bytes but hash differently.
//
// SeriesID is a pure function of the set's content. The empty set is not an
// error; it hashes the empty canonical stream, a fixed value per hash family.
func SeriesID(labels LabelSet, fn HashFunc) uint64 {
	sorted := slices.Clone(labels)
	slices.SortStableFunc(sorted, func(a, b Label) int {
		if c := strings.Compare(a.Name, b.Name); c != 0 {
			return c
		}

		return strings.Compare(a.Value, b.Value)
	})

	buf := pool.GetKeyBuffer()
	defer pool.PutKeyBuffer(buf)

	for _, label := range sorted {
		buf.B = binary.AppendUvarint(buf.B, uint64(len(label.Name)))
		buf.B = append(buf.B, label.Name...)
		buf.B = binary.AppendUvarint(buf.B, uint64(len(label.Value)))
		buf.B = append(buf.B, label.Value...)
	}

	return fn(buf.Bytes())
}
