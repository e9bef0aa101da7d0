// Package collision measures hash-identifier collisions over large synthetic
// label spaces.
//
// The harness drives the tsid generator across a names × values grid of
// single-label sets and tabulates how many distinct combinations map to each
// identifier. Memory is bounded by the number of distinct identifiers
// produced, never by the number of combinations tested: raw combinations are
// discarded as soon as they are hashed.
package collision

import (
	"errors"
	"runtime"
	"strconv"

	"golang.org/x/sync/errgroup"

	"github.com/tskv/rowkey/tsid"
)

// Default grid dimensions: 10,000 names × 10,000 values = 100,000,000
// combinations, matching the scale the identifier scheme is validated at.
const (
	DefaultNames  = 10_000
	DefaultValues = 10_000

	// defaultMaxGroups caps how many colliding groups a report lists.
	defaultMaxGroups = 64
)

// Config describes one harness run.
type Config struct {
	// Names is the number of distinct label names in the grid.
	Names int

	// Values is the number of distinct label values per name.
	Values int

	// Hash is the identifier hash family under test.
	Hash tsid.HashFunc

	// Workers is the number of goroutines the name axis is partitioned
	// across. Zero means runtime.GOMAXPROCS(0).
	Workers int

	// MaxGroups caps the number of colliding groups listed in the report.
	// Zero means a default of 64. Counts are always exact regardless of
	// the cap.
	MaxGroups int
}

// Group is one colliding identifier: Count distinct combinations produced ID.
type Group struct {
	ID    uint64
	Count uint64
}

// Report summarizes a harness run.
type Report struct {
	// Combinations is the total number of label combinations tested.
	Combinations uint64

	// Distinct is the number of distinct identifiers produced.
	Distinct uint64

	// CollidingGroups is the number of identifiers produced by more than
	// one combination.
	CollidingGroups uint64

	// CollidingCombos is the total number of combinations that landed in a
	// colliding group.
	CollidingCombos uint64

	// MaxGroup is the size of the largest colliding group (1 when there
	// are no collisions and at least one combination was tested).
	MaxGroup uint64

	// Groups lists up to Config.MaxGroups colliding identifiers.
	Groups []Group
}

// Run executes the harness and returns the collision report.
//
// The name axis is partitioned across workers; each worker keeps a local
// identifier-to-count map and the partitions are merged by per-identifier
// summation, so worker count never affects the report. Partitions cover
// disjoint name ranges, so no combination is tested twice or split.
func Run(cfg Config) (Report, error) {
	if cfg.Names <= 0 || cfg.Values <= 0 {
		return Report{}, errors.New("collision: grid dimensions must be positive")
	}
	if cfg.Hash == nil {
		return Report{}, errors.New("collision: hash function is required")
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > cfg.Names {
		workers = cfg.Names
	}

	// Pre-render the value axis once; every partition reuses it.
	values := make([]string, cfg.Values)
	for j := range values {
		values[j] = "value-" + strconv.Itoa(j)
	}

	locals := make([]map[uint64]uint64, workers)

	var g errgroup.Group
	chunk := (cfg.Names + workers - 1) / workers
	for w := 0; w < workers; w++ {
		w := w
		start := w * chunk
		end := min(start+chunk, cfg.Names)

		g.Go(func() error {
			counts := make(map[uint64]uint64, (end-start)*cfg.Values)
			labels := tsid.LabelSet{{}}

			for i := start; i < end; i++ {
				labels[0].Name = "name-" + strconv.Itoa(i)
				for j := range values {
					labels[0].Value = values[j]
					counts[tsid.SeriesID(labels, cfg.Hash)]++
				}
			}

			locals[w] = counts

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return Report{}, err
	}

	return merge(cfg, locals), nil
}

// merge combines per-worker counts by summation and builds the report.
func merge(cfg Config, locals []map[uint64]uint64) Report {
	merged := locals[0]
	for _, local := range locals[1:] {
		for id, count := range local {
			merged[id] += count
		}
	}

	maxGroups := cfg.MaxGroups
	if maxGroups <= 0 {
		maxGroups = defaultMaxGroups
	}

	report := Report{
		Combinations: uint64(cfg.Names) * uint64(cfg.Values),
		Distinct:     uint64(len(merged)),
	}
	for id, count := range merged {
		if count > report.MaxGroup {
			report.MaxGroup = count
		}
		if count > 1 {
			report.CollidingGroups++
			report.CollidingCombos += count
			if len(report.Groups) < maxGroups {
				report.Groups = append(report.Groups, Group{ID: id, Count: count})
			}
		}
	}

	return report
}
