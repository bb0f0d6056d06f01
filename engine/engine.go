// Copyright 2026, the lcrscan contributors.

// Package engine implements the low-complexity region discovery core: the
// window enumerator, the goodness predicate, and the interval merger. It
// is the part of lcrscan with real algorithmic content; everything else
// in the repository is glue around it.
package engine

import (
	"sort"

	"github.com/kshedden/lcrscan/kmer"
	"github.com/kshedden/lcrscan/score"
)

// Interval is one reported (or candidate) low-complexity region: a
// base range [Start, End], inclusive at both ends, within a named record.
type Interval struct {
	Name  string
	Start int
	End   int
	Seq   []byte
}

// Engine holds the three tunable parameters of the discovery algorithm.
type Engine struct {
	K         int
	MaxWindow int
	Threshold float64
}

// New returns an Engine configured with k, maxWindow, and threshold.
func New(k, maxWindow int, threshold float64) *Engine {
	return &Engine{K: k, MaxWindow: maxWindow, Threshold: threshold}
}

// Discover runs the full pipeline for one record: k-mer encoding, window
// enumeration with the goodness predicate, and interval merging. The
// returned intervals are sorted, non-overlapping, and non-touching.
func (e *Engine) Discover(name string, bases []byte) []Interval {
	if len(bases) < e.K {
		return nil
	}
	idx := kmer.Build(bases, e.K)
	cands := e.enumerate(idx, len(bases))
	return Merge(name, bases, cands)
}

// enumerate implements the window enumerator of §4.3: for every end
// position, expand leftward while maintaining the incremental score in
// O(1), offering each window scoring at or above the threshold to the
// goodness predicate. The returned intervals carry only Start/End; Name
// and Seq are filled in by Merge once overlapping spans have been
// coalesced.
func (e *Engine) enumerate(idx *kmer.Index, length int) []Interval {

	var out []Interval

	windowTable := score.NewCountTable(e.K)
	scratch := score.NewCountTable(e.K)

	for end := e.K - 1; end < length; end++ {

		windowTable.Reset()
		var s float64

		leftBound := end - e.MaxWindow + 1
		if leftBound < 0 {
			leftBound = 0
		}

		for start := end - e.K + 1; start >= leftBound; start-- {

			code := idx.At(start)
			if code == kmer.Ambiguous {
				// Ambiguity breaks the run; no longer window
				// (further left) can be evaluated for this end.
				break
			}

			prior := windowTable.Bump(code)
			s += score.Delta(prior, e.Threshold)

			if s >= e.Threshold {
				numKmers := end - start - e.K + 2
				if isGood(idx, scratch, start, numKmers, s, e.Threshold) {
					out = append(out, Interval{Start: start, End: end})
				}
			}
		}
	}

	return out
}

// isGood implements the goodness predicate of §4.4 via two incremental
// sweeps, using scratch as reusable per-call count-table workspace.
func isGood(idx *kmer.Index, scratch score.CountTable, start, numKmers int, windowScore, threshold float64) bool {

	if numKmers <= 1 {
		return true
	}

	// Prefix sweep: the first numKmers-1 k-mers, left to right.
	scratch.Reset()
	var s float64
	for j := 0; j < numKmers-1; j++ {
		code := idx.At(start + j)
		if code == kmer.Ambiguous {
			return false
		}
		prior := scratch.Bump(code)
		s += score.Delta(prior, threshold)
		if !score.LessOrEqual(s, windowScore) {
			return false
		}
	}

	// Suffix sweep: the last numKmers-1 k-mers, right to left.
	scratch.Reset()
	s = 0
	for j := 0; j < numKmers-1; j++ {
		pos := start + numKmers - 1 - j
		code := idx.At(pos)
		if code == kmer.Ambiguous {
			return false
		}
		prior := scratch.Bump(code)
		s += score.Delta(prior, threshold)
		if !score.LessOrEqual(s, windowScore) {
			return false
		}
	}

	return true
}

// Merge implements §4.5: it sorts candidate intervals by (start, end) and
// sweeps once, coalescing any pair that overlaps or touches
// (prev.end+1 >= next.start). The Seq field of every emitted interval is
// (re)computed from bases, so callers may pass intervals whose Seq is
// unset or stale. Running Merge on its own output is a no-op, since an
// already-merged list has no adjacent pair left to coalesce.
func Merge(name string, bases []byte, cands []Interval) []Interval {

	if len(cands) == 0 {
		return nil
	}

	cands = append([]Interval(nil), cands...)
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].Start != cands[j].Start {
			return cands[i].Start < cands[j].Start
		}
		return cands[i].End < cands[j].End
	})

	out := make([]Interval, 0, len(cands))
	cur := cands[0]

	flush := func(c Interval) {
		out = append(out, Interval{
			Name:  name,
			Start: c.Start,
			End:   c.End,
			Seq:   append([]byte(nil), bases[c.Start:c.End+1]...),
		})
	}

	for _, c := range cands[1:] {
		if c.Start <= cur.End+1 {
			if c.End > cur.End {
				cur.End = c.End
			}
			continue
		}
		flush(cur)
		cur = c
	}
	flush(cur)

	return out
}
