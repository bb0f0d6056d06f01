// Copyright 2026, the lcrscan contributors.

// Package score implements the logarithmic k-mer composition score that
// drives the LCR discovery engine, along with the per-window count tables
// it is built from.
package score

import "math"

// Tolerance is the precision (12 decimal places) to which LessOrEqual
// rounds two scores that were accumulated via different orderings of
// incremental additions before comparing them.
// Floating-point addition is not associative, so the window total and a
// prefix/suffix total built from the same multiset of increments rarely
// compare exactly equal even when mathematically they should.  Without
// this tolerance, goodness checks spuriously reject valid windows.
const Tolerance = 1e-12

// round12 rounds x to 12 decimal places.
func round12(x float64) float64 {
	const scale = 1e12
	return math.Round(x*scale) / scale
}

// LessOrEqual reports whether a <= b once both are rounded to 12 decimal
// places, so that values that differ only by floating-point jitter from
// reordered summation compare as equal rather than as a spurious
// violation.
func LessOrEqual(a, b float64) bool {
	return round12(a) <= round12(b)
}

// Delta is the change in total score from adding one more occurrence of a
// k-mer whose prior count (within the window) was prior.  It follows from
// ln((c+1)!) - ln(c!) = ln(c+1).
func Delta(prior int, threshold float64) float64 {
	return math.Log(float64(prior+1)) - threshold
}

// Total computes S(W) directly from a window's k-mer counts, for use in
// tests that check the incremental and direct formulations agree.
func Total(counts []int, threshold float64) float64 {
	var s float64
	var n int
	for _, c := range counts {
		s += lnFactorial(c)
		n += c
	}
	return s - threshold*float64(n)
}

// lnFactorial returns ln(n!) as the direct sum ln 2 + ... + ln n; n is always
// small in practice (a per-window k-mer count), so a direct sum is exact
// enough and avoids pulling in a gamma-function dependency for this one
// call site.
func lnFactorial(n int) float64 {
	var s float64
	for i := 2; i <= n; i++ {
		s += math.Log(float64(i))
	}
	return s
}
