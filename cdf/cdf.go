// Package cdf builds cumulative distribution tables and their inverses for
// importance sampling one dimensional functions.
package cdf

import (
	"math"
	"sort"
)

// Evaluate tabulates the normalized cumulative distribution of |fn| over
// [from, to] using resolution samples. The result has resolution+1 entries,
// starting at 0 and ending at 1.
func Evaluate(resolution int, from, to float32, fn func(float32) float32) []float32 {
	cdf := make([]float32, resolution+1)
	if resolution < 1 {
		return cdf
	}

	rng := to - from
	for i := 0; i < resolution; i++ {
		x := from
		if resolution > 1 {
			x += rng * float32(i) / float32(resolution-1)
		}
		y := fn(x)
		cdf[i+1] = cdf[i] + float32(math.Abs(float64(y)))
	}

	total := cdf[resolution]
	if total == 0 {
		// Degenerate function; fall back to a uniform distribution.
		for i := range cdf {
			cdf[i] = float32(i) / float32(resolution)
		}
		return cdf
	}
	for i := range cdf {
		cdf[i] /= total
	}
	return cdf
}

// Invert produces a table of resolution entries mapping uniform values to
// positions in [from, to] distributed according to cdf.
//
// With makeSymmetric the table covers a function that is symmetric around
// from: the result is centered on 0.5 and spans
// [0.5 - (to-from), 0.5 + (to-from)]. When resolution is even the last entry
// repeats the previous one so the table stays monotonic.
func Invert(resolution int, from, to float32, cdf []float32, makeSymmetric bool) []float32 {
	inv := make([]float32, resolution)
	if resolution < 1 || len(cdf) < 2 {
		return inv
	}

	rng := to - from
	if makeSymmetric {
		half := (resolution - 1) / 2
		if half == 0 {
			for i := range inv {
				inv[i] = 0.5
			}
			return inv
		}
		for i := 0; i <= half; i++ {
			u := float32(i) / float32(half)
			y := lookup(cdf, u) * rng
			inv[half+i] = 0.5 + y
			inv[half-i] = 0.5 - y
		}
		for i := 2*half + 1; i < resolution; i++ {
			inv[i] = inv[2*half]
		}
		return inv
	}

	for i := 0; i < resolution; i++ {
		u := float32(i) / float32(resolution-1)
		if resolution == 1 {
			u = 0
		}
		inv[i] = from + lookup(cdf, u)*rng
	}
	return inv
}

// Inverted is a shortcut for Invert(Evaluate(...)).
func Inverted(resolution int, from, to float32, fn func(float32) float32, makeSymmetric bool) []float32 {
	return Invert(resolution, from, to, Evaluate(resolution, from, to, fn), makeSymmetric)
}

// lookup returns the normalized position t in [0, 1] where cdf reaches u,
// interpolating linearly between table entries.
func lookup(cdf []float32, u float32) float32 {
	last := len(cdf) - 1
	if u <= cdf[0] {
		return 0
	}
	if u >= cdf[last] {
		return 1
	}

	// First entry strictly greater than u; cdf[index-1] <= u < cdf[index].
	index := sort.Search(len(cdf), func(i int) bool { return cdf[i] > u })
	lo, hi := cdf[index-1], cdf[index]
	t := float32(0)
	if hi > lo {
		t = (u - lo) / (hi - lo)
	}
	return (float32(index-1) + t) / float32(last)
}
