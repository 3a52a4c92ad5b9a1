// SPDX-License-Identifier: MIT
// Package: grid
//
// Purpose:
//   - Deterministic reductions over a Field (min, max, mean) and pairwise
//     comparisons between fields (max absolute difference, all-close).
//   - Fixed i-ascending traversal so results never depend on scheduling.

package grid

import (
	"fmt"
	"math"
)

// Min returns the smallest temperature in f.
// Complexity: O(w*h).
func (f *Field) Min() float32 {
	m := f.data[0]
	for _, v := range f.data[1:] {
		if v < m {
			m = v
		}
	}

	return m
}

// Max returns the largest temperature in f.
// Complexity: O(w*h).
func (f *Field) Max() float32 {
	m := f.data[0]
	for _, v := range f.data[1:] {
		if v > m {
			m = v
		}
	}

	return m
}

// Mean returns the arithmetic mean of all cells, accumulated in float64.
// Complexity: O(w*h).
func (f *Field) Mean() float64 {
	var sum float64
	for _, v := range f.data {
		sum += float64(v)
	}

	return sum / float64(len(f.data))
}

// MaxAbsDiff returns max_i |a_i - b_i|.
// Errors: ErrNilField, ErrDimensionMismatch.
// Complexity: O(w*h).
func MaxAbsDiff(a, b *Field) (float64, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return 0, fmt.Errorf("MaxAbsDiff: %w", err)
	}
	var worst float64
	for i := range a.data {
		d := math.Abs(float64(a.data[i]) - float64(b.data[i]))
		if d > worst {
			worst = d
		}
	}

	return worst, nil
}

// AllClose reports whether |a_i - b_i| ≤ atol + rtol*|b_i| for every cell.
// Inputs:
//   - rtol, atol: non-negative tolerances.
//
// Errors: ErrNilField, ErrDimensionMismatch.
// Complexity: O(w*h).
func AllClose(a, b *Field, rtol, atol float64) (bool, error) {
	if err := ValidateSameShape(a, b); err != nil {
		return false, fmt.Errorf("AllClose: %w", err)
	}
	for i := range a.data {
		av, bv := float64(a.data[i]), float64(b.data[i])
		if math.Abs(av-bv) > atol+rtol*math.Abs(bv) {
			return false, nil
		}
	}

	return true, nil
}
