// SPDX-License-Identifier: MIT

// Package grid - Field storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula y*w + x.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Keep loops deterministic (fixed y→x order, no map iteration).
//
// Complexity quicksheet:
//   - NewField: O(w*h) zero-init; At/Set: O(1); Clone/CopyFrom/Fill: O(w*h).

package grid

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt  = "At"
	ctxSet = "Set"
)

// Field is a w×h temperature field in row-major order.
//   - w,h hold dimensions (columns, rows), both > 0.
//   - data is a flat buffer of length w*h (offset = y*w + x).
type Field struct {
	w, h int       // width (columns) and height (rows)
	data []float32 // contiguous row-major storage (len == w*h)
}

// Compile-time assertion for fmt.Stringer conformance.
var _ fmt.Stringer = (*Field)(nil)

// NewField creates a w×h field with every cell at zero.
// Implementation:
//   - Stage 1: CheckDimensions; else ErrInvalidDimensions.
//   - Stage 2: allocate a zero-filled buffer.
//
// Complexity:
//   - Time O(w*h), Space O(w*h).
func NewField(w, h int) (*Field, error) {
	if err := CheckDimensions(w, h); err != nil {
		return nil, fmt.Errorf("NewField: %w", err)
	}

	return &Field{w: w, h: h, data: make([]float32, w*h)}, nil
}

// CheckDimensions reports ErrInvalidDimensions unless w and h are positive
// and w*h fits in an int.
func CheckDimensions(w, h int) error {
	if w <= 0 || h <= 0 || w > math.MaxInt/h {
		return fmt.Errorf("%dx%d: %w", w, h, ErrInvalidDimensions)
	}

	return nil
}

// FromSlice wraps a copy of values as a w×h field.
// Returns ErrInvalidDimensions for non-positive shape and
// ErrDimensionMismatch when len(values) != w*h.
// Complexity: O(w*h).
func FromSlice(w, h int, values []float32) (*Field, error) {
	f, err := NewField(w, h)
	if err != nil {
		return nil, err
	}
	if len(values) != w*h {
		return nil, fmt.Errorf("FromSlice: len %d for %dx%d: %w", len(values), w, h, ErrDimensionMismatch)
	}
	copy(f.data, values)

	return f, nil
}

// Width returns the number of columns.
func (f *Field) Width() int { return f.w }

// Height returns the number of rows.
func (f *Field) Height() int { return f.h }

// Shape packs Width() and Height() into a single call.
func (f *Field) Shape() (w, h int) { return f.w, f.h }

// Len returns w*h.
func (f *Field) Len() int { return len(f.data) }

// Data exposes the backing row-major slice. Mutations are visible in f.
// Kernels use it to avoid per-cell bounds checks; external code should
// prefer At/Set.
func (f *Field) Data() []float32 { return f.data }

// InBounds reports whether (x,y) lies within the field.
// Complexity: O(1).
func (f *Field) InBounds(x, y int) bool {
	return x >= 0 && x < f.w && y >= 0 && y < f.h
}

// Index maps (x,y) to the row-major offset y*w + x. No bounds check.
func (f *Field) Index(x, y int) int {
	return y*f.w + x
}

// Coordinate converts a row-major offset back to (x,y).
func (f *Field) Coordinate(idx int) (x, y int) {
	return idx % f.w, idx / f.w
}

// At returns the temperature at (x,y) or a wrapped ErrOutOfRange.
// Complexity: O(1).
func (f *Field) At(x, y int) (float32, error) {
	if !f.InBounds(x, y) {
		return 0, fieldErrorf(ctxAt, x, y, ErrOutOfRange)
	}

	return f.data[y*f.w+x], nil
}

// Set stores v at (x,y).
// Errors:
//   - ErrOutOfRange for bounds; ErrNaNInf for non-finite v.
//
// Complexity: O(1).
func (f *Field) Set(x, y int, v float32) error {
	if !f.InBounds(x, y) {
		return fieldErrorf(ctxSet, x, y, ErrOutOfRange)
	}
	if !IsFinite(v) {
		return fieldErrorf(ctxSet, x, y, ErrNaNInf)
	}
	f.data[y*f.w+x] = v

	return nil
}

// Fill sets every cell to v. Non-finite v is rejected with ErrNaNInf.
// Complexity: O(w*h).
func (f *Field) Fill(v float32) error {
	if !IsFinite(v) {
		return fmt.Errorf("Field.Fill: %w", ErrNaNInf)
	}
	for i := range f.data {
		f.data[i] = v
	}

	return nil
}

// Clone returns a deep copy with an independent buffer.
// Complexity: O(w*h).
func (f *Field) Clone() *Field {
	cp := make([]float32, len(f.data))
	copy(cp, f.data)

	return &Field{w: f.w, h: f.h, data: cp}
}

// CopyFrom overwrites f with the contents of src.
// Returns ErrNilField for nil src and ErrDimensionMismatch for different shapes.
// Complexity: O(w*h).
func (f *Field) CopyFrom(src *Field) error {
	if src == nil {
		return fmt.Errorf("Field.CopyFrom: %w", ErrNilField)
	}
	if err := ValidateSameShape(f, src); err != nil {
		return fmt.Errorf("Field.CopyFrom: %w", err)
	}
	copy(f.data, src.data)

	return nil
}

// String implements fmt.Stringer for debugging; one bracketed line per row.
// Complexity: O(w*h).
func (f *Field) String() string {
	var sb strings.Builder
	for y := 0; y < f.h; y++ {
		sb.WriteString("[")
		base := y * f.w
		for x := 0; x < f.w; x++ {
			sb.WriteString(fmt.Sprintf("%g", f.data[base+x]))
			if x < f.w-1 {
				sb.WriteString(", ")
			}
		}
		sb.WriteString("]\n")
	}

	return sb.String()
}

// IsFinite reports whether v is neither NaN nor ±Inf.
func IsFinite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// ValidateSameShape ensures a and b are non-nil and have equal dimensions.
func ValidateSameShape(a, b *Field) error {
	if a == nil || b == nil {
		return ErrNilField
	}
	if a.w != b.w || a.h != b.h {
		return fmt.Errorf("%dx%d vs %dx%d: %w", a.w, a.h, b.w, b.h, ErrDimensionMismatch)
	}

	return nil
}
