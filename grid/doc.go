// SPDX-License-Identifier: MIT

// Package grid provides the Temperature Field: a row-major w×h buffer of
// float32 cell temperatures with safe accessors and a small set of
// deterministic statistics.
//
// What:
//
//   - Field stores w*h values in a flat slice; cell (x,y) lives at y*w + x.
//   - x is the column, y is the row, y=0 is the top row of the plate.
//   - At/Set return errors instead of panicking; Set rejects NaN/Inf.
//   - Data exposes the backing slice for stencil kernels that need the
//     hot path without bounds checks per access.
//
// Statistics:
//
//   - Min, Max, Mean over a single field.
//   - MaxAbsDiff and AllClose between two fields of the same shape.
//
// Errors:
//
//   - ErrInvalidDimensions: width or height is not positive.
//   - ErrOutOfRange: coordinates fall outside the field.
//   - ErrNaNInf: a non-finite value was written.
//   - ErrDimensionMismatch: two fields differ in shape.
//   - ErrNilField: a nil *Field was passed where one is required.
//
// Complexity:
//
//   - NewField, Fill, Clone, CopyFrom, statistics: O(w*h).
//   - At, Set, Index, Coordinate, InBounds: O(1).
package grid
