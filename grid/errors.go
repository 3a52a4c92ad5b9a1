// SPDX-License-Identifier: MIT

package grid

import (
	"errors"
	"fmt"
)

// Every message is prefixed with "grid: ..." so log lines are easy to grep.
// Callers match with errors.Is; public methods wrap with method context.
var (
	// ErrInvalidDimensions indicates that requested field dimensions are non-positive.
	ErrInvalidDimensions = errors.New("grid: dimensions must be > 0")

	// ErrOutOfRange indicates that a cell coordinate is outside the field.
	ErrOutOfRange = errors.New("grid: coordinate out of range")

	// ErrNaNInf signals a NaN or ±Inf value where finite temperatures are required.
	ErrNaNInf = errors.New("grid: NaN or Inf encountered")

	// ErrDimensionMismatch indicates two fields of different shape.
	ErrDimensionMismatch = errors.New("grid: dimension mismatch")

	// ErrNilField indicates that a nil *Field was used.
	ErrNilField = errors.New("grid: nil field")
)

// fieldErrorf wraps err with a uniform Field context and the offending coordinates.
func fieldErrorf(method string, x, y int, err error) error {
	return fmt.Errorf("Field.%s(%d,%d): %w", method, x, y, err)
}
