// SPDX-License-Identifier: MIT

package snapshot

import (
	"fmt"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/grid"
	"github.com/katalvlaran/heatpipe/heat"
)

// Checkpoint is the persisted state of one run.
type Checkpoint struct {
	Width        int                `msgpack:"width"`
	Height       int                `msgpack:"height"`
	Step         uint64             `msgpack:"step"`
	Params       heat.Params        `msgpack:"params"`
	Condition    boundary.Condition `msgpack:"condition"`
	Temperatures []float32          `msgpack:"temperatures"` // row-major, Width×Height
}

// FromField captures field, bc, params and the step count. The field data
// is copied, so the run may keep stepping while the checkpoint is written.
func FromField(field *grid.Field, bc boundary.Condition, params heat.Params, step uint64) (*Checkpoint, error) {
	if field == nil {
		return nil, fmt.Errorf("FromField: nil field: %w", ErrInvalidCheckpoint)
	}
	temps := make([]float32, field.Len())
	copy(temps, field.Data())

	return &Checkpoint{
		Width:        field.Width(),
		Height:       field.Height(),
		Step:         step,
		Params:       params,
		Condition:    bc,
		Temperatures: temps,
	}, nil
}

// Validate checks that the dimensions are positive and match the data.
// The condition is validated against the dimensions as well, so a restored
// run never starts from a geometry the solver would reject.
func (cp *Checkpoint) Validate() error {
	if cp == nil {
		return fmt.Errorf("Checkpoint.Validate: nil: %w", ErrInvalidCheckpoint)
	}
	if err := grid.CheckDimensions(cp.Width, cp.Height); err != nil {
		return fmt.Errorf("Checkpoint.Validate: %v: %w", err, ErrInvalidCheckpoint)
	}
	if len(cp.Temperatures) != cp.Width*cp.Height {
		return fmt.Errorf("Checkpoint.Validate: %dx%d with %d values: %w",
			cp.Width, cp.Height, len(cp.Temperatures), ErrInvalidCheckpoint)
	}
	if err := cp.Condition.Validate(cp.Width, cp.Height); err != nil {
		return fmt.Errorf("Checkpoint.Validate: %v: %w", err, ErrInvalidCheckpoint)
	}

	return nil
}

// Field returns a fresh grid.Field holding the checkpoint temperatures.
func (cp *Checkpoint) Field() (*grid.Field, error) {
	if err := cp.Validate(); err != nil {
		return nil, err
	}
	f, err := grid.FromSlice(cp.Width, cp.Height, cp.Temperatures)
	if err != nil {
		return nil, fmt.Errorf("Checkpoint.Field: %w", err)
	}

	return f, nil
}
