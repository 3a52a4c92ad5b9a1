package boundary

import (
	"fmt"

	"github.com/katalvlaran/heatpipe/grid"
)

// Region names the temperature zone a cell belongs to.
type Region uint8

const (
	// Air is the open-air region: plate edges, chamfer cuts and free cells.
	Air Region = iota
	// Pipe is the interior of the pipe disk.
	Pipe
	// Ground is the bottom row of the plate.
	Ground
)

// Regions lists every Region in declaration order.
var Regions = [...]Region{Air, Pipe, Ground}

// String returns the lower-case region name.
func (r Region) String() string {
	switch r {
	case Air:
		return "air"
	case Pipe:
		return "pipe"
	case Ground:
		return "ground"
	default:
		return fmt.Sprintf("region(%d)", uint8(r))
	}
}

// Condition holds the boundary conditions of one simulation step.
// It is a plain value; copying it is cheap and steps never mutate it.
type Condition struct {
	X       int     `yaml:"x" msgpack:"x"`               // pipe centre column
	Y       int     `yaml:"y" msgpack:"y"`               // pipe centre row
	Radius  float32 `yaml:"radius" msgpack:"radius"`     // pipe radius in cells
	Chamfer int     `yaml:"chamfer" msgpack:"chamfer"`   // size of the 45° cut at the two top corners
	TPipe   float32 `yaml:"t_pipe" msgpack:"t_pipe"`     // temperature inside the pipe
	TAir    float32 `yaml:"t_air" msgpack:"t_air"`       // temperature of the open air
	TGround float32 `yaml:"t_ground" msgpack:"t_ground"` // temperature of the ground row
}

// Validate checks c against a w×h grid.
// Checks run in a fixed order: dimensions, centre, radius, chamfer, temperatures.
func (c Condition) Validate(w, h int) error {
	if w <= 0 || h <= 0 {
		return fmt.Errorf("Condition.Validate(%d,%d): %w", w, h, ErrInvalidDimensions)
	}
	if c.X < 0 || c.X >= w || c.Y < 0 || c.Y >= h {
		return fmt.Errorf("Condition.Validate: centre (%d,%d) in %dx%d: %w", c.X, c.Y, w, h, ErrPipeOutOfBounds)
	}
	if !grid.IsFinite(c.Radius) || c.Radius < 0 {
		return fmt.Errorf("Condition.Validate: radius %v: %w", c.Radius, ErrInvalidRadius)
	}
	if c.Chamfer < 0 {
		return fmt.Errorf("Condition.Validate: chamfer %d: %w", c.Chamfer, ErrInvalidChamfer)
	}
	for _, t := range [...]float32{c.TPipe, c.TAir, c.TGround} {
		if !grid.IsFinite(t) {
			return fmt.Errorf("Condition.Validate: temperature %v: %w", t, ErrInvalidTemperature)
		}
	}

	return nil
}

// Classify returns the region of cell (x,y) on a w×h grid and whether the
// cell is fixed (held at its region temperature) or free (evolved by the
// stencil).
//
// MAIN DESCRIPTION:
//   - Single source of truth for the plate geometry; Reset, every step and
//     RegionMap all classify through it.
//
// Implementation (first match wins):
//   - Stage 1: pipe when (x-X)² + (y-Y)² < Radius² (strict).
//   - Stage 2: air when the cell is on the left, right or top edge, or in
//     one of the two chamfer cuts (x+y < Chamfer, x-y > w-Chamfer).
//   - Stage 3: ground on the bottom row.
//   - Stage 4: otherwise a free cell, reported as Air.
//
// Behavior highlights:
//   - Radius 0 yields no pipe cells; a disk crossing an edge is clipped.
//   - Every edge cell is fixed, so free cells always have four in-grid
//     neighbours.
//
// Inputs:
//   - x, y: cell column and row; w, h: grid size.
//
// Returns:
//   - region: Pipe, Air or Ground.
//   - fixed: false only for free cells.
//
// Complexity:
//   - Time O(1), Space O(1).
//
// Notes:
//   - Classify does not validate; call Validate once per grid first.
func (c Condition) Classify(x, y, w, h int) (region Region, fixed bool) {
	dx, dy := float32(x-c.X), float32(y-c.Y)
	if dx*dx+dy*dy < c.Radius*c.Radius {
		return Pipe, true
	}
	if x == 0 || x == w-1 || y == 0 || x+y < c.Chamfer || x-y > w-c.Chamfer {
		return Air, true
	}
	if y == h-1 {
		return Ground, true
	}

	return Air, false
}

// Temperature returns the temperature assigned to region r.
func (c Condition) Temperature(r Region) (float32, error) {
	switch r {
	case Air:
		return c.TAir, nil
	case Pipe:
		return c.TPipe, nil
	case Ground:
		return c.TGround, nil
	default:
		return 0, fmt.Errorf("Condition.Temperature(%v): %w", r, ErrUnknownRegion)
	}
}

// temperature is the unchecked form of Temperature for hot loops over
// regions produced by Classify.
func (c Condition) temperature(r Region) float32 {
	switch r {
	case Pipe:
		return c.TPipe
	case Ground:
		return c.TGround
	default:
		return c.TAir
	}
}
