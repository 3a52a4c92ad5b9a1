package boundary

import "errors"

// Sentinel errors for boundary validation.
var (
	// ErrInvalidDimensions indicates a grid with non-positive width or height.
	ErrInvalidDimensions = errors.New("boundary: grid dimensions must be > 0")
	// ErrPipeOutOfBounds indicates the pipe centre lies outside the grid.
	ErrPipeOutOfBounds = errors.New("boundary: pipe centre outside grid")
	// ErrInvalidRadius indicates a negative or non-finite pipe radius.
	ErrInvalidRadius = errors.New("boundary: radius must be finite and >= 0")
	// ErrInvalidChamfer indicates a negative chamfer distance.
	ErrInvalidChamfer = errors.New("boundary: chamfer must be >= 0")
	// ErrInvalidTemperature indicates a NaN or infinite region temperature.
	ErrInvalidTemperature = errors.New("boundary: temperatures must be finite")
	// ErrOutOfRange indicates a cell coordinate outside the classified grid.
	ErrOutOfRange = errors.New("boundary: coordinate out of range")
	// ErrUnknownRegion indicates a Region value outside Pipe/Air/Ground.
	ErrUnknownRegion = errors.New("boundary: unknown region")
)
