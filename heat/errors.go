package heat

import "errors"

// Sentinel errors for heat operations. Public entry points wrap them with
// the operation name; match with errors.Is.
var (
	// ErrNilField indicates a nil temperature field.
	ErrNilField = errors.New("heat: nil temperature field")

	// ErrNilImage indicates a nil output image.
	ErrNilImage = errors.New("heat: nil output image")

	// ErrDimensionMismatch indicates the image bounds differ from the field shape.
	ErrDimensionMismatch = errors.New("heat: image and field dimensions differ")

	// ErrImageBuffer indicates an output image whose pixel buffer is too
	// short or whose stride is too small for its bounds.
	ErrImageBuffer = errors.New("heat: output image buffer too small")

	// ErrInvalidShape indicates a launch shape with non-positive tile size
	// or a negative worker count.
	ErrInvalidShape = errors.New("heat: invalid execution shape")

	// ErrInvalidParams indicates a non-finite or non-positive physical parameter.
	ErrInvalidParams = errors.New("heat: invalid simulation parameters")

	// ErrUnstable indicates parameters violating the explicit-scheme stability
	// limit Δt·κ/c_V·(1/Dx² + 1/Dy²) ≤ 1/2.
	ErrUnstable = errors.New("heat: parameters exceed explicit stability limit")

	// ErrUnknownStrategy indicates a Strategy value or name that is not defined.
	ErrUnknownStrategy = errors.New("heat: unknown execution strategy")

	// ErrNotInitialized indicates a step on a run that was never Reset.
	ErrNotInitialized = errors.New("heat: simulation not initialized; call Reset first")

	// ErrDeviceFailure indicates a worker failed while executing a step.
	ErrDeviceFailure = errors.New("heat: device failure")
)
