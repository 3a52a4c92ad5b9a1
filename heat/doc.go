// Package heat advances a 2-D temperature field by the explicit
// finite-difference heat equation and renders it to an RGBA image.
//
// What:
//
//   - Params holds the run-wide constants: time step Δt, conductivity κ,
//     volumetric heat capacity c_V and the cell spacing Dx, Dy.
//   - Shape (the launch descriptor) splits the grid into X×Y tiles
//     executed by Z worker goroutines.
//   - Strategy selects how a step is executed: Global, Shared, Strip or
//     Serial. All four evaluate the same stencil and agree to rounding.
//   - Simulation is one run: Reset pins the field to the boundary values,
//     Step (and StepWith / KernelLauncher*) advances it by one Δt.
//
// Update rule for a free cell with neighbours E, W, N, S:
//
//	T' = T + Δt·κ/c_V · ((E − 2T + W)/Dx² + (N − 2T + S)/Dy²)
//
// Fixed cells (pipe, air edges, ground row; see package boundary) are set
// to their region temperature. With the default Params the rule reduces to
// the four-neighbour average T' = (E+W+N+S)/4.
//
// Lifecycle:
//
//	Uninitialized --Reset--> Running --Step/Reset--> Running
//
// Concurrency:
//
//   - A step reads a snapshot of the field taken when the call starts and
//     writes into a scratch buffer; workers never observe each other's
//     writes. The result is copied back before Step returns.
//   - A Simulation must not be stepped from two goroutines at once.
//
// Partitioning:
//
//   - The grid is covered by ⌈w/X⌉×⌈h/Y⌉ tiles; tiles on the right and
//     bottom edges are clipped to the grid, so every cell is updated
//     exactly once whatever the shape.
//
// Errors:
//
//   - Precondition: ErrNilField, ErrNilImage, ErrDimensionMismatch,
//     ErrInvalidShape, ErrInvalidParams, ErrUnstable, ErrUnknownStrategy,
//     and wrapped boundary errors. Raised before any worker starts.
//   - State: ErrNotInitialized.
//   - Device: ErrDeviceFailure when a worker panics. The field is left as
//     it was before the call; the image may be partially written.
package heat
