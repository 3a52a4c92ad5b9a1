// Package boundary describes where heat is pinned on the plate: a circular
// pipe held at pipe temperature, the open plate edges held at air
// temperature and the bottom row held at ground temperature.
//
// What:
//
//   - Condition is the per-step boundary value: pipe centre, radius,
//     chamfer and the three region temperatures.
//   - Classify assigns every cell exactly one Region (Pipe, Air, Ground)
//     and reports whether the stencil may change it.
//   - RegionMap classifies a whole grid once and supports region counts
//     and 4-connected component analysis.
//
// Classification (first match wins):
//
//  1. Pipe   — (x-X)² + (y-Y)² < Radius². Radius 0 gives no pipe.
//  2. Air    — x == 0, x == w-1, y == 0, x+y < Chamfer, x-y > w-Chamfer.
//  3. Ground — y == h-1.
//  4. Free   — everything else; region Air, evolved by the stencil.
//
// The chamfer cuts the two top corners with 45° lines; cells in the cut
// are air. It is a hard cutoff, not a blend. A pipe disk that reaches past
// an edge is clipped to the grid; a centre outside the grid is rejected.
//
// Errors:
//
//   - ErrInvalidDimensions: w or h not positive.
//   - ErrPipeOutOfBounds:   pipe centre outside [0,w)×[0,h).
//   - ErrInvalidRadius:     radius negative, NaN or Inf.
//   - ErrInvalidChamfer:    chamfer negative.
//   - ErrInvalidTemperature: a region temperature is NaN or Inf.
package boundary
