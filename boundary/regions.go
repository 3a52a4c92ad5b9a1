package boundary

import "fmt"

// RegionMap is a Condition evaluated over a whole w×h grid. It is immutable
// once built. Kernels use it to look up, by row-major index, whether a cell
// is pinned and at which temperature, without re-evaluating the geometry
// on every step.
type RegionMap struct {
	Width, Height int
	Condition     Condition

	regions []Region  // region per cell, row-major
	fixed   []bool    // true when the cell is held at its region temperature
	pinned  []float32 // region temperature per cell

	neighborOffsets [][2]int
}

// NewRegionMap validates c against a w×h grid and classifies every cell.
//
// MAIN DESCRIPTION:
//   - Evaluate the geometry once so kernels look cells up by index.
//
// Implementation:
//   - Stage 1: Condition.Validate(w, h); errors are returned unchanged.
//   - Stage 2: Classify each cell in y→x order and store region, fixed
//     flag and pinned temperature.
//
// Inputs:
//   - c: boundary condition; w, h: grid size.
//
// Returns:
//   - *RegionMap: immutable classification, safe for concurrent reads.
//
// Errors:
//   - ErrInvalidDimensions, ErrPipeOutOfBounds, ErrInvalidRadius,
//     ErrInvalidChamfer, ErrInvalidTemperature.
//
// Complexity:
//   - Time O(w*h), Space O(w*h).
func NewRegionMap(c Condition, w, h int) (*RegionMap, error) {
	if err := c.Validate(w, h); err != nil {
		return nil, err
	}
	n := w * h
	m := &RegionMap{
		Width:           w,
		Height:          h,
		Condition:       c,
		regions:         make([]Region, n),
		fixed:           make([]bool, n),
		pinned:          make([]float32, n),
		neighborOffsets: [][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}},
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := m.index(x, y)
			r, fixed := c.Classify(x, y, w, h)
			m.regions[i] = r
			m.fixed[i] = fixed
			m.pinned[i] = c.temperature(r)
		}
	}

	return m, nil
}

// Matches reports whether m was built for exactly c on a w×h grid.
func (m *RegionMap) Matches(c Condition, w, h int) bool {
	return m != nil && m.Width == w && m.Height == h && m.Condition == c
}

// InBounds reports whether (x,y) lies within the grid boundaries.
func (m *RegionMap) InBounds(x, y int) bool {
	return x >= 0 && x < m.Width && y >= 0 && y < m.Height
}

// Region returns the region of (x,y).
func (m *RegionMap) Region(x, y int) (Region, error) {
	if !m.InBounds(x, y) {
		return 0, fmt.Errorf("RegionMap.Region(%d,%d): %w", x, y, ErrOutOfRange)
	}

	return m.regions[m.index(x, y)], nil
}

// Fixed reports whether (x,y) is held at its region temperature.
// Out-of-range coordinates report false.
func (m *RegionMap) Fixed(x, y int) bool {
	return m.InBounds(x, y) && m.fixed[m.index(x, y)]
}

// FixedAt is the row-major form of Fixed, without bounds checks.
func (m *RegionMap) FixedAt(i int) bool { return m.fixed[i] }

// PinnedAt returns the region temperature of row-major cell i.
func (m *RegionMap) PinnedAt(i int) float32 { return m.pinned[i] }

// Count returns the number of cells classified as r.
// Complexity: O(w*h).
func (m *RegionMap) Count(r Region) int {
	n := 0
	for _, v := range m.regions {
		if v == r {
			n++
		}
	}

	return n
}

// FreeCells returns the number of cells the stencil evolves.
func (m *RegionMap) FreeCells() int {
	n := 0
	for _, f := range m.fixed {
		if !f {
			n++
		}
	}

	return n
}

// ConnectedComponents finds every 4-connected island of cells in region r.
// Returns one slice of row-major indices per component, components in
// order of their first cell in row-major scan, cells in BFS order.
//
// To convert an index back to (x,y), use Coordinate.
//
// Time:   O(W·H·4).
// Memory: O(W·H) for visited flags and output.
func (m *RegionMap) ConnectedComponents(r Region) [][]int {
	seen := make([]bool, len(m.regions))
	var comps [][]int

	for y := 0; y < m.Height; y++ {
		for x := 0; x < m.Width; x++ {
			i0 := m.index(x, y)
			if m.regions[i0] != r || seen[i0] {
				continue
			}
			// BFS to collect component
			queue := []int{i0}
			seen[i0] = true
			var comp []int

			for qi := 0; qi < len(queue); qi++ {
				u := queue[qi]
				comp = append(comp, u)
				ux, uy := m.Coordinate(u)
				for _, d := range m.neighborOffsets {
					vx, vy := ux+d[0], uy+d[1]
					if !m.InBounds(vx, vy) {
						continue
					}
					vi := m.index(vx, vy)
					if m.regions[vi] == r && !seen[vi] {
						seen[vi] = true
						queue = append(queue, vi)
					}
				}
			}
			comps = append(comps, comp)
		}
	}

	return comps
}

// index maps (x,y) to a row-major index: y*Width + x.
func (m *RegionMap) index(x, y int) int {
	return y*m.Width + x
}

// Coordinate converts a row-major index back to (x,y).
func (m *RegionMap) Coordinate(idx int) (x, y int) {
	return idx % m.Width, idx / m.Width
}
