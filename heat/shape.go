package heat

import (
	"fmt"
	"runtime"
)

// Default launch shape: 32×32 tiles, one worker per available CPU.
const (
	DefaultTileX = 32
	DefaultTileY = 32
)

// Shape describes how one step is split into parallel work.
//   - X, Y: tile width and height in cells (≥ 1).
//   - Z: number of worker goroutines; 0 means runtime.GOMAXPROCS(0).
type Shape struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	Z int `yaml:"z"`
}

// DefaultShape returns 32×32 tiles on GOMAXPROCS workers.
func DefaultShape() Shape {
	return Shape{X: DefaultTileX, Y: DefaultTileY}
}

// Validate rejects non-positive tile sizes and negative worker counts.
func (s Shape) Validate() error {
	if s.X < 1 || s.Y < 1 || s.Z < 0 {
		return fmt.Errorf("Shape.Validate(%d,%d,%d): %w", s.X, s.Y, s.Z, ErrInvalidShape)
	}

	return nil
}

// Workers returns the resolved worker count.
func (s Shape) Workers() int {
	if s.Z == 0 {
		return runtime.GOMAXPROCS(0)
	}

	return s.Z
}

// tile is a half-open rectangle [x0,x1)×[y0,y1) of cells.
type tile struct {
	x0, y0, x1, y1 int
}

func (t tile) width() int  { return t.x1 - t.x0 }
func (t tile) height() int { return t.y1 - t.y0 }

// Tiles returns the number of tiles covering a w×h grid.
func (s Shape) Tiles(w, h int) int {
	return ceilDiv(w, s.X) * ceilDiv(h, s.Y)
}

// tiles covers a w×h grid with X×Y tiles in row-major tile order.
// Tiles on the right and bottom edges are clipped to the grid.
func (s Shape) tiles(w, h int) []tile {
	out := make([]tile, 0, s.Tiles(w, h))
	for y0 := 0; y0 < h; y0 += s.Y {
		for x0 := 0; x0 < w; x0 += s.X {
			out = append(out, tile{
				x0: x0,
				y0: y0,
				x1: min(x0+s.X, w),
				y1: min(y0+s.Y, h),
			})
		}
	}

	return out
}

// strips splits h rows into at most n contiguous full-width bands of
// near-equal height. Never returns empty bands.
func strips(w, h, n int) []tile {
	if n > h {
		n = h
	}
	out := make([]tile, 0, n)
	for i := 0; i < n; i++ {
		y0, y1 := i*h/n, (i+1)*h/n
		if y1 > y0 {
			out = append(out, tile{x0: 0, y0: y0, x1: w, y1: y1})
		}
	}

	return out
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
