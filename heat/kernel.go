package heat

import (
	"image"
	"sync"

	"github.com/katalvlaran/heatpipe/boundary"
)

// stepKernel carries the read-only inputs and the write targets of one step.
// src is the snapshot taken when the step started; dst is the scratch
// buffer the step writes into. Workers write disjoint cells of dst and out.
type stepKernel struct {
	src, dst []float32
	w, h     int
	cx, cy   float32
	regions  *boundary.RegionMap
	out      *image.RGBA
}

// stencil is the explicit update of one free cell. Every strategy calls
// it with the same operand order so their results agree.
func stencil(c, e, w, n, s, cx, cy float32) float32 {
	return c + cx*(e+w-2*c) + cy*(n+s-2*c)
}

// globalTile updates the cells of t reading neighbours directly from src.
// Returns the largest |T' - T| in the tile.
func (k *stepKernel) globalTile(t tile) float32 {
	var worst float32
	for y := t.y0; y < t.y1; y++ {
		row := y * k.w
		for x := t.x0; x < t.x1; x++ {
			i := row + x
			c := k.src[i]
			v := k.regions.PinnedAt(i)
			if !k.regions.FixedAt(i) {
				v = stencil(c, k.src[i+1], k.src[i-1], k.src[i-k.w], k.src[i+k.w], k.cx, k.cy)
			}
			k.dst[i] = v
			worst = maxDelta(worst, v, c)
			shade(k.out, x, y, v)
		}
	}

	return worst
}

// haloPool recycles the staging buffers of StrategyShared.
var haloPool = sync.Pool{
	New: func() any {
		buf := make([]float32, 0, (DefaultTileX+2)*(DefaultTileY+2))
		return &buf
	},
}

// sharedTile stages t plus a one-cell halo into a pooled local buffer and
// computes the tile from that copy. Halo cells past the grid edge are
// clamped to the nearest edge cell; free cells never read them because
// edge cells are always fixed.
func (k *stepKernel) sharedTile(t tile) float32 {
	sw, sh := t.width()+2, t.height()+2
	bp := haloPool.Get().(*[]float32)
	defer haloPool.Put(bp)
	if cap(*bp) < sw*sh {
		*bp = make([]float32, sw*sh)
	}
	buf := (*bp)[:sw*sh]

	// Stage 1: load tile and halo.
	for ly := 0; ly < sh; ly++ {
		gy := clampIndex(t.y0-1+ly, k.h)
		for lx := 0; lx < sw; lx++ {
			gx := clampIndex(t.x0-1+lx, k.w)
			buf[ly*sw+lx] = k.src[gy*k.w+gx]
		}
	}

	// Stage 2: compute from the staged copy.
	var worst float32
	for y := t.y0; y < t.y1; y++ {
		ly := y - t.y0 + 1
		for x := t.x0; x < t.x1; x++ {
			j := ly*sw + (x - t.x0 + 1)
			i := y*k.w + x
			c := buf[j]
			v := k.regions.PinnedAt(i)
			if !k.regions.FixedAt(i) {
				v = stencil(c, buf[j+1], buf[j-1], buf[j-sw], buf[j+sw], k.cx, k.cy)
			}
			k.dst[i] = v
			worst = maxDelta(worst, v, c)
			shade(k.out, x, y, v)
		}
	}

	return worst
}

// clampIndex clips idx into [0, n).
func clampIndex(idx, n int) int {
	if idx < 0 {
		return 0
	}
	if idx > n-1 {
		return n - 1
	}

	return idx
}

func maxDelta(worst, a, b float32) float32 {
	d := a - b
	if d < 0 {
		d = -d
	}
	if d > worst {
		return d
	}

	return worst
}
