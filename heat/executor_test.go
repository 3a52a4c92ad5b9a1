// File: heat/executor_test.go
package heat

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/grid"
	"github.com/stretchr/testify/require"
)

// TestExecutor_RunsEveryTaskOnce checks that n tasks run exactly once each
// for worker counts below, at and above n.
func TestExecutor_RunsEveryTaskOnce(t *testing.T) {
	for _, workers := range []int{0, 1, 3, 8, 64} {
		const n = 37
		var hits [n]atomic.Int32
		err := executor{workers: workers}.run(n, func(i int) { hits[i].Add(1) })
		require.NoError(t, err)
		for i := range hits {
			require.Equal(t, int32(1), hits[i].Load(), "workers=%d task=%d", workers, i)
		}
	}
	require.NoError(t, executor{workers: 4}.run(0, func(int) { t.Fatal("no task expected") }))
}

// TestExecutor_BoundsConcurrency never runs more tasks at once than workers.
func TestExecutor_BoundsConcurrency(t *testing.T) {
	const workers = 3
	var running, peak atomic.Int32
	err := executor{workers: workers}.run(40, func(int) {
		now := running.Add(1)
		for {
			p := peak.Load()
			if now <= p || peak.CompareAndSwap(p, now) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		running.Add(-1)
	})
	require.NoError(t, err)
	require.LessOrEqual(t, peak.Load(), int32(workers))
	require.Positive(t, peak.Load())
}

// TestExecutor_RecoversPanic converts a worker panic into ErrDeviceFailure.
func TestExecutor_RecoversPanic(t *testing.T) {
	var done atomic.Int32
	err := executor{workers: 4}.run(10, func(i int) {
		if i == 6 {
			panic("boom")
		}
		done.Add(1)
	})
	require.ErrorIs(t, err, ErrDeviceFailure)
	require.Contains(t, err.Error(), "boom")
	require.Equal(t, int32(9), done.Load(), "other tasks still run")
}

// TestStep_DeviceFailureKeepsField injects a fault into one tile: the step
// fails with ErrDeviceFailure, the field is untouched and the run can
// keep stepping once the fault is gone.
func TestStep_DeviceFailureKeepsField(t *testing.T) {
	s, err := New(DefaultParams())
	require.NoError(t, err)
	f, err := grid.NewField(20, 20)
	require.NoError(t, err)
	img := NewImage(f)
	bc := boundary.Condition{X: 10, Y: 10, Radius: 3, TPipe: 100, TAir: 0}
	shape := Shape{X: 5, Y: 5, Z: 4}

	require.NoError(t, s.Reset(f, bc, shape))
	require.NoError(t, s.Step(img, f, bc, shape))
	before := f.Clone()

	for _, st := range Strategies {
		s.exec.beforeTask = func(task int) {
			if task == 0 {
				panic("device lost")
			}
		}
		err = s.StepWith(st, img, f, bc, shape)
		require.ErrorIs(t, err, ErrDeviceFailure, st.String())
		require.Equal(t, before.Data(), f.Data(), st.String())
		require.Equal(t, uint64(1), s.Steps())
	}

	s.exec.beforeTask = nil
	require.NoError(t, s.Step(img, f, bc, shape))
	require.Equal(t, uint64(2), s.Steps())
}

// TestReset_DeviceFailure leaves the run uninitialized.
func TestReset_DeviceFailure(t *testing.T) {
	s, err := New(DefaultParams())
	require.NoError(t, err)
	f, _ := grid.NewField(8, 8)
	s.exec.beforeTask = func(int) { panic("no device") }

	err = s.Reset(f, boundary.Condition{X: 4, Y: 4}, DefaultShape())
	require.ErrorIs(t, err, ErrDeviceFailure)
	require.Equal(t, StateUninitialized, s.State())
}

// TestTiles_CoverGrid: every cell is covered by exactly one tile for
// shapes that divide the grid and shapes that do not.
func TestTiles_CoverGrid(t *testing.T) {
	cases := []struct {
		w, h  int
		shape Shape
	}{
		{64, 64, Shape{X: 32, Y: 32}},
		{83, 61, Shape{X: 32, Y: 32}},
		{5, 3, Shape{X: 1, Y: 1}},
		{7, 9, Shape{X: 100, Y: 2}},
	}
	for _, tc := range cases {
		cover := make([]int, tc.w*tc.h)
		ts := tc.shape.tiles(tc.w, tc.h)
		require.Len(t, ts, tc.shape.Tiles(tc.w, tc.h))
		for _, tl := range ts {
			require.Positive(t, tl.width())
			require.Positive(t, tl.height())
			for y := tl.y0; y < tl.y1; y++ {
				for x := tl.x0; x < tl.x1; x++ {
					cover[y*tc.w+x]++
				}
			}
		}
		for i, c := range cover {
			require.Equal(t, 1, c, "%dx%d shape %+v cell %d", tc.w, tc.h, tc.shape, i)
		}
	}
}

// TestStrips_CoverRows checks band splitting, including more workers than rows.
func TestStrips_CoverRows(t *testing.T) {
	for _, n := range []int{1, 3, 7, 50} {
		bands := strips(10, 7, n)
		require.LessOrEqual(t, len(bands), 7)
		next := 0
		for _, b := range bands {
			require.Equal(t, next, b.y0)
			require.Greater(t, b.y1, b.y0)
			require.Equal(t, 10, b.width())
			next = b.y1
		}
		require.Equal(t, 7, next)
	}
}

// TestSharedTile_HaloClamp checks the staged halo on an edge tile reads
// clamped neighbours and still matches the global path.
func TestSharedTile_HaloClamp(t *testing.T) {
	const w, h = 6, 5
	src := make([]float32, w*h)
	for i := range src {
		src[i] = float32(i)
	}
	bc := boundary.Condition{X: 3, Y: 2, Radius: 0, TAir: 1, TGround: 2}
	m, err := boundary.NewRegionMap(bc, w, h)
	require.NoError(t, err)

	a, b := make([]float32, w*h), make([]float32, w*h)
	ka := &stepKernel{src: src, dst: a, w: w, h: h, cx: 0.25, cy: 0.25, regions: m}
	kb := &stepKernel{src: src, dst: b, w: w, h: h, cx: 0.25, cy: 0.25, regions: m}
	for _, tl := range (Shape{X: 4, Y: 4}).tiles(w, h) {
		ra := ka.globalTile(tl)
		rb := kb.sharedTile(tl)
		require.Equal(t, ra, rb)
	}
	require.Equal(t, a, b)
}

func TestClampIndex(t *testing.T) {
	require.Equal(t, 0, clampIndex(-1, 5))
	require.Equal(t, 4, clampIndex(5, 5))
	require.Equal(t, 2, clampIndex(2, 5))
}
