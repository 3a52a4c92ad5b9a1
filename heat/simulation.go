package heat

import (
	"context"
	"fmt"
	"image"
	"log/slog"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/grid"
)

// State is the lifecycle state of a Simulation.
type State uint8

const (
	// StateUninitialized is the state before the first successful Reset.
	StateUninitialized State = iota
	// StateRunning is the state after Reset; steps are allowed.
	StateRunning
)

// String returns the lower-case state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateRunning:
		return "running"
	default:
		return fmt.Sprintf("state(%d)", uint8(s))
	}
}

// Simulation is one run of the heat solver. Params are fixed for its
// lifetime. The temperature field and the output image belong to the
// caller and are passed into every call.
//
// A Simulation is not safe for concurrent use.
type Simulation struct {
	params   Params
	cx, cy   float32
	strategy Strategy
	logger   *slog.Logger

	state    State
	steps    uint64
	residual float64

	regions *boundary.RegionMap // classification cache for the last (bc, w, h)
	scratch *grid.Field         // double buffer the step writes into
	exec    executor
}

// New validates params and returns a run in StateUninitialized.
func New(params Params, opts ...Option) (*Simulation, error) {
	if err := params.Validate(); err != nil {
		return nil, fmt.Errorf("heat.New: %w", err)
	}
	o := gatherOptions(opts)
	cx, cy := params.coefficients()

	return &Simulation{
		params:   params,
		cx:       cx,
		cy:       cy,
		strategy: o.strategy,
		logger:   o.logger,
	}, nil
}

// Params returns the run's constants.
func (s *Simulation) Params() Params { return s.params }

// Strategy returns the strategy used by Step.
func (s *Simulation) Strategy() Strategy { return s.strategy }

// State returns the lifecycle state.
func (s *Simulation) State() State { return s.state }

// Steps returns the number of completed steps since construction.
func (s *Simulation) Steps() uint64 { return s.steps }

// Residual returns max |T' − T| over the grid for the last completed step.
// It is 0 before the first step.
func (s *Simulation) Residual() float64 { return s.residual }

// Resume marks a run restored from a checkpoint as Running at the given
// step count without touching the field. The caller vouches that the field
// already satisfies bc; it is validated like any other call.
func (s *Simulation) Resume(field *grid.Field, bc boundary.Condition, steps uint64) error {
	if field == nil {
		return fmt.Errorf("Resume: %w", ErrNilField)
	}
	if _, err := s.regionMap(bc, field.Width(), field.Height()); err != nil {
		return fmt.Errorf("Resume: %w", err)
	}
	s.state = StateRunning
	s.steps = steps
	s.logger.Info("simulation resumed", "steps", steps)

	return nil
}

// Reset sets every cell of field to the temperature of its region under
// bc and moves the run to StateRunning.
//
// MAIN DESCRIPTION:
//   - Establish the initial state: pipe → TPipe, air and free cells → TAir,
//     ground → TGround.
//
// Implementation:
//   - Stage 1: validate field, shape and bc (cached RegionMap).
//   - Stage 2: write pinned temperatures tile by tile on the worker pool.
//   - Stage 3: transition to StateRunning, clear the residual.
//
// Behavior highlights:
//   - Idempotent; never touches an image; allowed in any state.
//   - The step count is kept, so a reset mid-run does not rewind Steps.
//
// Inputs:
//   - field: caller-owned temperatures, overwritten in place.
//   - bc: boundary condition; shape: tile size and worker count.
//
// Errors:
//   - ErrNilField, ErrInvalidShape, boundary validation sentinels.
//   - ErrDeviceFailure: a worker panicked; the state is unchanged.
//
// Complexity:
//   - Time O(w*h), Space O(w*h) for the region map on first use.
func (s *Simulation) Reset(field *grid.Field, bc boundary.Condition, shape Shape) error {
	if field == nil {
		return fmt.Errorf("Reset: %w", ErrNilField)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("Reset: %w", err)
	}
	w, h := field.Shape()
	regions, err := s.regionMap(bc, w, h)
	if err != nil {
		return fmt.Errorf("Reset: %w", err)
	}

	data := field.Data()
	tiles := shape.tiles(w, h)
	exec := s.exec
	exec.workers = shape.Workers()
	err = exec.run(len(tiles), func(ti int) {
		t := tiles[ti]
		for y := t.y0; y < t.y1; y++ {
			for i := y*w + t.x0; i < y*w+t.x1; i++ {
				data[i] = regions.PinnedAt(i)
			}
		}
	})
	if err != nil {
		s.logger.Error("reset failed", "err", err)
		return fmt.Errorf("Reset: %w", err)
	}

	s.state = StateRunning
	s.residual = 0
	s.logger.Info("simulation reset",
		"width", w, "height", h,
		"pipe_cells", regions.Count(boundary.Pipe),
		"free_cells", regions.FreeCells())

	return nil
}

// Step advances field by one Δt with the run's strategy and renders the
// result into out.
func (s *Simulation) Step(out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	return s.StepWith(s.strategy, out, field, bc, shape)
}

// KernelLauncher steps with StrategyGlobal.
func (s *Simulation) KernelLauncher(out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	return s.StepWith(StrategyGlobal, out, field, bc, shape)
}

// KernelLauncher2 steps with StrategyShared.
func (s *Simulation) KernelLauncher2(out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	return s.StepWith(StrategyShared, out, field, bc, shape)
}

// KernelLauncher3 steps with StrategyStrip.
func (s *Simulation) KernelLauncher3(out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	return s.StepWith(StrategyStrip, out, field, bc, shape)
}

// KernelLauncher4 steps with StrategySerial.
func (s *Simulation) KernelLauncher4(out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	return s.StepWith(StrategySerial, out, field, bc, shape)
}

// StepWith advances field by one Δt using strategy and renders the new
// temperatures into out.
//
// MAIN DESCRIPTION:
//   - One kernel launch: fixed cells take their region temperature, free
//     cells T' = T + cx·(E+W-2T) + cy·(N+S-2T) with cx = Δt·κ/(c_V·Dx²),
//     cy = Δt·κ/(c_V·Dy²).
//
// Implementation:
//   - Stage 1: validate strategy, field, image, shape, bc; check state.
//   - Stage 2: run the kernel from the field (snapshot) into scratch.
//   - Stage 3: copy scratch back into field and record the residual.
//
// Behavior highlights:
//   - Every neighbour read sees the field as it was when the call started.
//   - All validation happens before any worker starts.
//   - Blocks until every worker has finished.
//
// Inputs:
//   - strategy: how the grid is split among workers.
//   - out: image with the field's exact bounds and a full pixel buffer.
//   - field, bc, shape: as for Reset.
//
// Errors:
//   - ErrUnknownStrategy, ErrNilField, ErrNilImage, ErrDimensionMismatch,
//     ErrImageBuffer, ErrInvalidShape, boundary validation sentinels.
//   - ErrNotInitialized: Reset was never called.
//   - ErrDeviceFailure: a worker panicked; field and Steps are unchanged,
//     out may be partially written.
//
// Complexity:
//   - Time O(w*h) split over the workers, Space O(w*h) scratch (reused).
func (s *Simulation) StepWith(strategy Strategy, out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape) error {
	// Stage 1: preconditions, before any worker starts.
	if !strategy.Valid() {
		return fmt.Errorf("Step: %w", ErrUnknownStrategy)
	}
	if field == nil {
		return fmt.Errorf("Step: %w", ErrNilField)
	}
	if err := checkImage(out, field); err != nil {
		return fmt.Errorf("Step: %w", err)
	}
	if err := shape.Validate(); err != nil {
		return fmt.Errorf("Step: %w", err)
	}
	w, h := field.Shape()
	regions, err := s.regionMap(bc, w, h)
	if err != nil {
		return fmt.Errorf("Step: %w", err)
	}
	if s.state != StateRunning {
		return fmt.Errorf("Step: %w", ErrNotInitialized)
	}

	// Stage 2: execute.
	scratch := s.scratchFor(w, h)
	k := &stepKernel{
		src:     field.Data(),
		dst:     scratch.Data(),
		w:       w,
		h:       h,
		cx:      s.cx,
		cy:      s.cy,
		regions: regions,
		out:     out,
	}
	worst, err := s.launch(strategy, k, shape)
	if err != nil {
		s.logger.Error("step failed", "strategy", strategy.String(), "step", s.steps, "err", err)
		return fmt.Errorf("Step(%s): %w", strategy, err)
	}

	// Stage 3: publish.
	copy(field.Data(), scratch.Data())
	s.steps++
	s.residual = float64(worst)
	s.logger.Debug("step", "strategy", strategy.String(), "step", s.steps, "residual", s.residual)

	return nil
}

// launch partitions the grid for strategy and runs the kernel on the pool.
func (s *Simulation) launch(strategy Strategy, k *stepKernel, shape Shape) (float32, error) {
	exec := s.exec
	var (
		parts []tile
		body  func(tile) float32
	)
	switch strategy {
	case StrategyGlobal:
		parts, body = shape.tiles(k.w, k.h), k.globalTile
		exec.workers = shape.Workers()
	case StrategyShared:
		parts, body = shape.tiles(k.w, k.h), k.sharedTile
		exec.workers = shape.Workers()
	case StrategyStrip:
		parts, body = strips(k.w, k.h, shape.Workers()), k.globalTile
		exec.workers = len(parts)
	case StrategySerial:
		parts, body = []tile{{x0: 0, y0: 0, x1: k.w, y1: k.h}}, k.globalTile
		exec.workers = 1
	}

	partial := make([]float32, len(parts))
	if err := exec.run(len(parts), func(i int) { partial[i] = body(parts[i]) }); err != nil {
		return 0, err
	}
	var worst float32
	for _, p := range partial {
		worst = max(worst, p)
	}

	return worst, nil
}

// regionMap returns the cached classification for (bc, w, h), rebuilding
// it when the geometry changed.
func (s *Simulation) regionMap(bc boundary.Condition, w, h int) (*boundary.RegionMap, error) {
	if s.regions.Matches(bc, w, h) {
		return s.regions, nil
	}
	m, err := boundary.NewRegionMap(bc, w, h)
	if err != nil {
		return nil, err
	}
	s.regions = m
	s.logger.Debug("boundary classified", "width", w, "height", h, "pipe_cells", m.Count(boundary.Pipe))

	return m, nil
}

// scratchFor returns a w×h scratch field, reallocating on shape change.
func (s *Simulation) scratchFor(w, h int) *grid.Field {
	if s.scratch != nil && s.scratch.Width() == w && s.scratch.Height() == h {
		return s.scratch
	}
	s.scratch, _ = grid.NewField(w, h) // w, h come from a valid field

	return s.scratch
}

// Limit bounds RunUntil.
//   - MaxSteps: stop after this many steps; 0 means no bound.
//   - Tolerance: stop once the step residual is ≤ Tolerance; 0 disables.
type Limit struct {
	MaxSteps  uint64
	Tolerance float64
}

// StepFunc observes a completed step. Returning an error stops RunUntil
// and the error is passed through.
type StepFunc func(step uint64, residual float64) error

// RunUntil steps repeatedly until the limit is reached, ctx is done or
// onStep fails. Cancellation is checked between steps, never inside one.
// Returns the number of steps taken by this call.
func (s *Simulation) RunUntil(ctx context.Context, out *image.RGBA, field *grid.Field, bc boundary.Condition, shape Shape, limit Limit, onStep StepFunc) (uint64, error) {
	var taken uint64
	for limit.MaxSteps == 0 || taken < limit.MaxSteps {
		if err := ctx.Err(); err != nil {
			return taken, err
		}
		if err := s.Step(out, field, bc, shape); err != nil {
			return taken, err
		}
		taken++
		if onStep != nil {
			if err := onStep(s.steps, s.residual); err != nil {
				return taken, err
			}
		}
		if limit.Tolerance > 0 && s.residual <= limit.Tolerance {
			s.logger.Info("steady state reached", "steps", s.steps, "residual", s.residual)
			break
		}
	}

	return taken, nil
}
