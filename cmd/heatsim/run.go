package main

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/config"
	"github.com/katalvlaran/heatpipe/grid"
	"github.com/katalvlaran/heatpipe/heat"
	"github.com/katalvlaran/heatpipe/snapshot"
	"github.com/katalvlaran/heatpipe/stream"
)

// run is main without the process exit, so it can be tested.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	settings, err := flags.settings()
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if flags.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// A checkpoint carries its own plate, pipe and physics.
	var cp *snapshot.Checkpoint
	if flags.Resume != "" {
		if cp, err = snapshot.Load(flags.Resume); err != nil {
			return err
		}
		settings.Grid = config.Grid{Width: cp.Width, Height: cp.Height}
		settings.Pipe = cp.Condition
		settings.Physics = cp.Params
	}
	if flags.PrintConfig {
		return settings.Write(stdout)
	}

	r, err := newRunner(settings, logger)
	if err != nil {
		return err
	}
	if cp != nil {
		err = r.resume(cp)
	} else {
		err = r.reset()
	}
	if err != nil {
		return err
	}

	if settings.Run.Listen != "" {
		stop, err := r.serve(settings.Run.Listen)
		if err != nil {
			return err
		}
		defer stop()
	}

	return r.loop(ctx)
}

// runner owns one simulation and its outputs.
type runner struct {
	settings config.Settings
	logger   *slog.Logger

	sim   *heat.Simulation
	field *grid.Field
	img   *image.RGBA
	bc    boundary.Condition
	shape heat.Shape
	hub   *stream.Hub

	lastFrame uint64
	emitted   bool
}

func newRunner(s config.Settings, logger *slog.Logger) (*runner, error) {
	sim, err := heat.New(s.Params(), heat.WithStrategy(s.Strategy()), heat.WithLogger(logger))
	if err != nil {
		return nil, err
	}
	if s.Run.Out != "" {
		if err = os.MkdirAll(s.Run.Out, 0o755); err != nil {
			return nil, err
		}
	}

	return &runner{
		settings: s,
		logger:   logger,
		sim:      sim,
		bc:       s.Condition(),
		shape:    s.Shape(),
	}, nil
}

func (r *runner) reset() error {
	w, h := r.settings.Dimensions()
	field, err := grid.NewField(w, h)
	if err != nil {
		return err
	}
	if err = r.sim.Reset(field, r.bc, r.shape); err != nil {
		return err
	}
	r.field, r.img = field, heat.NewImage(field)

	return heat.Render(r.img, r.field)
}

func (r *runner) resume(cp *snapshot.Checkpoint) error {
	field, err := cp.Field()
	if err != nil {
		return err
	}
	if err = r.sim.Resume(field, r.bc, cp.Step); err != nil {
		return err
	}
	r.field, r.img = field, heat.NewImage(field)

	return heat.Render(r.img, r.field)
}

// serve starts the WebSocket endpoint and returns its shutdown function.
func (r *runner) serve(addr string) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("listen %s: %w", addr, err)
	}
	r.hub = stream.NewHub(stream.WithLogger(r.logger))
	mux := http.NewServeMux()
	mux.Handle("/ws", r.hub)
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			r.logger.Error("stream server stopped", "err", err)
		}
	}()
	r.logger.Info("streaming frames", "addr", ln.Addr().String(), "path", "/ws")

	return func() {
		_ = r.hub.Close()
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}, nil
}

// loop steps until the limit, emitting frames and the final checkpoint.
// An interrupt ends the run normally.
func (r *runner) loop(ctx context.Context) error {
	if err := r.emit(); err != nil {
		return err
	}

	every := uint64(r.settings.Run.FrameEvery)
	limit := heat.Limit{MaxSteps: r.settings.Run.Steps, Tolerance: r.settings.Run.Tolerance}
	start := time.Now()
	taken, err := r.sim.RunUntil(ctx, r.img, r.field, r.bc, r.shape, limit, func(step uint64, _ float64) error {
		if every > 0 && step%every == 0 {
			return r.emit()
		}
		return nil
	})
	switch {
	case errors.Is(err, context.Canceled):
		r.logger.Warn("interrupted", "steps", r.sim.Steps())
	case err != nil:
		return err
	}

	if err = r.emit(); err != nil {
		return err
	}
	r.logger.Info("run finished",
		"steps", r.sim.Steps(), "taken", taken,
		"residual", r.sim.Residual(),
		"min", r.field.Min(), "max", r.field.Max(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	if path := r.settings.Run.Checkpoint; path != "" {
		cp, err := snapshot.FromField(r.field, r.bc, r.sim.Params(), r.sim.Steps())
		if err != nil {
			return err
		}
		if err = snapshot.Save(path, cp); err != nil {
			return err
		}
		r.logger.Info("checkpoint saved", "path", path, "steps", cp.Step)
	}

	return nil
}

// emit writes the current image as a PNG frame and broadcasts it, once
// per step.
func (r *runner) emit() error {
	step := r.sim.Steps()
	if r.emitted && step == r.lastFrame {
		return nil
	}
	r.lastFrame, r.emitted = step, true

	if dir := r.settings.Run.Out; dir != "" {
		if err := writePNG(filepath.Join(dir, frameName(step)), r.img); err != nil {
			return err
		}
	}
	if r.hub != nil {
		fr, err := stream.NewFrame(step, r.img, r.field, r.sim.Residual())
		if err != nil {
			return err
		}
		n, err := r.hub.Broadcast(fr)
		if err != nil {
			return err
		}
		r.logger.Debug("frame broadcast", "step", step, "viewers", n)
	}

	return nil
}

func frameName(step uint64) string {
	return fmt.Sprintf("frame_%08d.png", step)
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}

	return f.Close()
}
