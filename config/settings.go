// SPDX-License-Identifier: MIT

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/heatpipe/boundary"
	"github.com/katalvlaran/heatpipe/heat"
)

// Defaults of the reference plate.
const (
	DefaultWidth      = 640
	DefaultHeight     = 640
	DefaultTPipe      = 212
	DefaultTAir       = 70
	DefaultTGround    = 0
	DefaultSteps      = 1000
	DefaultFrameEvery = 100
)

// Grid is the plate size in cells.
type Grid struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Execution selects how steps are launched.
type Execution struct {
	Strategy heat.Strategy `yaml:"strategy"`
	Tiles    heat.Shape    `yaml:"tiles"`
}

// Run drives the CLI loop.
//   - Steps: maximum number of steps; 0 runs until Tolerance or interrupt.
//   - Tolerance: stop once the residual is at or below it; 0 disables.
//   - FrameEvery: write/broadcast a frame every N steps; 0 disables.
type Run struct {
	Steps      uint64  `yaml:"steps"`
	Tolerance  float64 `yaml:"tolerance"`
	FrameEvery int     `yaml:"frame_every"`
	Out        string  `yaml:"out"`        // directory for PNG frames; empty disables
	Listen     string  `yaml:"listen"`     // WebSocket address; empty disables
	Checkpoint string  `yaml:"checkpoint"` // checkpoint path written at exit; empty disables
}

// Settings is the complete heatsim configuration.
type Settings struct {
	Grid      Grid               `yaml:"grid"`
	Pipe      boundary.Condition `yaml:"pipe"`
	Physics   heat.Params        `yaml:"physics"`
	Execution Execution          `yaml:"execution"`
	Run       Run                `yaml:"run"`
}

// Default returns the settings of the reference 640×640 plate.
func Default() Settings {
	return DefaultFor(DefaultWidth, DefaultHeight)
}

// DefaultFor returns the defaults for a w×h plate: the pipe sits at the
// centre with radius w/10 and the top corners are cut by w/4.
func DefaultFor(w, h int) Settings {
	return Settings{
		Grid: Grid{Width: w, Height: h},
		Pipe: boundary.Condition{
			X:       w / 2,
			Y:       h / 2,
			Radius:  float32(w) / 10,
			Chamfer: w / 4,
			TPipe:   DefaultTPipe,
			TAir:    DefaultTAir,
			TGround: DefaultTGround,
		},
		Physics: heat.DefaultParams(),
		Execution: Execution{
			Strategy: heat.DefaultStrategy,
			Tiles:    heat.Shape{X: 32, Y: 32},
		},
		Run: Run{
			Steps:      DefaultSteps,
			FrameEvery: DefaultFrameEvery,
		},
	}
}

// Load reads path and overlays it on the defaults. The result is validated.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Settings{}, fmt.Errorf("Load(%s): %w", path, ErrNotFound)
	}
	if err != nil {
		return Settings{}, fmt.Errorf("Load(%s): %w", path, err)
	}
	s, err := Parse(data)
	if err != nil {
		return Settings{}, fmt.Errorf("Load(%s): %w", path, err)
	}

	return s, nil
}

// Parse overlays the YAML document data on the defaults and validates the
// result. Unknown keys are rejected.
//
// Implementation:
//   - Stage 1: read only the grid section to learn the plate size.
//   - Stage 2: decode the whole document over DefaultFor(width, height).
func Parse(data []byte) (Settings, error) {
	// Stage 1
	var probe struct {
		Grid Grid `yaml:"grid"`
	}
	probe.Grid = Grid{Width: DefaultWidth, Height: DefaultHeight}
	if err := yaml.Unmarshal(data, &probe); err != nil {
		return Settings{}, fmt.Errorf("Parse: %v: %w", err, ErrParse)
	}

	// Stage 2
	s := DefaultFor(probe.Grid.Width, probe.Grid.Height)
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, fmt.Errorf("Parse: %v: %w", err, ErrParse)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks every section against the solver's rules.
func (s Settings) Validate() error {
	if s.Grid.Width <= 0 || s.Grid.Height <= 0 {
		return fmt.Errorf("Validate: grid %dx%d: %w", s.Grid.Width, s.Grid.Height, ErrInvalid)
	}
	checks := []struct {
		section string
		err     error
	}{
		{"pipe", s.Pipe.Validate(s.Grid.Width, s.Grid.Height)},
		{"physics", s.Physics.Validate()},
		{"execution.tiles", s.Execution.Tiles.Validate()},
	}
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("Validate: %s: %v: %w", c.section, c.err, ErrInvalid)
		}
	}
	if !s.Execution.Strategy.Valid() {
		return fmt.Errorf("Validate: execution.strategy %d: %w", uint8(s.Execution.Strategy), ErrInvalid)
	}
	if s.Run.FrameEvery < 0 {
		return fmt.Errorf("Validate: run.frame_every %d: %w", s.Run.FrameEvery, ErrInvalid)
	}
	if s.Run.Tolerance < 0 || math.IsNaN(s.Run.Tolerance) || math.IsInf(s.Run.Tolerance, 0) {
		return fmt.Errorf("Validate: run.tolerance %v: %w", s.Run.Tolerance, ErrInvalid)
	}

	return nil
}

// Write emits s as YAML.
func (s Settings) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("Write: %w", err)
	}

	return enc.Close()
}

// Condition returns the pipe boundary condition.
func (s Settings) Condition() boundary.Condition { return s.Pipe }

// Params returns the physical parameters.
func (s Settings) Params() heat.Params { return s.Physics }

// Shape returns the execution shape.
func (s Settings) Shape() heat.Shape { return s.Execution.Tiles }

// Strategy returns the launch strategy.
func (s Settings) Strategy() heat.Strategy { return s.Execution.Strategy }

// Dimensions returns the plate width and height.
func (s Settings) Dimensions() (w, h int) { return s.Grid.Width, s.Grid.Height }
