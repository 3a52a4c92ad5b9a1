package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/katalvlaran/heatpipe/config"
	"github.com/katalvlaran/heatpipe/heat"
)

// cliFlags holds the parsed command line. Only flags the user actually set
// override the settings file.
type cliFlags struct {
	Config      string
	Steps       uint64
	Strategy    string
	Out         string
	FrameEvery  int
	Listen      string
	Checkpoint  string
	Resume      string
	Tolerance   float64
	Verbose     bool
	PrintConfig bool

	set map[string]bool
}

func parseFlags(args []string, stderr io.Writer) (*cliFlags, error) {
	f := &cliFlags{set: make(map[string]bool)}
	fs := flag.NewFlagSet("heatsim", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&f.Config, "config", "", "YAML settings file")
	fs.Uint64Var(&f.Steps, "steps", config.DefaultSteps, "maximum steps to run (0 = until -tol or interrupt)")
	fs.StringVar(&f.Strategy, "strategy", heat.DefaultStrategy.String(), "launch strategy: global, shared, strip or serial")
	fs.StringVar(&f.Out, "out", "", "directory for PNG frames")
	fs.IntVar(&f.FrameEvery, "frame-every", config.DefaultFrameEvery, "emit a frame every N steps (0 = first and last only)")
	fs.StringVar(&f.Listen, "listen", "", "serve frames over WebSocket at this address, path /ws")
	fs.StringVar(&f.Checkpoint, "checkpoint", "", "save a checkpoint here at exit")
	fs.StringVar(&f.Resume, "resume", "", "continue from this checkpoint instead of resetting")
	fs.Float64Var(&f.Tolerance, "tol", 0, "stop once the step residual is at or below this value (0 = off)")
	fs.BoolVar(&f.Verbose, "v", false, "log every step")
	fs.BoolVar(&f.PrintConfig, "print-config", false, "print the effective settings as YAML and exit")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	fs.Visit(func(fl *flag.Flag) { f.set[fl.Name] = true })

	return f, nil
}

// settings loads the settings file (or the defaults) and applies the flags
// that were set.
func (f *cliFlags) settings() (config.Settings, error) {
	s := config.Default()
	if f.Config != "" {
		var err error
		if s, err = config.Load(f.Config); err != nil {
			return config.Settings{}, err
		}
	}

	if f.set["strategy"] {
		st, err := heat.ParseStrategy(f.Strategy)
		if err != nil {
			return config.Settings{}, err
		}
		s.Execution.Strategy = st
	}
	if f.set["steps"] {
		s.Run.Steps = f.Steps
	}
	if f.set["tol"] {
		s.Run.Tolerance = f.Tolerance
	}
	if f.set["frame-every"] {
		s.Run.FrameEvery = f.FrameEvery
	}
	if f.set["out"] {
		s.Run.Out = f.Out
	}
	if f.set["listen"] {
		s.Run.Listen = f.Listen
	}
	if f.set["checkpoint"] {
		s.Run.Checkpoint = f.Checkpoint
	}

	return s, s.Validate()
}
