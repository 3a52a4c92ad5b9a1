// Package main runs the heat-pipe plate simulation from the command line.
//
// The plate, pipe and physics come from a YAML settings file (see package
// config) and can be overridden by flags. Frames are written as PNG files,
// optionally streamed to WebSocket viewers, and the final state can be
// saved as a checkpoint to resume later.
//
// Usage:
//
//	# 1000 steps of the default 640×640 plate, a PNG every 100 steps
//	heatsim -out frames
//
//	# run to steady state with the strip strategy and watch it live
//	heatsim -config plate.yaml -steps 0 -tol 1e-3 -strategy strip -listen :8080
//
//	# save, then continue for another 500 steps
//	heatsim -steps 500 -checkpoint run.heat
//	heatsim -steps 500 -resume run.heat -checkpoint run.heat
//
//	# show the effective settings
//	heatsim -config plate.yaml -print-config
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "heatsim: %v\n", err)
		os.Exit(1)
	}
}
