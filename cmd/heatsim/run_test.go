package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/heatpipe/config"
	"github.com/katalvlaran/heatpipe/heat"
	"github.com/katalvlaran/heatpipe/snapshot"
)

const plate = `
grid:
  width: 40
  height: 30
execution:
  strategy: global
  tiles: {x: 8, y: 8, z: 2}
`

func writeConfig(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "plate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(plate), 0o600))

	return path
}

// TestRun_FramesAndCheckpoint runs a short simulation, then resumes it.
func TestRun_FramesAndCheckpoint(t *testing.T) {
	dir := t.TempDir()
	cfg := writeConfig(t, dir)
	out := filepath.Join(dir, "frames")
	ckpt := filepath.Join(dir, "run.heat")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-config", cfg, "-steps", "10", "-frame-every", "4",
		"-out", out, "-checkpoint", ckpt,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	for _, step := range []uint64{0, 4, 8, 10} {
		require.FileExists(t, filepath.Join(out, frameName(step)))
	}
	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	require.Len(t, entries, 4)

	cp, err := snapshot.Load(ckpt)
	require.NoError(t, err)
	require.Equal(t, uint64(10), cp.Step)
	require.Equal(t, 40, cp.Width)
	require.Equal(t, 30, cp.Height)

	err = run(context.Background(), []string{
		"-resume", ckpt, "-steps", "5", "-frame-every", "0",
		"-out", out, "-checkpoint", ckpt,
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	cp, err = snapshot.Load(ckpt)
	require.NoError(t, err)
	require.Equal(t, uint64(15), cp.Step)
	require.FileExists(t, filepath.Join(out, frameName(15)))
}

// TestRun_Canceled stops before the first step and still checkpoints.
func TestRun_Canceled(t *testing.T) {
	dir := t.TempDir()
	ckpt := filepath.Join(dir, "run.heat")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{"-config", writeConfig(t, dir), "-steps", "0", "-checkpoint", ckpt}, &stdout, &stderr)
	require.NoError(t, err)
	require.Contains(t, stderr.String(), "interrupted")

	cp, err := snapshot.Load(ckpt)
	require.NoError(t, err)
	require.Zero(t, cp.Step)
}

func TestRun_PrintConfig(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-strategy", "strip", "-steps", "3", "-print-config"}, &stdout, &stderr)
	require.NoError(t, err)

	s, err := config.Parse(stdout.Bytes())
	require.NoError(t, err)
	require.Equal(t, heat.StrategyStrip, s.Strategy())
	require.Equal(t, uint64(3), s.Run.Steps)
	require.Equal(t, config.DefaultWidth, s.Grid.Width)
}

func TestRun_Errors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	ctx := context.Background()

	require.ErrorIs(t, run(ctx, []string{"-strategy", "texture"}, &stdout, &stderr), heat.ErrUnknownStrategy)
	require.ErrorIs(t, run(ctx, []string{"-config", filepath.Join(t.TempDir(), "none.yaml")}, &stdout, &stderr), config.ErrNotFound)
	require.ErrorIs(t, run(ctx, []string{"-frame-every", "-2"}, &stdout, &stderr), config.ErrInvalid)
	require.ErrorIs(t, run(ctx, []string{"-resume", filepath.Join(t.TempDir(), "none.heat")}, &stdout, &stderr), os.ErrNotExist)
	require.Error(t, run(ctx, []string{"extra"}, &stdout, &stderr))
}
