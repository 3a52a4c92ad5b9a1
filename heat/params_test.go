package heat_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/heatpipe/heat"
	"github.com/stretchr/testify/require"
)

// TestParams_Validate covers the positivity/finiteness rules and the
// explicit stability limit.
func TestParams_Validate(t *testing.T) {
	ok := heat.DefaultParams()
	require.NoError(t, ok.Validate())
	require.InDelta(t, 0.5, ok.StabilityNumber(), 1e-15)
	require.InDelta(t, 1.0, ok.Diffusivity(), 1e-15)

	mutate := func(f func(*heat.Params)) heat.Params {
		p := heat.DefaultParams()
		f(&p)
		return p
	}
	cases := []struct {
		name string
		p    heat.Params
		err  error
	}{
		{"ZeroDt", mutate(func(p *heat.Params) { p.Dt = 0 }), heat.ErrInvalidParams},
		{"NegativeKappa", mutate(func(p *heat.Params) { p.Kappa = -1 }), heat.ErrInvalidParams},
		{"NaNHeatCapacity", mutate(func(p *heat.Params) { p.HeatCapacity = math.NaN() }), heat.ErrInvalidParams},
		{"InfDx", mutate(func(p *heat.Params) { p.Dx = math.Inf(1) }), heat.ErrInvalidParams},
		{"ZeroDy", mutate(func(p *heat.Params) { p.Dy = 0 }), heat.ErrInvalidParams},
		{"TooLargeDt", mutate(func(p *heat.Params) { p.Dt = 0.3 }), heat.ErrUnstable},
		{"FineMesh", mutate(func(p *heat.Params) { p.Dx, p.Dy = 0.5, 0.5 }), heat.ErrUnstable},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.ErrorIs(t, tc.p.Validate(), tc.err)
			_, err := heat.New(tc.p)
			require.ErrorIs(t, err, tc.err)
		})
	}

	// A smaller step on a finer mesh is fine again.
	fine := mutate(func(p *heat.Params) { p.Dx, p.Dy, p.Dt = 0.5, 0.5, 0.05 })
	require.NoError(t, fine.Validate())
}

// TestSimulation_ParamsImmutable: the run keeps its own copy of the params.
func TestSimulation_ParamsImmutable(t *testing.T) {
	p := heat.DefaultParams()
	s, err := heat.New(p)
	require.NoError(t, err)
	p.Dt = 99
	require.Equal(t, heat.DefaultDt, s.Params().Dt)
}

func TestShape_Validate(t *testing.T) {
	require.NoError(t, heat.DefaultShape().Validate())
	require.NoError(t, heat.Shape{X: 1, Y: 1, Z: 0}.Validate())
	require.ErrorIs(t, heat.Shape{X: 0, Y: 1}.Validate(), heat.ErrInvalidShape)
	require.ErrorIs(t, heat.Shape{X: 1, Y: 0}.Validate(), heat.ErrInvalidShape)
	require.ErrorIs(t, heat.Shape{X: 1, Y: 1, Z: -2}.Validate(), heat.ErrInvalidShape)

	require.Equal(t, 3, heat.Shape{X: 1, Y: 1, Z: 3}.Workers())
	require.Positive(t, heat.DefaultShape().Workers())
	require.Equal(t, 9, heat.Shape{X: 32, Y: 32}.Tiles(65, 70))
}

func TestStrategy_Names(t *testing.T) {
	for _, st := range heat.Strategies {
		got, err := heat.ParseStrategy(st.String())
		require.NoError(t, err)
		require.Equal(t, st, got)

		text, err := st.MarshalText()
		require.NoError(t, err)
		var back heat.Strategy
		require.NoError(t, back.UnmarshalText(text))
		require.Equal(t, st, back)
	}
	got, err := heat.ParseStrategy("SHARED")
	require.NoError(t, err)
	require.Equal(t, heat.StrategyShared, got)

	_, err = heat.ParseStrategy("texture")
	require.ErrorIs(t, err, heat.ErrUnknownStrategy)
	_, err = heat.Strategy(9).MarshalText()
	require.ErrorIs(t, err, heat.ErrUnknownStrategy)
	require.Equal(t, "strategy(9)", heat.Strategy(9).String())
}

func TestOptions(t *testing.T) {
	s, err := heat.New(heat.DefaultParams())
	require.NoError(t, err)
	require.Equal(t, heat.DefaultStrategy, s.Strategy())

	s, err = heat.New(heat.DefaultParams(), heat.WithStrategy(heat.StrategyStrip))
	require.NoError(t, err)
	require.Equal(t, heat.StrategyStrip, s.Strategy())

	require.Panics(t, func() { heat.WithStrategy(heat.Strategy(200)) })
	require.Panics(t, func() { heat.WithLogger(nil) })
}
