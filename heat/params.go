package heat

import (
	"fmt"
	"math"
)

// Defaults for Params. With these values the stability number is exactly
// 1/2 and the update reduces to the four-neighbour average.
const (
	DefaultDt           = 0.25
	DefaultKappa        = 1.0
	DefaultHeatCapacity = 1.0
	DefaultSpacing      = 1.0

	// StabilityLimit bounds Δt·κ/c_V·(1/Dx² + 1/Dy²) for the explicit scheme.
	StabilityLimit = 0.5
)

// Params are the run-wide constants of a simulation. A Simulation copies
// them at construction and never changes them; start a new Simulation to
// use different values.
type Params struct {
	Dt           float64 `yaml:"dt" msgpack:"dt"`                      // time step Δt
	Kappa        float64 `yaml:"kappa" msgpack:"kappa"`                // thermal conductivity κ
	HeatCapacity float64 `yaml:"heat_capacity" msgpack:"heat_capacity"` // volumetric heat capacity c_V
	Dx           float64 `yaml:"dx" msgpack:"dx"`                      // cell width
	Dy           float64 `yaml:"dy" msgpack:"dy"`                      // cell height
}

// DefaultParams returns the documented defaults.
func DefaultParams() Params {
	return Params{
		Dt:           DefaultDt,
		Kappa:        DefaultKappa,
		HeatCapacity: DefaultHeatCapacity,
		Dx:           DefaultSpacing,
		Dy:           DefaultSpacing,
	}
}

// Diffusivity returns κ/c_V.
func (p Params) Diffusivity() float64 {
	return p.Kappa / p.HeatCapacity
}

// StabilityNumber returns Δt·κ/c_V·(1/Dx² + 1/Dy²).
func (p Params) StabilityNumber() float64 {
	return p.Dt * p.Diffusivity() * (1/(p.Dx*p.Dx) + 1/(p.Dy*p.Dy))
}

// Validate checks that every parameter is finite and positive and that the
// explicit scheme is stable.
func (p Params) Validate() error {
	named := [...]struct {
		name string
		v    float64
	}{
		{"Dt", p.Dt},
		{"Kappa", p.Kappa},
		{"HeatCapacity", p.HeatCapacity},
		{"Dx", p.Dx},
		{"Dy", p.Dy},
	}
	for _, n := range named {
		if math.IsNaN(n.v) || math.IsInf(n.v, 0) || n.v <= 0 {
			return fmt.Errorf("Params.Validate: %s=%v: %w", n.name, n.v, ErrInvalidParams)
		}
	}
	if s := p.StabilityNumber(); s > StabilityLimit {
		return fmt.Errorf("Params.Validate: stability number %.6g > %.2g: %w", s, StabilityLimit, ErrUnstable)
	}

	return nil
}

// coefficients returns the per-axis stencil weights Δt·κ/(c_V·Dx²) and
// Δt·κ/(c_V·Dy²) in the precision the kernels run in.
func (p Params) coefficients() (cx, cy float32) {
	a := p.Dt * p.Diffusivity()
	return float32(a / (p.Dx * p.Dx)), float32(a / (p.Dy * p.Dy))
}
