// Package main provides CMA-ES optimization for evolve simulation parameters.
package main

import (
	"fmt"
	"math"

	"github.com/pthm-cable/evolve/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Registered config parameter, e.g. "costs.divide"
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Starting value, read from the base config
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// searchSpace lists the tuned parameters and their search bounds.
// Bounds are narrower than the registered limits.
var searchSpace = []ParamSpec{
	// Costs
	{Name: "costs.base", Min: 0, Max: 5},
	{Name: "costs.size", Min: 0, Max: 5},
	{Name: "costs.divide", Min: 0, Max: 60},
	{Name: "costs.move", Min: 0, Max: 10},
	{Name: "costs.eat", Min: 0, Max: 5},
	// Resources
	{Name: "resources.max_resources", Min: 50, Max: 255},
	{Name: "resources.consumption_rate", Min: 1, Max: 100},
	{Name: "resources.body_energy", Min: 0, Max: 20},
	// Replication
	{Name: "mutation.rate", Min: 1, Max: 100},
	{Name: "energy.max_energy", Min: 200, Max: 4000},
	// Decay
	{Name: "half_life.body", Min: 10, Max: 999},
}

// NewParamVector creates the standard set of optimizable parameters, taking
// defaults from base. Defaults outside the search bounds are clamped.
func NewParamVector(base *config.Config) (*ParamVector, error) {
	pv := &ParamVector{Specs: make([]ParamSpec, len(searchSpace))}
	for i, spec := range searchSpace {
		p, ok := config.Lookup(spec.Name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", config.ErrUnknownParam, spec.Name)
		}
		if spec.Min < float64(p.Min) || spec.Max > float64(p.Max) {
			return nil, fmt.Errorf("%s: search bounds [%v, %v] exceed registered [%d, %d]",
				spec.Name, spec.Min, spec.Max, p.Min, p.Max)
		}
		v, err := base.Get(spec.Name)
		if err != nil {
			return nil, err
		}
		spec.Default = math.Max(spec.Min, math.Min(spec.Max, float64(v)))
		pv.Specs[i] = spec
	}
	return pv, nil
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		val := v[i]
		if val < spec.Min {
			val = spec.Min
		}
		if val > spec.Max {
			val = spec.Max
		}
		clamped[i] = val
	}
	return clamped
}

// Round clamps values and rounds them to the integers actually applied.
func (pv *ParamVector) Round(v []float64) []float64 {
	rounded := pv.Clamp(v)
	for i := range rounded {
		rounded[i] = math.Round(rounded[i])
	}
	return rounded
}

// ApplyToConfig applies parameter values to a Config, clamped and rounded.
func (pv *ParamVector) ApplyToConfig(cfg *config.Config, values []float64) error {
	for i, v := range pv.Round(values) {
		if err := cfg.Set(pv.Specs[i].Name, int(v)); err != nil {
			return err
		}
	}
	return nil
}

// ExtractFromConfig extracts current parameter values from a Config.
func (pv *ParamVector) ExtractFromConfig(cfg *config.Config) ([]float64, error) {
	out := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v, err := cfg.Get(spec.Name)
		if err != nil {
			return nil, err
		}
		out[i] = float64(v)
	}
	return out, nil
}
