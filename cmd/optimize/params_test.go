package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/telemetry"
)

func TestParamVectorDefaults(t *testing.T) {
	cfg := config.Default()
	pv, err := NewParamVector(cfg)
	if err != nil {
		t.Fatalf("NewParamVector: %v", err)
	}
	got, err := pv.ExtractFromConfig(cfg)
	if err != nil {
		t.Fatalf("ExtractFromConfig: %v", err)
	}
	for i, spec := range pv.Specs {
		want := math.Max(spec.Min, math.Min(spec.Max, got[i]))
		if spec.Default != want {
			t.Errorf("%s default = %v, want %v", spec.Name, spec.Default, want)
		}
	}
}

func TestNormalizeRoundTrip(t *testing.T) {
	pv, err := NewParamVector(config.Default())
	if err != nil {
		t.Fatalf("NewParamVector: %v", err)
	}
	raw := pv.DefaultVector()
	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(back[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, back[i], raw[i])
		}
	}
}

func TestApplyToConfigClampsAndRounds(t *testing.T) {
	pv, err := NewParamVector(config.Default())
	if err != nil {
		t.Fatalf("NewParamVector: %v", err)
	}
	values := make([]float64, pv.Dim())
	for i, spec := range pv.Specs {
		values[i] = spec.Max + 100
	}
	values[0] = 1.6

	cfg := config.Default()
	if err := pv.ApplyToConfig(cfg, values); err != nil {
		t.Fatalf("ApplyToConfig: %v", err)
	}
	got, _ := cfg.Get(pv.Specs[0].Name)
	if got != 2 {
		t.Errorf("%s = %d, want 2", pv.Specs[0].Name, got)
	}
	for _, spec := range pv.Specs[1:] {
		got, _ := cfg.Get(spec.Name)
		if got != int(spec.Max) {
			t.Errorf("%s = %d, want %d", spec.Name, got, int(spec.Max))
		}
	}
}

func TestComputeQuality(t *testing.T) {
	steady := telemetry.WindowStats{
		Population:     100,
		Colours:        8,
		EnergyMean:     300,
		EnergyP50:      300,
		ComplexityMean: 10,
	}
	tests := []struct {
		name    string
		windows []telemetry.WindowStats
		wantMin float64
		wantMax float64
	}{
		{"warmup only", []telemetry.WindowStats{steady, steady, steady}, 0, 0},
		{"dead", []telemetry.WindowStats{steady, steady, steady, {}, {}}, 0, 0},
		{"steady", []telemetry.WindowStats{steady, steady, steady, steady, steady}, 0.7, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := computeQuality(tt.windows)
			if got < tt.wantMin || got > tt.wantMax {
				t.Errorf("computeQuality() = %v, want in [%v, %v]", got, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestComputeFitness(t *testing.T) {
	if got := computeFitness(1000, 0); got != -1000 {
		t.Errorf("computeFitness(1000, 0) = %v, want -1000", got)
	}
	if got := computeFitness(1000, 1); got != -1200 {
		t.Errorf("computeFitness(1000, 1) = %v, want -1200", got)
	}
}
