package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int `csv:"-"`
	WindowEndTick   int `csv:"window_end"`

	// Population at window end
	Population int `csv:"population"`
	Colours    int `csv:"colours"` // distinct recipe colours among survivors

	// Events during window
	Births       int     `csv:"births"`
	Deaths       int     `csv:"deaths"`
	Seeded       int     `csv:"seeded"`
	LifespanMean float64 `csv:"lifespan_mean"` // age at death

	// Survivor distributions (sampled on the last tick of the window)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	AgeMean float64 `csv:"age_mean"`
	AgeMax  float64 `csv:"age_max"`

	ComplexityMean float64 `csv:"complexity_mean"` // neurons per network
	ComplexityMax  float64 `csv:"complexity_max"`
	RecipeLenMean  float64 `csv:"recipe_len_mean"`
	GenerationMax  int     `csv:"generation_max"`

	// Ground and organism energy pools
	TotalResources int `csv:"total_resources"`
	TotalBody      int `csv:"total_body"`
	TotalOrganisms int `csv:"total_organisms"` // energy held by survivors
}

// Distribution summarises a sample of values.
type Distribution struct {
	Mean, Std     float64
	P10, P50, P90 float64
	Max           float64
}

// Summarize computes the distribution of values. An empty sample yields
// the zero Distribution.
func Summarize(values []float64) Distribution {
	if len(values) == 0 {
		return Distribution{}
	}
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	mean, std := stat.PopMeanStdDev(sorted, nil)
	return Distribution{
		Mean: mean,
		Std:  std,
		P10:  stat.Quantile(0.10, stat.Empirical, sorted, nil),
		P50:  stat.Quantile(0.50, stat.Empirical, sorted, nil),
		P90:  stat.Quantile(0.90, stat.Empirical, sorted, nil),
		Max:  sorted[len(sorted)-1],
	}
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", s.WindowStartTick),
		slog.Int("window_end", s.WindowEndTick),
		slog.Int("population", s.Population),
		slog.Int("colours", s.Colours),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("seeded", s.Seeded),
		slog.Float64("lifespan_mean", s.LifespanMean),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_max", s.AgeMax),
		slog.Float64("complexity_mean", s.ComplexityMean),
		slog.Float64("complexity_max", s.ComplexityMax),
		slog.Float64("recipe_len_mean", s.RecipeLenMean),
		slog.Int("generation_max", s.GenerationMax),
		slog.Int("total_resources", s.TotalResources),
		slog.Int("total_body", s.TotalBody),
		slog.Int("total_organisms", s.TotalOrganisms),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"population", s.Population,
		"colours", s.Colours,
		"births", s.Births,
		"deaths", s.Deaths,
		"seeded", s.Seeded,
		"lifespan_mean", s.LifespanMean,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
		"age_mean", s.AgeMean,
		"complexity_mean", s.ComplexityMean,
		"complexity_max", s.ComplexityMax,
		"generation_max", s.GenerationMax,
		"total_resources", s.TotalResources,
		"total_body", s.TotalBody,
	)
}
