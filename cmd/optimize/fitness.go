package main

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/game"
	"github.com/pthm-cable/evolve/telemetry"
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params      *ParamVector
	maxTicks    int
	seeds       []int64
	baseConfig  *config.Config
	windowTicks int

	// Best run tracking
	mu          sync.Mutex
	bestFitness float64
	bestWindows []telemetry.WindowStats
	lastQuality float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator.
func NewFitnessEvaluator(params *ParamVector, maxTicks int, seeds []int64, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  baseCfg,
		windowTicks: baseCfg.Telemetry.WindowTicks,
		bestFitness: math.Inf(1),
	}
}

// BestWindows returns the telemetry of the best seed from the best evaluation.
func (fe *FitnessEvaluator) BestWindows() []telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestWindows
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// A population that needs reseeding for extinctionGraceWindows consecutive
// windows after warmup is functionally extinct.
const (
	minViablePop           = 3
	warmupWindows          = 3
	extinctionGraceWindows = 4
)

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int                     // ticks before functional extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness float64
	quality float64
	windows []telemetry.WindowStats
	err     error
}

// Evaluate computes fitness for a parameter vector (lower = better).
// Fitness is negative self-sustaining ticks, scaled up by up to 20% for quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result, err := fe.runSimulation(x, s)
			if err != nil {
				results[idx] = seedResult{fitness: math.Inf(1), err: err}
				return
			}
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness: computeFitness(result.survivalTicks, quality),
				quality: quality,
				windows: result.windowStats,
			}
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedWindows []telemetry.WindowStats

	for _, r := range results {
		if r.err != nil {
			// Invalid parameter sets are never better than anything valid.
			return math.Inf(1)
		}
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedWindows = r.windows
		}
	}

	n := float64(len(fe.seeds))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestWindows = bestSeedWindows
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until functional extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed int64) (*runResult, error) {
	cfg := fe.baseConfig.Clone()
	if err := fe.params.ApplyToConfig(cfg, x); err != nil {
		return nil, fmt.Errorf("applying parameters: %w", err)
	}

	result := &runResult{}
	reseeded := 0
	extinct := false

	g, err := game.NewGameWithOptions(game.Options{
		Seed:   seed,
		Config: cfg,
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
			if len(result.windowStats) <= warmupWindows {
				return
			}
			if stats.Seeded > 0 || stats.Population < minViablePop {
				reseeded++
			} else {
				reseeded = 0
			}
			if reseeded >= extinctionGraceWindows {
				extinct = true
			}
		},
	})
	if err != nil {
		return nil, err
	}
	defer g.Unload()

	for g.Tick() < fe.maxTicks {
		g.UpdateHeadless()
		if extinct {
			result.survivalTicks = g.Tick() - extinctionGraceWindows*fe.windowTicks
			return result, nil
		}
	}

	result.survivalTicks = fe.maxTicks
	return result, nil
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% bonus to differentiate
// configs with similar survival.
func computeFitness(survivalTicks int, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability  = 0.35
	qualityWeightEnergy     = 0.25
	qualityWeightComplexity = 0.25
	qualityWeightDiversity  = 0.15

	qualityComplexityScale = 8.0 // mean neurons at which the complexity score reaches ~63%
	qualityDiversityScale  = 4.0 // colours at which the diversity score reaches ~63%
)

// computeQuality computes ecosystem quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= warmupWindows {
		return 0
	}

	var energySum, complexitySum, diversitySum float64
	pops := make([]float64, 0, len(windows)-warmupWindows)

	for _, w := range windows[warmupWindows:] {
		if w.Population < minViablePop {
			continue
		}
		pops = append(pops, float64(w.Population))

		// Healthiest when the median sits at the mean
		if w.EnergyMean > 0 {
			rel := w.EnergyP50 / (2 * w.EnergyMean)
			energySum += math.Exp(-math.Pow((rel-0.5)/0.25, 2))
		}
		complexitySum += 1 - math.Exp(-w.ComplexityMean/qualityComplexityScale)
		diversitySum += 1 - math.Exp(-float64(w.Colours)/qualityDiversityScale)
	}

	if len(pops) == 0 {
		return 0
	}
	n := float64(len(pops))

	stabilityScore := 0.0
	if len(pops) >= 2 {
		c := cv(pops)
		stabilityScore = math.Exp(-c * c)
	}

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energySum/n +
		qualityWeightComplexity*complexitySum/n +
		qualityWeightDiversity*diversitySum/n

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
