// Package main provides CMA-ES optimization for finding simulation parameters
// under which evolved populations sustain themselves without reseeding.
package main

import (
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/gocarina/gocsv"
	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/evolve/config"
)

type options struct {
	configPath string
	outputDir  string
	maxTicks   int
	seeds      int
	maxEvals   int
	population int
}

func main() {
	var opts options
	flag.StringVar(&opts.configPath, "config", "", "Base config YAML file (empty = use defaults)")
	flag.IntVar(&opts.maxTicks, "max-ticks", 100000, "Maximum simulation duration in ticks (cap)")
	flag.IntVar(&opts.seeds, "seeds", 3, "Number of seeds per evaluation")
	flag.IntVar(&opts.maxEvals, "max-evals", 200, "Maximum number of evaluations")
	flag.IntVar(&opts.population, "population", 0, "CMA-ES population size (0 = auto)")
	flag.StringVar(&opts.outputDir, "output", "", "Output directory for results")
	flag.Parse()

	if err := run(opts); err != nil {
		log.Fatal(err)
	}
}

func run(opts options) error {
	if opts.outputDir == "" {
		return errors.New("--output is required")
	}
	if err := os.MkdirAll(opts.outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	if err := config.Init(opts.configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	baseCfg := config.Cfg()

	params, err := NewParamVector(baseCfg)
	if err != nil {
		return fmt.Errorf("search space: %w", err)
	}

	seeds := make([]int64, opts.seeds)
	for i := range seeds {
		seeds[i] = int64(i*1000 + 42)
	}
	evaluator := NewFitnessEvaluator(params, opts.maxTicks, seeds, baseCfg)

	elog, err := newEvalLog(filepath.Join(opts.outputDir, "optimize_log.csv"), params, opts.maxEvals)
	if err != nil {
		return err
	}
	defer elog.close()

	popSize := opts.population
	if popSize == 0 {
		// 4 + floor(3 ln n)
		popSize = 4 + int(3*math.Log(float64(params.Dim())))
	}

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			raw := params.Denormalize(x)
			fitness := evaluator.Evaluate(raw)
			elog.record(params.Round(raw), fitness, evaluator.LastQuality())
			return fitness
		},
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.maxEvals,
		Concurrent:      0, // sequential; seeds already run in parallel
	}
	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}

	fmt.Printf("Starting CMA-ES optimization with %d parameters, population=%d, max_evals=%d\n",
		params.Dim(), popSize, opts.maxEvals)
	fmt.Printf("Seeds per evaluation: %d, ticks per run: %d\n", opts.seeds, opts.maxTicks)

	result, err := optimize.Minimize(problem, params.Normalize(params.DefaultVector()), settings, method)
	if err != nil {
		log.Printf("optimization ended: %v", err)
	}

	best := elog.bestParams
	if best == nil && result != nil {
		best = params.Round(params.Denormalize(result.X))
	}
	if best == nil {
		return errors.New("no evaluations completed")
	}

	fmt.Printf("\nOptimization complete after %d evaluations in %s\n",
		elog.evals, formatDuration(time.Since(elog.start)))
	fmt.Printf("Best fitness: %.0f\n\nBest parameters:\n", elog.bestFitness)
	for i, spec := range params.Specs {
		fmt.Printf("  %s: %d\n", spec.Name, int(best[i]))
	}

	return saveBest(opts.outputDir, baseCfg, params, best, evaluator)
}

// saveBest writes the best configuration and the telemetry of its best run.
func saveBest(dir string, base *config.Config, params *ParamVector, best []float64, fe *FitnessEvaluator) error {
	cfg := base.Clone()
	if err := params.ApplyToConfig(cfg, best); err != nil {
		return fmt.Errorf("applying best parameters: %w", err)
	}
	cfgPath := filepath.Join(dir, "best_config.yaml")
	if err := cfg.WriteYAML(cfgPath); err != nil {
		return err
	}
	fmt.Printf("\nBest config saved to: %s\n", cfgPath)

	windows := fe.BestWindows()
	if len(windows) == 0 {
		return nil
	}
	path := filepath.Join(dir, "best_telemetry.csv")
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating best telemetry: %w", err)
	}
	defer f.Close()
	if err := gocsv.MarshalFile(&windows, f); err != nil {
		return fmt.Errorf("writing best telemetry: %w", err)
	}
	fmt.Printf("Best run telemetry saved to: %s\n", path)
	return nil
}

// evalLog appends one CSV row per evaluation and prints progress. The
// columns depend on the parameter list, so rows are written with
// encoding/csv rather than struct tags.
type evalLog struct {
	file     *os.File
	w        *csv.Writer
	maxEvals int

	start       time.Time
	evals       int
	bestFitness float64
	bestParams  []float64
}

func newEvalLog(path string, params *ParamVector, maxEvals int) (*evalLog, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating log file: %w", err)
	}
	header := []string{"eval", "fitness"}
	for _, spec := range params.Specs {
		header = append(header, spec.Name)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing log header: %w", err)
	}
	return &evalLog{
		file:        f,
		w:           w,
		maxEvals:    maxEvals,
		start:       time.Now(),
		bestFitness: math.Inf(1),
	}, nil
}

// record logs the rounded parameter values actually applied.
func (l *evalLog) record(applied []float64, fitness, quality float64) {
	l.evals++
	if fitness < l.bestFitness {
		l.bestFitness = fitness
		l.bestParams = applied
	}

	row := []string{strconv.Itoa(l.evals), strconv.FormatFloat(fitness, 'f', 6, 64)}
	for _, v := range applied {
		row = append(row, strconv.Itoa(int(v)))
	}
	if err := l.w.Write(row); err != nil {
		log.Printf("failed to write log row: %v", err)
	}
	l.w.Flush()

	elapsed := time.Since(l.start)
	remaining := time.Duration(l.maxEvals-l.evals) * (elapsed / time.Duration(l.evals))

	// fitness = -(survival × (1 + 0.2×quality))
	survival := -fitness / (1 + 0.2*quality)
	fmt.Printf("Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
		l.evals, l.maxEvals, survival, quality, l.bestFitness,
		formatDuration(elapsed), formatDuration(remaining))
}

func (l *evalLog) close() {
	l.w.Flush()
	l.file.Close()
}

// formatDuration formats a duration as 1h02m03s, or 2m03s when under an hour.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	s := (d % time.Minute) / time.Second
	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
