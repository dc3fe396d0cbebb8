// Package game drives a world headlessly and wires its telemetry, bookmark
// and species analysis outputs.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/telemetry"
	"github.com/pthm-cable/evolve/world"
)

// Options configures a Game.
type Options struct {
	Seed           int64
	Config         *config.Config // nil uses config.Cfg()
	LogStats       bool           // log window and perf stats via slog
	OutputDir      string         // CSV output directory, empty disables file output
	StepsPerUpdate int            // ticks advanced per UpdateHeadless call
	PerfWindow     int            // ticks averaged by the perf collector, 0 disables timing

	// SpeciesEvery runs a species analysis every N ticks; 0 disables it.
	SpeciesEvery int
	// SpeciesMode selects the clustering policy: "exact" or "distance".
	SpeciesMode string

	StatsCallback   func(telemetry.WindowStats)
	SpeciesCallback func(tick int, stats SpeciesReport)
}

// Game holds a world and everything observing it.
type Game struct {
	cfg   *config.Config
	world *world.World

	logStats       bool
	stepsPerUpdate int
	statsCallback  func(telemetry.WindowStats)

	outputManager    *telemetry.OutputManager
	perfCollector    *telemetry.PerfCollector
	bookmarkDetector *telemetry.BookmarkDetector

	species *speciesRunner

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewGameWithOptions creates a seeded world and attaches the observers
// selected by opts.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if om != nil {
		if err := om.WriteConfig(cfg); err != nil {
			om.Close()
			return nil, fmt.Errorf("writing config: %w", err)
		}
	}

	steps := opts.StepsPerUpdate
	if steps < 1 {
		steps = 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	g := &Game{
		cfg:              cfg,
		world:            world.New(cfg, opts.Seed),
		logStats:         opts.LogStats,
		stepsPerUpdate:   steps,
		statsCallback:    opts.StatsCallback,
		outputManager:    om,
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		ctx:              ctx,
		cancel:           cancel,
	}

	if opts.PerfWindow > 0 {
		g.perfCollector = telemetry.NewPerfCollector(opts.PerfWindow)
		g.world.SetPerfCollector(g.perfCollector)
	}

	if opts.SpeciesEvery > 0 {
		policy, err := newPolicy(opts.SpeciesMode, cfg)
		if err != nil {
			g.Unload()
			return nil, err
		}
		g.species = &speciesRunner{
			every:    opts.SpeciesEvery,
			policy:   policy,
			callback: opts.SpeciesCallback,
		}
	}

	g.world.AddListener(g.onTick)
	return g, nil
}

// onTick runs after every world tick.
func (g *Game) onTick(w *world.World) {
	g.flushTelemetry()
	g.scheduleSpecies()
}

// UpdateHeadless advances the simulation by the configured number of ticks.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.world.Tick()
	}
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int {
	return g.world.Time()
}

// Population returns the number of living organisms.
func (g *Game) Population() int {
	return g.world.Population()
}

// World returns the simulated world.
func (g *Game) World() *world.World {
	return g.world
}

// Wait blocks until every running species analysis has finished.
func (g *Game) Wait() {
	g.wg.Wait()
}

// Unload cancels running analyses, stops the world and closes output files.
func (g *Game) Unload() {
	g.cancel()
	g.wg.Wait()
	g.world.Close()
	if g.outputManager != nil {
		if err := g.outputManager.Close(); err != nil {
			slog.Error("failed to close output", "error", err)
		}
	}
}
