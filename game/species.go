package game

import (
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/species"
)

// Species clustering policies accepted by Options.SpeciesMode.
const (
	SpeciesExact    = "exact"
	SpeciesDistance = "distance"
)

// SpeciesReport is the outcome of one background species analysis.
type SpeciesReport struct {
	Stats   species.Stats
	Species []species.Species
	Partial bool // cancelled before every organism was assigned
}

// speciesRunner schedules analyses off the simulation goroutine, one at a time.
type speciesRunner struct {
	every    int
	policy   func() species.Policy
	callback func(tick int, r SpeciesReport)
	busy     atomic.Bool
}

// newPolicy returns a constructor for the named clustering policy.
func newPolicy(mode string, cfg *config.Config) (func() species.Policy, error) {
	switch mode {
	case "", SpeciesExact:
		return func() species.Policy { return species.NewExact() }, nil
	case SpeciesDistance:
		maxDist := cfg.Species.MaxDistance
		return func() species.Policy { return &species.Distance{Max: maxDist} }, nil
	default:
		return nil, fmt.Errorf("unknown species mode %q", mode)
	}
}

// scheduleSpecies starts an analysis of the current population when one is due.
// A due analysis is skipped while the previous one is still running.
func (g *Game) scheduleSpecies() {
	sr := g.species
	if sr == nil {
		return
	}
	tick := g.world.Time()
	if tick%sr.every != 0 {
		return
	}
	if !sr.busy.CompareAndSwap(false, true) {
		slog.Debug("species analysis still running, skipping", "tick", tick)
		return
	}

	snap := g.world.Snapshot()
	analysis := species.NewAnalysis(sr.policy())

	g.wg.Add(1)
	go func() {
		defer g.wg.Done()
		defer sr.busy.Store(false)

		err := analysis.Run(g.ctx, snap)
		list := analysis.Results()
		report := SpeciesReport{
			Stats:   species.Summarize(list),
			Species: list,
			Partial: err != nil,
		}

		slog.Info("species",
			"tick", tick,
			"species", report.Stats.Count,
			"organisms", report.Stats.TotalMembers,
			"largest", report.Stats.LargestSize,
			"singletons", report.Stats.Singletons,
			"partial", report.Partial,
		)

		if err == nil && g.outputManager != nil {
			g.writeSpecies(tick, list)
		}
		if sr.callback != nil {
			sr.callback(tick, report)
		}
	}()
}

// writeSpecies stores a species report as species_<tick>.csv.
func (g *Game) writeSpecies(tick int, list []species.Species) {
	f, err := g.outputManager.Create(fmt.Sprintf("species_%08d.csv", tick))
	if err != nil {
		slog.Error("failed to write species", "error", err)
		return
	}
	defer f.Close()
	if err := species.WriteCSV(f, tick, list); err != nil {
		slog.Error("failed to write species", "error", err)
	}
}
