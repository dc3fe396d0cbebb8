// Package world owns the ground, the occupancy layer and the population,
// and advances them one tick at a time.
package world

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/pthm-cable/evolve/components"
	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
	"github.com/pthm-cable/evolve/neural"
	"github.com/pthm-cable/evolve/organism"
	"github.com/pthm-cable/evolve/telemetry"
)

// ErrCellTaken is returned when placing an organism on a walled or occupied cell.
var ErrCellTaken = errors.New("cell is taken")

// World is the simulation state. It implements organism.Environment.
// A World is driven from a single goroutine; only resource growth fans out
// internally.
type World struct {
	cfg   *config.Config
	space *ground.Space
	view  *ground.Space // pre-tick copy read by inputs
	pop   *Population
	rng   *rand.Rand

	mutator *genome.Mutator
	sigmoid *neural.Sigmoid
	growth  *growthPool

	listeners listeners
	collector *telemetry.Collector
	perf      *telemetry.PerfCollector

	tick   int
	nextID uint64
}

// New creates an empty world sized by cfg. The world reads cfg on every tick,
// so parameter changes made through cfg.Set take effect immediately.
func New(cfg *config.Config, seed int64) *World {
	rng := rand.New(rand.NewSource(seed))
	space := ground.NewSpace(cfg.World.Width, cfg.World.Height)
	return &World{
		cfg:       cfg,
		space:     space,
		view:      space.CopyInto(nil),
		pop:       newPopulation(),
		rng:       rng,
		mutator:   genome.NewMutator(cfg.Mutation.Rate, rng),
		sigmoid:   neural.NewSigmoid(cfg.Neural.ActivationRange),
		growth:    newGrowthPool(),
		collector: telemetry.NewCollector(cfg.Telemetry.WindowTicks),
	}
}

// Close stops the growth workers. The world must not be ticked afterwards.
func (w *World) Close() {
	w.growth.stop()
}

// SetPerfCollector enables per-phase tick timing.
func (w *World) SetPerfCollector(p *telemetry.PerfCollector) {
	w.perf = p
}

// Config returns the live configuration.
func (w *World) Config() *config.Config { return w.cfg }

// Time returns the number of completed ticks.
func (w *World) Time() int { return w.tick }

// Population returns the number of live organisms.
func (w *World) Population() int { return w.pop.Len() }

// Ground returns a copy of the ground.
func (w *World) Ground() *ground.Ground { return w.space.Ground.Clone() }

// Space exposes the live space for setting up terrain between ticks.
func (w *World) Space() *ground.Space { return w.space }

// Snapshot copies every live organism, ordered by birth.
func (w *World) Snapshot() []organism.Snapshot {
	members := w.pop.members()
	out := make([]organism.Snapshot, len(members))
	for i, m := range members {
		out[i] = m.org.Snapshot(w.tick)
	}
	return out
}

// Spawn places a new founder organism at (x, y) facing north.
func (w *World) Spawn(recipe *genome.Recipe, x, y, energy int) (*organism.Organism, error) {
	x, y = w.space.Wrap(x, y)
	if !w.space.Free(x, y) {
		return nil, fmt.Errorf("spawn at (%d, %d): %w", x, y, ErrCellTaken)
	}
	o := organism.New(w.newID(), recipe, w, energy)
	w.place(o, x, y, nil)
	return o, nil
}

func (w *World) newID() uint64 {
	w.nextID++
	return w.nextID
}

// place puts o on a free cell and adds it to the population.
func (w *World) place(o *organism.Organism, x, y int, parent *components.Lineage) {
	o.X, o.Y = x, y
	o.Birth = w.tick
	w.space.Occupy(x, y, o.ID)
	w.pop.Add(o, parent)
}

// ApplyActivationFunction applies the shared sigmoid.
func (w *World) ApplyActivationFunction(x int) int {
	return w.sigmoid.Apply(x)
}

// CopyInstructions replicates r for a child of o. Parents standing on an
// irradiated cell copy at the radiation mutation rate.
func (w *World) CopyInstructions(o *organism.Organism, r *genome.Recipe) *genome.Recipe {
	w.mutator.Rate = w.cfg.Mutation.Rate
	if w.space.Get(o.X, o.Y, ground.Radiation) > 0 {
		w.mutator.Rate = w.cfg.Mutation.RadiationRate
	}
	return w.mutator.Copy(r)
}

// Window flushes the statistics window when it is due.
func (w *World) Window() (telemetry.WindowStats, bool) {
	if !w.collector.ShouldFlush(w.tick) {
		return telemetry.WindowStats{}, false
	}
	pools := telemetry.Pools{
		Resources: w.space.Total(ground.Resources),
		Body:      w.space.Total(ground.Body),
	}
	return w.collector.Flush(w.tick, w.pop.Len(), pools), true
}
