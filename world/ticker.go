package world

import (
	"log/slog"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/genome"
	"github.com/pthm-cable/evolve/ground"
	"github.com/pthm-cable/evolve/neural"
	"github.com/pthm-cable/evolve/organism"
	"github.com/pthm-cable/evolve/telemetry"
)

// seedAttempts bounds the search for a free cell when seeding.
const seedAttempts = 16

// decaying lists the elements subject to half-life decay, in the order they
// draw random numbers.
var decaying = []ground.Element{
	ground.Acid,
	ground.Radiation,
	ground.Elevation,
	ground.Resources,
	ground.Body,
}

// Tick advances the world by one step. The order is fixed: clock, seeding,
// resource growth, decay, organisms, listeners.
func (w *World) Tick() {
	w.perf.StartTick()

	w.tick++
	if w.sigmoid.Range() != w.cfg.Neural.ActivationRange {
		w.sigmoid = neural.NewSigmoid(w.cfg.Neural.ActivationRange)
	}

	w.perf.StartPhase(telemetry.PhaseSeed)
	w.seed()

	w.perf.StartPhase(telemetry.PhaseGrowth)
	w.growth.run(w)

	w.perf.StartPhase(telemetry.PhaseDecay)
	w.decay()

	w.perf.StartPhase(telemetry.PhaseOrganisms)
	w.updateOrganisms()

	w.perf.StartPhase(telemetry.PhaseListeners)
	w.listeners.notify(w)

	w.perf.EndTick()
}

// seed adds one organism on a random free cell while the population is
// below the configured count.
func (w *World) seed() {
	if w.pop.Len() >= w.cfg.Seed.Count {
		return
	}
	x, y, ok := w.randomFreeCell()
	if !ok {
		return
	}
	seed := w.cfg.Derived.SeedRecipe
	if seed == nil {
		return
	}

	w.mutator.Rate = w.cfg.Mutation.Rate
	recipe := w.mutator.CopyInstructions(seed.Bytes(), seed.Len(), w.rng.Intn(1<<genome.ColourBits))
	o := organism.New(w.newID(), recipe, w, w.cfg.Seed.Energy)
	o.Direction = ground.Direction(w.rng.Intn(int(ground.NumDirections)))
	w.place(o, x, y, nil)
	w.collector.RecordSeed()

	slog.Debug("seeded organism", "tick", w.tick, "id", o.ID, "x", x, "y", y, "colour", recipe.Colour())
}

func (w *World) randomFreeCell() (int, int, bool) {
	for i := 0; i < seedAttempts; i++ {
		x := w.rng.Intn(w.space.Width())
		y := w.rng.Intn(w.space.Height())
		if w.space.Free(x, y) {
			return x, y, true
		}
	}
	return 0, 0, false
}

// growRows grows resources on rows [start, end). Each cell gains
// temperature/100 units plus one more on ticks divisible by
// 100 - temperature%100. Cold cells and walls grow nothing.
func (w *World) growRows(start, end int) {
	maxRes := min(w.cfg.Resources.MaxResources, ground.Resources.Max())
	for y := start; y < end; y++ {
		rowTemp := w.rowTemperature(y)
		row := w.space.Row(y)
		for x, c := range row {
			if c.Get(ground.Wall) != 0 {
				continue
			}
			temp := rowTemp - c.Get(ground.Elevation)
			if temp <= 0 {
				continue
			}
			grow := temp / 100
			if w.tick%(100-temp%100) == 0 {
				grow++
			}
			res := c.Get(ground.Resources)
			if grow == 0 || res >= maxRes {
				continue
			}
			row[x] = c.MustSet(ground.Resources, min(res+grow, maxRes))
		}
	}
}

// halfLife returns the configured half-life of e, or 0 when e never decays.
func (w *World) halfLife(e ground.Element) int {
	h := w.cfg.HalfLife
	var v int
	switch e {
	case ground.Acid:
		v = h.Acid
	case ground.Radiation:
		v = h.Radiation
	case ground.Elevation:
		v = h.Elevation
	case ground.Resources:
		v = h.Resources
	case ground.Body:
		v = h.Body
	}
	if v == config.NoDecay {
		return 0
	}
	return v
}

// decay lowers each non-zero element by one with probability 1/halfLife.
// It runs on one goroutine so the random sequence stays reproducible.
func (w *World) decay() {
	var active []ground.Element
	var lives []int
	for _, e := range decaying {
		if h := w.halfLife(e); h > 0 {
			active = append(active, e)
			lives = append(lives, h)
		}
	}
	if len(active) == 0 {
		return
	}

	for y := 0; y < w.space.Height(); y++ {
		row := w.space.Row(y)
		for x, c := range row {
			for i, e := range active {
				if c.Get(e) > 0 && w.rng.Intn(lives[i]) == 0 {
					c = c.Add(e, -1)
				}
			}
			row[x] = c
		}
	}
}

// updateOrganisms charges and activates every organism alive at the start of
// the step, in birth order. Children born during the step wait for the next
// tick.
func (w *World) updateOrganisms() {
	w.view = w.space.CopyInto(w.view)
	w.collector.BeginTick()

	members := w.pop.members()
	if len(members) == 0 {
		return
	}

	costs := w.cfg.Costs
	for _, m := range members {
		o := m.org
		if temp := w.Temperature(o.X, o.Y); temp < 0 {
			o.Reduce(-temp)
		}
		o.ClampEnergy(w.cfg.Energy.MaxEnergy)
		o.Reduce(w.space.Get(o.X, o.Y, ground.Acid) * w.cfg.Energy.AcidToxicity)
		o.Reduce(costs.Base + costs.Size*o.Recipe().Len()/10 + costs.Age*o.Age(w.tick)/100)
		o.ResetCounters()
		o.Activate(w)

		if !o.Alive() {
			w.kill(o)
			continue
		}
		w.collector.Observe(telemetry.Sample{
			Energy:     o.Energy(),
			Age:        o.Age(w.tick),
			Complexity: o.Network().Size(),
			RecipeLen:  o.Recipe().Len(),
			Generation: m.lineage.Generation,
			Colour:     o.Recipe().Colour(),
		})
	}

	if w.pop.Len() == 0 {
		slog.Info("population extinct", "tick", w.tick)
	}
}

// kill removes a dead organism, leaving a body unit on its cell.
func (w *World) kill(o *organism.Organism) {
	w.pop.Remove(o.ID)
	w.space.Vacate(o.X, o.Y, o.ID)
	w.space.Add(o.X, o.Y, ground.Body, 1)
	w.collector.RecordDeath(o.Age(w.tick))
}
