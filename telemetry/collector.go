// Package telemetry provides population statistics windows, bookmarks and
// performance tracking with CSV and slog output.
package telemetry

// Sample is one survivor's contribution to a window.
type Sample struct {
	Energy     int
	Age        int
	Complexity int // network size
	RecipeLen  int
	Generation int
	Colour     int
}

// Pools holds ground and population totals at flush time.
type Pools struct {
	Resources int
	Body      int
}

// Collector accumulates events within tick windows and produces WindowStats.
// Survivor samples only cover the most recent tick; event counters cover the
// whole window.
type Collector struct {
	windowTicks int

	// Current window tracking
	windowStartTick int

	// Event counters for current window
	births      int
	deaths      int
	seeded      int
	lifespanSum int

	samples []Sample
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: windowTicks}
}

// RecordBirth records a successful division.
func (c *Collector) RecordBirth() {
	c.births++
}

// RecordSeed records an automatically seeded organism.
func (c *Collector) RecordSeed() {
	c.seeded++
}

// RecordDeath records a death at the given age.
func (c *Collector) RecordDeath(age int) {
	c.deaths++
	c.lifespanSum += age
}

// BeginTick drops the previous tick's survivor samples.
func (c *Collector) BeginTick() {
	c.samples = c.samples[:0]
}

// Observe adds a survivor sample for the current tick.
func (c *Collector) Observe(s Sample) {
	c.samples = append(c.samples, s)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int {
	return c.windowTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// population is the live count at currentTick, which includes organisms born
// during the tick that have not been sampled yet.
func (c *Collector) Flush(currentTick, population int, pools Pools) WindowStats {
	n := len(c.samples)
	energies := make([]float64, n)
	ages := make([]float64, n)
	complexity := make([]float64, n)
	lengths := make([]float64, n)
	colours := make(map[int]struct{})
	var total, generation int
	for i, s := range c.samples {
		energies[i] = float64(s.Energy)
		ages[i] = float64(s.Age)
		complexity[i] = float64(s.Complexity)
		lengths[i] = float64(s.RecipeLen)
		colours[s.Colour] = struct{}{}
		total += s.Energy
		if s.Generation > generation {
			generation = s.Generation
		}
	}

	energy := Summarize(energies)
	age := Summarize(ages)
	cx := Summarize(complexity)

	var lifespan float64
	if c.deaths > 0 {
		lifespan = float64(c.lifespanSum) / float64(c.deaths)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Population: population,
		Colours:    len(colours),

		Births:       c.births,
		Deaths:       c.deaths,
		Seeded:       c.seeded,
		LifespanMean: lifespan,

		EnergyMean: energy.Mean,
		EnergyStd:  energy.Std,
		EnergyP10:  energy.P10,
		EnergyP50:  energy.P50,
		EnergyP90:  energy.P90,

		AgeMean: age.Mean,
		AgeMax:  age.Max,

		ComplexityMean: cx.Mean,
		ComplexityMax:  cx.Max,
		RecipeLenMean:  Summarize(lengths).Mean,
		GenerationMax:  generation,

		TotalResources: pools.Resources,
		TotalBody:      pools.Body,
		TotalOrganisms: total,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.seeded = 0
	c.lifespanSum = 0

	return stats
}
