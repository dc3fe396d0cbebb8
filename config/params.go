package config

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownParam is returned for a parameter name that is not registered.
var ErrUnknownParam = errors.New("unknown parameter")

// ErrOutOfRange is returned when a value violates a parameter's bounds.
var ErrOutOfRange = errors.New("parameter out of range")

// Param describes one named integer parameter and its inclusive bounds.
type Param struct {
	Name string
	Min  int
	Max  int
	ref  func(c *Config) *int
}

// check validates v against the bounds, naming the violated one.
func (p Param) check(v int) error {
	if v < p.Min {
		return fmt.Errorf("%w: %s = %d is below minimum %d", ErrOutOfRange, p.Name, v, p.Min)
	}
	if v > p.Max {
		return fmt.Errorf("%w: %s = %d exceeds maximum %d", ErrOutOfRange, p.Name, v, p.Max)
	}
	return nil
}

// paramTable registers every integer parameter. Names are the dotted YAML paths.
var paramTable = []Param{
	{Name: "world.width", Min: 1, Max: 4096, ref: func(c *Config) *int { return &c.World.Width }},
	{Name: "world.height", Min: 1, Max: 4096, ref: func(c *Config) *int { return &c.World.Height }},

	{Name: "climate.min_temperature", Min: -1000, Max: 1000, ref: func(c *Config) *int { return &c.Climate.MinTemperature }},
	{Name: "climate.max_temperature", Min: -1000, Max: 1000, ref: func(c *Config) *int { return &c.Climate.MaxTemperature }},
	{Name: "climate.temp_variation", Min: 0, Max: 1000, ref: func(c *Config) *int { return &c.Climate.TempVariation }},
	{Name: "climate.year_length", Min: 0, Max: 1000000, ref: func(c *Config) *int { return &c.Climate.YearLength }},

	{Name: "mutation.rate", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Mutation.Rate }},
	{Name: "mutation.radiation_rate", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Mutation.RadiationRate }},

	{Name: "energy.max_energy", Min: 1, Max: 1000000, ref: func(c *Config) *int { return &c.Energy.MaxEnergy }},
	{Name: "energy.acid_toxicity", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Energy.AcidToxicity }},

	{Name: "costs.base", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Base }},
	{Name: "costs.size", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Size }},
	{Name: "costs.age", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Age }},
	{Name: "costs.divide", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Divide }},
	{Name: "costs.move", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Move }},
	{Name: "costs.climb", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Climb }},
	{Name: "costs.turn", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Turn }},
	{Name: "costs.eat", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Eat }},
	{Name: "costs.scavenge", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Costs.Scavenge }},

	{Name: "resources.max_resources", Min: 0, Max: 255, ref: func(c *Config) *int { return &c.Resources.MaxResources }},
	{Name: "resources.consumption_rate", Min: 0, Max: 255, ref: func(c *Config) *int { return &c.Resources.ConsumptionRate }},
	{Name: "resources.body_energy", Min: 0, Max: 10000, ref: func(c *Config) *int { return &c.Resources.BodyEnergy }},

	{Name: "half_life.acid", Min: 0, Max: NoDecay, ref: func(c *Config) *int { return &c.HalfLife.Acid }},
	{Name: "half_life.radiation", Min: 0, Max: NoDecay, ref: func(c *Config) *int { return &c.HalfLife.Radiation }},
	{Name: "half_life.elevation", Min: 0, Max: NoDecay, ref: func(c *Config) *int { return &c.HalfLife.Elevation }},
	{Name: "half_life.resources", Min: 0, Max: NoDecay, ref: func(c *Config) *int { return &c.HalfLife.Resources }},
	{Name: "half_life.body", Min: 0, Max: NoDecay, ref: func(c *Config) *int { return &c.HalfLife.Body }},

	{Name: "seed.count", Min: 0, Max: 100000, ref: func(c *Config) *int { return &c.Seed.Count }},
	{Name: "seed.energy", Min: 1, Max: 1000000, ref: func(c *Config) *int { return &c.Seed.Energy }},

	{Name: "neural.activation_range", Min: 1, Max: 10000, ref: func(c *Config) *int { return &c.Neural.ActivationRange }},
	{Name: "species.max_distance", Min: 0, Max: 1000000, ref: func(c *Config) *int { return &c.Species.MaxDistance }},
	{Name: "telemetry.window_ticks", Min: 1, Max: 1000000, ref: func(c *Config) *int { return &c.Telemetry.WindowTicks }},
}

var paramIndex = func() map[string]int {
	m := make(map[string]int, len(paramTable))
	for i, p := range paramTable {
		m[p.Name] = i
	}
	return m
}()

// Params returns the registered parameters sorted by name.
func Params() []Param {
	out := make([]Param, len(paramTable))
	copy(out, paramTable)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the parameter registered under name.
func Lookup(name string) (Param, bool) {
	i, ok := paramIndex[name]
	if !ok {
		return Param{}, false
	}
	return paramTable[i], true
}

// Get returns the current value of a named parameter.
func (c *Config) Get(name string) (int, error) {
	p, ok := Lookup(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	return *p.ref(c), nil
}

// Set assigns a named parameter, rejecting values outside its bounds.
// The configuration is unchanged when an error is returned.
func (c *Config) Set(name string, v int) error {
	p, ok := Lookup(name)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownParam, name)
	}
	if err := p.check(v); err != nil {
		return err
	}
	*p.ref(c) = v
	if name == "world.width" || name == "world.height" {
		c.Derived.Cells = c.World.Width * c.World.Height
	}
	return nil
}

// Validate checks every parameter against its bounds and the
// cross-parameter constraints, returning all violations joined.
func (c *Config) Validate() error {
	var errs []error
	for _, p := range paramTable {
		if err := p.check(*p.ref(c)); err != nil {
			errs = append(errs, err)
		}
	}
	if c.Climate.MinTemperature > c.Climate.MaxTemperature {
		errs = append(errs, fmt.Errorf("%w: climate.min_temperature %d exceeds climate.max_temperature %d",
			ErrOutOfRange, c.Climate.MinTemperature, c.Climate.MaxTemperature))
	}
	return errors.Join(errs...)
}
