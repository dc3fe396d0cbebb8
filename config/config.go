// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/evolve/genome"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
// Every integer field is registered in the parameter table (params.go) with
// its bounds; assignments through Set are validated immediately.
type Config struct {
	World     WorldConfig     `yaml:"world"`
	Climate   ClimateConfig   `yaml:"climate"`
	Mutation  MutationConfig  `yaml:"mutation"`
	Energy    EnergyConfig    `yaml:"energy"`
	Costs     CostsConfig     `yaml:"costs"`
	Resources ResourcesConfig `yaml:"resources"`
	HalfLife  HalfLifeConfig  `yaml:"half_life"`
	Seed      SeedConfig      `yaml:"seed"`
	Neural    NeuralConfig    `yaml:"neural"`
	Species   SpeciesConfig   `yaml:"species"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds the toroidal grid dimensions.
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ClimateConfig holds the temperature model.
// Latitude interpolates from MinTemperature at the poles to MaxTemperature
// at the equator; a triangular seasonal wave of amplitude TempVariation
// repeats every YearLength ticks.
type ClimateConfig struct {
	MinTemperature int `yaml:"min_temperature"`
	MaxTemperature int `yaml:"max_temperature"`
	TempVariation  int `yaml:"temp_variation"`
	YearLength     int `yaml:"year_length"`
}

// MutationConfig holds replication error rates.
type MutationConfig struct {
	Rate          int `yaml:"rate"`           // Normal mutation rate
	RadiationRate int `yaml:"radiation_rate"` // Rate when the parent stands on an irradiated cell
}

// EnergyConfig holds organism energy bounds.
type EnergyConfig struct {
	MaxEnergy    int `yaml:"max_energy"`
	AcidToxicity int `yaml:"acid_toxicity"` // Energy lost per tick per unit of acid
}

// CostsConfig holds per-tick and per-activity energy costs.
type CostsConfig struct {
	Base     int `yaml:"base"` // Per tick, every organism
	Size     int `yaml:"size"` // Per tick, per 10 recipe bytes
	Age      int `yaml:"age"`  // Per tick, per 100 ticks of age
	Divide   int `yaml:"divide"`
	Move     int `yaml:"move"`
	Climb    int `yaml:"climb"` // Per unit of elevation gained by a move
	Turn     int `yaml:"turn"`
	Eat      int `yaml:"eat"`
	Scavenge int `yaml:"scavenge"`
}

// ResourcesConfig holds resource growth and consumption.
type ResourcesConfig struct {
	MaxResources    int `yaml:"max_resources"`
	ConsumptionRate int `yaml:"consumption_rate"` // Resource units eaten per EAT
	BodyEnergy      int `yaml:"body_energy"`      // Energy gained per body unit scavenged
}

// HalfLifeConfig holds the per ground element decay half-lives in ticks.
// 0 and NoDecay disable decay.
type HalfLifeConfig struct {
	Acid      int `yaml:"acid"`
	Radiation int `yaml:"radiation"`
	Elevation int `yaml:"elevation"`
	Resources int `yaml:"resources"`
	Body      int `yaml:"body"`
}

// NoDecay is the half-life sentinel that disables decay.
const NoDecay = 1000

// SeedConfig holds the automatic seeding parameters.
type SeedConfig struct {
	Count  int    `yaml:"count"`  // Seed while the population is below this
	Energy int    `yaml:"energy"` // Energy of each seeded organism
	Recipe string `yaml:"recipe"` // Recipe in assembly form
}

// NeuralConfig holds network parameters.
type NeuralConfig struct {
	ActivationRange int `yaml:"activation_range"`
}

// SpeciesConfig holds species analysis parameters.
type SpeciesConfig struct {
	MaxDistance int `yaml:"max_distance"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	WindowTicks int `yaml:"window_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	SeedRecipe *genome.Recipe // Seed.Recipe assembled, colour 0
	Cells      int            // World.Width * World.Height
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	seed, err := genome.Assemble(c.Seed.Recipe, 0)
	if err != nil {
		return fmt.Errorf("seed recipe: %w", err)
	}
	c.Derived.SeedRecipe = seed
	c.Derived.Cells = c.World.Width * c.World.Height
	return nil
}

// SetSeedRecipe replaces the seed recipe, validating it immediately.
func (c *Config) SetSeedRecipe(text string) error {
	seed, err := genome.Assemble(text, 0)
	if err != nil {
		return fmt.Errorf("seed recipe: %w", err)
	}
	c.Seed.Recipe = text
	c.Derived.SeedRecipe = seed
	return nil
}

// Clone returns an independent copy of the configuration.
func (c *Config) Clone() *Config {
	out := *c
	if c.Derived.SeedRecipe != nil {
		out.Derived.SeedRecipe = c.Derived.SeedRecipe.Clone()
	}
	return &out
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
