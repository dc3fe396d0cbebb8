package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pthm-cable/evolve/config"
	"github.com/pthm-cable/evolve/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call")
	perfWindow := flag.Int("perf-window", 100, "Ticks averaged for phase timing (0 = disabled)")
	speciesEvery := flag.Int("species-every", 0, "Run a species analysis every N ticks (0 = never)")
	speciesMode := flag.String("species-mode", game.SpeciesExact, "Species clustering: exact or distance")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	if *statsWindow > 0 {
		if err := cfg.Set("telemetry.window_ticks", *statsWindow); err != nil {
			slog.Error("invalid stats window", "error", err)
			os.Exit(1)
		}
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	g, err := game.NewGameWithOptions(game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
		PerfWindow:     *perfWindow,
		SpeciesEvery:   *speciesEvery,
		SpeciesMode:    *speciesMode,
	})
	if err != nil {
		slog.Error("failed to start simulation", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	slog.Info("starting headless simulation",
		"seed", rngSeed,
		"width", cfg.World.Width,
		"height", cfg.World.Height,
		"window_ticks", cfg.Telemetry.WindowTicks,
		"max_ticks", *maxTicks,
		"steps_per_update", *stepsPerUpdate,
	)

	for {
		select {
		case <-stop:
			slog.Info("interrupted", "tick", g.Tick(), "population", g.Population())
			return
		default:
		}

		g.UpdateHeadless()

		if *maxTicks > 0 && g.Tick() >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick(), "population", g.Population())
			g.Wait()
			return
		}
	}
}
