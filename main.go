package main

import (
	"flag"
	"log/slog"
	"math"
	"os"
	"time"

	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	patternsPath := flag.String("patterns", "", "Path to pattern library yaml (empty = use embedded)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	snapshotDir := flag.String("snapshot-dir", "", "Directory for snapshot files")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per update call (higher = faster runs)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	lib, err := config.LoadLibrary(*patternsPath)
	if err != nil {
		slog.Error("failed to load pattern library", "error", err)
		os.Exit(1)
	}

	// Set up seed
	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Use config stats window if not overridden by CLI
	statsWindowSec := cfg.Telemetry.StatsWindow
	if *statsWindow > 0 {
		statsWindowSec = *statsWindow
	}

	opts := game.Options{
		Seed:           rngSeed,
		LogStats:       *logStats,
		StatsWindowSec: statsWindowSec,
		SnapshotDir:    *snapshotDir,
		OutputDir:      *outputDir,
		StepsPerUpdate: *stepsPerUpdate,
	}

	g, err := game.NewGame(opts, lib)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}
	defer g.Unload()

	// Demo scene: one caster cycling through the full library against an
	// orbiting target.
	w := cfg.Derived.WorldW32
	h := cfg.Derived.WorldH32

	target := g.SpawnTarget(w/2, h/2)
	g.SetRole("player", target)
	g.ScriptOrbit(target, w/2, h/2, h/4, 2*math.Pi/12)

	caster := g.SpawnCaster(w/4, h/2, 0)
	g.AddOrchestrator(caster, lib.PatternNames(), "player")

	slog.Info("starting simulation",
		"seed", rngSeed,
		"patterns", len(lib.Patterns),
		"stats_window", statsWindowSec,
		"max_ticks", *maxTicks,
		"steps_per_update", *stepsPerUpdate,
	)

	for {
		g.UpdateHeadless()

		if *maxTicks > 0 && int(g.Tick()) >= *maxTicks {
			slog.Info("max ticks reached", "tick", g.Tick())
			g.LogWorldState()
			g.LogPerfBreakdown()
			return
		}
	}
}
