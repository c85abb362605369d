package game

import (
	"log/slog"
	"time"
)

// LogWorldState logs a one-line summary of the current world state.
func (g *Game) LogWorldState() {
	liveCasters := 0
	for _, e := range g.casters {
		if g.world.Alive(e) {
			liveCasters++
		}
	}

	busy := 0
	for _, o := range g.orchestrators {
		if o.Busy() {
			busy++
		}
	}

	slog.Info("world",
		"tick", g.tick,
		"projectiles", g.liveProjectiles,
		"casters", liveCasters,
		"busy_casters", busy,
		"active_runs", len(g.runs),
	)
}

// LogPerfBreakdown logs per-phase average durations in registration order.
func (g *Game) LogPerfBreakdown() {
	stats := g.perf.Stats()

	attrs := []any{
		"avg_tick_us", stats.AvgTickDuration.Microseconds(),
		"ticks_per_sec", int(stats.TicksPerSecond),
	}
	for _, id := range g.registry.IDs() {
		avg, ok := stats.PhaseAvg[id]
		if !ok {
			continue
		}
		attrs = append(attrs, g.registry.GetName(id), avg.Round(time.Microsecond).String())
	}

	slog.Info("perf_breakdown", attrs...)
}
