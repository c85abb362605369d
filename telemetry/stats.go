package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`

	// Live state at window end
	LiveProjectiles int `csv:"live_projectiles"`

	// Events during window
	Spawns  int `csv:"spawns"`
	Expired int `csv:"expired"`
	Culled  int `csv:"culled"`

	ActionsSkipped    int `csv:"actions_skipped"`
	PatternsStarted   int `csv:"patterns_started"`
	PatternsCompleted int `csv:"patterns_completed"`
	PatternsAborted   int `csv:"patterns_aborted"`
	PatternsCancelled int `csv:"patterns_cancelled"`
	Relocations       int `csv:"relocations"`
	CyclesCompleted   int `csv:"cycles_completed"`

	// Projectile age distribution (sampled at window end)
	AgeMean float64 `csv:"age_mean"`
	AgeP10  float64 `csv:"age_p10"`
	AgeP50  float64 `csv:"age_p50"`
	AgeP90  float64 `csv:"age_p90"`
}

// ComputeAgeStats calculates mean and percentiles from projectile ages.
func ComputeAgeStats(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	mean = stat.Mean(sorted, nil)
	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// Percentile calculates the p-th percentile of a sorted slice, linearly
// interpolating at p*(n-1). p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("live_projectiles", s.LiveProjectiles),
		slog.Int("spawns", s.Spawns),
		slog.Int("expired", s.Expired),
		slog.Int("culled", s.Culled),
		slog.Int("actions_skipped", s.ActionsSkipped),
		slog.Int("patterns_started", s.PatternsStarted),
		slog.Int("patterns_completed", s.PatternsCompleted),
		slog.Int("patterns_aborted", s.PatternsAborted),
		slog.Int("patterns_cancelled", s.PatternsCancelled),
		slog.Int("relocations", s.Relocations),
		slog.Int("cycles_completed", s.CyclesCompleted),
		slog.Float64("age_mean", s.AgeMean),
		slog.Float64("age_p10", s.AgeP10),
		slog.Float64("age_p50", s.AgeP50),
		slog.Float64("age_p90", s.AgeP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"live_projectiles", s.LiveProjectiles,
		"spawns", s.Spawns,
		"expired", s.Expired,
		"culled", s.Culled,
		"actions_skipped", s.ActionsSkipped,
		"patterns_started", s.PatternsStarted,
		"patterns_completed", s.PatternsCompleted,
		"patterns_aborted", s.PatternsAborted,
		"patterns_cancelled", s.PatternsCancelled,
		"relocations", s.Relocations,
		"cycles_completed", s.CyclesCompleted,
		"age_mean", s.AgeMean,
		"age_p10", s.AgeP10,
		"age_p50", s.AgeP50,
		"age_p90", s.AgeP90,
	)
}
