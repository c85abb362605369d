package telemetry

import (
	"math"
	"testing"
)

func TestComputeAgeStats(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		wantMean float64
		wantP50  float64
	}{
		{"empty", nil, 0, 0},
		{"single", []float64{3.0}, 3.0, 3.0},
		{"uniform", []float64{1, 2, 3, 4, 5}, 3.0, 3.0},
		{"even count", []float64{1, 2, 3, 4}, 2.5, 2.5},
		{"skewed", []float64{0, 0, 0, 0, 10}, 2.0, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mean, p10, p50, p90 := ComputeAgeStats(tt.values)
			if math.Abs(mean-tt.wantMean) > 0.001 {
				t.Errorf("mean %v, want %v", mean, tt.wantMean)
			}
			if math.Abs(p50-tt.wantP50) > 0.001 {
				t.Errorf("p50 %v, want %v", p50, tt.wantP50)
			}
			if len(tt.values) > 0 && (p10 > p50 || p50 > p90) {
				t.Errorf("percentiles not ordered: p10=%v p50=%v p90=%v", p10, p50, p90)
			}
		})
	}
}

func TestPercentileInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5}

	// Interpolates at p*(n-1): an odd count yields the middle element
	// exactly, and p90 lands between the last two.
	tests := []struct {
		p    float64
		want float64
	}{
		{0, 1},
		{0.10, 1.4},
		{0.50, 3},
		{0.90, 4.6},
		{1, 5},
	}
	for _, tt := range tests {
		if got := Percentile(sorted, tt.p); math.Abs(got-tt.want) > 0.001 {
			t.Errorf("Percentile(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}

	if got := Percentile(nil, 0.5); got != 0 {
		t.Errorf("Percentile(empty) = %v, want 0", got)
	}
}

func TestCollectorWindowFlush(t *testing.T) {
	c := NewCollector(1.0, 0.1) // 10 ticks per window

	if c.WindowDurationTicks() != 10 {
		t.Fatalf("window ticks %d, want 10", c.WindowDurationTicks())
	}

	c.RecordSpawn()
	c.RecordSpawn()
	c.RecordExpired()
	c.RecordPatternStarted()
	c.RecordPatternCompleted()
	c.RecordActionSkipped()
	c.RecordRelocation()

	if c.ShouldFlush(9) {
		t.Error("flushed before window elapsed")
	}
	if !c.ShouldFlush(10) {
		t.Error("did not flush at window boundary")
	}

	stats := c.Flush(10, 5, []float64{0.5, 1.5})
	if stats.Spawns != 2 {
		t.Errorf("spawns %d, want 2", stats.Spawns)
	}
	if stats.Expired != 1 {
		t.Errorf("expired %d, want 1", stats.Expired)
	}
	if stats.PatternsStarted != 1 || stats.PatternsCompleted != 1 {
		t.Errorf("patterns started=%d completed=%d, want 1/1", stats.PatternsStarted, stats.PatternsCompleted)
	}
	if stats.ActionsSkipped != 1 {
		t.Errorf("actions skipped %d, want 1", stats.ActionsSkipped)
	}
	if stats.Relocations != 1 {
		t.Errorf("relocations %d, want 1", stats.Relocations)
	}
	if stats.LiveProjectiles != 5 {
		t.Errorf("live %d, want 5", stats.LiveProjectiles)
	}
	if math.Abs(stats.AgeMean-1.0) > 0.001 {
		t.Errorf("age mean %v, want 1.0", stats.AgeMean)
	}

	// Counters reset after flush.
	next := c.Flush(20, 0, nil)
	if next.Spawns != 0 || next.Expired != 0 {
		t.Errorf("counters not reset: %+v", next)
	}
	if next.WindowStartTick != 10 {
		t.Errorf("window start %d, want 10", next.WindowStartTick)
	}
}

func TestPatternTracker(t *testing.T) {
	pt := NewPatternTracker()
	pt.RecordRun("ring_burst")
	pt.RecordRun("ring_burst")
	pt.RecordCompleted("ring_burst")
	pt.RecordCancelled("ring_burst")
	pt.RecordSpawns("ring_burst", 24)
	pt.RecordRun("aimed_lattice")
	pt.RecordAborted("aimed_lattice")

	s := pt.Get("ring_burst")
	if s == nil || s.Runs != 2 || s.Completed != 1 || s.Cancelled != 1 || s.Spawns != 24 {
		t.Errorf("ring_burst stats %+v", s)
	}

	rows := pt.Rows()
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	// Sorted by name.
	if rows[0].Pattern != "aimed_lattice" || rows[1].Pattern != "ring_burst" {
		t.Errorf("row order %q, %q", rows[0].Pattern, rows[1].Pattern)
	}
	if rows[0].Aborted != 1 {
		t.Errorf("aimed_lattice aborted %d, want 1", rows[0].Aborted)
	}
}
