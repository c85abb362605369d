package telemetry

// Collector accumulates events within time windows and produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	spawns            int
	expired           int
	culled            int
	actionsSkipped    int
	patternsStarted   int
	patternsCompleted int
	patternsAborted   int
	patternsCancelled int
	relocations       int
	cyclesCompleted   int
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: seconds per tick (used for tick-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	// Round, not truncate: dt carries float32 noise (1.0/0.1 lands just
	// below 10).
	ticksPerWindow := int32(windowDurationSec/float64(dt) + 0.5)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	return &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
		windowStartTick:     0,
	}
}

// RecordSpawn records one projectile spawn.
func (c *Collector) RecordSpawn() {
	c.spawns++
}

// RecordExpired records a projectile removed by lifetime expiry.
func (c *Collector) RecordExpired() {
	c.expired++
}

// RecordCulled records a projectile removed for leaving the world.
func (c *Collector) RecordCulled() {
	c.culled++
}

// RecordActionSkipped records a malformed action dropped at pattern start.
func (c *Collector) RecordActionSkipped() {
	c.actionsSkipped++
}

// RecordPatternStarted records a pattern run beginning.
func (c *Collector) RecordPatternStarted() {
	c.patternsStarted++
}

// RecordPatternCompleted records a pattern run finishing all spawns.
func (c *Collector) RecordPatternCompleted() {
	c.patternsCompleted++
}

// RecordPatternAborted records a pattern refused at start (no target).
func (c *Collector) RecordPatternAborted() {
	c.patternsAborted++
}

// RecordPatternCancelled records a pattern cancelled mid-run.
func (c *Collector) RecordPatternCancelled() {
	c.patternsCancelled++
}

// RecordRelocation records a caster relocation.
func (c *Collector) RecordRelocation() {
	c.relocations++
}

// RecordCycleCompleted records a full move/attack cycle finishing.
func (c *Collector) RecordCycleCompleted() {
	c.cyclesCompleted++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets counters for the next window.
// The caller provides the live projectile count and the ages of all live
// projectiles for distribution stats.
func (c *Collector) Flush(currentTick int32, liveProjectiles int, ages []float64) WindowStats {
	ageMean, ageP10, ageP50, ageP90 := ComputeAgeStats(ages)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      float64(currentTick) * float64(c.dt),

		LiveProjectiles: liveProjectiles,

		Spawns:  c.spawns,
		Expired: c.expired,
		Culled:  c.culled,

		ActionsSkipped:    c.actionsSkipped,
		PatternsStarted:   c.patternsStarted,
		PatternsCompleted: c.patternsCompleted,
		PatternsAborted:   c.patternsAborted,
		PatternsCancelled: c.patternsCancelled,
		Relocations:       c.relocations,
		CyclesCompleted:   c.cyclesCompleted,

		AgeMean: ageMean,
		AgeP10:  ageP10,
		AgeP50:  ageP50,
		AgeP90:  ageP90,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.spawns = 0
	c.expired = 0
	c.culled = 0
	c.actionsSkipped = 0
	c.patternsStarted = 0
	c.patternsCompleted = 0
	c.patternsAborted = 0
	c.patternsCancelled = 0
	c.relocations = 0
	c.cyclesCompleted = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
