package telemetry

import "sort"

// PatternStats tracks per-pattern counters over the whole run.
type PatternStats struct {
	Runs      int
	Completed int
	Aborted   int
	Cancelled int
	Spawns    int
}

// PatternTracker manages per-pattern statistics keyed by pattern name.
type PatternTracker struct {
	stats map[string]*PatternStats
}

// NewPatternTracker creates a new pattern tracker.
func NewPatternTracker() *PatternTracker {
	return &PatternTracker{
		stats: make(map[string]*PatternStats),
	}
}

func (pt *PatternTracker) get(name string) *PatternStats {
	s := pt.stats[name]
	if s == nil {
		s = &PatternStats{}
		pt.stats[name] = s
	}
	return s
}

// RecordRun counts a pattern run starting.
func (pt *PatternTracker) RecordRun(name string) {
	pt.get(name).Runs++
}

// RecordCompleted counts a pattern run finishing all spawns.
func (pt *PatternTracker) RecordCompleted(name string) {
	pt.get(name).Completed++
}

// RecordAborted counts a pattern refused at start.
func (pt *PatternTracker) RecordAborted(name string) {
	pt.get(name).Aborted++
}

// RecordCancelled counts a pattern cancelled mid-run.
func (pt *PatternTracker) RecordCancelled(name string) {
	pt.get(name).Cancelled++
}

// RecordSpawns adds projectile spawns attributed to the pattern.
func (pt *PatternTracker) RecordSpawns(name string, n int) {
	pt.get(name).Spawns += n
}

// Get returns the stats for a pattern, or nil if never seen.
func (pt *PatternTracker) Get(name string) *PatternStats {
	return pt.stats[name]
}

// PatternStatsRow is a flat struct for CSV export.
type PatternStatsRow struct {
	Pattern   string `csv:"pattern"`
	Runs      int    `csv:"runs"`
	Completed int    `csv:"completed"`
	Aborted   int    `csv:"aborted"`
	Cancelled int    `csv:"cancelled"`
	Spawns    int    `csv:"spawns"`
}

// Rows returns all pattern stats sorted by name for stable output.
func (pt *PatternTracker) Rows() []PatternStatsRow {
	names := make([]string, 0, len(pt.stats))
	for name := range pt.stats {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]PatternStatsRow, len(names))
	for i, name := range names {
		s := pt.stats[name]
		rows[i] = PatternStatsRow{
			Pattern:   name,
			Runs:      s.Runs,
			Completed: s.Completed,
			Aborted:   s.Aborted,
			Cancelled: s.Cancelled,
			Spawns:    s.Spawns,
		}
	}
	return rows
}
