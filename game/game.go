// Package game holds the engine state and the tick-driven simulation loop.
package game

import (
	"log/slog"
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/systems"
	"github.com/pthm-cable/barrage/telemetry"
)

// Options configures a new engine instance.
type Options struct {
	Seed           int64
	LogStats       bool
	StatsWindowSec float64 // 0 = config telemetry.stats_window
	SnapshotDir    string  // empty disables snapshots
	OutputDir      string  // empty disables CSV output
	StepsPerUpdate int     // simulation steps per UpdateHeadless call
}

// orbit is a scripted circular path for a target entity.
type orbit struct {
	entity       ecs.Entity
	cx, cy       float32
	radius       float32
	angularSpeed float32
	angle        float32
}

// Game holds the complete engine state.
type Game struct {
	world *ecs.World
	rng   *rand.Rand
	lib   *config.Library

	projectileMapper *ecs.Map4[
		components.Position,
		components.Rotation,
		components.Projectile,
		components.Behavior,
	]
	projectileFilter *ecs.Filter4[
		components.Position,
		components.Rotation,
		components.Projectile,
		components.Behavior,
	]
	casterMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Caster,
	]
	targetMapper *ecs.Map2[components.Position, components.Velocity]

	// Individual component mappers for lookups
	posMap    *ecs.Map1[components.Position]
	velMap    *ecs.Map1[components.Velocity]
	rotMap    *ecs.Map1[components.Rotation]
	casterMap *ecs.Map1[components.Caster]

	registry *systems.SystemRegistry

	roles *roleTable

	orchestrators []*Orchestrator
	runs          []*PatternRun
	casters       []ecs.Entity
	targets       []ecs.Entity
	orbits        []orbit

	// State
	tick            int32
	nextID          uint32
	liveProjectiles int

	seed           int64
	dt             float32
	width, height  float32
	cullMargin     float32
	stepsPerUpdate int

	// Telemetry
	collector   *telemetry.Collector
	patterns    *telemetry.PatternTracker
	perf        *telemetry.PerfCollector
	output      *telemetry.OutputManager
	logStats    bool
	snapshotDir string
}

// NewGame creates a new engine instance from the loaded config and
// pattern library.
func NewGame(opts Options, lib *config.Library) (*Game, error) {
	cfg := config.Cfg()
	world := ecs.NewWorld()

	windowSec := opts.StatsWindowSec
	if windowSec <= 0 {
		windowSec = cfg.Telemetry.StatsWindow
	}

	stepsPerUpdate := opts.StepsPerUpdate
	if stepsPerUpdate < 1 {
		stepsPerUpdate = 1
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}

	g := &Game{
		world:  world,
		rng:    rand.New(rand.NewSource(opts.Seed)),
		lib:    lib,
		seed:   opts.Seed,
		dt:     cfg.Derived.DT32,
		width:  cfg.Derived.WorldW32,
		height: cfg.Derived.WorldH32,

		cullMargin:     float32(cfg.Projectile.CullMargin),
		stepsPerUpdate: stepsPerUpdate,

		projectileMapper: ecs.NewMap4[
			components.Position,
			components.Rotation,
			components.Projectile,
			components.Behavior,
		](world),
		projectileFilter: ecs.NewFilter4[
			components.Position,
			components.Rotation,
			components.Projectile,
			components.Behavior,
		](world),
		casterMapper: ecs.NewMap4[
			components.Position,
			components.Velocity,
			components.Rotation,
			components.Caster,
		](world),
		targetMapper: ecs.NewMap2[components.Position, components.Velocity](world),

		posMap:    ecs.NewMap1[components.Position](world),
		velMap:    ecs.NewMap1[components.Velocity](world),
		rotMap:    ecs.NewMap1[components.Rotation](world),
		casterMap: ecs.NewMap1[components.Caster](world),

		registry: systems.NewSystemRegistry(),

		collector:   telemetry.NewCollector(windowSec, cfg.Derived.DT32),
		patterns:    telemetry.NewPatternTracker(),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		output:      output,
		logStats:    opts.LogStats,
		snapshotDir: opts.SnapshotDir,
	}

	g.roles = newRoleTable(world, g.posMap)

	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Warn("failed to write config copy", "error", err)
	}

	return g, nil
}

// SpawnCaster creates an attack source at the given position.
func (g *Game) SpawnCaster(x, y, heading float32) ecs.Entity {
	g.nextID++
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	rot := components.Rotation{Heading: heading}
	caster := components.Caster{ID: g.nextID}
	e := g.casterMapper.NewEntity(&pos, &vel, &rot, &caster)
	g.casters = append(g.casters, e)
	return e
}

// SpawnTarget creates a passive target entity at the given position.
func (g *Game) SpawnTarget(x, y float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{}
	e := g.targetMapper.NewEntity(&pos, &vel)
	g.targets = append(g.targets, e)
	return e
}

// SetRole binds a role name to an entity for target resolution.
func (g *Game) SetRole(role string, e ecs.Entity) {
	g.roles.Set(role, e)
}

// Roles returns the role-based target resolver.
func (g *Game) Roles() TargetResolver {
	return g.roles
}

// ScriptOrbit puts a target entity on a circular path.
func (g *Game) ScriptOrbit(e ecs.Entity, cx, cy, radius, angularSpeed float32) {
	g.orbits = append(g.orbits, orbit{
		entity: e, cx: cx, cy: cy,
		radius: radius, angularSpeed: angularSpeed,
	})
}

// AddOrchestrator attaches a move/attack cycle to a caster. The pool is
// the set of pattern names the orchestrator draws from.
func (g *Game) AddOrchestrator(caster ecs.Entity, pool []string, role string) *Orchestrator {
	o := newOrchestrator(g, caster, pool, role)
	g.orchestrators = append(g.orchestrators, o)
	return o
}

// UpdateHeadless advances the simulation without rendering.
func (g *Game) UpdateHeadless() {
	for i := 0; i < g.stepsPerUpdate; i++ {
		g.step()
	}
}

// step runs one simulation tick through all phases.
func (g *Game) step() {
	dt := g.dt
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseTargets)
	g.updateTargets(dt)

	g.perf.StartPhase(telemetry.PhaseOrchestrator)
	for _, o := range g.orchestrators {
		o.update(dt)
	}

	g.perf.StartPhase(telemetry.PhaseScheduler)
	g.advanceRuns(dt)

	g.perf.StartPhase(telemetry.PhaseMovement)
	g.updateCasterMoves(dt)

	g.perf.StartPhase(telemetry.PhaseBehavior)
	g.updateProjectiles(dt)

	g.perf.StartPhase(telemetry.PhaseLifetime)
	g.expireProjectiles()

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
	g.tick++
}

// updateTargets advances scripted orbits and integrates target velocities.
func (g *Game) updateTargets(dt float32) {
	for i := range g.orbits {
		o := &g.orbits[i]
		if !g.world.Alive(o.entity) {
			continue
		}
		o.angle += o.angularSpeed * dt
		pos := g.posMap.Get(o.entity)
		if pos == nil {
			continue
		}
		pos.X = o.cx + o.radius*float32(math.Cos(float64(o.angle)))
		pos.Y = o.cy + o.radius*float32(math.Sin(float64(o.angle)))
	}

	for _, e := range g.targets {
		if !g.world.Alive(e) {
			continue
		}
		vel := g.velMap.Get(e)
		pos := g.posMap.Get(e)
		if vel == nil || pos == nil {
			continue
		}
		pos.X += vel.X * dt
		pos.Y += vel.Y * dt
	}
}

// advanceRuns steps every active pattern run and drops finished ones.
func (g *Game) advanceRuns(dt float32) {
	kept := g.runs[:0]
	for _, run := range g.runs {
		run.advance(dt)
		if !run.Done() {
			kept = append(kept, run)
		}
	}
	g.runs = kept
}

// updateCasterMoves applies pattern-scoped caster translations.
func (g *Game) updateCasterMoves(dt float32) {
	for _, e := range g.casters {
		if !g.world.Alive(e) {
			continue
		}
		c := g.casterMap.Get(e)
		if c == nil || c.MoveRemaining <= 0 {
			continue
		}
		pos := g.posMap.Get(e)
		step := dt
		if c.MoveRemaining < dt {
			step = c.MoveRemaining
		}
		pos.X += c.MoveVelX * step
		pos.Y += c.MoveVelY * step
		c.MoveRemaining -= dt
		if c.MoveRemaining <= 0 {
			c.MoveVelX = 0
			c.MoveVelY = 0
			c.MoveRemaining = 0
		}
	}
}

// updateProjectiles steps every live projectile's behavior state machine.
func (g *Game) updateProjectiles(dt float32) {
	query := g.projectileFilter.Query()
	for query.Next() {
		pos, rot, proj, b := query.Get()
		if !proj.Alive {
			continue
		}

		var tx, ty float32
		hasTarget := false
		if b.Role != "" {
			tx, ty, hasTarget = g.roles.Resolve(b.Role)
		}

		systems.AdvanceProjectile(pos, rot, proj, b, tx, ty, hasTarget, dt)
	}
}

// expireProjectiles removes projectiles past their lifetime or far outside
// the world. Collects first, mutates after the query completes.
func (g *Game) expireProjectiles() {
	type removal struct {
		entity ecs.Entity
		culled bool
	}
	var toRemove []removal

	query := g.projectileFilter.Query()
	for query.Next() {
		pos, _, proj, _ := query.Get()
		if proj.Age >= proj.Lifetime {
			toRemove = append(toRemove, removal{query.Entity(), false})
			continue
		}
		if pos.X < -g.cullMargin || pos.X > g.width+g.cullMargin ||
			pos.Y < -g.cullMargin || pos.Y > g.height+g.cullMargin {
			toRemove = append(toRemove, removal{query.Entity(), true})
		}
	}

	for _, r := range toRemove {
		g.world.RemoveEntity(r.entity)
		g.liveProjectiles--
		if r.culled {
			g.collector.RecordCulled()
		} else {
			g.collector.RecordExpired()
		}
	}
}

// flushTelemetry emits window stats when the window elapses.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	ages := make([]float64, 0, g.liveProjectiles)
	query := g.projectileFilter.Query()
	for query.Next() {
		_, _, proj, _ := query.Get()
		ages = append(ages, float64(proj.Age))
	}

	stats := g.collector.Flush(g.tick, g.liveProjectiles, ages)
	perfStats := g.perf.Stats()

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}
	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Warn("telemetry write failed", "error", err)
	}
	if err := g.output.WritePerf(perfStats, g.tick); err != nil {
		slog.Warn("perf write failed", "error", err)
	}

	if g.snapshotDir != "" {
		if _, err := telemetry.SaveSnapshot(g.CaptureSnapshot(), g.snapshotDir); err != nil {
			slog.Warn("snapshot write failed", "error", err)
		}
	}
}

// CaptureSnapshot serializes the replicable engine state.
func (g *Game) CaptureSnapshot() *telemetry.Snapshot {
	snap := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  g.width,
		WorldHeight: g.height,
		Tick:        g.tick,
	}

	query := g.projectileFilter.Query()
	for query.Next() {
		pos, rot, proj, b := query.Get()
		snap.Projectiles = append(snap.Projectiles, telemetry.ProjectileState{
			ID:       proj.ID,
			Kind:     proj.Kind,
			X:        pos.X,
			Y:        pos.Y,
			Heading:  rot.Heading,
			Speed:    proj.Speed,
			Age:      proj.Age,
			Lifetime: proj.Lifetime,
			Behavior: b.Kind.String(),
			Phase:    b.Phase.String(),
		})
	}

	for _, e := range g.casters {
		if !g.world.Alive(e) {
			continue
		}
		pos := g.posMap.Get(e)
		rot := g.rotMap.Get(e)
		c := g.casterMap.Get(e)
		busy := false
		for _, o := range g.orchestrators {
			if o.caster == e {
				busy = o.Busy()
				break
			}
		}
		snap.Casters = append(snap.Casters, telemetry.CasterState{
			ID:      c.ID,
			X:       pos.X,
			Y:       pos.Y,
			Heading: rot.Heading,
			Busy:    busy,
		})
	}

	return snap
}

// Tick returns the current simulation tick.
func (g *Game) Tick() int32 {
	return g.tick
}

// LiveProjectiles returns the number of live projectiles.
func (g *Game) LiveProjectiles() int {
	return g.liveProjectiles
}

// ActiveRuns returns the number of in-flight pattern runs.
func (g *Game) ActiveRuns() int {
	return len(g.runs)
}

// Unload flushes pattern stats and closes output files.
func (g *Game) Unload() {
	if err := g.output.WritePatternStats(g.patterns.Rows()); err != nil {
		slog.Warn("pattern stats write failed", "error", err)
	}
	if err := g.output.Close(); err != nil {
		slog.Warn("output close failed", "error", err)
	}
}
