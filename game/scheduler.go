package game

import (
	"errors"
	"log/slog"
	"math"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
	"github.com/pthm-cable/barrage/config"
	"github.com/pthm-cable/barrage/systems"
)

// ErrNoTarget is returned when a pattern needing a target starts while
// its role resolves to nothing.
var ErrNoTarget = errors.New("pattern target unresolvable")

// actionRun is the firing state of one action within a pattern run.
type actionRun struct {
	cfg     *config.ActionConfig
	startAt float32 // effective start, seconds from pattern start
	fired   int
	total   int
	done    bool
}

// PatternRun executes one pattern against one caster. All timing is
// explicit elapsed-time state advanced once per tick; actions interleave
// freely and an action's spawn stagger never delays later actions.
type PatternRun struct {
	game    *Game
	pattern *config.PatternConfig
	caster  ecs.Entity
	role    string

	// Aim snapshot, captured once at pattern start.
	aimed      bool
	aimHeading float32

	elapsed   float32
	actions   []actionRun
	cancelled bool
	completed bool
}

// ExecutePattern starts a pattern run for a caster. Patterns that need a
// target (homing behaviors or aimed actions) abort with ErrNoTarget when
// the role resolves to nothing at start.
func (g *Game) ExecutePattern(p *config.PatternConfig, caster ecs.Entity, role string) (*PatternRun, error) {
	pos := g.posMap.Get(caster)
	if pos == nil {
		return nil, errors.New("caster entity has no position")
	}

	needsTarget := false
	for i := range p.Actions {
		a := &p.Actions[i]
		if a.AimAtTarget || a.BehaviorKindVal.NeedsTarget() {
			needsTarget = true
			break
		}
	}

	run := &PatternRun{
		game:    g,
		pattern: p,
		caster:  caster,
		role:    role,
	}

	if needsTarget {
		tx, ty, ok := g.roles.Resolve(role)
		if !ok {
			slog.Warn("pattern aborted, no target",
				"pattern", p.Name, "role", role)
			g.collector.RecordPatternAborted()
			g.patterns.RecordAborted(p.Name)
			return nil, ErrNoTarget
		}
		run.aimed = true
		run.aimHeading = aimHeading(pos.X, pos.Y, tx, ty)
	}

	// Effective starts preserve list order: an action never begins before
	// the one authored above it.
	var prevStart float32
	for i := range p.Actions {
		a := &p.Actions[i]
		total := systems.GeneratedCount(a.Count, a.SkipEveryNth)
		if total <= 0 || len(a.BulletKinds) == 0 {
			slog.Warn("action skipped, no spawns",
				"pattern", p.Name, "action", i)
			g.collector.RecordActionSkipped()
			continue
		}
		startAt := float32(a.StartDelay)
		if startAt < prevStart {
			startAt = prevStart
		}
		prevStart = startAt
		run.actions = append(run.actions, actionRun{
			cfg:     a,
			startAt: startAt,
			total:   total,
		})
	}

	if len(run.actions) == 0 {
		g.collector.RecordPatternAborted()
		g.patterns.RecordAborted(p.Name)
		return nil, errors.New("pattern has no runnable actions")
	}

	if p.Move != nil {
		c := g.casterMap.Get(caster)
		if c == nil {
			g.collector.RecordPatternAborted()
			g.patterns.RecordAborted(p.Name)
			return nil, errors.New("pattern move requires a caster entity")
		}
		dur := float32(p.Move.Duration)
		c.MoveVelX = float32(p.Move.DX) / dur
		c.MoveVelY = float32(p.Move.DY) / dur
		c.MoveRemaining = dur
	}

	g.collector.RecordPatternStarted()
	g.patterns.RecordRun(p.Name)
	g.runs = append(g.runs, run)
	return run, nil
}

// advance fires every spawn that has come due since the last tick.
func (r *PatternRun) advance(dt float32) {
	if r.cancelled || r.completed {
		return
	}
	if !r.game.world.Alive(r.caster) {
		r.Cancel()
		return
	}

	r.elapsed += dt
	allDone := true
	for i := range r.actions {
		a := &r.actions[i]
		if a.done {
			continue
		}
		for a.fired < a.total {
			due := a.startAt + float32(a.fired)*float32(a.cfg.IntraDelay)
			if r.elapsed < due {
				break
			}
			r.fire(a)
		}
		if a.fired >= a.total {
			a.done = true
		} else {
			allDone = false
		}
	}

	if allDone {
		r.completed = true
		r.game.collector.RecordPatternCompleted()
		r.game.patterns.RecordCompleted(r.pattern.Name)
	}
}

// fire spawns the next slot of an action against the caster's live position.
func (r *PatternRun) fire(a *actionRun) {
	g := r.game
	pos := g.posMap.Get(r.caster)
	rot := g.rotMap.Get(r.caster)

	base := rot.Heading
	if a.cfg.AimAtTarget {
		base = r.aimHeading
	}

	specs := systems.Generate(pos.X, pos.Y, base, systems.FormationParams{
		Shape:        a.cfg.ShapeKindVal,
		Count:        a.cfg.Count,
		OffsetX:      float32(a.cfg.OffsetX),
		OffsetY:      float32(a.cfg.OffsetY),
		Radius:       float32(a.cfg.Radius),
		Spacing:      float32(a.cfg.Spacing),
		Angle:        float32(a.cfg.Angle),
		SpeedStep:    float32(a.cfg.SpeedStep),
		SkipEveryNth: a.cfg.SkipEveryNth,
	})
	if a.fired >= len(specs) {
		a.fired = a.total
		return
	}
	spec := specs[a.fired]

	kind := a.cfg.BulletKinds[a.fired%len(a.cfg.BulletKinds)]
	bullet := g.lib.Bullet(kind)

	lifetime := float32(a.cfg.Lifetime)
	if lifetime <= 0 {
		lifetime = float32(bullet.Lifetime)
	}
	if lifetime <= 0 {
		lifetime = float32(config.Cfg().Projectile.DefaultLifetime)
	}

	behavior, heading := r.buildBehavior(a.cfg, spec)

	g.SpawnProjectile(SpawnRequest{
		X:               spec.X,
		Y:               spec.Y,
		Heading:         heading,
		Kind:            kind,
		BaseSpeed:       float32(bullet.BaseSpeed) + spec.SpeedBonus,
		InitialSpeed:    float32(bullet.InitialSpeed),
		SpeedTransition: float32(bullet.SpeedTransition),
		Lifetime:        lifetime,
		Behavior:        behavior,
	})
	g.patterns.RecordSpawns(r.pattern.Name, 1)
	a.fired++
}

// buildBehavior fills the behavior state for one spawn slot. Stochastic
// parameters are drawn here so the per-tick advance stays deterministic
// in elapsed time.
func (r *PatternRun) buildBehavior(cfg *config.ActionConfig, spec systems.SpawnSpec) (components.Behavior, float32) {
	g := r.game
	heading := spec.Heading

	b := components.Behavior{Kind: cfg.BehaviorKindVal}
	switch cfg.BehaviorKindVal {
	case components.BehaviorDelayedHoming:
		b.Role = r.role
		b.Delay = float32(cfg.Delay)
		b.HomingSpeed = float32(cfg.HomingSpeed)

	case components.BehaviorDoubleHoming:
		b.Role = r.role
		b.Phase = components.PhaseInitialLinear
		if !r.aimed {
			// Defensive: double homing never starts without a snapshot.
			b.Phase = components.PhaseFailed
		}
		b.Delay = float32(cfg.Delay)
		b.FirstHomingDuration = float32(cfg.FirstHomingDuration)
		b.SecondPauseDelay = float32(cfg.SecondPauseDelay)
		b.HomingSpeed = float32(cfg.HomingSpeed)
		b.LookAhead = float32(cfg.LookAhead)

	case components.BehaviorSpiral:
		b.OriginX = spec.X
		b.OriginY = spec.Y
		b.SpawnHeading = heading
		b.RadialSpeed = float32(cfg.RadialSpeed)
		b.AngularSpeed = float32(cfg.AngularSpeed)

	case components.BehaviorDelayedRandomTurn:
		if cfg.Spread > 0 {
			heading += (g.rng.Float32()*2 - 1) * float32(cfg.Spread)
		}
		rate := float32(cfg.TurnRateMin)
		if cfg.TurnRateMax > cfg.TurnRateMin {
			rate += g.rng.Float32() * float32(cfg.TurnRateMax-cfg.TurnRateMin)
		}
		if g.rng.Intn(2) == 0 {
			rate = -rate
		}
		b.Delay = float32(cfg.Delay)
		b.TurnRate = rate
	}

	return b, heading
}

// Cancel stops the run; pending spawns never fire.
func (r *PatternRun) Cancel() {
	if r.cancelled || r.completed {
		return
	}
	r.cancelled = true
	r.game.collector.RecordPatternCancelled()
	r.game.patterns.RecordCancelled(r.pattern.Name)
}

// Done reports whether the run finished or was cancelled.
func (r *PatternRun) Done() bool {
	return r.cancelled || r.completed
}

// Elapsed returns seconds since the run started.
func (r *PatternRun) Elapsed() float32 {
	return r.elapsed
}

// aimHeading returns the angle from (x1,y1) towards (x2,y2).
func aimHeading(x1, y1, x2, y2 float32) float32 {
	return float32(math.Atan2(float64(y2-y1), float64(x2-x1)))
}
