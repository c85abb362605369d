package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/config"
)

type orchState uint8

const (
	orchWaiting orchState = iota
	orchAttacking
)

// Orchestrator drives one caster through repeating move/attack cycles:
// relocate, run a fixed number of distinct patterns back to back, then
// idle for a randomized delay. The busy flag guarantees cycles never
// overlap.
type Orchestrator struct {
	game   *Game
	caster ecs.Entity
	pool   []string
	role   string

	state         orchState
	busy          bool
	waitRemaining float32
	queue         []string
	active        *PatternRun
	stopped       bool
	cycles        int
}

func newOrchestrator(g *Game, caster ecs.Entity, pool []string, role string) *Orchestrator {
	o := &Orchestrator{
		game:   g,
		caster: caster,
		pool:   pool,
		role:   role,
		state:  orchWaiting,
	}
	o.waitRemaining = o.rollWait()
	return o
}

func (o *Orchestrator) rollWait() float32 {
	cfg := config.Cfg().Orchestrator
	return float32(cfg.MinMoveDelay + o.game.rng.Float64()*(cfg.MaxMoveDelay-cfg.MinMoveDelay))
}

// update advances the cycle state machine by one tick.
func (o *Orchestrator) update(dt float32) {
	if o.stopped || !o.game.world.Alive(o.caster) {
		return
	}

	switch o.state {
	case orchWaiting:
		o.waitRemaining -= dt
		if o.waitRemaining <= 0 {
			o.TryBeginCycle()
		}
	case orchAttacking:
		o.advanceAttack(dt)
	}
}

// TryBeginCycle starts a new move/attack cycle. Returns false when a
// cycle is already in progress.
func (o *Orchestrator) TryBeginCycle() bool {
	if o.busy {
		return false
	}
	o.busy = true
	o.state = orchAttacking

	o.relocate()
	o.queue = o.selectPatterns()
	o.active = nil
	o.startNext()
	return true
}

// relocate teleports the caster to a random point inside the configured
// bounds and faces it at the target role when one resolves.
func (o *Orchestrator) relocate() {
	b := config.Cfg().Orchestrator.Bounds
	g := o.game

	pos := g.posMap.Get(o.caster)
	pos.X = float32(b.MinX + g.rng.Float64()*(b.MaxX-b.MinX))
	pos.Y = float32(b.MinY + g.rng.Float64()*(b.MaxY-b.MinY))

	if tx, ty, ok := g.roles.Resolve(o.role); ok {
		rot := g.rotMap.Get(o.caster)
		rot.Heading = aimHeading(pos.X, pos.Y, tx, ty)
	}

	g.collector.RecordRelocation()
	slog.Debug("caster relocated",
		"caster", g.casterMap.Get(o.caster).ID, "x", pos.X, "y", pos.Y)
}

// selectPatterns draws attacksPerMove distinct pattern names from the
// pool. A pool smaller than the quota yields the whole pool.
func (o *Orchestrator) selectPatterns() []string {
	n := config.Cfg().Orchestrator.AttacksPerMove
	if n > len(o.pool) {
		n = len(o.pool)
	}

	candidates := make([]string, len(o.pool))
	copy(candidates, o.pool)

	picked := make([]string, 0, n)
	for len(picked) < n {
		i := o.game.rng.Intn(len(candidates))
		picked = append(picked, candidates[i])
		candidates[i] = candidates[len(candidates)-1]
		candidates = candidates[:len(candidates)-1]
	}
	return picked
}

// startNext begins queued patterns until one starts or the queue drains.
// Aborted patterns (no target) are skipped.
func (o *Orchestrator) startNext() {
	for len(o.queue) > 0 {
		name := o.queue[0]
		o.queue = o.queue[1:]

		p, ok := o.game.lib.Pattern(name)
		if !ok {
			slog.Warn("unknown pattern in pool", "pattern", name)
			continue
		}
		run, err := o.game.ExecutePattern(p, o.caster, o.role)
		if err != nil {
			continue
		}
		o.active = run
		return
	}
}

// advanceAttack waits out the active pattern and any pattern-scoped
// caster move, then starts the next queued pattern or ends the cycle.
func (o *Orchestrator) advanceAttack(dt float32) {
	if o.active != nil && o.active.Done() {
		o.active = nil
	}
	if o.active != nil {
		return
	}

	// A pattern finishes when both its run and its move descriptor are
	// done, so a still-running move blocks the next pattern and the cycle
	// end alike.
	if c := o.game.casterMap.Get(o.caster); c != nil && c.MoveRemaining > 0 {
		return
	}

	if len(o.queue) > 0 {
		o.startNext()
		return
	}

	o.endCycle()
}

func (o *Orchestrator) endCycle() {
	o.busy = false
	o.state = orchWaiting
	o.waitRemaining = o.rollWait()
	o.cycles++
	o.game.collector.RecordCycleCompleted()
}

// Stop halts the orchestrator and cancels its active pattern.
func (o *Orchestrator) Stop() {
	o.stopped = true
	if o.active != nil {
		o.active.Cancel()
		o.active = nil
	}
	o.busy = false
}

// Busy reports whether a cycle is in progress.
func (o *Orchestrator) Busy() bool {
	return o.busy
}

// Cycles returns the number of completed cycles.
func (o *Orchestrator) Cycles() int {
	return o.cycles
}
