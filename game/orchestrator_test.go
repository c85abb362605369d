package game

import (
	"testing"

	"github.com/pthm-cable/barrage/config"
)

func newCycleGame(t *testing.T, seed int64) (*Game, *Orchestrator) {
	t.Helper()
	g := newTestGame(t, seed)

	target := g.SpawnTarget(800, 450)
	g.SetRole("player", target)

	caster := g.SpawnCaster(400, 450, 0)
	o := g.AddOrchestrator(caster, []string{"burst", "ordered", "aimed_pair"}, "player")
	return g, o
}

func TestCycleMutualExclusion(t *testing.T) {
	_, o := newCycleGame(t, 7)

	if !o.TryBeginCycle() {
		t.Fatal("first TryBeginCycle refused")
	}
	if !o.Busy() {
		t.Fatal("not busy during cycle")
	}
	if o.TryBeginCycle() {
		t.Error("second TryBeginCycle accepted while busy")
	}
}

func TestSelectPatternsDistinct(t *testing.T) {
	_, o := newCycleGame(t, 7)

	want := config.Cfg().Orchestrator.AttacksPerMove
	if want > len(o.pool) {
		want = len(o.pool)
	}

	for trial := 0; trial < 50; trial++ {
		picked := o.selectPatterns()
		if len(picked) != want {
			t.Fatalf("trial %d: picked %d patterns, want %d", trial, len(picked), want)
		}
		seen := make(map[string]bool)
		for _, name := range picked {
			if seen[name] {
				t.Fatalf("trial %d: pattern %q picked twice", trial, name)
			}
			seen[name] = true
		}
	}
}

func TestCycleRelocatesWithinBounds(t *testing.T) {
	g, o := newCycleGame(t, 7)

	o.TryBeginCycle()

	b := config.Cfg().Orchestrator.Bounds
	pos := g.posMap.Get(o.caster)
	if float64(pos.X) < b.MinX || float64(pos.X) > b.MaxX ||
		float64(pos.Y) < b.MinY || float64(pos.Y) > b.MaxY {
		t.Errorf("caster at (%v,%v), outside bounds [%v,%v]x[%v,%v]",
			pos.X, pos.Y, b.MinX, b.MaxX, b.MinY, b.MaxY)
	}
}

func TestCycleProgression(t *testing.T) {
	g, o := newCycleGame(t, 7)

	// Run until two full cycles complete: wait, relocate, patterns, wait.
	const maxTicks = 60 * 60 // one simulated minute
	for i := 0; i < maxTicks && o.Cycles() < 2; i++ {
		g.step()
	}
	if o.Cycles() < 2 {
		t.Fatalf("only %d cycles after %d ticks", o.Cycles(), maxTicks)
	}
	if !o.Busy() && o.state != orchWaiting {
		t.Errorf("unexpected state %d between cycles", o.state)
	}
}

func TestStopCancelsActivePattern(t *testing.T) {
	g, o := newCycleGame(t, 7)

	o.TryBeginCycle()
	if o.active == nil {
		t.Fatal("no active pattern after cycle start")
	}
	run := o.active

	o.Stop()
	if !run.Done() {
		t.Error("active run not cancelled by Stop")
	}
	if o.Busy() {
		t.Error("still busy after Stop")
	}

	// A stopped orchestrator never starts another cycle.
	for i := 0; i < 600; i++ {
		g.step()
	}
	if o.Cycles() != 0 {
		t.Errorf("cycles %d after Stop, want 0", o.Cycles())
	}
}
