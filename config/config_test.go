package config

import (
	"strings"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Physics.DT <= 0 {
		t.Errorf("dt %v, want positive", cfg.Physics.DT)
	}
	if cfg.Orchestrator.AttacksPerMove < 1 {
		t.Errorf("attacks_per_move %d, want >= 1", cfg.Orchestrator.AttacksPerMove)
	}
	if cfg.Orchestrator.MaxMoveDelay < cfg.Orchestrator.MinMoveDelay {
		t.Errorf("move delay range inverted: [%v,%v]",
			cfg.Orchestrator.MinMoveDelay, cfg.Orchestrator.MaxMoveDelay)
	}
	if cfg.Projectile.DefaultLifetime <= 0 {
		t.Errorf("default_lifetime %v, want positive", cfg.Projectile.DefaultLifetime)
	}

	if cfg.Derived.DT32 != float32(cfg.Physics.DT) {
		t.Errorf("DT32 %v, want %v", cfg.Derived.DT32, float32(cfg.Physics.DT))
	}

	// Zero bounds default to the full world rectangle.
	b := cfg.Orchestrator.Bounds
	if b.MaxX != float64(cfg.World.Width) || b.MaxY != float64(cfg.World.Height) {
		t.Errorf("bounds (%v,%v), want world (%d,%d)", b.MaxX, b.MaxY, cfg.World.Width, cfg.World.Height)
	}
}

func TestLoadEmbeddedLibrary(t *testing.T) {
	lib, err := LoadLibrary("")
	if err != nil {
		t.Fatalf("LoadLibrary: %v", err)
	}
	if len(lib.Patterns) == 0 {
		t.Fatal("embedded library has no patterns")
	}

	for _, name := range []string{"ring_burst", "aimed_lattice", "homing_volley", "twin_strike", "spiral_bloom", "scatter_drift"} {
		if _, ok := lib.Pattern(name); !ok {
			t.Errorf("pattern %q missing from embedded library", name)
		}
	}

	// Derived fields are resolved during validation.
	p, _ := lib.Pattern("aimed_lattice")
	a := p.Actions[0]
	if len(a.BulletKinds) != 2 {
		t.Fatalf("bullet kinds %d, want 2", len(a.BulletKinds))
	}
	if lib.Bullet(a.BulletKinds[0]).Name != "orb" {
		t.Errorf("first bullet %q, want orb", lib.Bullet(a.BulletKinds[0]).Name)
	}
}

func TestParseLibraryValidation(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{
			name: "unknown bullet",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: point, count: 1, behavior: linear, bullets: [missing]}
`,
			wantErr: "unknown bullet",
		},
		{
			name: "unknown shape",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: star, count: 1, behavior: linear, bullets: [bolt]}
`,
			wantErr: "unknown shape",
		},
		{
			name: "unknown behavior",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: point, count: 1, behavior: wander, bullets: [bolt]}
`,
			wantErr: "unknown behavior",
		},
		{
			name: "duplicate pattern name",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: point, count: 1, behavior: linear, bullets: [bolt]}
  - name: p
    actions:
      - {shape: point, count: 1, behavior: linear, bullets: [bolt]}
`,
			wantErr: "duplicate name",
		},
		{
			name: "homing without speed",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: point, count: 1, behavior: delayed_homing, bullets: [bolt]}
`,
			wantErr: "homing_speed",
		},
		{
			name: "negative delay",
			yaml: `
bullets:
  - {name: bolt, base_speed: 100}
patterns:
  - name: p
    actions:
      - {shape: point, count: 1, behavior: linear, bullets: [bolt], start_delay: -1}
`,
			wantErr: "negative",
		},
		{
			name: "zero base speed",
			yaml: `
bullets:
  - {name: bolt, base_speed: 0}
patterns: []
`,
			wantErr: "base_speed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLibrary([]byte(tt.yaml))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}
