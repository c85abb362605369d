package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/barrage/components"
)

//go:embed patterns.yaml
var patternsYAML []byte

// BulletConfig defines a projectile archetype referenced by actions.
type BulletConfig struct {
	Name            string  `yaml:"name"`
	BaseSpeed       float64 `yaml:"base_speed"`
	InitialSpeed    float64 `yaml:"initial_speed"`    // 0 = no launch ramp
	SpeedTransition float64 `yaml:"speed_transition"` // seconds, 0 = no launch ramp
	Lifetime        float64 `yaml:"lifetime"`         // 0 = projectile.default_lifetime
}

// MoveConfig is a pattern-scoped caster translation, interpolated over
// its duration while the pattern runs.
type MoveConfig struct {
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Duration float64 `yaml:"duration"`
}

// ActionConfig is one timed spawn within a pattern.
type ActionConfig struct {
	Shape        string  `yaml:"shape"`
	Count        int     `yaml:"count"`
	Radius       float64 `yaml:"radius"`
	Spacing      float64 `yaml:"spacing"`
	Angle        float64 `yaml:"angle"`
	OffsetX      float64 `yaml:"offset_x"`
	OffsetY      float64 `yaml:"offset_y"`
	SpeedStep    float64 `yaml:"speed_step"`
	SkipEveryNth int     `yaml:"skip_every_nth"`

	Behavior string   `yaml:"behavior"`
	Bullets  []string `yaml:"bullets"` // cycled over spawn order

	StartDelay  float64 `yaml:"start_delay"` // from pattern start
	IntraDelay  float64 `yaml:"intra_delay"` // between spawns of this action
	AimAtTarget bool    `yaml:"aim_at_target"`
	Lifetime    float64 `yaml:"lifetime"` // 0 = bullet lifetime

	// Behavior parameters. Only the ones the selected behavior reads
	// need to be set.
	Delay               float64 `yaml:"delay"`
	HomingSpeed         float64 `yaml:"homing_speed"`
	FirstHomingDuration float64 `yaml:"first_homing_duration"`
	SecondPauseDelay    float64 `yaml:"second_pause_delay"`
	LookAhead           float64 `yaml:"look_ahead"`
	RadialSpeed         float64 `yaml:"radial_speed"`
	AngularSpeed        float64 `yaml:"angular_speed"`
	Spread              float64 `yaml:"spread"`        // random heading jitter, radians
	TurnRateMin         float64 `yaml:"turn_rate_min"` // delayed random turn, radians/sec
	TurnRateMax         float64 `yaml:"turn_rate_max"`

	// Resolved during validation.
	ShapeKindVal    components.ShapeKind    `yaml:"-"`
	BehaviorKindVal components.BehaviorKind `yaml:"-"`
	BulletKinds     []uint8                 `yaml:"-"`
}

// PatternConfig is a named list of actions, optionally with a caster move.
type PatternConfig struct {
	Name    string         `yaml:"name"`
	Actions []ActionConfig `yaml:"actions"`
	Move    *MoveConfig    `yaml:"move"`
}

// Library is the authored bullet and pattern set.
type Library struct {
	Bullets  []BulletConfig  `yaml:"bullets"`
	Patterns []PatternConfig `yaml:"patterns"`

	bulletIndex  map[string]uint8
	patternIndex map[string]*PatternConfig
}

// LoadLibrary reads a pattern library from path, or the embedded default
// library when path is empty. The library is validated before return.
func LoadLibrary(path string) (*Library, error) {
	data := patternsYAML
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading pattern library: %w", err)
		}
	}
	return ParseLibrary(data)
}

// ParseLibrary parses and validates a yaml pattern library.
func ParseLibrary(data []byte) (*Library, error) {
	lib := &Library{}
	if err := yaml.Unmarshal(data, lib); err != nil {
		return nil, fmt.Errorf("parsing pattern library: %w", err)
	}
	if err := lib.validate(); err != nil {
		return nil, err
	}
	return lib, nil
}

func (l *Library) validate() error {
	if len(l.Bullets) == 0 {
		return fmt.Errorf("pattern library: no bullets defined")
	}
	if len(l.Bullets) > 255 {
		return fmt.Errorf("pattern library: too many bullets (%d)", len(l.Bullets))
	}

	l.bulletIndex = make(map[string]uint8, len(l.Bullets))
	for i, b := range l.Bullets {
		if b.Name == "" {
			return fmt.Errorf("bullet %d: missing name", i)
		}
		if _, dup := l.bulletIndex[b.Name]; dup {
			return fmt.Errorf("bullet %q: duplicate name", b.Name)
		}
		if b.BaseSpeed <= 0 {
			return fmt.Errorf("bullet %q: base_speed must be positive", b.Name)
		}
		if b.InitialSpeed < 0 || b.SpeedTransition < 0 || b.Lifetime < 0 {
			return fmt.Errorf("bullet %q: negative value", b.Name)
		}
		l.bulletIndex[b.Name] = uint8(i)
	}

	l.patternIndex = make(map[string]*PatternConfig, len(l.Patterns))
	for i := range l.Patterns {
		p := &l.Patterns[i]
		if p.Name == "" {
			return fmt.Errorf("pattern %d: missing name", i)
		}
		if _, dup := l.patternIndex[p.Name]; dup {
			return fmt.Errorf("pattern %q: duplicate name", p.Name)
		}
		if len(p.Actions) == 0 {
			return fmt.Errorf("pattern %q: no actions", p.Name)
		}
		if p.Move != nil && p.Move.Duration <= 0 {
			return fmt.Errorf("pattern %q: move duration must be positive", p.Name)
		}
		for j := range p.Actions {
			if err := l.validateAction(&p.Actions[j]); err != nil {
				return fmt.Errorf("pattern %q action %d: %w", p.Name, j, err)
			}
		}
		l.patternIndex[p.Name] = p
	}
	return nil
}

func (l *Library) validateAction(a *ActionConfig) error {
	shape, ok := components.ParseShapeKind(a.Shape)
	if !ok {
		return fmt.Errorf("unknown shape %q", a.Shape)
	}
	a.ShapeKindVal = shape

	behavior, ok := components.ParseBehaviorKind(a.Behavior)
	if !ok {
		return fmt.Errorf("unknown behavior %q", a.Behavior)
	}
	a.BehaviorKindVal = behavior

	// A non-positive count or an empty bullet list is tolerated here and
	// skipped with a warning when the pattern runs.
	a.BulletKinds = make([]uint8, len(a.Bullets))
	for i, name := range a.Bullets {
		kind, ok := l.bulletIndex[name]
		if !ok {
			return fmt.Errorf("unknown bullet %q", name)
		}
		a.BulletKinds[i] = kind
	}

	for _, v := range []float64{
		a.Radius, a.Spacing, a.StartDelay, a.IntraDelay, a.Lifetime,
		a.Delay, a.HomingSpeed, a.FirstHomingDuration, a.SecondPauseDelay,
		a.LookAhead, a.RadialSpeed, a.Spread,
	} {
		if v < 0 {
			return fmt.Errorf("negative timing or geometry value")
		}
	}
	if a.SkipEveryNth < 0 {
		return fmt.Errorf("skip_every_nth must be non-negative")
	}
	if a.TurnRateMax < a.TurnRateMin {
		return fmt.Errorf("turn_rate_max below turn_rate_min")
	}
	if behavior.NeedsTarget() && a.HomingSpeed <= 0 {
		return fmt.Errorf("homing behavior needs a positive homing_speed")
	}
	return nil
}

// Bullet returns a bullet config by library kind index.
func (l *Library) Bullet(kind uint8) *BulletConfig {
	return &l.Bullets[kind]
}

// BulletKind looks up a bullet's kind index by name.
func (l *Library) BulletKind(name string) (uint8, bool) {
	k, ok := l.bulletIndex[name]
	return k, ok
}

// Pattern looks up a pattern by name.
func (l *Library) Pattern(name string) (*PatternConfig, bool) {
	p, ok := l.patternIndex[name]
	return p, ok
}

// PatternNames returns all pattern names in authored order.
func (l *Library) PatternNames() []string {
	names := make([]string, len(l.Patterns))
	for i := range l.Patterns {
		names[i] = l.Patterns[i].Name
	}
	return names
}
