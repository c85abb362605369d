// Package components defines ECS components for the barrage engine.
package components

// ShapeKind selects a spawn geometry for a formation.
type ShapeKind uint8

const (
	ShapePoint ShapeKind = iota
	ShapeCircle
	ShapeLine
)

// String returns the yaml/config name of the shape.
func (s ShapeKind) String() string {
	switch s {
	case ShapePoint:
		return "point"
	case ShapeCircle:
		return "circle"
	case ShapeLine:
		return "line"
	}
	return "unknown"
}

// ParseShapeKind maps a config name to a ShapeKind.
func ParseShapeKind(name string) (ShapeKind, bool) {
	switch name {
	case "point":
		return ShapePoint, true
	case "circle":
		return ShapeCircle, true
	case "line":
		return ShapeLine, true
	}
	return ShapePoint, false
}

// BehaviorKind selects the per-tick movement state machine of a projectile.
type BehaviorKind uint8

const (
	BehaviorLinear BehaviorKind = iota
	BehaviorDelayedHoming
	BehaviorDoubleHoming
	BehaviorSpiral
	BehaviorDelayedRandomTurn
)

// String returns the yaml/config name of the behavior.
func (b BehaviorKind) String() string {
	switch b {
	case BehaviorLinear:
		return "linear"
	case BehaviorDelayedHoming:
		return "delayed_homing"
	case BehaviorDoubleHoming:
		return "double_homing"
	case BehaviorSpiral:
		return "spiral"
	case BehaviorDelayedRandomTurn:
		return "delayed_random_turn"
	}
	return "unknown"
}

// ParseBehaviorKind maps a config name to a BehaviorKind.
func ParseBehaviorKind(name string) (BehaviorKind, bool) {
	switch name {
	case "linear":
		return BehaviorLinear, true
	case "delayed_homing":
		return BehaviorDelayedHoming, true
	case "double_homing":
		return BehaviorDoubleHoming, true
	case "spiral":
		return BehaviorSpiral, true
	case "delayed_random_turn":
		return BehaviorDelayedRandomTurn, true
	}
	return BehaviorLinear, false
}

// NeedsTarget reports whether the behavior requires a resolvable target
// at pattern start.
func (b BehaviorKind) NeedsTarget() bool {
	return b == BehaviorDelayedHoming || b == BehaviorDoubleHoming
}

// BehaviorPhase is the current stage of a multi-phase behavior.
// Only double homing uses phases beyond the initial one.
type BehaviorPhase uint8

const (
	PhaseInitialLinear BehaviorPhase = iota
	PhaseFirstHoming
	PhasePause
	PhaseSecondHoming
	PhaseFailed
)

// String returns a log-friendly phase name.
func (p BehaviorPhase) String() string {
	switch p {
	case PhaseInitialLinear:
		return "initial_linear"
	case PhaseFirstHoming:
		return "first_homing"
	case PhasePause:
		return "pause"
	case PhaseSecondHoming:
		return "second_homing"
	case PhaseFailed:
		return "failed"
	}
	return "unknown"
}

// Position is a 2D world position.
type Position struct {
	X, Y float32
}

// Velocity is a 2D velocity vector, used by scripted movers (targets,
// pattern-scoped caster moves). Projectiles derive velocity from heading
// and speed instead.
type Velocity struct {
	X, Y float32
}

// Rotation stores a heading in radians.
type Rotation struct {
	Heading float32
}

// Projectile carries the flight bookkeeping shared by every behavior.
type Projectile struct {
	ID   uint32
	Kind uint8 // index into the bullet library

	Speed           float32 // current forward speed
	BaseSpeed       float32 // cruise speed after the launch ramp
	InitialSpeed    float32 // speed at spawn (equals BaseSpeed when no ramp)
	SpeedTransition float32 // seconds to ramp InitialSpeed -> BaseSpeed

	Age      float32
	Lifetime float32
	Alive    bool
}

// Behavior holds the per-projectile state machine parameters. Fields are
// populated at spawn depending on Kind; unused fields stay zero.
type Behavior struct {
	Kind  BehaviorKind
	Phase BehaviorPhase

	// Elapsed time inside the current phase. Reset on phase transitions.
	Elapsed float32

	// Role of the target this projectile tracks (homing kinds).
	Role string

	// Delayed homing / delayed random turn: straight-flight delay.
	Delay float32

	// Homing kinds: speed while steering at the target.
	HomingSpeed float32

	// Double homing phase timings.
	FirstHomingDuration float32
	SecondPauseDelay    float32

	// Double homing: distance ahead of the snapshot used as the fixed
	// second-phase endpoint.
	LookAhead float32

	// Captured steering point: the first-homing target snapshot, later
	// replaced by the fixed second-leg endpoint.
	SnapX, SnapY float32
	HasSnap      bool

	// Spiral parameters. The trajectory is analytic in Elapsed, anchored
	// at the spawn origin.
	OriginX, OriginY float32
	SpawnHeading     float32
	RadialSpeed      float32
	AngularSpeed     float32

	// Delayed random turn: signed turn rate, pre-rolled at spawn.
	TurnRate float32
}

// Caster marks an attack source. MoveVel carries a pattern-scoped
// interpolated move; MoveRemaining counts it down.
type Caster struct {
	ID            uint32
	MoveVelX      float32
	MoveVelY      float32
	MoveRemaining float32
}
