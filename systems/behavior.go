package systems

import (
	"math"

	"github.com/pthm-cable/barrage/components"
)

// Double homing pauses in place between its two homing legs, so its pause
// phase performs no movement at all.

// AdvanceProjectile steps one projectile by dt. Target coordinates are the
// live position of the projectile's tracked role; hasTarget is false when
// the role is unbound or its entity is gone, in which case homing kinds
// freeze their heading and fly straight.
func AdvanceProjectile(pos *components.Position, rot *components.Rotation, proj *components.Projectile, b *components.Behavior, targetX, targetY float32, hasTarget bool, dt float32) {
	proj.Age += dt
	b.Elapsed += dt

	// Launch ramp: speed eases linearly from the spawn value to the
	// cruise value over the transition window.
	if proj.SpeedTransition > 0 {
		t := clamp01(proj.Age / proj.SpeedTransition)
		proj.Speed = proj.InitialSpeed + (proj.BaseSpeed-proj.InitialSpeed)*t
	} else {
		proj.Speed = proj.BaseSpeed
	}

	switch b.Kind {
	case components.BehaviorLinear:
		moveForward(pos, rot.Heading, proj.Speed*dt)

	case components.BehaviorDelayedHoming:
		if b.Elapsed < b.Delay {
			moveForward(pos, rot.Heading, proj.Speed*dt)
			return
		}
		if hasTarget {
			rot.Heading = headingTo(pos.X, pos.Y, targetX, targetY)
		}
		moveForward(pos, rot.Heading, b.HomingSpeed*dt)

	case components.BehaviorDoubleHoming:
		advanceDoubleHoming(pos, rot, proj, b, targetX, targetY, hasTarget, dt)

	case components.BehaviorSpiral:
		// Analytic in elapsed time: radius grows linearly while the polar
		// angle advances at the angular speed, anchored at the spawn origin.
		t := b.Elapsed
		theta := b.SpawnHeading + b.AngularSpeed*t
		sinT, cosT := sincos(theta)
		r := b.RadialSpeed * t
		pos.X = b.OriginX + r*cosT
		pos.Y = b.OriginY + r*sinT
		vx := b.RadialSpeed*cosT - r*b.AngularSpeed*sinT
		vy := b.RadialSpeed*sinT + r*b.AngularSpeed*cosT
		if vx != 0 || vy != 0 {
			rot.Heading = float32(math.Atan2(float64(vy), float64(vx)))
		}

	case components.BehaviorDelayedRandomTurn:
		if b.Elapsed >= b.Delay {
			rot.Heading = NormalizeAngle(rot.Heading + b.TurnRate*dt)
		}
		moveForward(pos, rot.Heading, proj.Speed*dt)
	}
}

func advanceDoubleHoming(pos *components.Position, rot *components.Rotation, proj *components.Projectile, b *components.Behavior, targetX, targetY float32, hasTarget bool, dt float32) {
	switch b.Phase {
	case components.PhaseInitialLinear:
		moveForward(pos, rot.Heading, proj.Speed*dt)
		if b.Elapsed >= b.Delay {
			b.Phase = components.PhaseFirstHoming
			b.Elapsed = 0
			// The first leg flies at a snapshot, not the live target.
			if hasTarget {
				b.SnapX = targetX
				b.SnapY = targetY
				b.HasSnap = true
			}
		}

	case components.PhaseFirstHoming:
		if b.HasSnap {
			step := b.HomingSpeed * dt
			if d := Distance(pos.X, pos.Y, b.SnapX, b.SnapY); d <= step {
				pos.X = b.SnapX
				pos.Y = b.SnapY
			} else {
				rot.Heading = headingTo(pos.X, pos.Y, b.SnapX, b.SnapY)
				moveForward(pos, rot.Heading, step)
			}
		} else {
			moveForward(pos, rot.Heading, b.HomingSpeed*dt)
		}
		if b.Elapsed >= b.FirstHomingDuration {
			b.Phase = components.PhasePause
			b.Elapsed = 0
		}

	case components.PhasePause:
		if b.Elapsed >= b.SecondPauseDelay {
			b.Phase = components.PhaseSecondHoming
			b.Elapsed = 0
			// Fix the second-leg endpoint now: look-ahead distance from
			// here toward the live target, or along the current heading
			// when the target is gone or coincident.
			h := rot.Heading
			if hasTarget && (targetX != pos.X || targetY != pos.Y) {
				h = headingTo(pos.X, pos.Y, targetX, targetY)
			}
			sinH, cosH := sincos(h)
			b.SnapX = pos.X + b.LookAhead*cosH
			b.SnapY = pos.Y + b.LookAhead*sinH
			b.HasSnap = true
			rot.Heading = h
		}

	case components.PhaseSecondHoming:
		// Move towards the fixed endpoint, clamping at arrival.
		step := b.HomingSpeed * dt
		d := Distance(pos.X, pos.Y, b.SnapX, b.SnapY)
		if d <= step {
			pos.X = b.SnapX
			pos.Y = b.SnapY
			return
		}
		rot.Heading = headingTo(pos.X, pos.Y, b.SnapX, b.SnapY)
		moveForward(pos, rot.Heading, step)

	case components.PhaseFailed:
		// Spawn-time target failure: ballistic drift until expiry.
		moveForward(pos, rot.Heading, proj.Speed*dt)
	}
}

func moveForward(pos *components.Position, heading, dist float32) {
	sinH, cosH := sincos(heading)
	pos.X += dist * cosH
	pos.Y += dist * sinH
}
