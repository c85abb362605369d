package systems

import (
	"math"

	"github.com/pthm-cable/barrage/components"
)

// SpawnSpec is one generated spawn slot: a world position, an initial
// heading, and an additive per-slot speed bonus.
type SpawnSpec struct {
	X, Y       float32
	Heading    float32
	SpeedBonus float32
}

// FormationParams describes a spawn geometry relative to an origin.
// The offset is expressed in the origin's local frame and rotated by the
// origin heading before use.
type FormationParams struct {
	Shape        components.ShapeKind
	Count        int
	OffsetX      float32
	OffsetY      float32
	Radius       float32 // circle
	Spacing      float32 // line, distance between adjacent slots
	Angle        float32 // extra rotation on top of the origin heading
	SpeedStep    float32 // per-index additive speed bonus
	SkipEveryNth int     // omit every Nth slot (1-based), 0 disables
}

// Generate produces spawn slots for a formation anchored at the origin.
// Slots are generated in index order, then every Nth one (counting from 1)
// is filtered out when SkipEveryNth > 0. Returns nil for an empty or
// unknown formation.
func Generate(originX, originY, originHeading float32, p FormationParams) []SpawnSpec {
	if p.Count <= 0 {
		return nil
	}

	sinH, cosH := sincos(originHeading)
	baseX := originX + p.OffsetX*cosH - p.OffsetY*sinH
	baseY := originY + p.OffsetX*sinH + p.OffsetY*cosH
	heading := originHeading + p.Angle

	var specs []SpawnSpec
	switch p.Shape {
	case components.ShapePoint:
		specs = make([]SpawnSpec, p.Count)
		for i := range specs {
			specs[i] = SpawnSpec{
				X:          baseX,
				Y:          baseY,
				Heading:    heading,
				SpeedBonus: float32(i) * p.SpeedStep,
			}
		}

	case components.ShapeCircle:
		// Slots ring the base point; every slot keeps the formation
		// heading rather than pointing outward.
		specs = make([]SpawnSpec, p.Count)
		step := 2 * math.Pi / float64(p.Count)
		for i := range specs {
			theta := heading + float32(float64(i)*step)
			sinT, cosT := sincos(theta)
			specs[i] = SpawnSpec{
				X:          baseX + p.Radius*cosT,
				Y:          baseY + p.Radius*sinT,
				Heading:    heading,
				SpeedBonus: float32(i) * p.SpeedStep,
			}
		}

	case components.ShapeLine:
		// Slots are laid out along the axis perpendicular to the heading,
		// centered on the base point.
		specs = make([]SpawnSpec, p.Count)
		axis := heading + math.Pi/2
		sinA, cosA := sincos(axis)
		half := float32(p.Count-1) / 2
		for i := range specs {
			d := (float32(i) - half) * p.Spacing
			specs[i] = SpawnSpec{
				X:          baseX + d*cosA,
				Y:          baseY + d*sinA,
				Heading:    heading,
				SpeedBonus: float32(i) * p.SpeedStep,
			}
		}

	default:
		return nil
	}

	if p.SkipEveryNth > 0 {
		kept := specs[:0]
		for i, s := range specs {
			if (i+1)%p.SkipEveryNth == 0 {
				continue
			}
			kept = append(kept, s)
		}
		specs = kept
	}
	return specs
}

// GeneratedCount returns how many slots Generate will emit for a count
// and skip setting, without building them.
func GeneratedCount(count, skipEveryNth int) int {
	if count <= 0 {
		return 0
	}
	if skipEveryNth <= 0 {
		return count
	}
	return count - count/skipEveryNth
}
