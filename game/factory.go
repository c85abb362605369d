package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
)

// SpawnRequest carries everything needed to create one projectile.
type SpawnRequest struct {
	X, Y    float32
	Heading float32

	Kind            uint8
	BaseSpeed       float32
	InitialSpeed    float32 // 0 = start at BaseSpeed
	SpeedTransition float32 // seconds, 0 = no launch ramp
	Lifetime        float32

	Behavior components.Behavior
}

// SpawnProjectile creates a projectile entity from a spawn request.
func (g *Game) SpawnProjectile(req SpawnRequest) ecs.Entity {
	g.nextID++

	initial := req.InitialSpeed
	if req.SpeedTransition <= 0 || initial <= 0 {
		initial = req.BaseSpeed
	}

	pos := components.Position{X: req.X, Y: req.Y}
	rot := components.Rotation{Heading: req.Heading}
	proj := components.Projectile{
		ID:              g.nextID,
		Kind:            req.Kind,
		Speed:           initial,
		BaseSpeed:       req.BaseSpeed,
		InitialSpeed:    initial,
		SpeedTransition: req.SpeedTransition,
		Lifetime:        req.Lifetime,
		Alive:           true,
	}
	b := req.Behavior

	e := g.projectileMapper.NewEntity(&pos, &rot, &proj, &b)
	g.liveProjectiles++
	g.collector.RecordSpawn()
	return e
}
