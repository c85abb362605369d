package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/barrage/components"
)

// TargetResolver resolves role names to live world positions.
type TargetResolver interface {
	Resolve(role string) (x, y float32, ok bool)
}

// roleTable maps role names to entities and reads their live positions.
// Stale bindings are cleared on first failed lookup.
type roleTable struct {
	world  *ecs.World
	posMap *ecs.Map1[components.Position]
	roles  map[string]ecs.Entity
}

func newRoleTable(world *ecs.World, posMap *ecs.Map1[components.Position]) *roleTable {
	return &roleTable{
		world:  world,
		posMap: posMap,
		roles:  make(map[string]ecs.Entity),
	}
}

// Set binds a role to an entity, replacing any previous binding.
func (t *roleTable) Set(role string, e ecs.Entity) {
	t.roles[role] = e
}

// Clear removes a role binding.
func (t *roleTable) Clear(role string) {
	delete(t.roles, role)
}

// Resolve returns the bound entity's position, or ok=false when the role
// is unbound or its entity no longer exists.
func (t *roleTable) Resolve(role string) (float32, float32, bool) {
	e, ok := t.roles[role]
	if !ok {
		return 0, 0, false
	}
	if !t.world.Alive(e) {
		delete(t.roles, role)
		return 0, 0, false
	}
	pos := t.posMap.Get(e)
	if pos == nil {
		return 0, 0, false
	}
	return pos.X, pos.Y, true
}
