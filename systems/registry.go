package systems

// SystemInfo describes a simulation phase for logging and perf tracking.
type SystemInfo struct {
	ID          string // Internal identifier (used for perf tracking)
	Name        string // Display name
	Description string // What this phase does
	Category    string // Grouping (e.g., "core", "scheduling")
}

// SystemRegistry holds metadata about all simulation phases.
// This centralizes phase naming so logs and the perf tracker stay in sync.
type SystemRegistry struct {
	systems []SystemInfo
	byID    map[string]SystemInfo
}

// NewSystemRegistry creates a registry with all known phases.
func NewSystemRegistry() *SystemRegistry {
	reg := &SystemRegistry{
		byID: make(map[string]SystemInfo),
	}
	reg.registerDefaults()
	return reg
}

// registerDefaults adds all known phases to the registry.
// Update this when adding new phases.
func (r *SystemRegistry) registerDefaults() {
	r.Register(SystemInfo{ID: "targets", Name: "Targets", Description: "Advances scripted target movement", Category: "core"})
	r.Register(SystemInfo{ID: "orchestrator", Name: "Orchestrator", Description: "Runs caster move/attack cycles", Category: "scheduling"})
	r.Register(SystemInfo{ID: "scheduler", Name: "Scheduler", Description: "Fires due action spawns", Category: "scheduling"})
	r.Register(SystemInfo{ID: "movement", Name: "Movement", Description: "Applies pattern-scoped caster moves", Category: "core"})
	r.Register(SystemInfo{ID: "behavior", Name: "Behavior", Description: "Steps projectile state machines", Category: "core"})
	r.Register(SystemInfo{ID: "lifetime", Name: "Lifetime", Description: "Expires and recycles projectiles", Category: "core"})
	r.Register(SystemInfo{ID: "telemetry", Name: "Telemetry", Description: "Flushes window statistics", Category: "internal"})
}

// Register adds a phase to the registry.
func (r *SystemRegistry) Register(info SystemInfo) {
	r.systems = append(r.systems, info)
	r.byID[info.ID] = info
}

// Get returns phase info by ID.
func (r *SystemRegistry) Get(id string) (SystemInfo, bool) {
	info, ok := r.byID[id]
	return info, ok
}

// GetName returns the display name for a phase ID.
// Falls back to the ID itself if not found.
func (r *SystemRegistry) GetName(id string) string {
	if info, ok := r.byID[id]; ok {
		return info.Name
	}
	return id
}

// All returns all registered phases.
func (r *SystemRegistry) All() []SystemInfo {
	return r.systems
}

// IDs returns all phase IDs in registration order.
func (r *SystemRegistry) IDs() []string {
	ids := make([]string, len(r.systems))
	for i, info := range r.systems {
		ids[i] = info.ID
	}
	return ids
}
