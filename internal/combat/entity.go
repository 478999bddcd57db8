package combat

import "github.com/vovakirdan/hex-skirmish/internal/hexgrid"

// Entity is the capability surface every combat participant implements.
// The engine never depends on a concrete participant type.
type Entity interface {
	// Position returns the live world-space position.
	Position() hexgrid.Vec3
	SetPosition(pos hexgrid.Vec3)

	// Facing is a yaw angle in radians; 0 faces +Z.
	Facing() float64
	SetFacing(angle float64)

	// SetExternalControl suppresses the entity's own autonomous behavior
	// while the engine drives it.
	SetExternalControl(on bool)
}

// HealthSink is implemented by entities that mirror combat health.
type HealthSink interface {
	SetHealth(current, max float64)
}

// Animator is implemented by entities with an attack animation hook.
type Animator interface {
	PlayAttack()
}

// Hideable is implemented by entities whose visual can be hidden.
type Hideable interface {
	SetVisible(visible bool)
}
