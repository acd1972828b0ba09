package jumpy

import (
	"github.com/vovakirdan/jumpy-bird/internal/config"
	"github.com/vovakirdan/jumpy-bird/internal/core"
)

// Body is the player character: a hitbox at a fixed column that only moves
// vertically. Y is the center of the hitbox, positive velocity is downward.
type Body struct {
	X          float64
	Y          float64
	Velocity   float64
	HalfWidth  float64
	HalfHeight float64

	gravity      float64
	jumpImpulse  float64
	maxFallSpeed float64
}

// NewBody creates a body at rest at the configured start position.
func NewBody(cfg config.JumpyConfig) *Body {
	return &Body{
		X:            cfg.Player.X,
		Y:            cfg.Player.StartY,
		HalfWidth:    cfg.Player.HalfWidth,
		HalfHeight:   cfg.Player.HalfHeight,
		gravity:      cfg.Physics.Gravity,
		jumpImpulse:  cfg.Physics.JumpImpulse,
		maxFallSpeed: cfg.Physics.MaxFallSpeed,
	}
}

// ApplyImpulse sets the velocity to the jump constant. It replaces the
// current velocity rather than adding to it, so rapid repeated flaps never
// build up more upward speed than a single one.
func (b *Body) ApplyImpulse() {
	b.Velocity = b.jumpImpulse
}

// Tick integrates one timestep (semi-implicit Euler) and caps the fall speed
// so a low tick rate cannot tunnel the body through a thin pillar.
func (b *Body) Tick(dt float64) {
	b.Velocity += b.gravity * dt
	b.Y += b.Velocity * dt
	if b.Velocity > b.maxFallSpeed {
		b.Velocity = b.maxFallSpeed
	}
}

// Box returns the hitbox in world units.
func (b *Body) Box() core.Box {
	return core.BoxAround(b.X, b.Y, b.HalfWidth, b.HalfHeight)
}

// Tilt returns a display angle in degrees derived from velocity:
// nose up while rising, diving as the fall speeds up. Never used for collision.
func (b *Body) Tilt() float64 {
	if b.maxFallSpeed <= 0 {
		return 0
	}
	return core.ClampF(b.Velocity/b.maxFallSpeed*90, -30, 90)
}
