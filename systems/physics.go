package systems

import (
	"github.com/pthm-cable/flap/components"
)

// PhysicsParams holds the per-step physics tunables.
type PhysicsParams struct {
	Gravity        float32 // velocity gain per step, downward positive
	JumpVelocity   float32 // velocity set by a flap, negative for upward
	MaxRotationDeg float32
	RotationFactor float32 // degrees of tilt per unit of velocity
	GroundY        float32 // floor line; ground contact kills
	Radius         float32 // agent body radius
}

// Flap applies the jump impulse: velocity is set, not accumulated.
func Flap(vel *components.Velocity, p PhysicsParams) {
	vel.Y = p.JumpVelocity
}

// Integrate applies gravity and advances the vertical position, then derives
// the cosmetic tilt from the new velocity, clamped to the rotation limit.
func Integrate(pos *components.Position, vel *components.Velocity, rot *components.Rotation, p PhysicsParams) {
	vel.Y += p.Gravity
	pos.Y += vel.Y

	deg := vel.Y * p.RotationFactor
	if deg > p.MaxRotationDeg {
		deg = p.MaxRotationDeg
	} else if deg < -p.MaxRotationDeg {
		deg = -p.MaxRotationDeg
	}
	rot.Degrees = deg
}

// CollideBounds resolves ground and ceiling contact. Ground contact
// (y+radius at or past the floor) kills. Ceiling contact clamps position to
// the boundary and zeroes velocity but is survivable.
func CollideBounds(pos *components.Position, vel *components.Velocity, p PhysicsParams) (dead bool) {
	if pos.Y+p.Radius >= p.GroundY {
		return true
	}
	if pos.Y-p.Radius <= 0 {
		pos.Y = p.Radius
		vel.Y = 0
	}
	return false
}

// CollidePipes reports whether the agent at pos overlaps any pipe while its
// vertical extent falls outside that pipe's gap. Exactly touching a gap edge
// is survivable: kills require the extent to exceed the gap strictly.
func CollidePipes(pos components.Position, radius float32, pipes []Pipe, pp PipeParams) bool {
	for i := range pipes {
		p := &pipes[i]
		if pos.X+radius <= p.X || pos.X-radius >= p.X+pp.Width {
			continue // no horizontal overlap
		}
		if pos.Y-radius < p.GapTop || pos.Y+radius > p.GapTop+pp.GapHeight {
			return true
		}
	}
	return false
}
