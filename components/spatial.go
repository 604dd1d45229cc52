// Package components defines ECS components for the simulation.
package components

// Position represents an entity's world position.
type Position struct {
	X, Y float32
}

// Velocity represents an entity's vertical velocity in units per step.
// Horizontal motion belongs to the world: pipes scroll, agents do not.
type Velocity struct {
	Y float32
}

// Rotation is the visual tilt derived from vertical velocity.
// Purely cosmetic; never feeds back into physics.
type Rotation struct {
	Degrees float32
}
