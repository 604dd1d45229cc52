package systems

import (
	"github.com/pthm-cable/flap/components"
)

// NumSensorInputs is the size of the controller input vector.
const NumSensorInputs = 4

// SensorParams holds the normalization constants for sensing.
type SensorParams struct {
	WorldWidth    float32
	WorldHeight   float32
	VelocityRange float32 // velocities in [-range, +range] map onto [0, 1]
}

// BuildInputs assembles the controller input vector. Order is fixed:
// {normalized y, normalized velocity, normalized horizontal distance to the
// target's trailing edge, normalized vertical offset to the gap center}.
// Values are intended to lie approximately in [0, 1] but are not clamped.
func BuildInputs(pos components.Position, vel components.Velocity, target SensorTarget, p SensorParams) [NumSensorInputs]float32 {
	return [NumSensorInputs]float32{
		pos.Y / p.WorldHeight,
		(vel.Y + p.VelocityRange) / (2 * p.VelocityRange),
		(target.TrailingX - pos.X) / p.WorldWidth,
		(target.GapCenterY-pos.Y)/p.WorldHeight + 0.5,
	}
}
