package systems

import (
	"testing"

	"github.com/pthm-cable/flap/components"
)

func testSensorParams() SensorParams {
	return SensorParams{WorldWidth: 900, WorldHeight: 512, VelocityRange: 10}
}

func TestBuildInputsOrderAndValues(t *testing.T) {
	p := testSensorParams()
	pos := components.Position{X: 80, Y: 256}
	vel := components.Velocity{Y: 0}
	target := SensorTarget{TrailingX: 530, GapCenterY: 256}

	in := BuildInputs(pos, vel, target, p)

	if in[0] != 256.0/512.0 {
		t.Errorf("input 0 (normalized y): got %v, want 0.5", in[0])
	}
	if in[1] != 0.5 {
		t.Errorf("input 1 (normalized velocity at rest): got %v, want 0.5", in[1])
	}
	if in[2] != 450.0/900.0 {
		t.Errorf("input 2 (normalized distance): got %v, want 0.5", in[2])
	}
	if in[3] != 0.5 {
		t.Errorf("input 3 (gap offset, aligned): got %v, want 0.5", in[3])
	}
}

func TestBuildInputsVelocityMapping(t *testing.T) {
	p := testSensorParams()
	pos := components.Position{X: 80, Y: 100}
	target := SensorTarget{TrailingX: 500, GapCenterY: 250}

	// Extremes of the symmetric range map to 0 and 1.
	in := BuildInputs(pos, components.Velocity{Y: -p.VelocityRange}, target, p)
	if in[1] != 0 {
		t.Errorf("velocity -range: got %v, want 0", in[1])
	}
	in = BuildInputs(pos, components.Velocity{Y: p.VelocityRange}, target, p)
	if in[1] != 1 {
		t.Errorf("velocity +range: got %v, want 1", in[1])
	}
}

func TestBuildInputsGapOffsetDirection(t *testing.T) {
	p := testSensorParams()
	pos := components.Position{X: 80, Y: 256}
	vel := components.Velocity{}

	// Gap below the agent pushes the offset above 0.5, gap above below 0.5.
	below := BuildInputs(pos, vel, SensorTarget{TrailingX: 500, GapCenterY: 400}, p)
	above := BuildInputs(pos, vel, SensorTarget{TrailingX: 500, GapCenterY: 100}, p)
	if below[3] <= 0.5 {
		t.Errorf("gap below agent: offset %v, want > 0.5", below[3])
	}
	if above[3] >= 0.5 {
		t.Errorf("gap above agent: offset %v, want < 0.5", above[3])
	}
}

func TestBuildInputsSyntheticTargetWellDefined(t *testing.T) {
	p := testSensorParams()
	pos := components.Position{X: 80, Y: 256}
	vel := components.Velocity{}
	target := SensorTarget{TrailingX: p.WorldWidth, GapCenterY: p.WorldHeight / 2, Synthetic: true}

	in := BuildInputs(pos, vel, target, p)
	for i, v := range in {
		if v != v { // NaN guard
			t.Fatalf("input %d is NaN for synthetic target", i)
		}
		if v < -0.5 || v > 1.5 {
			t.Errorf("input %d far outside expected band: %v", i, v)
		}
	}
}
