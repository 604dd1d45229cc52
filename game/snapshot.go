package game

import (
	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
)

// PipeView is the render-facing view of one obstacle.
type PipeView struct {
	X, GapTop, Width, GapHeight float32
}

// AgentView is the render-facing view of one agent.
type AgentView struct {
	X, Y, Radius float32
	RotationDeg  float32
	Score        int32
	Alive        bool
	Champion     bool
}

// FrameSnapshot is everything the renderer and UI panel need for one frame.
// Building it outside the ECS query keeps raylib calls out of world iteration.
type FrameSnapshot struct {
	Mode       Mode
	Playing    bool
	Autopilot  bool
	Speed      int
	Generation int32
	Population int
	Alive      int
	BestScore  int32
	HighScore  int32
	GroundY    float32

	Pipes  []PipeView
	Agents []AgentView
}

// Snapshot captures the current frame state for rendering.
func (g *Game) Snapshot() FrameSnapshot {
	snap := FrameSnapshot{
		Mode:       g.mode,
		Playing:    g.playing,
		Autopilot:  g.autopilot,
		Speed:      g.speed,
		Generation: g.generation,
		Alive:      g.aliveCount,
		BestScore:  g.bestScore,
		HighScore:  g.highScore,
		GroundY:    g.cfg.Derived.GroundY,
	}

	params := g.pipes.Params()
	for _, p := range g.pipes.Pipes() {
		snap.Pipes = append(snap.Pipes, PipeView{
			X:         p.X,
			GapTop:    p.GapTop,
			Width:     params.Width,
			GapHeight: params.GapHeight,
		})
	}

	query := g.birdFilter.Query()
	for query.Next() {
		pos, _, rot, bird := query.Get()
		snap.Population++
		snap.Agents = append(snap.Agents, AgentView{
			X:           pos.X,
			Y:           pos.Y,
			Radius:      g.physParams.Radius,
			RotationDeg: rot.Degrees,
			Score:       bird.Score,
			Alive:       bird.Alive,
			Champion:    bird.Champion,
		})
	}
	return snap
}

// InspectBestAlive returns the brain and current sensor inputs of the
// highest-fitness living agent, for the network diagram overlay. ok is false
// when nothing has a brain to inspect.
func (g *Game) InspectBestAlive() (brain *neural.Network, inputs [systems.NumSensorInputs]float32, ok bool) {
	var bestPos components.Position
	var bestVel components.Velocity
	var bestID uint32
	bestFitness := float32(-1)
	found := false

	query := g.birdFilter.Query()
	for query.Next() {
		pos, vel, _, bird := query.Get()
		if !bird.Alive {
			continue
		}
		if !found || bird.Fitness > bestFitness {
			bestPos, bestVel = *pos, *vel
			bestID = bird.ID
			bestFitness = bird.Fitness
			found = true
		}
	}
	if !found {
		return nil, inputs, false
	}

	if g.mode == ModeManual {
		brain = g.autopilotBrain
		if !g.autopilot {
			brain = nil
		}
	} else {
		brain = g.brains[bestID]
	}
	if brain == nil {
		return nil, inputs, false
	}

	target := g.sensorTarget()
	inputs = systems.BuildInputs(bestPos, bestVel, target, g.sensorParams)
	return brain, inputs, true
}
