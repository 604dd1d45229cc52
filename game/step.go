package game

import (
	"github.com/pthm-cable/flap/systems"
)

// stepResult reports what a single simulation step concluded.
type stepResult int

const (
	stepRunning stepResult = iota
	stepEpisodeOver
	stepGenerationOver
)

// simulationStep runs a single fixed tick: sense, decide, integrate, collide,
// scroll the world, and score.
func (g *Game) simulationStep() stepResult {
	refX := float32(g.cfg.Bird.X)
	target := g.sensorTarget()
	threshold := float32(g.cfg.Neural.DecisionThreshold)
	scoreWeight := float32(g.cfg.Population.ScoreWeight)
	pipeSpeed := g.pipes.Params().Speed
	pipes := g.pipes.Pipes()
	pipeParams := g.pipes.Params()

	wantFlap := g.pendingFlap
	g.pendingFlap = false

	query := g.birdFilter.Query()
	for query.Next() {
		pos, vel, rot, bird := query.Get()
		if !bird.Alive {
			continue
		}

		// Survival accrues before the step that may end it.
		bird.Distance += pipeSpeed
		bird.Fitness = bird.Distance + float32(bird.Score)*scoreWeight

		switch {
		case g.mode == ModeManual && g.autopilot:
			inputs := systems.BuildInputs(*pos, *vel, target, g.sensorParams)
			if g.autopilotBrain.Predict(inputs[:])[0] > threshold {
				systems.Flap(vel, g.physParams)
			}
		case g.mode == ModeManual:
			if wantFlap {
				systems.Flap(vel, g.physParams)
			}
		default:
			if brain, ok := g.brains[bird.ID]; ok {
				inputs := systems.BuildInputs(*pos, *vel, target, g.sensorParams)
				if brain.Predict(inputs[:])[0] > threshold {
					systems.Flap(vel, g.physParams)
				}
			}
		}

		systems.Integrate(pos, vel, rot, g.physParams)

		dead := systems.CollideBounds(pos, vel, g.physParams)
		if !dead {
			dead = systems.CollidePipes(*pos, g.physParams.Radius, pipes, pipeParams)
		}
		if dead {
			bird.Alive = false
			g.aliveCount--
		}
	}

	g.pipes.Step()

	if passed := g.pipes.ScorePassed(refX); passed > 0 {
		query := g.birdFilter.Query()
		for query.Next() {
			_, _, _, bird := query.Get()
			if !bird.Alive {
				continue
			}
			bird.Score += passed
			bird.Fitness = bird.Distance + float32(bird.Score)*scoreWeight
			if bird.Score > g.bestScore {
				g.bestScore = bird.Score
			}
			if g.mode == ModeManual && g.scoreHook != nil {
				g.scoreHook(bird.Score)
			}
		}
	}

	g.tick++
	g.stepsThisGen++

	if g.aliveCount == 0 {
		if g.mode == ModeManual {
			return stepEpisodeOver
		}
		return stepGenerationOver
	}
	return stepRunning
}

// sensorTarget selects the obstacle fed to the controllers. Sensing leads
// scoring by the agent radius: a pipe stops being the target once the leading
// edge clears its trailing edge, while a pass is only credited when the
// center crosses it.
func (g *Game) sensorTarget() systems.SensorTarget {
	return g.pipes.Target(float32(g.cfg.Bird.X) + g.physParams.Radius)
}
