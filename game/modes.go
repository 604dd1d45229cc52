package game

import (
	"log/slog"

	"github.com/pthm-cable/flap/telemetry"
)

// Reset discards the current run and starts fresh in the given mode: agents
// respawned with new random brains, obstacles cleared, counters zeroed. The
// all-time high score survives.
func (g *Game) Reset(mode Mode) {
	g.mode = mode
	g.generation = 0

	g.clearAgents()
	g.pipes.Reset()
	g.bestScore = 0
	g.stepsThisGen = 0
	g.accumulator = 0
	g.pendingFlap = false

	// Accelerated time only applies to population training.
	if mode == ModeManual {
		g.speedIdx = 0
		g.speed = 1
		if len(g.cfg.Loop.SpeedMultipliers) > 0 {
			g.speed = g.cfg.Loop.SpeedMultipliers[0]
		}
	}
	g.spawnForMode()
}

// SetMode switches control modes, resetting the run.
func (g *Game) SetMode(mode Mode) {
	if mode == g.mode {
		return
	}
	g.Reset(mode)
	g.playing = false
	slog.Info("mode switched", "mode", mode.String())
}

// TogglePlay starts or pauses the simulation.
func (g *Game) TogglePlay() {
	if !g.playing && !g.canResume() {
		return
	}
	g.playing = !g.playing
}

// Play starts the simulation.
func (g *Game) Play() {
	if !g.canResume() {
		return
	}
	g.playing = true
}

// canResume reports whether the current run may be (re)started. A finished
// manual episode stays down until an explicit reset; resuming it would
// scroll the world with nothing left to control.
func (g *Game) canResume() bool {
	return !(g.mode == ModeManual && g.aliveCount == 0)
}

// Flap queues a manual jump for the next simulation step.
func (g *Game) Flap() {
	if g.mode == ModeManual && !g.autopilot {
		g.pendingFlap = true
	}
}

// ToggleAutopilot hands the manual agent to the persisted champion brain and
// back. The brain is loaded lazily on first use; a missing or corrupt file
// falls back to a fresh random controller.
func (g *Game) ToggleAutopilot() {
	if g.mode != ModeManual {
		return
	}
	g.autopilot = !g.autopilot
	if g.autopilot && g.autopilotBrain == nil {
		g.autopilotBrain = telemetry.LoadBrainOrNew(
			g.brainPath,
			g.cfg.Neural.NumInputs,
			g.cfg.Neural.NumHidden,
			g.cfg.Neural.NumOutputs,
			g.rng,
		)
	}
}

// StopAndSave halts a population run mid-generation and persists the best
// surviving agent's brain, so a promising run can be captured without waiting
// for extinction.
func (g *Game) StopAndSave() {
	if g.mode != ModePopulation {
		return
	}
	g.playing = false

	ranked := g.collectRanked()
	best := g.bestAlive(ranked)
	if best == nil {
		slog.Info("stop requested with no survivors, nothing saved")
		return
	}
	if g.brainPath != "" {
		if err := telemetry.SaveBrain(g.brainPath, best.brain, best.score); err != nil {
			slog.Warn("saving brain", "path", g.brainPath, "error", err)
			return
		}
	}
	// Saved brain replaces any previously loaded autopilot controller.
	g.autopilotBrain = best.brain.Clone()
	slog.Info("run stopped and best brain saved", "score", best.score, "fitness", best.fitness)
}

// bestAlive returns the best-ranked agent that is still alive, or nil.
func (g *Game) bestAlive(ranked []rankedAgent) *rankedAgent {
	aliveIDs := make(map[uint32]bool, g.aliveCount)
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, _, bird := query.Get()
		if bird.Alive {
			aliveIDs[bird.ID] = true
		}
	}
	for i := range ranked {
		if aliveIDs[ranked[i].id] {
			return &ranked[i]
		}
	}
	return nil
}

// CycleSpeed advances to the next configured speed multiplier, wrapping.
// Accelerated time is a training control and has no meaning in manual play.
func (g *Game) CycleSpeed() {
	multipliers := g.cfg.Loop.SpeedMultipliers
	if g.mode != ModePopulation || len(multipliers) == 0 {
		return
	}
	g.speedIdx = (g.speedIdx + 1) % len(multipliers)
	g.speed = multipliers[g.speedIdx]
}

// SetSpeedIndex selects a configured speed multiplier by index.
func (g *Game) SetSpeedIndex(idx int) {
	multipliers := g.cfg.Loop.SpeedMultipliers
	if g.mode != ModePopulation || idx < 0 || idx >= len(multipliers) {
		return
	}
	g.speedIdx = idx
	g.speed = multipliers[idx]
}
