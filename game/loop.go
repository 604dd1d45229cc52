package game

import (
	"log/slog"

	"github.com/pthm-cable/flap/telemetry"
)

// Update advances the simulation by one rendered frame. The frame time is
// scaled by the speed multiplier, accumulated, and consumed in fixed steps,
// so step semantics are identical at every speed. The accumulator is capped
// to keep a stalled frame from triggering a catch-up spiral.
func (g *Game) Update(frameDT float32) {
	if !g.playing {
		return
	}

	g.accumulator += float64(frameDT) * float64(g.speed)
	if limit := g.cfg.Loop.BacklogCap * float64(g.speed); g.accumulator > limit {
		g.accumulator = limit
	}

	dt := g.cfg.Physics.DT
	for g.accumulator >= dt {
		g.accumulator -= dt
		switch g.simulationStep() {
		case stepGenerationOver:
			g.nextGeneration()
		case stepEpisodeOver:
			g.endEpisode()
			return
		}
	}
}

// endEpisode stops a manual run after the agent dies and persists a new
// high score if one was set.
func (g *Game) endEpisode() {
	g.playing = false
	g.accumulator = 0
	if g.bestScore > g.highScore {
		g.highScore = g.bestScore
		if g.highScorePath != "" {
			if err := telemetry.SaveHighScore(g.highScorePath, g.highScore); err != nil {
				slog.Warn("saving high score", "path", g.highScorePath, "error", err)
			}
		}
	}
	slog.Info("episode over", "score", g.bestScore, "high_score", g.highScore)
}
