package game

import "log/slog"

// TrainResult summarizes a finished headless run.
type TrainResult struct {
	Generations int32
	BestScore   int32
	BestFitness float32
}

// TrainHeadless runs population-mode evolution without a window or frame
// pacing: steps are consumed as fast as the CPU allows. The run ends after
// maxGenerations, or earlier when any agent reaches targetScore (0 disables
// the score target).
func (g *Game) TrainHeadless(maxGenerations int32, targetScore int32) TrainResult {
	result := TrainResult{}
	g.playing = true

	for g.generation < maxGenerations {
		res := g.simulationStep()

		// Checked before any generation rollover, so a target hit on the
		// extinction step itself still ends the run.
		if targetScore > 0 && g.bestScore >= targetScore {
			slog.Info("target score reached",
				"generation", g.generation, "score", g.bestScore)
			result.Generations = g.generation
			result.BestScore = g.bestScore
			result.BestFitness = g.currentBestFitness()
			g.playing = false
			return result
		}
		if res != stepGenerationOver {
			continue
		}

		if g.bestScore > result.BestScore {
			result.BestScore = g.bestScore
		}
		if best := g.currentBestFitness(); best > result.BestFitness {
			result.BestFitness = best
		}
		g.nextGeneration()
	}

	result.Generations = g.generation
	g.playing = false
	return result
}

// currentBestFitness scans the population for the highest fitness so far.
func (g *Game) currentBestFitness() float32 {
	var best float32
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, _, bird := query.Get()
		if bird.Fitness > best {
			best = bird.Fitness
		}
	}
	return best
}
