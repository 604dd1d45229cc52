package game

import (
	"log/slog"
	"sort"

	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/telemetry"
)

// rankedAgent pairs an agent's final standing with its brain.
type rankedAgent struct {
	id      uint32
	score   int32
	fitness float32
	brain   *neural.Network
}

// nextGeneration ranks the extinct population, records its telemetry, and
// breeds the replacement population from the top performers.
func (g *Game) nextGeneration() {
	ranked := g.collectRanked()
	if len(ranked) == 0 {
		return
	}
	champion := ranked[0]

	fitnesses := make([]float64, len(ranked))
	for i, r := range ranked {
		fitnesses[i] = float64(r.fitness)
	}
	stats := telemetry.ComputeGenerationStats(
		g.generation, g.stepsThisGen, g.bestScore, champion.id, fitnesses)
	if g.cfg.Telemetry.LogStats {
		stats.LogStats()
	}
	if err := g.output.WriteGeneration(stats); err != nil {
		slog.Warn("writing generation stats", "error", err)
	}

	g.persistChampion(champion)
	g.breed(ranked)

	g.pipes.Reset()
	g.bestScore = 0
	g.stepsThisGen = 0
	g.generation++
}

// collectRanked gathers every agent's brain and fitness, best first. Ties
// keep their iteration order so the carried champion stays deterministic.
func (g *Game) collectRanked() []rankedAgent {
	var ranked []rankedAgent
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, _, bird := query.Get()
		brain, ok := g.brains[bird.ID]
		if !ok {
			continue
		}
		ranked = append(ranked, rankedAgent{
			id:      bird.ID,
			score:   bird.Score,
			fitness: bird.Fitness,
			brain:   brain,
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].fitness > ranked[j].fitness
	})
	return ranked
}

// persistChampion saves the generation's best brain and, when the score beat
// the all-time record, the new high score.
func (g *Game) persistChampion(champion rankedAgent) {
	if g.brainPath != "" {
		if err := telemetry.SaveBrain(g.brainPath, champion.brain, champion.score); err != nil {
			slog.Warn("saving champion brain", "path", g.brainPath, "error", err)
		}
	}
	if g.bestScore > g.highScore {
		g.highScore = g.bestScore
		if g.highScorePath != "" {
			if err := telemetry.SaveHighScore(g.highScorePath, g.highScore); err != nil {
				slog.Warn("saving high score", "path", g.highScorePath, "error", err)
			}
		}
	}
}

// breed replaces the population: the champion survives unchanged, and the
// remaining slots are mutated clones of the top parents in round-robin order.
func (g *Game) breed(ranked []rankedAgent) {
	numParents := g.cfg.Population.EliteParents
	if numParents > len(ranked) {
		numParents = len(ranked)
	}
	parents := make([]*neural.Network, numParents)
	for i := range parents {
		parents[i] = ranked[i].brain.Clone()
	}
	champion := ranked[0].brain.Clone()

	rate := float32(g.cfg.Mutation.Rate)
	drift := float32(g.cfg.Mutation.Drift)
	jump := float32(g.cfg.Mutation.Jump)
	jumpProb := float32(g.cfg.Mutation.JumpProb)

	g.clearAgents()
	g.spawnAgent(champion, true)
	for i := 1; i < g.cfg.Population.Size; i++ {
		child := parents[(i-1)%len(parents)].Clone()
		child.Mutate(g.rng, rate, drift, jump, jumpProb)
		g.spawnAgent(child, false)
	}
}
