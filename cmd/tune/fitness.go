package main

import (
	"sync"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
)

// FitnessEvaluator scores a hyperparameter vector by running headless
// training with several seeds and averaging the best fitness reached.
type FitnessEvaluator struct {
	params      *ParamVector
	generations int32
	seeds       []int64
	configPath  string

	mu          sync.Mutex
	bestFitness float64
	lastScore   float64
}

// NewFitnessEvaluator creates an evaluator running the given seeds per candidate.
func NewFitnessEvaluator(params *ParamVector, generations int32, seeds []int64, configPath string) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:      params,
		generations: generations,
		seeds:       seeds,
		configPath:  configPath,
		bestFitness: 1e18,
	}
}

// LastScore returns the mean best game score of the most recent evaluation.
func (fe *FitnessEvaluator) LastScore() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastScore
}

// Evaluate runs all seeds in parallel and returns the mean negated best
// fitness, so the minimizer favors stronger populations.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]game.TrainResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			results[idx] = fe.runTraining(x, s)
		}(i, seed)
	}
	wg.Wait()

	var totalFitness, totalScore float64
	for _, r := range results {
		totalFitness += float64(r.BestFitness)
		totalScore += float64(r.BestScore)
	}
	n := float64(len(fe.seeds))
	avgFitness := -totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
	}
	fe.lastScore = totalScore / n
	fe.mu.Unlock()

	return avgFitness
}

// runTraining executes one headless training run with candidate parameters.
func (fe *FitnessEvaluator) runTraining(x []float64, seed int64) game.TrainResult {
	cfg := fe.copyConfig()
	fe.params.ApplyToConfig(cfg, x)

	// Candidate runs must not clobber the real persisted brain.
	cfg.Persistence.BrainPath = ""
	cfg.Persistence.HighScorePath = ""

	g, err := game.NewGame(game.Options{
		Seed:     seed,
		Headless: true,
		Mode:     game.ModePopulation,
		Config:   cfg,
	})
	if err != nil {
		return game.TrainResult{}
	}
	return g.TrainHeadless(fe.generations, 0)
}

// copyConfig creates a fresh config from the base file.
func (fe *FitnessEvaluator) copyConfig() *config.Config {
	cfg, _ := config.Load(fe.configPath)
	return cfg
}
