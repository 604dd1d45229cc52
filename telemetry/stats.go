// Package telemetry provides generation statistics, CSV output, and the
// persistence records consumed by the storage collaborator.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// GenerationStats holds the aggregated outcome of one exhausted generation.
type GenerationStats struct {
	Generation    int32   `csv:"generation"`
	Steps         int32   `csv:"steps"`
	BestScore     int32   `csv:"best_score"`
	BestFitness   float64 `csv:"best_fitness"`
	MeanFitness   float64 `csv:"mean_fitness"`
	MedianFitness float64 `csv:"median_fitness"`
	StdFitness    float64 `csv:"std_fitness"`
	ChampionID    uint32  `csv:"champion_id"`
}

// ComputeGenerationStats aggregates the fitness distribution of a finished
// generation. fitnesses may be in any order; the slice is not modified.
func ComputeGenerationStats(generation, steps, bestScore int32, championID uint32, fitnesses []float64) GenerationStats {
	s := GenerationStats{
		Generation: generation,
		Steps:      steps,
		BestScore:  bestScore,
		ChampionID: championID,
	}
	if len(fitnesses) == 0 {
		return s
	}

	sorted := make([]float64, len(fitnesses))
	copy(sorted, fitnesses)
	sort.Float64s(sorted)

	s.BestFitness = sorted[len(sorted)-1]
	s.MeanFitness = stat.Mean(sorted, nil)
	s.MedianFitness = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	if len(sorted) > 1 {
		s.StdFitness = stat.StdDev(sorted, nil)
	}
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", int(s.Generation)),
		slog.Int("steps", int(s.Steps)),
		slog.Int("best_score", int(s.BestScore)),
		slog.Float64("best_fitness", s.BestFitness),
		slog.Float64("mean_fitness", s.MeanFitness),
		slog.Float64("median_fitness", s.MedianFitness),
		slog.Float64("std_fitness", s.StdFitness),
		slog.Int("champion_id", int(s.ChampionID)),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Info("generation",
		"generation", s.Generation,
		"steps", s.Steps,
		"best_score", s.BestScore,
		"best_fitness", s.BestFitness,
		"mean_fitness", s.MeanFitness,
		"median_fitness", s.MedianFitness,
		"std_fitness", s.StdFitness,
		"champion_id", s.ChampionID,
	)
}
