package game

import (
	"testing"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
)

func runToExtinction(t *testing.T, g *Game) {
	t.Helper()
	for steps := 0; ; steps++ {
		if g.simulationStep() == stepGenerationOver {
			return
		}
		if steps > 200000 {
			t.Fatal("generation never ended")
		}
	}
}

func sameParams(a, b *neural.Network) bool {
	for i := range a.W1 {
		for j := range a.W1[i] {
			if a.W1[i][j] != b.W1[i][j] {
				return false
			}
		}
		if a.B1[i] != b.B1[i] {
			return false
		}
	}
	for i := range a.W2 {
		for j := range a.W2[i] {
			if a.W2[i][j] != b.W2[i][j] {
				return false
			}
		}
		if a.B2[i] != b.B2[i] {
			return false
		}
	}
	return true
}

func TestNextGenerationInvariants(t *testing.T) {
	g := newTestGame(t, Options{Seed: 11, Headless: true, Mode: ModePopulation})
	runToExtinction(t, g)

	ranked := g.collectRanked()
	bestBrain := ranked[0].brain.Clone()
	for _, r := range ranked[1:] {
		if r.fitness > ranked[0].fitness {
			t.Fatal("ranking not sorted best first")
		}
	}

	g.nextGeneration()

	size := config.Cfg().Population.Size
	if g.AliveCount() != size {
		t.Fatalf("population = %d, want %d", g.AliveCount(), size)
	}
	if len(g.brains) != size {
		t.Fatalf("brains = %d, want %d", len(g.brains), size)
	}

	champions := 0
	var championID uint32
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, _, bird := query.Get()
		if bird.Champion {
			champions++
			championID = bird.ID
		}
		if !bird.Alive || bird.Score != 0 || bird.Distance != 0 || bird.Fitness != 0 {
			t.Fatalf("agent %d not reset: %+v", bird.ID, *bird)
		}
	}
	if champions != 1 {
		t.Fatalf("champions = %d, want exactly 1", champions)
	}

	// The carried champion keeps the previous best parameters untouched.
	if !sameParams(g.brains[championID], bestBrain) {
		t.Fatal("champion parameters mutated across generations")
	}
}

func TestMutatedOffspringDifferFromParents(t *testing.T) {
	g := newTestGame(t, Options{Seed: 13, Headless: true, Mode: ModePopulation})
	runToExtinction(t, g)

	parents := make([]*neural.Network, 0, config.Cfg().Population.EliteParents)
	for _, r := range g.collectRanked()[:config.Cfg().Population.EliteParents] {
		parents = append(parents, r.brain.Clone())
	}
	g.nextGeneration()

	// With a 10% per-parameter rate across 49 offspring and 37 parameters
	// each, at least one child must differ from every parent.
	changed := false
	for _, brain := range g.brains {
		differs := true
		for _, p := range parents {
			if sameParams(brain, p) {
				differs = false
				break
			}
		}
		if differs {
			changed = true
			break
		}
	}
	if !changed {
		t.Fatal("no offspring differed from the parents")
	}
}

func TestRankingScoreDominatesDistance(t *testing.T) {
	g := newTestGame(t, Options{Seed: 23, Headless: true, Mode: ModePopulation})

	weight := float32(g.cfg.Population.ScoreWeight)
	// Survival records cycled over the population: a long scoreless glide
	// never outranks a single pass, and equal scores fall back to distance.
	records := []struct {
		score    int32
		distance float32
	}{
		{0, 4500},
		{1, 0},
		{1, 120},
		{2, 30},
	}
	idx := 0
	query := g.birdFilter.Query()
	for query.Next() {
		_, _, _, bird := query.Get()
		r := records[idx%len(records)]
		bird.Score = r.score
		bird.Distance = r.distance
		bird.Fitness = r.distance + float32(r.score)*weight
		idx++
	}

	ranked := g.collectRanked()
	for i := 1; i < len(ranked); i++ {
		prev, cur := ranked[i-1], ranked[i]
		if cur.score > prev.score {
			t.Fatalf("rank %d: score %d placed above score %d", i, prev.score, cur.score)
		}
		if cur.score == prev.score && cur.fitness > prev.fitness {
			t.Fatalf("rank %d: equal score but shorter survival ranked higher", i)
		}
	}
	if ranked[0].score != 2 {
		t.Fatalf("top rank score = %d, want 2", ranked[0].score)
	}
	if bottom := ranked[len(ranked)-1]; bottom.score != 0 {
		t.Fatalf("bottom rank score = %d, want the scoreless glider", bottom.score)
	}
}

func TestHeadlessTargetMetOnExtinctionStep(t *testing.T) {
	g := newTestGame(t, Options{Seed: 19, Headless: true, Mode: ModePopulation})

	// Every agent starts on the ground so the whole generation dies on the
	// first step, with the best score already at the target.
	query := g.birdFilter.Query()
	for query.Next() {
		pos, _, _, _ := query.Get()
		pos.Y = g.cfg.Derived.GroundY
	}
	g.bestScore = 3

	result := g.TrainHeadless(5, 3)
	if result.Generations != 0 {
		t.Fatalf("generations = %d, want 0 when the target falls on the extinction step", result.Generations)
	}
	if result.BestScore != 3 {
		t.Fatalf("best score = %d, want 3", result.BestScore)
	}
	if g.Generation() != 0 {
		t.Fatalf("training rolled over to generation %d", g.Generation())
	}
}

func TestHeadlessTraining(t *testing.T) {
	g := newTestGame(t, Options{Seed: 17, Headless: true, Mode: ModePopulation})

	result := g.TrainHeadless(3, 0)
	if g.Generation() != 3 {
		t.Fatalf("generation = %d, want 3", g.Generation())
	}
	if result.Generations != 3 {
		t.Fatalf("result generations = %d, want 3", result.Generations)
	}
	if result.BestFitness <= 0 {
		t.Fatalf("best fitness = %v, want > 0", result.BestFitness)
	}
	if g.Playing() {
		t.Error("still playing after headless run")
	}
}
