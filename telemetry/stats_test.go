package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestComputeGenerationStats(t *testing.T) {
	fitnesses := []float64{10, 30, 20, 50, 40}
	s := ComputeGenerationStats(3, 900, 7, 12, fitnesses)

	if s.Generation != 3 || s.Steps != 900 || s.BestScore != 7 || s.ChampionID != 12 {
		t.Fatalf("identity fields not carried through: %+v", s)
	}
	if s.BestFitness != 50 {
		t.Errorf("BestFitness = %v, want 50", s.BestFitness)
	}
	if s.MeanFitness != 30 {
		t.Errorf("MeanFitness = %v, want 30", s.MeanFitness)
	}
	if s.MedianFitness != 30 {
		t.Errorf("MedianFitness = %v, want 30", s.MedianFitness)
	}
	if s.StdFitness <= 0 {
		t.Errorf("StdFitness = %v, want > 0", s.StdFitness)
	}
}

func TestComputeGenerationStatsDoesNotMutateInput(t *testing.T) {
	fitnesses := []float64{5, 1, 3}
	ComputeGenerationStats(0, 0, 0, 0, fitnesses)
	if fitnesses[0] != 5 || fitnesses[1] != 1 || fitnesses[2] != 3 {
		t.Errorf("input slice reordered: %v", fitnesses)
	}
}

func TestComputeGenerationStatsDegenerate(t *testing.T) {
	empty := ComputeGenerationStats(1, 10, 0, 0, nil)
	if empty.BestFitness != 0 || empty.MeanFitness != 0 {
		t.Errorf("empty distribution should produce zeros: %+v", empty)
	}

	single := ComputeGenerationStats(1, 10, 0, 0, []float64{42})
	if single.BestFitness != 42 || single.MeanFitness != 42 || single.MedianFitness != 42 {
		t.Errorf("single-element stats wrong: %+v", single)
	}
	if math.IsNaN(single.StdFitness) || single.StdFitness != 0 {
		t.Errorf("single-element StdFitness = %v, want 0", single.StdFitness)
	}
}

func TestOutputManagerGenerationsCSV(t *testing.T) {
	dir := t.TempDir()
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for gen := int32(0); gen < 3; gen++ {
		s := ComputeGenerationStats(gen, 100*(gen+1), gen, uint32(gen), []float64{1, 2, 3})
		if err := om.WriteGeneration(s); err != nil {
			t.Fatalf("WriteGeneration: %v", err)
		}
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "generations.csv"))
	if err != nil {
		t.Fatalf("reading generations.csv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want header + 3 rows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "generation,") {
		t.Errorf("missing header: %q", lines[0])
	}
	if strings.HasPrefix(lines[1], "generation,") || strings.HasPrefix(lines[2], "generation,") {
		t.Errorf("header repeated in data rows:\n%s", data)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil {
		t.Fatalf("NewOutputManager(\"\"): %v", err)
	}
	if om != nil {
		t.Fatal("empty dir should disable output")
	}
	// All operations are no-ops on a nil manager.
	if err := om.WriteGeneration(GenerationStats{}); err != nil {
		t.Errorf("WriteGeneration on nil manager: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Errorf("Close on nil manager: %v", err)
	}
}
