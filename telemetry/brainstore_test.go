package telemetry

import (
	"math/rand"
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/flap/neural"
)

func TestBrainRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	original := neural.New(4, 6, 1, rng)
	path := filepath.Join(t.TempDir(), "brain.json")

	if err := SaveBrain(path, original, 17); err != nil {
		t.Fatalf("SaveBrain: %v", err)
	}
	restored, err := LoadBrain(path)
	if err != nil {
		t.Fatalf("LoadBrain: %v", err)
	}

	inputs := []float32{0.5, 0.25, 0.8, 0.1}
	want := original.Predict(inputs)[0]
	got := restored.Predict(inputs)[0]
	if got != want {
		t.Errorf("restored prediction = %v, want %v", got, want)
	}
}

func TestLoadBrainOrNewFallback(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	// Missing file.
	n := LoadBrainOrNew(filepath.Join(t.TempDir(), "missing.json"), 4, 6, 1, rng)
	if n == nil {
		t.Fatal("expected fresh network for missing file")
	}
	if n.NumInputs != 4 || n.NumHidden != 6 || n.NumOutputs != 1 {
		t.Errorf("fresh network has wrong topology: %d/%d/%d", n.NumInputs, n.NumHidden, n.NumOutputs)
	}

	// Corrupt file.
	path := filepath.Join(t.TempDir(), "corrupt.json")
	if err := os.WriteFile(path, []byte("{not json"), 0644); err != nil {
		t.Fatal(err)
	}
	n = LoadBrainOrNew(path, 4, 6, 1, rng)
	if n == nil {
		t.Fatal("expected fresh network for corrupt file")
	}

	// Valid JSON with inconsistent dimensions.
	bad := `{"brain":{"num_inputs":4,"num_hidden":6,"num_outputs":1,"w1":[0.1],"b1":[],"w2":[],"b2":[]},"score":0}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}
	n = LoadBrainOrNew(path, 4, 6, 1, rng)
	if n == nil {
		t.Fatal("expected fresh network for malformed weights")
	}
	if _, err := LoadBrain(path); err == nil {
		t.Error("LoadBrain should reject inconsistent dimensions")
	}
}

func TestHighScorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "highscore.json")

	if got := LoadHighScore(path); got != 0 {
		t.Errorf("missing file should yield 0, got %d", got)
	}
	if err := SaveHighScore(path, 23); err != nil {
		t.Fatalf("SaveHighScore: %v", err)
	}
	if got := LoadHighScore(path); got != 23 {
		t.Errorf("LoadHighScore = %d, want 23", got)
	}

	if err := os.WriteFile(path, []byte("garbage"), 0644); err != nil {
		t.Fatal(err)
	}
	if got := LoadHighScore(path); got != 0 {
		t.Errorf("malformed file should yield 0, got %d", got)
	}
}
