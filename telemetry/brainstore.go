package telemetry

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/pthm-cable/flap/neural"
)

// brainRecord is the serialized controller format consumed by the storage
// collaborator: the three dimensions and four parameter matrices/vectors.
type brainRecord struct {
	Weights neural.Weights `json:"brain"`
	Score   int32          `json:"score"`
}

// SaveBrain persists a controller and the score it achieved.
func SaveBrain(path string, n *neural.Network, score int32) error {
	rec := brainRecord{Weights: n.MarshalWeights(), Score: score}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling brain: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing brain file: %w", err)
	}
	return nil
}

// LoadBrain reads a persisted controller. Round-tripping through the file
// reproduces identical prediction outputs.
func LoadBrain(path string) (*neural.Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading brain file: %w", err)
	}
	var rec brainRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parsing brain file: %w", err)
	}
	n, err := neural.FromWeights(rec.Weights)
	if err != nil {
		return nil, fmt.Errorf("restoring brain: %w", err)
	}
	return n, nil
}

// LoadBrainOrNew reads a persisted controller, falling back to a fresh
// randomly-initialized network of the canonical topology when the file is
// missing or malformed. The fallback is a recovered condition, logged for
// diagnostics only.
func LoadBrainOrNew(path string, numInputs, numHidden, numOutputs int, rng *rand.Rand) *neural.Network {
	n, err := LoadBrain(path)
	if err != nil {
		slog.Warn("falling back to a fresh controller", "path", path, "error", err)
		return neural.New(numInputs, numHidden, numOutputs, rng)
	}
	return n
}

// highScoreRecord is the separately stored best-score scalar.
type highScoreRecord struct {
	HighScore int32 `json:"high_score"`
}

// SaveHighScore persists the best known score.
func SaveHighScore(path string, score int32) error {
	data, err := json.Marshal(highScoreRecord{HighScore: score})
	if err != nil {
		return fmt.Errorf("marshaling high score: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing high score: %w", err)
	}
	return nil
}

// LoadHighScore reads the persisted best score, returning 0 when the file is
// missing or malformed.
func LoadHighScore(path string) int32 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	var rec highScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("ignoring malformed high score file", "path", path, "error", err)
		return 0
	}
	return rec.HighScore
}
