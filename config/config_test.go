package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load with empty path failed: %v", err)
	}

	if cfg.Population.Size != 50 {
		t.Errorf("default population size: got %d, want 50", cfg.Population.Size)
	}
	if cfg.Neural.NumInputs != 4 || cfg.Neural.NumHidden != 6 || cfg.Neural.NumOutputs != 1 {
		t.Errorf("default topology: got %d/%d/%d, want 4/6/1",
			cfg.Neural.NumInputs, cfg.Neural.NumHidden, cfg.Neural.NumOutputs)
	}
	if cfg.Population.ScoreWeight != 5000 {
		t.Errorf("default score weight: got %v, want 5000", cfg.Population.ScoreWeight)
	}
	if len(cfg.Loop.SpeedMultipliers) != 3 {
		t.Errorf("default speed multipliers: got %v, want 3 entries", cfg.Loop.SpeedMultipliers)
	}
}

func TestLoadOverlay(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	overlay := "population:\n  size: 12\n"
	if err := os.WriteFile(path, []byte(overlay), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load with overlay failed: %v", err)
	}

	if cfg.Population.Size != 12 {
		t.Errorf("overlay population size: got %d, want 12", cfg.Population.Size)
	}
	// Untouched fields keep their defaults
	if cfg.Pipes.SpawnInterval != 90 {
		t.Errorf("spawn interval lost its default: got %d, want 90", cfg.Pipes.SpawnInterval)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	wantGround := float32(cfg.Screen.Height) - float32(cfg.Pipes.GroundOffset)
	if cfg.Derived.GroundY != wantGround {
		t.Errorf("GroundY: got %v, want %v", cfg.Derived.GroundY, wantGround)
	}

	// A gap at either extreme must still fit between ceiling and ground margins.
	if cfg.Derived.GapTopMin < 0 {
		t.Errorf("GapTopMin negative: %v", cfg.Derived.GapTopMin)
	}
	lowestGapBottom := cfg.Derived.GapTopMax + float32(cfg.Pipes.GapHeight)
	if lowestGapBottom > cfg.Derived.GroundY {
		t.Errorf("gap at GapTopMax extends past the ground: bottom %v, ground %v",
			lowestGapBottom, cfg.Derived.GroundY)
	}
	if cfg.Derived.GapTopMax <= cfg.Derived.GapTopMin {
		t.Errorf("empty gap-top range: [%v, %v]", cfg.Derived.GapTopMin, cfg.Derived.GapTopMax)
	}
}

func TestWriteYAMLRoundTrip(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "snapshot.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("WriteYAML failed: %v", err)
	}

	reloaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading written config failed: %v", err)
	}
	if reloaded.Population.Size != cfg.Population.Size {
		t.Errorf("round-trip population size: got %d, want %d",
			reloaded.Population.Size, cfg.Population.Size)
	}
}
