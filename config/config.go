// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen      ScreenConfig      `yaml:"screen"`
	Physics     PhysicsConfig     `yaml:"physics"`
	Bird        BirdConfig        `yaml:"bird"`
	Pipes       PipesConfig       `yaml:"pipes"`
	Population  PopulationConfig  `yaml:"population"`
	Mutation    MutationConfig    `yaml:"mutation"`
	Neural      NeuralConfig      `yaml:"neural"`
	Loop        LoopConfig        `yaml:"loop"`
	Persistence PersistenceConfig `yaml:"persistence"`
	Telemetry   TelemetryConfig   `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// PhysicsConfig holds per-step physics parameters.
// Gravity and velocities are expressed per simulation step, not per second;
// the fixed timestep only schedules how many steps a frame consumes.
type PhysicsConfig struct {
	DT             float64 `yaml:"dt"`
	Gravity        float64 `yaml:"gravity"`
	JumpVelocity   float64 `yaml:"jump_velocity"`
	VelocityRange  float64 `yaml:"velocity_range"`
	MaxRotationDeg float64 `yaml:"max_rotation_deg"`
	RotationFactor float64 `yaml:"rotation_factor"`
}

// BirdConfig holds agent geometry parameters.
type BirdConfig struct {
	X              float64 `yaml:"x"`
	Radius         float64 `yaml:"radius"`
	SpawnYFraction float64 `yaml:"spawn_y_fraction"`
}

// PipesConfig holds obstacle parameters.
type PipesConfig struct {
	Width         float64 `yaml:"width"`
	Speed         float64 `yaml:"speed"`
	GapHeight     float64 `yaml:"gap_height"`
	GapMargin     float64 `yaml:"gap_margin"`
	SpawnInterval int     `yaml:"spawn_interval"`
	GroundOffset  float64 `yaml:"ground_offset"`
}

// PopulationConfig holds evolution parameters.
type PopulationConfig struct {
	Size         int     `yaml:"size"`
	EliteParents int     `yaml:"elite_parents"`
	ScoreWeight  float64 `yaml:"score_weight"`
}

// MutationConfig holds mutation parameters.
type MutationConfig struct {
	Rate     float64 `yaml:"rate"`
	Drift    float64 `yaml:"drift"`
	Jump     float64 `yaml:"jump"`
	JumpProb float64 `yaml:"jump_prob"`
}

// NeuralConfig holds network topology parameters.
type NeuralConfig struct {
	NumInputs         int     `yaml:"num_inputs"`
	NumHidden         int     `yaml:"num_hidden"`
	NumOutputs        int     `yaml:"num_outputs"`
	DecisionThreshold float64 `yaml:"decision_threshold"`
}

// LoopConfig holds time-accumulation parameters.
type LoopConfig struct {
	SpeedMultipliers []int   `yaml:"speed_multipliers"`
	BacklogCap       float64 `yaml:"backlog_cap"`
}

// PersistenceConfig holds file paths for the storage collaborator.
type PersistenceConfig struct {
	BrainPath     string `yaml:"brain_path"`
	HighScorePath string `yaml:"high_score_path"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	LogStats bool `yaml:"log_stats"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DT32      float32 // Physics.DT as float32
	WorldW32  float32 // Screen.Width as float32
	WorldH32  float32 // Screen.Height as float32
	GroundY   float32 // y of the floor line (world height - ground offset)
	GapTopMin float32 // lowest valid gap-top position
	GapTopMax float32 // highest valid gap-top position
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	// Compute derived values
	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Physics.DT)
	c.Derived.WorldW32 = float32(c.Screen.Width)
	c.Derived.WorldH32 = float32(c.Screen.Height)
	c.Derived.GroundY = float32(float64(c.Screen.Height) - c.Pipes.GroundOffset)

	// The gap must fit between ceiling margin and ground margin.
	c.Derived.GapTopMin = float32(c.Pipes.GapMargin)
	c.Derived.GapTopMax = c.Derived.GroundY - float32(c.Pipes.GapMargin+c.Pipes.GapHeight)
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
