// Package game wires the simulation together: the agent population, the
// scrolling obstacle field, the evolution cycle, and the fixed-timestep loop
// that drives them.
package game

import (
	"fmt"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/flap/components"
	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/neural"
	"github.com/pthm-cable/flap/systems"
	"github.com/pthm-cable/flap/telemetry"
)

// Mode selects who controls the agents.
type Mode int

const (
	// ModePopulation runs the full neuroevolution population.
	ModePopulation Mode = iota
	// ModeManual runs a single agent under keyboard (or autopilot) control.
	ModeManual
)

func (m Mode) String() string {
	if m == ModeManual {
		return "manual"
	}
	return "population"
}

// Options configures a new game instance.
type Options struct {
	Seed      int64
	Headless  bool
	OutputDir string
	Mode      Mode

	// Override persistence paths from config; empty keeps the config values.
	BrainPath     string
	HighScorePath string

	// Config overrides the global configuration when non-nil, so concurrent
	// runs with different parameters do not share state.
	Config *config.Config

	// ScoreHook is invoked with the new score each time the manual-mode
	// agent clears an obstacle, for sound or UI effects.
	ScoreHook func(score int32)
}

// Game holds the complete simulation state.
type Game struct {
	cfg   *config.Config
	world ecs.World
	rng   *rand.Rand

	birdMapper *ecs.Map4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Bird,
	]
	birdFilter *ecs.Filter4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Bird,
	]

	// Brain storage (per agent by ID)
	brains map[uint32]*neural.Network

	pipes *systems.PipeField

	physParams   systems.PhysicsParams
	sensorParams systems.SensorParams

	// Mode and control state
	mode           Mode
	playing        bool
	autopilot      bool
	autopilotBrain *neural.Network
	pendingFlap    bool

	// Loop state
	speedIdx    int
	speed       int
	accumulator float64
	headless    bool

	// Run state
	tick         int32
	generation   int32
	stepsThisGen int32
	nextID       uint32
	aliveCount   int
	bestScore    int32 // best score this generation / episode
	highScore    int32 // persisted all-time best

	// Persistence and telemetry
	brainPath     string
	highScorePath string
	output        *telemetry.OutputManager
	scoreHook     func(int32)
}

// NewGame creates a new game instance from the loaded configuration.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:       cfg,
		world:     ecs.NewWorld(),
		rng:       rand.New(rand.NewSource(opts.Seed)),
		brains:    make(map[uint32]*neural.Network),
		mode:      opts.Mode,
		headless:  opts.Headless,
		speed:     1,
		scoreHook: opts.ScoreHook,
	}
	g.birdMapper = ecs.NewMap4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Bird,
	](&g.world)
	g.birdFilter = ecs.NewFilter4[
		components.Position,
		components.Velocity,
		components.Rotation,
		components.Bird,
	](&g.world)

	if len(cfg.Loop.SpeedMultipliers) > 0 {
		g.speed = cfg.Loop.SpeedMultipliers[0]
	}

	g.physParams = systems.PhysicsParams{
		Gravity:        float32(cfg.Physics.Gravity),
		JumpVelocity:   float32(cfg.Physics.JumpVelocity),
		MaxRotationDeg: float32(cfg.Physics.MaxRotationDeg),
		RotationFactor: float32(cfg.Physics.RotationFactor),
		GroundY:        cfg.Derived.GroundY,
		Radius:         float32(cfg.Bird.Radius),
	}
	g.sensorParams = systems.SensorParams{
		WorldWidth:    cfg.Derived.WorldW32,
		WorldHeight:   cfg.Derived.WorldH32,
		VelocityRange: float32(cfg.Physics.VelocityRange),
	}
	pipeParams := systems.PipeParams{
		WorldWidth: cfg.Derived.WorldW32,
		Width:      float32(cfg.Pipes.Width),
		Speed:      float32(cfg.Pipes.Speed),
		GapHeight:  float32(cfg.Pipes.GapHeight),
		GapTopMin:  cfg.Derived.GapTopMin,
		GapTopMax:  cfg.Derived.GapTopMax,
		SpawnSteps: int32(cfg.Pipes.SpawnInterval),
	}
	g.pipes = systems.NewPipeField(pipeParams, cfg.Derived.WorldH32, g.rng)

	g.brainPath = cfg.Persistence.BrainPath
	if opts.BrainPath != "" {
		g.brainPath = opts.BrainPath
	}
	g.highScorePath = cfg.Persistence.HighScorePath
	if opts.HighScorePath != "" {
		g.highScorePath = opts.HighScorePath
	}
	g.highScore = telemetry.LoadHighScore(g.highScorePath)

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			return nil, fmt.Errorf("initializing output: %w", err)
		}
		g.output = om
		if err := g.output.WriteConfig(cfg); err != nil {
			return nil, fmt.Errorf("writing output config: %w", err)
		}
	}

	g.spawnForMode()
	return g, nil
}

// spawnForMode populates the world according to the current mode.
func (g *Game) spawnForMode() {
	if g.mode == ModeManual {
		g.spawnAgent(nil, false)
		return
	}
	for i := 0; i < g.cfg.Population.Size; i++ {
		g.spawnAgent(neural.New(
			g.cfg.Neural.NumInputs,
			g.cfg.Neural.NumHidden,
			g.cfg.Neural.NumOutputs,
			g.rng,
		), false)
	}
}

// spawnAgent creates one agent at the spawn point. brain may be nil in
// manual mode, where the keyboard drives the agent instead.
func (g *Game) spawnAgent(brain *neural.Network, champion bool) ecs.Entity {
	id := g.nextID
	g.nextID++

	pos := components.Position{
		X: float32(g.cfg.Bird.X),
		Y: g.cfg.Derived.WorldH32 * float32(g.cfg.Bird.SpawnYFraction),
	}
	vel := components.Velocity{}
	rot := components.Rotation{}
	bird := components.Bird{ID: id, Alive: true, Champion: champion}

	if brain != nil {
		g.brains[id] = brain
	}
	entity := g.birdMapper.NewEntity(&pos, &vel, &rot, &bird)
	g.aliveCount++
	return entity
}

// clearAgents removes every agent entity and its brain.
func (g *Game) clearAgents() {
	var toRemove []ecs.Entity
	query := g.birdFilter.Query()
	for query.Next() {
		toRemove = append(toRemove, query.Entity())
	}
	for _, e := range toRemove {
		g.world.RemoveEntity(e)
	}
	g.brains = make(map[uint32]*neural.Network)
	g.aliveCount = 0
}

// Accessors used by the renderer, the UI panel, and tests.

func (g *Game) Mode() Mode        { return g.mode }
func (g *Game) Playing() bool     { return g.playing }
func (g *Game) Autopilot() bool   { return g.autopilot }
func (g *Game) Speed() int        { return g.speed }
func (g *Game) Generation() int32 { return g.generation }
func (g *Game) AliveCount() int   { return g.aliveCount }
func (g *Game) BestScore() int32  { return g.bestScore }
func (g *Game) HighScore() int32  { return g.highScore }
func (g *Game) Tick() int32       { return g.tick }

// Close flushes telemetry output.
func (g *Game) Close() error {
	return g.output.Close()
}
