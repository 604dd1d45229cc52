package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/config"
	"github.com/pthm-cable/flap/game"
	"github.com/pthm-cable/flap/inspector"
	"github.com/pthm-cable/flap/renderer"
	"github.com/pthm-cable/flap/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Train without graphics")
	manual := flag.Bool("manual", false, "Start in manual play mode")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxGenerations := flag.Int("max-generations", 100, "Headless: stop after N generations")
	targetScore := flag.Int("target-score", 0, "Headless: stop when any agent reaches this score (0 = off)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	mode := game.ModePopulation
	if *manual {
		mode = game.ModeManual
	}
	opts := game.Options{
		Seed:      rngSeed,
		Headless:  *headless,
		OutputDir: *outputDir,
		Mode:      mode,
	}

	if *headless {
		g, err := game.NewGame(opts)
		if err != nil {
			slog.Error("failed to create game", "error", err)
			os.Exit(1)
		}
		defer g.Close()

		slog.Info("starting headless training",
			"seed", rngSeed,
			"max_generations", *maxGenerations,
			"target_score", *targetScore,
		)
		result := g.TrainHeadless(int32(*maxGenerations), int32(*targetScore))
		slog.Info("training finished",
			"generations", result.Generations,
			"best_score", result.BestScore,
			"best_fitness", result.BestFitness,
		)
		return
	}

	// Graphical mode
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Flap")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

	g, err := game.NewGame(opts)
	if err != nil {
		slog.Error("failed to create game", "error", err)
		os.Exit(1)
	}
	defer g.Close()

	scene := renderer.NewSceneRenderer(cfg.Derived.WorldW32, cfg.Derived.WorldH32)
	hud := ui.NewHUD()
	panel := ui.NewPanel(cfg.Derived.WorldW32, cfg.Loop.SpeedMultipliers)
	netView := inspector.NewInspector()

	for !rl.WindowShouldClose() {
		g.HandleInput()
		if rl.IsKeyPressed(rl.KeyN) {
			netView.Toggle()
		}
		g.Update(rl.GetFrameTime())

		snap := g.Snapshot()

		rl.BeginDrawing()
		scene.Draw(snap)
		hud.Draw(snap)
		hud.DrawControls(int32(cfg.Screen.Height), snap)
		if netView.Visible() {
			brain, inputs, ok := g.InspectBestAlive()
			if ok {
				netView.Draw(10, 100, 320, 220, brain, inputs[:])
			} else {
				netView.Draw(10, 100, 320, 220, nil, nil)
			}
		}
		ui.Apply(g, panel.Draw(snap))
		rl.EndDrawing()
	}
}
