package game

import rl "github.com/gen2brain/raylib-go/raylib"

// HandleInput processes keyboard input. No-op without a window.
func (g *Game) HandleInput() {
	if g.headless {
		return
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		if g.mode == ModeManual {
			if !g.playing {
				g.Play()
			}
			g.Flap()
		} else {
			g.TogglePlay()
		}
	}

	if rl.IsKeyPressed(rl.KeyR) {
		g.Reset(g.mode)
	}
	if rl.IsKeyPressed(rl.KeyM) {
		if g.mode == ModePopulation {
			g.SetMode(ModeManual)
		} else {
			g.SetMode(ModePopulation)
		}
	}
	if rl.IsKeyPressed(rl.KeyA) {
		g.ToggleAutopilot()
	}
	if rl.IsKeyPressed(rl.KeyS) {
		g.StopAndSave()
	}

	if rl.IsKeyPressed(rl.KeyOne) {
		g.SetSpeedIndex(0)
	}
	if rl.IsKeyPressed(rl.KeyTwo) {
		g.SetSpeedIndex(1)
	}
	if rl.IsKeyPressed(rl.KeyThree) {
		g.SetSpeedIndex(2)
	}
	if rl.IsKeyPressed(rl.KeyTab) {
		g.CycleSpeed()
	}
}
