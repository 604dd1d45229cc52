// Package ui renders the heads-up display and the raygui control panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
)

// HUD renders the main heads-up display.
type HUD struct{}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{}
}

// Draw renders the HUD from the frame snapshot.
func (h *HUD) Draw(snap game.FrameSnapshot) {
	rl.DrawText("flap", 10, 10, 20, rl.White)

	switch snap.Mode {
	case game.ModePopulation:
		rl.DrawText(
			fmt.Sprintf("Gen: %d | Alive: %d/%d | Best: %d | Record: %d",
				snap.Generation, snap.Alive, snap.Population, snap.BestScore, snap.HighScore),
			10, 35, 16, rl.White,
		)
	case game.ModeManual:
		pilot := "keyboard"
		if snap.Autopilot {
			pilot = "autopilot"
		}
		rl.DrawText(
			fmt.Sprintf("Score: %d | Record: %d | Pilot: %s",
				snap.BestScore, snap.HighScore, pilot),
			10, 35, 16, rl.White,
		)
	}

	rl.DrawText(
		fmt.Sprintf("Speed: %dx | FPS: %d", snap.Speed, rl.GetFPS()),
		10, 55, 16, rl.LightGray,
	)

	statusText := "Running"
	if !snap.Playing {
		statusText = "PAUSED"
	}
	rl.DrawText(statusText, 10, 75, 16, rl.Yellow)
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, snap game.FrameSnapshot) {
	legend := "SPACE play/pause | R restart | M mode | S stop+save | N net view | 1/2/3 speed"
	if snap.Mode == game.ModeManual {
		legend = "SPACE flap | R restart | M mode | A autopilot | N net view"
	}
	rl.DrawText(legend, 10, screenHeight-25, 14, rl.Gray)
}
