package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
)

// Actions reports which panel controls were pressed this frame. The caller
// applies them to the game; the panel never mutates simulation state.
type Actions struct {
	TogglePlay      bool
	Restart         bool
	SwitchMode      bool
	ToggleAutopilot bool
	StopAndSave     bool
	SpeedIndex      int // -1 when unchanged
}

// Panel is the clickable control strip along the right edge.
type Panel struct {
	x, y        float32
	width       float32
	speedLabels []string
}

// NewPanel creates a control panel anchored at the top-right corner.
func NewPanel(screenWidth float32, speedMultipliers []int) *Panel {
	labels := make([]string, len(speedMultipliers))
	for i, m := range speedMultipliers {
		labels[i] = fmt.Sprintf("%dx", m)
	}
	const width = 150
	return &Panel{x: screenWidth - width - 10, y: 10, width: width, speedLabels: labels}
}

// Draw renders the panel and collects button presses.
func (p *Panel) Draw(snap game.FrameSnapshot) Actions {
	actions := Actions{SpeedIndex: -1}

	const rowH = 30
	const pad = 8
	y := p.y

	playLabel := "Play"
	if snap.Playing {
		playLabel = "Pause"
	}
	if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: rowH}, playLabel) {
		actions.TogglePlay = true
	}
	y += rowH + pad

	if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: rowH}, "Restart") {
		actions.Restart = true
	}
	y += rowH + pad

	modeLabel := "Play Yourself"
	if snap.Mode == game.ModeManual {
		modeLabel = "Train Population"
	}
	if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: rowH}, modeLabel) {
		actions.SwitchMode = true
	}
	y += rowH + pad

	switch snap.Mode {
	case game.ModePopulation:
		if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: rowH}, "Stop + Save Best") {
			actions.StopAndSave = true
		}
		y += rowH + pad
	case game.ModeManual:
		autoLabel := "Autopilot: Off"
		if snap.Autopilot {
			autoLabel = "Autopilot: On"
		}
		if gui.Button(rl.Rectangle{X: p.x, Y: y, Width: p.width, Height: rowH}, autoLabel) {
			actions.ToggleAutopilot = true
		}
		y += rowH + pad
	}

	// Speed buttons share one row; accelerated time is training-only.
	if snap.Mode == game.ModePopulation && len(p.speedLabels) > 0 {
		buttonW := (p.width - float32(len(p.speedLabels)-1)*4) / float32(len(p.speedLabels))
		for i, label := range p.speedLabels {
			x := p.x + float32(i)*(buttonW+4)
			if gui.Button(rl.Rectangle{X: x, Y: y, Width: buttonW, Height: rowH}, label) {
				actions.SpeedIndex = i
			}
		}
	}

	return actions
}

// Apply feeds the collected actions into the game.
func Apply(g *game.Game, a Actions) {
	if a.TogglePlay {
		g.TogglePlay()
	}
	if a.Restart {
		g.Reset(g.Mode())
	}
	if a.SwitchMode {
		if g.Mode() == game.ModePopulation {
			g.SetMode(game.ModeManual)
		} else {
			g.SetMode(game.ModePopulation)
		}
	}
	if a.ToggleAutopilot {
		g.ToggleAutopilot()
	}
	if a.StopAndSave {
		g.StopAndSave()
	}
	if a.SpeedIndex >= 0 {
		g.SetSpeedIndex(a.SpeedIndex)
	}
}
