// Package renderer draws the world from a frame snapshot, keeping raylib
// calls out of the simulation.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/game"
)

// Palette
var (
	skyColor    = rl.Color{R: 112, G: 197, B: 206, A: 255}
	groundColor = rl.Color{R: 222, G: 184, B: 121, A: 255}
	grassColor  = rl.Color{R: 115, G: 191, B: 46, A: 255}
	pipeColor   = rl.Color{R: 82, G: 160, B: 44, A: 255}
	pipeLip     = rl.Color{R: 60, G: 128, B: 30, A: 255}
	birdColor   = rl.Color{R: 255, G: 204, B: 0, A: 255}
	champColor  = rl.Color{R: 255, G: 120, B: 40, A: 255}
	deadColor   = rl.Color{R: 120, G: 120, B: 120, A: 90}
)

// SceneRenderer draws the scrolling world.
type SceneRenderer struct {
	width, height float32
}

// NewSceneRenderer creates a renderer for the given screen size.
func NewSceneRenderer(width, height float32) *SceneRenderer {
	return &SceneRenderer{width: width, height: height}
}

// Draw renders one frame from the snapshot.
func (r *SceneRenderer) Draw(snap game.FrameSnapshot) {
	rl.ClearBackground(skyColor)

	for _, p := range snap.Pipes {
		r.drawPipe(p, snap.GroundY)
	}
	r.drawGround(snap.GroundY)

	for _, a := range snap.Agents {
		r.drawAgent(a)
	}
}

func (r *SceneRenderer) drawPipe(p game.PipeView, groundY float32) {
	const lip = 6.0

	// Upper column from the ceiling down to the gap.
	rl.DrawRectangleRec(rl.Rectangle{
		X: p.X, Y: 0, Width: p.Width, Height: p.GapTop,
	}, pipeColor)
	rl.DrawRectangleRec(rl.Rectangle{
		X: p.X - 2, Y: p.GapTop - lip, Width: p.Width + 4, Height: lip,
	}, pipeLip)

	// Lower column from the gap down to the ground.
	bottom := p.GapTop + p.GapHeight
	rl.DrawRectangleRec(rl.Rectangle{
		X: p.X, Y: bottom, Width: p.Width, Height: groundY - bottom,
	}, pipeColor)
	rl.DrawRectangleRec(rl.Rectangle{
		X: p.X - 2, Y: bottom, Width: p.Width + 4, Height: lip,
	}, pipeLip)
}

func (r *SceneRenderer) drawGround(groundY float32) {
	rl.DrawRectangleRec(rl.Rectangle{
		X: 0, Y: groundY, Width: r.width, Height: r.height - groundY,
	}, groundColor)
	rl.DrawRectangleRec(rl.Rectangle{
		X: 0, Y: groundY, Width: r.width, Height: 4,
	}, grassColor)
}

func (r *SceneRenderer) drawAgent(a game.AgentView) {
	color := birdColor
	switch {
	case !a.Alive:
		color = deadColor
	case a.Champion:
		color = champColor
	}

	rl.DrawCircleV(rl.Vector2{X: a.X, Y: a.Y}, a.Radius, color)

	// Beak, tilted with the agent so the dive reads visually.
	rl.DrawRectanglePro(
		rl.Rectangle{X: a.X, Y: a.Y, Width: a.Radius * 1.4, Height: a.Radius * 0.5},
		rl.Vector2{X: 0, Y: a.Radius * 0.25},
		a.RotationDeg,
		rl.Color{R: 230, G: 120, B: 30, A: color.A},
	)

	if a.Alive {
		rl.DrawCircleV(rl.Vector2{X: a.X + a.Radius*0.35, Y: a.Y - a.Radius*0.35},
			a.Radius*0.18, rl.Black)
	}
}
