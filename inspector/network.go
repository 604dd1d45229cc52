// Package inspector draws a live diagram of an agent's controller network:
// sensor inputs on the left, the hidden layer in the middle, and the jump
// decision on the right, with edges weighted and colored by sign.
package inspector

import (
	"fmt"
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/flap/neural"
)

// Input labels, in sensor order.
var InputLabels = []string{"Altitude", "V Speed", "Gap Dist", "Gap Off"}

// Output labels.
var OutputLabels = []string{"Jump"}

// Colors for activation visualization.
var (
	ColorEdgePositive = rl.Color{R: 200, G: 80, B: 80, A: 100}
	ColorEdgeNegative = rl.Color{R: 80, G: 80, B: 200, A: 100}
	ColorLabelDim     = rl.Color{R: 150, G: 150, B: 150, A: 255}
	ColorPanelBG      = rl.Color{R: 20, G: 24, B: 30, A: 220}
)

// Inspector renders the controller diagram for the leading agent.
type Inspector struct {
	visible bool
}

// NewInspector creates a hidden inspector.
func NewInspector() *Inspector {
	return &Inspector{}
}

// Toggle shows or hides the diagram.
func (in *Inspector) Toggle() {
	in.visible = !in.visible
}

// Visible reports whether the diagram is shown.
func (in *Inspector) Visible() bool {
	return in.visible
}

// Draw renders the network diagram panel if visible. The forward pass is
// recomputed from the given inputs, so the diagram always matches what the
// agent is seeing this frame.
func (in *Inspector) Draw(x, y, width, height int32, nn *neural.Network, inputs []float32) {
	if !in.visible {
		return
	}

	rl.DrawRectangle(x, y, width, height, ColorPanelBG)
	rl.DrawRectangleLines(x, y, width, height, ColorLabelDim)

	if nn == nil {
		rl.DrawText("No controller active", x+10, y+10, 14, ColorLabelDim)
		return
	}
	hidden, out := nn.Trace(inputs)

	colWidth := width / 3
	nodeRadius := float32(6)

	inputNodes := column(x, y, colWidth, height, 0, nn.NumInputs)
	hiddenNodes := column(x, y, colWidth, height, 1, nn.NumHidden)
	outputNodes := column(x, y, colWidth, height, 2, nn.NumOutputs)

	for h := 0; h < nn.NumHidden; h++ {
		for i := 0; i < nn.NumInputs; i++ {
			drawEdge(inputNodes[i], hiddenNodes[h], nn.W1[h][i])
		}
	}
	for o := 0; o < nn.NumOutputs; o++ {
		for h := 0; h < nn.NumHidden; h++ {
			drawEdge(hiddenNodes[h], outputNodes[o], nn.W2[o][h])
		}
	}

	for i, pos := range inputNodes {
		drawNode(pos, nodeRadius, inputs[i])
		if i < len(InputLabels) {
			labelWidth := rl.MeasureText(InputLabels[i], 10)
			rl.DrawText(InputLabels[i], int32(pos.X-nodeRadius)-labelWidth-4, int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
	for i, pos := range hiddenNodes {
		drawNode(pos, nodeRadius, hidden[i])
	}
	for i, pos := range outputNodes {
		drawNode(pos, nodeRadius+2, out[i])
		if i < len(OutputLabels) {
			label := fmt.Sprintf("%s %.2f", OutputLabels[i], out[i])
			rl.DrawText(label, int32(pos.X+nodeRadius+6), int32(pos.Y)-5, 10, ColorLabelDim)
		}
	}
}

// column computes vertically centered node positions for one layer.
func column(x, y, colWidth, height int32, col, count int) []rl.Vector2 {
	nodes := make([]rl.Vector2, count)
	spacing := float32(height-20) / float32(count+1)
	nodeX := float32(x) + float32(col)*float32(colWidth) + float32(colWidth)/2
	for i := range nodes {
		nodes[i] = rl.Vector2{
			X: nodeX,
			Y: float32(y) + 10 + float32(i+1)*spacing,
		}
	}
	return nodes
}

// drawNode renders a single neuron node.
func drawNode(pos rl.Vector2, radius, activation float32) {
	rl.DrawCircleV(pos, radius, activationColor(activation))
	rl.DrawCircleLinesV(pos, radius, rl.Color{R: 100, G: 100, B: 100, A: 255})
}

// drawEdge renders a connection, thicker and more opaque for larger weights.
func drawEdge(from, to rl.Vector2, weight float32) {
	mag := absFloat(weight)
	if mag < 0.1 {
		return
	}
	thickness := mag * 1.5
	if thickness > 3 {
		thickness = 3
	}
	if thickness < 0.5 {
		thickness = 0.5
	}

	color := ColorEdgePositive
	if weight < 0 {
		color = ColorEdgeNegative
	}
	alpha := uint8(40 + int(mag*40))
	if alpha > 150 {
		alpha = 150
	}
	color.A = alpha

	rl.DrawLineEx(from, to, thickness, color)
}

// activationColor maps activation to red (high) through gray (low).
func activationColor(activation float32) rl.Color {
	t := activation
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return rl.Color{
		R: uint8(60 + t*195),
		G: uint8(60 + t*30),
		B: uint8(60 + t*10),
		A: 255,
	}
}

func absFloat(x float32) float32 {
	return float32(math.Abs(float64(x)))
}
