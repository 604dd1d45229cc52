// Package systems holds the world and physics logic operating on components.
package systems

import (
	"math/rand"
)

// Pipe is one obstacle: a vertical pair of columns with a passable gap.
// The gap spans [GapTop, GapTop+gapHeight); X is the leading (left) edge.
type Pipe struct {
	X      float32
	GapTop float32
	Passed bool
}

// PipeParams holds the obstacle tunables, fixed for the life of a PipeField.
type PipeParams struct {
	WorldWidth  float32
	Width       float32
	Speed       float32 // leftward travel per step
	GapHeight   float32
	GapTopMin   float32
	GapTopMax   float32
	SpawnSteps  int32 // steps between spawns
}

// SensorTarget is the sensing view of the closest obstacle ahead. When no
// real pipe is ahead, a synthetic target at the far right edge with a
// centered gap is produced, so sensing input is always well-defined. The
// synthetic value never enters the pipe sequence.
type SensorTarget struct {
	TrailingX  float32 // x of the obstacle's trailing (right) edge
	GapCenterY float32
	Synthetic  bool
}

// PipeField owns the ordered obstacle sequence and its spawn cadence.
// It is exclusively owned by the simulation loop; all mutation happens
// inside Step.
type PipeField struct {
	pipes        []Pipe
	spawnCounter int32
	params       PipeParams
	rng          *rand.Rand
	worldCenterY float32
}

// NewPipeField creates an empty field with the given parameters.
func NewPipeField(p PipeParams, worldHeight float32, rng *rand.Rand) *PipeField {
	return &PipeField{
		params:       p,
		rng:          rng,
		worldCenterY: worldHeight / 2,
	}
}

// Step advances the field by one simulation tick: every pipe moves left by
// the fixed speed, fully off-screen pipes are retired (order preserved), and
// the spawn counter may emit one new pipe at the right edge.
func (f *PipeField) Step() {
	// Advance and retire
	keep := f.pipes[:0]
	for i := range f.pipes {
		f.pipes[i].X -= f.params.Speed
		if f.pipes[i].X+f.params.Width >= 0 {
			keep = append(keep, f.pipes[i])
		}
	}
	f.pipes = keep

	// Spawn on cadence
	f.spawnCounter++
	if f.spawnCounter > f.params.SpawnSteps {
		f.spawn()
		f.spawnCounter = 0
	}
}

// spawn appends a pipe at the right edge with a uniformly random gap top.
func (f *PipeField) spawn() {
	gapTop := f.params.GapTopMin + f.rng.Float32()*(f.params.GapTopMax-f.params.GapTopMin)
	f.pipes = append(f.pipes, Pipe{X: f.params.WorldWidth, GapTop: gapTop})
}

// ScorePassed marks every pipe whose trailing edge the reference x has
// crossed, each exactly once, and returns the number of new passes. The
// passed flag makes the transition idempotent.
func (f *PipeField) ScorePassed(refX float32) int32 {
	var passed int32
	for i := range f.pipes {
		p := &f.pipes[i]
		if !p.Passed && refX > p.X+f.params.Width {
			p.Passed = true
			passed++
		}
	}
	return passed
}

// Target returns the sensing target: the first pipe whose trailing edge is
// still ahead of the reference x. With no such pipe the target is synthesized
// at the far right edge with the gap centered vertically.
func (f *PipeField) Target(refX float32) SensorTarget {
	for i := range f.pipes {
		p := &f.pipes[i]
		if p.X+f.params.Width > refX {
			return SensorTarget{
				TrailingX:  p.X + f.params.Width,
				GapCenterY: p.GapTop + f.params.GapHeight/2,
			}
		}
	}
	return SensorTarget{
		TrailingX:  f.params.WorldWidth,
		GapCenterY: f.worldCenterY,
		Synthetic:  true,
	}
}

// Reset clears the sequence and restarts the spawn cadence.
func (f *PipeField) Reset() {
	f.pipes = f.pipes[:0]
	f.spawnCounter = 0
}

// Pipes returns the live obstacle sequence, ordered oldest first.
// Callers must treat the slice as read-only.
func (f *PipeField) Pipes() []Pipe {
	return f.pipes
}

// Params returns the field's fixed parameters.
func (f *PipeField) Params() PipeParams {
	return f.params
}
