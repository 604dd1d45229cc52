package components

// Bird holds per-agent scoring and lifecycle state.
// Fitness is always distance + score*scoreWeight; the weight is large enough
// that any scoring agent outranks any non-scoring one regardless of distance.
type Bird struct {
	ID       uint32
	Score    int32   // obstacles cleared
	Distance float32 // horizontal distance survived, in world units
	Fitness  float32
	Alive    bool
	Champion bool // elitism carry-over marker, at most one per generation
}
