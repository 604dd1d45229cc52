// Package neural provides the feedforward controller networks that pilot agents.
package neural

import (
	"fmt"
	"math"
	"math/rand"
)

// Canonical topology for the obstacle-avoidance domain.
const (
	DefaultInputs  = 4
	DefaultHidden  = 6
	DefaultOutputs = 1
)

// Network is a fixed-topology two-layer feedforward network with sigmoid
// activations. Dimensions are immutable after construction.
type Network struct {
	NumInputs  int
	NumHidden  int
	NumOutputs int

	W1 [][]float32 // [hidden][input] input -> hidden weights
	B1 []float32   // hidden biases
	W2 [][]float32 // [output][hidden] hidden -> output weights
	B2 []float32   // output biases

	hidden []float32 // forward-pass scratch, no allocations in the hot path
	out    []float32
}

// New creates a network with all weights and biases drawn uniformly from [-1, 1].
func New(numInputs, numHidden, numOutputs int, rng *rand.Rand) *Network {
	n := &Network{
		NumInputs:  numInputs,
		NumHidden:  numHidden,
		NumOutputs: numOutputs,
		W1:         make([][]float32, numHidden),
		B1:         make([]float32, numHidden),
		W2:         make([][]float32, numOutputs),
		B2:         make([]float32, numOutputs),
		hidden:     make([]float32, numHidden),
		out:        make([]float32, numOutputs),
	}

	for i := range n.W1 {
		n.W1[i] = make([]float32, numInputs)
		for j := range n.W1[i] {
			n.W1[i][j] = rng.Float32()*2 - 1
		}
		n.B1[i] = rng.Float32()*2 - 1
	}

	for i := range n.W2 {
		n.W2[i] = make([]float32, numHidden)
		for j := range n.W2[i] {
			n.W2[i][j] = rng.Float32()*2 - 1
		}
		n.B2[i] = rng.Float32()*2 - 1
	}

	return n
}

// Predict computes the network outputs for the given inputs.
// Deterministic for fixed parameters; no side effects beyond scratch reuse.
// The returned slice is owned by the network and overwritten on the next call.
func (n *Network) Predict(inputs []float32) []float32 {
	for i := 0; i < n.NumHidden; i++ {
		sum := n.B1[i]
		row := n.W1[i]
		for j := 0; j < n.NumInputs; j++ {
			sum += row[j] * inputs[j]
		}
		n.hidden[i] = sigmoid(sum)
	}

	for i := 0; i < n.NumOutputs; i++ {
		sum := n.B2[i]
		row := n.W2[i]
		for j := 0; j < n.NumHidden; j++ {
			sum += row[j] * n.hidden[j]
		}
		n.out[i] = sigmoid(sum)
	}

	return n.out
}

// Trace runs a forward pass and returns copies of the hidden and output
// activations, for visualization.
func (n *Network) Trace(inputs []float32) (hidden, out []float32) {
	n.Predict(inputs)
	hidden = make([]float32, n.NumHidden)
	copy(hidden, n.hidden)
	out = make([]float32, n.NumOutputs)
	copy(out, n.out)
	return hidden, out
}

// Mutate perturbs each weight and bias independently with probability rate.
// A mutated parameter takes a large uniform jump in [-jump, jump] with
// probability jumpProb, otherwise a small uniform drift in [-drift, drift].
// Parameters not selected are left untouched. Mutation is the sole source of
// genetic variation; there is no crossover.
func (n *Network) Mutate(rng *rand.Rand, rate, drift, jump, jumpProb float32) {
	perturb := func(v float32) float32 {
		if rng.Float32() < jumpProb {
			return v + (rng.Float32()*2-1)*jump
		}
		return v + (rng.Float32()*2-1)*drift
	}

	for i := range n.W1 {
		for j := range n.W1[i] {
			if rng.Float32() < rate {
				n.W1[i][j] = perturb(n.W1[i][j])
			}
		}
		if rng.Float32() < rate {
			n.B1[i] = perturb(n.B1[i])
		}
	}

	for i := range n.W2 {
		for j := range n.W2[i] {
			if rng.Float32() < rate {
				n.W2[i][j] = perturb(n.W2[i][j])
			}
		}
		if rng.Float32() < rate {
			n.B2[i] = perturb(n.B2[i])
		}
	}
}

// Clone creates a deep copy sharing no mutable state with the original.
func (n *Network) Clone() *Network {
	c := &Network{
		NumInputs:  n.NumInputs,
		NumHidden:  n.NumHidden,
		NumOutputs: n.NumOutputs,
		W1:         make([][]float32, n.NumHidden),
		B1:         append([]float32(nil), n.B1...),
		W2:         make([][]float32, n.NumOutputs),
		B2:         append([]float32(nil), n.B2...),
		hidden:     make([]float32, n.NumHidden),
		out:        make([]float32, n.NumOutputs),
	}
	for i := range n.W1 {
		c.W1[i] = append([]float32(nil), n.W1[i]...)
	}
	for i := range n.W2 {
		c.W2[i] = append([]float32(nil), n.W2[i]...)
	}
	return c
}

// sigmoid is the standard logistic function, unclamped. Large magnitudes
// saturate toward 0/1 within float range; they never go non-finite.
func sigmoid(x float32) float32 {
	return float32(1.0 / (1.0 + math.Exp(float64(-x))))
}

// Weights holds flattened network parameters for persistence. Round-tripping
// through Weights reproduces identical prediction outputs.
type Weights struct {
	NumInputs  int       `json:"num_inputs"`
	NumHidden  int       `json:"num_hidden"`
	NumOutputs int       `json:"num_outputs"`
	W1         []float32 `json:"w1"` // [NumHidden * NumInputs]
	B1         []float32 `json:"b1"` // [NumHidden]
	W2         []float32 `json:"w2"` // [NumOutputs * NumHidden]
	B2         []float32 `json:"b2"` // [NumOutputs]
}

// MarshalWeights flattens the network parameters for serialization.
func (n *Network) MarshalWeights() Weights {
	w := Weights{
		NumInputs:  n.NumInputs,
		NumHidden:  n.NumHidden,
		NumOutputs: n.NumOutputs,
		W1:         make([]float32, n.NumHidden*n.NumInputs),
		B1:         append([]float32(nil), n.B1...),
		W2:         make([]float32, n.NumOutputs*n.NumHidden),
		B2:         append([]float32(nil), n.B2...),
	}
	for i := 0; i < n.NumHidden; i++ {
		copy(w.W1[i*n.NumInputs:], n.W1[i])
	}
	for i := 0; i < n.NumOutputs; i++ {
		copy(w.W2[i*n.NumHidden:], n.W2[i])
	}
	return w
}

// FromWeights reconstructs a network from flattened parameters, validating
// that the matrix lengths match the recorded dimensions.
func FromWeights(w Weights) (*Network, error) {
	if w.NumInputs <= 0 || w.NumHidden <= 0 || w.NumOutputs <= 0 {
		return nil, fmt.Errorf("invalid dimensions %d/%d/%d", w.NumInputs, w.NumHidden, w.NumOutputs)
	}
	if len(w.W1) != w.NumHidden*w.NumInputs {
		return nil, fmt.Errorf("w1 length %d, want %d", len(w.W1), w.NumHidden*w.NumInputs)
	}
	if len(w.B1) != w.NumHidden {
		return nil, fmt.Errorf("b1 length %d, want %d", len(w.B1), w.NumHidden)
	}
	if len(w.W2) != w.NumOutputs*w.NumHidden {
		return nil, fmt.Errorf("w2 length %d, want %d", len(w.W2), w.NumOutputs*w.NumHidden)
	}
	if len(w.B2) != w.NumOutputs {
		return nil, fmt.Errorf("b2 length %d, want %d", len(w.B2), w.NumOutputs)
	}

	n := &Network{
		NumInputs:  w.NumInputs,
		NumHidden:  w.NumHidden,
		NumOutputs: w.NumOutputs,
		W1:         make([][]float32, w.NumHidden),
		B1:         append([]float32(nil), w.B1...),
		W2:         make([][]float32, w.NumOutputs),
		B2:         append([]float32(nil), w.B2...),
		hidden:     make([]float32, w.NumHidden),
		out:        make([]float32, w.NumOutputs),
	}
	for i := range n.W1 {
		n.W1[i] = append([]float32(nil), w.W1[i*w.NumInputs:(i+1)*w.NumInputs]...)
	}
	for i := range n.W2 {
		n.W2[i] = append([]float32(nil), w.W2[i*w.NumHidden:(i+1)*w.NumHidden]...)
	}
	return n, nil
}
