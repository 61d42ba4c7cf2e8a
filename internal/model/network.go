package model

import (
	"math/rand"
	"time"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

const (
	// InputSize is the fixed width of the input layer.
	InputSize = 2
	// OutputSize is the fixed width of the output layer.
	OutputSize = 1
	// MinLayerSize and MaxLayerSize bound every hidden layer width.
	MinLayerSize = 1
	MaxLayerSize = 10
	// DefaultLayerSize is the width of a newly added hidden layer.
	DefaultLayerSize = 2
)

// ErrIndexOutOfRange is returned by parameter edits addressing a missing entry.
var ErrIndexOutOfRange = errors.New("model: parameter index out of range")

// Topology lists layer widths from input to output.
type Topology []int

// NewTopology wraps hidden widths with the fixed input and output sizes.
// Hidden widths are clamped to [MinLayerSize, MaxLayerSize].
func NewTopology(hidden []int) Topology {
	t := make(Topology, 0, len(hidden)+2)
	t = append(t, InputSize)
	for _, n := range hidden {
		t = append(t, ClampLayerSize(n))
	}
	return append(t, OutputSize)
}

// ClampLayerSize clamps n to the allowed hidden layer width.
func ClampLayerSize(n int) int {
	if n < MinLayerSize {
		return MinLayerSize
	}
	if n > MaxLayerSize {
		return MaxLayerSize
	}
	return n
}

// Hidden returns a copy of the interior widths.
func (t Topology) Hidden() []int {
	if len(t) <= 2 {
		return nil
	}
	return append([]int(nil), t[1:len(t)-1]...)
}

// Equal reports whether t and o describe the same layer widths.
func (t Topology) Equal(o Topology) bool {
	if len(t) != len(o) {
		return false
	}
	for i := range t {
		if t[i] != o[i] {
			return false
		}
	}
	return true
}

func (t Topology) sanitize() Topology {
	if len(t) < 2 {
		return Topology{InputSize, OutputSize}
	}
	out := make(Topology, len(t))
	for i, n := range t {
		if n < 1 {
			n = 1
		}
		out[i] = n
	}
	return out
}

// Network is an immutable snapshot of a feed-forward sigmoid network.
// Every edit returns a new Network; readers may hold a snapshot indefinitely.
type Network struct {
	layers  Topology
	weights []*mat.Dense
	biases  []*mat.VecDense
}

// Initialize builds a Network for t with every weight and bias drawn
// uniformly from [-1, 1]. A nil rng uses a time-seeded source.
func Initialize(t Topology, rng *rand.Rand) *Network {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	t = t.sanitize()
	net := &Network{
		layers:  t,
		weights: make([]*mat.Dense, len(t)-1),
		biases:  make([]*mat.VecDense, len(t)-1),
	}
	for i := 0; i < len(t)-1; i++ {
		rows, cols := t[i+1], t[i]
		w := make([]float64, rows*cols)
		for k := range w {
			w[k] = rng.Float64()*2 - 1
		}
		b := make([]float64, rows)
		for k := range b {
			b[k] = rng.Float64()*2 - 1
		}
		net.weights[i] = mat.NewDense(rows, cols, w)
		net.biases[i] = mat.NewVecDense(rows, b)
	}
	return net
}

// Zero builds a Network for t with all weights and biases set to 0.
func Zero(t Topology) *Network {
	t = t.sanitize()
	net := &Network{
		layers:  t,
		weights: make([]*mat.Dense, len(t)-1),
		biases:  make([]*mat.VecDense, len(t)-1),
	}
	for i := 0; i < len(t)-1; i++ {
		net.weights[i] = mat.NewDense(t[i+1], t[i], nil)
		net.biases[i] = mat.NewVecDense(t[i+1], nil)
	}
	return net
}

// FromParams builds a Network from explicit values. weights[i] must be
// shaped [layers[i+1]][layers[i]] and biases[i] must have layers[i+1] entries.
func FromParams(layers Topology, weights [][][]float64, biases [][]float64) (*Network, error) {
	if len(layers) < 2 {
		return nil, errors.Errorf("model: topology needs at least 2 layers, got %d", len(layers))
	}
	if len(weights) != len(layers)-1 || len(biases) != len(layers)-1 {
		return nil, errors.Errorf("model: expected %d parameter layers, got %d weights and %d biases",
			len(layers)-1, len(weights), len(biases))
	}
	net := Zero(layers)
	if !net.layers.Equal(layers) {
		return nil, errors.Errorf("model: invalid layer widths %v", []int(layers))
	}
	for i := range weights {
		rows, cols := layers[i+1], layers[i]
		if len(weights[i]) != rows || len(biases[i]) != rows {
			return nil, errors.Errorf("model: layer %d expects %d neurons", i, rows)
		}
		for j, row := range weights[i] {
			if len(row) != cols {
				return nil, errors.Errorf("model: layer %d neuron %d expects %d weights, got %d", i, j, cols, len(row))
			}
			net.weights[i].SetRow(j, row)
			net.biases[i].SetVec(j, biases[i][j])
		}
	}
	return net, nil
}

// Layers returns a copy of the network topology.
func (n *Network) Layers() Topology {
	return append(Topology(nil), n.layers...)
}

// Depth returns the number of weight layers.
func (n *Network) Depth() int {
	return len(n.weights)
}

// Weight returns weight k of neuron j in parameter layer l.
func (n *Network) Weight(l, j, k int) (float64, error) {
	if !n.hasWeight(l, j, k) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "weight %d/%d/%d", l, j, k)
	}
	return n.weights[l].At(j, k), nil
}

// Bias returns the bias of neuron j in parameter layer l.
func (n *Network) Bias(l, j int) (float64, error) {
	if !n.hasBias(l, j) {
		return 0, errors.Wrapf(ErrIndexOutOfRange, "bias %d/%d", l, j)
	}
	return n.biases[l].AtVec(j), nil
}

// Weights returns a copy of parameter layer l as [neuron][input] rows.
func (n *Network) Weights(l int) [][]float64 {
	if l < 0 || l >= len(n.weights) {
		return nil
	}
	rows, _ := n.weights[l].Dims()
	out := make([][]float64, rows)
	for j := range out {
		out[j] = mat.Row(nil, j, n.weights[l])
	}
	return out
}

// Biases returns a copy of the bias vector of parameter layer l.
func (n *Network) Biases(l int) []float64 {
	if l < 0 || l >= len(n.biases) {
		return nil
	}
	return mat.Col(nil, 0, n.biases[l])
}

// WithWeight returns a copy of n with one weight replaced.
func (n *Network) WithWeight(l, j, k int, value float64) (*Network, error) {
	if !n.hasWeight(l, j, k) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "weight %d/%d/%d", l, j, k)
	}
	next := n.Clone()
	next.weights[l].Set(j, k, value)
	return next, nil
}

// WithBias returns a copy of n with one bias replaced.
func (n *Network) WithBias(l, j int, value float64) (*Network, error) {
	if !n.hasBias(l, j) {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "bias %d/%d", l, j)
	}
	next := n.Clone()
	next.biases[l].SetVec(j, value)
	return next, nil
}

// Clone returns a deep copy sharing no storage with n.
func (n *Network) Clone() *Network {
	next := &Network{
		layers:  n.Layers(),
		weights: make([]*mat.Dense, len(n.weights)),
		biases:  make([]*mat.VecDense, len(n.biases)),
	}
	for i, w := range n.weights {
		next.weights[i] = mat.DenseCopyOf(w)
	}
	for i, b := range n.biases {
		v := &mat.VecDense{}
		v.CloneFromVec(b)
		next.biases[i] = v
	}
	return next
}

func (n *Network) hasWeight(l, j, k int) bool {
	if l < 0 || l >= len(n.weights) {
		return false
	}
	rows, cols := n.weights[l].Dims()
	return j >= 0 && j < rows && k >= 0 && k < cols
}

func (n *Network) hasBias(l, j int) bool {
	return l >= 0 && l < len(n.biases) && j >= 0 && j < n.biases[l].Len()
}
