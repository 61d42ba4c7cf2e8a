package model

import (
	"math/rand"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTopologyClampsHidden(t *testing.T) {
	top := NewTopology([]int{0, 4, 42})
	assert.Equal(t, Topology{2, 1, 4, 10, 1}, top)
	assert.Equal(t, []int{1, 4, 10}, top.Hidden())
	assert.Nil(t, Topology{2, 1}.Hidden())
}

func TestInitializeShapesAndRange(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for _, top := range []Topology{
		{2, 1},
		{2, 2, 1},
		{2, 2, 2, 1},
		{2, 10, 1, 7, 1},
	} {
		net := Initialize(top, rng)
		require.Equal(t, top, net.Layers())
		require.Equal(t, len(top)-1, net.Depth())
		for l := 0; l < net.Depth(); l++ {
			w := net.Weights(l)
			b := net.Biases(l)
			require.Len(t, w, top[l+1])
			require.Len(t, b, top[l+1])
			for j, row := range w {
				require.Len(t, row, top[l])
				for _, v := range row {
					assert.GreaterOrEqual(t, v, -1.0)
					assert.LessOrEqual(t, v, 1.0)
				}
				assert.GreaterOrEqual(t, b[j], -1.0)
				assert.LessOrEqual(t, b[j], 1.0)
			}
		}
	}
}

func TestInitializeDeterministicForSeed(t *testing.T) {
	a := Initialize(Topology{2, 3, 1}, rand.New(rand.NewSource(11)))
	b := Initialize(Topology{2, 3, 1}, rand.New(rand.NewSource(11)))
	c := Initialize(Topology{2, 3, 1}, rand.New(rand.NewSource(12)))
	assert.Equal(t, a.Weights(0), b.Weights(0))
	assert.Equal(t, a.Biases(1), b.Biases(1))
	assert.NotEqual(t, a.Weights(0), c.Weights(0))
}

func TestInitializeToleratesDegenerateTopology(t *testing.T) {
	net := Initialize(Topology{2}, rand.New(rand.NewSource(1)))
	assert.Equal(t, Topology{InputSize, OutputSize}, net.Layers())

	net = Initialize(Topology{2, 0, 1}, rand.New(rand.NewSource(1)))
	assert.Equal(t, Topology{2, 1, 1}, net.Layers())
}

func TestWithWeightCopyOnWrite(t *testing.T) {
	net := Zero(Topology{2, 2, 1})
	next, err := net.WithWeight(0, 1, 0, 0.75)
	require.NoError(t, err)

	got, err := next.Weight(0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.75, got)

	orig, err := net.Weight(0, 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0.0, orig)

	next, err = next.WithBias(1, 0, -0.2)
	require.NoError(t, err)
	bias, err := next.Bias(1, 0)
	require.NoError(t, err)
	assert.Equal(t, -0.2, bias)
	assert.Equal(t, []float64{0}, net.Biases(1))
}

func TestParameterIndexOutOfRange(t *testing.T) {
	net := Zero(Topology{2, 2, 1})
	_, err := net.WithWeight(2, 0, 0, 1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = net.WithWeight(1, 1, 0, 1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = net.WithWeight(0, 0, 2, 1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = net.WithBias(0, -1, 1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	_, err = net.Bias(1, 1)
	assert.True(t, errors.Is(err, ErrIndexOutOfRange))
	assert.Nil(t, net.Weights(5))
}

func TestFromParams(t *testing.T) {
	net, err := FromParams(Topology{2, 1},
		[][][]float64{{{0.5, -0.5}}},
		[][]float64{{0.1}},
	)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{0.5, -0.5}}, net.Weights(0))
	assert.Equal(t, []float64{0.1}, net.Biases(0))

	_, err = FromParams(Topology{2, 1}, [][][]float64{{{0.5}}}, [][]float64{{0.1}})
	assert.Error(t, err)
	_, err = FromParams(Topology{2, 2, 1}, [][][]float64{{{0.5, 1}}}, [][]float64{{0.1}})
	assert.Error(t, err)
	_, err = FromParams(Topology{2, 0, 1}, [][][]float64{{}, {{}}}, [][]float64{{}, {0}})
	assert.Error(t, err)
}

func TestCloneIsIndependent(t *testing.T) {
	net := Initialize(Topology{2, 2, 1}, rand.New(rand.NewSource(5)))
	clone := net.Clone()
	clone.weights[0].Set(0, 0, 99)
	clone.biases[0].SetVec(0, 99)
	w, _ := net.Weight(0, 0, 0)
	b, _ := net.Bias(0, 0)
	assert.NotEqual(t, 99.0, w)
	assert.NotEqual(t, 99.0, b)
}
