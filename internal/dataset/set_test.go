package dataset

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neuroforge/internal/model"
)

func TestNewNormalizesExamples(t *testing.T) {
	set := New([]model.Example{
		{Input: []float64{-0.5, 1.5}, Output: []float64{2}},
		{Input: []float64{0.25}, Output: nil},
		{Input: []float64{0.1, 0.2, 0.3}, Output: []float64{math.NaN(), 1}},
	})
	require.Equal(t, 3, set.Len())
	ex := set.Examples()
	assert.Equal(t, []float64{0, 1}, ex[0].Input)
	assert.Equal(t, []float64{1}, ex[0].Output)
	assert.Equal(t, []float64{0.25, 0}, ex[1].Input)
	assert.Equal(t, []float64{0}, ex[1].Output)
	assert.Equal(t, []float64{0.1, 0.2}, ex[2].Input)
	assert.Equal(t, []float64{0}, ex[2].Output)
}

func TestNewEmptyKeepsOneExample(t *testing.T) {
	set := New(nil)
	assert.Equal(t, 1, set.Len())
}

func TestXORTargets(t *testing.T) {
	assert.Equal(t, []float64{0, 1, 1, 0}, New(XOR()).Targets())
}

func TestRemoveLastExampleRejected(t *testing.T) {
	set := New(XOR())
	for set.Len() > 1 {
		next, ok := set.Remove(0)
		require.True(t, ok)
		set = next
	}
	next, ok := set.Remove(0)
	assert.False(t, ok)
	assert.Same(t, set, next)
	assert.Equal(t, 1, next.Len())
	assert.Equal(t, []float64{0}, next.Targets())
}

func TestRemovePreservesOrder(t *testing.T) {
	set, ok := New(XOR()).Remove(1)
	require.True(t, ok)
	ex := set.Examples()
	require.Len(t, ex, 3)
	assert.Equal(t, []float64{0, 0}, ex[0].Input)
	assert.Equal(t, []float64{1, 0}, ex[1].Input)
	assert.Equal(t, []float64{1, 1}, ex[2].Input)

	_, ok = set.Remove(3)
	assert.False(t, ok)
}

func TestUpdateClampsAndCopies(t *testing.T) {
	orig := New(XOR())
	next, ok := orig.Update(3, Input, 1, 4)
	require.True(t, ok)
	ex, _ := next.At(3)
	assert.Equal(t, []float64{1, 1}, ex.Input)

	next, ok = next.Update(0, Output, 0, 0.75)
	require.True(t, ok)
	ex, _ = next.At(0)
	assert.Equal(t, []float64{0.75}, ex.Output)

	first, _ := orig.At(0)
	assert.Equal(t, []float64{0}, first.Output)

	_, ok = orig.Update(0, Output, 1, 0.5)
	assert.False(t, ok)
	_, ok = orig.Update(9, Input, 0, 0.5)
	assert.False(t, ok)
}

func TestAddAppendsBlank(t *testing.T) {
	orig := New(XOR())
	next := orig.Add()
	assert.Equal(t, 4, orig.Len())
	require.Equal(t, 5, next.Len())
	ex, ok := next.At(4)
	require.True(t, ok)
	assert.Equal(t, []float64{0, 0}, ex.Input)
	assert.Equal(t, []float64{0}, ex.Output)
}

func TestExamplesAreDeepCopies(t *testing.T) {
	set := New(XOR())
	ex := set.Examples()
	ex[1].Input[0] = 0.9
	again, _ := set.At(1)
	assert.Equal(t, 0.0, again.Input[0])
}
