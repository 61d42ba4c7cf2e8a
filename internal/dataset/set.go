package dataset

import (
	"math"

	"neuroforge/internal/model"
)

// Field selects the side of an example an edit applies to.
type Field int

const (
	Input Field = iota
	Output
)

// Set is an immutable, insertion-ordered collection of training examples.
// It always holds at least one example; editors return a new Set.
type Set struct {
	examples []model.Example
}

// XOR returns the default four-row table.
func XOR() []model.Example {
	return []model.Example{
		{Input: []float64{0, 0}, Output: []float64{0}},
		{Input: []float64{0, 1}, Output: []float64{1}},
		{Input: []float64{1, 0}, Output: []float64{1}},
		{Input: []float64{1, 1}, Output: []float64{0}},
	}
}

// New builds a Set from examples. Vectors are padded or truncated to the
// model widths and components clamped to [0, 1]. An empty input yields a
// single blank example.
func New(examples []model.Example) *Set {
	s := &Set{examples: make([]model.Example, 0, len(examples))}
	for _, ex := range examples {
		s.examples = append(s.examples, normalize(ex))
	}
	if len(s.examples) == 0 {
		s.examples = append(s.examples, blank())
	}
	return s
}

// Len returns the number of examples.
func (s *Set) Len() int {
	return len(s.examples)
}

// Examples returns a deep copy of the examples in order.
func (s *Set) Examples() []model.Example {
	out := make([]model.Example, len(s.examples))
	for i, ex := range s.examples {
		out[i] = ex.Clone()
	}
	return out
}

// At returns a copy of example i.
func (s *Set) At(i int) (model.Example, bool) {
	if i < 0 || i >= len(s.examples) {
		return model.Example{}, false
	}
	return s.examples[i].Clone(), true
}

// Targets returns the scalar target of every example.
func (s *Set) Targets() []float64 {
	out := make([]float64, len(s.examples))
	for i, ex := range s.examples {
		out[i] = ex.Target()
	}
	return out
}

// Add returns a Set with a blank example appended.
func (s *Set) Add() *Set {
	next := s.Examples()
	return &Set{examples: append(next, blank())}
}

// Remove returns a Set without example i. Removing the last remaining
// example or an unknown index is rejected and reports false.
func (s *Set) Remove(i int) (*Set, bool) {
	if len(s.examples) <= 1 || i < 0 || i >= len(s.examples) {
		return s, false
	}
	next := s.Examples()
	return &Set{examples: append(next[:i], next[i+1:]...)}, true
}

// Update returns a Set with one component of example i replaced by value
// clamped to [0, 1].
func (s *Set) Update(i int, field Field, component int, value float64) (*Set, bool) {
	if i < 0 || i >= len(s.examples) {
		return s, false
	}
	next := s.Examples()
	var vec []float64
	switch field {
	case Input:
		vec = next[i].Input
	case Output:
		vec = next[i].Output
	default:
		return s, false
	}
	if component < 0 || component >= len(vec) {
		return s, false
	}
	vec[component] = ClampComponent(value)
	return &Set{examples: next}, true
}

// ClampComponent clamps v to [0, 1]; NaN maps to 0.
func ClampComponent(v float64) float64 {
	if math.IsNaN(v) {
		return 0
	}
	return math.Max(0, math.Min(1, v))
}

func blank() model.Example {
	return model.Example{
		Input:  make([]float64, model.InputSize),
		Output: make([]float64, model.OutputSize),
	}
}

func normalize(ex model.Example) model.Example {
	out := blank()
	for i := 0; i < len(out.Input) && i < len(ex.Input); i++ {
		out.Input[i] = ClampComponent(ex.Input[i])
	}
	for i := 0; i < len(out.Output) && i < len(ex.Output); i++ {
		out.Output[i] = ClampComponent(ex.Output[i])
	}
	return out
}
