package main

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"neuroforge/internal/trainer"
)

// indexedValue is one "i:j[:k]=value" command line edit.
type indexedValue struct {
	index []int
	value float64
}

// editList is a repeatable flag of indexed edits with a fixed index arity.
type editList struct {
	arity int
	items []indexedValue
}

func (l *editList) String() string {
	if l == nil {
		return ""
	}
	parts := make([]string, 0, len(l.items))
	for _, it := range l.items {
		idx := make([]string, len(it.index))
		for i, v := range it.index {
			idx[i] = strconv.Itoa(v)
		}
		parts = append(parts, strings.Join(idx, ":")+"="+strconv.FormatFloat(it.value, 'g', -1, 64))
	}
	return strings.Join(parts, ",")
}

// Set parses one edit. Indices must be integers; the value follows the
// weight parsing rules and falls back to 0.
func (l *editList) Set(raw string) error {
	lhs, rhs, ok := strings.Cut(raw, "=")
	if !ok {
		return errors.Errorf("%q: missing '='", raw)
	}
	fields := strings.Split(lhs, ":")
	if len(fields) != l.arity {
		return errors.Errorf("%q: expected %d indices", raw, l.arity)
	}
	idx := make([]int, len(fields))
	for i, f := range fields {
		n, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return errors.Wrapf(err, "%q: index %d", raw, i)
		}
		idx[i] = n
	}
	l.items = append(l.items, indexedValue{index: idx, value: trainer.ParseWeight(rhs)})
	return nil
}

// paramEdits collects -weight layer:neuron:input=value and
// -bias layer:neuron=value overrides.
type paramEdits struct {
	weights editList
	biases  editList
}

func newParamEdits() *paramEdits {
	return &paramEdits{
		weights: editList{arity: 3},
		biases:  editList{arity: 2},
	}
}

func (p *paramEdits) apply(s *trainer.Session) error {
	for _, w := range p.weights.items {
		if err := s.SetWeight(w.index[0], w.index[1], w.index[2], w.value); err != nil {
			return err
		}
	}
	for _, b := range p.biases.items {
		if err := s.SetBias(b.index[0], b.index[1], b.value); err != nil {
			return err
		}
	}
	return nil
}
