package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccuracy(t *testing.T) {
	cases := []struct {
		name        string
		predictions []float64
		targets     []float64
		want        float64
	}{
		{"all hit", []float64{0.05, 0.95}, []float64{0, 1}, 100},
		{"half", []float64{0.05, 0.5}, []float64{0, 1}, 50},
		{"boundary is a miss", []float64{0.1, 0.85}, []float64{0, 1}, 0},
		{"missing predictions", nil, []float64{0, 1, 1, 0}, 0},
		{"partial predictions", []float64{0.02}, []float64{0, 1, 1, 0}, 25},
		{"no targets", []float64{0.5}, nil, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, Accuracy(tc.predictions, tc.targets), 1e-9)
		})
	}
}

func TestPercentRounds(t *testing.T) {
	assert.Equal(t, 67, Percent(200.0/3))
	assert.Equal(t, 33, Percent(100.0/3))
	assert.Equal(t, 0, Percent(0))
}
