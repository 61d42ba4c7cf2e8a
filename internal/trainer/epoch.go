package trainer

import (
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/floats"

	"neuroforge/internal/model"
)

var (
	// ErrNoNetwork means an epoch was requested before a Network existed.
	ErrNoNetwork = errors.New("trainer: no network")
	// ErrNoExamples means an epoch was requested with an empty training set.
	ErrNoExamples = errors.New("trainer: no training examples")
)

// EpochResult is the output of one training epoch.
type EpochResult struct {
	Network     *model.Network
	Loss        float64
	Predictions []float64
}

// TrainOneEpoch runs online gradient descent over data in order. Each
// example updates the working network before the next one is seen; the
// loss is the mean squared error of each example's post-update prediction.
// Predictions are re-evaluated with the final network. net is not modified.
func TrainOneEpoch(net *model.Network, data []model.Example, learningRate float64) (EpochResult, error) {
	if net == nil {
		return EpochResult{}, ErrNoNetwork
	}
	if len(data) == 0 {
		return EpochResult{}, ErrNoExamples
	}

	working := net
	squared := make([]float64, len(data))
	for i, ex := range data {
		working = model.Backward(ex, working, learningRate)
		diff := ex.Target() - model.Predict(ex.Input, working)
		squared[i] = diff * diff
	}

	predictions := make([]float64, len(data))
	for i, ex := range data {
		predictions[i] = model.Predict(ex.Input, working)
	}

	return EpochResult{
		Network:     working,
		Loss:        floats.Sum(squared) / float64(len(data)),
		Predictions: predictions,
	}, nil
}
