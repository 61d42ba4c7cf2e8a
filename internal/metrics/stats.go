package metrics

import "time"

// Window accumulates timing stats across multiple epochs.
type Window struct {
	epochs       int
	compute      time.Duration
	lastLoss     float64
	lastAccuracy float64
}

// Record adds one completed epoch to the window.
func (w *Window) Record(computeTime time.Duration, loss, accuracy float64) {
	w.epochs++
	w.compute += computeTime
	w.lastLoss = loss
	w.lastAccuracy = accuracy
}

// Snapshot returns aggregated metrics and resets the window.
func (w *Window) Snapshot() Snapshot {
	snap := Snapshot{Epochs: w.epochs}
	if w.compute > 0 {
		snap.EpochsPerSec = float64(w.epochs) / w.compute.Seconds()
	}
	if w.epochs > 0 {
		snap.AvgComputeMS = (w.compute.Seconds() * 1000) / float64(w.epochs)
	}
	snap.LastLoss = w.lastLoss
	snap.Accuracy = Percent(w.lastAccuracy)

	w.epochs = 0
	w.compute = 0
	return snap
}

// Snapshot represents loggable metrics.
type Snapshot struct {
	Epochs       int
	EpochsPerSec float64
	AvgComputeMS float64
	LastLoss     float64
	Accuracy     int
}
