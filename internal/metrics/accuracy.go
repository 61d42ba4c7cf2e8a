package metrics

import "math"

// Tolerance is the absolute error under which a prediction counts as correct.
const Tolerance = 0.1

// Accuracy returns the percentage (0-100) of targets whose prediction lies
// strictly within Tolerance. Targets without a prediction count as misses.
func Accuracy(predictions, targets []float64) float64 {
	if len(targets) == 0 {
		return 0
	}
	hits := 0
	for i, target := range targets {
		if i >= len(predictions) {
			break
		}
		if Correct(predictions[i], target) {
			hits++
		}
	}
	return float64(hits) / float64(len(targets)) * 100
}

// Correct reports whether prediction is within Tolerance of target.
func Correct(prediction, target float64) bool {
	return math.Abs(prediction-target) < Tolerance
}

// Percent rounds an accuracy value for display.
func Percent(accuracy float64) int {
	return int(math.Round(accuracy))
}
