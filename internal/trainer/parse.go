package trainer

import (
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"neuroforge/internal/dataset"
	"neuroforge/internal/model"
)

// The parsers below turn free-form user input into values, never failing:
// anything unparsable takes a safe fallback.

// ParseWeight parses a weight or bias value; invalid input yields 0.
func ParseWeight(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return v
}

// ParseLearningRate parses a learning rate; invalid or non-positive input
// yields DefaultLearningRate.
func ParseLearningRate(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return DefaultLearningRate
	}
	return sanitizeLearningRate(v)
}

// ParseSpeed parses a cadence multiplier; invalid or non-positive input
// yields DefaultSpeed.
func ParseSpeed(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return DefaultSpeed
	}
	return sanitizeSpeed(v)
}

// ParseLayerSize parses the leading integer of a hidden layer width, so
// "3abc" and "3.7" both read as 3. Input without leading digits, or a
// zero width, yields 1; the result is clamped to [1, 10].
func ParseLayerSize(s string) int {
	n, ok := leadingInt(s)
	if !ok || n == 0 {
		return model.MinLayerSize
	}
	return model.ClampLayerSize(n)
}

// leadingInt parses an optional sign followed by decimal digits at the
// start of s. Values too large for int saturate.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	return n, true
}

// ParseHiddenLayers parses a comma separated list of hidden widths. Empty
// entries are skipped.
func ParseHiddenLayers(s string) []int {
	var out []int
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		out = append(out, ParseLayerSize(part))
	}
	return out
}

// ParseComponent parses an example component; invalid input yields 0 and
// the result is clamped to [0, 1].
func ParseComponent(s string) float64 {
	v, ok := parseFloat(s)
	if !ok {
		return 0
	}
	return dataset.ClampComponent(v)
}

func parseFloat(s string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}
