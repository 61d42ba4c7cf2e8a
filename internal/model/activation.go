package model

import "math"

// sigmoidClamp bounds pre-activations so math.Exp cannot overflow.
const sigmoidClamp = 500

// Sigmoid returns 1 / (1 + e^-x) with x clamped to [-500, 500].
func Sigmoid(x float64) float64 {
	x = math.Max(math.Min(x, sigmoidClamp), -sigmoidClamp)
	return 1 / (1 + math.Exp(-x))
}

// SigmoidDerivative returns the sigmoid slope given an activated output a.
func SigmoidDerivative(a float64) float64 {
	return a * (1 - a)
}
