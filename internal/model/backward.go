package model

import "gonum.org/v1/gonum/mat"

// Backward applies one online backpropagation step for ex and returns the
// updated Network. net itself is left untouched. All deltas and updates use
// the activations from a single forward pass over the pre-update weights.
func Backward(ex Example, net *Network, learningRate float64) *Network {
	acts := net.activate(ex.Input)
	if acts == nil {
		return net
	}
	depth := len(net.weights)
	deltas := make([]*mat.VecDense, depth)

	out := acts[depth]
	output := out.AtVec(0)
	delta := mat.NewVecDense(out.Len(), nil)
	delta.SetVec(0, (ex.Target()-output)*SigmoidDerivative(output))
	deltas[depth-1] = delta

	for i := depth - 2; i >= 0; i-- {
		a := acts[i+1]
		d := mat.NewVecDense(a.Len(), nil)
		d.MulVec(net.weights[i+1].T(), deltas[i+1])
		for j := 0; j < a.Len(); j++ {
			d.SetVec(j, d.AtVec(j)*SigmoidDerivative(a.AtVec(j)))
		}
		deltas[i] = d
	}

	next := net.Clone()
	for i := 0; i < depth; i++ {
		// w[j][k] += lr * delta[j] * a[k]
		next.weights[i].RankOne(next.weights[i], learningRate, deltas[i], acts[i])
		next.biases[i].AddScaledVec(next.biases[i], learningRate, deltas[i])
	}
	return next
}
