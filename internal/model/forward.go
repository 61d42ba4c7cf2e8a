package model

import "gonum.org/v1/gonum/mat"

// Trace is the result of one forward pass.
type Trace struct {
	// Activations holds the input followed by every layer's output.
	Activations [][]float64
	Output      float64
}

// Forward runs input through net. A nil network, or an input whose width
// does not match the first layer, yields an empty trace and output 0.
func Forward(input []float64, net *Network) Trace {
	acts := net.activate(input)
	if acts == nil {
		return Trace{}
	}
	trace := Trace{Activations: make([][]float64, len(acts))}
	for i, a := range acts {
		trace.Activations[i] = mat.Col(nil, 0, a)
	}
	trace.Output = acts[len(acts)-1].AtVec(0)
	return trace
}

// Predict returns only the scalar output of Forward.
func Predict(input []float64, net *Network) float64 {
	return Forward(input, net).Output
}

// activate returns the activation trail as vectors, or nil when the pass
// cannot run.
func (n *Network) activate(input []float64) []*mat.VecDense {
	if n == nil || len(n.weights) == 0 || len(input) != n.layers[0] {
		return nil
	}
	acts := make([]*mat.VecDense, 0, len(n.weights)+1)
	current := mat.NewVecDense(len(input), append([]float64(nil), input...))
	acts = append(acts, current)
	for i, w := range n.weights {
		rows, _ := w.Dims()
		next := mat.NewVecDense(rows, nil)
		next.MulVec(w, current)
		next.AddVec(next, n.biases[i])
		for j := 0; j < rows; j++ {
			next.SetVec(j, Sigmoid(next.AtVec(j)))
		}
		acts = append(acts, next)
		current = next
	}
	return acts
}
