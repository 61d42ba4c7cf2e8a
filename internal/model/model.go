package model

// Example is one labeled training pair.
type Example struct {
	Input  []float64
	Output []float64
}

// Target returns the first output component, the only one training uses.
func (e Example) Target() float64 {
	if len(e.Output) == 0 {
		return 0
	}
	return e.Output[0]
}

// Clone returns a deep copy of e.
func (e Example) Clone() Example {
	return Example{
		Input:  append([]float64(nil), e.Input...),
		Output: append([]float64(nil), e.Output...),
	}
}
