package yolo

import "github.com/chewxy/math32"

// Bounds of the float32 exponential: above expOverflow the result is +Inf and
// below expUnderflow it rounds to zero.
const (
	expOverflow  = 88.72283905206835
	expUnderflow = -103.97207708
)

// exp is math32.Exp with explicit overflow and underflow bounds. The assembly
// implementation wraps to 0 for very large arguments.
func exp(v float32) float32 {
	switch {
	case v > expOverflow:
		return math32.Inf(1)
	case v < expUnderflow:
		return 0
	}
	return math32.Exp(v)
}

// Sigmoid is the logistic function 1 / (1 + e^-v).
//
// The exponential is only ever taken of a non-positive argument, so large
// positive inputs saturate to 1 and large negative inputs to 0. NaN in, NaN out.
func Sigmoid(v float32) float32 {
	if v >= 0 {
		return 1 / (1 + exp(-v))
	}
	e := exp(v)
	return e / (1 + e)
}

// Softmax converts logits into a probability distribution.
//
// The maximum is subtracted from every element before exponentiation so large
// logits cannot overflow. The input is left untouched and a new slice is
// returned. An input containing NaN yields NaN in every entry.
//
// Arguments:
//   - values: The raw logits.
//
// Returns:
//   - []float32: Probabilities of the same length summing to 1.
func Softmax(values []float32) []float32 {
	out := make([]float32, len(values))
	if len(values) == 0 {
		return out
	}

	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}

	var sum float32
	for i, v := range values {
		out[i] = exp(v - maxVal)
		sum += out[i]
	}
	for i := range out {
		out[i] /= sum
	}
	return out
}

// Argmax returns the index and value of the largest element.
//
// Ties resolve to the lowest index: the scan runs left to right and only a
// strictly greater value replaces the current best. Argmax of an empty slice
// returns (-1, 0).
func Argmax(values []float32) (int, float32) {
	if len(values) == 0 {
		return -1, 0
	}
	best := 0
	for i := 1; i < len(values); i++ {
		if values[i] > values[best] {
			best = i
		}
	}
	return best, values[best]
}
