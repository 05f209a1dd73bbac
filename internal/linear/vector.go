// Package linear implements sparse linear classifiers.
package linear

import "math"

// Vector is a sparse feature vector with strictly increasing indices.
type Vector struct {
	Indices []int
	Values  []float64
}

// Dot returns the inner product of v and the dense weights w.
func (v Vector) Dot(w []float64) float64 {
	var sum float64
	for k, i := range v.Indices {
		sum += v.Values[k] * w[i]
	}
	return sum
}

// AddScaled adds scale*v into the dense vector w.
func (v Vector) AddScaled(w []float64, scale float64) {
	for k, i := range v.Indices {
		w[i] += scale * v.Values[k]
	}
}

// SquaredNorm returns the squared Euclidean norm of v.
func (v Vector) SquaredNorm() float64 {
	var sum float64
	for _, x := range v.Values {
		sum += x * x
	}
	return sum
}

// Normalize scales v to unit length in place. Zero vectors are left as is.
func (v Vector) Normalize() {
	n := math.Sqrt(v.SquaredNorm())
	if n == 0 {
		return
	}
	for k := range v.Values {
		v.Values[k] /= n
	}
}

// Len returns the number of stored entries.
func (v Vector) Len() int {
	return len(v.Indices)
}

// argmax returns the index of the largest score; ties go to the lowest index.
func argmax(scores []float64) int {
	best := 0
	for k := 1; k < len(scores); k++ {
		if scores[k] > scores[best] {
			best = k
		}
	}
	return best
}
