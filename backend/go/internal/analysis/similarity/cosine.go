// Package similarity hosts the numeric comparison of embedding vectors and
// the offline harness used to compare retrieval-quality strategies.
package similarity

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrDimensionMismatch is returned when two embeddings of different
	// length are compared.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
	// ErrZeroVector is returned when a zero-norm embedding would force a
	// division by zero.
	ErrZeroVector = errors.New("zero-norm embedding")
)

// Cosine computes the cosine similarity of two embeddings, in [-1, 1].
// Both vectors must have the same non-zero dimensionality and a non-zero
// norm.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return 0, fmt.Errorf("%w: empty embeddings", ErrZeroVector)
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0, ErrZeroVector
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// Average returns the elementwise mean of the given embeddings. All vectors
// must share the same dimensionality.
func Average(vectors ...[]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, fmt.Errorf("%w: no vectors to average", ErrZeroVector)
	}

	dim := len(vectors[0])
	for _, v := range vectors[1:] {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, dim, len(v))
		}
	}

	avg := make([]float32, dim)
	for _, v := range vectors {
		for i, x := range v {
			avg[i] += x
		}
	}
	for i := range avg {
		avg[i] /= float32(len(vectors))
	}
	return avg, nil
}
