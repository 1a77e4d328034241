package similarity

import (
	"errors"
	"math"
	"testing"
)

func TestCosineSelfSimilarity(t *testing.T) {
	vectors := [][]float32{
		{1, 0, 0},
		{0.5, -0.25, 3.75, 1.25},
		{-2, -2, -2},
	}

	for _, v := range vectors {
		score, err := Cosine(v, v)
		if err != nil {
			t.Fatalf("Cosine(v, v) error = %v", err)
		}
		if math.Abs(score-1.0) > 1e-9 {
			t.Errorf("Cosine(v, v) = %v, expected 1.0", score)
		}
	}
}

func TestCosineOppositeVectors(t *testing.T) {
	v := []float32{0.3, -1.2, 4.5}
	neg := make([]float32, len(v))
	for i, x := range v {
		neg[i] = -x
	}

	score, err := Cosine(v, neg)
	if err != nil {
		t.Fatalf("Cosine(v, -v) error = %v", err)
	}
	if math.Abs(score+1.0) > 1e-9 {
		t.Errorf("Cosine(v, -v) = %v, expected -1.0", score)
	}
}

func TestCosineOrthogonalVectors(t *testing.T) {
	score, err := Cosine([]float32{1, 0}, []float32{0, 1})
	if err != nil {
		t.Fatalf("Cosine() error = %v", err)
	}
	if math.Abs(score) > 1e-9 {
		t.Errorf("Cosine of orthogonal vectors = %v, expected 0", score)
	}
}

func TestCosineDimensionMismatch(t *testing.T) {
	if _, err := Cosine([]float32{1, 2, 3}, []float32{1, 2}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}

func TestCosineZeroVector(t *testing.T) {
	if _, err := Cosine([]float32{0, 0, 0}, []float32{1, 2, 3}); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Expected ErrZeroVector for zero norm, got %v", err)
	}
	if _, err := Cosine(nil, nil); !errors.Is(err, ErrZeroVector) {
		t.Errorf("Expected ErrZeroVector for empty vectors, got %v", err)
	}
}

func TestAverage(t *testing.T) {
	avg, err := Average([]float32{1, 2}, []float32{3, 4})
	if err != nil {
		t.Fatalf("Average() error = %v", err)
	}
	if avg[0] != 2 || avg[1] != 3 {
		t.Errorf("Average([1 2], [3 4]) = %v, expected [2 3]", avg)
	}

	if _, err := Average([]float32{1, 2}, []float32{1}); !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("Expected ErrDimensionMismatch, got %v", err)
	}
}
