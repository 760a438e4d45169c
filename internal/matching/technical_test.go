package matching

import (
	"errors"
	"math"
	"testing"
)

func TestTechnicalScoreSelfSimilarity(t *testing.T) {
	vec := []float64{0.3, -1.2, 4.5, 0.7}

	score, err := TechnicalScore(vec, vec)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if math.Abs(score-1.0) > 1e-9 {
		t.Fatalf("expected self similarity 1.0, got %v", score)
	}
}

func TestTechnicalScoreOrthogonalVectors(t *testing.T) {
	score, err := TechnicalScore([]float64{1, 0}, []float64{0, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score != 0.0 {
		t.Fatalf("expected orthogonal similarity 0.0, got %v", score)
	}
}

func TestTechnicalScoreFloorsNegativeSimilarity(t *testing.T) {
	score, err := TechnicalScore([]float64{1, 0}, []float64{-1, 0})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if score != 0.0 {
		t.Fatalf("expected negative similarity floored to 0.0, got %v", score)
	}
}

func TestTechnicalScoreDimensionMismatch(t *testing.T) {
	cases := [][2][]float64{
		{{1, 2, 3}, {1, 2}},
		{{}, {1, 2}},
		{{1, 2}, {}},
		{nil, nil},
	}

	for _, c := range cases {
		if _, err := TechnicalScore(c[0], c[1]); !errors.Is(err, ErrDimensionMismatch) {
			t.Fatalf("expected ErrDimensionMismatch for %v vs %v, got %v", c[0], c[1], err)
		}
	}
}

func TestTechnicalScoreRejectsZeroVectors(t *testing.T) {
	if _, err := TechnicalScore([]float64{0, 0, 0}, []float64{1, 2, 3}); !errors.Is(err, ErrInvalidEmbedding) {
		t.Fatalf("expected ErrInvalidEmbedding for zero profile vector, got %v", err)
	}

	if _, err := TechnicalScore([]float64{1, 2, 3}, []float64{0, 0, 0}); !errors.Is(err, ErrInvalidEmbedding) {
		t.Fatalf("expected ErrInvalidEmbedding for zero posting vector, got %v", err)
	}
}
