package matching

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// TechnicalScore computes the semantic fit between the profile and posting
// vectors as cosine similarity clamped to [0,1]. Negative similarity has no
// meaning for skill-overlap relevance and is floored to zero.
func TechnicalScore(profileVec, jobVec []float64) (float64, error) {
	if len(profileVec) == 0 || len(jobVec) == 0 || len(profileVec) != len(jobVec) {
		return 0, fmt.Errorf("%w: profile %d, posting %d", ErrDimensionMismatch, len(profileVec), len(jobVec))
	}

	a := mat.NewVecDense(len(profileVec), profileVec)
	b := mat.NewVecDense(len(jobVec), jobVec)

	normA := mat.Norm(a, 2)
	normB := mat.Norm(b, 2)
	if normA == 0 || normB == 0 {
		return 0, ErrInvalidEmbedding
	}

	return clamp01(mat.Dot(a, b) / (normA * normB)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
