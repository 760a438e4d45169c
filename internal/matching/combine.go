package matching

import "github.com/NikKohlmeier/job-helper/internal/config"

// Combine weights the technical and culture scores into the overall score
// and evaluates the pass/fail gate. The gate is conjunctive: a posting must
// clear every minimum, it cannot pass by being strong on one axis while
// failing badly on the other.
func Combine(technical, culture float64, scoring config.Scoring) (overall float64, passed bool) {
	overall = scoring.TechnicalWeight*technical + scoring.CultureWeight*culture

	passed = technical >= scoring.MinTechnicalScore &&
		culture >= scoring.MinCultureScore &&
		overall >= scoring.MinOverallScore

	return overall, passed
}
