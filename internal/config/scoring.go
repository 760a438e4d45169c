package config

import (
	"errors"
	"fmt"
	"math"
)

// weightTolerance is how far a weight pair may drift from 1.0 before the
// configuration is rejected. Matches the slack allowed for values coming
// from hand-edited YAML.
const weightTolerance = 0.01

// ErrInvalidScoring marks a scoring configuration that must not be used.
// Validation happens once at startup; the matching engine assumes a valid
// configuration on every call.
var ErrInvalidScoring = errors.New("invalid scoring configuration")

// Scoring holds the weights and thresholds for combining technical and
// culture scores into an overall verdict.
type Scoring struct {
	TechnicalWeight float64 `mapstructure:"technical-weight"`
	CultureWeight   float64 `mapstructure:"culture-weight"`

	MinTechnicalScore float64 `mapstructure:"min-technical-score"`
	MinCultureScore   float64 `mapstructure:"min-culture-score"`
	MinOverallScore   float64 `mapstructure:"min-overall-score"`

	Culture CultureWeights `mapstructure:"culture"`
}

// CultureWeights configures the culture scorer sub-signals. The three
// weights must sum to 1.0. The partial credits are the fractions awarded
// for soft matches; they are policy knobs, not contracts.
type CultureWeights struct {
	Arrangement float64 `mapstructure:"arrangement"`
	Priorities  float64 `mapstructure:"priorities"`
	RedFlags    float64 `mapstructure:"red-flags"`

	// PartialRemote is the credit for an on-site posting when remote work is
	// preferred but not required.
	PartialRemote float64 `mapstructure:"partial-remote"`
	// PartialSalary is the credit when a posting states only one salary bound
	// and that bound clears the profile minimum.
	PartialSalary float64 `mapstructure:"partial-salary"`
}

// DefaultScoring returns the scoring configuration used when the config file
// does not override it.
func DefaultScoring() Scoring {
	return Scoring{
		TechnicalWeight:   0.6,
		CultureWeight:     0.4,
		MinTechnicalScore: 0.65,
		MinCultureScore:   0.50,
		MinOverallScore:   0.60,
		Culture: CultureWeights{
			Arrangement:   0.40,
			Priorities:    0.30,
			RedFlags:      0.30,
			PartialRemote: 0.5,
			PartialSalary: 0.5,
		},
	}
}

// Validate checks the scoring configuration. A process must refuse to match
// anything with an invalid configuration: every score it produced would be
// silently wrong.
func (s Scoring) Validate() error {
	for name, v := range map[string]float64{
		"technical-weight":    s.TechnicalWeight,
		"culture-weight":      s.CultureWeight,
		"min-technical-score": s.MinTechnicalScore,
		"min-culture-score":   s.MinCultureScore,
		"min-overall-score":   s.MinOverallScore,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %v", ErrInvalidScoring, name, v)
		}
	}

	if sum := s.TechnicalWeight + s.CultureWeight; math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: technical-weight and culture-weight must sum to 1.0, got %v", ErrInvalidScoring, sum)
	}

	return s.Culture.validate()
}

func (c CultureWeights) validate() error {
	for name, v := range map[string]float64{
		"culture.arrangement":    c.Arrangement,
		"culture.priorities":     c.Priorities,
		"culture.red-flags":      c.RedFlags,
		"culture.partial-remote": c.PartialRemote,
		"culture.partial-salary": c.PartialSalary,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: %s must be between 0 and 1, got %v", ErrInvalidScoring, name, v)
		}
	}

	if sum := c.Arrangement + c.Priorities + c.RedFlags; math.Abs(sum-1.0) > weightTolerance {
		return fmt.Errorf("%w: culture sub-signal weights must sum to 1.0, got %v", ErrInvalidScoring, sum)
	}

	return nil
}
