package matching

import (
	"strings"

	"github.com/NikKohlmeier/job-helper/internal/config"
	"github.com/NikKohlmeier/job-helper/internal/job"
	"github.com/NikKohlmeier/job-helper/internal/profile"
)

// CultureBreakdown carries the sub-signal values behind a culture score, for
// explaining a verdict to the user. Each component is in [0,1] before
// weighting; Bonus is the additive role-type credit applied after the
// weighted sum.
type CultureBreakdown struct {
	Arrangement float64
	Priorities  float64
	RedFlags    float64
	Bonus       float64
	Score       float64
}

// CultureScore computes the rule-based culture fit of a posting against the
// profile preferences. It is a pure function of its inputs; the weights are
// assumed to be validated at configuration load.
func CultureScore(p *profile.Profile, j *job.Job, weights config.CultureWeights) float64 {
	return ExplainCulture(p, j, weights).Score
}

// ExplainCulture computes the culture score together with its sub-signal
// breakdown.
func ExplainCulture(p *profile.Profile, j *job.Job, weights config.CultureWeights) CultureBreakdown {
	text := strings.ToLower(j.Title + "\n" + j.Description)

	b := CultureBreakdown{
		Arrangement: arrangementCredit(p.WorkPreferences, j, weights),
		Priorities:  matchedFraction(p.CulturePriorities, text),
		RedFlags:    1.0 - matchedFraction(p.RedFlagKeywords, text),
		Bonus:       roleBonus(p.RoleTypeBonuses, text),
	}

	sum := weights.Arrangement*b.Arrangement +
		weights.Priorities*b.Priorities +
		weights.RedFlags*b.RedFlags

	b.Score = clamp01(sum + b.Bonus)
	return b
}

// arrangementCredit averages the remote, salary and location sub-checks with
// equal weight.
func arrangementCredit(prefs profile.WorkPreferences, j *job.Job, weights config.CultureWeights) float64 {
	return (remoteCredit(prefs, j, weights.PartialRemote) +
		salaryCredit(prefs, j, weights.PartialSalary) +
		locationCredit(prefs, j)) / 3
}

func remoteCredit(prefs profile.WorkPreferences, j *job.Job, partial float64) float64 {
	switch prefs.RemotePreference {
	case profile.RemoteAcceptable:
		return 1.0
	case profile.RemoteRequired:
		if j.Remote {
			return 1.0
		}
		return 0.0
	default:
		if j.Remote {
			return 1.0
		}
		return partial
	}
}

// salaryCredit gives full credit when the posting's stated range overlaps
// the profile band, partial credit when only one bound is stated and clears
// the profile minimum, and nothing when the range is disjoint or no salary
// is stated at all.
func salaryCredit(prefs profile.WorkPreferences, j *job.Job, partial float64) float64 {
	jobMin, jobMax := j.SalaryMin, j.SalaryMax

	switch {
	case jobMin > 0 && jobMax > 0:
		if jobMin <= prefs.SalaryMax && jobMax >= prefs.SalaryMin {
			return 1.0
		}
		return 0.0
	case jobMin > 0:
		if jobMin >= prefs.SalaryMin {
			return partial
		}
		return 0.0
	case jobMax > 0:
		if jobMax >= prefs.SalaryMin {
			return partial
		}
		return 0.0
	default:
		return 0.0
	}
}

func locationCredit(prefs profile.WorkPreferences, j *job.Job) float64 {
	if j.Remote {
		return 1.0
	}

	location := strings.ToLower(strings.TrimSpace(j.Location))
	if location == "" {
		return 0.0
	}

	for _, acceptable := range prefs.AcceptableLocations {
		if strings.Contains(location, strings.ToLower(acceptable)) {
			return 1.0
		}
	}

	return 0.0
}

// matchedFraction returns the fraction of phrases found in the text with a
// case-insensitive substring match. With no phrases configured nothing can
// match, so the fraction is zero.
func matchedFraction(phrases []string, loweredText string) float64 {
	if len(phrases) == 0 {
		return 0.0
	}

	matched := 0
	for _, phrase := range phrases {
		if strings.Contains(loweredText, strings.ToLower(phrase)) {
			matched++
		}
	}

	return float64(matched) / float64(len(phrases))
}

func roleBonus(bonuses map[string]float64, loweredText string) float64 {
	total := 0.0
	for tag, bonus := range bonuses {
		if strings.Contains(loweredText, strings.ToLower(tag)) {
			total += bonus
		}
	}
	return total
}
