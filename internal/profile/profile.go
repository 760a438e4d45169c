package profile

import (
	"fmt"
	"strings"
)

// Tier names a proficiency level in the skills section of the profile.
type Tier string

const (
	TierExpert       Tier = "expert"
	TierIntermediate Tier = "intermediate"
	TierFoundational Tier = "foundational"
)

// RemotePreference expresses how strongly the candidate wants remote work.
type RemotePreference string

const (
	// RemoteRequired means on-site postings get no work-arrangement credit.
	RemoteRequired RemotePreference = "required"
	// RemotePreferred means on-site postings get partial credit.
	RemotePreferred RemotePreference = "preferred"
	// RemoteAcceptable means the arrangement does not matter.
	RemoteAcceptable RemotePreference = "acceptable"
)

// WorkPreferences are the structured work-arrangement constraints of the
// candidate.
type WorkPreferences struct {
	RemotePreference    RemotePreference
	SalaryMin           int
	SalaryMax           int
	AcceptableLocations []string
}

// Profile is the candidate side of every match. It is loaded once per process
// and treated as read-only for the lifetime of a scoring session.
type Profile struct {
	Skills            map[Tier][]string
	WorkPreferences   WorkPreferences
	CulturePriorities []string
	RedFlagKeywords   []string
	RoleTypeBonuses   map[string]float64
	Accomplishments   []string

	// Embedding is computed once from SummaryText and cached by the storage
	// layer. It is never recomputed unless the profile source text changes.
	Embedding []float64
}

// HasEmbedding reports whether the profile embedding has been computed.
func (p *Profile) HasEmbedding() bool {
	return p != nil && len(p.Embedding) > 0
}

const topAccomplishments = 5

// SummaryText builds the text representation the profile embedding is
// computed from. Technical skills come first so they dominate the semantic
// match against job descriptions.
func (p *Profile) SummaryText() string {
	parts := []string{"TECHNICAL EXPERTISE:"}

	if skills := p.Skills[TierExpert]; len(skills) > 0 {
		parts = append(parts, "Expert: "+strings.Join(skills, ", "))
	}
	if skills := p.Skills[TierIntermediate]; len(skills) > 0 {
		parts = append(parts, "Intermediate: "+strings.Join(skills, ", "))
	}

	if len(p.Accomplishments) > 0 {
		parts = append(parts, "", "KEY ACCOMPLISHMENTS:")
		accomplishments := p.Accomplishments
		if len(accomplishments) > topAccomplishments {
			accomplishments = accomplishments[:topAccomplishments]
		}
		parts = append(parts, accomplishments...)
	}

	parts = append(parts, "", "WORK PREFERENCES:")
	prefs := p.WorkPreferences
	if prefs.SalaryMin > 0 {
		parts = append(parts, fmt.Sprintf("Salary range: $%d-$%d", prefs.SalaryMin, prefs.SalaryMax))
	}
	if prefs.RemotePreference == RemoteRequired || prefs.RemotePreference == RemotePreferred {
		parts = append(parts, "Strong preference for remote work")
	}
	if len(prefs.AcceptableLocations) > 0 {
		parts = append(parts, "Locations: "+strings.Join(prefs.AcceptableLocations, ", "))
	}

	if len(p.CulturePriorities) > 0 {
		parts = append(parts, "", "CULTURE PRIORITIES:")
		parts = append(parts, p.CulturePriorities...)
	}

	return strings.Join(parts, "\n")
}
