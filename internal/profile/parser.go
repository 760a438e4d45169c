package profile

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// ErrEmptyDocument is returned when the profile document has no content.
var ErrEmptyDocument = errors.New("profile document is empty")

var (
	expertRe       = regexp.MustCompile(`(?s)\*\*Tier 1 - Expert Level:\*\*(.*?)\*\*Tier 2`)
	intermediateRe = regexp.MustCompile(`(?s)\*\*Tier 2 - Intermediate Level:\*\*(.*?)\*\*Tier 3`)
	foundationalRe = regexp.MustCompile(`(?s)\*\*Tier 3 - Foundational/Learning:\*\*(.*?)###`)

	salaryRe   = regexp.MustCompile(`\*\*Salary Range:\*\*\s*\$?([\d,]+)\s*-\s*\$?([\d,]+)`)
	remoteRe   = regexp.MustCompile(`\*\*Remote:\*\*\s*([^\n]+)`)
	locationRe = regexp.MustCompile(`\*\*Location:\*\*\s*([^\n]+)`)

	greenFlagsRe      = regexp.MustCompile(`(?s)### Green Flags.*?\n(.*?)### Deal-Breakers`)
	redFlagsRe        = regexp.MustCompile(`(?s)### Deal-Breakers.*?\n(.*?)(?:###|\z)`)
	accomplishmentsRe = regexp.MustCompile(`(?s)\*\*Key Accomplishments:\*\*(.*?)(?:\*\*Why Staying|\z)`)

	titledBulletRe = regexp.MustCompile(`-\s*\*\*([^:*]+):?\*\*:?\s*([^\n]*)`)
)

// Parse extracts the structured profile from the candidate's markdown
// profile document. Sections that are missing simply yield empty fields;
// only a fully empty document is an error.
func Parse(content string) (*Profile, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyDocument
	}

	p := &Profile{
		Skills: map[Tier][]string{
			TierExpert:       extractBullets(content, expertRe),
			TierIntermediate: extractBullets(content, intermediateRe),
			TierFoundational: extractBullets(content, foundationalRe),
		},
		WorkPreferences:   extractWorkPreferences(content),
		CulturePriorities: extractTitledPhrases(content, greenFlagsRe),
		RedFlagKeywords:   extractTitledPhrases(content, redFlagsRe),
		Accomplishments:   extractTitledEntries(content, accomplishmentsRe),
		RoleTypeBonuses:   map[string]float64{},
	}

	return p, nil
}

func extractWorkPreferences(content string) WorkPreferences {
	prefs := WorkPreferences{RemotePreference: RemotePreferred}

	if m := salaryRe.FindStringSubmatch(content); m != nil {
		prefs.SalaryMin = parseAmount(m[1])
		prefs.SalaryMax = parseAmount(m[2])
	}

	if m := remoteRe.FindStringSubmatch(content); m != nil {
		prefs.RemotePreference = classifyRemote(m[1])
	}

	if m := locationRe.FindStringSubmatch(content); m != nil {
		for _, loc := range strings.Split(m[1], " or ") {
			if loc = strings.TrimSpace(loc); loc != "" {
				prefs.AcceptableLocations = append(prefs.AcceptableLocations, loc)
			}
		}
	}

	return prefs
}

func classifyRemote(text string) RemotePreference {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "required") || strings.Contains(lower, "must"):
		return RemoteRequired
	case strings.Contains(lower, "acceptable") || strings.Contains(lower, "open") || strings.Contains(lower, "flexible"):
		return RemoteAcceptable
	default:
		return RemotePreferred
	}
}

func parseAmount(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

// extractBullets returns the top-level bullet items of the section matched by
// re. Nested bullets are skipped.
func extractBullets(content string, re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var items []string
	for _, line := range strings.Split(m[1], "\n") {
		if strings.HasPrefix(line, "  -") {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		if item := strings.TrimSpace(strings.TrimPrefix(trimmed, "-")); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// extractTitledPhrases returns the lowercased bold titles of `- **Title:** desc`
// bullets. The titles are the keyword phrases matched against posting text.
func extractTitledPhrases(content string, re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var phrases []string
	for _, entry := range titledBulletRe.FindAllStringSubmatch(m[1], -1) {
		if phrase := strings.ToLower(strings.TrimSpace(entry[1])); phrase != "" {
			phrases = append(phrases, phrase)
		}
	}
	return phrases
}

// extractTitledEntries returns `Title: description` strings for `- **Title:** desc`
// bullets, keeping the descriptive text for the embedding summary.
func extractTitledEntries(content string, re *regexp.Regexp) []string {
	m := re.FindStringSubmatch(content)
	if m == nil {
		return nil
	}

	var entries []string
	for _, entry := range titledBulletRe.FindAllStringSubmatch(m[1], -1) {
		title := strings.TrimSpace(entry[1])
		desc := strings.TrimSpace(entry[2])
		if title == "" {
			continue
		}
		if desc == "" {
			entries = append(entries, title)
			continue
		}
		entries = append(entries, title+": "+desc)
	}
	return entries
}
