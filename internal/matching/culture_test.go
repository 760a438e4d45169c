package matching

import (
	"math"
	"testing"

	"github.com/NikKohlmeier/job-helper/internal/config"
	"github.com/NikKohlmeier/job-helper/internal/job"
	"github.com/NikKohlmeier/job-helper/internal/profile"
)

func testProfile() *profile.Profile {
	return &profile.Profile{
		WorkPreferences: profile.WorkPreferences{
			RemotePreference:    profile.RemotePreferred,
			SalaryMin:           70000,
			SalaryMax:           90000,
			AcceptableLocations: []string{"Fort Wayne", "Grand Rapids"},
		},
		CulturePriorities: []string{"mission-driven", "work-life balance"},
		RedFlagKeywords:   []string{"fast-paced", "wear many hats"},
		RoleTypeBonuses:   map[string]float64{},
	}
}

func cultureWeights() config.CultureWeights {
	return config.DefaultScoring().Culture
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestCultureScorePerfectFit(t *testing.T) {
	p := testProfile()
	j := &job.Job{
		Title:       "Senior Web Developer",
		Description: "Join our mission-driven team, we value work-life balance.",
		Remote:      true,
		SalaryMin:   80000,
		SalaryMax:   100000,
	}

	b := ExplainCulture(p, j, cultureWeights())

	if !almostEqual(b.Priorities, 1.0) {
		t.Fatalf("expected priority match 1.0 (2/2), got %v", b.Priorities)
	}
	if !almostEqual(b.RedFlags, 1.0) {
		t.Fatalf("expected red-flag signal 1.0 (0 matches), got %v", b.RedFlags)
	}
	if !almostEqual(b.Arrangement, 1.0) {
		t.Fatalf("expected full arrangement credit, got %v", b.Arrangement)
	}
	if !almostEqual(b.Score, 1.0) {
		t.Fatalf("expected culture score 1.0, got %v", b.Score)
	}
}

func TestCultureScoreDominatedByRedFlags(t *testing.T) {
	p := testProfile()
	j := &job.Job{
		Title:       "Developer",
		Description: "We are a fast-paced environment, wear many hats every day.",
		Remote:      true,
		SalaryMin:   80000,
		SalaryMax:   100000,
	}

	b := ExplainCulture(p, j, cultureWeights())

	if !almostEqual(b.Priorities, 0.0) {
		t.Fatalf("expected priority match 0.0, got %v", b.Priorities)
	}
	if !almostEqual(b.RedFlags, 0.0) {
		t.Fatalf("expected red-flag signal 0.0 (2/2 matched), got %v", b.RedFlags)
	}

	// Perfect arrangement contributes only its 0.40 weight.
	if !almostEqual(b.Score, 0.40) {
		t.Fatalf("expected culture score 0.40, got %v", b.Score)
	}
}

func TestCultureScoreSparseTextCannotScoreHigh(t *testing.T) {
	p := testProfile()
	j := &job.Job{Title: "Developer", Description: " "}

	b := ExplainCulture(p, j, cultureWeights())

	if !almostEqual(b.Priorities, 0.0) {
		t.Fatalf("expected zero priority match for empty text, got %v", b.Priorities)
	}
	if !almostEqual(b.RedFlags, 1.0) {
		t.Fatalf("expected maximal red-flag signal for empty text, got %v", b.RedFlags)
	}
}

func TestCultureScoreRemotePreferencePartialCredit(t *testing.T) {
	p := testProfile()
	w := cultureWeights()

	onsite := &job.Job{Title: "Developer", Description: "On site role.", Remote: false}

	b := ExplainCulture(p, onsite, w)
	// remote 0.5 partial, salary 0 (unstated), location 0 (unknown)
	if !almostEqual(b.Arrangement, w.PartialRemote/3) {
		t.Fatalf("expected arrangement %v, got %v", w.PartialRemote/3, b.Arrangement)
	}

	p.WorkPreferences.RemotePreference = profile.RemoteRequired
	b = ExplainCulture(p, onsite, w)
	if !almostEqual(b.Arrangement, 0.0) {
		t.Fatalf("expected zero arrangement credit when remote is required, got %v", b.Arrangement)
	}

	p.WorkPreferences.RemotePreference = profile.RemoteAcceptable
	b = ExplainCulture(p, onsite, w)
	if !almostEqual(b.Arrangement, 1.0/3) {
		t.Fatalf("expected full remote credit when any arrangement is acceptable, got %v", b.Arrangement)
	}
}

func TestCultureScoreSalaryCredits(t *testing.T) {
	p := testProfile()
	p.WorkPreferences.RemotePreference = profile.RemoteRequired
	w := cultureWeights()

	cases := []struct {
		name     string
		min, max int
		want     float64
	}{
		{name: "overlapping range", min: 85000, max: 110000, want: 1.0},
		{name: "disjoint range", min: 40000, max: 60000, want: 0.0},
		{name: "single bound above minimum", min: 75000, want: w.PartialSalary},
		{name: "single bound below minimum", min: 50000, want: 0.0},
		{name: "no salary stated", want: 0.0},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			j := &job.Job{Title: "Developer", Description: "x", SalaryMin: tt.min, SalaryMax: tt.max}

			b := ExplainCulture(p, j, w)
			// remote 0 (required, on-site), location 0, so the average isolates salary.
			if !almostEqual(b.Arrangement, tt.want/3) {
				t.Fatalf("expected arrangement %v, got %v", tt.want/3, b.Arrangement)
			}
		})
	}
}

func TestCultureScoreLocationCredit(t *testing.T) {
	p := testProfile()
	p.WorkPreferences.RemotePreference = profile.RemoteRequired
	w := cultureWeights()

	j := &job.Job{Title: "Developer", Description: "x", Location: "Fort Wayne, IN"}
	b := ExplainCulture(p, j, w)
	if !almostEqual(b.Arrangement, 1.0/3) {
		t.Fatalf("expected location credit for acceptable location, got arrangement %v", b.Arrangement)
	}

	j.Location = "New York, NY"
	b = ExplainCulture(p, j, w)
	if !almostEqual(b.Arrangement, 0.0) {
		t.Fatalf("expected no location credit for other location, got arrangement %v", b.Arrangement)
	}

	// A remote posting satisfies the location check regardless of location.
	j.Remote = true
	b = ExplainCulture(p, j, w)
	if b.Arrangement <= 0.0 {
		t.Fatalf("expected location credit for remote posting, got arrangement %v", b.Arrangement)
	}
}

func TestCultureScoreRoleBonusIsCapped(t *testing.T) {
	p := testProfile()
	p.RoleTypeBonuses = map[string]float64{"wordpress": 0.05}
	j := &job.Job{
		Title:       "WordPress Developer",
		Description: "Join our mission-driven team, we value work-life balance.",
		Remote:      true,
		SalaryMin:   80000,
		SalaryMax:   100000,
	}

	b := ExplainCulture(p, j, cultureWeights())

	if !almostEqual(b.Bonus, 0.05) {
		t.Fatalf("expected role bonus 0.05, got %v", b.Bonus)
	}
	if !almostEqual(b.Score, 1.0) {
		t.Fatalf("expected bonus-boosted score clamped to 1.0, got %v", b.Score)
	}
}

func TestCultureScoreAlwaysInRange(t *testing.T) {
	p := testProfile()
	jobs := []*job.Job{
		{Title: "A", Description: "fast-paced, wear many hats"},
		{Title: "B", Description: "mission-driven work-life balance", Remote: true, SalaryMin: 80000, SalaryMax: 85000},
		{Title: "C", Description: " "},
	}

	for _, j := range jobs {
		score := CultureScore(p, j, cultureWeights())
		if score < 0 || score > 1 {
			t.Fatalf("culture score out of range for %s: %v", j.Title, score)
		}
	}
}
