package job

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ErrMissingFields is returned when a posting lacks one of the required
// title/company/description fields.
var ErrMissingFields = errors.New("title, company and description are required")

// Job is one job posting. The identity is assigned at creation and never
// changes. Scores is nil until the matching engine has scored the posting;
// the engine always writes all four derived values as a single unit.
type Job struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Company     string    `json:"company"`
	Description string    `json:"description"`
	URL         string    `json:"url,omitempty"`
	Location    string    `json:"location,omitempty"`
	Remote      bool      `json:"remote,omitempty"`
	SalaryMin   int       `json:"salary_min,omitempty"`
	SalaryMax   int       `json:"salary_max,omitempty"`
	AddedAt     time.Time `json:"added_at"`

	Scores *Scores `json:"scores,omitempty"`
}

// Scores are the derived fields written by the matching engine. Each score
// is in [0,1].
type Scores struct {
	Technical float64 `json:"technical_score"`
	Culture   float64 `json:"culture_score"`
	Overall   float64 `json:"overall_score"`
	Passed    bool    `json:"passed_filters"`
}

// New creates a posting with a fresh identity. Title, company and
// description must be non-empty.
func New(title, company, description string) (*Job, error) {
	title = strings.TrimSpace(title)
	company = strings.TrimSpace(company)
	description = strings.TrimSpace(description)

	if title == "" || company == "" || description == "" {
		return nil, ErrMissingFields
	}

	return &Job{
		ID:          uuid.NewString(),
		Title:       title,
		Company:     company,
		Description: description,
		AddedAt:     time.Now().UTC(),
	}, nil
}

// Scored reports whether the matching engine has written scores onto the
// posting.
func (j *Job) Scored() bool {
	return j.Scores != nil
}

// EmbeddingText builds the text representation the posting embedding is
// computed from.
func (j *Job) EmbeddingText() string {
	parts := []string{
		"Job Title: " + j.Title,
		"Company: " + j.Company,
	}

	if j.Location != "" {
		parts = append(parts, "Location: "+j.Location)
	}

	if j.Remote {
		parts = append(parts, "Remote: Yes")
	}

	switch {
	case j.SalaryMin > 0 && j.SalaryMax > 0:
		parts = append(parts, fmt.Sprintf("Salary: $%d - $%d", j.SalaryMin, j.SalaryMax))
	case j.SalaryMin > 0:
		parts = append(parts, fmt.Sprintf("Salary: $%d+", j.SalaryMin))
	}

	parts = append(parts, "", "Job Description:", j.Description)

	return strings.Join(parts, "\n")
}

// Jobs is a list of postings with collection helpers.
type Jobs struct {
	Items []*Job
}

func (js *Jobs) Len() int {
	return len(js.Items)
}

func (js *Jobs) FindByID(id string) *Job {
	for _, j := range js.Items {
		if j.ID == id {
			return j
		}
	}
	return nil
}

// SortByOverall orders postings by overall score descending. Unscored
// postings sink to the end.
func (js *Jobs) SortByOverall() {
	sort.SliceStable(js.Items, func(a, b int) bool {
		ja, jb := js.Items[a], js.Items[b]
		if ja.Scored() != jb.Scored() {
			return ja.Scored()
		}
		if !ja.Scored() {
			return false
		}
		return ja.Scores.Overall > jb.Scores.Overall
	})
}

// Passed returns the postings that cleared every minimum threshold.
func (js *Jobs) Passed() *Jobs {
	passed := &Jobs{}
	for _, j := range js.Items {
		if j.Scored() && j.Scores.Passed {
			passed.Items = append(passed.Items, j)
		}
	}
	return passed
}
