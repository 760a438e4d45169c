package scrape

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gocolly/colly/v2"
	"go.uber.org/zap"

	"github.com/NikKohlmeier/job-helper/internal/job"
	"github.com/NikKohlmeier/job-helper/internal/utils"
)

// ErrIncomplete is returned when a page yields no usable title or
// description.
var ErrIncomplete = errors.New("could not extract a complete job posting")

const (
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// bodyFallbackLimit caps how much raw page text is used when no
	// description container is recognized.
	bodyFallbackLimit = 5000
)

// Selector lists are tried in order; the first match wins. They cover the
// common job-board markup but will not work for every site.
var (
	titleSelectors       = []string{"h1", ".job-title", ".jobsearch-JobInfoHeader-title"}
	companySelectors     = []string{".company", ".employer", "[data-company-name]"}
	descriptionSelectors = []string{".job-description", ".description", "#job-description"}
)

// capture keeps the best match for one field across competing selectors.
type capture struct {
	value    string
	priority int
}

func (c *capture) set(value string, priority int) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	if c.value == "" || priority < c.priority {
		c.value = value
		c.priority = priority
	}
}

// FetchJob downloads the page at url and extracts a job posting from it.
func FetchJob(url string, logger *zap.Logger) (*job.Job, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		title       capture
		company     capture
		description capture
		bodyText    string
		fetchErr    error
	)

	c := colly.NewCollector(colly.UserAgent(userAgent))

	register := func(selectors []string, target *capture) {
		for i, selector := range selectors {
			c.OnHTML(selector, func(e *colly.HTMLElement) {
				target.set(e.Text, i)
			})
		}
	}

	register(titleSelectors, &title)
	register(companySelectors, &company)
	register(descriptionSelectors, &description)

	c.OnHTML("body", func(e *colly.HTMLElement) {
		bodyText = strings.TrimSpace(e.Text)
	})

	c.OnError(func(_ *colly.Response, err error) {
		fetchErr = err
	})

	if err := c.Visit(url); err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if fetchErr != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, fetchErr)
	}

	desc := description.value
	if desc == "" && bodyText != "" {
		runes := []rune(bodyText)
		if len(runes) > bodyFallbackLimit {
			runes = runes[:bodyFallbackLimit]
		}
		desc = string(runes)
	}

	if title.value == "" || desc == "" {
		return nil, ErrIncomplete
	}

	companyName := company.value
	if companyName == "" {
		companyName = "Unknown Company"
	}

	j, err := job.New(title.value, companyName, desc)
	if err != nil {
		return nil, err
	}
	j.URL = url

	logger.Debug("extracted job posting",
		zap.String("url", url),
		zap.String("title", j.Title),
		zap.String("company", j.Company),
		zap.String("description_preview", utils.TruncateForLog(j.Description, 200)),
	)

	return j, nil
}
