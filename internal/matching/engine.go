package matching

import (
	"context"
	"errors"
	"fmt"
	"math"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/NikKohlmeier/job-helper/internal/config"
	"github.com/NikKohlmeier/job-helper/internal/embedding"
	"github.com/NikKohlmeier/job-helper/internal/job"
	"github.com/NikKohlmeier/job-helper/internal/profile"
)

const defaultWorkers = 4

// Engine scores postings against the profile. The profile is read-only
// shared state for every call; each posting must only be matched by one
// caller at a time.
type Engine struct {
	provider embedding.Provider
	scoring  config.Scoring
	workers  int
	logger   *zap.Logger
}

// NewEngine creates an engine. The scoring configuration must already be
// validated. workers bounds how many postings are embedded concurrently
// during MatchAll.
func NewEngine(provider embedding.Provider, scoring config.Scoring, workers int, logger *zap.Logger) *Engine {
	if workers <= 0 {
		workers = defaultWorkers
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Engine{
		provider: provider,
		scoring:  scoring,
		workers:  workers,
		logger:   logger,
	}
}

// Scoring exposes the active weights and thresholds so callers can explain
// why a posting failed.
func (e *Engine) Scoring() config.Scoring {
	return e.scoring
}

// Match scores one posting. All four derived fields are written onto the
// posting as a single unit; a posting is never left partially scored.
func (e *Engine) Match(ctx context.Context, p *profile.Profile, j *job.Job) (*job.Job, error) {
	if !p.HasEmbedding() {
		return nil, ErrProfileNotInitialized
	}

	jobVec, err := e.provider.Embed(ctx, j.EmbeddingText())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEmbeddingUnavailable, err)
	}

	technical, err := TechnicalScore(p.Embedding, jobVec)
	if err != nil {
		return nil, err
	}

	culture := CultureScore(p, j, e.scoring.Culture)
	overall, passed := Combine(technical, culture, e.scoring)

	j.Scores = &job.Scores{
		Technical: round3(technical),
		Culture:   round3(culture),
		Overall:   round3(overall),
		Passed:    passed,
	}

	e.logger.Debug("scored posting",
		zap.String("job_id", j.ID),
		zap.Float64("technical_score", j.Scores.Technical),
		zap.Float64("culture_score", j.Scores.Culture),
		zap.Float64("overall_score", j.Scores.Overall),
		zap.Bool("passed_filters", passed),
	)

	return j, nil
}

// Failure reports one posting the batch could not score.
type Failure struct {
	Job *job.Job
	Err error
}

// BatchResult is the outcome of MatchAll. Scored holds the postings that
// were scored, in input order; Failures the ones the embedding provider
// failed on.
type BatchResult struct {
	Scored   *job.Jobs
	Failures []Failure
}

// MatchAll scores every posting independently with a bounded worker pool.
// A provider failure on one posting is collected into the result instead of
// aborting the batch. Scoring errors that indicate a broken embedding
// pipeline (dimension mismatch, all-zero vectors) abort the batch, as does
// context cancellation.
func (e *Engine) MatchAll(ctx context.Context, p *profile.Profile, jobs *job.Jobs) (*BatchResult, error) {
	if !p.HasEmbedding() {
		return nil, ErrProfileNotInitialized
	}

	outcomes := make([]Failure, jobs.Len())

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(e.workers)

	for i, j := range jobs.Items {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			_, err := e.Match(ctx, p, j)
			if err == nil {
				outcomes[i] = Failure{Job: j}
				return nil
			}

			if errors.Is(err, ErrEmbeddingUnavailable) && ctx.Err() == nil {
				e.logger.Warn("embedding failed for posting",
					zap.String("job_id", j.ID),
					zap.Error(err),
				)
				outcomes[i] = Failure{Job: j, Err: err}
				return nil
			}

			return fmt.Errorf("match job %s: %w", j.ID, err)
		})
	}

	if err := group.Wait(); err != nil {
		return nil, err
	}

	result := &BatchResult{Scored: &job.Jobs{}}
	for _, outcome := range outcomes {
		if outcome.Err != nil {
			result.Failures = append(result.Failures, outcome)
			continue
		}
		result.Scored.Items = append(result.Scored.Items, outcome.Job)
	}

	e.logger.Info("matching completed",
		zap.Int("initial", jobs.Len()),
		zap.Int("scored", result.Scored.Len()),
		zap.Int("failed", len(result.Failures)),
	)

	return result, nil
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
