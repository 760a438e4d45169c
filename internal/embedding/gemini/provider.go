package gemini

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/NikKohlmeier/job-helper/internal/embedding"
	"github.com/NikKohlmeier/job-helper/internal/utils"
)

type contentEmbedder interface {
	EmbedContent(ctx context.Context, text string) ([]float64, error)
	Model() string
}

const (
	defaultMaxLogLength = 200
	retryBaseDelay      = 500 * time.Millisecond
)

// Provider implements embedding.Provider on top of the Gemini API, adding
// retries and structured logging around the raw client.
type Provider struct {
	embedder   contentEmbedder
	maxRetries int
	maxLogLen  int
	baseDelay  time.Duration
	logger     *zap.Logger
}

// NewProvider wraps the given client. maxRetries is the number of additional
// attempts after the first failure.
func NewProvider(embedder contentEmbedder, maxRetries, maxLogLength int, logger *zap.Logger) *Provider {
	if maxRetries < 0 {
		maxRetries = 0
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Provider{
		embedder:   embedder,
		maxRetries: maxRetries,
		maxLogLen:  maxLogLength,
		baseDelay:  retryBaseDelay,
		logger:     logger,
	}
}

func (p *Provider) Model() string {
	return p.embedder.Model()
}

// Embed returns the embedding vector for the text, retrying transient
// provider failures with exponential backoff. Failures are wrapped with
// embedding.ErrProvider.
func (p *Provider) Embed(ctx context.Context, text string) ([]float64, error) {
	p.logger.Debug("gemini embed request",
		zap.Int("text_length", utf8.RuneCountInString(text)),
		zap.String("text_preview", utils.TruncateForLog(text, p.maxLogLen)),
	)

	var lastErr error
	delay := p.baseDelay

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			p.logger.Debug("retrying gemini embed",
				zap.Int("attempt", attempt),
				zap.Duration("delay", delay),
				zap.Error(lastErr),
			)
			if err := utils.WaitFor(ctx, delay); err != nil {
				return nil, fmt.Errorf("%w: %w", embedding.ErrProvider, err)
			}
			delay *= 2
		}

		vector, err := p.embedder.EmbedContent(ctx, text)
		if err == nil {
			p.logger.Debug("gemini embed response", zap.Int("dimensions", len(vector)))
			return vector, nil
		}
		lastErr = err

		if ctx.Err() != nil {
			break
		}
	}

	return nil, fmt.Errorf("%w: %w", embedding.ErrProvider, lastErr)
}
