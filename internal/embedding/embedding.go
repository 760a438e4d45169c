package embedding

import (
	"context"
	"errors"
)

// ErrProvider marks provider-side embedding failures: rate limits, network
// errors, invalid input. Implementations wrap their failures with it so
// callers can tell a provider outage apart from a scoring bug.
var ErrProvider = errors.New("embedding provider error")

// Provider turns a text blob into a fixed-length dense vector. For a fixed
// model identifier the result must be deterministic in the input text.
type Provider interface {
	Embed(ctx context.Context, text string) ([]float64, error)

	// Model returns the model identifier embeddings are produced with.
	Model() string
}
