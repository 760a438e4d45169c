package matching

import "errors"

var (
	// ErrDimensionMismatch is returned when the profile and posting vectors
	// differ in dimensionality, or either has none. This is an upstream
	// pipeline bug, not a low-scoring posting.
	ErrDimensionMismatch = errors.New("embedding vectors have mismatched dimensions")

	// ErrInvalidEmbedding is returned for an all-zero vector, so callers can
	// tell "no overlap" apart from "embedding missing".
	ErrInvalidEmbedding = errors.New("embedding vector is all zeros")

	// ErrProfileNotInitialized is returned when the profile embedding has not
	// been computed yet. It must be computed once, out of band, before any
	// matching can occur.
	ErrProfileNotInitialized = errors.New("profile embedding is not initialized")

	// ErrEmbeddingUnavailable is returned when the embedding provider fails
	// for a posting. There is no degraded fallback score: a technical score
	// without an embedding is not meaningful.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable for posting")
)
