package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. Callers discriminate
// with errors.Is rather than string matching.
var (
	// ErrNotFound indicates the index artifacts are absent.
	// Ingestion must run before answering.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or empty input
	// (no usable URLs, blank question).
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidModel indicates the provider rejected a requested
	// model identifier. The previously selected model stays active.
	ErrInvalidModel = errors.New("invalid model")

	// ErrLLMUnavailable indicates the completion service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not configured.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")
)
