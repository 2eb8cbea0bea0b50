package apperrors

import "errors"

// Error taxonomy for the query and ingestion pipelines. Callers match with
// errors.Is; upstream provider detail is attached via %w wrapping and is
// logged but never returned to HTTP clients.
var (
	// ErrInvalidRequest is a caller error (empty message, bad body). 400-class.
	ErrInvalidRequest = errors.New("invalid request")

	// ErrEmbeddingFailure covers failed provider calls, empty vectors and
	// zero dimensionality.
	ErrEmbeddingFailure = errors.New("embedding failure")

	// ErrIndexUnavailable covers vector index connectivity and auth failures.
	// An empty result set is NOT an error.
	ErrIndexUnavailable = errors.New("vector index unavailable")

	// ErrGenerationFailure covers LLM connectivity, auth, rate-limit and
	// empty-completion conditions.
	ErrGenerationFailure = errors.New("generation failure")

	// ErrIngestionFailure is returned when every passage of a document
	// failed to embed. Partial ingestion is not an error.
	ErrIngestionFailure = errors.New("ingestion failure")
)
