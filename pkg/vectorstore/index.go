package vectorstore

import (
	"context"

	"github.com/google/uuid"
)

// Match is a single retrieval hit, score is cosine similarity in [0,1].
type Match struct {
	ID       uuid.UUID
	Score    float64
	Metadata map[string]interface{}
}

// Index stores and retrieves passage vectors with associated metadata,
// partitioned by namespace.
//
// Query returns matches ordered by descending similarity; ties are stable
// within a single call but callers must not rely on a particular tie-break.
// An empty namespace yields an empty slice, never an error — "nothing
// ingested yet" is a valid state.
type Index interface {
	Upsert(ctx context.Context, namespace string, id uuid.UUID, vector []float32, metadata map[string]interface{}) error
	Query(ctx context.Context, namespace string, vector []float32, topK int) ([]Match, error)
	DeleteByDocument(ctx context.Context, namespace string, documentId uuid.UUID) error
}
