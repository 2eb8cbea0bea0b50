package entity

import (
	"time"

	"github.com/google/uuid"
)

// Passage is a contiguous slice of document text stored with its embedding.
// Invariant: Content is non-empty and EmbeddingValue has the provider's
// fixed dimensionality; the ingestion pipeline never indexes anything else.
type Passage struct {
	Id             uuid.UUID
	DocumentId     uuid.UUID
	Namespace      string
	ChunkIndex     int
	Content        string
	EmbeddingValue []float32
	Metadata       map[string]interface{}
	CreatedAt      time.Time
	DeletedAt      *time.Time
	IsDeleted      bool
}
