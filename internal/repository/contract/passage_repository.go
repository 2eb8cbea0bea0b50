package contract

import (
	"context"

	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/repository/specification"

	"github.com/google/uuid"
)

// ScoredPassage wraps Passage with its similarity score
type ScoredPassage struct {
	Passage    *entity.Passage
	Similarity float64 // 0.0 to 1.0 (1.0 = identical)
}

type PassageRepository interface {
	Create(ctx context.Context, passage *entity.Passage) error
	CreateBulk(ctx context.Context, passages []*entity.Passage) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByDocumentId(ctx context.Context, documentId uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Passage, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Passage, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// SearchSimilarWithScore runs a cosine nearest-neighbour search inside a
	// namespace and returns passages with their similarity, best first.
	SearchSimilarWithScore(ctx context.Context, namespace string, embedding []float32, limit int) ([]*ScoredPassage, error)
}
