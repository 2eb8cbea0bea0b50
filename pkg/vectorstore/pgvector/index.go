package pgvector

import (
	"context"
	"fmt"
	"time"

	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/repository/unitofwork"
	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/vectorstore"

	"github.com/google/uuid"
)

// Index implements vectorstore.Index on top of the passages table.
// All vectors in a deployment share the configured dimensionality; anything
// else is rejected before it reaches Postgres.
type Index struct {
	uowFactory unitofwork.RepositoryFactory
	dimension  int
}

var _ vectorstore.Index = &Index{}

func NewIndex(uowFactory unitofwork.RepositoryFactory, dimension int) *Index {
	return &Index{
		uowFactory: uowFactory,
		dimension:  dimension,
	}
}

func (i *Index) checkVector(vector []float32) error {
	if len(vector) == 0 {
		return fmt.Errorf("empty vector")
	}
	if i.dimension > 0 && len(vector) != i.dimension {
		return fmt.Errorf("vector dimensionality %d does not match index dimensionality %d", len(vector), i.dimension)
	}
	return nil
}

func (i *Index) Upsert(ctx context.Context, namespace string, id uuid.UUID, vector []float32, metadata map[string]interface{}) error {
	if err := i.checkVector(vector); err != nil {
		return err
	}

	content, _ := metadata["text"].(string)
	if content == "" {
		return fmt.Errorf("metadata is missing passage text")
	}

	var documentId uuid.UUID
	if raw, ok := metadata["document_id"].(string); ok {
		documentId, _ = uuid.Parse(raw)
	}

	chunkIndex := 0
	switch v := metadata["chunk_index"].(type) {
	case int:
		chunkIndex = v
	case float64:
		chunkIndex = int(v)
	}

	passage := &entity.Passage{
		Id:             id,
		DocumentId:     documentId,
		Namespace:      namespace,
		ChunkIndex:     chunkIndex,
		Content:        content,
		EmbeddingValue: vector,
		Metadata:       metadata,
		CreatedAt:      time.Now(),
	}

	uow := i.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PassageRepository().Create(ctx, passage); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIndexUnavailable, err)
	}
	return nil
}

func (i *Index) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	if topK < 1 {
		return nil, fmt.Errorf("topK must be >= 1, got %d", topK)
	}
	if err := i.checkVector(vector); err != nil {
		return nil, err
	}

	uow := i.uowFactory.NewUnitOfWork(ctx)
	scored, err := uow.PassageRepository().SearchSimilarWithScore(ctx, namespace, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrIndexUnavailable, err)
	}

	matches := make([]vectorstore.Match, 0, len(scored))
	for _, s := range scored {
		metadata := s.Passage.Metadata
		if metadata == nil {
			metadata = map[string]interface{}{}
		}
		if _, ok := metadata["text"]; !ok {
			metadata["text"] = s.Passage.Content
		}
		matches = append(matches, vectorstore.Match{
			ID:       s.Passage.Id,
			Score:    s.Similarity,
			Metadata: metadata,
		})
	}
	return matches, nil
}

func (i *Index) DeleteByDocument(ctx context.Context, namespace string, documentId uuid.UUID) error {
	uow := i.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PassageRepository().DeleteByDocumentId(ctx, documentId); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrIndexUnavailable, err)
	}
	return nil
}
