package mapper

import (
	"time"

	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

type PassageMapper struct{}

func NewPassageMapper() *PassageMapper {
	return &PassageMapper{}
}

func (m *PassageMapper) ToEntity(p *model.Passage) *entity.Passage {
	if p == nil {
		return nil
	}

	var deletedAt *time.Time
	if p.DeletedAt.Valid {
		t := p.DeletedAt.Time
		deletedAt = &t
	}

	return &entity.Passage{
		Id:             p.Id,
		DocumentId:     p.DocumentId,
		Namespace:      p.Namespace,
		ChunkIndex:     p.ChunkIndex,
		Content:        p.Content,
		EmbeddingValue: p.EmbeddingValue.Slice(),
		Metadata:       p.Metadata,
		CreatedAt:      p.CreatedAt,
		DeletedAt:      deletedAt,
		IsDeleted:      p.DeletedAt.Valid,
	}
}

func (m *PassageMapper) ToModel(p *entity.Passage) *model.Passage {
	if p == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if p.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *p.DeletedAt, Valid: true}
	} else if p.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	return &model.Passage{
		Id:             p.Id,
		DocumentId:     p.DocumentId,
		Namespace:      p.Namespace,
		ChunkIndex:     p.ChunkIndex,
		Content:        p.Content,
		EmbeddingValue: pgvector.NewVector(p.EmbeddingValue),
		Metadata:       p.Metadata,
		CreatedAt:      p.CreatedAt,
		DeletedAt:      deletedAt,
	}
}

func (m *PassageMapper) ToEntities(passages []*model.Passage) []*entity.Passage {
	entities := make([]*entity.Passage, len(passages))
	for i, p := range passages {
		entities[i] = m.ToEntity(p)
	}
	return entities
}

func (m *PassageMapper) ToModels(passages []*entity.Passage) []*model.Passage {
	models := make([]*model.Passage, len(passages))
	for i, p := range passages {
		models[i] = m.ToModel(p)
	}
	return models
}
