package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Passage struct {
	Id             uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DocumentId     uuid.UUID         `gorm:"type:uuid;not null;index"`
	Namespace      string            `gorm:"index;not null"`
	ChunkIndex     int               `gorm:"default:0"` // 0-based index for ordering
	Content        string            `gorm:"type:text"`
	EmbeddingValue pgvector.Vector   `gorm:"type:vector(768)"` // text-embedding-004 uses 768 dimensions
	Metadata       datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt      time.Time         `gorm:"autoCreateTime"`
	DeletedAt      gorm.DeletedAt    `gorm:"index"`
}

func (Passage) TableName() string {
	return "passages"
}
