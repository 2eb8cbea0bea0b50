package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Document struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey"`
	FileName     string
	Namespace    string `gorm:"index;not null"`
	Status       string `gorm:"default:pending"`
	PassageCount int    `gorm:"default:0"`
	CharCount    int    `gorm:"default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time      `gorm:"autoUpdateTime"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}

func (Document) TableName() string {
	return "documents"
}
