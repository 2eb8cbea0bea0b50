package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	DocumentStatusPending   = "pending"
	DocumentStatusCompleted = "completed"
	DocumentStatusFailed    = "failed"
)

// Document is created once at ingestion and never mutated afterwards;
// re-ingesting the same file produces a new Document under a new id.
type Document struct {
	Id           uuid.UUID
	FileName     string
	Namespace    string
	Status       string
	PassageCount int
	CharCount    int
	CreatedAt    time.Time
	UpdatedAt    *time.Time
	DeletedAt    *time.Time
	IsDeleted    bool
}
