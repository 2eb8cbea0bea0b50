package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateDocumentRequest struct {
	FileName string `json:"fileName" validate:"required"`
	Text     string `json:"text" validate:"required"`
}

type DocumentResponse struct {
	Id           uuid.UUID `json:"id"`
	FileName     string    `json:"fileName"`
	Namespace    string    `json:"namespace"`
	Status       string    `json:"status"`
	PassageCount int       `json:"passageCount"`
	CharCount    int       `json:"charCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// IngestDocumentMessage is the payload carried on the async ingestion topic.
type IngestDocumentMessage struct {
	DocumentId uuid.UUID `json:"documentId"`
	Namespace  string    `json:"namespace"`
	Text       string    `json:"text"`
}
