package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDocumentService struct {
	created *dto.DocumentResponse
	showErr error
}

func (s *stubDocumentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	s.created = &dto.DocumentResponse{
		Id:        uuid.New(),
		FileName:  req.FileName,
		Namespace: "ns1",
		Status:    entity.DocumentStatusPending,
		CharCount: len(req.Text),
		CreatedAt: time.Now(),
	}
	return s.created, nil
}

func (s *stubDocumentService) CreateFromPDF(ctx context.Context, fileName string, data []byte) (*dto.DocumentResponse, error) {
	return s.Create(ctx, &dto.CreateDocumentRequest{FileName: fileName, Text: string(data)})
}

func (s *stubDocumentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	if s.showErr != nil {
		return nil, s.showErr
	}
	return &dto.DocumentResponse{Id: id, Status: entity.DocumentStatusCompleted}, nil
}

func (s *stubDocumentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	return []*dto.DocumentResponse{}, nil
}

func (s *stubDocumentService) Delete(ctx context.Context, id uuid.UUID) error {
	return nil
}

func newDocumentApp(svc *stubDocumentService) *fiber.App {
	app := fiber.New()
	app.Use(serverutils.ErrorHandlerMiddleware())
	NewDocumentController(svc).RegisterRoutes(app.Group("/api"))
	return app
}

func TestDocumentCreateAccepted(t *testing.T) {
	svc := &stubDocumentService{}
	app := newDocumentApp(svc)

	body := `{"fileName": "notes.txt", "text": "The mitochondria is the powerhouse of the cell."}`
	req := httptest.NewRequest("POST", "/api/document/v1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusAccepted, resp.StatusCode)
	require.NotNil(t, svc.created)
	assert.Equal(t, entity.DocumentStatusPending, svc.created.Status)

	raw, _ := io.ReadAll(resp.Body)
	var envelope map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &envelope))
	assert.Equal(t, true, envelope["success"])
}

func TestDocumentCreateValidation(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{})

	req := httptest.NewRequest("POST", "/api/document/v1", bytes.NewBufferString(`{"fileName": "notes.txt"}`))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDocumentShowInvalidId(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{})

	req := httptest.NewRequest("GET", "/api/document/v1/not-a-uuid", nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestDocumentShowNotFound(t *testing.T) {
	app := newDocumentApp(&stubDocumentService{
		showErr: fiber.NewError(fiber.StatusNotFound, "Document not found"),
	})

	req := httptest.NewRequest("GET", "/api/document/v1/"+uuid.NewString(), nil)

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
