package service

import (
	"context"
	"fmt"
	"time"

	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/repository/specification"
	"ai-quickdoc-be/internal/repository/unitofwork"
	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/extract"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IDocumentService interface {
	Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error)
	CreateFromPDF(ctx context.Context, fileName string, data []byte) (*dto.DocumentResponse, error)
	Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error)
	List(ctx context.Context) ([]*dto.DocumentResponse, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type documentService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	namespace        string
}

func NewDocumentService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	namespace string,
) IDocumentService {
	return &documentService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		namespace:        namespace,
	}
}

// Create registers the document as pending and hands the text to the async
// ingestion worker. The caller gets a 202-style response immediately and
// polls Show for the final status.
func (s *documentService) Create(ctx context.Context, req *dto.CreateDocumentRequest) (*dto.DocumentResponse, error) {
	doc := &entity.Document{
		Id:        uuid.New(),
		FileName:  req.FileName,
		Namespace: s.namespace,
		Status:    entity.DocumentStatusPending,
		CharCount: len(req.Text),
		CreatedAt: time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.DocumentRepository().Create(ctx, doc); err != nil {
		return nil, err
	}

	err := s.publisherService.PublishIngestDocument(ctx, &dto.IngestDocumentMessage{
		DocumentId: doc.Id,
		Namespace:  doc.Namespace,
		Text:       req.Text,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: failed to enqueue document: %v", apperrors.ErrIngestionFailure, err)
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) CreateFromPDF(ctx context.Context, fileName string, data []byte) (*dto.DocumentResponse, error) {
	text, err := extract.TextFromPDF(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidRequest, err)
	}

	return s.Create(ctx, &dto.CreateDocumentRequest{
		FileName: fileName,
		Text:     text,
	})
}

func (s *documentService) Show(ctx context.Context, id uuid.UUID) (*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.NotDeleted{})
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	return toDocumentResponse(doc), nil
}

func (s *documentService) List(ctx context.Context) ([]*dto.DocumentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	docs, err := uow.DocumentRepository().FindAll(
		ctx,
		specification.ByNamespace{Namespace: s.namespace},
		specification.NotDeleted{},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		res = append(res, toDocumentResponse(d))
	}
	return res, nil
}

// Delete removes the document and all of its passages in one transaction.
func (s *documentService) Delete(ctx context.Context, id uuid.UUID) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: id}, specification.NotDeleted{})
	if err != nil {
		return err
	}
	if doc == nil {
		return fiber.NewError(fiber.StatusNotFound, "Document not found")
	}

	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer uow.Rollback()

	if err := uow.PassageRepository().DeleteByDocumentId(ctx, id); err != nil {
		return err
	}
	if err := uow.DocumentRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.Commit()
}

func toDocumentResponse(doc *entity.Document) *dto.DocumentResponse {
	return &dto.DocumentResponse{
		Id:           doc.Id,
		FileName:     doc.FileName,
		Namespace:    doc.Namespace,
		Status:       doc.Status,
		PassageCount: doc.PassageCount,
		CharCount:    doc.CharCount,
		CreatedAt:    doc.CreatedAt,
	}
}
