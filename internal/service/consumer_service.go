package service

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/internal/entity"
	"ai-quickdoc-be/internal/repository/specification"
	"ai-quickdoc-be/internal/repository/unitofwork"
	"ai-quickdoc-be/pkg/events"
	"ai-quickdoc-be/pkg/ingest"
	pkgNats "ai-quickdoc-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	pipeline   *ingest.Pipeline
	natsPub    *pkgNats.Publisher // nil when NATS is unreachable; events are then skipped
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	pipeline *ingest.Pipeline,
	natsPub *pkgNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		pipeline:   pipeline,
		natsPub:    natsPub,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var payload dto.IngestDocumentMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal ingest message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing ingestion for DocumentId: %s", payload.DocumentId)

	uow := cs.uowFactory.NewUnitOfWork(ctx)

	doc, err := uow.DocumentRepository().FindOne(ctx, specification.ByID{ID: payload.DocumentId})
	if err != nil {
		log.Printf("[ERROR] Failed to get document %s: %v", payload.DocumentId, err)
		msg.Nack() // Nack for retriable errors
		return
	}
	if doc == nil {
		log.Printf("[ERROR] Document not found: %s", payload.DocumentId)
		msg.Ack() // Document deleted? Ack.
		return
	}

	written, ingestErr := cs.pipeline.Ingest(ctx, payload.DocumentId, payload.Namespace, payload.Text)

	now := time.Now()
	doc.UpdatedAt = &now
	doc.PassageCount = written
	if ingestErr != nil {
		// Status records the failure; the message is not retried.
		doc.Status = entity.DocumentStatusFailed
		log.Printf("[ERROR] Ingestion failed for document %s: %v", payload.DocumentId, ingestErr)
	} else {
		doc.Status = entity.DocumentStatusCompleted
	}

	if err := uow.DocumentRepository().Update(ctx, doc); err != nil {
		log.Printf("[ERROR] Failed to update document %s: %v", payload.DocumentId, err)
		msg.Nack()
		return
	}

	cs.publishEvent(ctx, doc, ingestErr)

	log.Printf("[SUCCESS] Document processed: %d passages for DocumentId: %s (status: %s)",
		written, payload.DocumentId, doc.Status)
	msg.Ack()
}

func (cs *consumerService) publishEvent(ctx context.Context, doc *entity.Document, ingestErr error) {
	if cs.natsPub == nil {
		return
	}

	eventType := "DOCUMENT_INGESTED"
	data := map[string]interface{}{
		"documentId":   doc.Id.String(),
		"namespace":    doc.Namespace,
		"passageCount": doc.PassageCount,
	}
	if ingestErr != nil {
		eventType = "DOCUMENT_INGEST_FAILED"
		data["error"] = ingestErr.Error()
	}

	err := cs.natsPub.Publish(ctx, events.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	})
	if err != nil {
		log.Printf("[WARN] Failed to publish %s event: %v", eventType, err)
	}
}
