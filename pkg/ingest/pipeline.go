package ingest

import (
	"context"
	"fmt"
	"strings"

	"ai-quickdoc-be/internal/pkg/logger"
	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/chunker"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/vectorstore"

	"github.com/google/uuid"
)

const (
	DefaultChunkSize = 1000
	DefaultOverlap   = 200
)

// Config carries the chunking tunables.
type Config struct {
	ChunkSize int
	Overlap   int
}

// Pipeline turns raw document text into indexed passages: split, embed each
// chunk, upsert the survivors. A chunk whose embedding fails is skipped and
// logged; the document only fails when every chunk does.
type Pipeline struct {
	embedder embedding.EmbeddingProvider
	index    vectorstore.Index
	log      logger.ILogger
	cfg      Config
}

func NewPipeline(embedder embedding.EmbeddingProvider, index vectorstore.Index, log logger.ILogger, cfg Config) *Pipeline {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	if cfg.Overlap < 0 || cfg.Overlap >= cfg.ChunkSize {
		cfg.Overlap = DefaultOverlap
	}
	return &Pipeline{embedder: embedder, index: index, log: log, cfg: cfg}
}

// Ingest indexes one document's text under the given namespace and returns
// the number of passages written. The text must be non-empty. When every
// chunk fails to embed or upsert, nothing is written and the error wraps
// apperrors.ErrIngestionFailure.
func (p *Pipeline) Ingest(ctx context.Context, documentId uuid.UUID, namespace, text string) (int, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("%w: document text is empty", apperrors.ErrIngestionFailure)
	}

	chunks := chunker.SplitText(text, p.cfg.ChunkSize, p.cfg.Overlap)

	written := 0
	for i, chunk := range chunks {
		if strings.TrimSpace(chunk) == "" {
			continue
		}

		resp, err := p.embedder.Generate(chunk, embedding.TaskTypeDocument)
		if err != nil {
			p.warn(documentId, i, "embedding failed, skipping chunk", err)
			continue
		}

		metadata := map[string]interface{}{
			"text":        chunk,
			"document_id": documentId.String(),
			"chunk_index": i,
		}

		if err := p.index.Upsert(ctx, namespace, uuid.New(), resp.Embedding.Values, metadata); err != nil {
			p.warn(documentId, i, "upsert failed, skipping chunk", err)
			continue
		}

		written++
	}

	if written == 0 {
		return 0, fmt.Errorf("%w: no chunk of document %s could be indexed", apperrors.ErrIngestionFailure, documentId)
	}

	if p.log != nil {
		p.log.Info("IngestPipeline", "document indexed", map[string]interface{}{
			"documentId": documentId.String(),
			"namespace":  namespace,
			"chunks":     len(chunks),
			"written":    written,
		})
	}

	return written, nil
}

func (p *Pipeline) warn(documentId uuid.UUID, chunkIndex int, message string, err error) {
	if p.log == nil {
		return
	}
	p.log.Warn("IngestPipeline", message, map[string]interface{}{
		"documentId": documentId.String(),
		"chunkIndex": chunkIndex,
		"error":      err.Error(),
	})
}
