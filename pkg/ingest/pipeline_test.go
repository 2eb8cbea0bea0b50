package ingest

import (
	"context"
	"errors"
	"strings"
	"testing"

	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyEmbedder struct {
	calls   int
	failTwo bool // fail every second call
	failAll bool
}

func (f *flakyEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.failAll || (f.failTwo && f.calls%2 == 0) {
		return nil, errors.New("rate limited")
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2}},
	}, nil
}

type recordingIndex struct {
	upserts   []map[string]interface{}
	upsertErr error
}

func (r *recordingIndex) Upsert(ctx context.Context, namespace string, id uuid.UUID, vector []float32, metadata map[string]interface{}) error {
	if r.upsertErr != nil {
		return r.upsertErr
	}
	r.upserts = append(r.upserts, metadata)
	return nil
}

func (r *recordingIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	return nil, nil
}

func (r *recordingIndex) DeleteByDocument(ctx context.Context, namespace string, documentId uuid.UUID) error {
	return nil
}

func TestIngestHappyPath(t *testing.T) {
	e := &flakyEmbedder{}
	idx := &recordingIndex{}
	p := NewPipeline(e, idx, nil, Config{ChunkSize: 100, Overlap: 20})

	docId := uuid.New()
	written, err := p.Ingest(context.Background(), docId, "ns1", strings.Repeat("a", 250))

	require.NoError(t, err)
	assert.Equal(t, 3, written)
	require.Len(t, idx.upserts, 3)
	assert.Equal(t, docId.String(), idx.upserts[0]["document_id"])
	assert.Equal(t, 0, idx.upserts[0]["chunk_index"])
	assert.NotEmpty(t, idx.upserts[0]["text"])
}

func TestIngestSkipsFailedChunks(t *testing.T) {
	e := &flakyEmbedder{failTwo: true}
	idx := &recordingIndex{}
	p := NewPipeline(e, idx, nil, Config{ChunkSize: 100, Overlap: 20})

	written, err := p.Ingest(context.Background(), uuid.New(), "ns1", strings.Repeat("a", 250))

	require.NoError(t, err)
	assert.Equal(t, 2, written, "failed chunks are skipped, not fatal")
}

func TestIngestAllChunksFail(t *testing.T) {
	e := &flakyEmbedder{failAll: true}
	idx := &recordingIndex{}
	p := NewPipeline(e, idx, nil, Config{ChunkSize: 100, Overlap: 20})

	written, err := p.Ingest(context.Background(), uuid.New(), "ns1", strings.Repeat("a", 250))

	require.ErrorIs(t, err, apperrors.ErrIngestionFailure)
	assert.Zero(t, written)
	assert.Empty(t, idx.upserts)
}

func TestIngestUpsertFailureCountsAsFailedChunk(t *testing.T) {
	e := &flakyEmbedder{}
	idx := &recordingIndex{upsertErr: errors.New("db down")}
	p := NewPipeline(e, idx, nil, Config{ChunkSize: 100, Overlap: 20})

	_, err := p.Ingest(context.Background(), uuid.New(), "ns1", strings.Repeat("a", 250))

	require.ErrorIs(t, err, apperrors.ErrIngestionFailure)
}

func TestIngestEmptyText(t *testing.T) {
	p := NewPipeline(&flakyEmbedder{}, &recordingIndex{}, nil, Config{})

	_, err := p.Ingest(context.Background(), uuid.New(), "ns1", "   ")

	require.ErrorIs(t, err, apperrors.ErrIngestionFailure)
}
