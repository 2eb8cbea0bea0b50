package rag

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"ai-quickdoc-be/internal/constant"
	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/llm"
	"ai-quickdoc-be/pkg/vectorstore"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) Generate(text string, taskType string) (*embedding.EmbeddingResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &embedding.EmbeddingResponse{
		Embedding: embedding.EmbeddingResponseEmbedding{Values: []float32{0.1, 0.2, 0.3}},
	}, nil
}

type fakeIndex struct {
	calls   int
	matches []vectorstore.Match
	err     error
}

func (f *fakeIndex) Upsert(ctx context.Context, namespace string, id uuid.UUID, vector []float32, metadata map[string]interface{}) error {
	return nil
}

func (f *fakeIndex) Query(ctx context.Context, namespace string, vector []float32, topK int) ([]vectorstore.Match, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.matches, nil
}

func (f *fakeIndex) DeleteByDocument(ctx context.Context, namespace string, documentId uuid.UUID) error {
	return nil
}

type fakeLLM struct {
	calls      int
	completion string
	err        error
	lastSystem string
}

func (f *fakeLLM) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	f.calls++
	for _, m := range history {
		if m.Role == "system" {
			f.lastSystem = m.Content
		}
	}
	if f.err != nil {
		return "", f.err
	}
	return f.completion, nil
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, options...)
}

type memAnswerCache struct {
	store map[string]string
}

func (c *memAnswerCache) Get(ctx context.Context, namespace, question string) (string, bool) {
	v, ok := c.store[namespace+"|"+question]
	return v, ok
}

func (c *memAnswerCache) Set(ctx context.Context, namespace, question, answer string) {
	c.store[namespace+"|"+question] = answer
}

func newTestPipeline(e *fakeEmbedder, idx *fakeIndex, model *fakeLLM) *Pipeline {
	return NewPipeline(e, idx, model, nil, nil, Config{Namespace: "ns1", TopK: 1})
}

func TestAskHappyPath(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{matches: []vectorstore.Match{
		{ID: uuid.New(), Score: 0.92, Metadata: map[string]interface{}{"text": "Water boils at 100C."}},
	}}
	model := &fakeLLM{completion: `{"message": "It boils at 100C.", "sessionId": "s1"}`}

	answer, err := newTestPipeline(e, idx, model).Ask(context.Background(), "When does water boil?", "s1")

	require.NoError(t, err)
	assert.Equal(t, "It boils at 100C.", answer.Message)
	assert.Equal(t, "s1", answer.SessionId)
	assert.False(t, answer.FallbackUsed)
	assert.Equal(t, 1, answer.Matches)
	assert.Contains(t, model.lastSystem, "Water boils at 100C.")
}

func TestAskEchoesRequestSessionId(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{}
	model := &fakeLLM{completion: `{"message": "hi", "sessionId": "something-else"}`}

	answer, err := newTestPipeline(e, idx, model).Ask(context.Background(), "hello", "mine")

	require.NoError(t, err)
	assert.Equal(t, "mine", answer.SessionId)
}

func TestAskEmptyIndexIsDegradedSuccess(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{matches: nil}
	fallbackJSON := fmt.Sprintf(`{"message": %q, "sessionId": "s1"}`, constant.ChatFallbackMessage)
	model := &fakeLLM{completion: fallbackJSON}

	answer, err := newTestPipeline(e, idx, model).Ask(context.Background(), "anything", "s1")

	require.NoError(t, err)
	assert.Equal(t, constant.ChatFallbackMessage, answer.Message)
	assert.Equal(t, 0, answer.Matches)
	assert.Contains(t, model.lastSystem, "(no context available)")
}

func TestAskInvalidRequestMakesNoRemoteCalls(t *testing.T) {
	tests := []struct {
		name      string
		message   string
		sessionId string
	}{
		{"empty message", "", "s1"},
		{"blank message", "   ", "s1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := &fakeEmbedder{}
			idx := &fakeIndex{}
			model := &fakeLLM{}

			_, err := newTestPipeline(e, idx, model).Ask(context.Background(), tt.message, tt.sessionId)

			require.ErrorIs(t, err, apperrors.ErrInvalidRequest)
			assert.Zero(t, e.calls)
			assert.Zero(t, idx.calls)
			assert.Zero(t, model.calls)
		})
	}
}

func TestAskEmptySessionIdIsValid(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{}
	model := &fakeLLM{completion: `{"message": "hi", "sessionId": ""}`}

	answer, err := newTestPipeline(e, idx, model).Ask(context.Background(), "hello", "")

	require.NoError(t, err, "an empty session id is pass-through data, not a caller error")
	assert.Equal(t, "", answer.SessionId)
}

func TestAskEmbeddingFailure(t *testing.T) {
	e := &fakeEmbedder{err: errors.New("upstream 503")}
	idx := &fakeIndex{}
	model := &fakeLLM{}

	_, err := newTestPipeline(e, idx, model).Ask(context.Background(), "q", "s1")

	require.ErrorIs(t, err, apperrors.ErrEmbeddingFailure)
	assert.Zero(t, idx.calls, "retrieval must not run after a failed embed")
	assert.Zero(t, model.calls)
}

func TestAskIndexUnavailable(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{err: fmt.Errorf("%w: connection refused", apperrors.ErrIndexUnavailable)}
	model := &fakeLLM{}

	_, err := newTestPipeline(e, idx, model).Ask(context.Background(), "q", "s1")

	require.ErrorIs(t, err, apperrors.ErrIndexUnavailable)
	assert.Zero(t, model.calls)
}

func TestAskGenerationFailure(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{}
	model := &fakeLLM{err: errors.New("model overloaded")}

	_, err := newTestPipeline(e, idx, model).Ask(context.Background(), "q", "s1")

	require.ErrorIs(t, err, apperrors.ErrGenerationFailure)
}

func TestAskMalformedCompletionFallsBack(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{matches: []vectorstore.Match{
		{ID: uuid.New(), Score: 0.5, Metadata: map[string]interface{}{"text": "ctx"}},
	}}
	model := &fakeLLM{completion: "Sure! The answer is 42."}

	answer, err := newTestPipeline(e, idx, model).Ask(context.Background(), "q", "s1")

	require.NoError(t, err)
	assert.True(t, answer.FallbackUsed)
	assert.Equal(t, constant.ChatFallbackMessage, answer.Message)
}

func TestAskAnswerCache(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{matches: []vectorstore.Match{
		{ID: uuid.New(), Score: 0.9, Metadata: map[string]interface{}{"text": "ctx"}},
	}}
	model := &fakeLLM{completion: `{"message": "cached me", "sessionId": "s1"}`}
	answers := &memAnswerCache{store: map[string]string{}}

	p := NewPipeline(e, idx, model, answers, nil, Config{Namespace: "ns1", TopK: 1})

	first, err := p.Ask(context.Background(), "q", "s1")
	require.NoError(t, err)
	assert.Equal(t, "cached me", first.Message)
	assert.Equal(t, 1, model.calls)

	second, err := p.Ask(context.Background(), "q", "s2")
	require.NoError(t, err)
	assert.Equal(t, "cached me", second.Message)
	assert.Equal(t, "s2", second.SessionId, "cache hit still echoes the new session id")
	assert.Equal(t, 1, model.calls, "cache hit must not call the model again")
	assert.Equal(t, 1, e.calls, "cache hit must not re-embed")
}

func TestAskFallbackIsNotCached(t *testing.T) {
	e := &fakeEmbedder{}
	idx := &fakeIndex{}
	model := &fakeLLM{completion: "not json"}
	answers := &memAnswerCache{store: map[string]string{}}

	p := NewPipeline(e, idx, model, answers, nil, Config{Namespace: "ns1", TopK: 1})

	_, err := p.Ask(context.Background(), "q", "s1")
	require.NoError(t, err)
	assert.Empty(t, answers.store)
}
