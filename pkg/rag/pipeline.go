package rag

import (
	"context"
	"fmt"
	"strings"
	"time"

	"ai-quickdoc-be/internal/pkg/logger"
	"ai-quickdoc-be/pkg/apperrors"
	"ai-quickdoc-be/pkg/cache"
	"ai-quickdoc-be/pkg/embedding"
	"ai-quickdoc-be/pkg/llm"
	"ai-quickdoc-be/pkg/rag/contract"
	"ai-quickdoc-be/pkg/rag/prompt"
	"ai-quickdoc-be/pkg/vectorstore"
)

// State labels one stage of the query lifecycle. Every query walks the chain
// RECEIVED -> EMBEDDING -> RETRIEVING -> GENERATING -> VALIDATING and ends in
// RESPONDED or FAILED; the trace log records each transition.
type State string

const (
	StateReceived   State = "RECEIVED"
	StateEmbedding  State = "EMBEDDING"
	StateRetrieving State = "RETRIEVING"
	StateGenerating State = "GENERATING"
	StateValidating State = "VALIDATING"
	StateResponded  State = "RESPONDED"
	StateFailed     State = "FAILED"
)

// Answer is a finished query result.
type Answer struct {
	Message      string
	SessionId    string
	FallbackUsed bool
	Matches      int
}

// Config carries the tunables of the pipeline.
type Config struct {
	Namespace   string
	TopK        int
	StepTimeout time.Duration
}

// Pipeline orchestrates one question through embed, retrieve, generate and
// validate. It is stateless per request and safe for concurrent use.
type Pipeline struct {
	embedder embedding.EmbeddingProvider
	index    vectorstore.Index
	model    llm.LLMProvider
	answers  cache.AnswerCache // nil disables answer caching
	log      logger.ILogger
	cfg      Config
}

func NewPipeline(
	embedder embedding.EmbeddingProvider,
	index vectorstore.Index,
	model llm.LLMProvider,
	answers cache.AnswerCache,
	log logger.ILogger,
	cfg Config,
) *Pipeline {
	if cfg.TopK < 1 {
		cfg.TopK = 1
	}
	if cfg.StepTimeout <= 0 {
		cfg.StepTimeout = 60 * time.Second
	}
	return &Pipeline{
		embedder: embedder,
		index:    index,
		model:    model,
		answers:  answers,
		log:      log,
		cfg:      cfg,
	}
}

// Ask runs the full query lifecycle. The returned error is always one of the
// sentinel values in apperrors (wrapped), so callers can map it to a status
// code with errors.Is. A nil error means the Answer is usable, even when the
// index was empty and the model fell back.
func (p *Pipeline) Ask(ctx context.Context, message, sessionId string) (*Answer, error) {
	p.transition(sessionId, StateReceived, nil)

	// The session id is pass-through correlation data and may be empty;
	// only the message is validated.
	if strings.TrimSpace(message) == "" {
		return p.fail(sessionId, StateReceived, fmt.Errorf("%w: message is required", apperrors.ErrInvalidRequest))
	}

	if p.answers != nil {
		if cached, ok := p.answers.Get(ctx, p.cfg.Namespace, message); ok {
			p.transition(sessionId, StateResponded, map[string]interface{}{"cached": true})
			return &Answer{Message: cached, SessionId: sessionId}, nil
		}
	}

	// EMBEDDING
	p.transition(sessionId, StateEmbedding, nil)
	vector, err := p.embedQuery(ctx, message)
	if err != nil {
		return p.fail(sessionId, StateEmbedding, fmt.Errorf("%w: %v", apperrors.ErrEmbeddingFailure, err))
	}

	// RETRIEVING
	p.transition(sessionId, StateRetrieving, nil)
	matches, err := p.retrieve(ctx, vector)
	if err != nil {
		return p.fail(sessionId, StateRetrieving, err)
	}

	passages := make([]string, 0, len(matches))
	for _, m := range matches {
		if text, ok := m.Metadata["text"].(string); ok && text != "" {
			passages = append(passages, text)
		}
	}

	// GENERATING. An empty passage list is not an error: the model is
	// instructed to refuse, which keeps "nothing ingested yet" a 200.
	p.transition(sessionId, StateGenerating, map[string]interface{}{"matches": len(matches)})
	raw, err := p.generate(ctx, message, sessionId, passages)
	if err != nil {
		return p.fail(sessionId, StateGenerating, fmt.Errorf("%w: %v", apperrors.ErrGenerationFailure, err))
	}

	// VALIDATING
	p.transition(sessionId, StateValidating, nil)
	result := contract.Validate(raw, sessionId)

	if p.answers != nil && !result.FallbackUsed {
		p.answers.Set(ctx, p.cfg.Namespace, message, result.Message)
	}

	p.transition(sessionId, StateResponded, map[string]interface{}{
		"fallback": result.FallbackUsed,
		"matches":  len(matches),
	})

	return &Answer{
		Message:      result.Message,
		SessionId:    result.SessionId,
		FallbackUsed: result.FallbackUsed,
		Matches:      len(matches),
	}, nil
}

func (p *Pipeline) embedQuery(ctx context.Context, message string) ([]float32, error) {
	type embedResult struct {
		resp *embedding.EmbeddingResponse
		err  error
	}

	stepCtx, cancel := context.WithTimeout(ctx, p.cfg.StepTimeout)
	defer cancel()

	// The provider interface is synchronous; bound it with the step timeout.
	ch := make(chan embedResult, 1)
	go func() {
		resp, err := p.embedder.Generate(message, embedding.TaskTypeQuery)
		ch <- embedResult{resp: resp, err: err}
	}()

	select {
	case <-stepCtx.Done():
		return nil, stepCtx.Err()
	case r := <-ch:
		if r.err != nil {
			return nil, r.err
		}
		if len(r.resp.Embedding.Values) == 0 {
			return nil, fmt.Errorf("provider returned an empty vector")
		}
		return r.resp.Embedding.Values, nil
	}
}

func (p *Pipeline) retrieve(ctx context.Context, vector []float32) ([]vectorstore.Match, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.cfg.StepTimeout)
	defer cancel()

	return p.index.Query(stepCtx, p.cfg.Namespace, vector, p.cfg.TopK)
}

func (p *Pipeline) generate(ctx context.Context, message, sessionId string, passages []string) (string, error) {
	stepCtx, cancel := context.WithTimeout(ctx, p.cfg.StepTimeout)
	defer cancel()

	history := []llm.Message{
		{Role: "system", Content: prompt.BuildSystemPrompt(sessionId, passages)},
		{Role: "user", Content: message},
	}

	return p.model.Chat(stepCtx, history, llm.WithTemperature(0.2))
}

func (p *Pipeline) fail(sessionId string, at State, err error) (*Answer, error) {
	p.transition(sessionId, StateFailed, map[string]interface{}{
		"at":    string(at),
		"error": err.Error(),
	})
	return nil, err
}

func (p *Pipeline) transition(sessionId string, to State, details map[string]interface{}) {
	if p.log == nil {
		return
	}
	if details == nil {
		details = map[string]interface{}{}
	}
	details["sessionId"] = sessionId
	details["state"] = string(to)
	p.log.Info("RagPipeline", "state transition", details)
}
