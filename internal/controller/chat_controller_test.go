package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"ai-quickdoc-be/internal/constant"
	"ai-quickdoc-be/internal/dto"
	"ai-quickdoc-be/pkg/apperrors"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChatService struct {
	res *dto.ChatResponse
	err error
}

func (s *stubChatService) SendChat(ctx context.Context, req *dto.SendChatRequest) (*dto.ChatResponse, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.res != nil {
		return s.res, nil
	}
	return &dto.ChatResponse{Message: "ok", SessionId: req.SessionId}, nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

func newChatApp(svc *stubChatService) *fiber.App {
	app := fiber.New()
	NewChatController(svc, noopLogger{}).RegisterRoutes(app.Group("/api"))
	return app
}

func postChat(t *testing.T, app *fiber.App, body string) (int, map[string]json.RawMessage) {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/chat/v1", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var parsed map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &parsed))

	return resp.StatusCode, parsed
}

func TestSendChatSuccess(t *testing.T) {
	app := newChatApp(&stubChatService{
		res: &dto.ChatResponse{Message: "The answer is 42.", SessionId: "s1"},
	})

	status, body := postChat(t, app, `{"message": "what is the answer?", "sessionId": "s1"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `"The answer is 42."`, string(body["message"]))
	assert.JSONEq(t, `"s1"`, string(body["sessionId"]))

	// The contract has exactly two keys, no envelope.
	assert.Len(t, body, 2)
}

func TestSendChatEmptySessionIdAccepted(t *testing.T) {
	// The session id is opaque pass-through data and may be absent entirely.
	app := newChatApp(&stubChatService{})

	status, body := postChat(t, app, `{"message": "hi"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `""`, string(body["sessionId"]))
}

func TestSendChatMissingFields(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing message", `{"sessionId": "s1"}`},
		{"empty body", `{}`},
		{"malformed json", `{"message": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newChatApp(&stubChatService{})

			status, body := postChat(t, app, tt.body)

			assert.Equal(t, fiber.StatusBadRequest, status)
			assert.JSONEq(t, `"Bad Request"`, string(body["message"]))
			assert.JSONEq(t, `null`, string(body["sessionId"]))
		})
	}
}

func TestSendChatPipelineFailure(t *testing.T) {
	for _, sentinel := range []error{
		apperrors.ErrEmbeddingFailure,
		apperrors.ErrIndexUnavailable,
		apperrors.ErrGenerationFailure,
	} {
		t.Run(sentinel.Error(), func(t *testing.T) {
			app := newChatApp(&stubChatService{
				err: fmt.Errorf("%w: upstream exploded", sentinel),
			})

			status, body := postChat(t, app, `{"message": "hi", "sessionId": "s1"}`)

			assert.Equal(t, fiber.StatusInternalServerError, status)
			assert.JSONEq(t, fmt.Sprintf("%q", constant.ChatInternalErrorMessage), string(body["message"]))
			assert.JSONEq(t, `null`, string(body["sessionId"]), "sessionId must serialize as literal null")

			// No taxonomy detail may leak to the client.
			assert.NotContains(t, string(body["message"]), "upstream")
		})
	}
}

func TestSendChatServiceInvalidRequest(t *testing.T) {
	app := newChatApp(&stubChatService{
		err: fmt.Errorf("%w: bad input", apperrors.ErrInvalidRequest),
	})

	status, body := postChat(t, app, `{"message": "hi", "sessionId": "s1"}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.JSONEq(t, `null`, string(body["sessionId"]))
}
