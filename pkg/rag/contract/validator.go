package contract

import (
	"encoding/json"
	"strings"

	"ai-quickdoc-be/internal/constant"
)

// Reply is the shape the model is instructed to produce.
type Reply struct {
	Message   string `json:"message"`
	SessionId string `json:"sessionId"`
}

// Result is the validated outcome. Message is never empty and SessionId always
// equals the request's session id regardless of what the model echoed.
type Result struct {
	Message      string
	SessionId    string
	FallbackUsed bool
}

// Validate parses a raw model completion against the reply contract. Any
// violation (bad JSON, missing or blank message) degrades to the fallback
// text instead of propagating an error: contract failures are a content
// problem, not a pipeline problem.
func Validate(raw string, sessionId string) Result {
	cleaned := stripFences(raw)

	var reply Reply
	if err := json.Unmarshal([]byte(cleaned), &reply); err != nil {
		return fallback(sessionId)
	}

	if strings.TrimSpace(reply.Message) == "" {
		return fallback(sessionId)
	}

	return Result{
		Message:   reply.Message,
		SessionId: sessionId,
	}
}

func fallback(sessionId string) Result {
	return Result{
		Message:      constant.ChatFallbackMessage,
		SessionId:    sessionId,
		FallbackUsed: true,
	}
}

// stripFences removes a surrounding markdown code fence if the model wrapped
// its JSON in one, a frequent tic of chat-tuned models.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
