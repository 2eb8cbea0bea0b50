package contract

import (
	"testing"

	"ai-quickdoc-be/internal/constant"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name         string
		raw          string
		sessionId    string
		wantMessage  string
		wantFallback bool
	}{
		{
			name:        "well formed reply",
			raw:         `{"message": "The sky is blue.", "sessionId": "abc"}`,
			sessionId:   "abc",
			wantMessage: "The sky is blue.",
		},
		{
			name:        "fenced json is unwrapped",
			raw:         "```json\n{\"message\": \"42\", \"sessionId\": \"abc\"}\n```",
			sessionId:   "abc",
			wantMessage: "42",
		},
		{
			name:        "bare fence is unwrapped",
			raw:         "```\n{\"message\": \"ok\", \"sessionId\": \"abc\"}\n```",
			sessionId:   "abc",
			wantMessage: "ok",
		},
		{
			name:         "plain prose degrades to fallback",
			raw:          "I think the answer is probably blue.",
			sessionId:    "abc",
			wantMessage:  constant.ChatFallbackMessage,
			wantFallback: true,
		},
		{
			name:         "empty object degrades to fallback",
			raw:          `{}`,
			sessionId:    "abc",
			wantMessage:  constant.ChatFallbackMessage,
			wantFallback: true,
		},
		{
			name:         "empty message degrades to fallback",
			raw:          `{"message": "", "sessionId": "abc"}`,
			sessionId:    "abc",
			wantMessage:  constant.ChatFallbackMessage,
			wantFallback: true,
		},
		{
			name:         "whitespace message degrades to fallback",
			raw:          `{"message": "   ", "sessionId": "abc"}`,
			sessionId:    "abc",
			wantMessage:  constant.ChatFallbackMessage,
			wantFallback: true,
		},
		{
			name:         "truncated json degrades to fallback",
			raw:          `{"message": "partial`,
			sessionId:    "abc",
			wantMessage:  constant.ChatFallbackMessage,
			wantFallback: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Validate(tt.raw, tt.sessionId)

			if got.Message != tt.wantMessage {
				t.Errorf("Message = %q, want %q", got.Message, tt.wantMessage)
			}
			if got.SessionId != tt.sessionId {
				t.Errorf("SessionId = %q, want %q", got.SessionId, tt.sessionId)
			}
			if got.FallbackUsed != tt.wantFallback {
				t.Errorf("FallbackUsed = %v, want %v", got.FallbackUsed, tt.wantFallback)
			}
		})
	}
}

func TestValidateIgnoresEchoedSessionId(t *testing.T) {
	// The model may hallucinate a different session id; the request's id wins.
	got := Validate(`{"message": "hi", "sessionId": "forged"}`, "real")
	if got.SessionId != "real" {
		t.Errorf("SessionId = %q, want %q", got.SessionId, "real")
	}
}
