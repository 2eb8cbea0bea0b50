package prompt

import (
	"strings"
	"testing"
)

func TestBuildSystemPrompt(t *testing.T) {
	out := BuildSystemPrompt("sess-1", []string{"Photosynthesis converts light to energy.", "Chlorophyll absorbs red light."})

	if !strings.Contains(out, "sess-1") {
		t.Error("prompt is missing the session id")
	}
	if !strings.Contains(out, "Photosynthesis converts light to energy.") {
		t.Error("prompt is missing the first passage")
	}
	if !strings.Contains(out, "---") {
		t.Error("passages are not separated")
	}
}

func TestBuildSystemPromptEmptyContext(t *testing.T) {
	out := BuildSystemPrompt("sess-2", nil)

	if !strings.Contains(out, "(no context available)") {
		t.Error("empty context marker missing")
	}
}
