package prompt

import (
	"strings"

	"ai-quickdoc-be/internal/constant"
)

// BuildSystemPrompt assembles the system instruction plus the retrieved
// context for one query. An empty passage list produces an empty CONTEXT
// section, which steers the model toward the fallback reply.
func BuildSystemPrompt(sessionId string, passages []string) string {
	var sb strings.Builder

	sb.WriteString(constant.ChatSystemInstruction)
	sb.WriteString("\nThe session id for this conversation is: ")
	sb.WriteString(sessionId)
	sb.WriteString("\n\nCONTEXT:\n")

	if len(passages) == 0 {
		sb.WriteString("(no context available)\n")
		return sb.String()
	}

	for i, p := range passages {
		if i > 0 {
			sb.WriteString("\n---\n")
		}
		sb.WriteString(strings.TrimSpace(p))
		sb.WriteString("\n")
	}

	return sb.String()
}
