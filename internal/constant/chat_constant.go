package constant

const (
	ChatRoleUser      = "user"
	ChatRoleAssistant = "assistant"
	ChatRoleSystem    = "system"
)

// ChatFallbackMessage is returned verbatim whenever the model cannot answer
// from the retrieved context or its reply does not satisfy the JSON contract.
const ChatFallbackMessage = "Hmmm I do not know that. Please ask me anything in the file."

// ChatInternalErrorMessage is the body message for unrecoverable pipeline failures.
const ChatInternalErrorMessage = "Internal Server Error"

// ChatSystemInstruction constrains the model to the retrieved context and to a
// machine-readable reply shape. The sessionId placeholder is substituted per request.
const ChatSystemInstruction = `You are a helpful assistant that answers questions strictly based on the provided context.

Rules:
1. Only answer using information found in the CONTEXT section below. Do not use outside knowledge.
2. If the context does not contain the answer, reply with exactly this message: "` + ChatFallbackMessage + `"
3. Respond ONLY with a single JSON object, no markdown fences, no extra text.
4. The JSON object must have exactly two keys: "message" (your answer as a string) and "sessionId" (echo the session id you were given, unchanged).
`
