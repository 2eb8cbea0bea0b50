package dto

// SendChatRequest is the raw wire body of the chat endpoint. SessionId is an
// opaque correlation token chosen by the client; it is echoed, never
// interpreted, and may be empty.
type SendChatRequest struct {
	Message   string `json:"message" validate:"required"`
	SessionId string `json:"sessionId"`
}

// ChatResponse mirrors the contract the model is instructed to emit. Message is
// never empty on a 200: contract violations are replaced by the fallback text.
type ChatResponse struct {
	Message   string `json:"message"`
	SessionId string `json:"sessionId"`
}

// ChatErrorResponse is the hard-failure body. SessionId serializes as null.
type ChatErrorResponse struct {
	Message   string  `json:"message"`
	SessionId *string `json:"sessionId"`
}
