package models

// ChatMessage represents a single turn of the visitor conversation.
type ChatMessage struct {
	Role      string `json:"role"` // "user" or "assistant"
	Content   string `json:"content"`
	Timestamp string `json:"timestamp,omitempty"`
}

// ChatRequest is the payload sent to the chat endpoint.
type ChatRequest struct {
	Message string        `json:"message"`
	History []ChatMessage `json:"history"`
}

// ChatResponse is the reply from the assistant.
type ChatResponse struct {
	Response string `json:"response"`
}
