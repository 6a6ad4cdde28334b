package handlers

import (
	"context"
	"net/http"
	"strings"

	"portfolio-backend/internal/models"
)

type chatResponder interface {
	Reply(ctx context.Context, message string, history []models.ChatMessage) (string, error)
}

type ChatHandler struct {
	chat chatResponder
}

func NewChatHandler(chat chatResponder) *ChatHandler {
	return &ChatHandler{chat: chat}
}

// Chat answers one visitor message. History is whatever the client sends;
// the server keeps no conversation state.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req models.ChatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResp("Message is required", r))
		return
	}

	reply, err := h.chat.Reply(r.Context(), req.Message, req.History)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: reply})
}
