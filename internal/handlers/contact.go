package handlers

import (
	"context"
	"net/http"

	"portfolio-backend/internal/models"
)

type contactSubmitter interface {
	Submit(ctx context.Context, req models.ContactRequest) (string, error)
}

type ContactHandler struct {
	contact contactSubmitter
}

func NewContactHandler(contact contactSubmitter) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, r, err)
		return
	}

	ack, err := h.contact.Submit(r.Context(), req)
	if err != nil {
		handleServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ContactResponse{Success: true, Message: ack})
}
