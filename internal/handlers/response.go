package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

// maxBodyBytes bounds a request body. Chat requests carry the whole
// conversation, so the cap is sized for a long page view.
const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func errorResp(message string, r *http.Request) models.ErrorResponse {
	return models.ErrorResponse{
		Error:     message,
		RequestID: r.Header.Get("X-Request-ID"),
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst)
}

// writeDecodeError answers a body decodeJSON rejected.
func writeDecodeError(w http.ResponseWriter, r *http.Request, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		resp := errorResp("Request body too large", r)
		resp.Details = fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit)
		writeJSON(w, http.StatusRequestEntityTooLarge, resp)
		return
	}
	writeJSON(w, http.StatusBadRequest, errorResp("Invalid request body", r))
}

// handleServiceError maps service errors onto status codes. Provider details
// go to the log; the visitor only sees the short diagnostic.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		validationErr *services.ValidationError
		configErr     *services.ConfigurationError
		upstreamErr   *services.UpstreamError
	)

	switch {
	case errors.As(err, &validationErr):
		writeJSON(w, http.StatusBadRequest, errorResp(validationErr.Error(), r))
	case errors.As(err, &configErr):
		log.Printf("✗ [%s] configuration error: %s", r.Header.Get("X-Request-ID"), configErr.Message)
		writeJSON(w, http.StatusInternalServerError, errorResp(configErr.Message, r))
	case errors.As(err, &upstreamErr):
		log.Printf("✗ [%s] upstream error: %v", r.Header.Get("X-Request-ID"), upstreamErr)
		resp := errorResp(upstreamErr.Message, r)
		resp.Details = upstreamErr.Diagnostic()
		writeJSON(w, http.StatusInternalServerError, resp)
	default:
		log.Printf("✗ [%s] unexpected error: %v", r.Header.Get("X-Request-ID"), err)
		writeJSON(w, http.StatusInternalServerError, errorResp("Something went wrong. Please try again.", r))
	}
}
