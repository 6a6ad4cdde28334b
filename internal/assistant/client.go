package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"portfolio-backend/internal/models"
)

// NetworkError means the chat endpoint could not be reached or its reply could
// not be read.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "could not reach the assistant"
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// APIError is a non-2xx reply from the chat endpoint. Message prefers the
// server's details over its error text.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return e.Message
}

// HTTPClient calls POST {baseURL}/api/chat.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 60 * time.Second},
	}
}

func (c *HTTPClient) Chat(ctx context.Context, req models.ChatRequest) (string, error) {
	if req.History == nil {
		req.History = []models.ChatMessage{}
	}
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode chat request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build chat request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(httpReq)
	if err != nil {
		return "", &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		json.NewDecoder(resp.Body).Decode(&errResp)
		msg := errResp.Details
		if msg == "" {
			msg = errResp.Error
		}
		if msg == "" {
			msg = "Failed to get response"
		}
		return "", &APIError{Status: resp.StatusCode, Message: msg}
	}

	var chatResp models.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chatResp); err != nil {
		return "", &NetworkError{Err: err}
	}
	return chatResp.Response, nil
}
