package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"portfolio-backend/internal/models"
	"portfolio-backend/internal/services"
)

// ─── Chat Handler Tests ───

type recordingCompleter struct {
	prompt string
	reply  string
	err    error
}

func (c *recordingCompleter) Complete(_ context.Context, prompt string) (string, error) {
	c.prompt = prompt
	return c.reply, c.err
}

func newChatHandler(model services.Completer) *ChatHandler {
	return NewChatHandler(services.NewChatService(services.NewPromptBuilder(""), model))
}

func postJSON(t *testing.T, h http.HandlerFunc, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	jsonBody, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(jsonBody))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return resp
}

func TestChatHandler_Success(t *testing.T) {
	model := &recordingCompleter{reply: "Ryan works with PyTorch and React."}
	h := newChatHandler(model)

	rr := postJSON(t, h.Chat, "/api/chat", models.ChatRequest{Message: "What are Ryan's skills?", History: []models.ChatMessage{}})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp models.ChatResponse
	if err := json.NewDecoder(rr.Body).Decode(&resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Response != model.reply {
		t.Errorf("Expected response %q, got %q", model.reply, resp.Response)
	}
}

func TestChatHandler_ContactQuestionInjectsInstruction(t *testing.T) {
	model := &recordingCompleter{reply: "Call +62 813 8764 3604."}
	h := newChatHandler(model)

	rr := postJSON(t, h.Chat, "/api/chat", models.ChatRequest{Message: "How do I contact you?"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	userIdx := strings.Index(model.prompt, "User: How do I contact you?\n")
	contactIdx := strings.Index(model.prompt, "Remember to provide Ryan's direct contact details")
	if userIdx < 0 || contactIdx < 0 {
		t.Fatalf("Expected user line and contact instruction in prompt:\n%s", model.prompt)
	}
	if contactIdx < userIdx {
		t.Errorf("Expected contact instruction after the user line")
	}
}

func TestChatHandler_MissingMessage(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"empty message", models.ChatRequest{Message: ""}},
		{"whitespace message", models.ChatRequest{Message: "   \n"}},
		{"missing field", map[string]string{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			model := &recordingCompleter{reply: "unused"}
			rr := postJSON(t, newChatHandler(model).Chat, "/api/chat", tc.body)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("Expected 400, got %d", rr.Code)
			}
			if got := decodeError(t, rr).Error; got != "Message is required" {
				t.Errorf("Expected 'Message is required', got %q", got)
			}
			if model.prompt != "" {
				t.Errorf("Expected model not to be called")
			}
		})
	}
}

func TestChatHandler_InvalidBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader("{not json"))
	rr := httptest.NewRecorder()
	newChatHandler(&recordingCompleter{}).Chat(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}
}

// sizedChatBody encodes a chat request whose JSON is exactly size bytes.
func sizedChatBody(t *testing.T, size int) []byte {
	t.Helper()
	req := models.ChatRequest{
		Message: "And his education?",
		History: []models.ChatMessage{{Role: "user", Content: ""}},
	}
	base, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	req.History[0].Content = strings.Repeat("a", size-len(base))
	body, _ := json.Marshal(req)
	if len(body) != size {
		t.Fatalf("Expected %d byte body, got %d", size, len(body))
	}
	return body
}

func postRaw(h http.HandlerFunc, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/chat", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h(rr, req)
	return rr
}

func TestChatHandler_LongConversation(t *testing.T) {
	history := make([]models.ChatMessage, 0, 80)
	for i := 0; i < 40; i++ {
		history = append(history,
			models.ChatMessage{Role: "user", Content: strings.Repeat("Tell me more about his projects. ", 25)},
			models.ChatMessage{Role: "assistant", Content: strings.Repeat("Ryan built an AI recruitment MVP. ", 25)},
		)
	}

	model := &recordingCompleter{reply: "Sure."}
	rr := postJSON(t, newChatHandler(model).Chat, "/api/chat", models.ChatRequest{Message: "And after that?", History: history})

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 for a 40-turn conversation, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestChatHandler_BodySizeCap(t *testing.T) {
	model := &recordingCompleter{reply: "Sure."}
	h := newChatHandler(model).Chat

	rr := postRaw(h, sizedChatBody(t, maxBodyBytes-16))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200 just under the cap, got %d: %s", rr.Code, rr.Body.String())
	}

	model.prompt = ""
	rr = postRaw(h, sizedChatBody(t, maxBodyBytes+16))
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("Expected 413 just over the cap, got %d", rr.Code)
	}
	resp := decodeError(t, rr)
	if resp.Error != "Request body too large" || resp.Details == "" {
		t.Errorf("Expected size error with details, got %+v", resp)
	}
	if model.prompt != "" {
		t.Errorf("Expected model not to be called")
	}
}

func TestChatHandler_MissingCredential(t *testing.T) {
	gateway := services.NewGeminiService(func() string { return "" }, "", 0, 1)
	rr := postJSON(t, newChatHandler(gateway).Chat, "/api/chat", models.ChatRequest{Message: "Hello"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	if got := decodeError(t, rr).Error; got != "API key is not configured" {
		t.Errorf("Expected configuration error message, got %q", got)
	}
}

func TestChatHandler_UpstreamFailureHidesProviderDetail(t *testing.T) {
	model := &recordingCompleter{err: &services.UpstreamError{
		Message: "Failed to process chat message",
		Err:     errors.New("googleapi: key=AIzaSECRET rejected"),
	}}
	rr := postJSON(t, newChatHandler(model).Chat, "/api/chat", models.ChatRequest{Message: "Hello"})

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500, got %d", rr.Code)
	}
	body := rr.Body.String()
	if strings.Contains(body, "AIzaSECRET") {
		t.Fatalf("Provider detail leaked to client: %s", body)
	}

	var resp models.ErrorResponse
	json.Unmarshal([]byte(body), &resp)
	if resp.Error != "Failed to process chat message" || resp.Details == "" {
		t.Errorf("Expected error and short details, got %+v", resp)
	}
}

// ─── Contact Handler Tests ───

func TestContactHandler_ValidationAndDegradedSuccess(t *testing.T) {
	h := NewContactHandler(services.NewContactService(nil, nil, nil))

	rr := postJSON(t, h.Submit, "/api/contact", models.ContactRequest{Name: "Ada"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for missing fields, got %d", rr.Code)
	}
	if got := decodeError(t, rr).Error; got != "Name, email, and message are required" {
		t.Errorf("Unexpected error %q", got)
	}

	rr = postJSON(t, h.Submit, "/api/contact", models.ContactRequest{Name: "Ada", Email: "not-an-email", Message: "hi"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for invalid email, got %d", rr.Code)
	}

	rr = postJSON(t, h.Submit, "/api/contact", models.ContactRequest{Name: "Ada", Email: "ada@example.com", Message: "hi"})
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	var resp models.ContactResponse
	json.NewDecoder(rr.Body).Decode(&resp)
	if !resp.Success || resp.Message == "" {
		t.Errorf("Expected success acknowledgement, got %+v", resp)
	}
}

// ─── CV Handler Tests ───

func TestCVHandler_ServesAttachment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Ryan Radityatama - CV.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	rr := httptest.NewRecorder()
	NewCVHandler(path).Download(rr, httptest.NewRequest(http.MethodGet, "/api/cv", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Expected attachment disposition, got %q", cd)
	}
	if rr.Body.String() != "%PDF-1.4 test" {
		t.Errorf("Unexpected body %q", rr.Body.String())
	}
}

func TestCVHandler_NotConfigured(t *testing.T) {
	for _, path := range []string{"", filepath.Join(t.TempDir(), "missing.pdf")} {
		rr := httptest.NewRecorder()
		NewCVHandler(path).Download(rr, httptest.NewRequest(http.MethodGet, "/api/cv", nil))
		if rr.Code != http.StatusNotFound {
			t.Errorf("Expected 404 for %q, got %d", path, rr.Code)
		}
	}
}
