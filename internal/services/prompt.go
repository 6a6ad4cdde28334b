package services

import (
	"strings"

	"portfolio-backend/internal/models"
)

// DownloadCVToken is the marker the model is asked to emit when the visitor
// wants the CV. The frontend swaps it for a download button.
const DownloadCVToken = "[DOWNLOAD_CV]"

const (
	contactInstruction = "Remember to provide Ryan's direct contact details: phone +62 813 8764 3604 and email ryradit@gmail.com."
	cvInstruction      = "The user is asking about my CV/resume. Tell them they can download my CV directly from this chat by clicking the download button that will appear below this message. Include " + DownloadCVToken + " in your response so the frontend can replace it with an actual download button."
	assistantCue       = "Assistant:"
)

var (
	contactKeywords = []string{"contact", "reach", "email", "phone", "call", "message", "hire", "get in touch"}
	cvKeywords      = []string{"cv", "resume", "curriculum vitae", "download cv", "get cv", "view cv", "see cv", "portfolio"}
)

// PromptBuilder flattens the persona, the conversation so far and the new
// visitor message into the single text prompt sent to the model.
type PromptBuilder struct {
	persona string
}

func NewPromptBuilder(persona string) *PromptBuilder {
	if strings.TrimSpace(persona) == "" {
		persona = DefaultPersona
	}
	return &PromptBuilder{persona: persona}
}

// BuildPrompt builds a prompt against the built-in persona.
func BuildPrompt(history []models.ChatMessage, message string) (string, error) {
	return NewPromptBuilder(DefaultPersona).Build(history, message)
}

// Build assembles the prompt. The output depends only on its inputs.
func (b *PromptBuilder) Build(history []models.ChatMessage, message string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", &ValidationError{
			Message: "Message is required",
			Fields:  map[string]string{"message": "required"},
		}
	}

	var sb strings.Builder
	sb.WriteString(b.persona)
	sb.WriteString("\n\n")

	for _, msg := range history {
		sb.WriteString(roleLabel(msg.Role))
		sb.WriteString(": ")
		sb.WriteString(msg.Content)
		sb.WriteString("\n")
	}

	sb.WriteString("User: ")
	sb.WriteString(message)
	sb.WriteString("\n")

	for _, line := range instructionsFor(message) {
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	sb.WriteString(assistantCue)
	return sb.String(), nil
}

func roleLabel(role string) string {
	if role == "user" {
		return "User"
	}
	return "Assistant"
}

// instructionsFor returns the keyword-triggered lines in injection order.
// Both lines are returned when a message matches both keyword sets.
func instructionsFor(message string) []string {
	lower := strings.ToLower(message)

	var lines []string
	if containsAny(lower, contactKeywords) {
		lines = append(lines, contactInstruction)
	}
	if containsAny(lower, cvKeywords) {
		lines = append(lines, cvInstruction)
	}
	return lines
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
