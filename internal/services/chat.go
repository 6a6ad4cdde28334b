package services

import (
	"context"

	"portfolio-backend/internal/models"
)

// Completer turns a prompt into model text.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// ChatService answers visitor questions with the persona prompt.
type ChatService struct {
	prompts *PromptBuilder
	model   Completer
}

func NewChatService(prompts *PromptBuilder, model Completer) *ChatService {
	return &ChatService{prompts: prompts, model: model}
}

// Reply builds the prompt for message and relays it to the model.
func (s *ChatService) Reply(ctx context.Context, message string, history []models.ChatMessage) (string, error) {
	prompt, err := s.prompts.Build(history, message)
	if err != nil {
		return "", err
	}
	return s.model.Complete(ctx, prompt)
}
