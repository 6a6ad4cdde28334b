package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/time/rate"
	"google.golang.org/api/option"
)

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	rateWaitTimeout    = 30 * time.Second
)

// generator is the slice of *genai.GenerativeModel the gateway needs.
type generator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// dialFunc opens a model handle for one call. The returned func releases it.
type dialFunc func(ctx context.Context, apiKey, modelName string) (generator, func() error, error)

// GeminiService relays prompts to Gemini. It makes exactly one attempt per
// Complete call; callers must not retry on its behalf.
type GeminiService struct {
	apiKey    func() string
	modelName string
	dial      dialFunc
	limiter   *rate.Limiter
	rateChan  chan struct{} // concurrency slots

	waitTimeout time.Duration
}

// NewGeminiService creates the gateway. apiKey is consulted on every call so a
// missing credential surfaces as a ConfigurationError per request.
func NewGeminiService(apiKey func() string, modelName string, requestsPerMin, concurrentReqs int) *GeminiService {
	if modelName == "" {
		modelName = DefaultGeminiModel
	}
	if concurrentReqs < 1 {
		concurrentReqs = 1
	}

	rateChan := make(chan struct{}, concurrentReqs)
	for i := 0; i < concurrentReqs; i++ {
		rateChan <- struct{}{}
	}

	limiter := rate.NewLimiter(rate.Inf, 0)
	if requestsPerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(requestsPerMin)/60), requestsPerMin)
	}

	return &GeminiService{
		apiKey:    apiKey,
		modelName: modelName,
		dial:      dialGemini,
		limiter:   limiter,
		rateChan:  rateChan,

		waitTimeout: rateWaitTimeout,
	}
}

func dialGemini(ctx context.Context, apiKey, modelName string) (generator, func() error, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	model.SetTemperature(0.7)
	model.SetTopP(0.95)

	return model, client.Close, nil
}

// acquireRate blocks until both the per-minute budget and a concurrency slot
// are available.
// acquireRate waits for a token and a free slot. Running out of the local wait
// budget is errThrottled; a caller that went away gets its own ctx error.
func (s *GeminiService) acquireRate(parent context.Context) error {
	ctx, cancel := context.WithTimeout(parent, s.waitTimeout)
	defer cancel()

	if err := s.limiter.Wait(ctx); err != nil {
		return s.waitErr(parent)
	}

	select {
	case <-s.rateChan:
		return nil
	case <-ctx.Done():
		return s.waitErr(parent)
	}
}

func (s *GeminiService) waitErr(parent context.Context) error {
	if err := parent.Err(); err != nil {
		return err
	}
	return errThrottled
}

func (s *GeminiService) releaseRate() {
	s.rateChan <- struct{}{}
}

// Complete sends prompt to the model and returns its text reply.
func (s *GeminiService) Complete(ctx context.Context, prompt string) (string, error) {
	apiKey := ""
	if s.apiKey != nil {
		apiKey = s.apiKey()
	}
	if apiKey == "" {
		return "", &ConfigurationError{Message: "API key is not configured"}
	}

	if err := s.acquireRate(ctx); err != nil {
		return "", &UpstreamError{Message: "Failed to process chat message", Err: err}
	}
	defer s.releaseRate()

	model, closeFn, err := s.dial(ctx, apiKey, s.modelName)
	if err != nil {
		return "", &UpstreamError{Message: "Failed to process chat message", Err: err}
	}
	defer closeFn()

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", &UpstreamError{Message: "Failed to process chat message", Err: fmt.Errorf("Gemini API error: %w", err)}
	}

	for i, cand := range resp.Candidates {
		if cand.FinishReason != genai.FinishReasonStop && cand.FinishReason != genai.FinishReasonUnspecified {
			log.Printf("WARNING: Gemini candidate %d stopped due to %s", i, cand.FinishReason)
		}
	}

	text := extractText(resp)
	if strings.TrimSpace(text) == "" {
		return "", &UpstreamError{Message: "Failed to process chat message", Err: errEmptyResponse}
	}

	return text, nil
}

func extractText(resp *genai.GenerateContentResponse) string {
	if resp == nil {
		return ""
	}

	var text strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if t, ok := part.(genai.Text); ok {
				text.WriteString(string(t))
			}
		}
	}
	return text.String()
}
