package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
	"google.golang.org/genai"
)

// contentGenerator is the subset of *genai.Models used by GeminiInvoker.
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// GeminiInvoker implements domain.ModelInvoker with the Google Gen AI SDK.
type GeminiInvoker struct {
	models      contentGenerator
	model       string
	temperature float32
}

// NewGeminiInvoker creates the Gemini client once; the invoker is safe for
// concurrent use.
func NewGeminiInvoker(ctx context.Context, apiKey, model string, temperature float64) (*GeminiInvoker, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("gemini model name cannot be empty")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	logger.Get().Info("Initialized Gemini model invoker", zap.String("model", model))
	return newGeminiInvoker(client.Models, model, temperature), nil
}

func newGeminiInvoker(models contentGenerator, model string, temperature float64) *GeminiInvoker {
	return &GeminiInvoker{models: models, model: model, temperature: float32(temperature)}
}

// Invoke sends prompt as a single user turn and returns the text of the
// first candidate.
func (g *GeminiInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{}
	if g.temperature > 0 {
		temp := g.temperature
		config.Temperature = &temp
	}

	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), config)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			logger.Get().Error("Gemini API returned an error",
				zap.Int("status_code", apiErr.Code),
				zap.String("status", apiErr.Status),
				zap.String("message", apiErr.Message))
		} else {
			logger.Get().Error("Gemini request failed", zap.Error(err))
		}
		return "", domain.NewModelInvocationError(err)
	}

	text, ok := firstCandidateText(resp)
	if !ok {
		logger.Get().Warn("Gemini returned no usable candidate", zap.String("model", g.model))
		return "", domain.NewEmptyModelResponseError()
	}
	return text, nil
}

func (g *GeminiInvoker) ModelID() string {
	return g.model
}

// firstCandidateText joins the non-thought text parts of the first
// candidate. ok is false when there is no candidate, no part, or no text.
func firstCandidateText(resp *genai.GenerateContentResponse) (string, bool) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", false
	}
	content := resp.Candidates[0].Content
	if content == nil || len(content.Parts) == 0 {
		return "", false
	}

	var sb strings.Builder
	for _, part := range content.Parts {
		if part == nil || part.Thought {
			continue
		}
		sb.WriteString(part.Text)
	}
	text := strings.TrimSpace(sb.String())
	return text, text != ""
}

var _ domain.ModelInvoker = (*GeminiInvoker)(nil)
