package quizgen

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"github.com/tmc/langchaingo/llms"
	"go.uber.org/zap"
)

// LangchainInvoker implements domain.ModelInvoker for any langchaingo model
// (Ollama, OpenAI).
type LangchainInvoker struct {
	llm         llms.Model
	model       string
	temperature float64
}

func NewLangchainInvoker(llm llms.Model, model string, temperature float64) *LangchainInvoker {
	return &LangchainInvoker{llm: llm, model: model, temperature: temperature}
}

func (l *LangchainInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	log := logger.Get()

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}
	resp, err := l.llm.GenerateContent(ctx, messages, llms.WithTemperature(l.temperature))
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error("LLM request timed out", zap.String("model", l.model), zap.Error(err))
			return "", domain.NewModelInvocationError(fmt.Errorf("LLM request timed out: %w", err))
		}
		log.Error("Failed to get response from LLM", zap.String("model", l.model), zap.Error(err))
		return "", domain.NewModelInvocationError(fmt.Errorf("LLM call failed: %w", err))
	}

	if resp == nil || len(resp.Choices) == 0 || resp.Choices[0] == nil {
		log.Warn("LLM returned no choices", zap.String("model", l.model))
		return "", domain.NewEmptyModelResponseError()
	}

	text := strings.TrimSpace(stripThinking(resp.Choices[0].Content))
	if text == "" {
		log.Warn("LLM returned an empty choice", zap.String("model", l.model))
		return "", domain.NewEmptyModelResponseError()
	}
	return text, nil
}

func (l *LangchainInvoker) ModelID() string {
	return l.model
}

// stripThinking removes a <think>...</think> block emitted by reasoning
// models served through Ollama.
func stripThinking(s string) string {
	start := strings.Index(s, "<think>")
	if start == -1 {
		return s
	}
	end := strings.Index(s, "</think>")
	if end == -1 || end < start {
		return s
	}
	return s[:start] + s[end+len("</think>"):]
}

var _ domain.ModelInvoker = (*LangchainInvoker)(nil)
