package quizgen

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"

	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModelInvoker builds the invoker selected by cfg.Provider. A positive
// cfg.Timeout bounds every call.
func NewModelInvoker(ctx context.Context, cfg config.LLMConfig) (domain.ModelInvoker, error) {
	var (
		invoker domain.ModelInvoker
		err     error
	)

	switch cfg.Provider {
	case config.ProviderGemini:
		invoker, err = NewGeminiInvoker(ctx, cfg.APIKey, cfg.Model, cfg.Temperature)
	case config.ProviderOllama:
		var llm *ollama.LLM
		llm, err = ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.ServerURL),
			ollama.WithHTTPClient(&http.Client{}),
		)
		if err == nil {
			invoker = NewLangchainInvoker(llm, cfg.Model, cfg.Temperature)
		}
	case config.ProviderOpenAI:
		var llm *openai.LLM
		llm, err = openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err == nil {
			invoker = NewLangchainInvoker(llm, cfg.Model, cfg.Temperature)
		}
	default:
		return nil, fmt.Errorf("unsupported llm provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create %s model invoker: %w", cfg.Provider, err)
	}

	if cfg.Timeout > 0 {
		return WithTimeout(invoker, cfg.Timeout), nil
	}
	return invoker, nil
}

type timeoutInvoker struct {
	next    domain.ModelInvoker
	timeout time.Duration
}

// WithTimeout bounds each Invoke call on next by timeout.
func WithTimeout(next domain.ModelInvoker, timeout time.Duration) domain.ModelInvoker {
	return &timeoutInvoker{next: next, timeout: timeout}
}

func (t *timeoutInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.next.Invoke(ctx, prompt)
}

func (t *timeoutInvoker) ModelID() string {
	return t.next.ModelID()
}
