package domain

import "context"

// TextExtractor turns raw document bytes into plain text.
type TextExtractor interface {
	// Extract returns the document text. Malformed documents yield an
	// *DomainError with code ErrExtraction.
	Extract(ctx context.Context, document []byte) (string, error)
}

// ModelInvoker sends a prompt to the generation service exactly once.
type ModelInvoker interface {
	// Invoke returns the raw model text. It fails with ErrEmptyModelResponse
	// when the service answered without usable content and with
	// ErrModelInvocation on transport or service failures.
	Invoke(ctx context.Context, prompt string) (string, error)

	// ModelID returns the model identifier this invoker calls.
	ModelID() string
}

// QuizNormalizer converts free-form model output into quiz items.
// Implementations never fail; unusable output yields an empty slice.
type QuizNormalizer interface {
	Normalize(raw string) []QuizItem
}
