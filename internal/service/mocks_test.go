package service

import (
	"context"

	"pdf-quiz/internal/domain"

	"github.com/stretchr/testify/mock"
)

// --- MockTextExtractor ---
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	args := m.Called(ctx, document)
	return args.String(0), args.Error(1)
}

// --- MockModelInvoker ---
type MockModelInvoker struct {
	mock.Mock
}

func (m *MockModelInvoker) Invoke(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func (m *MockModelInvoker) ModelID() string {
	return "mock-model"
}

// --- MockQuizNormalizer ---
type MockQuizNormalizer struct {
	mock.Mock
}

func (m *MockQuizNormalizer) Normalize(raw string) []domain.QuizItem {
	args := m.Called(raw)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]domain.QuizItem)
}
