package service

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/prompt"
	"pdf-quiz/internal/validation"

	"go.uber.org/zap"
)

// QuizService defines the interface for quiz generation
type QuizService interface {
	GenerateQuiz(ctx context.Context, req *domain.QuizRequest) (*domain.QuizResponse, error)
}

// quizService implements QuizService
type quizService struct {
	extractor  domain.TextExtractor
	invoker    domain.ModelInvoker
	normalizer domain.QuizNormalizer
	validator  *validation.Validator
	cfg        config.QuizConfig
}

// NewQuizService creates a new instance of quizService
func NewQuizService(
	extractor domain.TextExtractor,
	invoker domain.ModelInvoker,
	normalizer domain.QuizNormalizer,
	cfg config.QuizConfig,
) QuizService {
	return &quizService{
		extractor:  extractor,
		invoker:    invoker,
		normalizer: normalizer,
		validator:  validation.NewValidator(cfg.MaxQuestions),
		cfg:        cfg,
	}
}

// GenerateQuiz runs validation, extraction, prompting, invocation,
// normalization and shaping. Any stage failure ends the call.
func (s *quizService) GenerateQuiz(ctx context.Context, req *domain.QuizRequest) (*domain.QuizResponse, error) {
	start := time.Now()
	l := logger.Get()
	if req != nil && req.RequestID != "" {
		l = l.With(zap.String("request_id", req.RequestID))
	}

	if errs := s.validator.ValidateGenerateQuizRequest(req); len(errs) > 0 {
		l.Warn("Rejected quiz request", zap.Error(errs))
		return nil, errs
	}

	text, err := s.extractor.Extract(ctx, req.Document)
	if err != nil {
		l.Warn("Text extraction failed", zap.Error(err))
		return nil, classify(err)
	}
	if !validation.HasExtractableText(text) {
		l.Warn("Document has no extractable text", zap.Int("document_bytes", len(req.Document)))
		return nil, domain.NewInvalidInputError(domain.MsgNoExtractable)
	}
	l.Info("Document text extracted",
		zap.Int("document_bytes", len(req.Document)),
		zap.Int("chars", utf8.RuneCountInString(text)))

	text = s.truncate(l, text)

	raw, err := s.invoker.Invoke(ctx, prompt.Build(text, req.RequestedCount))
	if err != nil {
		l.Error("Model invocation failed", zap.String("model", s.invoker.ModelID()), zap.Error(err))
		return nil, classify(err)
	}
	l.Debug("Raw model output", zap.String("model", s.invoker.ModelID()), zap.String("raw", raw))

	items := s.normalizer.Normalize(raw)
	if len(items) == 0 {
		l.Error("Model output yielded no quiz items", zap.Int("raw_chars", len(raw)))
		return nil, domain.NewQuizParseError()
	}

	shaped := domain.Shape(items, req.RequestedCount)
	l.Info("Quiz generated",
		zap.Int("requested", req.RequestedCount),
		zap.Int("parsed", len(items)),
		zap.Int("returned", len(shaped)),
		zap.Duration("elapsed", time.Since(start)))

	return &domain.QuizResponse{Items: shaped}, nil
}

// truncate bounds the document to MaxDocumentChars runes; zero disables it.
func (s *quizService) truncate(l *zap.Logger, text string) string {
	limit := s.cfg.MaxDocumentChars
	if limit <= 0 {
		return text
	}
	n := utf8.RuneCountInString(text)
	if n <= limit {
		return text
	}
	runes := []rune(text)
	l.Warn("Document text truncated before prompting",
		zap.Int("original_chars", n),
		zap.Int("truncated_chars", limit))
	return string(runes[:limit])
}

// classify keeps domain errors and maps everything else to an internal
// error with the generic user message.
func classify(err error) error {
	var domainErr *domain.DomainError
	if errors.As(err, &domainErr) {
		return err
	}
	var validationErrs domain.ValidationErrors
	if errors.As(err, &validationErrs) {
		return err
	}
	return domain.NewInternalError(domain.MsgInternal, err)
}
