package app

import (
	"context"
	"errors"
	"fmt"

	"pdf-quiz/internal/adapter"
	"pdf-quiz/internal/adapter/quizgen"
	"pdf-quiz/internal/cache"
	"pdf-quiz/internal/config"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/extractor"
	"pdf-quiz/internal/logger"
	"pdf-quiz/internal/parser"
	"pdf-quiz/internal/service"

	"go.uber.org/zap"
)

// Components are the long-lived collaborators built once at startup.
type Components struct {
	QuizService service.QuizService
	// Cache is nil when no Redis address is configured or Redis was
	// unreachable at startup.
	Cache   domain.Cache
	closers []func() error
}

// Build wires the generation pipeline from cfg.
func Build(ctx context.Context, cfg *config.Config) (*Components, error) {
	l := logger.Get()
	c := &Components{}

	invoker, err := quizgen.NewModelInvoker(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	l.Info("Model invoker initialized",
		zap.String("provider", cfg.LLM.Provider),
		zap.String("model", invoker.ModelID()))

	var textExtractor domain.TextExtractor = extractor.NewPDFExtractor()
	if cfg.CacheEnabled() {
		redisClient, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			l.Warn("Redis unavailable, extraction cache disabled", zap.Error(err))
		} else {
			c.Cache = adapter.NewRedisCacheAdapter(redisClient)
			c.closers = append(c.closers, redisClient.Close)

			cached, err := extractor.NewCachedExtractor(textExtractor, c.Cache, cfg.Redis.ExtractionTTL)
			if err != nil {
				return nil, fmt.Errorf("failed to create cached extractor: %w", err)
			}
			textExtractor = cached
			l.Info("Extraction cache enabled",
				zap.String("address", cfg.Redis.Address),
				zap.Duration("ttl", cfg.Redis.ExtractionTTL))
		}
	}

	normalizer := parser.NewNormalizer(cfg.Quiz.MarkupFallback)
	c.QuizService = service.NewQuizService(textExtractor, invoker, normalizer, cfg.Quiz)
	return c, nil
}

// Close releases connections opened by Build.
func (c *Components) Close() error {
	var errs []error
	for _, closeFn := range c.closers {
		if err := closeFn(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
