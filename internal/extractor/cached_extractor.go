package extractor

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"pdf-quiz/internal/cache"
	"pdf-quiz/internal/domain"
	"pdf-quiz/internal/logger"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedExtractor stores extracted text keyed by the document's SHA-256.
// Cache failures are logged and never fail an extraction.
type CachedExtractor struct {
	next    domain.TextExtractor
	cache   domain.Cache
	ttl     time.Duration
	sfGroup singleflight.Group
}

// NewCachedExtractor wraps next with a cache lookup.
func NewCachedExtractor(next domain.TextExtractor, c domain.Cache, ttl time.Duration) (*CachedExtractor, error) {
	if next == nil {
		return nil, fmt.Errorf("extractor cannot be nil")
	}
	if c == nil {
		return nil, fmt.Errorf("cache instance cannot be nil for CachedExtractor")
	}
	return &CachedExtractor{next: next, cache: c, ttl: ttl}, nil
}

// extractionVersion is bumped whenever extraction output changes so that
// stale cached text is not served. Entries written under
// previousExtractionVersion are evicted when a document is re-extracted.
const (
	extractionVersion         = "v2"
	previousExtractionVersion = "v1"
)

// sharedExtractionTimeout bounds an extraction that outlives the request
// which started it.
const sharedExtractionTimeout = 2 * time.Minute

// DocumentKey returns the cache key for a document.
func DocumentKey(document []byte) string {
	return documentKey(document, extractionVersion)
}

func documentKey(document []byte, version string) string {
	sum := sha256.Sum256(document)
	return cache.GenerateCacheKey("quizgen", "extract", hex.EncodeToString(sum[:]), version)
}

// Extract implements domain.TextExtractor.
func (c *CachedExtractor) Extract(ctx context.Context, document []byte) (string, error) {
	l := logger.Get()
	key := DocumentKey(document)

	cached, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		l.Debug("Extraction cache hit", zap.String("key", key))
		return cached, nil
	case errors.Is(err, domain.ErrCacheMiss):
		l.Debug("Extraction cache miss", zap.String("key", key))
	default:
		l.Warn("Extraction cache read failed", zap.String("key", key), zap.Error(err))
	}

	// The extraction is shared by every caller waiting on the key, so it
	// must not be cancelled by the caller that happened to start it.
	ch := c.sfGroup.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedExtractionTimeout)
		defer cancel()

		text, extractErr := c.next.Extract(sharedCtx, document)
		if extractErr != nil {
			return "", extractErr
		}
		if setErr := c.cache.Set(sharedCtx, key, text, c.ttl); setErr != nil {
			l.Warn("Extraction cache write failed", zap.String("key", key), zap.Error(setErr))
		}
		staleKey := documentKey(document, previousExtractionVersion)
		if delErr := c.cache.Delete(sharedCtx, staleKey); delErr != nil {
			l.Debug("Stale extraction eviction failed", zap.String("key", staleKey), zap.Error(delErr))
		}
		return text, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return "", res.Err
	}
	if res.Shared {
		l.Debug("Extraction shared with a concurrent request", zap.String("key", key))
	}

	text, ok := res.Val.(string)
	if !ok {
		return "", fmt.Errorf("unexpected type from singleflight for extraction: %T", res.Val)
	}
	return text, nil
}

var _ domain.TextExtractor = (*CachedExtractor)(nil)
