// Package autofillcache caches LLM autofill drafts in the key-value store.
package autofillcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/cinedex/internal/db"
	"github.com/kailas-cloud/cinedex/internal/domain"
	"github.com/kailas-cloud/cinedex/internal/domain/content"
)

// store is the consumer interface for the autofill cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// CachedAutofiller caches drafts keyed by (type, normalized title).
type CachedAutofiller struct {
	inner      domain.Autofiller
	store      store
	keyPrefix  string
	ttl        time.Duration
	cacheTotal *prometheus.CounterVec
	logger     *zap.Logger
}

// New creates a caching decorator.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"), passed explicitly.
func New(
	inner domain.Autofiller,
	s store,
	keyPrefix string,
	ttl time.Duration,
	cacheTotal *prometheus.CounterVec,
	logger *zap.Logger,
) *CachedAutofiller {
	return &CachedAutofiller{
		inner:      inner,
		store:      s,
		keyPrefix:  keyPrefix + "autofill:",
		ttl:        ttl,
		cacheTotal: cacheTotal,
		logger:     logger,
	}
}

type cachedDraft struct {
	Description       string `json:"description"`
	Industry          string `json:"industry"`
	ReleaseYear       int    `json:"releaseYear"`
	SuggestedLanguage string `json:"suggestedLanguage,omitempty"`
}

// Autofill returns a cached draft or calls the inner provider.
// A hit reports zero token usage.
func (c *CachedAutofiller) Autofill(ctx context.Context, req domain.AutofillRequest) (domain.AutofillResult, error) {
	key := c.cacheKey(req)

	if res, ok := c.getFromCache(ctx, key); ok {
		c.incCache("hit")
		return res, nil
	}

	c.incCache("miss")

	res, err := c.inner.Autofill(ctx, req)
	if err != nil {
		return domain.AutofillResult{}, fmt.Errorf("autofill: %w", err)
	}

	c.putToCache(ctx, key, &res)
	return res, nil
}

// HealthCheck delegates to the inner provider when it supports health checks.
func (c *CachedAutofiller) HealthCheck(ctx context.Context) error {
	if hc, ok := c.inner.(domain.HealthChecker); ok {
		return hc.HealthCheck(ctx) //nolint:wrapcheck // transparent decorator
	}
	return nil
}

func (c *CachedAutofiller) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *CachedAutofiller) cacheKey(req domain.AutofillRequest) string {
	title := strings.Join(strings.Fields(strings.ToLower(req.Title)), " ")
	h := sha256.Sum256([]byte(string(req.Type) + "\x00" + title))
	return c.keyPrefix + hex.EncodeToString(h[:])
}

func (c *CachedAutofiller) getFromCache(ctx context.Context, key string) (domain.AutofillResult, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached autofill", zap.String("key", key), zap.Error(err))
		}
		return domain.AutofillResult{}, false
	}
	if len(data) == 0 {
		return domain.AutofillResult{}, false
	}

	var d cachedDraft
	if err := json.Unmarshal(data, &d); err != nil {
		c.logger.Warn("Failed to parse cached autofill", zap.String("key", key), zap.Error(err))
		return domain.AutofillResult{}, false
	}

	return domain.AutofillResult{
		Description:       d.Description,
		Industry:          content.Industry(d.Industry),
		ReleaseYear:       d.ReleaseYear,
		SuggestedLanguage: d.SuggestedLanguage,
	}, true
}

func (c *CachedAutofiller) putToCache(ctx context.Context, key string, res *domain.AutofillResult) {
	data, err := json.Marshal(cachedDraft{
		Description:       res.Description,
		Industry:          string(res.Industry),
		ReleaseYear:       res.ReleaseYear,
		SuggestedLanguage: res.SuggestedLanguage,
	})
	if err != nil {
		c.logger.Warn("Failed to encode autofill for cache", zap.Error(err))
		return
	}
	if err := c.store.SetWithTTL(ctx, key, data, c.ttl); err != nil {
		c.logger.Warn("Failed to cache autofill", zap.String("key", key), zap.Error(err))
	}
}
