// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"portfolio_backend/internal/feature/stocks/domain/entity"
	"portfolio_backend/internal/feature/stocks/usecase"
)

// CachingQuoteRepository decorates a QuoteRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Quotes are short-lived by nature, so
// the TTL is measured in seconds rather than minutes.
type CachingQuoteRepository struct {
	inner     usecase.QuoteRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var (
	_ usecase.QuoteRepository  = (*CachingQuoteRepository)(nil)
	_ usecase.QuoteInvalidator = (*CachingQuoteRepository)(nil)
)

// NewCachingQuoteRepository decorates a QuoteRepository with Redis caching.
// If ttl is 0, it defaults to 60 seconds. If namespace is empty, it uses "quotes".
func NewCachingQuoteRepository(rdb *redis.Client, ttl time.Duration, inner usecase.QuoteRepository, namespace string) *CachingQuoteRepository {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	if namespace == "" {
		namespace = "quotes"
	}
	return &CachingQuoteRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// GetQuote retrieves a quote, checking cache first then falling back to the
// provider chain. Provider errors are never cached.
func (c *CachingQuoteRepository) GetQuote(ctx context.Context, symbol string) (*entity.Quote, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.GetQuote(ctx, symbol)
	}

	key := c.cacheKey(symbol)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Quote
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to the provider chain
	out, err := c.inner.GetQuote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// Invalidate removes a cached quote, forcing the next read to hit the provider.
func (c *CachingQuoteRepository) Invalidate(ctx context.Context, symbol string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, c.cacheKey(symbol)).Err()
}

// cacheKey generates a cache key for a symbol.
func (c *CachingQuoteRepository) cacheKey(symbol string) string {
	return fmt.Sprintf("%s:%s", c.namespace, safe(symbol))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
