package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/fxdesk/internal/core/domain"
	portsrepo "github.com/SscSPs/fxdesk/internal/core/ports/repositories"
	"github.com/SscSPs/fxdesk/internal/platform/logging"
	goredis "github.com/redis/go-redis/v9"
)

// CachedRateCatalog keeps a short-lived snapshot of each pair's active rates
// in Redis in front of another RateCatalogReader. Redis failures are logged
// and the underlying reader answers instead.
type CachedRateCatalog struct {
	client *goredis.Client
	next   portsrepo.RateCatalogReader
	ttl    time.Duration
	prefix string
}

var (
	_ portsrepo.RateCatalogReader      = (*CachedRateCatalog)(nil)
	_ portsrepo.RateCatalogInvalidator = (*CachedRateCatalog)(nil)
)

// NewCachedRateCatalog creates a Redis-backed cache over next.
// A non-positive ttl disables caching.
func NewCachedRateCatalog(client *goredis.Client, next portsrepo.RateCatalogReader, ttl time.Duration) *CachedRateCatalog {
	return &CachedRateCatalog{
		client: client,
		next:   next,
		ttl:    ttl,
		prefix: "ratecatalog:",
	}
}

func (c *CachedRateCatalog) key(tenantID string, from, to domain.Currency) string {
	return fmt.Sprintf("%s%s:%s:%s", c.prefix, tenantID, from, to)
}

// ListActiveRates returns the cached snapshot or loads and caches a fresh one.
func (c *CachedRateCatalog) ListActiveRates(ctx context.Context, tenantID string, from, to domain.Currency) ([]domain.RateRecord, error) {
	if c.ttl <= 0 {
		return c.next.ListActiveRates(ctx, tenantID, from, to)
	}
	logger := logging.FromContext(ctx)
	key := c.key(tenantID, from, to)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var records []domain.RateRecord
		jsonErr := json.Unmarshal(raw, &records)
		if jsonErr == nil {
			return records, nil
		}
		logger.Warn("Discarding unreadable rate snapshot", slog.String("key", key), slog.String("error", jsonErr.Error()))
	case errors.Is(err, goredis.Nil):
	default:
		logger.Warn("Rate cache unavailable", slog.String("key", key), slog.String("error", err.Error()))
	}

	records, err := c.next.ListActiveRates(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(records)
	if err != nil {
		logger.Warn("Failed to encode rate snapshot", slog.String("key", key), slog.String("error", err.Error()))
		return records, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		logger.Warn("Failed to store rate snapshot", slog.String("key", key), slog.String("error", err.Error()))
	}
	return records, nil
}

// Invalidate drops the cached snapshot for a pair, e.g. after a rate edit.
func (c *CachedRateCatalog) Invalidate(ctx context.Context, tenantID string, from, to domain.Currency) error {
	if err := c.client.Del(ctx, c.key(tenantID, from, to)).Err(); err != nil {
		return fmt.Errorf("redis rate cache invalidate: %w", err)
	}
	return nil
}
