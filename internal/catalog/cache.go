// internal/catalog/cache.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"site-advisor/internal/common/logger"
	"site-advisor/internal/common/metrics"
	"site-advisor/internal/models"
)

// CachedCatalog decorates a Catalog with a Redis snapshot cache keyed by
// region. Cache failures degrade to the inner catalog, never to an error.
type CachedCatalog struct {
	inner  Catalog
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedCatalog(inner Catalog, client *redis.Client, ttl time.Duration, log logger.Logger) *CachedCatalog {
	return &CachedCatalog{
		inner:  inner,
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "catalog.cache"}),
	}
}

// SnapshotCacheKey is the Redis key holding a region's cached snapshot.
// Exported so maintenance tools can invalidate without a full catalog.
func SnapshotCacheKey(region string) string {
	return fmt.Sprintf("catalog:snapshot:%s", strings.ToLower(strings.TrimSpace(region)))
}

func (c *CachedCatalog) Query(ctx context.Context, region string) (*models.ResourceSnapshot, error) {
	key := SnapshotCacheKey(region)

	raw, err := c.client.Get(ctx, key).Result()
	if err == nil {
		var snapshot models.ResourceSnapshot
		if err := json.Unmarshal([]byte(raw), &snapshot); err == nil {
			metrics.CatalogCacheHits.WithLabelValues("hit").Inc()
			c.logger.Debug("catalog cache hit", map[string]interface{}{"key": key})
			return &snapshot, nil
		}
		// Corrupt entry: drop it and fall through to the backend.
		_ = c.client.Del(ctx, key).Err()
	} else if err != redis.Nil {
		c.logger.Warn("catalog cache read failed", map[string]interface{}{
			"key":   key,
			"error": err.Error(),
		})
	}
	metrics.CatalogCacheHits.WithLabelValues("miss").Inc()

	snapshot, err := c.inner.Query(ctx, region)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(snapshot); err == nil {
		if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
			c.logger.Warn("catalog cache write failed", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}

	return snapshot, nil
}

// Invalidate removes a region's cached snapshot, used by seeding tools
// after rewriting the catalog.
func (c *CachedCatalog) Invalidate(ctx context.Context, region string) error {
	return c.client.Del(ctx, SnapshotCacheKey(region)).Err()
}
