// internal/catalog/cache_test.go
package catalog

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"

	"site-advisor/internal/common/logger"
	"site-advisor/internal/geo"
	"site-advisor/internal/models"
)

// countingCatalog records how often the backend is hit.
type countingCatalog struct {
	calls    int
	snapshot *models.ResourceSnapshot
	err      error
}

func (c *countingCatalog) Query(ctx context.Context, region string) (*models.ResourceSnapshot, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.snapshot, nil
}

func testSnapshot(region string) *models.ResourceSnapshot {
	s := newSnapshot(region)
	s.Resources[models.CategoryWater] = []models.ResourcePoint{
		{
			ID:        "wt-1",
			Category:  models.CategoryWater,
			Name:      "Narmada Canal",
			Location:  geo.Coordinate{Lng: 72.1, Lat: 23.1},
			Magnitude: 458,
		},
	}
	return s
}

func newCacheFixture(t *testing.T, inner Catalog, ttl time.Duration) (*CachedCatalog, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewCachedCatalog(inner, client, ttl, logger.NewTestLogger(t)), mr
}

func TestSnapshotCacheKey_Normalizes(t *testing.T) {
	assert.Equal(t, "catalog:snapshot:gujarat", SnapshotCacheKey("gujarat"))
	assert.Equal(t, "catalog:snapshot:gujarat", SnapshotCacheKey("  Gujarat "))
	assert.Equal(t, "catalog:snapshot:gujarat", SnapshotCacheKey("GUJARAT"))
}

func TestCachedCatalog_MissThenHit(t *testing.T) {
	inner := &countingCatalog{snapshot: testSnapshot("gujarat")}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	first, err := cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.calls)

	second, err := cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)
	assert.Equal(t, 1, inner.calls, "second query should be served from cache")

	assert.Equal(t, first.Region, second.Region)
	assert.Equal(t, first.Resources[models.CategoryWater], second.Resources[models.CategoryWater])
}

func TestCachedCatalog_KeyIsCaseInsensitive(t *testing.T) {
	inner := &countingCatalog{snapshot: testSnapshot("gujarat")}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Query(context.Background(), "Gujarat")
	assert.NoError(t, err)
	_, err = cached.Query(context.Background(), "GUJARAT")
	assert.NoError(t, err)

	assert.Equal(t, 1, inner.calls)
}

func TestCachedCatalog_ExpiredEntryRefetches(t *testing.T) {
	inner := &countingCatalog{snapshot: testSnapshot("gujarat")}
	cached, mr := newCacheFixture(t, inner, 30*time.Second)

	_, err := cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)

	mr.FastForward(time.Minute)

	_, err = cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}

func TestCachedCatalog_BackendErrorPropagates(t *testing.T) {
	inner := &countingCatalog{err: assert.AnError}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	snapshot, err := cached.Query(context.Background(), "gujarat")
	assert.Nil(t, snapshot)
	assert.Error(t, err)
}

func TestCachedCatalog_Invalidate(t *testing.T) {
	inner := &countingCatalog{snapshot: testSnapshot("gujarat")}
	cached, _ := newCacheFixture(t, inner, time.Minute)

	_, err := cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)

	assert.NoError(t, cached.Invalidate(context.Background(), "gujarat"))

	_, err = cached.Query(context.Background(), "gujarat")
	assert.NoError(t, err)
	assert.Equal(t, 2, inner.calls)
}
