package storefront

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/SaulT-G/skateshop/internal/cache"
	"github.com/SaulT-G/skateshop/internal/domain"
	"github.com/SaulT-G/skateshop/internal/obs"
)

const catalogCacheKey = "catalog"

// Catalog holds the memoized product snapshot. Reads go cache-first;
// any admin mutation, and conservatively any cart add, invalidates it.
type Catalog struct {
	api   Gateway
	cache cache.Cache
	sfg   singleflight.Group

	mu        sync.RWMutex
	noResults bool
}

func NewCatalog(api Gateway, c cache.Cache) *Catalog {
	return &Catalog{api: api, cache: c}
}

// Load returns the catalog snapshot, filling the cache on a miss.
// Concurrent misses are coalesced into one outbound request.
func (c *Catalog) Load(ctx context.Context) ([]domain.Product, error) {
	c.setNoResults(false)

	if data, err := c.cache.Get(ctx, catalogCacheKey); err == nil {
		var products []domain.Product
		if err := json.Unmarshal(data, &products); err == nil {
			return products, nil
		}
		// Corrupt entry: drop it and fall through to a fresh load.
		c.cache.Delete(ctx, catalogCacheKey)
	} else if !errors.Is(err, cache.ErrCacheMiss) {
		obs.Logger.Warn("catalog cache get failed", "err", err)
	}

	v, err, _ := c.sfg.Do(catalogCacheKey, func() (interface{}, error) {
		products, err := c.api.Products(ctx, "")
		if err != nil {
			return nil, err
		}
		if data, err := json.Marshal(products); err == nil {
			if errSet := c.cache.Set(ctx, catalogCacheKey, data); errSet != nil {
				obs.Logger.Warn("catalog cache set failed", "err", errSet)
			}
		}
		return products, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return v.([]domain.Product), nil
}

// Search queries the server for a case-insensitive title match,
// bypassing the cache. An empty term falls back to the cached snapshot
// and clears the no-results state.
func (c *Catalog) Search(ctx context.Context, term string) ([]domain.Product, error) {
	if term == "" {
		return c.Load(ctx)
	}
	products, err := c.api.Products(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search products: %w", err)
	}
	c.setNoResults(len(products) == 0)
	return products, nil
}

// NoResults reports whether the last search matched nothing.
func (c *Catalog) NoResults() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.noResults
}

func (c *Catalog) setNoResults(v bool) {
	c.mu.Lock()
	c.noResults = v
	c.mu.Unlock()
}

// Invalidate drops the snapshot so the next Load round-trips.
func (c *Catalog) Invalidate() {
	if err := c.cache.Delete(context.Background(), catalogCacheKey); err != nil {
		obs.Logger.Warn("catalog cache invalidate failed", "err", err)
	}
}
