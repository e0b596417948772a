// Package cache provides a small keyed cache with explicit invalidation.
// The catalog snapshot on the client and the product list on the gateway
// both sit behind it; every known mutation point calls Delete or
// DeleteAll rather than trusting TTL alone.
package cache

import (
	"context"
	"errors"
)

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	DeleteAll(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
