package cache

import (
	"context"
	"sync"
	"time"
)

// NewMemory returns an in-process cache. A zero ttl means entries never
// expire and live until explicitly invalidated.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		ttl: ttl,
		m:   make(map[string]memoryEntry),
	}
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

type Memory struct {
	mu  sync.RWMutex
	ttl time.Duration
	m   map[string]memoryEntry
}

func (c *Memory) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	e, ok := c.m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, ErrCacheMiss
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.m, key)
		c.mu.Unlock()
		return nil, ErrCacheMiss
	}
	return e.value, nil
}

func (c *Memory) Set(_ context.Context, key string, value []byte) error {
	e := memoryEntry{value: value}
	if c.ttl > 0 {
		e.expiresAt = time.Now().Add(c.ttl)
	}
	c.mu.Lock()
	c.m[key] = e
	c.mu.Unlock()
	return nil
}

func (c *Memory) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	delete(c.m, key)
	c.mu.Unlock()
	return nil
}

func (c *Memory) DeleteAll(_ context.Context) error {
	c.mu.Lock()
	c.m = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}
