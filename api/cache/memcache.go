package cache

import (
	"context"
	"sync"
	"time"
)

// MemCache is a typed in-memory cache with small TTLs to keep hot reads
// away from Redis.
type MemCache[T any] struct {
	memoryCache   sync.Map
	cleanupTicker *time.Ticker
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
}

// Single cache item.
type memCacheItem[T any] struct {
	value T
	ttl   time.Time
}

// NewMemCache creates a memory cache and starts its cleanup worker.
func NewMemCache[T any]() *MemCache[T] {
	ctx, cancel := context.WithCancel(context.Background())
	mc := &MemCache[T]{
		cancel:        cancel,
		cleanupTicker: time.NewTicker(5 * time.Minute),
		ctx:           ctx,
	}
	mc.startCleanupWorker()

	return mc
}

// startCleanupWorker starts the background worker for memory cleaning.
func (mc *MemCache[T]) startCleanupWorker() {
	mc.wg.Add(1)
	go func() {
		defer mc.wg.Done()
		for {
			select {
			case <-mc.cleanupTicker.C:
				mc.cleanup()
			case <-mc.ctx.Done():
				return
			}
		}
	}()
}

// cleanup goes through each key and drops any expired entry.
func (mc *MemCache[T]) cleanup() {
	now := time.Now()
	mc.memoryCache.Range(func(key, value any) bool {
		item := value.(*memCacheItem[T])
		if now.After(item.ttl) {
			mc.memoryCache.Delete(key)
		}
		return true
	})
}

// Close shuts the memory cache worker down.
func (mc *MemCache[T]) Close() {
	mc.cancel()
	mc.cleanupTicker.Stop()
	mc.wg.Wait()
}

// Get returns the value for a key, or the zero value when absent or expired.
func (mc *MemCache[T]) Get(key string) (T, bool) {
	var zero T

	value, exists := mc.memoryCache.Load(key)
	if !exists {
		return zero, false
	}

	item := value.(*memCacheItem[T])

	// If the reset time was reached, remove the entry.
	if time.Now().After(item.ttl) {
		mc.memoryCache.Delete(key)
		return zero, false
	}

	return item.value, true
}

// Set a given key on the cache.
func (mc *MemCache[T]) Set(key string, value T, ttl time.Duration) {
	mc.memoryCache.Store(key, &memCacheItem[T]{
		value: value,
		ttl:   time.Now().Add(ttl),
	})
}
