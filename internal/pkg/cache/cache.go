// Package cache get-or-compute 缓存：命中直接返回，未命中时计算并按 TTL 写回，同 key 并发只计算一次
package cache

import (
	"context"
	log "log/slog"
	"time"

	"Postcraft/internal/pkg/metrics"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// Store 缓存介质
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Cache 泛型 get-or-compute 缓存
type Cache[T any] struct {
	name  string
	store Store
	ttl   time.Duration
	sf    singleflight.Group
}

func New[T any](name string, store Store, ttl time.Duration) *Cache[T] {
	return &Cache[T]{name: name, store: store, ttl: ttl}
}

// GetOrCompute 读取 key；缺失或介质异常时调用 compute，并把成功结果写回
func (c *Cache[T]) GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (T, error)) (T, error) {
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil {
		log.WarnContext(ctx, "cache read failed, computing", "cache", c.name, "key", key, "err", err)
	}
	if ok {
		var v T
		if err = json.Unmarshal(raw, &v); err == nil {
			metrics.CacheLookups.WithLabelValues(c.name, "hit").Inc()
			return v, nil
		}
		log.WarnContext(ctx, "cache entry corrupt, recomputing", "cache", c.name, "key", key, "err", err)
	}
	metrics.CacheLookups.WithLabelValues(c.name, "miss").Inc()

	res, err, _ := c.sf.Do(key, func() (interface{}, error) {
		v, err := compute(ctx)
		if err != nil {
			return v, err
		}
		if data, mErr := json.Marshal(v); mErr == nil {
			if sErr := c.store.Set(ctx, key, data, c.ttl); sErr != nil {
				log.WarnContext(ctx, "cache write failed", "cache", c.name, "key", key, "err", sErr)
			}
		}
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

// Invalidate 删除 key，下次读取重新计算
func (c *Cache[T]) Invalidate(ctx context.Context, key string) error {
	return c.store.Delete(ctx, key)
}
