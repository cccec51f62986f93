// Package statecache 显式的状态持有者：带 TTL 的按 key 缓存，支持失效并重新拉取、订阅变更
package statecache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Fetcher 从数据源读取 key 的最新状态
type Fetcher[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Listener 状态刷新后的回调
type Listener[K comparable, V any] func(key K, value V)

type entry[V any] struct {
	value     V
	fetchedAt time.Time
}

// Holder 在应用启动时构造一次并注入使用方
type Holder[K comparable, V any] struct {
	mu        sync.RWMutex
	items     map[K]entry[V]
	// gens 每次失效递增，早于失效开始的拉取不能写回
	gens      map[K]uint64
	fetch     Fetcher[K, V]
	ttl       time.Duration
	now       func() time.Time
	sf        singleflight.Group
	keyString func(K) string

	subMu     sync.RWMutex
	listeners map[uint64]Listener[K, V]
	nextID    uint64
}

// New ttl <= 0 表示不过期，只靠 Invalidate 刷新
func New[K comparable, V any](fetch Fetcher[K, V], ttl time.Duration, keyString func(K) string) *Holder[K, V] {
	return &Holder[K, V]{
		items:     make(map[K]entry[V]),
		gens:      make(map[K]uint64),
		fetch:     fetch,
		ttl:       ttl,
		now:       time.Now,
		keyString: keyString,
		listeners: make(map[uint64]Listener[K, V]),
	}
}

// Get 命中且未过期直接返回，否则拉取
func (h *Holder[K, V]) Get(ctx context.Context, key K) (V, error) {
	h.mu.RLock()
	e, ok := h.items[key]
	h.mu.RUnlock()
	if ok && (h.ttl <= 0 || h.now().Sub(e.fetchedAt) < h.ttl) {
		return e.value, nil
	}
	return h.load(ctx, key)
}

// Invalidate 丢弃缓存并立即重新拉取，成功后通知订阅者
func (h *Holder[K, V]) Invalidate(ctx context.Context, key K) (V, error) {
	h.drop(key)

	v, err := h.load(ctx, key)
	if err != nil {
		return v, err
	}
	h.notify(key, v)
	return v, nil
}

// Forget 只丢弃缓存，不拉取
func (h *Holder[K, V]) Forget(key K) {
	h.drop(key)
}

// drop 删除条目并推进代数，正在进行的旧拉取结果作废
func (h *Holder[K, V]) drop(key K) {
	h.mu.Lock()
	delete(h.items, key)
	gen := h.gens[key]
	h.gens[key] = gen + 1
	h.mu.Unlock()
	h.sf.Forget(h.flightKey(key, gen))
}

func (h *Holder[K, V]) flightKey(key K, gen uint64) string {
	return h.keyString(key) + "#" + strconv.FormatUint(gen, 10)
}

// Subscribe 注册回调，返回取消订阅函数
func (h *Holder[K, V]) Subscribe(fn Listener[K, V]) (unsubscribe func()) {
	h.subMu.Lock()
	id := h.nextID
	h.nextID++
	h.listeners[id] = fn
	h.subMu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.subMu.Lock()
			delete(h.listeners, id)
			h.subMu.Unlock()
		})
	}
}

// Len 当前缓存条目数
func (h *Holder[K, V]) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

// load 同一代内的并发拉取合并为一次
func (h *Holder[K, V]) load(ctx context.Context, key K) (V, error) {
	h.mu.RLock()
	gen := h.gens[key]
	h.mu.RUnlock()

	res, err, _ := h.sf.Do(h.flightKey(key, gen), func() (interface{}, error) {
		v, err := h.fetch(ctx, key)
		if err != nil {
			return v, err
		}
		h.mu.Lock()
		if h.gens[key] == gen {
			h.items[key] = entry[V]{value: v, fetchedAt: h.now()}
		}
		h.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

func (h *Holder[K, V]) notify(key K, v V) {
	h.subMu.RLock()
	ls := make([]Listener[K, V], 0, len(h.listeners))
	for _, l := range h.listeners {
		ls = append(ls, l)
	}
	h.subMu.RUnlock()

	for _, l := range ls {
		l(key, v)
	}
}
