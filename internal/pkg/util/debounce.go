package util

import (
	"sync"
	"time"
)

// Debouncer 按 key 的尾沿防抖：同一 key 在 delay 内重复触发只执行最后一次
type Debouncer struct {
	mu      sync.Mutex
	delay   time.Duration
	pending map[string]*debounceEntry
	seq     uint64
	wg      sync.WaitGroup
}

type debounceEntry struct {
	timer *time.Timer
	seq   uint64
	fn    func()
}

func NewDebouncer(delay time.Duration) *Debouncer {
	return &Debouncer{
		delay:   delay,
		pending: make(map[string]*debounceEntry),
	}
}

// Trigger 重置 key 的计时器，到期后执行 fn
func (d *Debouncer) Trigger(key string, fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if old, ok := d.pending[key]; ok {
		if old.timer.Stop() {
			d.wg.Done()
		}
	}

	d.seq++
	seq := d.seq
	d.wg.Add(1)
	entry := &debounceEntry{seq: seq, fn: fn}
	entry.timer = time.AfterFunc(d.delay, func() {
		defer d.wg.Done()
		d.mu.Lock()
		cur, ok := d.pending[key]
		if !ok || cur.seq != seq {
			d.mu.Unlock()
			return
		}
		delete(d.pending, key)
		d.mu.Unlock()
		fn()
	})
	d.pending[key] = entry
}

// Cancel 取消 key 上等待中的任务
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if old, ok := d.pending[key]; ok {
		if old.timer.Stop() {
			d.wg.Done()
		}
		delete(d.pending, key)
	}
}

// Pending 等待中的 key 数量
func (d *Debouncer) Pending() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.pending)
}

// Flush 立即执行所有等待中的任务并等待完成，用于优雅退出
func (d *Debouncer) Flush() {
	d.mu.Lock()
	var due []func()
	for key, e := range d.pending {
		// Stop 失败说明回调已在执行，由回调自己收尾
		if e.timer.Stop() {
			due = append(due, e.fn)
			delete(d.pending, key)
		}
	}
	d.mu.Unlock()

	for _, fn := range due {
		fn()
		d.wg.Done()
	}
	d.wg.Wait()
}
