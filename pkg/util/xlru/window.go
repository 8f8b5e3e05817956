package xlru

import (
	"sync"
	"time"
)

// WindowCounter 按键统计固定窗口内的事件次数。
// 每个键的窗口从该键第一次 [WindowCounter.Allow] 开始，窗口结束后重新计数。
type WindowCounter[K comparable] struct {
	mu     sync.Mutex
	cache  *Cache[K, window]
	limit  int
	period time.Duration
	now    func() time.Time
}

type window struct {
	start time.Time
	count int
}

// WindowOption 配置 [WindowCounter]。
type WindowOption func(*windowOptions)

type windowOptions struct {
	now func() time.Time
}

// WithClock 替换时钟，nil 被忽略。
func WithClock(now func() time.Time) WindowOption {
	return func(o *windowOptions) {
		if now != nil {
			o.now = now
		}
	}
}

// NewWindowCounter 创建计数器：每个键在 period 内最多允许 limit 次，最多跟踪 size 个键。
func NewWindowCounter[K comparable](size, limit int, period time.Duration, opts ...WindowOption) (*WindowCounter[K], error) {
	if limit <= 0 || period <= 0 {
		return nil, ErrInvalidWindow
	}
	o := windowOptions{now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	// 条目在窗口结束后由底层清理，窗口边界由 start 判断
	cache, err := New[K, window](Config{Size: size, TTL: period}, nil)
	if err != nil {
		return nil, err
	}
	return &WindowCounter[K]{cache: cache, limit: limit, period: period, now: o.now}, nil
}

// Allow 记录一次事件，超出当前窗口上限时返回 false（不计入）。
func (w *WindowCounter[K]) Allow(key K) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	now := w.now()
	win, ok := w.cache.Get(key)
	if !ok || now.Sub(win.start) >= w.period {
		win = window{start: now}
	}
	if win.count >= w.limit {
		return false
	}
	win.count++
	w.cache.Set(key, win)
	return true
}

// Count 返回键在当前窗口内已允许的次数。
func (w *WindowCounter[K]) Count(key K) int {
	w.mu.Lock()
	defer w.mu.Unlock()

	win, ok := w.cache.Peek(key)
	if !ok || w.now().Sub(win.start) >= w.period {
		return 0
	}
	return win.count
}

// Close 释放底层缓存。
func (w *WindowCounter[K]) Close() {
	w.cache.Close()
}
