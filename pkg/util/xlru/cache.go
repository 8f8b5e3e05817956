package xlru

import (
	"reflect"
	"sync"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const maxSize = 1 << 24

// Config 定义缓存容量与条目 TTL。TTL 为 0 表示永不过期。
type Config struct {
	Size int
	TTL  time.Duration
}

func (c Config) validate() error {
	switch {
	case c.Size <= 0:
		return ErrInvalidSize
	case c.Size > maxSize:
		return ErrSizeExceedsMax
	case c.TTL < 0:
		return ErrInvalidTTL
	}
	return nil
}

// Cache 是并发安全的 TTL LRU 缓存，必须通过 [New] 创建。
// Close 之后读操作返回零值，写操作被忽略。
type Cache[K comparable, V any] struct {
	lru       *expirable.LRU[K, V]
	closed    atomic.Bool
	closeOnce sync.Once
}

// New 创建缓存。onEvicted 可为 nil，回调在底层锁内执行，不得回调 Cache 自身。
func New[K comparable, V any](cfg Config, onEvicted func(K, V)) (*Cache[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Cache[K, V]{lru: expirable.NewLRU(cfg.Size, onEvicted, cfg.TTL)}, nil
}

// Get 返回未过期的值。
func (c *Cache[K, V]) Get(key K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.lru.Get(key)
}

// Peek 与 Get 相同，但不更新 LRU 顺序。
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	if c.closed.Load() {
		var zero V
		return zero, false
	}
	return c.lru.Peek(key)
}

// Set 写入值并刷新 TTL，返回是否淘汰了其他条目。
func (c *Cache[K, V]) Set(key K, value V) bool {
	if c.closed.Load() {
		return false
	}
	return c.lru.Add(key, value)
}

// Delete 删除条目，返回键是否存在。
func (c *Cache[K, V]) Delete(key K) bool {
	if c.closed.Load() {
		return false
	}
	return c.lru.Remove(key)
}

// Len 返回条目数，可能包含已过期但尚未清理的条目。
func (c *Cache[K, V]) Len() int {
	if c.closed.Load() {
		return 0
	}
	return c.lru.Len()
}

// Close 清空缓存并停止过期清理 goroutine，可重复调用。
func (c *Cache[K, V]) Close() {
	c.closed.Store(true)
	c.closeOnce.Do(func() {
		c.lru.Purge()
		stopCleanupGoroutine(c.lru)
	})
}

// stopCleanupGoroutine 关闭 expirable.LRU 内部的 done 通道。
// golang-lru v2.0.7 在 TTL > 0 时启动清理 goroutine 且没有公开的关闭方法。
// 字段不存在或类型不符时返回 false。
func stopCleanupGoroutine(lru any) (stopped bool) {
	defer func() {
		if r := recover(); r != nil {
			stopped = false
		}
	}()

	v := reflect.ValueOf(lru)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return false
	}
	done := v.Elem().FieldByName("done")
	if !done.IsValid() || done.Type() != reflect.TypeOf(make(chan struct{})) || done.IsNil() {
		return false
	}
	ch := *(*chan struct{})(unsafe.Pointer(done.UnsafeAddr())) //nolint:gosec // 访问上游未导出字段
	close(ch)
	return true
}
