package xlru

import "errors"

var (
	// ErrInvalidSize 表示缓存容量无效。
	ErrInvalidSize = errors.New("xlru: size must be greater than 0")

	// ErrSizeExceedsMax 表示缓存容量超过上限 (16,777,216)。
	ErrSizeExceedsMax = errors.New("xlru: size must not exceed 16777216")

	// ErrInvalidTTL 表示 TTL 为负。
	ErrInvalidTTL = errors.New("xlru: ttl must not be negative")

	// ErrInvalidWindow 表示计数窗口或上限无效。
	ErrInvalidWindow = errors.New("xlru: window and limit must be positive")
)
