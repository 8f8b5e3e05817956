package xretry

import (
	"context"
	"errors"

	retry "github.com/avast/retry-go/v5"
)

// 类型别名，调用方无需直接导入 retry-go。
type (
	Option        = retry.Option
	OnRetryFunc   = retry.OnRetryFunc
	RetryIfFunc   = retry.RetryIfFunc
	DelayTypeFunc = retry.DelayTypeFunc
	Error         = retry.Error
)

// retry-go 配置选项。
var (
	// Attempts 设置总尝试次数（包含首次），0 表示无限。默认 10。
	Attempts = retry.Attempts
	// Delay 设置基础重试间隔，默认 100ms。
	Delay = retry.Delay
	// MaxDelay 设置最大重试间隔。
	MaxDelay = retry.MaxDelay
	// MaxJitter 设置最大随机抖动。
	MaxJitter     = retry.MaxJitter
	DelayType     = retry.DelayType
	OnRetry       = retry.OnRetry
	RetryIf       = retry.RetryIf
	LastErrorOnly = retry.LastErrorOnly

	BackOffDelay = retry.BackOffDelay
	FixedDelay   = retry.FixedDelay
	RandomDelay  = retry.RandomDelay
	CombineDelay = retry.CombineDelay

	// Unrecoverable 将错误标记为不可恢复。
	Unrecoverable = retry.Unrecoverable
	IsRecoverable = retry.IsRecoverable
)

// Do 执行 fn，失败时按 opts 重试。ctx 取消时停止。
func Do(ctx context.Context, fn func() error, opts ...Option) error {
	return retry.New(withDefaults(ctx, opts)...).Do(fn)
}

// DoWithData 与 Do 相同，但 fn 带返回值。
func DoWithData[T any](ctx context.Context, fn func() (T, error), opts ...Option) (T, error) {
	return retry.NewWithData[T](withDefaults(ctx, opts)...).Do(fn)
}

// OnlyFor 只在错误匹配 targets 之一（errors.Is）时重试，
// 永久性错误与 Unrecoverable 错误仍然不重试。
func OnlyFor(targets ...error) Option {
	return RetryIf(func(err error) bool {
		if !shouldRetry(err) {
			return false
		}
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	})
}

func shouldRetry(err error) bool {
	return IsRecoverable(err) && IsRetryable(err)
}

// withDefaults 在调用方选项之前放入 ctx 与默认分类逻辑，调用方的 RetryIf 覆盖默认值。
func withDefaults(ctx context.Context, opts []Option) []Option {
	if ctx == nil {
		ctx = context.Background()
	}
	all := make([]Option, 0, len(opts)+2)
	all = append(all, retry.Context(ctx), RetryIf(shouldRetry))
	return append(all, opts...)
}
