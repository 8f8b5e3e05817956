package xsock

import (
	"fmt"
	"sync"
)

// SetupOption 定义 [Setup] 的可选配置。
type SetupOption func(*setupOptions)

type setupOptions struct {
	fileLimit uint64
}

// WithFileLimit 在首次 Setup 时将 RLIMIT_NOFILE 的 soft limit 提升至 n。
// 当前值已不低于 n 时不做修改；hard limit 只升不降。
func WithFileLimit(n uint64) SetupOption {
	return func(o *setupOptions) {
		o.fileLimit = n
	}
}

// setupState 是进程级网络子系统状态，refs 为 Setup 未配对 Cleanup 的次数。
var setupState struct {
	mu   sync.Mutex
	refs int
}

// Setup 初始化进程级网络子系统。可重复调用，每次调用需配对一次 [Cleanup]。
// 选项仅在引用计数从 0 变为 1 时生效。
func Setup(opts ...SetupOption) error {
	var o setupOptions
	for _, opt := range opts {
		opt(&o)
	}

	setupState.mu.Lock()
	defer setupState.mu.Unlock()

	if setupState.refs == 0 && o.fileLimit > 0 {
		if err := raiseFileLimit(o.fileLimit); err != nil {
			return fmt.Errorf("xsock: setup: %w", err)
		}
	}
	setupState.refs++
	return nil
}

// Cleanup 释放一次 [Setup] 引用。未 Setup 时返回 [ErrNotSetup]。
func Cleanup() error {
	setupState.mu.Lock()
	defer setupState.mu.Unlock()

	if setupState.refs == 0 {
		return ErrNotSetup
	}
	setupState.refs--
	return nil
}

// IsSetup 报告当前是否处于 Setup / Cleanup 区间内。
func IsSetup() bool {
	setupState.mu.Lock()
	defer setupState.mu.Unlock()
	return setupState.refs > 0
}
