package xrun

import (
	"log/slog"
	"os"
	"syscall"
)

// Option 配置 Group。
type Option func(*groupOptions)

type groupOptions struct {
	logger    *slog.Logger
	name      string
	signals   []os.Signal
	noSignals bool
}

func defaultOptions() *groupOptions {
	return &groupOptions{
		logger: slog.Default(),
		name:   "xrun",
	}
}

// DefaultSignals 返回 [Run] 默认监听的信号：SIGHUP、SIGINT、SIGTERM、SIGQUIT。
func DefaultSignals() []os.Signal {
	return []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT}
}

// WithLogger 设置日志记录器，nil 被忽略。默认 slog.Default()。
func WithLogger(logger *slog.Logger) Option {
	return func(o *groupOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithName 设置 Group 名称，用于日志。默认 "xrun"。
func WithName(name string) Option {
	return func(o *groupOptions) {
		if name != "" {
			o.name = name
		}
	}
}

// WithSignals 设置 [Run] 监听的信号，空列表使用 [DefaultSignals]。
func WithSignals(signals ...os.Signal) Option {
	copied := append([]os.Signal(nil), signals...)
	return func(o *groupOptions) {
		o.signals = copied
	}
}

// WithoutSignals 关闭 [Run] 的信号监听。
func WithoutSignals() Option {
	return func(o *groupOptions) {
		o.noSignals = true
	}
}
