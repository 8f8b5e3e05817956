package xlog

import (
	"fmt"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

// 轮转默认值。
const (
	DefaultMaxSizeMB  = 100
	DefaultMaxBackups = 7
	DefaultMaxAgeDays = 30

	maxSizeMB  = 10240
	maxBackups = 1024
	maxAgeDays = 3650
)

type rotationConfig struct {
	maxSizeMB  int
	maxBackups int
	maxAgeDays int
	compress   bool
	localTime  bool
}

// RotationOption 配置日志文件轮转。
type RotationOption func(*rotationConfig)

// WithMaxSize 设置单个日志文件最大大小（MB）。
func WithMaxSize(mb int) RotationOption {
	return func(c *rotationConfig) { c.maxSizeMB = mb }
}

// WithMaxBackups 设置保留的备份文件数量，0 表示不限制。
func WithMaxBackups(n int) RotationOption {
	return func(c *rotationConfig) { c.maxBackups = n }
}

// WithMaxAge 设置备份保留天数，0 表示不按天数清理。
func WithMaxAge(days int) RotationOption {
	return func(c *rotationConfig) { c.maxAgeDays = days }
}

// WithCompress 设置是否 gzip 压缩备份。
func WithCompress(compress bool) RotationOption {
	return func(c *rotationConfig) { c.compress = compress }
}

// WithLocalTime 设置备份文件名是否使用本地时间（默认 UTC）。
func WithLocalTime(local bool) RotationOption {
	return func(c *rotationConfig) { c.localTime = local }
}

func (c *rotationConfig) validate() error {
	switch {
	case c.maxSizeMB <= 0 || c.maxSizeMB > maxSizeMB:
		return fmt.Errorf("%w: max size %d MB out of range (0, %d]", ErrInvalidRotation, c.maxSizeMB, maxSizeMB)
	case c.maxBackups < 0 || c.maxBackups > maxBackups:
		return fmt.Errorf("%w: max backups %d out of range [0, %d]", ErrInvalidRotation, c.maxBackups, maxBackups)
	case c.maxAgeDays < 0 || c.maxAgeDays > maxAgeDays:
		return fmt.Errorf("%w: max age %d days out of range [0, %d]", ErrInvalidRotation, c.maxAgeDays, maxAgeDays)
	}
	return nil
}

// newRotator 创建 lumberjack 写入器。文件在首次写入时才创建。
func newRotator(filename string, opts ...RotationOption) (*lumberjack.Logger, error) {
	if filename == "" {
		return nil, fmt.Errorf("%w: empty filename", ErrInvalidRotation)
	}
	cfg := rotationConfig{
		maxSizeMB:  DefaultMaxSizeMB,
		maxBackups: DefaultMaxBackups,
		maxAgeDays: DefaultMaxAgeDays,
		compress:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &lumberjack.Logger{
		Filename:   filepath.Clean(filename),
		MaxSize:    cfg.maxSizeMB,
		MaxBackups: cfg.maxBackups,
		MaxAge:     cfg.maxAgeDays,
		Compress:   cfg.compress,
		LocalTime:  cfg.localTime,
	}, nil
}
