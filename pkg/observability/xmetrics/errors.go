package xmetrics

import (
	"errors"
	"fmt"
)

// 选项校验错误，NewOTelObserver 在访问 provider 之前返回。
var (
	ErrNilOption      = errors.New("xmetrics: nil option")
	ErrInvalidBuckets = errors.New("xmetrics: invalid histogram buckets")
)

// ErrCreateInstrument 表示 meter 拒绝创建某个指标。
// 返回的错误同时携带指标名与 SDK 的原始错误。
var ErrCreateInstrument = errors.New("xmetrics: create instrument failed")

func instrumentError(name string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrCreateInstrument, name, err)
}
