package xmetrics

import (
	"context"
	"strconv"
)

// Kind 表示跨度类型。
type Kind int

const (
	// KindInternal 表示进程内操作。
	KindInternal Kind = iota
	// KindServer 表示服务端操作（如 accept）。
	KindServer
	// KindClient 表示客户端操作（如 connect）。
	KindClient
)

// String 返回 Kind 的名称。
func (k Kind) String() string {
	switch k {
	case KindInternal:
		return "Internal"
	case KindServer:
		return "Server"
	case KindClient:
		return "Client"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Status 表示操作结果。
type Status string

const (
	// StatusOK 表示成功。
	StatusOK Status = "ok"
	// StatusError 表示失败。
	StatusError Status = "error"
)

// Attr 是一个观测属性。
type Attr struct {
	Key   string
	Value any
}

// SpanOptions 描述一次跨度。
type SpanOptions struct {
	// Component 是组件名，如 "xsock"。
	Component string
	// Operation 是操作名，如 "connect"。
	Operation string
	// Kind 是跨度类型。
	Kind Kind
	// Attrs 是附加到 span 的属性。
	Attrs []Attr
}

// Result 是跨度结束时的结果。
type Result struct {
	// Status 为空时由 Err 推导。
	Status Status
	// Err 是操作错误。
	Err error
	// Attrs 是结束时追加到 span 的属性，如传输字节数。
	Attrs []Attr
}

// Span 是一次进行中的观测。
type Span interface {
	// End 结束观测并记录结果。
	End(result Result)
}

// Observer 开始观测跨度。
type Observer interface {
	// Start 开始一次跨度。
	Start(ctx context.Context, opts SpanOptions) (context.Context, Span)
}

// NoopObserver 不做任何记录。
type NoopObserver struct{}

// Start 原样返回 ctx（nil 时为 context.Background()）与 [NoopSpan]。
func (NoopObserver) Start(ctx context.Context, _ SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	return ctx, NoopSpan{}
}

// NoopSpan 不做任何记录。
type NoopSpan struct{}

// End 空实现。
func (NoopSpan) End(Result) {}

// Start 通过 observer 开始跨度，保证返回非 nil 的 context 与 Span：
// nil ctx 替换为 context.Background()，nil observer 或 observer 返回的 nil 值
// 回退为 ctx 与 [NoopSpan]。
func Start(ctx context.Context, observer Observer, opts SpanOptions) (context.Context, Span) {
	if ctx == nil {
		ctx = context.Background()
	}
	if observer == nil {
		return ctx, NoopSpan{}
	}
	retCtx, span := observer.Start(ctx, opts)
	if retCtx == nil {
		retCtx = ctx
	}
	if span == nil {
		span = NoopSpan{}
	}
	return retCtx, span
}
