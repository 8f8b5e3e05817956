package xsock

import (
	"log/slog"

	"go4.org/netipx"

	"github.com/omeyang/xsock/pkg/observability/xmetrics"
)

// Option 定义 [Socket] 与 [TCPServer] 的可选配置。
type Option func(*options)

type options struct {
	logger     *slog.Logger
	observer   xmetrics.Observer
	peerFilter *netipx.IPSet
	reuseAddr  bool
}

func defaultOptions() options {
	return options{
		logger:   slog.Default(),
		observer: xmetrics.NoopObserver{},
	}
}

// WithLogger 设置日志记录器。默认 slog.Default()，nil 被忽略。
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithObserver 设置观测器，每个套接字操作产生一个跨度。默认不观测，nil 被忽略。
func WithObserver(observer xmetrics.Observer) Option {
	return func(o *options) {
		if observer != nil {
			o.observer = observer
		}
	}
}

// WithPeerFilter 限制 Accept 接受的对端地址。
// 不在集合内的连接会被立即关闭，Accept 返回包装 [ErrPeerRejected] 的 [ErrAccept]。
// IPv4-mapped 对端地址按 IPv4 匹配。
func WithPeerFilter(set *netipx.IPSet) Option {
	return func(o *options) {
		o.peerFilter = set
	}
}

// WithReuseAddr 在创建套接字后设置 SO_REUSEADDR。
func WithReuseAddr() Option {
	return func(o *options) {
		o.reuseAddr = true
	}
}
