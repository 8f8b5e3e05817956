package xsock

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"time"

	"github.com/omeyang/xsock/pkg/observability/xmetrics"
)

//go:generate mockgen -destination=mock_observer_test.go -package=xsock github.com/omeyang/xsock/pkg/observability/xmetrics Observer,Span

const component = "xsock"

// noCopy 使 go vet 的 copylocks 检查拒绝 Socket 值拷贝。
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Socket 是独占一个描述符的阻塞式套接字。
//
// Family / Type / Proto 在构造时确定且不可变。Socket 仅通过指针使用，
// 所有权转移用 [Socket.Move]。未 Close 即不可达的 Socket 由运行时清理钩子
// 执行 shutdown + close 释放描述符。
//
// 并发：Socket 不是并发安全的，唯一例外是 Close 可以在另一个 goroutine
// 阻塞于 Accept / Recv 时调用。互斥锁只保护描述符字段，不跨越阻塞的系统调用。
//   - 已连接的流套接字：shutdown 唤醒阻塞的 Recv
//   - 监听套接字：Linux 上 shutdown 直接唤醒 Accept；其他 unix 系统上
//     Accept 以 poll 分段等待，Close 后在一个轮询周期（250ms）内返回
//   - 数据报套接字：Close 不保证唤醒 RecvFrom，需要可中断的循环应设置读超时
type Socket struct {
	_ noCopy

	family Family
	typ    Type
	proto  Proto
	opts   options

	mu      sync.Mutex
	fd      int
	state   State
	cleanup runtime.Cleanup
	tracked bool
}

var _ io.ReadWriteCloser = (*Socket)(nil)

// NewSocket 创建套接字。
//
// 必须处于 [Setup] 区间内，否则返回 [ErrNotSetup]。
// 枚举取值无效时返回匹配 [ErrSocket] 且包装 [ErrInvalidClassification] 的错误；
// 系统调用失败返回匹配 [ErrSocket] 的错误。
func NewSocket(family Family, typ Type, proto Proto, opts ...Option) (*Socket, error) {
	if !IsSetup() {
		return nil, ErrNotSetup
	}
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	span := startSpan(&o, "socket", family, typ, proto, "")
	s, err := openSocket(family, typ, proto, o)
	endSpan(span, 0, err)
	if err != nil {
		return nil, err
	}
	o.logger.Debug("socket opened",
		slog.Int("fd", s.fd),
		slog.String("family", family.String()),
		slog.String("type", typ.String()),
		slog.String("proto", proto.String()),
	)
	return s, nil
}

func openSocket(family Family, typ Type, proto Proto, o options) (*Socket, error) {
	if !family.valid() || !typ.valid() || !proto.valid() {
		return nil, opError(ErrSocket, "socket", "", fmt.Errorf("%w: %s/%s/%s",
			ErrInvalidClassification, family, typ, proto))
	}
	fd, err := sysSocket(family, typ, proto)
	if err != nil {
		return nil, opError(ErrSocket, "socket", "", err)
	}
	if o.reuseAddr {
		if err := sysSetReuseAddr(fd, true); err != nil {
			discard(o.logger, fd)
			return nil, opError(ErrSocket, "setsockopt SO_REUSEADDR", "", err)
		}
	}
	return newSocket(fd, family, typ, proto, StateUnbound, o), nil
}

// MustNewSocket 与 [NewSocket] 相同，失败时 panic。
func MustNewSocket(family Family, typ Type, proto Proto, opts ...Option) *Socket {
	s, err := NewSocket(family, typ, proto, opts...)
	if err != nil {
		panic(err)
	}
	return s
}

func newSocket(fd int, family Family, typ Type, proto Proto, state State, o options) *Socket {
	s := &Socket{
		family: family,
		typ:    typ,
		proto:  proto,
		opts:   o,
		fd:     fd,
		state:  state,
	}
	if fd >= 0 {
		s.track()
	}
	return s
}

// orphan 是清理钩子的参数，不能引用 Socket 本身。
type orphan struct {
	fd     int
	logger *slog.Logger
}

func releaseOrphan(o orphan) {
	if err := sysRelease(o.fd); err != nil {
		o.logger.Warn("release unreachable socket failed",
			slog.Int("fd", o.fd),
			slog.Any("error", err),
		)
	}
}

// track 注册清理钩子，调用方持有 mu 或 s 尚未发布。
func (s *Socket) track() {
	s.cleanup = runtime.AddCleanup(s, releaseOrphan, orphan{fd: s.fd, logger: s.opts.logger})
	s.tracked = true
}

func (s *Socket) untrack() {
	if s.tracked {
		s.cleanup.Stop()
		s.tracked = false
	}
}

// discard 释放未移交给 Socket 的描述符，失败仅记录日志。
func discard(logger *slog.Logger, fd int) {
	if err := sysRelease(fd); err != nil {
		logger.Warn("release descriptor failed",
			slog.Int("fd", fd),
			slog.Any("error", err),
		)
	}
}

// Family 返回地址族。
func (s *Socket) Family() Family { return s.family }

// Type 返回套接字类型。
func (s *Socket) Type() Type { return s.typ }

// Proto 返回协议。
func (s *Socket) Proto() Proto { return s.proto }

// Fd 返回原始描述符，不持有时返回 -1。
func (s *Socket) Fd() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fd
}

// State 返回状态机位置。
func (s *Socket) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// String 返回便于日志输出的描述。
func (s *Socket) String() string {
	s.mu.Lock()
	fd, state := s.fd, s.state
	s.mu.Unlock()
	return "xsock.Socket(fd=" + strconv.Itoa(fd) + " " +
		s.family.String() + "/" + s.typ.String() + "/" + s.proto.String() + " " + state.String() + ")"
}

func (s *Socket) transition(to State) {
	s.mu.Lock()
	if s.fd >= 0 {
		s.state = to
	}
	s.mu.Unlock()
}

// do 以当前描述符执行一次系统调用，负责观测与错误归类。
func (s *Socket) do(kind error, op, addr string, fn func(fd int) (int, error)) (int, error) {
	span := startSpan(&s.opts, op, s.family, s.typ, s.proto, addr)
	fd := s.Fd()
	var (
		n   int
		err error
	)
	if fd < 0 {
		err = ErrNoDescriptor
	} else {
		n, err = fn(fd)
		// 阻塞调用期间 s 必须保持可达，否则清理钩子会释放仍在使用的描述符
		runtime.KeepAlive(s)
	}
	if err != nil {
		n = 0
		err = opError(kind, op, addr, err)
	}
	endSpan(span, n, err)
	return n, err
}

// Connect 连接到 addr。失败返回匹配 [ErrConnect] 的错误，状态不变。
func (s *Socket) Connect(addr SockAddr) error {
	_, err := s.do(ErrConnect, "connect", addr.String(), func(fd int) (int, error) {
		return 0, sysConnect(fd, addr)
	})
	if err != nil {
		return err
	}
	s.transition(StateConnected)
	s.opts.logger.Debug("socket connected", slog.String("addr", addr.String()))
	return nil
}

// Bind 绑定本地地址。失败返回匹配 [ErrBind] 的错误。
func (s *Socket) Bind(addr SockAddr) error {
	_, err := s.do(ErrBind, "bind", addr.String(), func(fd int) (int, error) {
		return 0, sysBind(fd, addr)
	})
	if err != nil {
		return err
	}
	s.transition(StateBound)
	s.opts.logger.Debug("socket bound", slog.String("addr", addr.String()))
	return nil
}

// Listen 开始监听，backlog 为等待队列长度。失败返回匹配 [ErrListen] 的错误。
func (s *Socket) Listen(backlog int) error {
	_, err := s.do(ErrListen, "listen", "", func(fd int) (int, error) {
		return 0, sysListen(fd, backlog)
	})
	if err != nil {
		return err
	}
	s.transition(StateListening)
	s.opts.logger.Debug("socket listening", slog.Int("backlog", backlog))
	return nil
}

// Accept 阻塞等待新连接，返回处于 Connected 状态的新套接字。
//
// 新套接字的 Family / Type / Proto 从新描述符查询得到；查询失败或取值无法识别时，
// 新描述符被关闭并返回匹配 [ErrAccept] 的错误。配置了 [WithPeerFilter] 时，
// 集合外的对端同样被关闭，错误包装 [ErrPeerRejected]。新套接字继承本套接字的选项。
func (s *Socket) Accept() (*Socket, error) {
	var conn *Socket
	_, err := s.do(ErrAccept, "accept", "", func(fd int) (int, error) {
		c, err := s.accept(fd)
		conn = c
		return 0, err
	})
	if err != nil {
		return nil, err
	}
	return conn, nil
}

func (s *Socket) accept(fd int) (*Socket, error) {
	nfd, peer, err := sysAccept(fd)
	if err != nil {
		return nil, err
	}
	family, typ, proto, err := sysClassify(nfd)
	if err != nil {
		discard(s.opts.logger, nfd)
		return nil, err
	}
	if filter := s.opts.peerFilter; filter != nil && !filter.Contains(peer.IP().Netip().Unmap()) {
		discard(s.opts.logger, nfd)
		s.opts.logger.Debug("peer rejected", slog.String("peer", peer.String()))
		return nil, fmt.Errorf("%w: %s", ErrPeerRejected, peer)
	}
	s.opts.logger.Debug("connection accepted",
		slog.Int("fd", nfd),
		slog.String("peer", peer.String()),
	)
	return newSocket(nfd, family, typ, proto, StateConnected, s.opts), nil
}

// Close 释放描述符（shutdown + close）。任何状态下均可调用；
// 不持有描述符时为空操作并返回 nil。系统调用失败返回匹配 [ErrClose] 的错误，
// 描述符此时同样视为已释放。
func (s *Socket) Close() error {
	s.mu.Lock()
	fd := s.fd
	if fd < 0 {
		s.mu.Unlock()
		return nil
	}
	s.fd = -1
	s.state = StateClosed
	s.untrack()
	s.mu.Unlock()

	span := startSpan(&s.opts, "close", s.family, s.typ, s.proto, "")
	err := sysRelease(fd)
	if err != nil {
		err = opError(ErrClose, "close", "", err)
	}
	endSpan(span, 0, err)
	s.opts.logger.Debug("socket closed", slog.Int("fd", fd))
	return err
}

// Move 将描述符转移给新的 Socket 并返回它，s 随后不再持有描述符。
func (s *Socket) Move() *Socket {
	s.mu.Lock()
	fd, state := s.fd, s.state
	s.fd = -1
	s.state = StateClosed
	s.untrack()
	s.mu.Unlock()

	if fd < 0 {
		state = StateClosed
	}
	return newSocket(fd, s.family, s.typ, s.proto, state, s.opts)
}

// Send 单次发送 b，返回实际发送的字节数，可能小于 len(b)。
// 失败返回匹配 [ErrSend] 的错误。
func (s *Socket) Send(b []byte) (int, error) {
	return s.do(ErrSend, "send", "", func(fd int) (int, error) {
		return sysSend(fd, b)
	})
}

// SendTo 向 addr 单次发送 b，用于数据报套接字。
func (s *Socket) SendTo(b []byte, addr SockAddr) (int, error) {
	return s.do(ErrSend, "sendto", addr.String(), func(fd int) (int, error) {
		return sysSendTo(fd, b, addr)
	})
}

// Recv 单次接收至 b，返回接收的字节数。流套接字对端有序关闭时返回 (0, nil)，
// 数据报套接字收到空数据报时同样返回 (0, nil)。
// 失败返回匹配 [ErrReceive] 的错误。
func (s *Socket) Recv(b []byte) (int, error) {
	return s.do(ErrReceive, "recv", "", func(fd int) (int, error) {
		return sysRecv(fd, b)
	})
}

// RecvFrom 单次接收一个数据报并返回发送方地址。
// 发送方地址无法解码时返回匹配 [ErrReceive] 的错误。
func (s *Socket) RecvFrom(b []byte) (int, SockAddr, error) {
	var from SockAddr
	n, err := s.do(ErrReceive, "recvfrom", "", func(fd int) (int, error) {
		n, addr, err := sysRecvFrom(fd, b)
		from = addr
		return n, err
	})
	if err != nil {
		return 0, SockAddr{}, err
	}
	return n, from, nil
}

// Read 实现 io.Reader。流套接字上对端有序关闭时返回 io.EOF；
// 数据报套接字收到空数据报时返回 (0, nil)。
func (s *Socket) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}
	n, err := s.Recv(p)
	if err != nil {
		return 0, err
	}
	if n == 0 && s.typ == TypeStream {
		return 0, io.EOF
	}
	return n, nil
}

// Write 实现 io.Writer，循环发送直至 p 全部写出或出错。
func (s *Socket) Write(p []byte) (int, error) {
	var total int
	for total < len(p) {
		n, err := s.Send(p[total:])
		total += n
		if err != nil {
			return total, err
		}
		if n == 0 {
			return total, io.ErrShortWrite
		}
	}
	return total, nil
}

// IsConnected 通过 getpeername 探测是否已连接。
// 对无连接套接字和半关闭连接的结果不可靠。
func (s *Socket) IsConnected() bool {
	fd := s.Fd()
	if fd < 0 {
		return false
	}
	_, err := sysPeername(fd)
	runtime.KeepAlive(s)
	return err == nil
}

// Addr 返回本地地址。失败返回匹配 [ErrSocket] 的错误。
func (s *Socket) Addr() (SockAddr, error) {
	return s.queryAddr("getsockname", sysSockname)
}

// Peer 返回对端地址。失败返回匹配 [ErrSocket] 的错误。
func (s *Socket) Peer() (SockAddr, error) {
	return s.queryAddr("getpeername", sysPeername)
}

func (s *Socket) queryAddr(op string, query func(fd int) (SockAddr, error)) (SockAddr, error) {
	fd := s.Fd()
	if fd < 0 {
		return SockAddr{}, opError(ErrSocket, op, "", ErrNoDescriptor)
	}
	addr, err := query(fd)
	runtime.KeepAlive(s)
	if err != nil {
		return SockAddr{}, opError(ErrSocket, op, "", err)
	}
	return addr, nil
}

// SetReuseAddr 设置 SO_REUSEADDR。
func (s *Socket) SetReuseAddr(on bool) error {
	return s.setOption("setsockopt SO_REUSEADDR", func(fd int) error {
		return sysSetReuseAddr(fd, on)
	})
}

// SetReadTimeout 设置接收超时（SO_RCVTIMEO），d <= 0 表示不超时。
// 超时的调用返回包装 unix.EAGAIN 的 [ErrReceive] / [ErrAccept]。
func (s *Socket) SetReadTimeout(d time.Duration) error {
	return s.setOption("setsockopt SO_RCVTIMEO", func(fd int) error {
		return sysSetTimeout(fd, true, d)
	})
}

// SetWriteTimeout 设置发送超时（SO_SNDTIMEO），d <= 0 表示不超时。
func (s *Socket) SetWriteTimeout(d time.Duration) error {
	return s.setOption("setsockopt SO_SNDTIMEO", func(fd int) error {
		return sysSetTimeout(fd, false, d)
	})
}

func (s *Socket) setOption(op string, set func(fd int) error) error {
	fd := s.Fd()
	if fd < 0 {
		return opError(ErrSocket, op, "", ErrNoDescriptor)
	}
	err := set(fd)
	runtime.KeepAlive(s)
	if err != nil {
		return opError(ErrSocket, op, "", err)
	}
	return nil
}

func startSpan(o *options, op string, family Family, typ Type, proto Proto, addr string) xmetrics.Span {
	attrs := []xmetrics.Attr{
		{Key: "net.sock.family", Value: family.String()},
		{Key: "net.sock.type", Value: typ.String()},
		{Key: "net.transport", Value: proto.String()},
	}
	if addr != "" {
		attrs = append(attrs, xmetrics.Attr{Key: "net.sock.addr", Value: addr})
	}
	_, span := xmetrics.Start(context.Background(), o.observer, xmetrics.SpanOptions{
		Component: component,
		Operation: op,
		Kind:      spanKind(op),
		Attrs:     attrs,
	})
	return span
}

func spanKind(op string) xmetrics.Kind {
	switch op {
	case "connect":
		return xmetrics.KindClient
	case "accept":
		return xmetrics.KindServer
	default:
		return xmetrics.KindInternal
	}
}

func endSpan(span xmetrics.Span, n int, err error) {
	var attrs []xmetrics.Attr
	if n > 0 {
		attrs = []xmetrics.Attr{{Key: "net.sock.bytes", Value: n}}
	}
	span.End(xmetrics.Result{Err: err, Attrs: attrs})
}
