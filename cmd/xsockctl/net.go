package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/netip"
	"strconv"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/omeyang/xsock/pkg/lifecycle/xrun"
	"github.com/omeyang/xsock/pkg/net/xip"
	"github.com/omeyang/xsock/pkg/net/xsock"
	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/resilience/xretry"
	"github.com/omeyang/xsock/pkg/util/xlru"
	"github.com/omeyang/xsock/pkg/util/xpool"
)

const (
	recvBufferSize  = 2048
	datagramMax     = 64 * 1024
	shutdownTimeout = 5 * time.Second
	pollInterval    = 500 * time.Millisecond
	maxTrackedPeers = 4096
)

// head 发送 HEAD 请求并打印一次接收到的响应。
func (a *app) head(ctx context.Context, host string, port uint16, path string) error {
	sock, err := a.dial(ctx, host, strconv.Itoa(int(port)), 0)
	if err != nil {
		return err
	}
	defer a.closeSocket(sock)

	request := fmt.Sprintf("HEAD %s HTTP/1.1\r\nHost: %s\r\nConnection: close\r\n\r\n", path, host)
	sent, err := sock.Write([]byte(request))
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "No. bytes sent: %d\n", sent)
	fmt.Fprintf(a.out, ">>>>> REQUEST BEGIN >>>>>\n%s<<<<< REQUEST END <<<<<\n", request)

	buf := make([]byte, recvBufferSize)
	n, err := sock.Recv(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "No. bytes received: %d\n", n)
	fmt.Fprintf(a.out, ">>>>> RESPONSE BEGIN >>>>>\n%s<<<<< RESPONSE END <<<<<\n", buf[:n])
	return nil
}

// dial 解析目标并建立 TCP 连接。连接被拒绝、超时或网络不可达时最多重试 retries 次。
func (a *app) dial(ctx context.Context, host, service string, retries int) (*xsock.Socket, error) {
	addr, err := xsock.ResolveSockAddr(host, service)
	if err != nil {
		return nil, err
	}
	return xretry.DoWithData(ctx, func() (*xsock.Socket, error) {
		sock, err := xsock.NewSocket(addr.Family(), xsock.TypeStream, xsock.ProtoTCP, a.sockOpts()...)
		if err != nil {
			return nil, xretry.NewPermanentError(err)
		}
		if timeout := a.cfg.Client.Timeout; timeout > 0 {
			if err := sock.SetReadTimeout(timeout); err != nil {
				a.closeSocket(sock)
				return nil, xretry.NewPermanentError(err)
			}
		}
		if err := sock.Connect(addr); err != nil {
			a.closeSocket(sock)
			return nil, err
		}
		return sock, nil
	},
		xretry.Attempts(uint(retries)+1),
		xretry.Delay(a.cfg.Client.RetryDelay),
		xretry.LastErrorOnly(true),
		xretry.OnlyFor(syscall.ECONNREFUSED, syscall.ETIMEDOUT, syscall.ENETUNREACH),
		xretry.OnRetry(func(n uint, err error) {
			a.logger.Info("connect retry", slog.Uint64("attempt", uint64(n)+1), xlog.Err(err))
		}),
	)
}

// send 发送 msg 并打印一次接收到的回复。
func (a *app) send(ctx context.Context, host, service string, msg []byte, retries int) error {
	sock, err := a.dial(ctx, host, service, retries)
	if err != nil {
		return err
	}
	defer a.closeSocket(sock)

	if _, err := sock.Write(msg); err != nil {
		return err
	}
	buf := make([]byte, datagramMax)
	n, err := sock.Recv(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n", buf[:n])
	return nil
}

// serve 在 port 上运行 TCP echo 服务，直到收到终止信号。
func (a *app) serve(ctx context.Context, port uint16, backlog, workers int, extra ...xsock.Option) error {
	srv, err := xsock.NewTCPServer(port, a.sockOpts(append(extra, xsock.WithReuseAddr())...)...)
	if err != nil {
		return err
	}
	if err := srv.Listen(backlog); err != nil {
		a.closeSocket(srv.Socket())
		return err
	}
	addr, err := srv.Addr()
	if err != nil {
		a.closeSocket(srv.Socket())
		return err
	}
	fmt.Fprintf(a.out, "listening on %s\n", addr)
	a.logger.Info("echo server listening", xlog.Addr(addr), slog.Int("workers", workers))
	return a.runEcho(ctx, srv, workers)
}

// runEcho 运行 accept 循环，连接交由 worker pool 处理。ctx 取消或收到信号时关闭 srv 并等待连接处理完成。
func (a *app) runEcho(ctx context.Context, srv *xsock.TCPServer, workers int) error {
	gate, err := a.peerGate()
	if err != nil {
		a.closeSocket(srv.Socket())
		return err
	}
	if gate != nil {
		defer gate.Close()
	}
	pool, err := xpool.New(workers, workers*4, a.echo,
		xpool.WithLogger(a.logger),
		xpool.WithName("echo"),
	)
	if err != nil {
		a.closeSocket(srv.Socket())
		return err
	}
	defer a.closeSocket(srv.Socket())
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := pool.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("echo workers still running", xlog.Err(err))
		}
	}()

	err = xrun.RunWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(a.logger), xrun.WithName("xsockctl")},
		xrun.Serve(func(ctx context.Context) error {
			return a.acceptLoop(ctx, srv, pool, gate)
		}, srv.Close),
	)
	if errors.Is(err, xrun.ErrSignal) {
		return nil
	}
	return err
}

// peerGate 按配置创建对端连接频率限制，未配置时返回 nil。
func (a *app) peerGate() (*xlru.WindowCounter[netip.Addr], error) {
	cfg := a.cfg.Server
	if cfg.PeerRate <= 0 {
		return nil, nil
	}
	return xlru.NewWindowCounter[netip.Addr](maxTrackedPeers, cfg.PeerRate, cfg.PeerWindow)
}

// admit 报告连接是否在对端的频率限制之内。
func (a *app) admit(gate *xlru.WindowCounter[netip.Addr], conn *xsock.Socket) bool {
	if gate == nil {
		return true
	}
	peer, err := conn.Peer()
	if err != nil {
		return false
	}
	if gate.Allow(peer.IP().Netip().Unmap()) {
		return true
	}
	a.logger.Info("peer rate exceeded", slog.String("peer", peer.String()))
	return false
}

func (a *app) acceptLoop(ctx context.Context, srv *xsock.TCPServer, pool *xpool.Pool[*xsock.Socket], gate *xlru.WindowCounter[netip.Addr]) error {
	for {
		conn, err := srv.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			if errors.Is(err, xsock.ErrPeerRejected) {
				a.logger.Info("peer rejected", xlog.Err(err))
				continue
			}
			return err
		}
		if !a.admit(gate, conn) {
			a.closeSocket(conn)
			continue
		}
		if err := pool.Submit(conn); err != nil {
			a.logger.Warn("connection dropped", xlog.Err(err))
			a.closeSocket(conn)
		}
	}
}

// echo 回显连接上收到的数据，直到对端关闭或空闲超时。
func (a *app) echo(conn *xsock.Socket) {
	log := a.logger.With(xlog.ConnID(uuid.NewString()))
	defer a.closeSocket(conn)

	if peer, err := conn.Peer(); err == nil {
		log.Info("connection opened", slog.String("peer", peer.String()))
	}
	if timeout := a.cfg.Server.IdleTimeout; timeout > 0 {
		if err := conn.SetReadTimeout(timeout); err != nil {
			log.Warn("set idle timeout", xlog.Err(err))
		}
	}
	n, err := io.Copy(conn, conn)
	if err != nil && !isTimeout(err) {
		log.Warn("echo failed", slog.Int64("bytes", n), xlog.Err(err))
		return
	}
	log.Info("connection closed", slog.Int64("bytes", n))
}

// udpEcho 在 port 上回显数据报，直到收到终止信号。
func (a *app) udpEcho(ctx context.Context, port uint16) error {
	sock, err := xsock.NewSocket(xsock.FamilyIPv4, xsock.TypeDatagram, xsock.ProtoUDP, a.sockOpts()...)
	if err != nil {
		return err
	}
	if err := sock.Bind(xsock.FromV4(xsock.NewSockAddrV4(xip.IPv4Unspecified, port))); err != nil {
		a.closeSocket(sock)
		return err
	}
	addr, err := sock.Addr()
	if err != nil {
		a.closeSocket(sock)
		return err
	}
	fmt.Fprintf(a.out, "listening on %s\n", addr)
	return a.runUDPEcho(ctx, sock)
}

func (a *app) runUDPEcho(ctx context.Context, sock *xsock.Socket) error {
	// 周期性超时让循环能观察到 ctx 取消
	defer a.closeSocket(sock)
	if err := sock.SetReadTimeout(pollInterval); err != nil {
		return err
	}
	err := xrun.RunWithOptions(ctx,
		[]xrun.Option{xrun.WithLogger(a.logger), xrun.WithName("xsockctl")},
		xrun.Serve(func(ctx context.Context) error {
			buf := make([]byte, datagramMax)
			for ctx.Err() == nil {
				n, from, err := sock.RecvFrom(buf)
				switch {
				case isTimeout(err):
					continue
				case err != nil:
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if _, err := sock.SendTo(buf[:n], from); err != nil {
					a.logger.Warn("udp echo failed", slog.String("peer", from.String()), xlog.Err(err))
				}
			}
			return nil
		}, sock.Close),
	)
	if errors.Is(err, xrun.ErrSignal) {
		return nil
	}
	return err
}

// udpSend 发送一个数据报并打印回复。
func (a *app) udpSend(host, service string, msg []byte) error {
	addr, err := xsock.ResolveSockAddr(host, service)
	if err != nil {
		return err
	}
	sock, err := xsock.NewSocket(addr.Family(), xsock.TypeDatagram, xsock.ProtoUDP, a.sockOpts()...)
	if err != nil {
		return err
	}
	defer a.closeSocket(sock)

	if err := sock.SetReadTimeout(a.cfg.Client.Timeout); err != nil {
		return err
	}
	if _, err := sock.SendTo(msg, addr); err != nil {
		return err
	}
	buf := make([]byte, datagramMax)
	n, from, err := sock.RecvFrom(buf)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s: %s\n", from, buf[:n])
	return nil
}

func (a *app) closeSocket(sock *xsock.Socket) {
	if err := sock.Close(); err != nil {
		a.logger.Warn("close socket", xlog.Err(err))
	}
}

func isTimeout(err error) bool {
	return errors.Is(err, syscall.EAGAIN)
}
