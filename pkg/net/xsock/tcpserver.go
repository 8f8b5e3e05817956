package xsock

import (
	"log/slog"

	"github.com/omeyang/xsock/pkg/net/xip"
)

// TCPServer 是绑定在 0.0.0.0:port 上的 IPv4 / Stream / TCP 套接字。
type TCPServer struct {
	sock *Socket
	port uint16
}

// NewTCPServer 创建套接字并绑定 0.0.0.0:port。port 为 0 时由系统分配，
// 实际端口通过 [TCPServer.Addr] 获取。
//
// 绑定失败时套接字被关闭，返回匹配 [ErrBind] 的错误。
func NewTCPServer(port uint16, opts ...Option) (*TCPServer, error) {
	sock, err := NewSocket(FamilyIPv4, TypeStream, ProtoTCP, opts...)
	if err != nil {
		return nil, err
	}
	if err := sock.Bind(FromV4(NewSockAddrV4(xip.IPv4Unspecified, port))); err != nil {
		if closeErr := sock.Close(); closeErr != nil {
			sock.opts.logger.Warn("close socket after bind failure",
				slog.Any("error", closeErr),
			)
		}
		return nil, err
	}
	return &TCPServer{sock: sock, port: port}, nil
}

// Port 返回构造时指定的端口。
func (s *TCPServer) Port() uint16 { return s.port }

// Addr 返回实际绑定的本地地址。
func (s *TCPServer) Addr() (SockAddr, error) { return s.sock.Addr() }

// Listen 开始监听。
func (s *TCPServer) Listen(backlog int) error { return s.sock.Listen(backlog) }

// Accept 阻塞等待新连接。
func (s *TCPServer) Accept() (*Socket, error) { return s.sock.Accept() }

// Close 关闭监听套接字，可用于唤醒阻塞中的 Accept。
func (s *TCPServer) Close() error { return s.sock.Close() }

// Socket 返回底层套接字。
func (s *TCPServer) Socket() *Socket { return s.sock }
