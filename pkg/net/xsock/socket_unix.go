//go:build unix

package xsock

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/omeyang/xsock/pkg/net/xip"
)

// 系统调用函数变量，测试中替换以覆盖错误路径（此类测试不可并行）。
var (
	socket            = unix.Socket
	connect           = unix.Connect
	bind              = unix.Bind
	listen            = unix.Listen
	shutdown          = unix.Shutdown
	closeFD           = unix.Close
	read              = unix.Read
	sendmsgN          = unix.SendmsgN
	recvfrom          = unix.Recvfrom
	getsockname       = unix.Getsockname
	getpeername       = unix.Getpeername
	getsockoptInt     = unix.GetsockoptInt
	setsockoptInt     = unix.SetsockoptInt
	setsockoptTimeval = unix.SetsockoptTimeval
)

func (f Family) native() int {
	switch f {
	case FamilyIPv4:
		return unix.AF_INET
	case FamilyIPv6:
		return unix.AF_INET6
	default:
		return unix.AF_UNSPEC
	}
}

func (t Type) native() int {
	if t == TypeDatagram {
		return unix.SOCK_DGRAM
	}
	return unix.SOCK_STREAM
}

func (p Proto) native() int {
	if p == ProtoUDP {
		return unix.IPPROTO_UDP
	}
	return unix.IPPROTO_TCP
}

// classifyNative 将系统取值映射为枚举，无法识别时返回 [ErrInvalidClassification]。
func classifyNative(domain, typ, proto int) (Family, Type, Proto, error) {
	var (
		f Family
		t Type
		p Proto
	)
	switch domain {
	case unix.AF_INET:
		f = FamilyIPv4
	case unix.AF_INET6:
		f = FamilyIPv6
	default:
		return 0, 0, 0, fmt.Errorf("%w: domain %d", ErrInvalidClassification, domain)
	}
	switch typ {
	case unix.SOCK_STREAM:
		t = TypeStream
	case unix.SOCK_DGRAM:
		t = TypeDatagram
	default:
		return 0, 0, 0, fmt.Errorf("%w: type %d", ErrInvalidClassification, typ)
	}
	switch proto {
	case unix.IPPROTO_TCP:
		p = ProtoTCP
	case unix.IPPROTO_UDP:
		p = ProtoUDP
	default:
		return 0, 0, 0, fmt.Errorf("%w: protocol %d", ErrInvalidClassification, proto)
	}
	return f, t, p, nil
}

func toUnix(a SockAddr) (unix.Sockaddr, error) {
	if v4, ok := a.V4(); ok {
		return &unix.SockaddrInet4{Port: int(v4.Port()), Addr: v4.Addr().Octets()}, nil
	}
	if v6, ok := a.V6(); ok {
		return &unix.SockaddrInet6{Port: int(v6.Port()), Addr: v6.Addr().As16()}, nil
	}
	return nil, ErrUnsupportedAddress
}

func fromUnix(sa unix.Sockaddr) (SockAddr, bool) {
	switch sa := sa.(type) {
	case *unix.SockaddrInet4:
		ip := xip.IPv4(sa.Addr[0], sa.Addr[1], sa.Addr[2], sa.Addr[3])
		return FromV4(NewSockAddrV4(ip, uint16(sa.Port))), true
	case *unix.SockaddrInet6:
		return FromV6(NewSockAddrV6(xip.IPv6From16(sa.Addr), uint16(sa.Port))), true
	default:
		return SockAddr{}, false
	}
}

func sysSocket(f Family, t Type, p Proto) (int, error) {
	return openFD(f.native(), t.native(), p.native())
}

func sysConnect(fd int, a SockAddr) error {
	sa, err := toUnix(a)
	if err != nil {
		return err
	}
	return connect(fd, sa)
}

func sysBind(fd int, a SockAddr) error {
	sa, err := toUnix(a)
	if err != nil {
		return err
	}
	return bind(fd, sa)
}

func sysListen(fd, backlog int) error {
	return listen(fd, backlog)
}

// sysAccept 返回新描述符与对端地址；对端地址无法解码时为零值。
func sysAccept(fd int) (int, SockAddr, error) {
	nfd, sa, err := acceptFD(fd)
	if err != nil {
		return -1, SockAddr{}, err
	}
	peer, _ := fromUnix(sa)
	return nfd, peer, nil
}

// sysRelease 执行 shutdown(SHUT_RDWR) 后 close。
// 未连接套接字的 shutdown 会返回 ENOTCONN，不影响释放。
func sysRelease(fd int) error {
	_ = shutdown(fd, unix.SHUT_RDWR)
	return closeFD(fd)
}

func sysSend(fd int, b []byte) (int, error) {
	return sendmsgN(fd, b, nil, nil, sendFlags)
}

func sysSendTo(fd int, b []byte, a SockAddr) (int, error) {
	sa, err := toUnix(a)
	if err != nil {
		return 0, err
	}
	return sendmsgN(fd, b, nil, sa, sendFlags)
}

func sysRecv(fd int, b []byte) (int, error) {
	n, err := read(fd, b)
	if err != nil {
		return 0, err
	}
	return n, nil
}

func sysRecvFrom(fd int, b []byte) (int, SockAddr, error) {
	n, sa, err := recvfrom(fd, b, 0)
	if err != nil {
		return 0, SockAddr{}, err
	}
	from, ok := fromUnix(sa)
	if !ok {
		return 0, SockAddr{}, ErrUnsupportedAddress
	}
	return n, from, nil
}

func sysSockname(fd int) (SockAddr, error) {
	sa, err := getsockname(fd)
	if err != nil {
		return SockAddr{}, err
	}
	addr, ok := fromUnix(sa)
	if !ok {
		return SockAddr{}, ErrUnsupportedAddress
	}
	return addr, nil
}

func sysPeername(fd int) (SockAddr, error) {
	sa, err := getpeername(fd)
	if err != nil {
		return SockAddr{}, err
	}
	addr, ok := fromUnix(sa)
	if !ok {
		return SockAddr{}, ErrUnsupportedAddress
	}
	return addr, nil
}

func sysSetReuseAddr(fd int, on bool) error {
	v := 0
	if on {
		v = 1
	}
	return setsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, v)
}

func sysSetTimeout(fd int, recv bool, d time.Duration) error {
	opt := unix.SO_SNDTIMEO
	if recv {
		opt = unix.SO_RCVTIMEO
	}
	d = max(d, 0)
	tv := unix.NsecToTimeval(d.Nanoseconds())
	return setsockoptTimeval(fd, unix.SOL_SOCKET, opt, &tv)
}
