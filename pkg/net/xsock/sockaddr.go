package xsock

import (
	"fmt"
	"net/netip"

	"github.com/omeyang/xsock/pkg/net/xip"
)

// SockAddrV4 是 IPv4 地址与端口的组合。
type SockAddrV4 struct {
	addr xip.AddrIPv4
	port uint16
}

// NewSockAddrV4 构造 IPv4 套接字地址。
func NewSockAddrV4(addr xip.AddrIPv4, port uint16) SockAddrV4 {
	return SockAddrV4{addr: addr, port: port}
}

// SockAddrV4FromNative 从原生缓冲区解码 IPv4 地址，地址族不是 AF_INET 时返回 false。
func SockAddrV4FromNative(n NativeSockAddr) (SockAddrV4, bool) {
	if n.Family() != afInet {
		return SockAddrV4{}, false
	}
	var o [4]byte
	copy(o[:], n.buf[offV4Addr:offV4Addr+sizeV4Addr])
	return SockAddrV4{addr: xip.IPv4(o[0], o[1], o[2], o[3]), port: n.port()}, true
}

// Addr 返回 IP 地址。
func (a SockAddrV4) Addr() xip.AddrIPv4 { return a.addr }

// Port 返回端口。
func (a SockAddrV4) Port() uint16 { return a.port }

// String 返回 "a.b.c.d:port"。
func (a SockAddrV4) String() string {
	return netip.AddrPortFrom(a.addr.Netip(), a.port).String()
}

// Native 编码为原生缓冲区。
func (a SockAddrV4) Native() NativeSockAddr {
	var n NativeSockAddr
	n.setHeader(afInet, a.port)
	o := a.addr.Octets()
	copy(n.buf[offV4Addr:], o[:])
	return n
}

// SockAddrV6 是 IPv6 地址与端口的组合，不携带 flowinfo 与 scope id。
type SockAddrV6 struct {
	addr xip.AddrIPv6
	port uint16
}

// NewSockAddrV6 构造 IPv6 套接字地址。
func NewSockAddrV6(addr xip.AddrIPv6, port uint16) SockAddrV6 {
	return SockAddrV6{addr: addr, port: port}
}

// SockAddrV6FromNative 从原生缓冲区解码 IPv6 地址，地址族不是 AF_INET6 时返回 false。
func SockAddrV6FromNative(n NativeSockAddr) (SockAddrV6, bool) {
	if n.Family() != afInet6 {
		return SockAddrV6{}, false
	}
	var b [16]byte
	copy(b[:], n.buf[offV6Addr:offV6Addr+sizeV6Addr])
	return SockAddrV6{addr: xip.IPv6From16(b), port: n.port()}, true
}

// Addr 返回 IP 地址。
func (a SockAddrV6) Addr() xip.AddrIPv6 { return a.addr }

// Port 返回端口。
func (a SockAddrV6) Port() uint16 { return a.port }

// String 返回 "[h:h::h]:port"。
func (a SockAddrV6) String() string {
	return netip.AddrPortFrom(a.addr.Netip(), a.port).String()
}

// Native 编码为原生缓冲区，flowinfo 与 scope id 置零。
func (a SockAddrV6) Native() NativeSockAddr {
	var n NativeSockAddr
	n.setHeader(afInet6, a.port)
	b := a.addr.As16()
	copy(n.buf[offV6Addr:], b[:])
	return n
}

// SockAddr 是 [SockAddrV4] 与 [SockAddrV6] 的带标签联合。零值不持有地址。
type SockAddr struct {
	ver xip.Version
	v4  SockAddrV4
	v6  SockAddrV6
}

// FromV4 构造持有 IPv4 地址的 SockAddr。
func FromV4(a SockAddrV4) SockAddr {
	return SockAddr{ver: xip.V4, v4: a}
}

// FromV6 构造持有 IPv6 地址的 SockAddr。
func FromV6(a SockAddrV6) SockAddr {
	return SockAddr{ver: xip.V6, v6: a}
}

// NewSockAddr 由 [xip.IPAddr] 与端口构造 SockAddr；ip 无效时返回零值。
func NewSockAddr(ip xip.IPAddr, port uint16) SockAddr {
	if v4, ok := ip.V4(); ok {
		return FromV4(NewSockAddrV4(v4, port))
	}
	if v6, ok := ip.V6(); ok {
		return FromV6(NewSockAddrV6(v6, port))
	}
	return SockAddr{}
}

// SockAddrFromNative 按地址族判别值解码原生缓冲区，未知地址族返回 false。
func SockAddrFromNative(n NativeSockAddr) (SockAddr, bool) {
	switch n.Family() {
	case afInet:
		v4, _ := SockAddrV4FromNative(n)
		return FromV4(v4), true
	case afInet6:
		v6, _ := SockAddrV6FromNative(n)
		return FromV6(v6), true
	default:
		return SockAddr{}, false
	}
}

// SockAddrFromNetip 从 [netip.AddrPort] 构造 SockAddr。
// IPv4-mapped 地址保持 IPv6；无效地址或带 zone 的地址返回 false。
func SockAddrFromNetip(ap netip.AddrPort) (SockAddr, bool) {
	if ap.Addr().Zone() != "" {
		return SockAddr{}, false
	}
	ip, ok := xip.IPAddrFromNetip(ap.Addr())
	if !ok {
		return SockAddr{}, false
	}
	return NewSockAddr(ip, ap.Port()), true
}

// ParseSockAddr 解析 "a.b.c.d:port" 或 "[h::h]:port"。
func ParseSockAddr(s string) (SockAddr, error) {
	ap, err := netip.ParseAddrPort(s)
	if err != nil {
		return SockAddr{}, fmt.Errorf("xsock: parse socket address: %w", err)
	}
	sa, ok := SockAddrFromNetip(ap)
	if !ok {
		return SockAddr{}, fmt.Errorf("xsock: parse socket address %q: %w", s, ErrUnsupportedAddress)
	}
	return sa, nil
}

// IsValid 报告是否持有地址。
func (a SockAddr) IsValid() bool { return a.ver != xip.V0 }

// Is4 报告是否持有 IPv4 地址。
func (a SockAddr) Is4() bool { return a.ver == xip.V4 }

// Is6 报告是否持有 IPv6 地址。
func (a SockAddr) Is6() bool { return a.ver == xip.V6 }

// V4 返回 IPv4 地址；标签不匹配时返回 false。
func (a SockAddr) V4() (SockAddrV4, bool) { return a.v4, a.ver == xip.V4 }

// V6 返回 IPv6 地址；标签不匹配时返回 false。
func (a SockAddr) V6() (SockAddrV6, bool) { return a.v6, a.ver == xip.V6 }

// MustV4 返回 IPv4 地址，标签不匹配时 panic，错误包装 [ErrWrongFamily]。
func (a SockAddr) MustV4() SockAddrV4 {
	if a.ver != xip.V4 {
		panic(fmt.Errorf("%w: want IPv4, have %s", ErrWrongFamily, a.ver))
	}
	return a.v4
}

// MustV6 返回 IPv6 地址，标签不匹配时 panic，错误包装 [ErrWrongFamily]。
func (a SockAddr) MustV6() SockAddrV6 {
	if a.ver != xip.V6 {
		panic(fmt.Errorf("%w: want IPv6, have %s", ErrWrongFamily, a.ver))
	}
	return a.v6
}

// Family 返回对应的套接字地址族；零值返回 [FamilyUnspecified]。
func (a SockAddr) Family() Family {
	switch a.ver {
	case xip.V4:
		return FamilyIPv4
	case xip.V6:
		return FamilyIPv6
	default:
		return FamilyUnspecified
	}
}

// IP 返回 IP 地址；零值返回无效的 [xip.IPAddr]。
func (a SockAddr) IP() xip.IPAddr {
	switch a.ver {
	case xip.V4:
		return xip.FromIPv4(a.v4.addr)
	case xip.V6:
		return xip.FromIPv6(a.v6.addr)
	default:
		return xip.IPAddr{}
	}
}

// Port 返回端口；零值返回 0。
func (a SockAddr) Port() uint16 {
	switch a.ver {
	case xip.V4:
		return a.v4.port
	case xip.V6:
		return a.v6.port
	default:
		return 0
	}
}

// Native 编码为原生缓冲区；零值返回全零缓冲区。
func (a SockAddr) Native() NativeSockAddr {
	switch a.ver {
	case xip.V4:
		return a.v4.Native()
	case xip.V6:
		return a.v6.Native()
	default:
		return NativeSockAddr{}
	}
}

// AddrPort 返回等价的 [netip.AddrPort]。
func (a SockAddr) AddrPort() netip.AddrPort {
	if !a.IsValid() {
		return netip.AddrPort{}
	}
	return netip.AddrPortFrom(a.IP().Netip(), a.Port())
}

// String 返回地址文本；零值返回 "invalid address"。
func (a SockAddr) String() string {
	switch a.ver {
	case xip.V4:
		return a.v4.String()
	case xip.V6:
		return a.v6.String()
	default:
		return "invalid address"
	}
}
