package xip

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"net/netip"
)

// AddrIPv4 是由 4 个八位段组成的 IPv4 地址值类型。
//
// 设计决策: 使用 [4]byte 存储而非 uint32，使零值即 0.0.0.0 且可直接作为 map key；
// 排序与相等性统一以大端 32 位整数值定义（见 [AddrIPv4.Compare]），
// 不依赖底层存储布局。
type AddrIPv4 struct {
	octets [4]byte
}

var (
	// IPv4Localhost 是 IPv4 本机地址 127.0.0.1。
	IPv4Localhost = IPv4(127, 0, 0, 1)

	// IPv4Unspecified 是 IPv4 未指定地址 0.0.0.0。
	IPv4Unspecified = IPv4(0, 0, 0, 0)

	// IPv4Broadcast 是 IPv4 有限广播地址 255.255.255.255。
	IPv4Broadcast = IPv4(255, 255, 255, 255)
)

// IPv4 由四个八位段构造地址 a.b.c.d。
func IPv4(a, b, c, d byte) AddrIPv4 {
	return AddrIPv4{octets: [4]byte{a, b, c, d}}
}

// IPv4FromUint32 从网络字节序（大端）的 uint32 构造地址。
func IPv4FromUint32(v uint32) AddrIPv4 {
	var a AddrIPv4
	binary.BigEndian.PutUint32(a.octets[:], v)
	return a
}

// IPv4FromNetip 从 [netip.Addr] 构造地址。
// IPv4-mapped IPv6 地址会先解除映射；其他地址返回 (零值, false)。
func IPv4FromNetip(addr netip.Addr) (AddrIPv4, bool) {
	if !addr.Is4() && !addr.Is4In6() {
		return AddrIPv4{}, false
	}
	return AddrIPv4{octets: addr.Unmap().As4()}, true
}

// Octets 返回四个八位段的副本。
func (a AddrIPv4) Octets() [4]byte {
	return a.octets
}

// At 返回第 i 个八位段，i 越界时 panic。
func (a AddrIPv4) At(i int) byte {
	return a.octets[i]
}

// Uint32 返回地址的大端 32 位整数值。
func (a AddrIPv4) Uint32() uint32 {
	return binary.BigEndian.Uint32(a.octets[:])
}

// Compare 按大端 32 位整数值比较 a 与 b，返回 -1、0 或 +1。
func (a AddrIPv4) Compare(b AddrIPv4) int {
	return cmp.Compare(a.Uint32(), b.Uint32())
}

// Less 报告 a 是否小于 b。
func (a AddrIPv4) Less(b AddrIPv4) bool {
	return a.Compare(b) < 0
}

// IsLocalhost 报告 a 是否等于 [IPv4Localhost]。
// 判断整个 127.0.0.0/8 请使用 [AddrIPv4.IsLoopback]。
func (a AddrIPv4) IsLocalhost() bool {
	return a == IPv4Localhost
}

// IsLoopback 报告 a 是否属于环回网段 127.0.0.0/8。
func (a AddrIPv4) IsLoopback() bool {
	return a.octets[0] == 127
}

// IsUnspecified 报告 a 是否为 0.0.0.0。
func (a AddrIPv4) IsUnspecified() bool {
	return a == IPv4Unspecified
}

// IsBroadcast 报告 a 是否为 255.255.255.255。
func (a AddrIPv4) IsBroadcast() bool {
	return a == IPv4Broadcast
}

// IsDocumentation 报告 a 是否为文档专用地址：
//   - 192.0.2.0/24 (TEST-NET-1)
//   - 198.51.100.0/24 (TEST-NET-2)
//   - 203.0.113.0/24 (TEST-NET-3)
//   - 233.252.0.0/24 (MCAST-TEST-NET)
func (a AddrIPv4) IsDocumentation() bool {
	return documentationSet.Contains(a.Netip())
}

// IsPrivate 报告 a 是否为 RFC 1918 私有地址
// （10.0.0.0/8, 172.16.0.0/12, 192.168.0.0/16）。
func (a AddrIPv4) IsPrivate() bool {
	return a.Netip().IsPrivate()
}

// IsLinkLocal 报告 a 是否为链路本地地址 169.254.0.0/16。
func (a AddrIPv4) IsLinkLocal() bool {
	return a.octets[0] == 169 && a.octets[1] == 254
}

// Netip 返回等价的 [netip.Addr]。
func (a AddrIPv4) Netip() netip.Addr {
	return netip.AddrFrom4(a.octets)
}

// String 返回点分十进制表示。
func (a AddrIPv4) String() string {
	return a.Netip().String()
}

// MarshalText 实现 encoding.TextMarshaler。
func (a AddrIPv4) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (a *AddrIPv4) UnmarshalText(text []byte) error {
	parsed, err := ParseIPv4(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseIPv4 解析点分十进制 IPv4 地址。
// IPv4-mapped IPv6 文本（如 "::ffff:1.2.3.4"）不被接受，请使用 [ParseIPAddr]。
func ParseIPv4(s string) (AddrIPv4, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return AddrIPv4{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if !addr.Is4() {
		return AddrIPv4{}, fmt.Errorf("%w: not an IPv4 address: %s", ErrInvalidAddress, s)
	}
	return AddrIPv4{octets: addr.As4()}, nil
}
