package xip

import (
	"cmp"
	"encoding/binary"
	"fmt"
	"net/netip"
)

// AddrIPv6 是由 8 个 16 位段（hextet）组成的 IPv6 地址值类型。
// 不携带 zone / scope id / flow label。
type AddrIPv6 struct {
	hextets [8]uint16
}

var (
	// IPv6Localhost 是 IPv6 环回地址 ::1。
	IPv6Localhost = IPv6(0, 0, 0, 0, 0, 0, 0, 1)

	// IPv6Unspecified 是 IPv6 未指定地址 ::。
	IPv6Unspecified = IPv6(0, 0, 0, 0, 0, 0, 0, 0)
)

// IPv6 由八个 16 位段构造地址。
func IPv6(a, b, c, d, e, f, g, h uint16) AddrIPv6 {
	return AddrIPv6{hextets: [8]uint16{a, b, c, d, e, f, g, h}}
}

// MapIPv4 构造 IPv4-mapped IPv6 地址 ::ffff:a.b.c.d。
func MapIPv4(v4 AddrIPv4) AddrIPv6 {
	o := v4.octets
	return IPv6(0, 0, 0, 0, 0, 0xFFFF,
		uint16(o[0])<<8|uint16(o[1]),
		uint16(o[2])<<8|uint16(o[3]),
	)
}

// IPv6From16 从 16 字节网络序表示构造地址。
func IPv6From16(b [16]byte) AddrIPv6 {
	var a AddrIPv6
	for i := range a.hextets {
		a.hextets[i] = binary.BigEndian.Uint16(b[2*i:])
	}
	return a
}

// IPv6FromNetip 从 [netip.Addr] 构造地址。
// 纯 IPv4 地址返回 (零值, false)；zone 信息被丢弃。
func IPv6FromNetip(addr netip.Addr) (AddrIPv6, bool) {
	if !addr.Is6() {
		return AddrIPv6{}, false
	}
	return IPv6From16(addr.As16()), true
}

// Hextets 返回八个 16 位段的副本。
func (a AddrIPv6) Hextets() [8]uint16 {
	return a.hextets
}

// At 返回第 i 个 16 位段，i 越界时 panic。
func (a AddrIPv6) At(i int) uint16 {
	return a.hextets[i]
}

// As16 返回 16 字节网络序表示。
func (a AddrIPv6) As16() [16]byte {
	var b [16]byte
	for i, h := range a.hextets {
		binary.BigEndian.PutUint16(b[2*i:], h)
	}
	return b
}

func (a AddrIPv6) high() uint64 {
	h := a.hextets
	return uint64(h[0])<<48 | uint64(h[1])<<32 | uint64(h[2])<<16 | uint64(h[3])
}

func (a AddrIPv6) low() uint64 {
	h := a.hextets
	return uint64(h[4])<<48 | uint64(h[5])<<32 | uint64(h[6])<<16 | uint64(h[7])
}

// Compare 先比较高 64 位，再比较低 64 位（均为无符号），返回 -1、0 或 +1。
func (a AddrIPv6) Compare(b AddrIPv6) int {
	if c := cmp.Compare(a.high(), b.high()); c != 0 {
		return c
	}
	return cmp.Compare(a.low(), b.low())
}

// Less 报告 a 是否小于 b。
func (a AddrIPv6) Less(b AddrIPv6) bool {
	return a.Compare(b) < 0
}

// IsLocalhost 报告 a 是否为 ::1。
func (a AddrIPv6) IsLocalhost() bool {
	return a == IPv6Localhost
}

// IsUnspecified 报告 a 是否为 ::。
func (a AddrIPv6) IsUnspecified() bool {
	return a == IPv6Unspecified
}

// IsLinkLocal 报告 a 是否属于 fe80::/10。
func (a AddrIPv6) IsLinkLocal() bool {
	return a.hextets[0]&0xFFC0 == 0xFE80
}

// IsPrivate 报告 a 是否为唯一本地地址 fc00::/7。
func (a AddrIPv6) IsPrivate() bool {
	return a.hextets[0]&0xFE00 == 0xFC00
}

// IsDocumentation 报告 a 是否属于文档前缀 2001:db8::/32。
func (a AddrIPv6) IsDocumentation() bool {
	return documentationSet.Contains(a.Netip())
}

// IsBenchmarking 报告 a 是否属于基准测试前缀 2001:2::/48（RFC 5180）。
func (a AddrIPv6) IsBenchmarking() bool {
	return a.hextets[0] == 0x2001 && a.hextets[1] == 0x0002 && a.hextets[2] == 0
}

// IsIPv4Mapped 报告 a 是否为 IPv4-mapped 地址（前 5 段为 0，第 6 段为 0xffff）。
func (a AddrIPv6) IsIPv4Mapped() bool {
	h := a.hextets
	return h[0] == 0 && h[1] == 0 && h[2] == 0 && h[3] == 0 && h[4] == 0 && h[5] == 0xFFFF
}

// ToIPv4 尝试转换为 IPv4 地址：
//   - :: → 0.0.0.0
//   - ::1 → [IPv4Localhost]
//   - ::ffff:a.b.c.d → a.b.c.d
//
// 其他地址返回 (零值, false)。
func (a AddrIPv6) ToIPv4() (AddrIPv4, bool) {
	switch {
	case a.IsUnspecified():
		return IPv4Unspecified, true
	case a.IsLocalhost():
		return IPv4Localhost, true
	case !a.IsIPv4Mapped():
		return AddrIPv4{}, false
	}
	g, h := a.hextets[6], a.hextets[7]
	return IPv4(byte(g>>8), byte(g), byte(h>>8), byte(h)), true
}

// Netip 返回等价的 [netip.Addr]（始终为 16 字节形式）。
func (a AddrIPv6) Netip() netip.Addr {
	return netip.AddrFrom16(a.As16())
}

// String 返回 RFC 5952 规范文本表示。
func (a AddrIPv6) String() string {
	return a.Netip().String()
}

// MarshalText 实现 encoding.TextMarshaler。
func (a AddrIPv6) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 实现 encoding.TextUnmarshaler。
func (a *AddrIPv6) UnmarshalText(text []byte) error {
	parsed, err := ParseIPv6(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ParseIPv6 解析 IPv6 地址文本。带 zone 的地址（如 "fe80::1%eth0"）被拒绝。
func ParseIPv6(s string) (AddrIPv6, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return AddrIPv6{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if !addr.Is6() {
		return AddrIPv6{}, fmt.Errorf("%w: not an IPv6 address: %s", ErrInvalidAddress, s)
	}
	if addr.Zone() != "" {
		return AddrIPv6{}, fmt.Errorf("%w: IPv6 zone ID is not supported: %s", ErrInvalidAddress, s)
	}
	return IPv6From16(addr.As16()), nil
}
