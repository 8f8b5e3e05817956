package xip

import (
	"fmt"
	"net/netip"
)

// IPAddr 是 [AddrIPv4] 与 [AddrIPv6] 的带标签联合。
//
// 标签通过 [IPAddr.Version]、[IPAddr.Is4]、[IPAddr.Is6] 查询。
// 零值不持有任何地址（Version 为 [V0]）。
// 投影方式：
//   - V4 / V6 返回 (值, ok)，标签不匹配时 ok 为 false
//   - MustV4 / MustV6 在标签不匹配时 panic，错误包装 [ErrWrongVersion]
type IPAddr struct {
	ver Version
	v4  AddrIPv4
	v6  AddrIPv6
}

// FromIPv4 构造持有 IPv4 地址的 IPAddr。
func FromIPv4(a AddrIPv4) IPAddr {
	return IPAddr{ver: V4, v4: a}
}

// FromIPv6 构造持有 IPv6 地址的 IPAddr。
// IPv4-mapped 地址保持 IPv6 标签，不会自动转换。
func FromIPv6(a AddrIPv6) IPAddr {
	return IPAddr{ver: V6, v6: a}
}

// IPAddrFromNetip 从 [netip.Addr] 构造 IPAddr。
// 4 字节地址得到 IPv4，16 字节地址（含 IPv4-mapped）得到 IPv6。
// 无效地址返回 (零值, false)。
func IPAddrFromNetip(addr netip.Addr) (IPAddr, bool) {
	switch {
	case addr.Is4():
		return FromIPv4(AddrIPv4{octets: addr.As4()}), true
	case addr.Is6():
		return FromIPv6(IPv6From16(addr.As16())), true
	default:
		return IPAddr{}, false
	}
}

// ParseIPAddr 解析 IPv4 或 IPv6 地址文本。
func ParseIPAddr(s string) (IPAddr, error) {
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return IPAddr{}, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}
	if addr.Zone() != "" {
		return IPAddr{}, fmt.Errorf("%w: IPv6 zone ID is not supported: %s", ErrInvalidAddress, s)
	}
	ip, _ := IPAddrFromNetip(addr)
	return ip, nil
}

// Version 返回标签。
func (ip IPAddr) Version() Version {
	return ip.ver
}

// IsValid 报告 ip 是否持有地址。
func (ip IPAddr) IsValid() bool {
	return ip.ver != V0
}

// Is4 报告 ip 是否持有 IPv4 地址。
func (ip IPAddr) Is4() bool {
	return ip.ver == V4
}

// Is6 报告 ip 是否持有 IPv6 地址。
func (ip IPAddr) Is6() bool {
	return ip.ver == V6
}

// V4 返回 IPv4 地址；标签不是 IPv4 时返回 (零值, false)。
func (ip IPAddr) V4() (AddrIPv4, bool) {
	return ip.v4, ip.ver == V4
}

// V6 返回 IPv6 地址；标签不是 IPv6 时返回 (零值, false)。
func (ip IPAddr) V6() (AddrIPv6, bool) {
	return ip.v6, ip.ver == V6
}

// MustV4 返回 IPv4 地址，标签不匹配时 panic。
func (ip IPAddr) MustV4() AddrIPv4 {
	if ip.ver != V4 {
		panic(fmt.Errorf("%w: want IPv4, have %s", ErrWrongVersion, ip.ver))
	}
	return ip.v4
}

// MustV6 返回 IPv6 地址，标签不匹配时 panic。
func (ip IPAddr) MustV6() AddrIPv6 {
	if ip.ver != V6 {
		panic(fmt.Errorf("%w: want IPv6, have %s", ErrWrongVersion, ip.ver))
	}
	return ip.v6
}

// IsLocalhost 按所持版本判断本机地址。
func (ip IPAddr) IsLocalhost() bool {
	switch ip.ver {
	case V4:
		return ip.v4.IsLocalhost()
	case V6:
		return ip.v6.IsLocalhost()
	default:
		return false
	}
}

// IsUnspecified 按所持版本判断未指定地址。
func (ip IPAddr) IsUnspecified() bool {
	switch ip.ver {
	case V4:
		return ip.v4.IsUnspecified()
	case V6:
		return ip.v6.IsUnspecified()
	default:
		return false
	}
}

// Compare 比较两个 IPAddr：先按版本（无效 < IPv4 < IPv6），再按地址值。
func (ip IPAddr) Compare(other IPAddr) int {
	if ip.ver != other.ver {
		if ip.ver < other.ver {
			return -1
		}
		return 1
	}
	switch ip.ver {
	case V4:
		return ip.v4.Compare(other.v4)
	case V6:
		return ip.v6.Compare(other.v6)
	default:
		return 0
	}
}

// Netip 返回等价的 [netip.Addr]；零值返回无效的 netip.Addr。
func (ip IPAddr) Netip() netip.Addr {
	switch ip.ver {
	case V4:
		return ip.v4.Netip()
	case V6:
		return ip.v6.Netip()
	default:
		return netip.Addr{}
	}
}

// String 返回地址文本；零值返回 "invalid IP"。
func (ip IPAddr) String() string {
	switch ip.ver {
	case V4:
		return ip.v4.String()
	case V6:
		return ip.v6.String()
	default:
		return "invalid IP"
	}
}
