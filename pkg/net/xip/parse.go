package xip

import (
	"fmt"
	"net/netip"
	"strings"

	"go4.org/netipx"
)

// ParseRange 解析一段地址范围，支持：
//   - 单 IP: "192.0.2.1"
//   - CIDR: "192.0.2.0/24"、"2001:db8::/32"
//   - 掩码: "192.0.2.0/255.255.255.0"（仅 IPv4）
//   - 显式范围: "192.0.2.1-192.0.2.100"
//
// 首尾空白被忽略。含 zone 的输入返回 [ErrInvalidRange]，
// 因为 [netipx.IPSet] 会丢弃 zone，匹配结果不可信。
func ParseRange(s string) (netipx.IPRange, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "%") {
		return netipx.IPRange{}, fmt.Errorf("%w: zone ID is not supported: %s", ErrInvalidRange, s)
	}

	if lo, hi, ok := strings.Cut(s, "-"); ok {
		return parseBounds(strings.TrimSpace(lo), strings.TrimSpace(hi))
	}

	if addrPart, maskPart, ok := strings.Cut(s, "/"); ok {
		addrPart, maskPart = strings.TrimSpace(addrPart), strings.TrimSpace(maskPart)
		if strings.Contains(maskPart, ".") {
			return parseMasked(addrPart, maskPart)
		}
		prefix, err := netip.ParsePrefix(addrPart + "/" + maskPart)
		if err != nil {
			return netipx.IPRange{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
		}
		return netipx.RangeOfPrefix(prefix.Masked()), nil
	}

	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: %w", ErrInvalidRange, err)
	}
	return netipx.IPRangeFrom(addr, addr), nil
}

// parseBounds 解析 "start-end" 两端，两端须同族且 start <= end。
func parseBounds(lo, hi string) (netipx.IPRange, error) {
	start, err := netip.ParseAddr(lo)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid range start %q: %w", ErrInvalidRange, lo, err)
	}
	end, err := netip.ParseAddr(hi)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid range end %q: %w", ErrInvalidRange, hi, err)
	}
	r := netipx.IPRangeFrom(start, end)
	if !r.IsValid() {
		return netipx.IPRange{}, fmt.Errorf("%w: %s-%s", ErrInvalidRange, lo, hi)
	}
	return r, nil
}

// parseMasked 解析 "addr/255.255.255.0" 形式，掩码必须连续。
func parseMasked(addrStr, maskStr string) (netipx.IPRange, error) {
	addr, err := ParseIPv4(addrStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: mask notation requires IPv4 address: %w", ErrInvalidRange, err)
	}
	mask, err := ParseIPv4(maskStr)
	if err != nil {
		return netipx.IPRange{}, fmt.Errorf("%w: invalid mask: %w", ErrInvalidRange, err)
	}

	m := mask.Uint32()
	if inv := ^m; inv&(inv+1) != 0 {
		return netipx.IPRange{}, fmt.Errorf("%w: non-contiguous mask: %s", ErrInvalidRange, maskStr)
	}
	start := addr.Uint32() & m
	return netipx.IPRangeFrom(
		IPv4FromUint32(start).Netip(),
		IPv4FromUint32(start|^m).Netip(),
	), nil
}

// ParseSet 解析多段范围并合并为 [*netipx.IPSet]。空输入得到空集合。
func ParseSet(specs []string) (*netipx.IPSet, error) {
	var b netipx.IPSetBuilder
	for _, s := range specs {
		r, err := ParseRange(s)
		if err != nil {
			return nil, fmt.Errorf("parse range %q: %w", s, err)
		}
		b.AddRange(r)
	}
	set, err := b.IPSet()
	if err != nil {
		return nil, fmt.Errorf("xip: build set: %w", err)
	}
	return set, nil
}

// ParseSetString 按逗号拆分 s 后调用 [ParseSet]，空段被忽略。
func ParseSetString(s string) (*netipx.IPSet, error) {
	var specs []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			specs = append(specs, part)
		}
	}
	return ParseSet(specs)
}
