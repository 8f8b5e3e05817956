package xsock

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/omeyang/xsock/pkg/net/xip"
)

// 解析函数变量，测试中替换以注入候选列表。
var (
	lookupIPAddr = net.DefaultResolver.LookupIPAddr
	lookupPort   = net.DefaultResolver.LookupPort
)

// Resolve 解析 hostname，返回解析器顺序中第一个 IPv4 或 IPv6 候选。
//
// service 为空表示不指定服务；非空时必须能解析为 TCP 端口（如 "http" 或 "8080"），
// 否则解析失败。失败返回的错误匹配 [ErrHostnameResolution] 与 [ErrNet]。
// 调用阻塞直至系统解析器返回。
func Resolve(hostname, service string) (xip.IPAddr, error) {
	return ResolveContext(context.Background(), hostname, service)
}

// ResolveContext 与 [Resolve] 相同，ctx 控制解析的取消与超时。
func ResolveContext(ctx context.Context, hostname, service string) (xip.IPAddr, error) {
	all, _, err := resolve(ctx, hostname, service)
	if err != nil {
		return xip.IPAddr{}, err
	}
	return all[0], nil
}

// ResolveAll 返回全部 IPv4 / IPv6 候选，保持解析器顺序。
func ResolveAll(hostname, service string) ([]xip.IPAddr, error) {
	all, _, err := resolve(context.Background(), hostname, service)
	return all, err
}

// ResolveSockAddr 解析 hostname 与 service，返回第一个候选与服务端口组成的套接字地址。
// service 为空时端口为 0。
func ResolveSockAddr(hostname, service string) (SockAddr, error) {
	all, port, err := resolve(context.Background(), hostname, service)
	if err != nil {
		return SockAddr{}, err
	}
	return NewSockAddr(all[0], port), nil
}

func resolve(ctx context.Context, hostname, service string) ([]xip.IPAddr, uint16, error) {
	if !IsSetup() {
		return nil, 0, ErrNotSetup
	}
	fail := func(err error) ([]xip.IPAddr, uint16, error) {
		return nil, 0, opError(ErrHostnameResolution, "resolve", hostname, err)
	}

	var port uint16
	if service != "" {
		p, err := lookupPort(ctx, "tcp", service)
		if err != nil {
			return fail(err)
		}
		if p < 0 || p > 0xFFFF {
			return fail(fmt.Errorf("service %q resolved to out-of-range port %d", service, p))
		}
		port = uint16(p)
	}

	candidates, err := lookupIPAddr(ctx, hostname)
	if err != nil {
		return fail(err)
	}
	all := make([]xip.IPAddr, 0, len(candidates))
	for _, c := range candidates {
		addr, ok := netipFromIP(c.IP)
		if !ok {
			continue
		}
		if ip, ok := xip.IPAddrFromNetip(addr); ok {
			all = append(all, ip)
		}
	}
	if len(all) == 0 {
		return fail(fmt.Errorf("no IPv4 or IPv6 address for %q", hostname))
	}
	return all, port, nil
}

// netipFromIP 将 net.IP 转换为 netip.Addr，16 字节形式的 IPv4 地址还原为 4 字节。
func netipFromIP(ip net.IP) (netip.Addr, bool) {
	if v4 := ip.To4(); v4 != nil {
		return netip.AddrFromSlice(v4)
	}
	return netip.AddrFromSlice(ip)
}
