// Package xip 提供强类型的 IPv4 / IPv6 地址值。
//
// 与 [net/netip] 不同，xip 将两个版本拆分为独立类型 [AddrIPv4]、[AddrIPv6]，
// 并通过带标签的联合类型 [IPAddr] 统一表示。所有值类型都是可比较的，
// 可直接作为 map key；排序由地址的无符号整数值定义。
//
// # 地址值
//
//	a := xip.IPv4(192, 0, 2, 1)
//	fmt.Println(a.Uint32())            // 3221225985
//	m := xip.MapIPv4(a)                // ::ffff:192.0.2.1
//	back, ok := m.ToIPv4()             // 192.0.2.1, true
//
// # 联合类型
//
//	ip, _ := xip.ParseIPAddr("2001:db8::1")
//	if v6, ok := ip.V6(); ok {
//	    fmt.Println(v6.IsDocumentation()) // true
//	}
//
// 以错误版本调用 MustV4 / MustV6 会 panic，错误包装 [ErrWrongVersion]。
//
// # 范围与集合
//
// [ParseRange] 和 [ParseSet] 基于 [go4.org/netipx]，接受单 IP、CIDR、
// IPv4 掩码和 "start-end" 四种写法，常用于访问控制白名单。
package xip
