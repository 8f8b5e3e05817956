// Package xsock 提供阻塞式 IPv4 / IPv6 套接字及其地址模型。
//
// # 生命周期
//
// 所有网络操作必须位于 [Setup] 与 [Cleanup] 之间：
//
//	if err := xsock.Setup(xsock.WithFileLimit(65536)); err != nil {
//	    return err
//	}
//	defer xsock.Cleanup()
//
// # 地址
//
// [SockAddrV4]、[SockAddrV6] 与带标签的联合 [SockAddr] 描述 IP + 端口；
// [NativeSockAddr] 是 128 字节的原生编码（地址族为主机字节序，端口与地址为网络字节序）。
// [Resolve] 通过系统解析器将主机名解析为 [xip.IPAddr]。
//
// # 套接字
//
// [Socket] 独占一个描述符，状态机为 Unbound → Bound → Listening，
// Unbound / Bound → Connected，任意状态 → Closed。每个操作都是一次阻塞系统调用，
// 不做部分传输重试；需要完整写出时使用 [Socket.Write]。
//
//	srv, err := xsock.NewTCPServer(8080, xsock.WithReuseAddr())
//	if err != nil {
//	    return err
//	}
//	defer srv.Close()
//	if err := srv.Listen(128); err != nil {
//	    return err
//	}
//	conn, err := srv.Accept()
//
// # 错误
//
// 网络失败以 [*OpError] 返回，errors.Is 可按类别层级匹配（如 [ErrConnect] 同时匹配
// [ErrSocket] 与 [ErrNet]），也可匹配底层 errno。
//
// # 平台
//
// 实现基于 golang.org/x/sys/unix；非 unix 平台上所有套接字操作返回 [ErrUnsupportedPlatform]。
package xsock
