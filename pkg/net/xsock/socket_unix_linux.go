//go:build linux

package xsock

import "golang.org/x/sys/unix"

// sendFlags 避免写入已关闭的连接时产生 SIGPIPE。
const sendFlags = unix.MSG_NOSIGNAL

var accept4 = unix.Accept4

func openFD(domain, typ, proto int) (int, error) {
	return socket(domain, typ|unix.SOCK_CLOEXEC, proto)
}

func acceptFD(fd int) (int, unix.Sockaddr, error) {
	return accept4(fd, unix.SOCK_CLOEXEC)
}

// sysClassify 通过 SO_DOMAIN / SO_TYPE / SO_PROTOCOL 查询描述符分类。
func sysClassify(fd int) (Family, Type, Proto, error) {
	domain, err := getsockoptInt(fd, unix.SOL_SOCKET, unix.SO_DOMAIN)
	if err != nil {
		return 0, 0, 0, err
	}
	typ, err := getsockoptInt(fd, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil {
		return 0, 0, 0, err
	}
	proto, err := getsockoptInt(fd, unix.SOL_SOCKET, unix.SO_PROTOCOL)
	if err != nil {
		return 0, 0, 0, err
	}
	return classifyNative(domain, typ, proto)
}
