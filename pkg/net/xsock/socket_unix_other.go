//go:build unix && !linux

package xsock

import (
	"errors"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

const sendFlags = 0

// acceptPollInterval 是 accept 前单次 poll 的等待上限。
// 这些系统上 shutdown 不会唤醒阻塞在监听套接字上的 accept，分段等待让 Close 生效。
const acceptPollInterval = 250 * time.Millisecond

var (
	accept = unix.Accept
	poll   = unix.Poll
)

// waitAcceptable 等待 fd 可读。描述符被关闭后 poll 报告 POLLNVAL，返回 EBADF。
func waitAcceptable(fd int) error {
	fds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
	for {
		fds[0].Revents = 0
		n, err := poll(fds, int(acceptPollInterval/time.Millisecond))
		switch {
		case errors.Is(err, unix.EINTR):
			continue
		case err != nil:
			return err
		case n == 0:
			continue
		case fds[0].Revents&unix.POLLNVAL != 0:
			return unix.EBADF
		}
		return nil
	}
}

// openFD 在 ForkLock 保护下创建描述符并设置 close-on-exec，
// 防止并发 fork 的子进程继承它。
func openFD(domain, typ, proto int) (int, error) {
	syscall.ForkLock.RLock()
	defer syscall.ForkLock.RUnlock()
	fd, err := socket(domain, typ, proto)
	if err != nil {
		return -1, err
	}
	unix.CloseOnExec(fd)
	return fd, nil
}

func acceptFD(fd int) (int, unix.Sockaddr, error) {
	if err := waitAcceptable(fd); err != nil {
		return -1, nil, err
	}
	syscall.ForkLock.RLock()
	defer syscall.ForkLock.RUnlock()
	nfd, sa, err := accept(fd)
	if err != nil {
		return -1, nil, err
	}
	unix.CloseOnExec(nfd)
	return nfd, sa, nil
}

// sysClassify 由本地地址推断地址族，SO_TYPE 查询类型，协议由类型决定。
func sysClassify(fd int) (Family, Type, Proto, error) {
	sa, err := getsockname(fd)
	if err != nil {
		return 0, 0, 0, err
	}
	domain := -1
	switch sa.(type) {
	case *unix.SockaddrInet4:
		domain = unix.AF_INET
	case *unix.SockaddrInet6:
		domain = unix.AF_INET6
	}
	typ, err := getsockoptInt(fd, unix.SOL_SOCKET, unix.SO_TYPE)
	if err != nil {
		return 0, 0, 0, err
	}
	proto := -1
	switch typ {
	case unix.SOCK_STREAM:
		proto = unix.IPPROTO_TCP
	case unix.SOCK_DGRAM:
		proto = unix.IPPROTO_UDP
	}
	return classifyNative(domain, typ, proto)
}
