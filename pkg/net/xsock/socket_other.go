//go:build !unix

package xsock

import "time"

func sysSocket(Family, Type, Proto) (int, error) { return -1, ErrUnsupportedPlatform }
func sysConnect(int, SockAddr) error { return ErrUnsupportedPlatform }
func sysBind(int, SockAddr) error { return ErrUnsupportedPlatform }
func sysListen(int, int) error { return ErrUnsupportedPlatform }
func sysAccept(int) (int, SockAddr, error) { return -1, SockAddr{}, ErrUnsupportedPlatform }
func sysClassify(int) (Family, Type, Proto, error) { return 0, 0, 0, ErrUnsupportedPlatform }
func sysRelease(int) error { return ErrUnsupportedPlatform }
func sysSend(int, []byte) (int, error) { return 0, ErrUnsupportedPlatform }
func sysSendTo(int, []byte, SockAddr) (int, error) { return 0, ErrUnsupportedPlatform }
func sysRecv(int, []byte) (int, error) { return 0, ErrUnsupportedPlatform }
func sysRecvFrom(int, []byte) (int, SockAddr, error) { return 0, SockAddr{}, ErrUnsupportedPlatform }
func sysSockname(int) (SockAddr, error) { return SockAddr{}, ErrUnsupportedPlatform }
func sysPeername(int) (SockAddr, error) { return SockAddr{}, ErrUnsupportedPlatform }
func sysSetReuseAddr(int, bool) error { return ErrUnsupportedPlatform }
func sysSetTimeout(int, bool, time.Duration) error { return ErrUnsupportedPlatform }
