//go:build !unix && !windows

package xsock

// 无系统定义时采用 Linux 取值。
const (
	afInet  uint16 = 2
	afInet6 uint16 = 10
)
