//go:build windows

package xsock

import "syscall"

const (
	afInet  = uint16(syscall.AF_INET)
	afInet6 = uint16(syscall.AF_INET6)
)
