//go:build unix

package xsock

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// 系统调用函数变量，测试中替换以覆盖错误路径（此类测试不可并行）。
var (
	getrlimit = unix.Getrlimit
	setrlimit = unix.Setrlimit
)

func raiseFileLimit(limit uint64) error {
	var rlimit unix.Rlimit
	if err := getrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		return fmt.Errorf("getrlimit RLIMIT_NOFILE: %w", err)
	}
	if rlimit.Cur >= limit {
		return nil
	}

	rlimit.Cur = limit
	if rlimit.Max < limit {
		rlimit.Max = limit
	}
	if err := setrlimit(unix.RLIMIT_NOFILE, &rlimit); err != nil {
		return fmt.Errorf("setrlimit RLIMIT_NOFILE: %w", err)
	}
	return nil
}
