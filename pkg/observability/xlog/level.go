package xlog

import (
	"fmt"
	"log/slog"
	"strings"
)

// ParseLevel 解析字符串为日志级别。
// 支持 debug/info/warn/warning/error（大小写不敏感，两端空白被忽略）。
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
	}
}
