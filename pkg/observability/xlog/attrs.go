package xlog

import "log/slog"

// 常用属性 key。
const (
	KeyError     = "error"
	KeyComponent = "component"
	KeyOperation = "operation"
	KeyConnID    = "conn_id"
	KeyAddr      = "addr"
)

// Err 创建错误属性，err 为 nil 时返回空属性（被 handler 忽略）。
func Err(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.String(KeyError, err.Error())
}

// Component 创建组件名属性。
func Component(name string) slog.Attr {
	return slog.String(KeyComponent, name)
}

// ConnID 创建连接标识属性。
func ConnID(id string) slog.Attr {
	return slog.String(KeyConnID, id)
}

// Addr 创建地址属性，接受任意 fmt.Stringer（如 xsock.SockAddr）。
func Addr(addr interface{ String() string }) slog.Attr {
	return slog.String(KeyAddr, addr.String())
}
