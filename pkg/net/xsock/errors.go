package xsock

import (
	"errors"
	"strings"
)

// 网络错误体系。每个失败都以 [*OpError] 返回，errors.Is 可匹配其类别及全部祖先：
//
//	ErrNet
//	├── ErrHostnameResolution
//	└── ErrSocket
//	    ├── ErrConnect
//	    ├── ErrClose
//	    ├── ErrBind
//	    ├── ErrListen
//	    ├── ErrAccept
//	    ├── ErrSend
//	    └── ErrReceive
var (
	// ErrNet 是所有网络错误的根类别。
	ErrNet = errors.New("xsock: network error")

	// ErrHostnameResolution 表示主机名解析失败。
	ErrHostnameResolution = errors.New("xsock: hostname resolution failed")

	// ErrSocket 表示套接字层错误（创建、选项、地址查询等）。
	ErrSocket = errors.New("xsock: socket error")

	// ErrConnect 表示 connect 失败。
	ErrConnect = errors.New("xsock: connect failed")

	// ErrClose 表示 close 失败。
	ErrClose = errors.New("xsock: close failed")

	// ErrBind 表示 bind 失败。
	ErrBind = errors.New("xsock: bind failed")

	// ErrListen 表示 listen 失败。
	ErrListen = errors.New("xsock: listen failed")

	// ErrAccept 表示 accept 失败。
	ErrAccept = errors.New("xsock: accept failed")

	// ErrSend 表示发送失败。
	ErrSend = errors.New("xsock: send failed")

	// ErrReceive 表示接收失败。
	ErrReceive = errors.New("xsock: receive failed")
)

// 编程错误与前置条件错误，不属于网络错误体系。
var (
	// ErrWrongFamily 表示以错误的地址族投影 [SockAddr]。
	ErrWrongFamily = errors.New("xsock: SockAddr accessed as wrong family")

	// ErrNoDescriptor 表示套接字不持有描述符（已关闭或已被 Move）。
	ErrNoDescriptor = errors.New("xsock: socket has no descriptor")

	// ErrNotSetup 表示在 [Setup] / [Cleanup] 区间之外使用网络功能。
	ErrNotSetup = errors.New("xsock: networking not set up")

	// ErrInvalidClassification 表示 Family / Type / Proto 取值无效。
	ErrInvalidClassification = errors.New("xsock: invalid socket classification")

	// ErrUnsupportedAddress 表示操作系统返回的地址无法解码为 IPv4 / IPv6。
	ErrUnsupportedAddress = errors.New("xsock: unsupported socket address")

	// ErrPeerRejected 表示对端地址不在 [WithPeerFilter] 允许的集合内。
	ErrPeerRejected = errors.New("xsock: peer rejected by filter")

	// ErrInvalidNative 表示原生地址缓冲区长度无效。
	ErrInvalidNative = errors.New("xsock: invalid native socket address")

	// ErrUnsupportedPlatform 表示当前平台不支持套接字操作。
	ErrUnsupportedPlatform = errors.New("xsock: unsupported platform")
)

// parentOf 定义错误类别的父子关系。
var parentOf = map[error]error{
	ErrHostnameResolution: ErrNet,
	ErrSocket:             ErrNet,
	ErrConnect:            ErrSocket,
	ErrClose:              ErrSocket,
	ErrBind:               ErrSocket,
	ErrListen:             ErrSocket,
	ErrAccept:             ErrSocket,
	ErrSend:               ErrSocket,
	ErrReceive:            ErrSocket,
}

// OpError 描述一次失败的网络操作。
//
// errors.Is(err, k) 在 k 为 Kind 或其任一祖先类别时返回 true；
// Unwrap 返回底层原因（通常是 unix.Errno），因此
// errors.Is(err, unix.ECONNREFUSED) 同样可用。
type OpError struct {
	// Kind 是错误类别，取值为本包的网络错误哨兵之一。
	Kind error
	// Op 是操作名，如 "connect"、"recvfrom"。
	Op string
	// Addr 是相关地址的文本形式，可为空。
	Addr string
	// Err 是底层原因。
	Err error
}

// Error 返回形如 "xsock: connect 127.0.0.1:80: connection refused" 的描述。
func (e *OpError) Error() string {
	var b strings.Builder
	b.WriteString("xsock: ")
	b.WriteString(e.Op)
	if e.Addr != "" {
		b.WriteByte(' ')
		b.WriteString(e.Addr)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Unwrap 返回底层原因。
func (e *OpError) Unwrap() error {
	return e.Err
}

// Is 报告 target 是否为 e 的类别或其祖先类别。
func (e *OpError) Is(target error) bool {
	for k := e.Kind; k != nil; k = parentOf[k] {
		if k == target {
			return true
		}
	}
	return false
}

func opError(kind error, op, addr string, err error) *OpError {
	return &OpError{Kind: kind, Op: op, Addr: addr, Err: err}
}
