package xip

import "errors"

var (
	// ErrInvalidAddress 表示无效的 IP 地址字符串。
	ErrInvalidAddress = errors.New("xip: invalid IP address")

	// ErrInvalidRange 表示无效的 IP 范围格式。
	ErrInvalidRange = errors.New("xip: invalid IP range")

	// ErrWrongVersion 表示以错误的版本投影 [IPAddr]（如对 IPv6 地址调用 MustV4）。
	// 这是编程错误，不属于网络错误体系。
	ErrWrongVersion = errors.New("xip: IPAddr accessed as wrong version")
)
