package xsock

import (
	"encoding/binary"
	"fmt"
)

// NativeSockAddrSize 是原生地址缓冲区大小，取 128 字节以容纳任一地址族。
const NativeSockAddrSize = 128

// 原生缓冲区字段偏移。
const (
	offFamily   = 0
	offPort     = 2
	offV4Addr   = 4
	offV6Flow   = 4
	offV6Addr   = 8
	offV6Scope  = 24
	sizeV4Addr  = 4
	sizeV6Addr  = 16
	minNativeSz = offPort
)

// NativeSockAddr 是套接字地址的定长字节表示。
//
// 这是本包自有的、以地址族打标签的编码，不是平台的 sockaddr 结构：
// BSD 系统的 sockaddr 以一字节长度加一字节地址族开头，与此布局不同。
// 缓冲区从不直接交给内核，系统调用路径经由 x/sys/unix 的 Sockaddr 转换。
//
// 布局：
//   - [0:2]  地址族，主机字节序（平台的 AF_INET / AF_INET6 值）
//   - [2:4]  端口，网络字节序
//   - IPv4: [4:8] 地址
//   - IPv6: [4:8] flowinfo（恒为 0），[8:24] 地址，[24:28] scope id（恒为 0）
//
// 其余字节为 0。
type NativeSockAddr struct {
	buf [NativeSockAddrSize]byte
}

// NativeSockAddrFromBytes 从字节切片构造原生地址，不足 128 字节的部分补零。
// 长度小于 2（无法容纳地址族）或大于 128 时返回 [ErrInvalidNative]。
func NativeSockAddrFromBytes(b []byte) (NativeSockAddr, error) {
	if len(b) < minNativeSz || len(b) > NativeSockAddrSize {
		return NativeSockAddr{}, fmt.Errorf("%w: length %d", ErrInvalidNative, len(b))
	}
	var n NativeSockAddr
	copy(n.buf[:], b)
	return n, nil
}

// Family 返回地址族判别值。
func (n NativeSockAddr) Family() uint16 {
	return binary.NativeEndian.Uint16(n.buf[offFamily:])
}

// Bytes 返回缓冲区的副本。
func (n NativeSockAddr) Bytes() []byte {
	b := make([]byte, NativeSockAddrSize)
	copy(b, n.buf[:])
	return b
}

func (n NativeSockAddr) port() uint16 {
	return binary.BigEndian.Uint16(n.buf[offPort:])
}

func (n *NativeSockAddr) setHeader(family uint16, port uint16) {
	binary.NativeEndian.PutUint16(n.buf[offFamily:], family)
	binary.BigEndian.PutUint16(n.buf[offPort:], port)
}
