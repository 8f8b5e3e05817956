package xsock

import "strconv"

// Family 是套接字的地址族。
type Family uint8

const (
	// FamilyUnspecified 表示未指定地址族。
	FamilyUnspecified Family = iota
	// FamilyIPv4 表示 IPv4。
	FamilyIPv4
	// FamilyIPv6 表示 IPv6。
	FamilyIPv6
)

// String 返回地址族名称。
func (f Family) String() string {
	switch f {
	case FamilyUnspecified:
		return "unspecified"
	case FamilyIPv4:
		return "ipv4"
	case FamilyIPv6:
		return "ipv6"
	default:
		return "Family(" + strconv.Itoa(int(f)) + ")"
	}
}

func (f Family) valid() bool {
	return f <= FamilyIPv6
}

// Type 是套接字类型。零值无效。
type Type uint8

const (
	// TypeStream 表示面向连接的字节流。
	TypeStream Type = iota + 1
	// TypeDatagram 表示无连接的数据报。
	TypeDatagram
)

// String 返回类型名称。
func (t Type) String() string {
	switch t {
	case TypeStream:
		return "stream"
	case TypeDatagram:
		return "datagram"
	default:
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
}

func (t Type) valid() bool {
	return t == TypeStream || t == TypeDatagram
}

// Proto 是传输层协议。零值无效。
type Proto uint8

const (
	// ProtoTCP 表示 TCP。
	ProtoTCP Proto = iota + 1
	// ProtoUDP 表示 UDP。
	ProtoUDP
)

// String 返回协议名称。
func (p Proto) String() string {
	switch p {
	case ProtoTCP:
		return "tcp"
	case ProtoUDP:
		return "udp"
	default:
		return "Proto(" + strconv.Itoa(int(p)) + ")"
	}
}

func (p Proto) valid() bool {
	return p == ProtoTCP || p == ProtoUDP
}

// State 是套接字在生命周期状态机中的位置。
//
//	Unbound ──Bind──▶ Bound ──Listen──▶ Listening
//	   │                │
//	   └────Connect─────┴──▶ Connected
//
// 任意状态 Close 后进入 Closed；Accept 返回的套接字处于 Connected。
type State uint8

const (
	// StateUnbound 表示新建未绑定。
	StateUnbound State = iota
	// StateBound 表示已绑定本地地址。
	StateBound
	// StateListening 表示正在监听。
	StateListening
	// StateConnected 表示已连接对端。
	StateConnected
	// StateClosed 表示已释放描述符。
	StateClosed
)

// String 返回状态名称。
func (s State) String() string {
	switch s {
	case StateUnbound:
		return "unbound"
	case StateBound:
		return "bound"
	case StateListening:
		return "listening"
	case StateConnected:
		return "connected"
	case StateClosed:
		return "closed"
	default:
		return "State(" + strconv.Itoa(int(s)) + ")"
	}
}
