package xsock_test

import (
	"errors"
	"fmt"

	"github.com/omeyang/xsock/pkg/net/xip"
	"github.com/omeyang/xsock/pkg/net/xsock"
)

func ExampleParseSockAddr() {
	a, err := xsock.ParseSockAddr("[2001:db8::1]:443")
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	if v6, ok := a.V6(); ok {
		fmt.Println(v6.Addr(), v6.Port())
	}
	_, ok := a.V4()
	fmt.Println(ok)
	// Output:
	// 2001:db8::1 443
	// false
}

func ExampleSockAddrV4_Native() {
	a := xsock.NewSockAddrV4(xip.IPv4Localhost, 8080)
	b := a.Native().Bytes()
	fmt.Printf("% x\n", b[2:8])

	back, ok := xsock.SockAddrV4FromNative(a.Native())
	fmt.Println(back, ok)
	// Output:
	// 1f 90 7f 00 00 01
	// 127.0.0.1:8080 true
}

func ExampleOpError() {
	err := error(&xsock.OpError{Kind: xsock.ErrConnect, Op: "connect", Addr: "192.0.2.1:80", Err: errors.New("connection refused")})
	fmt.Println(err)
	fmt.Println(errors.Is(err, xsock.ErrSocket), errors.Is(err, xsock.ErrNet), errors.Is(err, xsock.ErrBind))
	// Output:
	// xsock: connect 192.0.2.1:80: connection refused
	// true true false
}
