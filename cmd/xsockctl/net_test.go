//go:build unix

package main

import (
	"bytes"
	"context"
	"log/slog"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/xsock/pkg/net/xip"
	"github.com/omeyang/xsock/pkg/net/xsock"
)

func newTestApp(t *testing.T) (*app, *bytes.Buffer) {
	t.Helper()
	require.NoError(t, xsock.Setup())
	t.Cleanup(func() { _ = xsock.Cleanup() })

	var out bytes.Buffer
	a := newApp(&out)
	a.cfg.Client.Timeout = 2 * time.Second
	a.cfg.Client.RetryDelay = time.Millisecond
	a.cfg.Server.IdleTimeout = 2 * time.Second
	return a, &out
}

func loopback(port uint16) xsock.SockAddr {
	return xsock.FromV4(xsock.NewSockAddrV4(xip.IPv4Localhost, port))
}

// startEcho 在系统分配的端口上启动 echo 服务，返回端口与停止函数。
func startEcho(t *testing.T, a *app, opts ...xsock.Option) (uint16, func()) {
	t.Helper()
	srv, err := xsock.NewTCPServer(0, a.sockOpts(opts...)...)
	require.NoError(t, err)
	require.NoError(t, srv.Listen(16))
	addr, err := srv.Addr()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.runEcho(ctx, srv, 2) }()

	return addr.Port(), func() {
		cancel()
		select {
		case err := <-done:
			assert.NoError(t, err)
		case <-time.After(10 * time.Second):
			t.Fatal("echo server did not stop")
		}
	}
}

func TestSendEcho(t *testing.T) {
	a, out := newTestApp(t)
	port, stop := startEcho(t, a)
	defer stop()

	service := strconv.Itoa(int(port))
	require.NoError(t, a.send(context.Background(), "127.0.0.1", service, []byte("hello"), 0))
	require.NoError(t, a.send(context.Background(), "127.0.0.1", service, []byte("again"), 0))
	assert.Equal(t, "hello\nagain\n", out.String())
}

func TestSendPeerRejected(t *testing.T) {
	a, out := newTestApp(t)
	set, err := xip.ParseSetString("10.0.0.0/8")
	require.NoError(t, err)
	port, stop := startEcho(t, a, xsock.WithPeerFilter(set))
	defer stop()

	err = a.send(context.Background(), "127.0.0.1", strconv.Itoa(int(port)), []byte("hello"), 0)
	if err == nil {
		assert.NotContains(t, out.String(), "hello", "rejected peer must not be echoed")
	}
}

func TestSendPeerRateLimited(t *testing.T) {
	a, out := newTestApp(t)
	a.cfg.Server.PeerRate = 1
	port, stop := startEcho(t, a)
	defer stop()

	service := strconv.Itoa(int(port))
	require.NoError(t, a.send(context.Background(), "127.0.0.1", service, []byte("first"), 0))
	err := a.send(context.Background(), "127.0.0.1", service, []byte("second"), 0)
	if err == nil {
		assert.NotContains(t, out.String(), "second", "second connection in the window must not be echoed")
	}
	assert.Contains(t, out.String(), "first\n")
}

// closedPort 返回一个当前没有监听者的本地端口。
func closedPort(t *testing.T) uint16 {
	t.Helper()
	sock, err := xsock.NewSocket(xsock.FamilyIPv4, xsock.TypeStream, xsock.ProtoTCP)
	require.NoError(t, err)
	require.NoError(t, sock.Bind(loopback(0)))
	addr, err := sock.Addr()
	require.NoError(t, err)
	require.NoError(t, sock.Close())
	return addr.Port()
}

func TestSendRetriesRefused(t *testing.T) {
	a, _ := newTestApp(t)
	var logs bytes.Buffer
	a.logger = slog.New(slog.NewTextHandler(&logs, nil))

	port := closedPort(t)
	err := a.send(context.Background(), "127.0.0.1", strconv.Itoa(int(port)), []byte("x"), 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, xsock.ErrConnect)
	assert.ErrorIs(t, err, syscall.ECONNREFUSED)
	retries := strings.Count(logs.String(), "connect retry")
	assert.GreaterOrEqual(t, retries, 2)
	assert.LessOrEqual(t, retries, 3)
}

func TestSendResolveFailureNotRetried(t *testing.T) {
	a, _ := newTestApp(t)
	err := a.send(context.Background(), "127.0.0.1", "no-such-service-xsock", []byte("x"), 3)
	assert.ErrorIs(t, err, xsock.ErrHostnameResolution)
}

func TestHead(t *testing.T) {
	a, out := newTestApp(t)

	ln, err := xsock.NewSocket(xsock.FamilyIPv4, xsock.TypeStream, xsock.ProtoTCP)
	require.NoError(t, err)
	defer ln.Close()
	require.NoError(t, ln.Bind(loopback(0)))
	require.NoError(t, ln.Listen(1))
	addr, err := ln.Addr()
	require.NoError(t, err)

	const response = "HTTP/1.1 200 OK\r\nContent-Length: 0\r\n\r\n"
	served := make(chan string, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			served <- err.Error()
			return
		}
		defer conn.Close()
		buf := make([]byte, 1024)
		n, _ := conn.Recv(buf)
		_, _ = conn.Send([]byte(response))
		served <- string(buf[:n])
	}()

	require.NoError(t, a.head(context.Background(), "127.0.0.1", addr.Port(), "/index.html"))

	request := <-served
	assert.True(t, strings.HasPrefix(request, "HEAD /index.html HTTP/1.1\r\n"), request)
	assert.Contains(t, request, "Host: 127.0.0.1\r\n")

	got := out.String()
	assert.Contains(t, got, "No. bytes sent: "+strconv.Itoa(len(request)))
	assert.Contains(t, got, "No. bytes received: "+strconv.Itoa(len(response)))
	assert.Contains(t, got, ">>>>> RESPONSE BEGIN >>>>>\n"+response+"<<<<< RESPONSE END <<<<<\n")
}

func TestUDPEcho(t *testing.T) {
	a, out := newTestApp(t)

	sock, err := xsock.NewSocket(xsock.FamilyIPv4, xsock.TypeDatagram, xsock.ProtoUDP, a.sockOpts()...)
	require.NoError(t, err)
	require.NoError(t, sock.Bind(loopback(0)))
	addr, err := sock.Addr()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.runUDPEcho(ctx, sock) }()

	require.NoError(t, a.udpSend("127.0.0.1", strconv.Itoa(int(addr.Port())), []byte("ping")))
	line := out.String()
	assert.True(t, strings.HasSuffix(line, ": ping\n"), line)
	assert.True(t, strings.HasPrefix(line, addr.String()), line)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("udp echo did not stop")
	}
	assert.Equal(t, xsock.StateClosed, sock.State())
}

func TestSplitTarget(t *testing.T) {
	tests := []struct {
		target  string
		host    string
		service string
		wantErr bool
	}{
		{"127.0.0.1:7000", "127.0.0.1", "7000", false},
		{"[::1]:http", "::1", "http", false},
		{"example.com:443", "example.com", "443", false},
		{"example.com", "", "", true},
		{":7000", "", "", true},
		{"127.0.0.1:", "", "", true},
		{"127.0.0.1:0", "", "", true},
		{"127.0.0.1:65536", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			host, service, err := splitTarget(tt.target)
			if tt.wantErr {
				var ue *usageError
				assert.ErrorAs(t, err, &ue)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.host, host)
			assert.Equal(t, tt.service, service)
		})
	}
}
