package xip

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPv6Hextets(t *testing.T) {
	a := IPv6(0x2001, 0xdb8, 0, 0, 0, 0, 0, 1)
	assert.Equal(t, [8]uint16{0x2001, 0xdb8, 0, 0, 0, 0, 0, 1}, a.Hextets())
	assert.Equal(t, uint16(0xdb8), a.At(1))
	assert.Equal(t, "2001:db8::1", a.String())
	assert.Equal(t, a, IPv6From16(a.As16()))
}

func TestMapIPv4RoundTrip(t *testing.T) {
	v4 := IPv4(192, 0, 2, 1)
	m := MapIPv4(v4)
	assert.True(t, m.IsIPv4Mapped())
	assert.Equal(t, "::ffff:192.0.2.1", m.String())

	back, ok := m.ToIPv4()
	require.True(t, ok)
	assert.Equal(t, v4, back)
}

func TestIPv6ToIPv4(t *testing.T) {
	tests := []struct {
		name   string
		addr   AddrIPv6
		want   AddrIPv4
		wantOK bool
	}{
		{"unspecified", IPv6Unspecified, IPv4Unspecified, true},
		{"localhost", IPv6Localhost, IPv4Localhost, true},
		{"mapped", MapIPv4(IPv4(10, 1, 2, 3)), IPv4(10, 1, 2, 3), true},
		{"mapped zero", MapIPv4(IPv4Unspecified), IPv4Unspecified, true},
		{"documentation", IPv6(0x2001, 0xdb8, 0, 0, 0, 0, 0, 1), AddrIPv4{}, false},
		{"compat-like", IPv6(0, 0, 0, 0, 0, 0, 0x0a01, 0x0203), AddrIPv4{}, false},
		{"wrong marker", IPv6(0, 0, 0, 0, 0, 0xfffe, 0x0a01, 0x0203), AddrIPv4{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.addr.ToIPv4()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIPv6Ordering(t *testing.T) {
	a := IPv6(0, 0, 0, 1, 0, 0, 0, 0)
	b := IPv6(0, 0, 0, 0, 0xffff, 0xffff, 0xffff, 0xffff)
	assert.True(t, b.Less(a), "high 64 bits decide first")
	assert.Equal(t, 1, a.Compare(b))

	c := IPv6(0xffff, 0, 0, 0, 0, 0, 0, 0)
	assert.True(t, a.Less(c), "comparison is unsigned")
	assert.Equal(t, 0, c.Compare(IPv6(0xffff, 0, 0, 0, 0, 0, 0, 0)))
	assert.True(t, IPv6Unspecified.Less(IPv6Localhost))
}

func TestIPv6Predicates(t *testing.T) {
	tests := []struct {
		name string
		in   string
		fn   func(AddrIPv6) bool
		want bool
	}{
		{"localhost", "::1", AddrIPv6.IsLocalhost, true},
		{"not localhost", "::2", AddrIPv6.IsLocalhost, false},
		{"unspecified", "::", AddrIPv6.IsUnspecified, true},
		{"link local", "fe80::1", AddrIPv6.IsLinkLocal, true},
		{"link local upper bound", "febf::1", AddrIPv6.IsLinkLocal, true},
		{"not link local", "fec0::1", AddrIPv6.IsLinkLocal, false},
		{"unique local fc", "fc00::1", AddrIPv6.IsPrivate, true},
		{"unique local fd", "fd12:3456::1", AddrIPv6.IsPrivate, true},
		{"global not private", "2001:4860::8888", AddrIPv6.IsPrivate, false},
		{"documentation", "2001:db8:1::1", AddrIPv6.IsDocumentation, true},
		{"not documentation", "2001:db9::1", AddrIPv6.IsDocumentation, false},
		{"benchmarking", "2001:2::1", AddrIPv6.IsBenchmarking, true},
		{"benchmarking /48 end", "2001:2:0:ffff::1", AddrIPv6.IsBenchmarking, true},
		{"outside benchmarking", "2001:2:1::1", AddrIPv6.IsBenchmarking, false},
		{"mapped", "::ffff:1.2.3.4", AddrIPv6.IsIPv4Mapped, true},
		{"not mapped", "::1.2.3.4", AddrIPv6.IsIPv4Mapped, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, err := ParseIPv6(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, tt.fn(a))
		})
	}
}

func TestParseIPv6(t *testing.T) {
	a, err := ParseIPv6("2001:DB8::0:1")
	require.NoError(t, err)
	assert.Equal(t, "2001:db8::1", a.String())

	for _, s := range []string{"", "1.2.3.4", "fe80::1%eth0", "2001:db8::g", ":::"} {
		_, err := ParseIPv6(s)
		assert.ErrorIs(t, err, ErrInvalidAddress, s)
	}
}

func TestIPv6FromNetip(t *testing.T) {
	a, ok := IPv6FromNetip(netip.MustParseAddr("fe80::1%eth0"))
	require.True(t, ok)
	assert.Equal(t, IPv6(0xfe80, 0, 0, 0, 0, 0, 0, 1), a)

	_, ok = IPv6FromNetip(netip.MustParseAddr("192.0.2.1"))
	assert.False(t, ok)

	assert.True(t, IPv6Localhost.Netip().IsLoopback())
}

func TestIPv6Text(t *testing.T) {
	var a AddrIPv6
	require.NoError(t, a.UnmarshalText([]byte("::1")))
	assert.Equal(t, IPv6Localhost, a)

	text, err := a.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "::1", string(text))

	assert.ErrorIs(t, a.UnmarshalText([]byte("10.0.0.1")), ErrInvalidAddress)
}
