package xsock

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "unspecified", FamilyUnspecified.String())
	assert.Equal(t, "ipv4", FamilyIPv4.String())
	assert.Equal(t, "ipv6", FamilyIPv6.String())
	assert.Equal(t, "Family(9)", Family(9).String())

	assert.Equal(t, "stream", TypeStream.String())
	assert.Equal(t, "datagram", TypeDatagram.String())
	assert.Equal(t, "Type(0)", Type(0).String())

	assert.Equal(t, "tcp", ProtoTCP.String())
	assert.Equal(t, "udp", ProtoUDP.String())
	assert.Equal(t, "Proto(7)", Proto(7).String())

	for s, want := range map[State]string{
		StateUnbound:   "unbound",
		StateBound:     "bound",
		StateListening: "listening",
		StateConnected: "connected",
		StateClosed:    "closed",
		State(42):      "State(42)",
	} {
		assert.Equal(t, want, s.String())
	}
}

func TestEnumValidity(t *testing.T) {
	assert.True(t, FamilyUnspecified.valid())
	assert.True(t, FamilyIPv6.valid())
	assert.False(t, Family(3).valid())
	assert.False(t, Type(0).valid())
	assert.False(t, Type(3).valid())
	assert.False(t, Proto(0).valid())
	assert.False(t, Proto(3).valid())
}
