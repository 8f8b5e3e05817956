package xsock

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOpErrorHierarchy(t *testing.T) {
	leaves := []error{ErrConnect, ErrClose, ErrBind, ErrListen, ErrAccept, ErrSend, ErrReceive}
	for _, kind := range leaves {
		t.Run(kind.Error(), func(t *testing.T) {
			err := opError(kind, "op", "", errors.New("boom"))
			assert.ErrorIs(t, err, kind)
			assert.ErrorIs(t, err, ErrSocket)
			assert.ErrorIs(t, err, ErrNet)
			assert.NotErrorIs(t, err, ErrHostnameResolution)
			for _, other := range leaves {
				if other != kind {
					assert.NotErrorIs(t, err, other)
				}
			}
		})
	}

	err := opError(ErrHostnameResolution, "resolve", "example.invalid", errors.New("no such host"))
	assert.ErrorIs(t, err, ErrHostnameResolution)
	assert.ErrorIs(t, err, ErrNet)
	assert.NotErrorIs(t, err, ErrSocket)

	err = opError(ErrSocket, "socket", "", errors.New("boom"))
	assert.ErrorIs(t, err, ErrNet)
	assert.NotErrorIs(t, err, ErrConnect)
}

func TestOpErrorUnwrap(t *testing.T) {
	cause := errors.New("cause")
	err := fmt.Errorf("wrapped: %w", opError(ErrSend, "send", "", cause))

	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrSend)

	var opErr *OpError
	if assert.ErrorAs(t, err, &opErr) {
		assert.Equal(t, "send", opErr.Op)
		assert.Equal(t, ErrSend, opErr.Kind)
	}
}

func TestOpErrorMessage(t *testing.T) {
	assert.Equal(t, "xsock: connect 127.0.0.1:80: refused",
		opError(ErrConnect, "connect", "127.0.0.1:80", errors.New("refused")).Error())
	assert.Equal(t, "xsock: listen: bad",
		opError(ErrListen, "listen", "", errors.New("bad")).Error())
	assert.Equal(t, "xsock: close", opError(ErrClose, "close", "", nil).Error())
}

func TestProgrammingErrorsOutsideTaxonomy(t *testing.T) {
	for _, err := range []error{ErrWrongFamily, ErrNoDescriptor, ErrNotSetup, ErrInvalidClassification} {
		assert.NotErrorIs(t, err, ErrNet)
	}
}
