package transport

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithSession(t *testing.T) {
	session := &MockSession{
		ProcessFunc: func(_ context.Context, request []byte) ([]byte, error) {
			return append([]byte("echo:"), request...), nil
		},
	}
	tr := &MockTransport{Session: session}

	var got []byte
	err := WithSession(context.Background(), tr, func(s Session) error {
		var err error
		got, err = s.Process(context.Background(), []byte("<QBXML/>"))
		return err
	})

	require.NoError(t, err)
	assert.Equal(t, "echo:<QBXML/>", string(got))
	assert.Equal(t, 1, tr.Connects())
	assert.Equal(t, 1, session.Closes())
}

func TestWithSessionClosesOnError(t *testing.T) {
	session := &MockSession{}
	tr := &MockTransport{Session: session}
	boom := errors.New("boom")

	err := WithSession(context.Background(), tr, func(Session) error { return boom })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, session.Closes())
}

func TestWithSessionJoinsCloseError(t *testing.T) {
	closeErr := errors.New("close failed")
	session := &MockSession{CloseFunc: func() error { return closeErr }}
	tr := &MockTransport{Session: session}
	boom := errors.New("boom")

	err := WithSession(context.Background(), tr, func(Session) error { return boom })
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, err, closeErr)

	err = WithSession(context.Background(), tr, func(Session) error { return nil })
	assert.ErrorIs(t, err, closeErr)
}

func TestWithSessionConnectFailure(t *testing.T) {
	connErr := errors.New("unreachable")
	tr := &MockTransport{ConnectFunc: func(context.Context) (Session, error) { return nil, connErr }}

	called := false
	err := WithSession(context.Background(), tr, func(Session) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, err, connErr)
	assert.False(t, called)
}
