package transport

import (
	"context"
	"sync"
)

// MockTransport is a Transport whose behavior is set through function fields.
// A nil ConnectFunc hands out Session.
type MockTransport struct {
	ConnectFunc func(ctx context.Context) (Session, error)
	Session     *MockSession

	mu       sync.Mutex
	connects int
}

// Connect implements Transport.
func (m *MockTransport) Connect(ctx context.Context) (Session, error) {
	m.mu.Lock()
	m.connects++
	m.mu.Unlock()

	if m.ConnectFunc != nil {
		return m.ConnectFunc(ctx)
	}
	if m.Session == nil {
		m.Session = &MockSession{}
	}
	return m.Session, nil
}

// Connects returns how many times Connect was called.
func (m *MockTransport) Connects() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.connects
}

// MockSession records requests and answers them with ProcessFunc.
type MockSession struct {
	ProcessFunc func(ctx context.Context, request []byte) ([]byte, error)
	CloseFunc   func() error

	mu       sync.Mutex
	requests [][]byte
	closes   int
}

// Process implements Session.
func (m *MockSession) Process(ctx context.Context, request []byte) ([]byte, error) {
	m.mu.Lock()
	m.requests = append(m.requests, append([]byte(nil), request...))
	m.mu.Unlock()

	if m.ProcessFunc != nil {
		return m.ProcessFunc(ctx, request)
	}
	return nil, nil
}

// Close implements Session.
func (m *MockSession) Close() error {
	m.mu.Lock()
	m.closes++
	m.mu.Unlock()

	if m.CloseFunc != nil {
		return m.CloseFunc()
	}
	return nil
}

// Requests returns the documents passed to Process, in order.
func (m *MockSession) Requests() [][]byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([][]byte(nil), m.requests...)
}

// Closes returns how many times Close was called.
func (m *MockSession) Closes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closes
}
