package context

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/termsync"
	"github.com/agentstation/termsync/pkg/constants"
)

// MockContext provides a mock implementation of Context for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type MockContext struct {
	SynchronizerFunc func(opts ...termsync.Option) (*termsync.Synchronizer, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	SheetFunc        func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Synchronizer returns a synchronizer using the mock function or nil.
func (m *MockContext) Synchronizer(opts ...termsync.Option) (*termsync.Synchronizer, error) {
	if m.SynchronizerFunc != nil {
		return m.SynchronizerFunc(opts...)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *MockContext) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns output format using the mock function or "table".
func (m *MockContext) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// Sheet returns the sheet name using the mock function or the default sheet.
func (m *MockContext) Sheet() string {
	if m.SheetFunc != nil {
		return m.SheetFunc()
	}
	return constants.DefaultSheet
}

// Version returns version using the mock function or "dev".
func (m *MockContext) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *MockContext) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *MockContext) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "unknown".
func (m *MockContext) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}

var _ Context = (*MockContext)(nil)
