// Package context provides the application context interface for termsync
// commands.
//
// Commands accept a Context rather than the concrete App so they can be
// tested with MockContext:
//
//	mock := &context.MockContext{
//	    SynchronizerFunc: func(opts ...termsync.Option) (*termsync.Synchronizer, error) {
//	        return termsync.New(reader, writer, opts...)
//	    },
//	}
//	cmd := sync.NewCommand(mock)
package context

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/termsync"
)

// Context provides what commands need from the application.
// All methods must be safe for concurrent access.
type Context interface {
	// Synchronizer returns a synchronizer wired to the configured QuickBooks
	// transport. opts are applied after the configured defaults.
	Synchronizer(opts ...termsync.Option) (*termsync.Synchronizer, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (table, json, yaml, wide, markdown).
	OutputFormat() string

	// Sheet returns the configured worksheet name.
	Sheet() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
