// Package app provides the application context and dependency management
// for the termsync CLI. It centralizes configuration, logging and the
// QuickBooks transport, and hands them to commands through the
// cmd/termsync/context interface.
package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/agentstation/termsync"
	"github.com/agentstation/termsync/internal/quickbooks"
	"github.com/agentstation/termsync/internal/transport"
	"github.com/agentstation/termsync/pkg/errors"
)

// App represents the termsync application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	// Configuration
	config *Config

	// Logger
	logger *zerolog.Logger

	// Transport (lazy-initialized, singleton)
	mu        sync.RWMutex
	transport transport.Transport
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and the
// default config file; custom options are applied afterwards.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// Sheet returns the configured worksheet name.
func (a *App) Sheet() string {
	return a.config.Sheet
}

// Transport returns the QuickBooks transport, creating it lazily from the
// configuration. This is thread-safe and ensures only one instance is created.
func (a *App) Transport() (transport.Transport, error) {
	a.mu.RLock()
	if a.transport != nil {
		t := a.transport
		a.mu.RUnlock()
		return t, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	if a.transport != nil {
		return a.transport, nil
	}

	t, err := a.buildTransport()
	if err != nil {
		return nil, err
	}
	a.transport = t
	return t, nil
}

// Synchronizer returns a synchronizer reading and writing through the
// configured transport. opts override the configured defaults.
func (a *App) Synchronizer(opts ...termsync.Option) (*termsync.Synchronizer, error) {
	t, err := a.Transport()
	if err != nil {
		return nil, err
	}

	client, err := quickbooks.New(t, quickbooks.WithLogger(a.logger))
	if err != nil {
		return nil, errors.WrapResource("create", "quickbooks client", "", err)
	}

	base := []termsync.Option{
		termsync.WithLogger(a.logger),
		termsync.WithTimeout(a.config.Timeout),
	}
	return termsync.New(client, client, append(base, opts...)...)
}

// Shutdown releases application resources. Transport sessions are closed by
// the calls that open them.
func (a *App) Shutdown(_ context.Context) error {
	a.logger.Debug().Msg("Shutting down")
	return nil
}

func (a *App) buildTransport() (transport.Transport, error) {
	if err := a.config.Validate(); err != nil {
		return nil, err
	}

	app := transport.Application{
		ID:          a.config.AppID,
		Name:        a.config.AppName,
		CompanyFile: a.config.CompanyFile,
	}

	switch a.config.Transport {
	case TransportCOM:
		return transport.NewCOM(app), nil
	default:
		return transport.NewHTTP(a.config.GatewayURL,
			transport.WithApplication(app),
			transport.WithAPIKey(a.config.APIKey, transport.NewAuthenticator(a.config.APIKey, a.config.APIKeyHeader)),
		)
	}
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithTransport sets a custom transport (useful for testing).
func WithTransport(t transport.Transport) Option {
	return func(a *App) error {
		a.transport = t
		return nil
	}
}
