package termsync

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
)

// Option is a function that configures a Synchronizer
type Option func(*config) error

type config struct {
	dryRun  bool
	timeout time.Duration
	logger  *zerolog.Logger
	runID   func() string
}

func defaultConfig() *config {
	return &config{
		logger: logging.Default(),
		runID:  uuid.NewString,
	}
}

// WithDryRun reconciles without creating anything remotely
func WithDryRun(enabled bool) Option {
	return func(c *config) error {
		c.dryRun = enabled
		return nil
	}
}

// WithTimeout bounds each Synchronize call. Zero means no limit.
func WithTimeout(timeout time.Duration) Option {
	return func(c *config) error {
		if timeout < 0 {
			return errors.NewValidationError("timeout", timeout, "must not be negative")
		}
		c.timeout = timeout
		return nil
	}
}

// WithLogger sets the logger for sync runs
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		if logger == nil {
			return errors.NewValidationError("logger", nil, "must not be nil")
		}
		c.logger = logger
		return nil
	}
}

// WithRunID replaces the generator of run ids, uuid.NewString by default
func WithRunID(fn func() string) Option {
	return func(c *config) error {
		if fn == nil {
			return errors.NewValidationError("run id generator", nil, "must not be nil")
		}
		c.runID = fn
		return nil
	}
}
