// Package quickbooks reads and creates standard payment terms in a
// QuickBooks company file over a qbXML transport.
package quickbooks

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/termsync/internal/transport"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/terms"
)

// Client lists and creates standard terms. Every call runs in its own
// transport session.
type Client struct {
	transport transport.Transport
	logger    *zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithLogger sets the client logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// New creates a client on top of t.
func New(t transport.Transport, opts ...Option) (*Client, error) {
	if t == nil {
		return nil, errors.NewValidationError("transport", nil, "is required")
	}
	c := &Client{transport: t, logger: logging.Default()}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// ReadTerms returns every standard term in the company file.
func (c *Client) ReadTerms(ctx context.Context) ([]terms.Term, error) {
	request, err := qbxml.BuildQuery()
	if err != nil {
		return nil, err
	}

	var list []terms.Term
	err = transport.WithSession(ctx, c.transport, func(s transport.Session) error {
		response, err := s.Process(ctx, request)
		if err != nil {
			return err
		}
		list, err = qbxml.ParseQueryResponse(response)
		return err
	})
	if err != nil {
		return nil, err
	}

	c.logger.Debug().Int("terms", len(list)).Msg("read QuickBooks terms")
	return list, nil
}

// CreateTerms adds list as one batch and returns one outcome per response
// item. Outcomes without a name get the name of the term they were
// requested for.
func (c *Client) CreateTerms(ctx context.Context, list []terms.Term) ([]qbxml.Outcome, error) {
	request, err := qbxml.BuildBatchAdd(list)
	if err != nil {
		return nil, err
	}

	var outcomes []qbxml.Outcome
	err = transport.WithSession(ctx, c.transport, func(s transport.Session) error {
		response, err := s.Process(ctx, request)
		if err != nil {
			return err
		}
		outcomes, err = qbxml.ParseBatchAddResponse(response)
		return err
	})
	if err != nil {
		return nil, err
	}

	qbxml.AttachNames(outcomes, list)
	if len(outcomes) != len(list) {
		c.logger.Warn().Int("requested", len(list)).Int("answered", len(outcomes)).Msg("response item count differs from request")
	}
	return outcomes, nil
}
