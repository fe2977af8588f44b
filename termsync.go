// Package termsync reconciles payment terms kept in a spreadsheet with the
// standard terms of a QuickBooks company file and creates the missing ones.
//
// A Synchronizer reads the remote terms, compares them with the source by id
// and, unless running dry, creates every source term the remote side lacks
// in a single batch:
//
//	sync, err := termsync.New(client, client, termsync.WithDryRun(false))
//	if err != nil {
//		return err
//	}
//	result, err := sync.Synchronize(ctx, source)
//
// Per-term failures are reported in the Result, never as an error.
package termsync

import (
	"context"

	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/terms"
)

// Reader lists the terms that exist on the remote side.
type Reader interface {
	ReadTerms(ctx context.Context) ([]terms.Term, error)
}

// Writer creates terms on the remote side and reports one outcome per term.
type Writer interface {
	CreateTerms(ctx context.Context, list []terms.Term) ([]qbxml.Outcome, error)
}

// Synchronizer runs sync passes against one reader and writer pair.
// It is safe for concurrent use.
type Synchronizer struct {
	reader Reader
	writer Writer
	config *config
	hooks  *hooks
}

// New creates a Synchronizer.
func New(reader Reader, writer Writer, opts ...Option) (*Synchronizer, error) {
	if reader == nil {
		return nil, errors.NewValidationError("reader", nil, "is required")
	}
	if writer == nil {
		return nil, errors.NewValidationError("writer", nil, "is required")
	}

	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errors.NewConfigError("synchronizer", "applying options", err)
		}
	}

	return &Synchronizer{
		reader: reader,
		writer: writer,
		config: cfg,
		hooks:  newHooks(),
	}, nil
}
