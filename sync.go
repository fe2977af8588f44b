package termsync

import (
	"context"

	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/reconcile"
	"github.com/agentstation/termsync/pkg/terms"
)

// Synchronize reconciles source with the remote terms and creates the terms
// missing remotely.
//
// An empty source fails with *errors.EmptySourceError before any remote
// call. The writer is called at most once, and not at all when nothing is
// missing or the Synchronizer runs dry. Reader and writer errors are
// returned as they are.
func (s *Synchronizer) Synchronize(ctx context.Context, source []terms.Term) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Step 1: nothing to reconcile
	if len(source) == 0 {
		return nil, errors.NewEmptySourceError("")
	}

	// Step 2: run scope
	if s.config.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.timeout)
		defer cancel()
	}
	runID := s.config.runID()
	ctx = logging.WithRunID(logging.WithLogger(ctx, s.config.logger), runID)
	logger := logging.Ctx(ctx)

	// Step 3: remote terms
	remote, err := s.reader.ReadTerms(ctx)
	if err != nil {
		return nil, err
	}

	// Step 4: compare by id
	comparison := reconcile.Reconcile(source, remote)
	logger.Info().
		Int("source", len(source)).
		Int("remote", len(remote)).
		Int("matched", comparison.Matched()).
		Int("renamed", len(comparison.Renamed())).
		Int("missing_in_remote", len(comparison.MissingInRemote())).
		Int("missing_in_source", len(comparison.MissingInSource())).
		Msg("Terms reconciled")

	result := &Result{
		RunID:      runID,
		Comparison: comparison,
		DryRun:     s.config.dryRun,
	}

	// Step 5: create what is missing
	missing := comparison.MissingInRemote()
	switch {
	case len(missing) == 0:
		logger.Info().Msg("No terms to create")
		return result, nil
	case s.config.dryRun:
		logger.Info().Bool("dry_run", true).Int("would_create", len(missing)).Msg("Dry run completed - no terms created")
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	outcomes, err := s.writer.CreateTerms(ctx, missing)
	if err != nil {
		return nil, err
	}
	result.Outcomes = outcomes

	// Step 6: report
	for _, o := range outcomes {
		switch o.Status {
		case qbxml.StatusCreated:
			logger.Info().Str("term", o.Name).Msg("Term created")
		case qbxml.StatusAlreadyExists:
			logger.Info().Str("term", o.Name).Msg("Term already exists")
		default:
			logger.Warn().Str("term", o.Name).Int("code", o.Code).Str("error", o.Message).Msg("Term not created")
		}
	}
	s.hooks.trigger(outcomes)

	return result, nil
}
