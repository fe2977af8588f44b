package termsync

import (
	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/reconcile"
)

// Result reports one sync run.
type Result struct {
	// RunID identifies the run in logs.
	RunID string `json:"run_id" yaml:"run_id"`

	// Comparison is the reconciliation of source and remote terms.
	Comparison reconcile.Result `json:"comparison" yaml:"comparison"`

	// Outcomes holds one entry per create request, in request order. It is
	// empty when nothing was missing or the run was dry.
	Outcomes []qbxml.Outcome `json:"outcomes" yaml:"outcomes"`

	// DryRun is true when creation was skipped on purpose.
	DryRun bool `json:"dry_run" yaml:"dry_run"`
}

// Created returns the names of the terms created remotely.
func (r *Result) Created() []string {
	var names []string
	for _, o := range r.Outcomes {
		if o.Status == qbxml.StatusCreated && o.Name != "" {
			names = append(names, o.Name)
		}
	}
	return names
}

// AlreadyExisting returns the outcomes of terms the remote side already had.
func (r *Result) AlreadyExisting() []qbxml.Outcome {
	return r.filter(qbxml.StatusAlreadyExists)
}

// Failed returns the outcomes of terms that could not be created.
func (r *Result) Failed() []qbxml.Outcome {
	return r.filter(qbxml.StatusFailed)
}

// HasFailures reports whether any create request failed.
func (r *Result) HasFailures() bool {
	return len(r.Failed()) > 0
}

func (r *Result) filter(status qbxml.Status) []qbxml.Outcome {
	var out []qbxml.Outcome
	for _, o := range r.Outcomes {
		if o.Status == status {
			out = append(out, o)
		}
	}
	return out
}
