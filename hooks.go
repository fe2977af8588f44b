package termsync

import (
	"sync"

	"github.com/agentstation/termsync/pkg/qbxml"
)

// TermHook is called with the outcome of one create request
type TermHook func(outcome qbxml.Outcome)

// hooks manages callbacks for create outcomes
type hooks struct {
	mu        sync.RWMutex
	onCreated []TermHook
	onExists  []TermHook
	onFailed  []TermHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnTermCreated registers a callback for terms created remotely
func (s *Synchronizer) OnTermCreated(fn TermHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onCreated = append(s.hooks.onCreated, fn)
}

// OnTermExists registers a callback for terms the remote side already had
func (s *Synchronizer) OnTermExists(fn TermHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onExists = append(s.hooks.onExists, fn)
}

// OnTermFailed registers a callback for terms that could not be created
func (s *Synchronizer) OnTermFailed(fn TermHook) {
	s.hooks.mu.Lock()
	defer s.hooks.mu.Unlock()
	s.hooks.onFailed = append(s.hooks.onFailed, fn)
}

// trigger runs the hooks registered for each outcome, in outcome order.
// Hooks may register further hooks; those apply to the next run.
func (h *hooks) trigger(outcomes []qbxml.Outcome) {
	h.mu.RLock()
	created := append([]TermHook(nil), h.onCreated...)
	exists := append([]TermHook(nil), h.onExists...)
	failed := append([]TermHook(nil), h.onFailed...)
	h.mu.RUnlock()

	for _, o := range outcomes {
		list := failed
		switch o.Status {
		case qbxml.StatusCreated:
			list = created
		case qbxml.StatusAlreadyExists:
			list = exists
		}
		for _, hook := range list {
			hook(o)
		}
	}
}
