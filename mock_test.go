package termsync

import (
	"context"

	"github.com/agentstation/termsync/pkg/qbxml"
	"github.com/agentstation/termsync/pkg/terms"
)

type mockReader struct {
	ReadTermsFunc func(ctx context.Context) ([]terms.Term, error)
	calls         int
}

func (m *mockReader) ReadTerms(ctx context.Context) ([]terms.Term, error) {
	m.calls++
	if m.ReadTermsFunc != nil {
		return m.ReadTermsFunc(ctx)
	}
	return nil, nil
}

type mockWriter struct {
	CreateTermsFunc func(ctx context.Context, list []terms.Term) ([]qbxml.Outcome, error)
	calls           int
	received        [][]terms.Term
}

func (m *mockWriter) CreateTerms(ctx context.Context, list []terms.Term) ([]qbxml.Outcome, error) {
	m.calls++
	m.received = append(m.received, list)
	if m.CreateTermsFunc != nil {
		return m.CreateTermsFunc(ctx, list)
	}
	outcomes := make([]qbxml.Outcome, 0, len(list))
	for _, t := range list {
		outcomes = append(outcomes, qbxml.Outcome{Name: t.Name, Status: qbxml.StatusCreated})
	}
	return outcomes, nil
}

func remoteTerms(list ...terms.Term) *mockReader {
	return &mockReader{ReadTermsFunc: func(context.Context) ([]terms.Term, error) { return list, nil }}
}
