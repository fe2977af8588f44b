// Package transport moves qbXML documents to and from QuickBooks Desktop.
//
// A Transport opens a Session, which is a ticket-bound conversation with one
// company file. Two transports exist: HTTP talks to a qbXML gateway service
// and COM drives the QBXMLRP2 request processor on Windows.
package transport

import (
	"context"

	"github.com/agentstation/termsync/pkg/errors"
)

// Transport opens sessions against QuickBooks.
type Transport interface {
	Connect(ctx context.Context) (Session, error)
}

// Session processes qbXML request documents. Close ends the session and
// releases the connection; it is safe to call more than once.
type Session interface {
	Process(ctx context.Context, request []byte) ([]byte, error)
	Close() error
}

// Application identifies this program and the company file to QuickBooks.
type Application struct {
	ID          string `json:"app_id"`
	Name        string `json:"app_name"`
	CompanyFile string `json:"company_file"`
}

// WithSession opens a session, runs fn and always closes the session.
// A close failure is joined with the error returned by fn.
func WithSession(ctx context.Context, t Transport, fn func(Session) error) (err error) {
	session, err := t.Connect(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := session.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
	}()
	return fn(session)
}
