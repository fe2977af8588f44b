//go:build !windows

package transport

import (
	"context"
	"runtime"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
)

const processorProgID = "QBXMLRP2.RequestProcessor"

// COM is a Transport driving the QuickBooks request processor. It is only
// available on Windows; elsewhere Connect always fails.
type COM struct {
	app Application
}

// NewCOM creates a COM transport.
func NewCOM(app Application) *COM {
	if app.Name == "" {
		app.Name = constants.DefaultAppName
	}
	return &COM{app: app}
}

// Connect returns a *errors.ConnectionError on this platform.
func (c *COM) Connect(_ context.Context) (Session, error) {
	return nil, errors.NewConnectionError("connect", processorProgID,
		errors.New("COM transport is not supported on "+runtime.GOOS))
}
