//go:build windows

package transport

import (
	"context"
	"runtime"

	ole "github.com/go-ole/go-ole"
	"github.com/go-ole/go-ole/oleutil"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
)

// processorProgID is the COM class of the QuickBooks request processor.
const processorProgID = "QBXMLRP2.RequestProcessor"

// sFalse is returned by CoInitializeEx when COM is already initialized on
// the calling thread.
const sFalse = 1

// COM is a Transport driving the QuickBooks request processor in-process.
// A session is bound to the OS thread that opened it, so Process and Close
// must be called from the goroutine that called Connect.
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

// Connect opens a connection to QuickBooks and begins a session with the
// configured company file, or whichever file is open when none is set.
func (c *COM) Connect(ctx context.Context) (Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapConnection("connect", processorProgID, err)
	}

	runtime.LockOSThread()
	if err := ole.CoInitializeEx(0, ole.COINIT_APARTMENTTHREADED); err != nil {
		var oleErr *ole.OleError
		if !errors.As(err, &oleErr) || oleErr.Code() != sFalse {
			runtime.UnlockOSThread()
			return nil, errors.NewConnectionError("connect", processorProgID, err)
		}
	}

	s := &comSession{}
	unknown, err := oleutil.CreateObject(processorProgID)
	if err != nil {
		s.release()
		return nil, errors.NewConnectionError("connect", processorProgID, err)
	}
	s.processor, err = unknown.QueryInterface(ole.IID_IDispatch)
	unknown.Release()
	if err != nil {
		s.release()
		return nil, errors.NewConnectionError("connect", processorProgID, err)
	}

	if _, err := oleutil.CallMethod(s.processor, "OpenConnection", c.app.ID, c.app.Name); err != nil {
		s.release()
		return nil, errors.NewConnectionError("open connection", processorProgID, err)
	}
	s.connected = true

	result, err := oleutil.CallMethod(s.processor, "BeginSession", c.app.CompanyFile, constants.OpenModeDoNotCare)
	if err != nil {
		_ = s.Close()
		return nil, errors.NewConnectionError("begin session", c.app.CompanyFile, err)
	}
	s.ticket = result.ToString()
	_ = result.Clear()

	logging.Ctx(ctx).Debug().Str("company_file", c.app.CompanyFile).Msg("QuickBooks session opened")
	return s, nil
}

type comSession struct {
	processor *ole.IDispatch
	ticket    string
	connected bool
	released  bool
}

// Process sends a request document through ProcessRequest.
func (s *comSession) Process(ctx context.Context, request []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapConnection("process", processorProgID, err)
	}
	if s.released {
		return nil, errors.NewConnectionError("process", processorProgID, errors.New("session closed"))
	}

	result, err := oleutil.CallMethod(s.processor, "ProcessRequest", s.ticket, string(request))
	if err != nil {
		return nil, errors.NewConnectionError("process", processorProgID, err)
	}
	defer func() { _ = result.Clear() }()
	return []byte(result.ToString()), nil
}

// Close ends the session, closes the connection and releases COM.
func (s *comSession) Close() error {
	if s.released {
		return nil
	}

	var errs []error
	if s.ticket != "" {
		if _, err := oleutil.CallMethod(s.processor, "EndSession", s.ticket); err != nil {
			errs = append(errs, errors.NewConnectionError("end session", processorProgID, err))
		}
		s.ticket = ""
	}
	if s.connected {
		if _, err := oleutil.CallMethod(s.processor, "CloseConnection"); err != nil {
			errs = append(errs, errors.NewConnectionError("close connection", processorProgID, err))
		}
		s.connected = false
	}
	s.release()
	return errors.Join(errs...)
}

func (s *comSession) release() {
	if s.released {
		return
	}
	s.released = true
	if s.processor != nil {
		s.processor.Release()
	}
	ole.CoUninitialize()
	runtime.UnlockOSThread()
}
