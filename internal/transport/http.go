package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/agentstation/termsync/pkg/constants"
	"github.com/agentstation/termsync/pkg/errors"
	"github.com/agentstation/termsync/pkg/logging"
)

// DefaultHTTPTimeout is the default timeout for gateway requests.
var DefaultHTTPTimeout = constants.DefaultHTTPTimeout

// maxErrorBody bounds how much of a failed response ends up in an error.
const maxErrorBody = 200

// StatusError reports a gateway response outside the 2xx range.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

// Error implements the error interface
func (e *StatusError) Error() string {
	return fmt.Sprintf("%s %s: HTTP %d: %s", e.Method, e.Path, e.StatusCode, truncate(e.Body, maxErrorBody))
}

// HTTP is a Transport for a qbXML gateway service.
//
// The gateway exposes POST /sessions to open a session, which answers with a
// ticket, POST /sessions/{ticket}/process to submit a request document and
// DELETE /sessions/{ticket} to end the session.
type HTTP struct {
	baseURL string
	apiKey  string
	auth    Authenticator
	http    *http.Client
	app     Application
}

// HTTPOption configures an HTTP transport.
type HTTPOption func(*HTTP)

// WithAPIKey sets the gateway credential and how it is applied.
func WithAPIKey(apiKey string, auth Authenticator) HTTPOption {
	return func(h *HTTP) {
		h.apiKey = apiKey
		if auth != nil {
			h.auth = auth
		}
	}
}

// WithHTTPClient uses a copy of client for all gateway calls. The caller's
// client is never modified by later options.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(h *HTTP) {
		if client != nil {
			c := *client
			h.http = &c
		}
	}
}

// WithTimeout sets the per-request timeout of the transport's client.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(h *HTTP) {
		if timeout > 0 {
			h.http.Timeout = timeout
		}
	}
}

// WithApplication sets the application identity sent when opening sessions.
func WithApplication(app Application) HTTPOption {
	return func(h *HTTP) {
		h.app = app
	}
}

// NewHTTP creates a gateway transport for baseURL.
func NewHTTP(baseURL string, opts ...HTTPOption) (*HTTP, error) {
	u, err := url.Parse(baseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, errors.NewValidationError("gateway_url", baseURL, "must be an absolute http(s) URL")
	}

	h := &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		auth:    &NoAuth{},
		http:    &http.Client{Timeout: DefaultHTTPTimeout},
		app:     Application{Name: constants.DefaultAppName},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type openSessionRequest struct {
	Application
	OpenMode int `json:"open_mode"`
}

type openSessionResponse struct {
	Ticket string `json:"ticket"`
}

// Connect opens a gateway session.
func (h *HTTP) Connect(ctx context.Context) (Session, error) {
	payload, err := json.Marshal(openSessionRequest{Application: h.app, OpenMode: constants.OpenModeDoNotCare})
	if err != nil {
		return nil, errors.WrapResource("encode", "session request", "", err)
	}

	endpoint := h.baseURL + "/sessions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+endpoint, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	body, err := h.do(req)
	if err != nil {
		return nil, errors.WrapConnection("connect", endpoint, err)
	}

	var resp openSessionResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, errors.NewProtocolError("open session", "invalid gateway response", err)
	}
	if resp.Ticket == "" {
		return nil, errors.NewConnectionError("connect", endpoint, errors.New("gateway returned no session ticket"))
	}

	logging.Ctx(ctx).Debug().Str("endpoint", h.baseURL).Msg("gateway session opened")
	return &httpSession{transport: h, ticket: resp.Ticket}, nil
}

// do sends req with credentials applied and returns the response body.
func (h *HTTP) do(req *http.Request) ([]byte, error) {
	if h.apiKey != "" {
		h.auth.Apply(req, h.apiKey)
	}

	resp, err := h.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WrapIO("read", "response body", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &StatusError{
			Method:     req.Method,
			Path:       req.URL.Path,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
	return body, nil
}

type httpSession struct {
	transport *HTTP
	ticket    string

	mu     sync.Mutex
	closed bool
}

func (s *httpSession) endpoint(parts ...string) string {
	segments := append([]string{s.transport.baseURL, "sessions", url.PathEscape(s.ticket)}, parts...)
	return strings.Join(segments, "/")
}

// Process submits a request document and returns the response document.
func (s *httpSession) Process(ctx context.Context, request []byte) ([]byte, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	endpoint := s.endpoint("process")
	if closed {
		return nil, errors.NewConnectionError("process", endpoint, errors.New("session closed"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(request))
	if err != nil {
		return nil, errors.WrapResource("create", "request", "POST "+endpoint, err)
	}
	req.Header.Set("Content-Type", "application/xml")
	req.Header.Set("Accept", "application/xml")

	body, err := s.transport.do(req)
	if err != nil {
		return nil, errors.WrapConnection("process", endpoint, err)
	}
	return body, nil
}

// Close ends the gateway session.
func (s *httpSession) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	endpoint := s.endpoint()
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, endpoint, nil)
	if err != nil {
		return errors.WrapResource("create", "request", "DELETE "+endpoint, err)
	}
	if _, err := s.transport.do(req); err != nil {
		return errors.WrapConnection("close", endpoint, err)
	}
	return nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
