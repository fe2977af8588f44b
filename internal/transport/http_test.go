package transport

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgerrors "github.com/agentstation/termsync/pkg/errors"
)

// gateway is a fake qbXML gateway recording what it receives.
type gateway struct {
	mu          sync.Mutex
	opened      []openSessionRequest
	processed   []string
	deleted     []string
	auth        []string
	processCode int
	deleteCode  int
}

func (g *gateway) handler(t *testing.T) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /sessions", func(w http.ResponseWriter, r *http.Request) {
		var req openSessionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		g.mu.Lock()
		g.opened = append(g.opened, req)
		g.auth = append(g.auth, r.Header.Get("Authorization"))
		g.mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ticket":"T-1"}`))
	})
	mux.HandleFunc("POST /sessions/{ticket}/process", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		g.mu.Lock()
		g.processed = append(g.processed, r.PathValue("ticket")+":"+string(body))
		code := g.processCode
		g.mu.Unlock()
		if code != 0 {
			http.Error(w, "gateway exploded", code)
			return
		}
		assert.Equal(t, "application/xml", r.Header.Get("Content-Type"))
		_, _ = w.Write([]byte("<QBXML><QBXMLMsgsRs/></QBXML>"))
	})
	mux.HandleFunc("DELETE /sessions/{ticket}", func(w http.ResponseWriter, r *http.Request) {
		g.mu.Lock()
		g.deleted = append(g.deleted, r.PathValue("ticket"))
		code := g.deleteCode
		g.mu.Unlock()
		if code != 0 {
			w.WriteHeader(code)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	return mux
}

func newGateway(t *testing.T) (*gateway, *httptest.Server) {
	t.Helper()
	g := &gateway{}
	srv := httptest.NewServer(g.handler(t))
	t.Cleanup(srv.Close)
	return g, srv
}

func TestNewHTTPValidatesURL(t *testing.T) {
	for _, raw := range []string{"", "gateway", "/sessions", "://bad"} {
		_, err := NewHTTP(raw)
		assert.True(t, pkgerrors.IsValidationError(err), "url %q", raw)
	}

	h, err := NewHTTP("http://localhost:8080/", WithTimeout(2*time.Second))
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080", h.baseURL)
	assert.Equal(t, 2*time.Second, h.http.Timeout)
}

func TestHTTPOptionsLeaveCallerClientAlone(t *testing.T) {
	client := &http.Client{Timeout: time.Minute}

	h, err := NewHTTP("http://localhost:8080", WithHTTPClient(client), WithTimeout(3*time.Second))
	require.NoError(t, err)
	assert.Equal(t, 3*time.Second, h.http.Timeout)
	assert.Equal(t, time.Minute, client.Timeout)
	assert.NotSame(t, client, h.http)
}

func TestHTTPSessionLifecycle(t *testing.T) {
	g, srv := newGateway(t)
	app := Application{ID: "app-1", Name: "Terms Import", CompanyFile: `C:\Books\main.qbw`}

	h, err := NewHTTP(srv.URL, WithApplication(app), WithAPIKey("secret", &BearerAuth{}))
	require.NoError(t, err)

	var resp []byte
	err = WithSession(context.Background(), h, func(s Session) error {
		resp, err = s.Process(context.Background(), []byte("<QBXML/>"))
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, "<QBXML><QBXMLMsgsRs/></QBXML>", string(resp))

	g.mu.Lock()
	defer g.mu.Unlock()
	require.Len(t, g.opened, 1)
	assert.Equal(t, app, g.opened[0].Application)
	assert.Equal(t, 2, g.opened[0].OpenMode)
	assert.Equal(t, []string{"Bearer secret"}, g.auth)
	assert.Equal(t, []string{"T-1:<QBXML/>"}, g.processed)
	assert.Equal(t, []string{"T-1"}, g.deleted)
}

func TestHTTPSessionClosedWhenProcessFails(t *testing.T) {
	g, srv := newGateway(t)
	g.processCode = http.StatusBadGateway

	h, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	err = WithSession(context.Background(), h, func(s Session) error {
		_, err := s.Process(context.Background(), []byte("<QBXML/>"))
		return err
	})

	require.Error(t, err)
	assert.True(t, pkgerrors.IsConnection(err))
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusBadGateway, statusErr.StatusCode)
	assert.Contains(t, err.Error(), "gateway exploded")

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Equal(t, []string{"T-1"}, g.deleted)
}

func TestHTTPCloseIsIdempotent(t *testing.T) {
	g, srv := newGateway(t)
	h, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	s, err := h.Connect(context.Background())
	require.NoError(t, err)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	_, err = s.Process(context.Background(), []byte("<QBXML/>"))
	assert.True(t, pkgerrors.IsConnection(err))

	g.mu.Lock()
	defer g.mu.Unlock()
	assert.Len(t, g.deleted, 1)
	assert.Empty(t, g.processed)
}

func TestHTTPCloseFailure(t *testing.T) {
	g, srv := newGateway(t)
	g.deleteCode = http.StatusInternalServerError
	h, err := NewHTTP(srv.URL)
	require.NoError(t, err)

	err = WithSession(context.Background(), h, func(Session) error { return nil })
	require.Error(t, err)
	assert.True(t, pkgerrors.IsConnection(err))
	assert.Contains(t, err.Error(), "close")
}

func TestHTTPConnectFailures(t *testing.T) {
	t.Run("unreachable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		h, err := NewHTTP(url)
		require.NoError(t, err)
		_, err = h.Connect(context.Background())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConnection(err))
	})

	t.Run("rejected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, strings.Repeat("x", 500), http.StatusUnauthorized)
		}))
		defer srv.Close()

		h, err := NewHTTP(srv.URL)
		require.NoError(t, err)
		_, err = h.Connect(context.Background())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsConnection(err))
		assert.Contains(t, err.Error(), "HTTP 401")
		assert.Contains(t, err.Error(), "...")
	})

	t.Run("no ticket", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		h, err := NewHTTP(srv.URL)
		require.NoError(t, err)
		_, err = h.Connect(context.Background())
		assert.True(t, pkgerrors.IsConnection(err))
	})

	t.Run("garbage body", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`<html>`))
		}))
		defer srv.Close()

		h, err := NewHTTP(srv.URL)
		require.NoError(t, err)
		_, err = h.Connect(context.Background())
		assert.True(t, pkgerrors.IsProtocol(err))
	})
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "abc...", truncate("abcdef", 3))
}
