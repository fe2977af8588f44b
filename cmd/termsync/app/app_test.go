package app

import (
	"bytes"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/termsync/internal/transport"
	"github.com/agentstation/termsync/pkg/logging"
	"github.com/agentstation/termsync/pkg/terms"
)

func newTestApp(t *testing.T, config *Config, opts ...Option) *App {
	t.Helper()
	chdirTemp(t)
	opts = append([]Option{WithConfig(config), WithLogger(logging.NewNopLogger())}, opts...)
	a, err := New("1.0.0", "abc123", "2025-01-01", "test", opts...)
	require.NoError(t, err)
	return a
}

func TestAppNew(t *testing.T) {
	chdirTemp(t)
	a, err := New("1.0.0", "abc123", "2025-01-01", "test")
	require.NoError(t, err)

	assert.Equal(t, "1.0.0", a.Version())
	assert.Equal(t, "abc123", a.Commit())
	assert.Equal(t, "2025-01-01", a.Date())
	assert.Equal(t, "test", a.BuiltBy())
	assert.NotNil(t, a.Logger())
	require.NotNil(t, a.Config())
	assert.Equal(t, "payment_terms", a.Sheet())
}

func TestAppTransportFromConfig(t *testing.T) {
	t.Run("http", func(t *testing.T) {
		a := newTestApp(t, &Config{Transport: TransportHTTP, GatewayURL: "http://qb.local:8080"})
		tr, err := a.Transport()
		require.NoError(t, err)
		assert.IsType(t, &transport.HTTP{}, tr)
	})

	t.Run("com", func(t *testing.T) {
		a := newTestApp(t, &Config{Transport: TransportCOM})
		tr, err := a.Transport()
		require.NoError(t, err)
		assert.IsType(t, &transport.COM{}, tr)
	})

	t.Run("invalid", func(t *testing.T) {
		a := newTestApp(t, &Config{Transport: TransportHTTP})
		_, err := a.Transport()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "gateway_url")

		_, err = a.Synchronizer()
		assert.Error(t, err)
	})
}

func TestAppTransportSingleton(t *testing.T) {
	a := newTestApp(t, &Config{Transport: TransportCOM})

	const goroutines = 50
	var wg sync.WaitGroup
	results := make([]transport.Transport, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			tr, err := a.Transport()
			assert.NoError(t, err)
			results[idx] = tr
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Same(t, results[0], results[i])
	}
}

func TestAppSynchronizer(t *testing.T) {
	session := &transport.MockSession{
		ProcessFunc: func(_ context.Context, request []byte) ([]byte, error) {
			if strings.Contains(string(request), "StandardTermsQueryRq") {
				return []byte(`<QBXML><QBXMLMsgsRs><StandardTermsQueryRs requestID="1" statusCode="1" statusMessage="none"/></QBXMLMsgsRs></QBXML>`), nil
			}
			return []byte(`<QBXML><QBXMLMsgsRs>` +
				`<StandardTermsAddRs requestID="1" statusCode="0"><StandardTermsRet><Name>Net 30</Name></StandardTermsRet></StandardTermsAddRs>` +
				`</QBXMLMsgsRs></QBXML>`), nil
		},
	}
	a := newTestApp(t, &Config{Transport: TransportCOM}, WithTransport(&transport.MockTransport{Session: session}))

	s, err := a.Synchronizer()
	require.NoError(t, err)

	result, err := s.Synchronize(context.Background(), []terms.Term{{Name: "Net 30", ID: 30}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Net 30"}, result.Created())

	requests := session.Requests()
	require.Len(t, requests, 2)
	assert.Contains(t, string(requests[1]), "<Name>Net 30</Name>")
	assert.Equal(t, 2, session.Closes())
}

func TestExecuteVersion(t *testing.T) {
	old := zerolog.GlobalLevel()
	prev := *logging.Default()
	t.Cleanup(func() {
		zerolog.SetGlobalLevel(old)
		logging.SetDefault(prev)
	})
	a := newTestApp(t, &Config{Transport: TransportCOM})

	var out bytes.Buffer
	root := a.createRootCommand()
	root.SetOut(&out)
	root.SetArgs([]string{"version", "--log-level", "error"})
	require.NoError(t, root.Execute())

	assert.Equal(t, "termsync 1.0.0\n", out.String())
}

func TestExecuteRegistersCommands(t *testing.T) {
	a := newTestApp(t, &Config{Transport: TransportCOM})
	root := a.createRootCommand()

	for _, name := range []string{"sync", "compare", "version", "completion"} {
		cmd, _, err := root.Find([]string{name})
		require.NoError(t, err)
		assert.Equal(t, name, cmd.Name())
	}
}
