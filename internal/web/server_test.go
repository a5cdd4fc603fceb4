package web_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/leighmacdonald/craft/internal/config"
	"github.com/leighmacdonald/craft/internal/store"
	"github.com/leighmacdonald/craft/internal/web"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *web.Server {
	t.Helper()

	return web.NewServer(config.Config{
		Port:        "0",
		CORSOrigins: []string{"http://localhost:3000"},
	}, nil)
}

func TestHelloRoute(t *testing.T) {
	server := newTestServer(t)

	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, "Hello world!", recorder.Body.String())
	require.Contains(t, recorder.Header().Get("Content-Type"), "text/plain")
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
	require.Equal(t, "nosniff", recorder.Header().Get("X-Content-Type-Options"))
}

func TestRequestIDPassthrough(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, req)

	require.Equal(t, "abc-123", recorder.Header().Get("X-Request-ID"))
}

func TestUnknownRoutes(t *testing.T) {
	server := newTestServer(t)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/", nil),
		httptest.NewRequest(http.MethodGet, "/backend-page", nil),
		httptest.NewRequest(http.MethodPost, "/test", nil),
	} {
		recorder := httptest.NewRecorder()
		server.Router.ServeHTTP(recorder, req)
		require.Equal(t, http.StatusNotFound, recorder.Code, req.Method+" "+req.URL.Path)
	}
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/test", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	recorder := httptest.NewRecorder()
	server.Router.ServeHTTP(recorder, req)

	require.Equal(t, http.StatusNoContent, recorder.Code)
	require.Equal(t, "http://localhost:3000", recorder.Header().Get("Access-Control-Allow-Origin"))
}

func TestServeAndShutdown(t *testing.T) {
	database, errDB := store.Open(t.Context(), config.Database{Driver: config.SQLite}, false)
	require.NoError(t, errDB)

	server := web.NewServer(config.Config{Port: "0"}, database)

	listener, errListen := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, errListen)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- server.Serve(ctx, listener) }()

	resp, errGet := http.Get("http://" + listener.Addr().String() + "/test") //nolint:noctx
	require.NoError(t, errGet)
	body, errBody := io.ReadAll(resp.Body)
	require.NoError(t, errBody)
	require.NoError(t, resp.Body.Close())
	require.Equal(t, "Hello world!", string(body))

	cancel()
	require.NoError(t, <-done)

	// The pool is closed together with the server.
	require.Error(t, database.PingContext(t.Context()))
}

func TestStartWithoutPort(t *testing.T) {
	server := web.NewServer(config.Config{}, nil)

	require.ErrorIs(t, server.Start(t.Context()), web.ErrServerStart)
}
