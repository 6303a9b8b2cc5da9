package main

import (
	"bytes"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/creaturemap/internal/config"
	"github.com/mmynk/creaturemap/internal/storage/sqlite"
	"github.com/mmynk/creaturemap/pkg/api"
	"github.com/mmynk/creaturemap/pkg/api/apiconnect"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *httptest.Server {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.Database.Path = filepath.Join(t.TempDir(), "serve.db")
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, cfg.Validate())

	store, err := sqlite.New(cfg.Database.Path)
	require.NoError(t, err)

	handler, _ := newHandler(cfg, store)
	server := httptest.NewServer(handler)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})
	return server
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t, nil)

	resp, err := server.Client().Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestMetricsAfterRPC(t *testing.T) {
	server := newTestServer(t, nil)

	client := apiconnect.NewCatalogServiceClient(server.Client(), server.URL)
	_, err := client.ListCategories(context.Background(), connect.NewRequest(&api.ListCategoriesRequest{}))
	require.NoError(t, err)

	resp, err := server.Client().Get(server.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "creaturemap_rpc_requests_total")
	assert.Contains(t, string(body), apiconnect.CatalogServiceListCategoriesProcedure)
}

func TestCORSPreflight(t *testing.T) {
	server := newTestServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.DraftServiceSubmitProcedure, nil)
	require.NoError(t, err)
	resp, err := server.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
	assert.Contains(t, resp.Header.Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestPlainJSONPost(t *testing.T) {
	server := newTestServer(t, nil)

	// what a client without a Connect library sends
	resp, err := server.Client().Post(server.URL+apiconnect.PreferencesServiceGetPreferencesProcedure, "application/json", bytes.NewBufferString("{}"))
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"preferences":{"lastTabIndex":0,"mapMode":"satellite"}}`, string(body))
}

func TestAuthServiceOnlyWhenEnabled(t *testing.T) {
	off := newTestServer(t, nil)
	client := apiconnect.NewAuthServiceClient(off.Client(), off.URL)
	_, err := client.Login(context.Background(), connect.NewRequest(&api.LoginRequest{Email: "a@example.com", Password: "x"}))
	assert.Equal(t, connect.CodeUnimplemented, connect.CodeOf(err))

	on := newTestServer(t, func(c *config.Config) {
		c.Auth.Enabled = true
		c.Auth.JWTSecret = "secret"
	})
	client = apiconnect.NewAuthServiceClient(on.Client(), on.URL)
	_, err = client.Register(context.Background(), connect.NewRequest(&api.RegisterRequest{
		Email: "a@example.com", DisplayName: "A", Password: "long enough",
	}))
	require.NoError(t, err)

	catalog := apiconnect.NewCatalogServiceClient(on.Client(), on.URL)
	_, err = catalog.ListCategories(context.Background(), connect.NewRequest(&api.ListCategoriesRequest{}))
	assert.Equal(t, connect.CodeUnauthenticated, connect.CodeOf(err))
}

func TestShutdownEndsOpenStreams(t *testing.T) {
	cfg := config.DefaultConfig()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "shutdown.db"))
	require.NoError(t, err)
	defer store.Close()

	handler, _ := newHandler(cfg, store)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	srv := newServer(ctx, "127.0.0.1:0", handler)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	served := make(chan error, 1)
	go func() { served <- srv.Serve(ln) }()

	client := apiconnect.NewCatalogServiceClient(http.DefaultClient, "http://"+ln.Addr().String())
	stream, err := client.WatchCreatures(context.Background(), connect.NewRequest(&api.WatchCreaturesRequest{CategoryID: 1}))
	require.NoError(t, err)
	defer stream.Close()
	require.True(t, stream.Receive(), "initial snapshot: %v", stream.Err())

	cancel()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	start := time.Now()
	require.NoError(t, srv.Shutdown(shutdownCtx))
	assert.Less(t, time.Since(start), 5*time.Second)
	assert.ErrorIs(t, <-served, http.ErrServerClosed)

	assert.False(t, stream.Receive())
}
