package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buyside/pkg/config"
	"github.com/wonny/buyside/pkg/httputil"
	"github.com/wonny/buyside/pkg/logger"
)

func writeLocalArtifact(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "alpha_signals_2024-01-03.csv")
	require.NoError(t, os.WriteFile(path, []byte("symbol,entry_price,entry_time\nAAPL,185.50,03/01/24 00:00\n"), 0o644))
	return path
}

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	log := logger.NewNop()
	client, err := NewClient(httputil.New(log).DisableRetry(), log, config.StorageConfig{
		BaseURL:   baseURL,
		Container: "daily-signals",
		Token:     "secret",
	})
	require.NoError(t, err)
	return client
}

func TestUploadFile(t *testing.T) {
	var gotMethod, gotPath, gotAuth string
	var gotBody []byte

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	path := writeLocalArtifact(t)

	err := client.UploadFile(context.Background(), path, "alpha_signals_2024-01-03.csv")
	require.NoError(t, err)

	// PUT by object identity: same-day re-runs overwrite, never duplicate
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/daily-signals/alpha_signals_2024-01-03.csv", gotPath)
	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Contains(t, string(gotBody), "AAPL,185.50")
}

func TestUploadFileRejectedStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(t, server.URL)
	err := client.UploadFile(context.Background(), writeLocalArtifact(t), "obj.csv")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestUploadFileMissingLocalFile(t *testing.T) {
	client := newTestClient(t, "http://localhost:1")
	err := client.UploadFile(context.Background(), filepath.Join(t.TempDir(), "missing.csv"), "obj.csv")
	require.Error(t, err)
}

func TestNewClientRequiresBaseURL(t *testing.T) {
	log := logger.NewNop()
	_, err := NewClient(httputil.New(log), log, config.StorageConfig{})
	require.Error(t, err)
}
