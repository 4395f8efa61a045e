package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/no-head", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestCheck(t *testing.T) {
	server := newTestServer(t)
	checker := NewChecker(2 * time.Second)
	ctx := context.Background()

	ok := checker.Check(ctx, server.URL+"/ok")
	assert.Equal(t, http.StatusOK, ok.Status)
	assert.False(t, ok.Dead())

	// HEAD rejected outright: retried as GET.
	noHead := checker.Check(ctx, server.URL+"/no-head")
	assert.Equal(t, http.StatusOK, noHead.Status)
	assert.False(t, noHead.Dead())

	gone := checker.Check(ctx, server.URL+"/gone")
	assert.Equal(t, http.StatusNotFound, gone.Status)
	assert.True(t, gone.Dead())
	assert.Equal(t, "404", gone.Reason())

	unreachable := checker.Check(ctx, "http://127.0.0.1:1/nothing")
	assert.True(t, unreachable.Dead())
	assert.Zero(t, unreachable.Status)
	assert.Contains(t, unreachable.Reason(), "connection error")
}

func TestCheckFiles(t *testing.T) {
	server := newTestServer(t)
	dir := t.TempDir()

	good := "name: Good Vendor\npricing_source: " + server.URL + "/ok\n"
	bad := "name: Bad Vendor\npricing_source:\n  - " + server.URL + "/ok\n  - " + server.URL + "/gone\n"
	noURL := "name: Offline Vendor\npricing_source: see website\n"
	broken := "name: [unclosed\n"

	paths := []string{
		filepath.Join(dir, "good.yaml"),
		filepath.Join(dir, "bad.yaml"),
		filepath.Join(dir, "nourl.yaml"),
		filepath.Join(dir, "broken.yaml"),
	}
	for i, content := range []string{good, bad, noURL, broken} {
		require.NoError(t, os.WriteFile(paths[i], []byte(content), 0o644))
	}

	checker := NewChecker(2 * time.Second).WithDelay(0)

	var probed int
	dead, err := checker.CheckFiles(context.Background(), paths, func(LinkResult) {
		probed++
	})
	require.NoError(t, err)

	// Non-URL sources and unparsable files are skipped, not probed.
	assert.Equal(t, 3, probed)
	require.Len(t, dead, 1)
	assert.Equal(t, "Bad Vendor", dead[0].Vendor)
	assert.Equal(t, server.URL+"/gone", dead[0].URL)
}

func TestCheckFilesHonorsContext(t *testing.T) {
	server := newTestServer(t)
	dir := t.TempDir()

	content := "name: Vendor\npricing_source:\n  - " + server.URL + "/ok\n  - " + server.URL + "/ok\n"
	path := filepath.Join(dir, "vendor.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	checker := NewChecker(2 * time.Second).WithDelay(time.Hour)
	_, err := checker.CheckFiles(ctx, []string{path}, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
