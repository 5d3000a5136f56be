// ABOUTME: Tests for the health command
// ABOUTME: Verifies connectivity output and exit codes against a mock backend

package cmd

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRunHealth_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/health" {
			t.Errorf("expected path /health, got %s", r.URL.Path)
		}
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer server.Close()

	withAPIURL(t, server.URL)

	var buf bytes.Buffer
	code := runHealth(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "OK")
	assert.Contains(t, buf.String(), server.URL)
}

func TestRunHealth_Unreachable(t *testing.T) {
	withAPIURL(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	code := runHealth(context.Background(), &buf)

	assert.Equal(t, 2, code)
	assert.True(t, strings.Contains(buf.String(), "unreachable"))
}

// withAPIURL points the command layer at a test server and isolates the
// credential store from the developer's real config directory.
func withAPIURL(t *testing.T, url string) {
	t.Helper()
	t.Setenv("RYZE_API_URL", url)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	prev := apiURL
	apiURL = ""
	t.Cleanup(func() { apiURL = prev })
}
