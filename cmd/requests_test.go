// ABOUTME: Tests for the requests command group
// ABOUTME: Covers listing, creation, and error rendering

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryze-ai/ryze-cli/internal/api"
)

func TestRunRequestsList_Public(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/requests/public", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]api.Request{
			{ID: 1, Title: "Build a landing page", Status: "open", OwnerUsername: "acme"},
			{ID: 2, Title: "Fix my deploy pipeline", Status: "open", OwnerUsername: "dev-shop"},
		})
	}))
	defer server.Close()

	withAPIURL(t, server.URL)
	requestsPublic = true
	t.Cleanup(func() { requestsPublic = false })

	var buf bytes.Buffer
	code := runRequestsList(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Build a landing page")
	assert.Contains(t, buf.String(), "dev-shop")
}

func TestRunRequestsCreate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/requests/", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var input api.RequestInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "New site", input.Title)
		assert.True(t, input.IsPublic)

		json.NewEncoder(w).Encode(api.Request{ID: 10, Title: input.Title, Status: "open"})
	}))
	defer server.Close()

	withAPIURL(t, server.URL)
	requestTitle = "New site"
	requestContent = "Need a marketing site"
	t.Cleanup(func() {
		requestTitle = ""
		requestContent = ""
	})

	var buf bytes.Buffer
	code := runRequestsCreate(context.Background(), &buf)

	assert.Equal(t, 0, code)
	assert.Contains(t, buf.String(), "Created request #10")
}

func TestRunRequestsShow_InvalidID(t *testing.T) {
	withAPIURL(t, "http://127.0.0.1:1")

	var buf bytes.Buffer
	code := runRequestsShow(context.Background(), &buf, "abc")

	assert.Equal(t, 2, code)
	assert.Contains(t, buf.String(), "invalid request id")
}

func TestRunRequestsList_ValidationErrorRendering(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["query", "status"], "msg": "invalid status"}]}`))
	}))
	defer server.Close()

	withAPIURL(t, server.URL)

	var buf bytes.Buffer
	code := runRequestsList(context.Background(), &buf)

	assert.Equal(t, 1, code)
	assert.Contains(t, buf.String(), "status: invalid status")
}

func TestFormatRequests_Empty(t *testing.T) {
	assert.Equal(t, "No requests", formatRequests(nil))
}

func TestFormatRequests_TruncatesLongTitles(t *testing.T) {
	long := "This title is much longer than the forty character column allows for"
	out := formatRequests([]api.Request{{ID: 1, Title: long, Status: "open", OwnerUsername: "acme"}})
	assert.Contains(t, out, "...")
	assert.NotContains(t, out, long)
}
