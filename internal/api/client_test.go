// ABOUTME: Tests for the request pipeline against a mock backend
// ABOUTME: Covers auth attachment, retries, and the classification order

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryze-ai/ryze-cli/internal/auth"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestSession(t *testing.T) *auth.Session {
	t.Helper()
	return auth.NewSession(auth.NewMemStore(), discardLogger())
}

func newTestClient(t *testing.T, handler http.Handler, session *auth.Session) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := New(Options{
		BaseURL:    server.URL,
		Session:    session,
		RetryDelay: time.Millisecond,
		Logger:     discardLogger(),
	})
	require.NoError(t, err)
	return client, server
}

func TestNew_RequiresSessionAndBaseURL(t *testing.T) {
	_, err := New(Options{BaseURL: "http://localhost"})
	require.Error(t, err)

	_, err = New(Options{Session: newTestSession(t)})
	require.Error(t, err)
}

func TestDefaults(t *testing.T) {
	assert.Equal(t, 30*time.Second, DefaultTimeout)
	assert.Equal(t, time.Second, DefaultRetryDelay)
	assert.Equal(t, 3, DefaultMaxRetries)
}

func TestDo_AttachesBearerOnProtectedRoute(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("tok-123", &auth.UserProfile{ID: 1, Username: "dev"}))

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), session)

	var out []Request
	require.NoError(t, client.Get(context.Background(), "/requests/", &out))
	assert.Equal(t, "Bearer tok-123", gotAuth)
}

func TestDo_NoBearerOnPublicRoute(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("tok-123", &auth.UserProfile{ID: 1, Username: "dev"}))

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`[]`))
	}), session)

	var out []Request
	require.NoError(t, client.Get(context.Background(), "/requests/public", &out))
	assert.Empty(t, gotAuth)
}

func TestDo_PublicOptionSkipsBearer(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("tok-123", &auth.UserProfile{ID: 1, Username: "dev"}))

	var gotAuth string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}), session)

	require.NoError(t, client.Get(context.Background(), "/requests/42", nil, Public()))
	assert.Empty(t, gotAuth)
}

func TestDo_SetsRequestID(t *testing.T) {
	var ids []string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ids = append(ids, r.Header.Get("X-Request-ID"))
		w.Write([]byte(`{}`))
	}), newTestSession(t))

	require.NoError(t, client.Get(context.Background(), "/health", nil))
	require.NoError(t, client.Get(context.Background(), "/health", nil))
	require.Len(t, ids, 2)
	assert.NotEmpty(t, ids[0])
	assert.NotEqual(t, ids[0], ids[1])
}

func TestDo_RetriesServerErrorsThenSucceeds(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) <= 2 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"id": 7, "title": "ok"}`))
	}), newTestSession(t))

	var out Request
	require.NoError(t, client.Get(context.Background(), "/requests/public/7", &out))
	assert.Equal(t, int32(3), calls.Load())
	assert.Equal(t, int64(7), out.ID)
}

func TestDo_SurfacesServerErrorAfterRetryBudget(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), newTestSession(t))

	err := client.Get(context.Background(), "/health", nil)
	require.Error(t, err)
	assert.True(t, IsServer(err))
	// 1 initial attempt + 3 retries
	assert.Equal(t, int32(4), calls.Load())
}

func TestDo_WithRetriesZeroDisablesRetry(t *testing.T) {
	var calls atomic.Int32
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), newTestSession(t))

	err := client.Get(context.Background(), "/health", nil, WithRetries(0))
	require.Error(t, err)
	assert.True(t, IsServer(err))
	assert.Equal(t, int32(1), calls.Load())
}

func TestDo_UnauthorizedClearsSessionAndNotifiesOnce(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("stale", &auth.UserProfile{ID: 1, Username: "dev"}))

	var notified atomic.Int32
	session.SetOnExpired(func() { notified.Add(1) })

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), session)

	var wg sync.WaitGroup
	errs := make([]error, 4)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = client.Get(context.Background(), "/conversations/", nil)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.Error(t, err)
		assert.True(t, IsSessionExpired(err))
	}
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, int32(1), notified.Load())
}

func TestDo_UnauthorizedOnPublicRouteDoesNotNotify(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("stale", &auth.UserProfile{ID: 1, Username: "dev"}))

	var notified atomic.Int32
	session.SetOnExpired(func() { notified.Add(1) })

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), session)

	err := client.Get(context.Background(), "/requests/public", nil)
	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))
	assert.Equal(t, int32(0), notified.Load())
}

func TestDo_SilentExpiryClearsWithoutNotify(t *testing.T) {
	session := newTestSession(t)
	require.NoError(t, session.Login("stale", &auth.UserProfile{ID: 1, Username: "dev"}))

	var notified atomic.Int32
	session.SetOnExpired(func() { notified.Add(1) })

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), session)

	err := client.Get(context.Background(), "/auth/me", nil, SilentExpiry())
	require.Error(t, err)
	assert.True(t, IsSessionExpired(err))
	assert.False(t, session.IsAuthenticated())
	assert.Equal(t, int32(0), notified.Load())
}

func TestDo_ForbiddenSubscriptionDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Active subscription required to contact clients"})
	}), newTestSession(t))

	err := client.Post(context.Background(), "/conversations/", nil, nil)
	require.Error(t, err)
	assert.True(t, IsSubscriptionRequired(err))
	assert.False(t, IsPermission(err))
}

func TestDo_ForbiddenWithoutSubscriptionDetail(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Not your request"})
	}), newTestSession(t))

	err := client.Delete(context.Background(), "/requests/9")
	require.Error(t, err)
	assert.True(t, IsPermission(err))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "Not your request", apiErr.Message)
}

func TestDo_OptionalNotFoundYieldsNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), newTestSession(t))

	var profile *DeveloperProfile
	require.NoError(t, client.Get(context.Background(), "/profile/developer", &profile, Optional()))
	assert.Nil(t, profile)
}

func TestDo_NotFoundWithoutOptionalIsError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), newTestSession(t))

	err := client.Get(context.Background(), "/playlists/99", nil)
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestDo_ValidationDetailList(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"detail": [{"loc": ["body", "title"], "msg": "field required"}]}`))
	}), newTestSession(t))

	err := client.Post(context.Background(), "/requests/", map[string]string{}, nil)
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	assert.Contains(t, err.Error(), "title: field required")
}

func TestDo_RateLimited(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}), newTestSession(t))

	err := client.Get(context.Background(), "/requests/", nil)
	require.Error(t, err)
	assert.True(t, IsRateLimited(err))
}

func TestDo_CancelledTakesPrecedence(t *testing.T) {
	started := make(chan struct{})
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-r.Context().Done()
	}), newTestSession(t))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.Get(ctx, "/requests/", nil)
	}()

	<-started
	cancel()

	err := <-done
	require.Error(t, err)
	assert.True(t, IsCancelled(err))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDo_CancelledDuringRetryWait(t *testing.T) {
	session := newTestSession(t)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client, err := New(Options{
		BaseURL:    server.URL,
		Session:    session,
		RetryDelay: time.Minute,
		Logger:     discardLogger(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- client.Get(ctx, "/health", nil)
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	reqErr := <-done
	require.Error(t, reqErr)
	assert.True(t, IsCancelled(reqErr))
}

func TestDo_PerCallTimeout(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(time.Second):
		case <-r.Context().Done():
		}
	}), newTestSession(t))

	err := client.Get(context.Background(), "/requests/", nil, WithTimeout(30*time.Millisecond), WithRetries(0))
	require.Error(t, err)
	assert.True(t, IsTimeout(err))
}

func TestDo_NetworkError(t *testing.T) {
	session := newTestSession(t)
	client, err := New(Options{
		BaseURL: "http://127.0.0.1:1",
		Session: session,
		Logger:  discardLogger(),
	})
	require.NoError(t, err)

	reqErr := client.Get(context.Background(), "/health", nil)
	require.Error(t, reqErr)
	assert.True(t, IsNetwork(reqErr))
}

func TestDo_DecodeFailure(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}), newTestSession(t))

	var out Request
	err := client.Get(context.Background(), "/requests/public/1", &out)
	require.Error(t, err)

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindUnknown, apiErr.Kind)
}

func TestDo_QueryParameters(t *testing.T) {
	var gotQuery string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}), newTestSession(t))

	var out []Request
	require.NoError(t, client.Get(context.Background(), "/requests/public", &out, WithQuery("status", "open")))
	assert.Equal(t, "status=open", gotQuery)
}

func TestGetKind(t *testing.T) {
	err := &Error{Kind: KindServer, Message: "boom"}
	assert.Equal(t, KindServer, GetKind(err))
	assert.Equal(t, KindUnknown, GetKind(errors.New("plain")))
}
