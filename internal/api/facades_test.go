// ABOUTME: Tests for the domain endpoint facades
// ABOUTME: Verifies paths, methods, and payload shapes against a mock backend

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ryze-ai/ryze-cli/internal/auth"
)

func TestLogin_ReturnsTokenWithoutMutatingSession(t *testing.T) {
	session := newTestSession(t)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/login", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)

		var input LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "dev", input.Username)

		json.NewEncoder(w).Encode(map[string]any{
			"access_token": "fresh-token",
			"token_type":   "bearer",
			"user":         map[string]any{"id": 1, "username": "dev", "user_type": "developer"},
		})
	}), session)

	token, user, err := client.Login(context.Background(), LoginInput{Username: "dev", Password: "pw"})
	require.NoError(t, err)
	assert.Equal(t, "fresh-token", token)
	require.NotNil(t, user)
	assert.Equal(t, "dev", user.Username)

	// Adoption is the caller's decision
	assert.False(t, session.IsAuthenticated())
}

func TestLogin_MissingTokenIsError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"token_type": "bearer"}`))
	}), newTestSession(t))

	_, _, err := client.Login(context.Background(), LoginInput{Username: "dev", Password: "pw"})
	require.Error(t, err)
}

func TestLogin_MissingUserIsError(t *testing.T) {
	// A token with no user object must never reach session adoption,
	// where a nil profile would blow up downstream.
	session := newTestSession(t)
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "abc", "token_type": "bearer"}`))
	}), session)

	token, user, err := client.Login(context.Background(), LoginInput{Username: "dev", Password: "pw"})
	require.Error(t, err)
	assert.Empty(t, token)
	assert.Nil(t, user)
	assert.False(t, session.IsAuthenticated())
}

func TestRegister_MissingUserIsError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"access_token": "abc", "token_type": "bearer"}`))
	}), newTestSession(t))

	_, _, err := client.Register(context.Background(), RegisterInput{Username: "dev", Email: "d@e.io", Password: "pw"})
	require.Error(t, err)
}

func TestRestoreSession_AdoptsFreshProfile(t *testing.T) {
	store := auth.NewMemStore()
	require.NoError(t, store.SetToken("persisted"))
	session := auth.NewSession(store, discardLogger())

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/auth/me", r.URL.Path)
		assert.Equal(t, "Bearer persisted", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": 1, "username": "dev", "user_type": "developer"})
	}), session)

	user, err := client.RestoreSession(context.Background())
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, "dev", user.Username)
	assert.True(t, session.IsAuthenticated())
}

func TestRestoreSession_RejectedTokenDegradesQuietly(t *testing.T) {
	store := auth.NewMemStore()
	require.NoError(t, store.SetToken("stale"))
	session := auth.NewSession(store, discardLogger())

	notified := false
	session.SetOnExpired(func() { notified = true })

	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}), session)

	user, err := client.RestoreSession(context.Background())
	require.NoError(t, err)
	assert.Nil(t, user)
	assert.False(t, session.IsAuthenticated())
	assert.False(t, notified, "restore must not force navigation")
}

func TestCreateConversation_Payload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/conversations/", r.URL.Path)

		var body map[string]int64
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, int64(42), body["request_id"])

		json.NewEncoder(w).Encode(Conversation{ID: 7, RequestID: 42, Status: "active"})
	}), newTestSession(t))

	conv, err := client.CreateConversation(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, int64(7), conv.ID)
}

func TestClientProfile_MissingIsNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/profile/client", r.URL.Path)
		http.NotFound(w, r)
	}), newTestSession(t))

	profile, err := client.ClientProfile(context.Background())
	require.NoError(t, err)
	assert.Nil(t, profile)
}

func TestDeveloperRating_NeverRatedIsNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/ratings/developers/3", r.URL.Path)
		http.NotFound(w, r)
	}), newTestSession(t))

	summary, err := client.DeveloperRating(context.Background(), 3)
	require.NoError(t, err)
	assert.Nil(t, summary)
}

func TestSubscription_StatusAndActive(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/subscription-status", r.URL.Path)
		json.NewEncoder(w).Encode(SubscriptionStatus{Status: "active", PlanName: "Pro"})
	}), newTestSession(t))

	status, err := client.Subscription(context.Background())
	require.NoError(t, err)
	require.NotNil(t, status)
	assert.True(t, status.Active())

	var none *SubscriptionStatus
	assert.False(t, none.Active())
	assert.False(t, (&SubscriptionStatus{Status: "past_due"}).Active())
}

func TestCreateSubscription_ReturnsCheckoutURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/create-subscription", r.URL.Path)
		require.Equal(t, http.MethodPost, r.Method)
		json.NewEncoder(w).Encode(CheckoutSession{SessionID: "cs_123", CheckoutURL: "https://pay.example.com/cs_123"})
	}), newTestSession(t))

	checkout, err := client.CreateSubscription(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "cs_123", checkout.SessionID)
	assert.NotEmpty(t, checkout.CheckoutURL)
}

func TestVerifyPurchase_Payload(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/verify-purchase", r.URL.Path)

		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "cs_123", body["session_id"])

		json.NewEncoder(w).Encode(PurchaseRecord{SessionID: "cs_123", Status: "paid"})
	}), newTestSession(t))

	record, err := client.VerifyPurchase(context.Background(), "cs_123")
	require.NoError(t, err)
	assert.Equal(t, "paid", record.Status)
}

func TestShowcaseDetail_DeadLinkIsNil(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}), newTestSession(t))

	showcase, err := client.ShowcaseDetail(context.Background(), 404)
	require.NoError(t, err)
	assert.Nil(t, showcase)
}

func TestMarkRead_UsesPut(t *testing.T) {
	var gotMethod, gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusOK)
	}), newTestSession(t))

	require.NoError(t, client.MarkRead(context.Background(), 5))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "/conversations/5/read", gotPath)
}
