package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/utils"
)

func TestGetAccountConvertsTimestamps(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/acct-1", r.URL.Path)
		require.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "acct-1",
			"name":      "Fleet One",
			"status":    "active",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-02T00:00:00Z",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "getAccount", "acct-1", map[string]any{"id": "acct-1"})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	account, ok := result.(dtos.Account)
	require.True(t, ok)
	require.Equal(t, int64(1704067200), account.CreatedAt)
	require.Equal(t, int64(1704153600), account.UpdatedAt)
}

// A mismatched account id is rejected before any backend call is made.
func TestGetAccountForbiddenBeforeBackendCall(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ev := newEvent(t, "getAccount", "acct-1", map[string]any{"id": "acct-2"})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeForbidden, utils.CodeOf(err))
	require.Equal(t, "Unauthorized: You can only access your own account", err.Error())
	require.Equal(t, int64(0), hits.Load())
}

func TestListAccountsReturnsOnlyCallersAccount(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts/acct-1", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "acct-1",
			"name":      "Fleet One",
			"status":    "active",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "listAccounts", "acct-1", nil)
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	page, ok := result.(dtos.AccountPage)
	require.True(t, ok)
	require.Len(t, page.Items, 1)
	require.Equal(t, "acct-1", page.Items[0].ID)
	require.False(t, page.HasMore)
}

// A missing downstream account is an empty page, not an error.
func TestListAccountsNotFoundIsEmptyPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	ev := newEvent(t, "listAccounts", "acct-1", nil)
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	page, ok := result.(dtos.AccountPage)
	require.True(t, ok)
	require.Empty(t, page.Items)
	require.False(t, page.HasMore)
}

func TestListAccountsRequiresSub(t *testing.T) {
	ev := newEvent(t, "listAccounts", "", nil)
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeUnauthenticated, utils.CodeOf(err))
	require.Equal(t, "Unauthorized: No account ID found in JWT", err.Error())
}

func TestCreateAccountFallsBackToCallerSub(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "acct-1", body["id"])
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":        "acct-1",
			"name":      body["name"],
			"status":    body["status"],
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createAccount", "acct-1", map[string]any{
		"input": map[string]any{"name": "Fleet One", "status": "active"},
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, "acct-1", result.(dtos.Account).ID)
}

func TestCreateAccountRejectsInvalidStatus(t *testing.T) {
	ev := newEvent(t, "createAccount", "acct-1", map[string]any{
		"input": map[string]any{"name": "Fleet One", "status": "archived"},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeValidation, utils.CodeOf(err))
}

func TestDeleteAccountResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ev := newEvent(t, "deleteAccount", "acct-1", map[string]any{"id": "acct-1"})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	resp, ok := result.(dtos.AccountDeleteResponse)
	require.True(t, ok)
	require.True(t, resp.Success)
	require.Equal(t, "acct-1", resp.ID)
	require.Equal(t, "Account deleted successfully", resp.Message)
}
