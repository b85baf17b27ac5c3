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

// Deleting a contact first fetches it, then deletes, and hands back the
// deleted record.
func TestDeleteContactReturnsDeletedContact(t *testing.T) {
	var deletes atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			deletes.Add(1)
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accountId": "acct-1",
			"contactId": "ct-1",
			"email":     "driver@example.com",
			"firstName": "Pat",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-02T00:00:00Z",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "deleteContact", "acct-1", map[string]any{
		"accountId": "acct-1",
		"email":     "driver@example.com",
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, int64(1), deletes.Load())

	contact := result.(dtos.Contact)
	require.Equal(t, "ct-1", contact.ContactID)
	require.Equal(t, int64(1704067200), contact.CreatedAt)
	require.Equal(t, int64(1704153600), contact.UpdatedAt)
}

func TestDeleteContactForbiddenForOtherAccount(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	ev := newEvent(t, "deleteContact", "acct-2", map[string]any{
		"accountId": "acct-1",
		"email":     "driver@example.com",
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.Error(t, err)
	require.Equal(t, "Unauthorized: You can only delete contacts for your own account", err.Error())
	require.Equal(t, int64(0), hits.Load())
}

// Provisioning flows create contacts under accounts the caller does not own
// yet, so create only needs an authenticated caller.
func TestCreateContactAllowsCrossAccount(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"accountId": "acct-2",
			"contactId": "ct-9",
			"email":     "new@example.com",
			"createdAt": "2024-01-01T00:00:00Z",
			"updatedAt": "2024-01-01T00:00:00Z",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createContact", "acct-1", map[string]any{
		"accountId": "acct-2",
		"input":     map[string]any{"email": "new@example.com"},
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", body["email"])
	require.Equal(t, "ct-9", result.(dtos.Contact).ContactID)
}

func TestCreateContactRejectsBadEmail(t *testing.T) {
	ev := newEvent(t, "createContact", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input":     map[string]any{"email": "not-an-email"},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeValidation, utils.CodeOf(err))
}
