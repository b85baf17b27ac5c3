package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/dtos"
)

func TestCreateLaborLineGeneratesIDWhenAbsent(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"laborLineId": body["laborLineId"],
			"accountId":   "acct-1",
			"taskId":      "task-1",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createLaborLine", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input":     map[string]any{"taskId": "task-1"},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.NotEmpty(t, body["laborLineId"])
}

func TestCreateLaborLineKeepsProvidedID(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"laborLineId": body["laborLineId"],
			"accountId":   "acct-1",
			"taskId":      "task-1",
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createLaborLine", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input": map[string]any{
			"laborLineId": "ll-given",
			"taskId":      "task-1",
		},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, "ll-given", body["laborLineId"])
}

func TestDeleteLaborLineReturnsReceipt(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ev := newEvent(t, "deleteLaborLine", "acct-1", map[string]any{
		"accountId":   "acct-1",
		"laborLineId": "ll-1",
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	receipt := result.(dtos.LaborLineDeleteResponse)
	require.True(t, receipt.Success)
	require.Equal(t, "ll-1", receipt.LaborLineID)
	require.Equal(t, "Labor line deleted successfully", receipt.Message)
}
