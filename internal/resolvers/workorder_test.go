package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/utils"
)

func TestCreateWorkOrderSynthesizesIDAndTimestamps(t *testing.T) {
	var body map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&body)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"workOrderId": body["workOrderId"],
			"accountId":   "acct-1",
			"contactId":   "ct-1",
			"unitId":      "unit-1",
			"status":      "draft",
			"description": "Replace brake pads",
			"createdAt":   int64(1704067200000),
			"updatedAt":   int64(1704067200000),
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createWorkOrder", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input": map[string]any{
			"contactId":   "ct-1",
			"unitId":      "unit-1",
			"status":      "draft",
			"description": "Replace brake pads",
		},
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	// The create request carries a generated id and creation timestamps; the
	// work-order service does not assign them.
	require.NotEmpty(t, body["workOrderId"])
	require.Equal(t, "acct-1", body["accountId"])
	require.NotZero(t, body["createdAt"])
	require.Equal(t, body["createdAt"], body["updatedAt"])

	wo := result.(dtos.WorkOrder)
	require.Equal(t, body["workOrderId"], wo.WorkOrderID)
	require.Equal(t, int64(1704067200), wo.CreatedAt)
	require.Equal(t, []string{}, wo.Notes)
}

func TestCreateWorkOrderRejectsUnknownStatus(t *testing.T) {
	ev := newEvent(t, "createWorkOrder", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input": map[string]any{
			"contactId":   "ct-1",
			"unitId":      "unit-1",
			"status":      "archived",
			"description": "Replace brake pads",
		},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeValidation, utils.CodeOf(err))
}

func TestUpdateWorkOrderSendsMergePatch(t *testing.T) {
	var (
		contentType string
		method      string
		path        string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		contentType = r.Header.Get("Content-Type")
		method = r.Method
		path = r.URL.Path
		_ = json.NewEncoder(w).Encode(map[string]any{
			"workOrderId": "wo-1",
			"accountId":   "acct-1",
			"contactId":   "ct-1",
			"unitId":      "unit-1",
			"status":      "completed",
			"description": "Replace brake pads",
			"createdAt":   int64(1704067200000),
			"updatedAt":   int64(1704153600000),
		})
	}))
	defer server.Close()

	ev := newEvent(t, "updateWorkOrder", "acct-1", map[string]any{
		"accountId":   "acct-1",
		"workOrderId": "wo-1",
		"input":       map[string]any{"status": "completed"},
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, method)
	require.Equal(t, "/accounts/acct-1/work-orders/wo-1", path)
	require.Equal(t, "application/merge-patch+json", contentType)

	wo := result.(dtos.WorkOrder)
	require.Equal(t, "completed", wo.Status)
	require.Equal(t, int64(1704153600), wo.UpdatedAt)
}

func TestDeleteWorkOrderReturnsTrue(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ev := newEvent(t, "deleteWorkOrder", "acct-1", map[string]any{
		"accountId":   "acct-1",
		"workOrderId": "wo-1",
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, true, result)
}
