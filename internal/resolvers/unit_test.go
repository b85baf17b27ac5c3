package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

func TestGetUnitWithWorkOrdersFanOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/units/"):
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"id": "unit-1", "accountId": "acct-1", "suggestedVin": "VIN1"},
					{"id": "unit-2", "accountId": "acct-1", "suggestedVin": "VIN2"},
				},
				"cursor":  "next-page",
				"hasMore": true,
			})
		case strings.HasPrefix(r.URL.Path, "/accounts/acct-1/work-orders"):
			if r.URL.Query().Get("unitId") == "unit-2" {
				// Per-unit failure must not fail the page.
				w.WriteHeader(http.StatusInternalServerError)
				return
			}
			_ = json.NewEncoder(w).Encode(map[string]any{
				"items": []map[string]any{
					{"workOrderId": "wo-1", "accountId": "acct-1", "unitId": "unit-1", "status": "pending"},
				},
			})
		default:
			t.Errorf("unexpected request path %s", r.URL.Path)
		}
	}))
	defer server.Close()

	ev := newEvent(t, "getUnitWithWorkOrders", "acct-1", nil)
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	page, ok := result.(dtos.UnitsWithWorkOrdersPage)
	require.True(t, ok)
	require.Len(t, page.Items, 2)

	require.Equal(t, "unit-1", page.Items[0].ID)
	require.Len(t, page.Items[0].WorkOrders, 1)
	require.Equal(t, "wo-1", page.Items[0].WorkOrders[0].WorkOrderID)

	require.Equal(t, "unit-2", page.Items[1].ID)
	require.Empty(t, page.Items[1].WorkOrders)

	require.NotNil(t, page.Cursor)
	require.Equal(t, "next-page", *page.Cursor)
	require.NotNil(t, page.HasMore)
	require.True(t, *page.HasMore)
}

func TestCreateUnitFillsDefaults(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/units/acct-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"id":           "unit-1",
			"accountId":    "acct-1",
			"locationId":   captured["locationId"],
			"suggestedVin": captured["suggestedVin"],
		})
	}))
	defer server.Close()

	ev := newEvent(t, "createUnit", "acct-1", map[string]any{
		"input": map[string]any{
			"locationId":   "loc-1",
			"suggestedVin": "VIN1",
			"make":         "Freightliner",
		},
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	unit, ok := result.(*services.Unit)
	require.True(t, ok)
	require.Equal(t, "unit-1", unit.ID)

	require.Equal(t, "acct-1", captured["accountId"])
	require.Equal(t, "commercialVehicleType", captured["unitType"])
	require.Equal(t, float64(0), captured["deletedAt"])
	require.NotZero(t, captured["createdAt"])
	require.Equal(t, captured["createdAt"], captured["updatedAt"])
	require.Equal(t, "Freightliner", captured["make"])
}

func TestCreateUnitRequiresLocationAndVin(t *testing.T) {
	ev := newEvent(t, "createUnit", "acct-1", map[string]any{
		"input": map[string]any{"suggestedVin": "VIN1"},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeValidation, utils.CodeOf(err))
	require.Equal(t, "locationId and suggestedVin are required", err.Error())
}

func TestUpdateUnitInjectsTimestamp(t *testing.T) {
	var captured map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/units/acct-1/unit-1", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_ = json.NewEncoder(w).Encode(map[string]any{"id": "unit-1", "accountId": "acct-1", "suggestedVin": "VIN1"})
	}))
	defer server.Close()

	ev := newEvent(t, "updateUnit", "acct-1", map[string]any{
		"id":    "unit-1",
		"input": map[string]any{"note": "serviced"},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	require.Equal(t, "unit-1", captured["id"])
	require.Equal(t, "serviced", captured["note"])
	require.NotZero(t, captured["updatedAt"])
}

func TestUpdateUnitRejectsEmptyInput(t *testing.T) {
	ev := newEvent(t, "updateUnit", "acct-1", map[string]any{
		"id":    "unit-1",
		"input": map[string]any{},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, "At least one field to update is required", err.Error())
}

func TestDeleteUnitResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	ev := newEvent(t, "deleteUnit", "acct-1", map[string]any{"id": "unit-1"})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	resp := result.(dtos.UnitDeleteResponse)
	require.True(t, resp.Success)
	require.Equal(t, "unit-1", resp.ID)
	require.Equal(t, "Unit deleted successfully", resp.Message)
}

// Unit operations derive the account from the caller's identity, so a
// missing subject is an authentication failure, not a validation one.
func TestUnitOperationsRequireIdentity(t *testing.T) {
	ev := newEvent(t, "getUnit", "", map[string]any{"id": "unit-1"})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeUnauthenticated, utils.CodeOf(err))
	require.Equal(t, "User identity not found in token", err.Error())
}
