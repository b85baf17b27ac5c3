package resolvers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// partListFixture answers the list endpoint with the given parts and records
// non-list requests into captured.
func partListFixture(t *testing.T, parts []map[string]any, captured *struct {
	Method string
	Path   string
	Body   map[string]any
}) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/parts/acct-1" {
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data":    parts,
				"pagination": map[string]any{
					"limit": 100,
					"count": len(parts),
				},
			})
			return
		}
		if captured != nil {
			captured.Method = r.Method
			captured.Path = r.URL.Path
			if r.Body != nil {
				_ = json.NewDecoder(r.Body).Decode(&captured.Body)
			}
		}
		switch r.Method {
		case http.MethodDelete:
			_ = json.NewEncoder(w).Encode(map[string]any{"success": true})
		default:
			_ = json.NewEncoder(w).Encode(map[string]any{
				"success": true,
				"data": map[string]any{
					"accountId": "acct-1",
					"partId":    "part-1",
					"sortKey":   "location#loc-1#part-1",
				},
			})
		}
	}))
}

var fixtureParts = []map[string]any{
	{
		"accountId":  "acct-1",
		"partId":     "part-1",
		"sortKey":    "location#loc-1#part-1",
		"partNumber": "PN-1",
		"locationId": "loc-1",
	},
	{
		"accountId":  "acct-1",
		"partId":     "part-2",
		"sortKey":    "unit#unit-1#part-2",
		"partNumber": "PN-2",
		"unitId":     "unit-1",
	},
}

// The parts service has no GET-by-id, so lookups list and match the partId
// segment of the sortKey.
func TestGetPartMatchesSortKeySegment(t *testing.T) {
	server := partListFixture(t, fixtureParts, nil)
	defer server.Close()

	ev := newEvent(t, "getPart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"partId":    "part-2",
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	part := result.(*services.Part)
	require.Equal(t, "unit#unit-1#part-2", part.SortKey)
}

func TestGetPartNotFound(t *testing.T) {
	server := partListFixture(t, fixtureParts, nil)
	defer server.Close()

	ev := newEvent(t, "getPart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"partId":    "part-99",
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeNotFound, utils.CodeOf(err))
	require.Equal(t, "Part not found: part-99", err.Error())
}

func TestUpdatePartRejectsBothParents(t *testing.T) {
	server := partListFixture(t, fixtureParts, nil)
	defer server.Close()

	ev := newEvent(t, "updatePart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"partId":    "part-1",
		"input": map[string]any{
			"locationId": "loc-2",
			"unitId":     "unit-2",
		},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeValidation, utils.CodeOf(err))
	require.Equal(t, "Part cannot be associated with both location and unit", err.Error())
}

// Reparenting from a location to a unit recomputes the sortKey.
func TestUpdatePartReparentsToUnit(t *testing.T) {
	var captured struct {
		Method string
		Path   string
		Body   map[string]any
	}
	server := partListFixture(t, fixtureParts, &captured)
	defer server.Close()

	ev := newEvent(t, "updatePart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"partId":    "part-1",
		"input": map[string]any{
			"locationId": "",
			"unitId":     "unit-9",
		},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)

	require.Equal(t, http.MethodPut, captured.Method)
	require.Equal(t, "/parts/acct-1/unit#unit-9#part-1", captured.Path)
}

func TestDeletePartReturnsEnvelopeSuccess(t *testing.T) {
	var captured struct {
		Method string
		Path   string
		Body   map[string]any
	}
	server := partListFixture(t, fixtureParts, &captured)
	defer server.Close()

	ev := newEvent(t, "deletePart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"partId":    "part-2",
	})
	result, err := NewRegistry().Resolve(context.Background(), testConfig(server.URL), ev)
	require.NoError(t, err)
	require.Equal(t, true, result)

	require.Equal(t, http.MethodDelete, captured.Method)
	require.Equal(t, "/parts/acct-1/unit#unit-1#part-2", captured.Path)
}

func TestCreatePartRequiresParent(t *testing.T) {
	ev := newEvent(t, "createPart", "acct-1", map[string]any{
		"accountId": "acct-1",
		"input": map[string]any{
			"partNumber":   "PN-1",
			"description":  "Brake pad",
			"manufacturer": "Acme",
			"category":     "brakes",
			"condition":    "new",
			"status":       "active",
		},
	})
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, "Either locationId or unitId must be provided", err.Error())
}
