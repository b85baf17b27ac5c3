package dtos

import (
	"regexp"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/services"
)

func TestEventStatusRank(t *testing.T) {
	require.Equal(t, 0, EventStatusRank("acknowledged"))
	require.Equal(t, 3, EventStatusRank("created"))
	require.Equal(t, 7, EventStatusRank("resolved"))
	// Unknown statuses sort ahead of everything known.
	require.Equal(t, -1, EventStatusRank("triaged"))
}

func TestGenerateEventID(t *testing.T) {
	now := time.UnixMilli(1704067200000)
	id := GenerateEventID(now)

	pattern := regexp.MustCompile(`^evt_([0-9a-z]+)_([a-z0-9]{6})$`)
	matches := pattern.FindStringSubmatch(id)
	require.NotNil(t, matches, "unexpected event id %q", id)

	millis, err := strconv.ParseInt(matches[1], 36, 64)
	require.NoError(t, err)
	require.Equal(t, int64(1704067200000), millis)
}

func TestMapEventTypeToActionType(t *testing.T) {
	require.Equal(t, "repair", MapEventTypeToActionType("MAINTENANCE_REQUIRED"))
	require.Equal(t, "inspection", MapEventTypeToActionType("INSPECTION"))
	require.Equal(t, "other", MapEventTypeToActionType("SOMETHING_NEW"))
}

func TestEventCreateInputToBackend(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	in := EventCreateInput{
		AccountID:     "acct-1",
		UnitID:        "unit-1",
		EventType:     "MAINTENANCE_REQUIRED",
		EventCategory: "maintenance",
		CustomData:    map[string]any{"legacy": true},
	}

	create := in.ToBackend(now)
	require.Equal(t, "acct-1", create.AccountID)
	require.Equal(t, "created", create.Status)
	require.Equal(t, "2024-01-01T00:00:00Z", create.CreatedAt)
	require.NotEmpty(t, create.EventID)
	require.NotNil(t, create.ExtendedAttributes)
	require.Empty(t, create.ExtendedAttributes)

	// Maintenance without details gets a synthesized actionType.
	require.NotNil(t, create.MaintenanceDetails)
	require.NotNil(t, create.MaintenanceDetails.ActionType)
	require.Equal(t, "repair", *create.MaintenanceDetails.ActionType)
}

func TestEventCreateInputKeepsProvidedMaintenanceDetails(t *testing.T) {
	actionType := "inspection"
	in := EventCreateInput{
		AccountID:          "acct-1",
		UnitID:             "unit-1",
		EventType:          "INSPECTION",
		EventCategory:      "maintenance",
		MaintenanceDetails: &services.MaintenanceDetails{ActionType: &actionType},
	}

	create := in.ToBackend(time.Now())
	require.Equal(t, &actionType, create.MaintenanceDetails.ActionType)
}

func TestEventFromBackendConvertsTimestamps(t *testing.T) {
	updated := "2024-01-02T00:00:00Z"
	e := services.UnitEvent{
		AccountID: "acct-1",
		EventID:   "evt-1",
		UnitID:    "unit-1",
		Status:    "created",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: &updated,
	}

	got := EventFromBackend(e)
	require.Equal(t, int64(1704067200), got.CreatedAt)
	require.NotNil(t, got.UpdatedAt)
	require.Equal(t, int64(1704153600), *got.UpdatedAt)
	require.Nil(t, got.AcknowledgedAt)
}
