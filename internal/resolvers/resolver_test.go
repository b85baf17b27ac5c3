package resolvers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/utils"
)

func TestRegistryUnknownField(t *testing.T) {
	ev := newEvent(t, "frobnicateAccount", "acct-1", nil)
	_, err := NewRegistry().Resolve(context.Background(), testConfig("http://127.0.0.1:0"), ev)
	require.Error(t, err)
	require.Equal(t, utils.ErrCodeUnknownField, utils.CodeOf(err))
	require.Equal(t, "Unknown field: frobnicateAccount", err.Error())
}

func TestRegistryCoversEveryEntityField(t *testing.T) {
	r := NewRegistry()
	fields := []string{
		"getAccount", "listAccounts", "createAccount", "updateAccount", "deleteAccount",
		"getContact", "listContacts", "createContact", "updateContact", "deleteContact",
		"getEvent", "listEvents", "listEventsByStatus", "createEvent", "updateEvent", "deleteEvent",
		"getLaborLine", "listLaborLines", "createLaborLine", "updateLaborLine", "deleteLaborLine",
		"getLocation", "listLocations", "createLocation", "updateLocation", "deleteLocation",
		"getPart", "listParts", "createPart", "updatePart", "deletePart",
		"getTask", "listTasks", "createTask", "updateTask", "deleteTask",
		"getUnit", "listUnits", "getUnitWithWorkOrders", "createUnit", "updateUnit", "deleteUnit",
		"getWorkOrder", "listWorkOrders", "createWorkOrder", "updateWorkOrder", "deleteWorkOrder",
	}
	for _, field := range fields {
		_, ok := r.byField[field]
		require.True(t, ok, "field %s is not registered", field)
	}
}
