package dtos

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/srhoton/srnext-bff/internal/services"
)

func TestTaskFromBackend(t *testing.T) {
	hours := 2.5
	start := int64(1704067200)
	task := services.Task{
		TaskID:        "task-1",
		AccountID:     "acct-1",
		WorkOrderID:   "wo-1",
		ContactID:     "contact-1",
		LocationID:    "loc-1",
		Status:        "pending",
		EstimateHours: &hours,
		StartDate:     &start,
		CreatedAt:     1704067200,
		UpdatedAt:     1704153600,
	}

	got := TaskFromBackend(task)
	require.Equal(t, "1704067200000", got.CreatedAt)
	require.Equal(t, "1704153600000", got.UpdatedAt)
	require.NotNil(t, got.EstimateHours)
	require.Equal(t, "2.5", *got.EstimateHours)
	require.NotNil(t, got.StartDate)
	require.Equal(t, "1704067200000", *got.StartDate)
	require.Nil(t, got.ActualHours)
	require.Nil(t, got.EndDate)
	require.Nil(t, got.DeletedAt)
}

// Missing backend timestamps surface as "0", not as absent.
func TestTaskFromBackendZeroDefaults(t *testing.T) {
	got := TaskFromBackend(services.Task{TaskID: "task-1"})
	require.Equal(t, "0", got.CreatedAt)
	require.Equal(t, "0", got.UpdatedAt)
}

func TestTaskCreateInputToBackend(t *testing.T) {
	desc := "Replace brake pads"
	status := "pending"
	start := "1704067200000"
	in := TaskCreateInput{
		WorkOrderID: "wo-1",
		ContactID:   "contact-1",
		LocationID:  "loc-1",
		Description: &desc,
		Status:      &status,
		StartDate:   &start,
	}

	create := in.ToBackend("acct-1")
	require.Equal(t, "acct-1", create.PK)
	require.Equal(t, "wo-1", create.WorkOrderID)
	require.Equal(t, "Replace brake pads", create.Description)
	require.Equal(t, "pending", create.Status)
	require.NotNil(t, create.StartDate)
	require.Equal(t, int64(1704067200), *create.StartDate)
	require.Nil(t, create.EndDate)
}
