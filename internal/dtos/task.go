package dtos

import (
	"strconv"

	"github.com/srhoton/srnext-bff/internal/services"
)

// Task is the GraphQL shape. The task schema predates the AWSTimestamp
// convention: timestamps travel as millisecond strings and hours as strings.
type Task struct {
	TaskID        string   `json:"taskId"`
	AccountID     string   `json:"accountId"`
	WorkOrderID   string   `json:"workOrderId"`
	ContactID     string   `json:"contactId"`
	LocationID    string   `json:"locationId"`
	LaborlinesID  []string `json:"laborlinesId"`
	Description   string   `json:"description"`
	Notes         []string `json:"notes"`
	Status        string   `json:"status"`
	EstimateHours *string  `json:"estimateHours,omitempty"`
	ActualHours   *string  `json:"actualHours,omitempty"`
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
	CreatedAt     string   `json:"createdAt"`
	UpdatedAt     string   `json:"updatedAt"`
	DeletedAt     *string  `json:"deletedAt,omitempty"`
}

type TaskPage struct {
	Items      []Task  `json:"items"`
	NextCursor *string `json:"nextCursor,omitempty"`
	Limit      int     `json:"limit"`
	Count      int     `json:"count"`
}

type TaskCreateInput struct {
	WorkOrderID   string   `json:"workOrderId" validate:"required"`
	ContactID     string   `json:"contactId" validate:"required"`
	LocationID    string   `json:"locationId" validate:"required"`
	LaborlinesID  []string `json:"laborlinesId,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Notes         []string `json:"notes,omitempty"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=pending inProgress completed"`
	EstimateHours *float64 `json:"estimateHours,omitempty"`
	ActualHours   *float64 `json:"actualHours,omitempty"`
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
}

type TaskUpdateInput struct {
	ContactID     *string  `json:"contactId,omitempty"`
	LocationID    *string  `json:"locationId,omitempty"`
	LaborlinesID  []string `json:"laborlinesId,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Notes         []string `json:"notes,omitempty"`
	Status        *string  `json:"status,omitempty" validate:"omitempty,oneof=pending inProgress completed"`
	EstimateHours *float64 `json:"estimateHours,omitempty"`
	ActualHours   *float64 `json:"actualHours,omitempty"`
	StartDate     *string  `json:"startDate,omitempty"`
	EndDate       *string  `json:"endDate,omitempty"`
}

func TaskFromBackend(t services.Task) Task {
	result := Task{
		TaskID:       t.TaskID,
		AccountID:    t.AccountID,
		WorkOrderID:  t.WorkOrderID,
		ContactID:    t.ContactID,
		LocationID:   t.LocationID,
		LaborlinesID: t.LaborlinesID,
		Description:  t.Description,
		Notes:        t.Notes,
		Status:       t.Status,
		CreatedAt:    millisStringOrZero(t.CreatedAt),
		UpdatedAt:    millisStringOrZero(t.UpdatedAt),
	}
	if t.EstimateHours != nil {
		s := strconv.FormatFloat(*t.EstimateHours, 'f', -1, 64)
		result.EstimateHours = &s
	}
	if t.ActualHours != nil {
		s := strconv.FormatFloat(*t.ActualHours, 'f', -1, 64)
		result.ActualHours = &s
	}
	if t.StartDate != nil {
		result.StartDate = SecondsToMillisString(*t.StartDate)
	}
	if t.EndDate != nil {
		result.EndDate = SecondsToMillisString(*t.EndDate)
	}
	if t.DeletedAt != nil {
		result.DeletedAt = SecondsToMillisString(*t.DeletedAt)
	}
	return result
}

func millisStringOrZero(seconds int64) string {
	if s := SecondsToMillisString(seconds); s != nil {
		return *s
	}
	return "0"
}

func (in TaskCreateInput) ToBackend(accountID string) services.TaskCreate {
	create := services.TaskCreate{
		PK:            accountID,
		WorkOrderID:   in.WorkOrderID,
		ContactID:     in.ContactID,
		LocationID:    in.LocationID,
		LaborlinesID:  in.LaborlinesID,
		Notes:         in.Notes,
		EstimateHours: in.EstimateHours,
		ActualHours:   in.ActualHours,
		StartDate:     MillisStringToSeconds(in.StartDate),
		EndDate:       MillisStringToSeconds(in.EndDate),
	}
	if in.Description != nil {
		create.Description = *in.Description
	}
	if in.Status != nil {
		create.Status = *in.Status
	}
	return create
}

func (in TaskUpdateInput) ToBackend() services.TaskUpdate {
	return services.TaskUpdate{
		ContactID:     in.ContactID,
		LocationID:    in.LocationID,
		LaborlinesID:  in.LaborlinesID,
		Description:   in.Description,
		Notes:         in.Notes,
		Status:        in.Status,
		EstimateHours: in.EstimateHours,
		ActualHours:   in.ActualHours,
		StartDate:     MillisStringToSeconds(in.StartDate),
		EndDate:       MillisStringToSeconds(in.EndDate),
	}
}
