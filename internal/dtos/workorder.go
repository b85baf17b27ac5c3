package dtos

import "github.com/srhoton/srnext-bff/internal/services"

// WorkOrder is the GraphQL shape; timestamps are AWSTimestamp epoch seconds.
// A missing created/updated timestamp renders as 0 rather than null.
type WorkOrder struct {
	WorkOrderID string   `json:"workOrderId"`
	AccountID   string   `json:"accountId"`
	ContactID   string   `json:"contactId"`
	UnitID      string   `json:"unitId"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Notes       []string `json:"notes"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
	DeletedAt   *int64   `json:"deletedAt,omitempty"`
}

type WorkOrderPage struct {
	Items      []WorkOrder `json:"items"`
	NextCursor *string     `json:"nextCursor,omitempty"`
	PageSize   int         `json:"pageSize"`
	Count      int         `json:"count"`
}

type WorkOrderCreateInput struct {
	ContactID   string   `json:"contactId" validate:"required"`
	UnitID      string   `json:"unitId" validate:"required"`
	Status      string   `json:"status" validate:"required,oneof=draft pending inProgress completed"`
	Description string   `json:"description" validate:"required"`
	Notes       []string `json:"notes,omitempty"`
}

type WorkOrderUpdateInput struct {
	ContactID   *string  `json:"contactId,omitempty"`
	UnitID      *string  `json:"unitId,omitempty"`
	Status      *string  `json:"status,omitempty" validate:"omitempty,oneof=draft pending inProgress completed"`
	Description *string  `json:"description,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

func WorkOrderFromBackend(wo services.WorkOrder) WorkOrder {
	result := WorkOrder{
		WorkOrderID: wo.WorkOrderID,
		AccountID:   wo.AccountID,
		ContactID:   wo.ContactID,
		UnitID:      wo.UnitID,
		Status:      wo.Status,
		Description: wo.Description,
		Notes:       wo.Notes,
		DeletedAt:   MillisToSecondsPtr(wo.DeletedAt),
	}
	if result.Notes == nil {
		result.Notes = []string{}
	}
	if wo.CreatedAt != 0 {
		result.CreatedAt = MillisToSeconds(wo.CreatedAt)
	}
	if wo.UpdatedAt != 0 {
		result.UpdatedAt = MillisToSeconds(wo.UpdatedAt)
	}
	return result
}

func (in WorkOrderCreateInput) ToBackend() services.WorkOrderCreate {
	return services.WorkOrderCreate{
		ContactID:   in.ContactID,
		UnitID:      in.UnitID,
		Status:      in.Status,
		Description: in.Description,
		Notes:       in.Notes,
	}
}

func (in WorkOrderUpdateInput) ToBackend() services.WorkOrderUpdate {
	return services.WorkOrderUpdate{
		ContactID:   in.ContactID,
		UnitID:      in.UnitID,
		Status:      in.Status,
		Description: in.Description,
		Notes:       in.Notes,
	}
}
