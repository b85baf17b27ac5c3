package dtos

import "github.com/srhoton/srnext-bff/internal/services"

// Units pass through the backend shape unchanged, epoch-millisecond
// timestamps included.

type UnitDeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// UnitWithWorkOrders embeds the raw work orders fetched from the work-order
// service next to the unit.
type UnitWithWorkOrders struct {
	services.Unit
	WorkOrders []services.WorkOrder `json:"workOrders"`
}

type UnitsWithWorkOrdersPage struct {
	Items   []UnitWithWorkOrders `json:"items"`
	Cursor  *string              `json:"cursor,omitempty"`
	HasMore *bool                `json:"hasMore,omitempty"`
}
