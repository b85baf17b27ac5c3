package dtos

import "github.com/srhoton/srnext-bff/internal/services"

// Labor lines pass through the backend shape unchanged.

type LaborLineDeleteResponse struct {
	Success     bool   `json:"success"`
	AccountID   string `json:"accountId"`
	LaborLineID string `json:"laborLineId"`
	Message     string `json:"message"`
}

type LaborLineCreateInput struct {
	LaborLineID string   `json:"laborLineId,omitempty"`
	TaskID      string   `json:"taskId" validate:"required"`
	PartID      []string `json:"partId,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type LaborLineUpdateInput struct {
	TaskID      *string  `json:"taskId,omitempty"`
	PartID      []string `json:"partId,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Description *string  `json:"description,omitempty"`
}

func (in LaborLineCreateInput) ToBackend() services.LaborLineCreate {
	return services.LaborLineCreate{
		LaborLineID: in.LaborLineID,
		TaskID:      in.TaskID,
		PartID:      in.PartID,
		Notes:       in.Notes,
		Description: in.Description,
	}
}

func (in LaborLineUpdateInput) ToBackend() services.LaborLineUpdate {
	return services.LaborLineUpdate{
		TaskID:      in.TaskID,
		PartID:      in.PartID,
		Notes:       in.Notes,
		Description: in.Description,
	}
}
