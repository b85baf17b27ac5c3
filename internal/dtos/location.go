package dtos

import "github.com/srhoton/srnext-bff/internal/services"

// Locations pass through the backend shape unchanged; only the inputs get a
// GraphQL-side validation pass.

type LocationCreateInput struct {
	AccountID          string                `json:"accountId" validate:"required"`
	LocationType       string                `json:"locationType" validate:"required,oneof=address coordinates"`
	Address            *services.Address     `json:"address,omitempty"`
	Coordinates        *services.Coordinates `json:"coordinates,omitempty"`
	ExtendedAttributes map[string]any        `json:"extendedAttributes,omitempty"`
}

type LocationUpdateInput struct {
	AccountID          *string               `json:"accountId,omitempty"`
	LocationType       *string               `json:"locationType,omitempty" validate:"omitempty,oneof=address coordinates"`
	Address            *services.Address     `json:"address,omitempty"`
	Coordinates        *services.Coordinates `json:"coordinates,omitempty"`
	ExtendedAttributes map[string]any        `json:"extendedAttributes,omitempty"`
}

func (in LocationCreateInput) ToBackend() services.LocationCreate {
	return services.LocationCreate{
		AccountID:          in.AccountID,
		LocationType:       in.LocationType,
		Address:            in.Address,
		Coordinates:        in.Coordinates,
		ExtendedAttributes: in.ExtendedAttributes,
	}
}

func (in LocationUpdateInput) ToBackend() services.LocationUpdate {
	return services.LocationUpdate{
		AccountID:          in.AccountID,
		LocationType:       in.LocationType,
		Address:            in.Address,
		Coordinates:        in.Coordinates,
		ExtendedAttributes: in.ExtendedAttributes,
	}
}
