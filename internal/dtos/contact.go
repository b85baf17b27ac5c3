package dtos

import "github.com/srhoton/srnext-bff/internal/services"

type Contact struct {
	AccountID   string         `json:"accountId"`
	ContactID   string         `json:"contactId"`
	Email       string         `json:"email"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *string        `json:"status,omitempty"`
	LocationIDs []string       `json:"locationIds,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	CreatedAt   int64          `json:"createdAt"`
	UpdatedAt   int64          `json:"updatedAt"`
	DeletedAt   *int64         `json:"deletedAt"`
}

type ContactPage struct {
	Items      []Contact `json:"items"`
	NextCursor *string   `json:"nextCursor,omitempty"`
	Limit      int       `json:"limit"`
}

type ContactCreateInput struct {
	Email       string         `json:"email" validate:"required,email"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	LocationIDs []string       `json:"locationIds,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

type ContactUpdateInput struct {
	Email       *string        `json:"email,omitempty" validate:"omitempty,email"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *string        `json:"status,omitempty" validate:"omitempty,oneof=active inactive"`
	LocationIDs []string       `json:"locationIds,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

func ContactFromBackend(c services.Contact) Contact {
	return Contact{
		AccountID:   c.AccountID,
		ContactID:   c.ContactID,
		Email:       c.Email,
		FirstName:   c.FirstName,
		LastName:    c.LastName,
		Phone:       c.Phone,
		Status:      c.Status,
		LocationIDs: c.LocationIDs,
		Config:      c.Config,
		CreatedAt:   ISOToSeconds(c.CreatedAt),
		UpdatedAt:   ISOToSeconds(c.UpdatedAt),
		DeletedAt:   ISOToSecondsPtr(c.DeletedAt),
	}
}

func (in ContactCreateInput) ToBackend() services.ContactInput {
	return services.ContactInput{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Status:      in.Status,
		LocationIDs: in.LocationIDs,
		Config:      in.Config,
	}
}

func (in ContactUpdateInput) ToBackend() services.ContactUpdate {
	return services.ContactUpdate{
		Email:       in.Email,
		FirstName:   in.FirstName,
		LastName:    in.LastName,
		Phone:       in.Phone,
		Status:      in.Status,
		LocationIDs: in.LocationIDs,
		Config:      in.Config,
	}
}
