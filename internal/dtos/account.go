package dtos

import "github.com/srhoton/srnext-bff/internal/services"

// Account is the GraphQL shape; timestamps are AWSTimestamp epoch seconds.
type Account struct {
	ID                 string                       `json:"id"`
	Name               string                       `json:"name"`
	Status             string                       `json:"status"`
	CreatedAt          int64                        `json:"createdAt"`
	UpdatedAt          int64                        `json:"updatedAt"`
	BillingContactID   *string                      `json:"billingContactId,omitempty"`
	BillingLocationID  *string                      `json:"billingLocationId,omitempty"`
	ExtendedAttributes []services.ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

type AccountPage struct {
	Items      []Account `json:"items"`
	NextCursor *string   `json:"nextCursor,omitempty"`
	HasMore    bool      `json:"hasMore"`
}

type AccountDeleteResponse struct {
	Success bool   `json:"success"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

type AccountCreateInput struct {
	ID                 string                       `json:"id,omitempty"`
	Name               string                       `json:"name" validate:"required"`
	Status             string                       `json:"status" validate:"required,oneof=active suspended pending"`
	BillingContactID   *string                      `json:"billingContactId,omitempty"`
	BillingLocationID  *string                      `json:"billingLocationId,omitempty"`
	ExtendedAttributes []services.ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

type AccountUpdateInput struct {
	Name               *string                      `json:"name,omitempty"`
	Status             *string                      `json:"status,omitempty" validate:"omitempty,oneof=active suspended pending"`
	BillingContactID   *string                      `json:"billingContactId,omitempty"`
	BillingLocationID  *string                      `json:"billingLocationId,omitempty"`
	ExtendedAttributes []services.ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

func AccountFromBackend(a services.Account) Account {
	return Account{
		ID:                 a.ID,
		Name:               a.Name,
		Status:             a.Status,
		CreatedAt:          ISOToSeconds(a.CreatedAt),
		UpdatedAt:          ISOToSeconds(a.UpdatedAt),
		BillingContactID:   a.BillingContactID,
		BillingLocationID:  a.BillingLocationID,
		ExtendedAttributes: a.ExtendedAttributes,
	}
}

func (in AccountCreateInput) ToBackend(accountID string) services.AccountCreate {
	return services.AccountCreate{
		ID:                 accountID,
		Name:               in.Name,
		Status:             in.Status,
		BillingContactID:   in.BillingContactID,
		BillingLocationID:  in.BillingLocationID,
		ExtendedAttributes: in.ExtendedAttributes,
	}
}

func (in AccountUpdateInput) ToBackend() services.AccountPartialUpdate {
	return services.AccountPartialUpdate{
		Name:               in.Name,
		Status:             in.Status,
		BillingContactID:   in.BillingContactID,
		BillingLocationID:  in.BillingLocationID,
		ExtendedAttributes: in.ExtendedAttributes,
	}
}
