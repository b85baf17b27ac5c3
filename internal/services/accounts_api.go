package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

type ExtendedAttribute struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Account is the backend wire shape. Timestamps are ISO-8601 strings on this
// side of the boundary.
type Account struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Status             string              `json:"status"`
	CreatedAt          string              `json:"createdAt"`
	UpdatedAt          string              `json:"updatedAt"`
	BillingContactID   *string             `json:"billingContactId,omitempty"`
	BillingLocationID  *string             `json:"billingLocationId,omitempty"`
	ExtendedAttributes []ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

type AccountCreate struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	Status             string              `json:"status"`
	BillingContactID   *string             `json:"billingContactId,omitempty"`
	BillingLocationID  *string             `json:"billingLocationId,omitempty"`
	ExtendedAttributes []ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

type AccountPartialUpdate struct {
	Name               *string             `json:"name,omitempty"`
	Status             *string             `json:"status,omitempty"`
	BillingContactID   *string             `json:"billingContactId,omitempty"`
	BillingLocationID  *string             `json:"billingLocationId,omitempty"`
	ExtendedAttributes []ExtendedAttribute `json:"extendedAttributes,omitempty"`
}

type AccountPage struct {
	Items      []Account `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
	HasMore    bool      `json:"hasMore"`
}

// accountErrorBody is the account service's error response shape.
type accountErrorBody struct {
	Error            string `json:"error"`
	Message          string `json:"message"`
	StatusCode       int    `json:"statusCode"`
	ValidationErrors []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"validationErrors,omitempty"`
}

type AccountsAPI struct {
	c *apiClient
}

func NewAccountsAPI(baseURL, token string, timeout time.Duration) *AccountsAPI {
	return &AccountsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *AccountsAPI) GetAccount(ctx context.Context, accountID string) (*Account, error) {
	var account Account
	err := s.c.do(ctx, http.MethodGet, "/accounts/"+pathSegment(accountID), nil, nil, &account)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Account with ID %s not found", accountID))
	}
	return &account, nil
}

func (s *AccountsAPI) ListAccounts(ctx context.Context, cursor string, limit int) (*AccountPage, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page AccountPage
	if err := s.c.do(ctx, http.MethodGet, "/accounts", query, nil, &page); err != nil {
		return nil, s.translate(err, "")
	}
	return &page, nil
}

func (s *AccountsAPI) CreateAccount(ctx context.Context, input AccountCreate) (*Account, error) {
	var account Account
	err := s.c.do(ctx, http.MethodPost, "/accounts", nil, input, &account)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return &account, nil
}

func (s *AccountsAPI) UpdateAccount(ctx context.Context, accountID string, updates AccountPartialUpdate) (*Account, error) {
	var account Account
	err := s.c.do(ctx, http.MethodPut, "/accounts/"+pathSegment(accountID), nil, updates, &account)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Account with ID %s not found", accountID))
	}
	return &account, nil
}

func (s *AccountsAPI) DeleteAccount(ctx context.Context, accountID string) error {
	err := s.c.do(ctx, http.MethodDelete, "/accounts/"+pathSegment(accountID), nil, nil, nil)
	if err != nil {
		return s.translate(err, fmt.Sprintf("Account with ID %s not found", accountID))
	}
	return nil
}

func (s *AccountsAPI) translate(err error, notFoundMessage string) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	var body accountErrorBody
	hasBody := he.decode(&body)

	switch {
	case he.Status == http.StatusNotFound && notFoundMessage != "":
		return utils.NotFound(notFoundMessage)
	case he.Status == http.StatusBadRequest && hasBody && len(body.ValidationErrors) > 0:
		pairs := make([]string, 0, len(body.ValidationErrors))
		for _, v := range body.ValidationErrors {
			pairs = append(pairs, fmt.Sprintf("%s: %s", v.Field, v.Message))
		}
		return utils.Validation("Validation failed: " + strings.Join(pairs, ", "))
	case hasBody && body.Error != "":
		return utils.ServiceFailure(he.Status, fmt.Sprintf("%s: %s", body.Error, body.Message), he)
	default:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("API request failed: %s", he.Error()), he)
	}
}
