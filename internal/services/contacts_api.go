package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

// Contact is the backend wire shape, composite-keyed by (accountId, email).
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
	CreatedAt   string         `json:"createdAt"`
	UpdatedAt   string         `json:"updatedAt"`
	DeletedAt   *string        `json:"deletedAt,omitempty"`
}

type ContactInput struct {
	Email       string         `json:"email"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *string        `json:"status,omitempty"`
	LocationIDs []string       `json:"locationIds,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

type ContactUpdate struct {
	Email       *string        `json:"email,omitempty"`
	FirstName   *string        `json:"firstName,omitempty"`
	LastName    *string        `json:"lastName,omitempty"`
	Phone       *string        `json:"phone,omitempty"`
	Status      *string        `json:"status,omitempty"`
	LocationIDs []string       `json:"locationIds,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
}

type ContactPage struct {
	Items      []Contact `json:"items"`
	NextCursor string    `json:"nextCursor,omitempty"`
	Limit      int       `json:"limit"`
}

// contactErrorBody: the contact service reports validation errors as a
// field -> messages map rather than a list.
type contactErrorBody struct {
	Error            string              `json:"error"`
	Message          string              `json:"message"`
	Status           int                 `json:"status"`
	ValidationErrors map[string][]string `json:"validationErrors,omitempty"`
}

type ContactsAPI struct {
	c *apiClient
}

func NewContactsAPI(baseURL, token string, timeout time.Duration) *ContactsAPI {
	return &ContactsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *ContactsAPI) contactPath(accountID, email string) string {
	return "/contacts/" + pathSegment(accountID) + "/" + pathSegment(email)
}

func (s *ContactsAPI) GetContact(ctx context.Context, accountID, email string) (*Contact, error) {
	var contact Contact
	err := s.c.do(ctx, http.MethodGet, s.contactPath(accountID, email), nil, nil, &contact)
	if err != nil {
		return nil, s.translate(err, accountID, email)
	}
	return &contact, nil
}

func (s *ContactsAPI) ListContacts(ctx context.Context, accountID, cursor string, limit int) (*ContactPage, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page ContactPage
	if err := s.c.do(ctx, http.MethodGet, "/contacts/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err, accountID, "")
	}
	return &page, nil
}

func (s *ContactsAPI) CreateContact(ctx context.Context, accountID string, input ContactInput) (*Contact, error) {
	var contact Contact
	err := s.c.do(ctx, http.MethodPost, "/contacts/"+pathSegment(accountID), nil, input, &contact)
	if err != nil {
		return nil, s.translate(err, accountID, input.Email)
	}
	return &contact, nil
}

func (s *ContactsAPI) UpdateContact(ctx context.Context, accountID, email string, updates ContactUpdate) (*Contact, error) {
	var contact Contact
	err := s.c.do(ctx, http.MethodPut, s.contactPath(accountID, email), nil, updates, &contact)
	if err != nil {
		return nil, s.translate(err, accountID, email)
	}
	return &contact, nil
}

// DeleteContact fetches the contact, issues the DELETE, and returns the
// deleted record. When the backend's delete response carries no body, the
// previously fetched contact is returned with deletedAt set to now.
func (s *ContactsAPI) DeleteContact(ctx context.Context, accountID, email string) (*Contact, error) {
	existing, err := s.GetContact(ctx, accountID, email)
	if err != nil {
		return nil, err
	}

	var deleted Contact
	if err := s.c.do(ctx, http.MethodDelete, s.contactPath(accountID, email), nil, nil, &deleted); err != nil {
		return nil, s.translate(err, accountID, email)
	}
	if deleted.AccountID != "" || deleted.Email != "" {
		return &deleted, nil
	}

	now := time.Now().UTC().Format(time.RFC3339)
	existing.DeletedAt = &now
	return existing, nil
}

func (s *ContactsAPI) translate(err error, accountID, email string) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	var body contactErrorBody
	hasBody := he.decode(&body)

	switch {
	case he.Status == http.StatusNotFound && email != "":
		return utils.NotFound(fmt.Sprintf("Contact with email %s not found for account %s", email, accountID))
	case he.Status == http.StatusBadRequest && hasBody && len(body.ValidationErrors) > 0:
		fields := make([]string, 0, len(body.ValidationErrors))
		for field := range body.ValidationErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		pairs := make([]string, 0, len(fields))
		for _, field := range fields {
			pairs = append(pairs, fmt.Sprintf("%s: %s", field, strings.Join(body.ValidationErrors[field], ", ")))
		}
		return utils.Validation("Validation failed: " + strings.Join(pairs, "; "))
	case hasBody && body.Error != "":
		return utils.ServiceFailure(he.Status, fmt.Sprintf("%s: %s", body.Error, body.Message), he)
	default:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("API request failed: %s", he.Error()), he)
	}
}
