package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

type Address struct {
	StreetAddress  string  `json:"streetAddress"`
	StreetAddress2 *string `json:"streetAddress2,omitempty"`
	City           string  `json:"city"`
	StateProvince  *string `json:"stateProvince,omitempty"`
	PostalCode     string  `json:"postalCode"`
	Country        string  `json:"country"`
}

type Coordinates struct {
	Latitude  float64  `json:"latitude"`
	Longitude float64  `json:"longitude"`
	Altitude  *float64 `json:"altitude,omitempty"`
	Accuracy  *float64 `json:"accuracy,omitempty"`
}

// Location is a discriminated union: locationType selects exactly one of
// address or coordinates.
type Location struct {
	ID                 string         `json:"id,omitempty"`
	AccountID          string         `json:"accountId"`
	LocationType       string         `json:"locationType"`
	Address            *Address       `json:"address,omitempty"`
	Coordinates        *Coordinates   `json:"coordinates,omitempty"`
	ExtendedAttributes map[string]any `json:"extendedAttributes,omitempty"`
	CreatedAt          *string        `json:"createdAt,omitempty"`
	UpdatedAt          *string        `json:"updatedAt,omitempty"`
	DeletedAt          *string        `json:"deletedAt,omitempty"`
}

type LocationCreate struct {
	AccountID          string         `json:"accountId"`
	LocationType       string         `json:"locationType"`
	Address            *Address       `json:"address,omitempty"`
	Coordinates        *Coordinates   `json:"coordinates,omitempty"`
	ExtendedAttributes map[string]any `json:"extendedAttributes,omitempty"`
}

type LocationUpdate struct {
	AccountID          *string        `json:"accountId,omitempty"`
	LocationType       *string        `json:"locationType,omitempty"`
	Address            *Address       `json:"address,omitempty"`
	Coordinates        *Coordinates   `json:"coordinates,omitempty"`
	ExtendedAttributes map[string]any `json:"extendedAttributes,omitempty"`
}

type LocationPage struct {
	Items      []Location `json:"items"`
	NextCursor string     `json:"nextCursor,omitempty"`
	Limit      int        `json:"limit"`
	Count      int        `json:"count"`
}

type locationErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type LocationsAPI struct {
	c *apiClient
}

func NewLocationsAPI(baseURL, token string, timeout time.Duration) *LocationsAPI {
	return &LocationsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *LocationsAPI) locationPath(accountID, locationID string) string {
	return "/locations/" + pathSegment(accountID) + "/" + pathSegment(locationID)
}

func (s *LocationsAPI) GetLocation(ctx context.Context, accountID, locationID string) (*Location, error) {
	var loc Location
	err := s.c.do(ctx, http.MethodGet, s.locationPath(accountID, locationID), nil, nil, &loc)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Location %s not found for account %s", locationID, accountID))
	}
	return &loc, nil
}

func (s *LocationsAPI) ListLocations(ctx context.Context, accountID, cursor string, limit int) (*LocationPage, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page LocationPage
	if err := s.c.do(ctx, http.MethodGet, "/locations/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err, "")
	}
	return &page, nil
}

func (s *LocationsAPI) CreateLocation(ctx context.Context, accountID string, input LocationCreate) (*Location, error) {
	var loc Location
	err := s.c.do(ctx, http.MethodPost, "/locations/"+pathSegment(accountID), nil, input, &loc)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return &loc, nil
}

func (s *LocationsAPI) UpdateLocation(ctx context.Context, accountID, locationID string, input LocationUpdate) (*Location, error) {
	var loc Location
	err := s.c.do(ctx, http.MethodPut, s.locationPath(accountID, locationID), nil, input, &loc)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Location %s not found for account %s", locationID, accountID))
	}
	return &loc, nil
}

func (s *LocationsAPI) DeleteLocation(ctx context.Context, accountID, locationID string) error {
	err := s.c.do(ctx, http.MethodDelete, s.locationPath(accountID, locationID), nil, nil, nil)
	if err != nil {
		return s.translate(err, fmt.Sprintf("Location %s not found for account %s", locationID, accountID))
	}
	return nil
}

func (s *LocationsAPI) translate(err error, notFoundMessage string) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	var body locationErrorBody
	hasBody := he.decode(&body)

	switch {
	case he.Status == http.StatusNotFound && notFoundMessage != "":
		return utils.NotFound(notFoundMessage)
	case he.Status == http.StatusBadRequest && hasBody && body.Message != "":
		return utils.Validation(body.Message)
	case hasBody && body.Error != "":
		return utils.ServiceFailure(he.Status, fmt.Sprintf("%s: %s", body.Error, body.Message), he)
	default:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("API request failed: %s", he.Error()), he)
	}
}
