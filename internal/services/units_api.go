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

type UnitAttribute struct {
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
}

type AcesAttribute struct {
	AttributeName  string `json:"attributeName"`
	AttributeValue string `json:"attributeValue"`
	AttributeKey   string `json:"attributeKey"`
}

// Unit is the backend wire shape for commercial-vehicle units. Timestamps
// are epoch milliseconds; deletedAt of 0 means not deleted (soft delete).
type Unit struct {
	ID                           string  `json:"id"`
	AccountID                    string  `json:"accountId"`
	LocationID                   string  `json:"locationId"`
	UnitType                     *string `json:"unitType,omitempty"`
	SuggestedVin                 string  `json:"suggestedVin"`
	VehicleDescriptor            *string `json:"vehicleDescriptor,omitempty"`
	Make                         *string `json:"make,omitempty"`
	ManufacturerName             *string `json:"manufacturerName,omitempty"`
	Model                        *string `json:"model,omitempty"`
	ModelYear                    *string `json:"modelYear,omitempty"`
	Series                       *string `json:"series,omitempty"`
	Trim                         *string `json:"trim,omitempty"`
	VehicleType                  *string `json:"vehicleType,omitempty"`
	BodyClass                    *string `json:"bodyClass,omitempty"`
	Doors                        *string `json:"doors,omitempty"`
	Note                         *string `json:"note,omitempty"`
	FuelTypePrimary              *string `json:"fuelTypePrimary,omitempty"`
	EngineModel                  *string `json:"engineModel,omitempty"`
	DriveType                    *string `json:"driveType,omitempty"`
	GrossVehicleWeightRatingFrom *string `json:"grossVehicleWeightRatingFrom,omitempty"`

	CreatedAt int64 `json:"createdAt"`
	UpdatedAt int64 `json:"updatedAt"`
	DeletedAt int64 `json:"deletedAt"`

	ExtendedAttributes []UnitAttribute `json:"extendedAttributes,omitempty"`
	AcesAttributes     []AcesAttribute `json:"acesAttributes,omitempty"`
}

type UnitPage struct {
	Items   []Unit `json:"items"`
	Cursor  string `json:"cursor,omitempty"`
	HasMore bool   `json:"hasMore,omitempty"`
}

type unitErrorBody struct {
	Error string `json:"error"`
}

type UnitsAPI struct {
	c *apiClient
}

func NewUnitsAPI(baseURL, token string, timeout time.Duration) *UnitsAPI {
	return &UnitsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *UnitsAPI) ListUnits(ctx context.Context, accountID, cursor string, limit int) (*UnitPage, error) {
	query := url.Values{}
	if cursor != "" {
		query.Set("cursor", cursor)
	}
	if limit > 0 {
		query.Set("limit", strconv.Itoa(limit))
	}
	var page UnitPage
	if err := s.c.do(ctx, http.MethodGet, "/units/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err)
	}
	return &page, nil
}

// GetAllUnits walks the backend cursor until exhaustion. There is no cap on
// tenant size here; see the aggregation notes in DESIGN.md.
func (s *UnitsAPI) GetAllUnits(ctx context.Context, accountID string) ([]Unit, error) {
	var all []Unit
	cursor := ""
	for {
		page, err := s.ListUnits(ctx, accountID, cursor, 100)
		if err != nil {
			return nil, err
		}
		all = append(all, page.Items...)
		if !page.HasMore || page.Cursor == "" {
			break
		}
		cursor = page.Cursor
	}
	return all, nil
}

func (s *UnitsAPI) GetUnit(ctx context.Context, accountID, unitID string) (*Unit, error) {
	var unit Unit
	err := s.c.do(ctx, http.MethodGet, "/units/"+pathSegment(accountID)+"/"+pathSegment(unitID), nil, nil, &unit)
	if err != nil {
		return nil, s.translate(err)
	}
	return &unit, nil
}

// UnitCreate is an open payload: required fields plus whatever optional
// attributes the caller supplied, passed through untouched.
type UnitCreate map[string]any

func (s *UnitsAPI) CreateUnit(ctx context.Context, accountID string, unit UnitCreate) (*Unit, error) {
	var created Unit
	err := s.c.do(ctx, http.MethodPost, "/units/"+pathSegment(accountID), nil, unit, &created)
	if err != nil {
		return nil, s.translate(err)
	}
	return &created, nil
}

// UnitUpdate is a partial merge; only fields present in the map are touched.
// The resolver injects id and updatedAt before the call.
type UnitUpdate map[string]any

func (s *UnitsAPI) UpdateUnit(ctx context.Context, accountID, unitID string, update UnitUpdate) (*Unit, error) {
	var updated Unit
	err := s.c.do(ctx, http.MethodPut, "/units/"+pathSegment(accountID)+"/"+pathSegment(unitID), nil, update, &updated)
	if err != nil {
		return nil, s.translate(err)
	}
	return &updated, nil
}

func (s *UnitsAPI) DeleteUnit(ctx context.Context, accountID, unitID string) error {
	err := s.c.do(ctx, http.MethodDelete, "/units/"+pathSegment(accountID)+"/"+pathSegment(unitID), nil, nil, nil)
	if err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *UnitsAPI) translate(err error) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	message := "An error occurred"
	var body unitErrorBody
	if he.decode(&body) && body.Error != "" {
		message = body.Error
	}

	switch he.Status {
	case http.StatusBadRequest:
		return utils.Validation(fmt.Sprintf("Validation error: %s", message))
	case http.StatusNotFound:
		return utils.NotFound(fmt.Sprintf("Not found: %s", message))
	case http.StatusUnauthorized, http.StatusForbidden:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("Unauthorized: %s", message), he)
	default:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("Service error: %s", message), he)
	}
}
