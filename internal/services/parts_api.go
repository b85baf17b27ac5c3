package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

type Dimensions struct {
	Length *float64 `json:"length,omitempty"`
	Width  *float64 `json:"width,omitempty"`
	Height *float64 `json:"height,omitempty"`
}

// Part is the backend wire shape. The sortKey is a synthetic composite key:
// "location#<locationId>#<partId>" or "unit#<unitId>#<partId>".
type Part struct {
	AccountID          string            `json:"accountId"`
	SortKey            string            `json:"sortKey"`
	PartID             string            `json:"partId"`
	PartNumber         string            `json:"partNumber"`
	Description        string            `json:"description"`
	Manufacturer       string            `json:"manufacturer"`
	Category           string            `json:"category"`
	Subcategory        *string           `json:"subcategory,omitempty"`
	UnitID             *string           `json:"unitId,omitempty"`
	LocationID         *string           `json:"locationId,omitempty"`
	Condition          string            `json:"condition"`
	Status             string            `json:"status"`
	Quantity           int               `json:"quantity"`
	SerialNumber       *string           `json:"serialNumber,omitempty"`
	BatchNumber        *string           `json:"batchNumber,omitempty"`
	InstallDate        *int64            `json:"installDate,omitempty"`
	PurchaseDate       *int64            `json:"purchaseDate,omitempty"`
	WarrantyExpiration *int64            `json:"warrantyExpiration,omitempty"`
	Vendor             *string           `json:"vendor,omitempty"`
	Weight             *float64          `json:"weight,omitempty"`
	Dimensions         *Dimensions       `json:"dimensions,omitempty"`
	Specifications     map[string]string `json:"specifications,omitempty"`
	ExtendedAttributes map[string]any    `json:"extendedAttributes,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
	CreatedAt          *int64            `json:"createdAt,omitempty"`
	UpdatedAt          *int64            `json:"updatedAt,omitempty"`
	DeletedAt          *int64            `json:"deletedAt,omitempty"`
}

// PartCreate mirrors Part minus server-assigned timestamps; partId and
// sortKey are synthesized by the resolver.
type PartCreate struct {
	PartID             string            `json:"partId"`
	SortKey            string            `json:"sortKey"`
	PartNumber         string            `json:"partNumber"`
	Description        string            `json:"description"`
	Manufacturer       string            `json:"manufacturer"`
	Category           string            `json:"category"`
	Subcategory        *string           `json:"subcategory,omitempty"`
	UnitID             *string           `json:"unitId,omitempty"`
	LocationID         *string           `json:"locationId,omitempty"`
	Condition          string            `json:"condition"`
	Status             string            `json:"status"`
	Quantity           int               `json:"quantity"`
	SerialNumber       *string           `json:"serialNumber,omitempty"`
	BatchNumber        *string           `json:"batchNumber,omitempty"`
	InstallDate        *int64            `json:"installDate,omitempty"`
	PurchaseDate       *int64            `json:"purchaseDate,omitempty"`
	WarrantyExpiration *int64            `json:"warrantyExpiration,omitempty"`
	Vendor             *string           `json:"vendor,omitempty"`
	Weight             *float64          `json:"weight,omitempty"`
	Dimensions         *Dimensions       `json:"dimensions,omitempty"`
	Specifications     map[string]string `json:"specifications,omitempty"`
	ExtendedAttributes map[string]any    `json:"extendedAttributes,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
}

type PartUpdate struct {
	PartNumber         *string           `json:"partNumber,omitempty"`
	Description        *string           `json:"description,omitempty"`
	Manufacturer       *string           `json:"manufacturer,omitempty"`
	Category           *string           `json:"category,omitempty"`
	Subcategory        *string           `json:"subcategory,omitempty"`
	UnitID             *string           `json:"unitId,omitempty"`
	LocationID         *string           `json:"locationId,omitempty"`
	Condition          *string           `json:"condition,omitempty"`
	Status             *string           `json:"status,omitempty"`
	Quantity           *int              `json:"quantity,omitempty"`
	SerialNumber       *string           `json:"serialNumber,omitempty"`
	BatchNumber        *string           `json:"batchNumber,omitempty"`
	InstallDate        *int64            `json:"installDate,omitempty"`
	PurchaseDate       *int64            `json:"purchaseDate,omitempty"`
	WarrantyExpiration *int64            `json:"warrantyExpiration,omitempty"`
	Vendor             *string           `json:"vendor,omitempty"`
	Weight             *float64          `json:"weight,omitempty"`
	Dimensions         *Dimensions       `json:"dimensions,omitempty"`
	Specifications     map[string]string `json:"specifications,omitempty"`
	ExtendedAttributes map[string]any    `json:"extendedAttributes,omitempty"`
	Tags               []string          `json:"tags,omitempty"`
	Notes              *string           `json:"notes,omitempty"`
}

// The parts service wraps everything in a success envelope.
type partEnvelope struct {
	Success bool  `json:"success"`
	Data    *Part `json:"data,omitempty"`
}

type PartPagination struct {
	Limit      int     `json:"limit"`
	Count      int     `json:"count"`
	NextCursor *string `json:"nextCursor,omitempty"`
}

type PartListResult struct {
	Success    bool           `json:"success"`
	Data       []Part         `json:"data"`
	Pagination PartPagination `json:"pagination"`
}

type deleteEnvelope struct {
	Success bool `json:"success"`
}

type partErrorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

type PartListOptions struct {
	LocationID string
	UnitID     string
	Limit      int
	Cursor     string
}

type PartsAPI struct {
	c *apiClient
}

func NewPartsAPI(baseURL, token string, timeout time.Duration) *PartsAPI {
	return &PartsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *PartsAPI) ListParts(ctx context.Context, accountID string, opts PartListOptions) (*PartListResult, error) {
	query := url.Values{}
	if opts.LocationID != "" {
		query.Set("locationId", opts.LocationID)
	}
	if opts.UnitID != "" {
		query.Set("unitId", opts.UnitID)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}

	var result PartListResult
	if err := s.c.do(ctx, http.MethodGet, "/parts/"+pathSegment(accountID), query, nil, &result); err != nil {
		return nil, s.translate(err)
	}
	return &result, nil
}

func (s *PartsAPI) GetPart(ctx context.Context, accountID, sortKey string) (*Part, error) {
	var env partEnvelope
	err := s.c.do(ctx, http.MethodGet, "/parts/"+pathSegment(accountID)+"/"+pathSegment(sortKey), nil, nil, &env)
	if err != nil {
		return nil, s.translate(err)
	}
	if !env.Success || env.Data == nil {
		return nil, utils.ServiceFailure(0, "Invalid response from parts API", nil)
	}
	return env.Data, nil
}

func (s *PartsAPI) CreatePart(ctx context.Context, accountID string, input PartCreate) (*Part, error) {
	var env partEnvelope
	err := s.c.do(ctx, http.MethodPost, "/parts/"+pathSegment(accountID), nil, input, &env)
	if err != nil {
		return nil, s.translate(err)
	}
	if !env.Success || env.Data == nil {
		return nil, utils.ServiceFailure(0, "Invalid response from parts API", nil)
	}
	return env.Data, nil
}

func (s *PartsAPI) UpdatePart(ctx context.Context, accountID, sortKey string, input PartUpdate) (*Part, error) {
	var env partEnvelope
	err := s.c.do(ctx, http.MethodPut, "/parts/"+pathSegment(accountID)+"/"+pathSegment(sortKey), nil, input, &env)
	if err != nil {
		return nil, s.translate(err)
	}
	if !env.Success || env.Data == nil {
		return nil, utils.ServiceFailure(0, "Invalid response from parts API", nil)
	}
	return env.Data, nil
}

func (s *PartsAPI) DeletePart(ctx context.Context, accountID, sortKey string) (bool, error) {
	var env deleteEnvelope
	err := s.c.do(ctx, http.MethodDelete, "/parts/"+pathSegment(accountID)+"/"+pathSegment(sortKey), nil, nil, &env)
	if err != nil {
		return false, s.translate(err)
	}
	return env.Success, nil
}

func (s *PartsAPI) translate(err error) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	message := he.Error()
	var body partErrorBody
	if he.decode(&body) && body.Error.Message != "" {
		message = body.Error.Message
	}

	switch he.Status {
	case http.StatusBadRequest:
		return utils.Validation(message)
	case http.StatusNotFound:
		return utils.NotFound(message)
	default:
		return utils.ServiceFailure(he.Status, message, he)
	}
}
