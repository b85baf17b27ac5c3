package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/srhoton/srnext-bff/internal/utils"
)

// WorkOrder is the backend wire shape; timestamps are epoch milliseconds.
type WorkOrder struct {
	WorkOrderID string   `json:"workOrderId"`
	AccountID   string   `json:"accountId"`
	ContactID   string   `json:"contactId"`
	UnitID      string   `json:"unitId"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Notes       []string `json:"notes"`
	CreatedAt   int64    `json:"createdAt"`
	UpdatedAt   int64    `json:"updatedAt"`
	DeletedAt   *int64   `json:"deletedAt,omitempty"`
}

type WorkOrderCreate struct {
	ContactID   string   `json:"contactId"`
	UnitID      string   `json:"unitId"`
	Status      string   `json:"status"`
	Description string   `json:"description"`
	Notes       []string `json:"notes,omitempty"`
}

type WorkOrderUpdate struct {
	ContactID   *string  `json:"contactId,omitempty"`
	UnitID      *string  `json:"unitId,omitempty"`
	Status      *string  `json:"status,omitempty"`
	Description *string  `json:"description,omitempty"`
	Notes       []string `json:"notes,omitempty"`
}

type WorkOrderPage struct {
	Items      []WorkOrder `json:"items"`
	NextCursor *string     `json:"nextCursor,omitempty"`
}

// The work-order service reports failures as RFC 7807 problem details.
type problemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type workOrderCreateBody struct {
	WorkOrderCreate
	WorkOrderID string `json:"workOrderId"`
	AccountID   string `json:"accountId"`
	CreatedAt   int64  `json:"createdAt"`
	UpdatedAt   int64  `json:"updatedAt"`
}

type WorkOrdersAPI struct {
	c   *apiClient
	now func() time.Time
}

func NewWorkOrdersAPI(baseURL, token string, timeout time.Duration) *WorkOrdersAPI {
	return &WorkOrdersAPI{c: newAPIClient(baseURL, token, timeout), now: time.Now}
}

func (s *WorkOrdersAPI) GetWorkOrder(ctx context.Context, accountID, workOrderID string) (*WorkOrder, error) {
	var wo WorkOrder
	err := s.c.do(ctx, http.MethodGet, "/accounts/"+pathSegment(accountID)+"/work-orders/"+pathSegment(workOrderID), nil, nil, &wo)
	if err != nil {
		return nil, s.translate(err)
	}
	return &wo, nil
}

func (s *WorkOrdersAPI) ListWorkOrders(ctx context.Context, accountID string, pageSize int, cursor string) (*WorkOrderPage, error) {
	query := url.Values{}
	if pageSize > 0 {
		query.Set("pageSize", strconv.Itoa(pageSize))
	}
	if cursor != "" {
		query.Set("cursor", cursor)
	}

	var page WorkOrderPage
	if err := s.c.do(ctx, http.MethodGet, "/accounts/"+pathSegment(accountID)+"/work-orders", query, nil, &page); err != nil {
		return nil, s.translate(err)
	}
	return &page, nil
}

// ListWorkOrdersForUnit fetches every work order attached to one unit.
func (s *WorkOrdersAPI) ListWorkOrdersForUnit(ctx context.Context, accountID, unitID string) (*WorkOrderPage, error) {
	query := url.Values{}
	query.Set("unitId", unitID)

	var page WorkOrderPage
	if err := s.c.do(ctx, http.MethodGet, "/accounts/"+pathSegment(accountID)+"/work-orders", query, nil, &page); err != nil {
		return nil, s.translate(err)
	}
	return &page, nil
}

// CreateWorkOrder fills in the id, owner, and timestamps the backend requires
// on the way in.
func (s *WorkOrdersAPI) CreateWorkOrder(ctx context.Context, accountID string, input WorkOrderCreate) (*WorkOrder, error) {
	now := s.now().UnixMilli()
	body := workOrderCreateBody{
		WorkOrderCreate: input,
		WorkOrderID:     uuid.NewString(),
		AccountID:       accountID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	var wo WorkOrder
	err := s.c.do(ctx, http.MethodPost, "/accounts/"+pathSegment(accountID)+"/work-orders", nil, body, &wo)
	if err != nil {
		return nil, s.translate(err)
	}
	return &wo, nil
}

func (s *WorkOrdersAPI) UpdateWorkOrder(ctx context.Context, accountID, workOrderID string, input WorkOrderUpdate) (*WorkOrder, error) {
	var wo WorkOrder
	err := s.c.doWithContentType(ctx, http.MethodPut,
		"/accounts/"+pathSegment(accountID)+"/work-orders/"+pathSegment(workOrderID),
		nil, input, &wo, "application/merge-patch+json")
	if err != nil {
		return nil, s.translate(err)
	}
	return &wo, nil
}

func (s *WorkOrdersAPI) DeleteWorkOrder(ctx context.Context, accountID, workOrderID string) (bool, error) {
	err := s.c.do(ctx, http.MethodDelete, "/accounts/"+pathSegment(accountID)+"/work-orders/"+pathSegment(workOrderID), nil, nil, nil)
	if err != nil {
		return false, s.translate(err)
	}
	return true, nil
}

func (s *WorkOrdersAPI) translate(err error) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	message := he.Error()
	var body problemDetail
	if he.decode(&body) && body.Detail != "" {
		message = body.Detail
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
