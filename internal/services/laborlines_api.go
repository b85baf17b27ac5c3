package services

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

type LaborLine struct {
	LaborLineID string   `json:"laborLineId"`
	AccountID   string   `json:"accountId"`
	TaskID      string   `json:"taskId"`
	PartID      []string `json:"partId,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type LaborLineCreate struct {
	LaborLineID string   `json:"laborLineId,omitempty"`
	TaskID      string   `json:"taskId"`
	PartID      []string `json:"partId,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type LaborLineUpdate struct {
	TaskID      *string  `json:"taskId,omitempty"`
	PartID      []string `json:"partId,omitempty"`
	Notes       []string `json:"notes,omitempty"`
	Description *string  `json:"description,omitempty"`
}

type LaborLinePage struct {
	Items      []LaborLine `json:"items"`
	NextCursor *string     `json:"nextCursor,omitempty"`
	HasMore    bool        `json:"hasMore"`
}

type LaborLineListOptions struct {
	TaskID string
	Cursor string
	Limit  int
}

type laborLineErrorBody struct {
	Message string `json:"message"`
}

type LaborLinesAPI struct {
	c *apiClient
}

func NewLaborLinesAPI(baseURL, token string, timeout time.Duration) *LaborLinesAPI {
	return &LaborLinesAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *LaborLinesAPI) GetLaborLine(ctx context.Context, accountID, laborLineID string) (*LaborLine, error) {
	var line LaborLine
	err := s.c.do(ctx, http.MethodGet, "/labor-lines/"+pathSegment(accountID)+"/"+pathSegment(laborLineID), nil, nil, &line)
	if err != nil {
		return nil, s.translate(err)
	}
	return &line, nil
}

func (s *LaborLinesAPI) ListLaborLines(ctx context.Context, accountID string, opts LaborLineListOptions) (*LaborLinePage, error) {
	query := url.Values{}
	if opts.TaskID != "" {
		query.Set("taskId", opts.TaskID)
	}
	if opts.Cursor != "" {
		query.Set("cursor", opts.Cursor)
	}
	if opts.Limit > 0 {
		query.Set("limit", strconv.Itoa(opts.Limit))
	}

	var page LaborLinePage
	if err := s.c.do(ctx, http.MethodGet, "/labor-lines/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err)
	}
	return &page, nil
}

func (s *LaborLinesAPI) CreateLaborLine(ctx context.Context, accountID string, input LaborLineCreate) (*LaborLine, error) {
	var line LaborLine
	err := s.c.do(ctx, http.MethodPost, "/labor-lines/"+pathSegment(accountID), nil, input, &line)
	if err != nil {
		return nil, s.translate(err)
	}
	return &line, nil
}

func (s *LaborLinesAPI) UpdateLaborLine(ctx context.Context, accountID, laborLineID string, input LaborLineUpdate) (*LaborLine, error) {
	var line LaborLine
	err := s.c.do(ctx, http.MethodPut, "/labor-lines/"+pathSegment(accountID)+"/"+pathSegment(laborLineID), nil, input, &line)
	if err != nil {
		return nil, s.translate(err)
	}
	return &line, nil
}

func (s *LaborLinesAPI) DeleteLaborLine(ctx context.Context, accountID, laborLineID string) error {
	err := s.c.do(ctx, http.MethodDelete, "/labor-lines/"+pathSegment(accountID)+"/"+pathSegment(laborLineID), nil, nil, nil)
	if err != nil {
		return s.translate(err)
	}
	return nil
}

func (s *LaborLinesAPI) translate(err error) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	var body laborLineErrorBody
	hasMessage := he.decode(&body) && body.Message != ""

	switch he.Status {
	case http.StatusBadRequest:
		if hasMessage {
			return utils.Validation(body.Message)
		}
		return utils.Validation("Bad request")
	case http.StatusNotFound:
		if hasMessage {
			return utils.NotFound(body.Message)
		}
		return utils.NotFound("Labor line not found")
	default:
		if hasMessage {
			return utils.ServiceFailure(he.Status, body.Message, he)
		}
		return utils.ServiceFailure(he.Status, he.Error(), he)
	}
}
