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

type MaintenanceComponent struct {
	Name   string  `json:"name"`
	Action string  `json:"action"`
	Notes  *string `json:"notes,omitempty"`
}

type MaintenanceDetails struct {
	ActionType  *string                `json:"actionType,omitempty"`
	Description *string                `json:"description,omitempty"`
	Cost        *float64               `json:"cost,omitempty"`
	PartNumbers []string               `json:"partNumbers,omitempty"`
	LaborHours  *float64               `json:"laborHours,omitempty"`
	ScheduledAt *string                `json:"scheduledAt,omitempty"`
	CompletedAt *string                `json:"completedAt,omitempty"`
	NextDueAt   *string                `json:"nextDueAt,omitempty"`
	Components  []MaintenanceComponent `json:"components,omitempty"`
}

// UnitEvent is the backend wire shape; timestamps are ISO-8601 strings.
type UnitEvent struct {
	AccountID          string              `json:"accountId"`
	EventID            string              `json:"eventId"`
	UnitID             string              `json:"unitId"`
	EventType          string              `json:"eventType"`
	EventCategory      string              `json:"eventCategory"`
	Severity           *string             `json:"severity,omitempty"`
	Priority           *string             `json:"priority,omitempty"`
	Description        *string             `json:"description,omitempty"`
	Summary            *string             `json:"summary,omitempty"`
	SourceSystem       *string             `json:"sourceSystem,omitempty"`
	MaintenanceDetails *MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	Status             string              `json:"status"`
	CreatedAt          string              `json:"createdAt"`
	UpdatedAt          *string             `json:"updatedAt,omitempty"`
	AcknowledgedAt     *string             `json:"acknowledgedAt,omitempty"`
	DeletedAt          *string             `json:"deletedAt,omitempty"`
	ExtendedAttributes map[string]any      `json:"extendedAttributes,omitempty"`
}

// EventCreate is the backend create payload; the resolver fills the
// synthesized fields (eventId, createdAt, status) before the call.
type EventCreate struct {
	AccountID          string              `json:"accountId"`
	EventID            string              `json:"eventId"`
	UnitID             string              `json:"unitId"`
	EventType          string              `json:"eventType"`
	EventCategory      string              `json:"eventCategory"`
	Severity           *string             `json:"severity,omitempty"`
	Priority           *string             `json:"priority,omitempty"`
	Description        *string             `json:"description,omitempty"`
	Summary            *string             `json:"summary,omitempty"`
	SourceSystem       *string             `json:"sourceSystem,omitempty"`
	MaintenanceDetails *MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	Status             string              `json:"status"`
	CreatedAt          string              `json:"createdAt"`
	ExtendedAttributes map[string]any      `json:"extendedAttributes"`
}

type EventUpdate struct {
	EventType          *string             `json:"eventType,omitempty"`
	EventCategory      *string             `json:"eventCategory,omitempty"`
	Severity           *string             `json:"severity,omitempty"`
	Priority           *string             `json:"priority,omitempty"`
	Description        *string             `json:"description,omitempty"`
	Summary            *string             `json:"summary,omitempty"`
	SourceSystem       *string             `json:"sourceSystem,omitempty"`
	MaintenanceDetails *MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	Status             *string             `json:"status,omitempty"`
	ExtendedAttributes map[string]any      `json:"extendedAttributes,omitempty"`
}

// ListEventsQuery carries the optional list filters; zero values are omitted
// from the request.
type ListEventsQuery struct {
	UnitID        string
	EventCategory string
	Status        string
	Severity      string
	Priority      string
	SourceSystem  string
	From          string
	To            string
	Cursor        string
	Limit         int
}

type EventPage struct {
	Items      []UnitEvent `json:"items"`
	NextCursor string      `json:"nextCursor,omitempty"`
	Limit      int         `json:"limit"`
	Count      int         `json:"count"`
}

type eventErrorBody struct {
	Error   string   `json:"error"`
	Message string   `json:"message"`
	Details []string `json:"details,omitempty"`
}

type EventsAPI struct {
	c *apiClient
}

func NewEventsAPI(baseURL, token string, timeout time.Duration) *EventsAPI {
	return &EventsAPI{c: newAPIClient(baseURL, token, timeout)}
}

func (s *EventsAPI) eventPath(accountID, eventID string) string {
	return "/events/" + pathSegment(accountID) + "/" + pathSegment(eventID)
}

func (s *EventsAPI) GetEvent(ctx context.Context, accountID, eventID string) (*UnitEvent, error) {
	var evt UnitEvent
	err := s.c.do(ctx, http.MethodGet, s.eventPath(accountID, eventID), nil, nil, &evt)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Event %s not found for account %s", eventID, accountID))
	}
	return &evt, nil
}

func (s *EventsAPI) ListEvents(ctx context.Context, accountID string, q ListEventsQuery) (*EventPage, error) {
	query := url.Values{}
	setIfPresent := func(key, value string) {
		if value != "" {
			query.Set(key, value)
		}
	}
	setIfPresent("unitId", q.UnitID)
	setIfPresent("eventCategory", q.EventCategory)
	setIfPresent("status", q.Status)
	setIfPresent("severity", q.Severity)
	setIfPresent("priority", q.Priority)
	setIfPresent("sourceSystem", q.SourceSystem)
	setIfPresent("from", q.From)
	setIfPresent("to", q.To)
	setIfPresent("cursor", q.Cursor)
	if q.Limit > 0 {
		query.Set("limit", strconv.Itoa(q.Limit))
	}

	var page EventPage
	if err := s.c.do(ctx, http.MethodGet, "/events/"+pathSegment(accountID), query, nil, &page); err != nil {
		return nil, s.translate(err, "")
	}
	return &page, nil
}

func (s *EventsAPI) CreateEvent(ctx context.Context, input EventCreate) (*UnitEvent, error) {
	var evt UnitEvent
	if err := s.c.do(ctx, http.MethodPost, "/events", nil, input, &evt); err != nil {
		return nil, s.translate(err, "")
	}
	return &evt, nil
}

func (s *EventsAPI) UpdateEvent(ctx context.Context, accountID, eventID string, input EventUpdate) (*UnitEvent, error) {
	var evt UnitEvent
	err := s.c.do(ctx, http.MethodPut, s.eventPath(accountID, eventID), nil, input, &evt)
	if err != nil {
		return nil, s.translate(err, fmt.Sprintf("Event %s not found for account %s", eventID, accountID))
	}
	return &evt, nil
}

func (s *EventsAPI) DeleteEvent(ctx context.Context, accountID, eventID string) error {
	err := s.c.do(ctx, http.MethodDelete, s.eventPath(accountID, eventID), nil, nil, nil)
	if err != nil {
		return s.translate(err, fmt.Sprintf("Event %s not found for account %s", eventID, accountID))
	}
	return nil
}

func (s *EventsAPI) translate(err error, notFoundMessage string) error {
	he, ok := asHTTPError(err)
	if !ok {
		return err
	}

	var body eventErrorBody
	hasBody := he.decode(&body)

	switch {
	case he.Status == http.StatusNotFound && notFoundMessage != "":
		return utils.NotFound(notFoundMessage)
	case hasBody && body.Message != "":
		return utils.ServiceFailure(he.Status, body.Message, he)
	default:
		return utils.ServiceFailure(he.Status, fmt.Sprintf("API request failed: %s", he.Error()), he)
	}
}
