package dtos

import (
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"github.com/srhoton/srnext-bff/internal/services"
)

// UnitEvent is the GraphQL shape; timestamps are AWSTimestamp epoch seconds.
type UnitEvent struct {
	AccountID          string                       `json:"accountId"`
	EventID            string                       `json:"eventId"`
	UnitID             string                       `json:"unitId"`
	EventType          string                       `json:"eventType"`
	EventCategory      string                       `json:"eventCategory"`
	Severity           *string                      `json:"severity,omitempty"`
	Priority           *string                      `json:"priority,omitempty"`
	Description        *string                      `json:"description,omitempty"`
	Summary            *string                      `json:"summary,omitempty"`
	SourceSystem       *string                      `json:"sourceSystem,omitempty"`
	MaintenanceDetails *services.MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	Status             string                       `json:"status"`
	CreatedAt          int64                        `json:"createdAt"`
	UpdatedAt          *int64                       `json:"updatedAt,omitempty"`
	AcknowledgedAt     *int64                       `json:"acknowledgedAt,omitempty"`
	DeletedAt          *int64                       `json:"deletedAt,omitempty"`
	ExtendedAttributes map[string]any               `json:"extendedAttributes,omitempty"`
}

type EventPage struct {
	Items      []UnitEvent `json:"items"`
	NextCursor *string     `json:"nextCursor,omitempty"`
	Limit      int         `json:"limit"`
	Count      int         `json:"count"`
}

type EventDeleteResponse struct {
	Success   bool   `json:"success"`
	AccountID string `json:"accountId"`
	EventID   string `json:"eventId"`
	Message   string `json:"message"`
}

type EventCreateInput struct {
	AccountID          string                       `json:"accountId" validate:"required"`
	UnitID             string                       `json:"unitId" validate:"required"`
	EventType          string                       `json:"eventType" validate:"required"`
	EventCategory      string                       `json:"eventCategory" validate:"required,oneof=maintenance fault certification error_report inspection accident violation fuel driver_report other"`
	Severity           *string                      `json:"severity,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Priority           *string                      `json:"priority,omitempty" validate:"omitempty,oneof=low medium high critical"`
	Description        *string                      `json:"description,omitempty"`
	Summary            *string                      `json:"summary,omitempty"`
	SourceSystem       *string                      `json:"sourceSystem,omitempty"`
	MaintenanceDetails *services.MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	ExtendedAttributes map[string]any               `json:"extendedAttributes,omitempty"`
	// CustomData is a legacy field still sent by older clients; it is
	// dropped on the way to the backend.
	CustomData map[string]any `json:"customData,omitempty"`
}

type EventUpdateInput struct {
	EventType          *string                      `json:"eventType,omitempty"`
	EventCategory      *string                      `json:"eventCategory,omitempty"`
	Severity           *string                      `json:"severity,omitempty"`
	Priority           *string                      `json:"priority,omitempty"`
	Description        *string                      `json:"description,omitempty"`
	Summary            *string                      `json:"summary,omitempty"`
	SourceSystem       *string                      `json:"sourceSystem,omitempty"`
	MaintenanceDetails *services.MaintenanceDetails `json:"maintenanceDetails,omitempty"`
	Status             *string                      `json:"status,omitempty"`
	ExtendedAttributes map[string]any               `json:"extendedAttributes,omitempty"`
}

// UnitInfo is the unit summary attached to aggregated events.
type UnitInfo struct {
	Model        *string `json:"model,omitempty"`
	ModelYear    *string `json:"modelYear,omitempty"`
	SuggestedVin string  `json:"suggestedVin"`
}

type EventWithUnitInfo struct {
	UnitEvent
	UnitInfo UnitInfo `json:"unitInfo"`
}

type EventsByStatusConnection struct {
	Items      []EventWithUnitInfo `json:"items"`
	NextCursor *string             `json:"nextCursor,omitempty"`
	Limit      int                 `json:"limit"`
	Count      int                 `json:"count"`
}

// EventStatusOrder is the fixed presentation order for aggregated events.
var EventStatusOrder = []string{
	"acknowledged",
	"cancelled",
	"closed",
	"created",
	"escalated",
	"in_progress",
	"on_hold",
	"resolved",
}

// EventStatusRank returns the sort rank of a status. Unknown statuses rank
// -1 and therefore sort ahead of the known ones.
func EventStatusRank(status string) int {
	for i, s := range EventStatusOrder {
		if s == status {
			return i
		}
	}
	return -1
}

func EventFromBackend(e services.UnitEvent) UnitEvent {
	return UnitEvent{
		AccountID:          e.AccountID,
		EventID:            e.EventID,
		UnitID:             e.UnitID,
		EventType:          e.EventType,
		EventCategory:      e.EventCategory,
		Severity:           e.Severity,
		Priority:           e.Priority,
		Description:        e.Description,
		Summary:            e.Summary,
		SourceSystem:       e.SourceSystem,
		MaintenanceDetails: e.MaintenanceDetails,
		Status:             e.Status,
		CreatedAt:          ISOToSeconds(e.CreatedAt),
		UpdatedAt:          ISOToSecondsPtr(e.UpdatedAt),
		AcknowledgedAt:     ISOToSecondsPtr(e.AcknowledgedAt),
		DeletedAt:          ISOToSecondsPtr(e.DeletedAt),
		ExtendedAttributes: e.ExtendedAttributes,
	}
}

// ToBackend synthesizes the fields the backend requires but GraphQL does not
// carry: eventId, createdAt, default status, and an extendedAttributes object.
// The legacy customData field is dropped; maintenance events without details
// get an actionType derived from the event type.
func (in EventCreateInput) ToBackend(now time.Time) services.EventCreate {
	create := services.EventCreate{
		AccountID:          in.AccountID,
		EventID:            GenerateEventID(now),
		UnitID:             in.UnitID,
		EventType:          in.EventType,
		EventCategory:      in.EventCategory,
		Severity:           in.Severity,
		Priority:           in.Priority,
		Description:        in.Description,
		Summary:            in.Summary,
		SourceSystem:       in.SourceSystem,
		MaintenanceDetails: in.MaintenanceDetails,
		Status:             "created",
		CreatedAt:          now.UTC().Format(time.RFC3339),
		ExtendedAttributes: in.ExtendedAttributes,
	}
	if create.ExtendedAttributes == nil {
		create.ExtendedAttributes = map[string]any{}
	}
	if in.EventCategory == "maintenance" && in.MaintenanceDetails == nil {
		actionType := MapEventTypeToActionType(in.EventType)
		create.MaintenanceDetails = &services.MaintenanceDetails{ActionType: &actionType}
	}
	return create
}

func (in EventUpdateInput) ToBackend() services.EventUpdate {
	return services.EventUpdate{
		EventType:          in.EventType,
		EventCategory:      in.EventCategory,
		Severity:           in.Severity,
		Priority:           in.Priority,
		Description:        in.Description,
		Summary:            in.Summary,
		SourceSystem:       in.SourceSystem,
		MaintenanceDetails: in.MaintenanceDetails,
		Status:             in.Status,
		ExtendedAttributes: in.ExtendedAttributes,
	}
}

const eventIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateEventID builds ids like evt_<base36 millis>_<random6>.
func GenerateEventID(now time.Time) string {
	var random strings.Builder
	for i := 0; i < 6; i++ {
		random.WriteByte(eventIDAlphabet[rand.Intn(len(eventIDAlphabet))]) //nolint:gosec
	}
	return fmt.Sprintf("evt_%s_%s", strconv.FormatInt(now.UnixMilli(), 36), random.String())
}

var actionTypeByEventType = map[string]string{
	"MAINTENANCE_REQUIRED":   "repair",
	"PREVENTIVE_MAINTENANCE": "preventive_maintenance",
	"SCHEDULED_SERVICE":      "scheduled_service",
	"REPAIR":                 "repair",
	"INSPECTION":             "inspection",
	"DIAGNOSTIC":             "diagnostic",
	"EMERGENCY_REPAIR":       "emergency_repair",
	"WARRANTY_REPAIR":        "warranty_repair",
	"RECALL":                 "recall",
	"MODIFICATION":           "modification",
}

// MapEventTypeToActionType maps a GraphQL event type onto the backend's
// maintenance action type, defaulting to "other".
func MapEventTypeToActionType(eventType string) string {
	if action, ok := actionTypeByEventType[eventType]; ok {
		return action
	}
	return "other"
}
