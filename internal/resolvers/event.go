package resolvers

import (
	"context"
	"encoding/base64"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/auth"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// eventFetchBatchSize bounds how many per-unit event fetches run
// concurrently during aggregation, to avoid overwhelming the events service.
const eventFetchBatchSize = 10

// EventResolver backs the UnitEvent fields, including the cross-resource
// listEventsByStatus aggregation which joins units and events.
type EventResolver struct {
	events *services.EventsAPI
	units  *services.UnitsAPI
	guard  auth.Guard
	now    func() time.Time
}

func NewEventResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.SubClaim(ev)
	token := ev.BearerToken()
	return &EventResolver{
		events: services.NewEventsAPI(cfg.EventsAPIURL, token, cfg.RequestTimeout),
		units:  services.NewUnitsAPI(cfg.UnitsAPIURL, token, cfg.RequestTimeout),
		guard:  auth.Guard{TenantID: sub},
		now:    time.Now,
	}
}

func (r *EventResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getEvent":
		return r.getEvent(ctx, ev)
	case "listEvents":
		return r.listEvents(ctx, ev)
	case "listEventsByStatus":
		return r.listEventsByStatus(ctx, ev)
	case "createEvent":
		return r.createEvent(ctx, ev)
	case "updateEvent":
		return r.updateEvent(ctx, ev)
	case "deleteEvent":
		return r.deleteEvent(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *EventResolver) getEvent(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		EventID   string `json:"eventId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only access events for your own account"); err != nil {
		return nil, err
	}

	event, err := r.events.GetEvent(ctx, args.AccountID, args.EventID)
	if err != nil {
		return nil, err
	}
	return dtos.EventFromBackend(*event), nil
}

func (r *EventResolver) listEvents(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID     string `json:"accountId"`
		UnitID        string `json:"unitId"`
		EventCategory string `json:"eventCategory"`
		Status        string `json:"status"`
		Severity      string `json:"severity"`
		Priority      string `json:"priority"`
		SourceSystem  string `json:"sourceSystem"`
		From          string `json:"from"`
		To            string `json:"to"`
		Cursor        string `json:"cursor"`
		Limit         int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only list events for your own account"); err != nil {
		return nil, err
	}

	page, err := r.events.ListEvents(ctx, args.AccountID, services.ListEventsQuery{
		UnitID:        args.UnitID,
		EventCategory: args.EventCategory,
		Status:        args.Status,
		Severity:      args.Severity,
		Priority:      args.Priority,
		SourceSystem:  args.SourceSystem,
		From:          args.From,
		To:            args.To,
		Cursor:        args.Cursor,
		Limit:         args.Limit,
	})
	if err != nil {
		return nil, err
	}

	items := make([]dtos.UnitEvent, 0, len(page.Items))
	for _, e := range page.Items {
		items = append(items, dtos.EventFromBackend(e))
	}
	result := dtos.EventPage{Items: items, Limit: page.Limit, Count: page.Count}
	if page.NextCursor != "" {
		result.NextCursor = &page.NextCursor
	}
	return result, nil
}

// createEvent requires authentication but not tenant match: telematics
// integrations report events into accounts they do not own.
func (r *EventResolver) createEvent(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		Input dtos.EventCreateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireAuthenticated(); err != nil {
		return nil, err
	}
	if err := validateInput(args.Input); err != nil {
		return nil, err
	}

	event, err := r.events.CreateEvent(ctx, args.Input.ToBackend(r.now()))
	if err != nil {
		return nil, err
	}
	return dtos.EventFromBackend(*event), nil
}

func (r *EventResolver) updateEvent(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                `json:"accountId"`
		EventID   string                `json:"eventId"`
		Input     dtos.EventUpdateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only update events for your own account"); err != nil {
		return nil, err
	}

	event, err := r.events.UpdateEvent(ctx, args.AccountID, args.EventID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.EventFromBackend(*event), nil
}

func (r *EventResolver) deleteEvent(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		EventID   string `json:"eventId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only delete events for your own account"); err != nil {
		return nil, err
	}

	if err := r.events.DeleteEvent(ctx, args.AccountID, args.EventID); err != nil {
		return nil, err
	}
	return dtos.EventDeleteResponse{
		Success:   true,
		AccountID: args.AccountID,
		EventID:   args.EventID,
		Message:   "Event deleted successfully",
	}, nil
}

// listEventsByStatus aggregates events across every unit in the account:
// fetch all units, fan out event fetches in fixed-size batches, filter by
// the requested statuses, sort, and paginate over the in-memory result.
func (r *EventResolver) listEventsByStatus(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string   `json:"accountId"`
		Status    []string `json:"status"`
		Cursor    string   `json:"cursor"`
		Limit     int      `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only list events for your own account"); err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	units, err := r.units.GetAllUnits(ctx, args.AccountID)
	if err != nil {
		return nil, err
	}
	utils.Logger.WithFields(logrus.Fields{
		"accountId": args.AccountID,
		"units":     len(units),
	}).Info("Fetching events by status")

	unitInfo := make(map[string]dtos.UnitInfo, len(units))
	for _, u := range units {
		unitInfo[u.ID] = dtos.UnitInfo{
			Model:        u.Model,
			ModelYear:    u.ModelYear,
			SuggestedVin: u.SuggestedVin,
		}
	}

	allEvents := r.fetchEventsForUnits(ctx, args.AccountID, units, unitInfo)

	if len(args.Status) > 0 {
		wanted := make(map[string]bool, len(args.Status))
		for _, s := range args.Status {
			wanted[s] = true
		}
		filtered := allEvents[:0]
		for _, e := range allEvents {
			if wanted[e.Status] {
				filtered = append(filtered, e)
			}
		}
		allEvents = filtered
	}

	sort.SliceStable(allEvents, func(i, j int) bool {
		ri, rj := dtos.EventStatusRank(allEvents[i].Status), dtos.EventStatusRank(allEvents[j].Status)
		if ri != rj {
			return ri < rj
		}
		return allEvents[i].CreatedAt > allEvents[j].CreatedAt
	})

	startIndex := decodeIndexCursor(args.Cursor)
	if startIndex > len(allEvents) {
		startIndex = len(allEvents)
	}
	endIndex := startIndex + limit
	if endIndex > len(allEvents) {
		endIndex = len(allEvents)
	}
	page := allEvents[startIndex:endIndex]

	result := dtos.EventsByStatusConnection{
		Items: page,
		Limit: limit,
		Count: len(page),
	}
	if startIndex+limit < len(allEvents) {
		cursor := base64.StdEncoding.EncodeToString([]byte(strconv.Itoa(startIndex + limit)))
		result.NextCursor = &cursor
	}
	return result, nil
}

// fetchEventsForUnits fans out one listEvents call per unit in batches. A
// failed unit contributes nothing; the aggregate survives partial failure.
func (r *EventResolver) fetchEventsForUnits(ctx context.Context, accountID string, units []services.Unit, unitInfo map[string]dtos.UnitInfo) []dtos.EventWithUnitInfo {
	perUnit := make([][]dtos.EventWithUnitInfo, len(units))

	for start := 0; start < len(units); start += eventFetchBatchSize {
		end := start + eventFetchBatchSize
		if end > len(units) {
			end = len(units)
		}

		var wg sync.WaitGroup
		for i := start; i < end; i++ {
			wg.Add(1)
			go func(slot int, unit services.Unit) {
				defer wg.Done()
				page, err := r.events.ListEvents(ctx, accountID, services.ListEventsQuery{UnitID: unit.ID})
				if err != nil {
					utils.Logger.WithFields(logrus.Fields{
						"unitId": unit.ID,
						"error":  err.Error(),
					}).Error("Failed to fetch events for unit")
					return
				}
				events := make([]dtos.EventWithUnitInfo, 0, len(page.Items))
				for _, e := range page.Items {
					events = append(events, dtos.EventWithUnitInfo{
						UnitEvent: dtos.EventFromBackend(e),
						UnitInfo:  unitInfo[unit.ID],
					})
				}
				perUnit[slot] = events
			}(i, units[i])
		}
		wg.Wait()
	}

	var all []dtos.EventWithUnitInfo
	for _, events := range perUnit {
		all = append(all, events...)
	}
	return all
}

// decodeIndexCursor decodes a base64 start index; malformed cursors restart
// from the beginning.
func decodeIndexCursor(cursor string) int {
	if cursor == "" {
		return 0
	}
	decoded, err := base64.StdEncoding.DecodeString(cursor)
	if err != nil {
		utils.Logger.WithField("cursor", cursor).Error("Invalid cursor")
		return 0
	}
	index, err := strconv.Atoi(string(decoded))
	if err != nil || index < 0 {
		utils.Logger.WithField("cursor", cursor).Error("Invalid cursor")
		return 0
	}
	return index
}
