package resolvers

import (
	"context"
	"sync"
	"time"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// UnitResolver backs the Unit fields. Unit operations take no accountId
// argument; the tenant is always the identity.sub of the caller.
type UnitResolver struct {
	units      *services.UnitsAPI
	workOrders *services.WorkOrdersAPI
	tenantID   string
	token      string
	now        func() time.Time
}

func NewUnitResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.SubClaim(ev)
	token := ev.BearerToken()
	return &UnitResolver{
		units:      services.NewUnitsAPI(cfg.UnitsAPIURL, token, cfg.RequestTimeout),
		workOrders: services.NewWorkOrdersAPI(cfg.WorkOrdersAPIURL, token, cfg.RequestTimeout),
		tenantID:   sub,
		token:      token,
		now:        time.Now,
	}
}

func (r *UnitResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getUnit":
		return r.getUnit(ctx, ev)
	case "listUnits":
		return r.listUnits(ctx, ev)
	case "getUnitWithWorkOrders":
		return r.getUnitWithWorkOrders(ctx, ev)
	case "createUnit":
		return r.createUnit(ctx, ev)
	case "updateUnit":
		return r.updateUnit(ctx, ev)
	case "deleteUnit":
		return r.deleteUnit(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

// authorize resolves the tenant for the call: a credential must be present
// and the identity must carry a subject.
func (r *UnitResolver) authorize() (string, error) {
	if r.token == "" {
		return "", utils.Unauthenticated("Authorization header is missing")
	}
	if r.tenantID == "" {
		return "", utils.Unauthenticated("User identity not found in token")
	}
	return r.tenantID, nil
}

func (r *UnitResolver) getUnit(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		ID string `json:"id"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if args.ID == "" {
		return nil, utils.Validation("Unit ID is required")
	}
	return r.units.GetUnit(ctx, accountID, args.ID)
}

func (r *UnitResolver) listUnits(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		Cursor string `json:"cursor"`
		Limit  int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}
	return r.units.ListUnits(ctx, accountID, args.Cursor, limit)
}

func (r *UnitResolver) getUnitWithWorkOrders(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		Cursor string `json:"cursor"`
		Limit  int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	page, err := r.units.ListUnits(ctx, accountID, args.Cursor, limit)
	if err != nil {
		return nil, err
	}

	// One work-order fetch per unit, all in flight at once. A failed fetch
	// downgrades that unit to an empty workOrders list instead of failing
	// the whole page.
	items := make([]dtos.UnitWithWorkOrders, len(page.Items))
	var wg sync.WaitGroup
	for i, unit := range page.Items {
		wg.Add(1)
		go func(i int, unit services.Unit) {
			defer wg.Done()
			items[i] = dtos.UnitWithWorkOrders{Unit: unit, WorkOrders: []services.WorkOrder{}}
			woPage, woErr := r.workOrders.ListWorkOrdersForUnit(ctx, accountID, unit.ID)
			if woErr != nil {
				utils.Logger.WithError(woErr).WithField("unitId", unit.ID).
					Error("Failed to fetch work orders for unit")
				return
			}
			if woPage.Items != nil {
				items[i].WorkOrders = woPage.Items
			}
		}(i, unit)
	}
	wg.Wait()

	result := dtos.UnitsWithWorkOrdersPage{Items: items}
	if page.Cursor != "" {
		cursor := page.Cursor
		result.Cursor = &cursor
	}
	hasMore := page.HasMore
	result.HasMore = &hasMore
	return result, nil
}

func (r *UnitResolver) createUnit(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		Input map[string]any `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if args.Input == nil {
		return nil, utils.Validation("Input is required")
	}
	locationID, _ := args.Input["locationId"].(string)
	suggestedVin, _ := args.Input["suggestedVin"].(string)
	if locationID == "" || suggestedVin == "" {
		return nil, utils.Validation("locationId and suggestedVin are required")
	}

	now := r.now().UnixMilli()
	unit := services.UnitCreate{
		"accountId":    accountID,
		"createdAt":    now,
		"updatedAt":    now,
		"deletedAt":    int64(0),
		"unitType":     "commercialVehicleType",
		"locationId":   locationID,
		"suggestedVin": suggestedVin,
	}
	for k, v := range args.Input {
		unit[k] = v
	}
	return r.units.CreateUnit(ctx, accountID, unit)
}

func (r *UnitResolver) updateUnit(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		ID    string         `json:"id"`
		Input map[string]any `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if args.ID == "" {
		return nil, utils.Validation("Unit ID is required")
	}
	if len(args.Input) == 0 {
		return nil, utils.Validation("At least one field to update is required")
	}

	update := services.UnitUpdate{
		"id":        args.ID,
		"updatedAt": r.now().UnixMilli(),
	}
	for k, v := range args.Input {
		update[k] = v
	}
	return r.units.UpdateUnit(ctx, accountID, args.ID, update)
}

func (r *UnitResolver) deleteUnit(ctx context.Context, ev *appsync.Event) (any, error) {
	accountID, err := r.authorize()
	if err != nil {
		return nil, err
	}
	var args struct {
		ID string `json:"id"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if args.ID == "" {
		return nil, utils.Validation("Unit ID is required")
	}
	if err := r.units.DeleteUnit(ctx, accountID, args.ID); err != nil {
		return nil, err
	}
	return dtos.UnitDeleteResponse{
		Success: true,
		ID:      args.ID,
		Message: "Unit deleted successfully",
	}, nil
}
