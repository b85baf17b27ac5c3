package resolvers

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/auth"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// partLookupLimit is how many parts a single-part lookup scans. The parts
// service only addresses parts by composite sortKey, so get, update, and
// delete first list the account's parts and match on the partId segment.
const partLookupLimit = 100

// PartResolver backs the Part fields. The caller's subject comes from
// identity.claims.sub.
type PartResolver struct {
	api   *services.PartsAPI
	guard auth.Guard
}

func NewPartResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.NestedSubClaim(ev)
	return &PartResolver{
		api:   services.NewPartsAPI(cfg.PartsAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *PartResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getPart":
		return r.getPart(ctx, ev)
	case "listParts":
		return r.listParts(ctx, ev)
	case "createPart":
		return r.createPart(ctx, ev)
	case "updatePart":
		return r.updatePart(ctx, ev)
	case "deletePart":
		return r.deletePart(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

// findBySortKeySegment lists the account's parts and returns the one whose
// sortKey ends in partId.
func (r *PartResolver) findBySortKeySegment(ctx context.Context, accountID, partID string) (*services.Part, error) {
	result, err := r.api.ListParts(ctx, accountID, services.PartListOptions{Limit: partLookupLimit})
	if err != nil {
		return nil, err
	}
	for i := range result.Data {
		extracted, err := dtos.ExtractPartIDFromSortKey(result.Data[i].SortKey)
		if err != nil {
			continue
		}
		if extracted == partID {
			return &result.Data[i], nil
		}
	}
	return nil, utils.NotFound(fmt.Sprintf("Part not found: %s", partID))
}

func (r *PartResolver) getPart(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		PartID    string `json:"partId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.findBySortKeySegment(ctx, args.AccountID, args.PartID)
}

func (r *PartResolver) listParts(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID  string  `json:"accountId"`
		LocationID *string `json:"locationId"`
		UnitID     *string `json:"unitId"`
		Limit      int     `json:"limit"`
		Cursor     string  `json:"cursor"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	opts := services.PartListOptions{Limit: args.Limit, Cursor: args.Cursor}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	if args.LocationID != nil {
		opts.LocationID = *args.LocationID
	}
	if args.UnitID != nil {
		opts.UnitID = *args.UnitID
	}

	result, err := r.api.ListParts(ctx, args.AccountID, opts)
	if err != nil {
		return nil, err
	}
	return dtos.PartListResponse{
		Items:      result.Data,
		NextCursor: result.Pagination.NextCursor,
		Limit:      result.Pagination.Limit,
		Count:      result.Pagination.Count,
	}, nil
}

func (r *PartResolver) createPart(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string               `json:"accountId"`
		Input     dtos.PartCreateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	if err := validateInput(args.Input); err != nil {
		return nil, err
	}

	partID := uuid.NewString()
	sortKey, err := dtos.GeneratePartSortKey(args.Input.LocationID, args.Input.UnitID, partID)
	if err != nil {
		return nil, err
	}
	return r.api.CreatePart(ctx, args.AccountID, args.Input.ToBackend(partID, sortKey))
}

func (r *PartResolver) updatePart(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string               `json:"accountId"`
		PartID    string               `json:"partId"`
		Input     dtos.PartUpdateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	existing, err := r.findBySortKeySegment(ctx, args.AccountID, args.PartID)
	if err != nil {
		return nil, err
	}

	// Reparenting moves the part to a new composite key. A part belongs to
	// exactly one location or one unit.
	sortKey := existing.SortKey
	if args.Input.LocationID != nil || args.Input.UnitID != nil {
		locationID := args.Input.LocationID
		if locationID == nil {
			locationID = existing.LocationID
		}
		unitID := args.Input.UnitID
		if unitID == nil {
			unitID = existing.UnitID
		}
		if locationID != nil && *locationID != "" && unitID != nil && *unitID != "" {
			return nil, utils.Validation("Part cannot be associated with both location and unit")
		}
		sortKey, err = dtos.GeneratePartSortKey(locationID, unitID, args.PartID)
		if err != nil {
			return nil, err
		}
	}

	return r.api.UpdatePart(ctx, args.AccountID, sortKey, args.Input.ToBackend())
}

func (r *PartResolver) deletePart(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		PartID    string `json:"partId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	part, err := r.findBySortKeySegment(ctx, args.AccountID, args.PartID)
	if err != nil {
		return nil, err
	}
	return r.api.DeletePart(ctx, args.AccountID, part.SortKey)
}
