package resolvers

import (
	"context"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/auth"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// LocationResolver backs the Location fields. Location inputs carry their
// own accountId which must agree with the accountId argument; the caller's
// subject comes from identity.claims.sub.
type LocationResolver struct {
	api   *services.LocationsAPI
	guard auth.Guard
}

func NewLocationResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.NestedSubClaim(ev)
	return &LocationResolver{
		api:   services.NewLocationsAPI(cfg.LocationsAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *LocationResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getLocation":
		return r.getLocation(ctx, ev)
	case "listLocations":
		return r.listLocations(ctx, ev)
	case "createLocation":
		return r.createLocation(ctx, ev)
	case "updateLocation":
		return r.updateLocation(ctx, ev)
	case "deleteLocation":
		return r.deleteLocation(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *LocationResolver) getLocation(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID  string `json:"accountId"`
		LocationID string `json:"locationId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.GetLocation(ctx, args.AccountID, args.LocationID)
}

func (r *LocationResolver) listLocations(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		Cursor    string `json:"cursor"`
		Limit     int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.ListLocations(ctx, args.AccountID, args.Cursor, args.Limit)
}

func (r *LocationResolver) createLocation(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                   `json:"accountId"`
		Input     dtos.LocationCreateInput `json:"input"`
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
	if args.Input.AccountID != args.AccountID {
		return nil, utils.Validation("Input accountId must match request accountId")
	}
	return r.api.CreateLocation(ctx, args.AccountID, args.Input.ToBackend())
}

func (r *LocationResolver) updateLocation(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID  string                   `json:"accountId"`
		LocationID string                   `json:"locationId"`
		Input      dtos.LocationUpdateInput `json:"input"`
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
	if args.Input.AccountID != nil && *args.Input.AccountID != args.AccountID {
		return nil, utils.Validation("Input accountId must match request accountId")
	}
	return r.api.UpdateLocation(ctx, args.AccountID, args.LocationID, args.Input.ToBackend())
}

func (r *LocationResolver) deleteLocation(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID  string `json:"accountId"`
		LocationID string `json:"locationId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	if err := r.api.DeleteLocation(ctx, args.AccountID, args.LocationID); err != nil {
		return nil, err
	}
	return true, nil
}
