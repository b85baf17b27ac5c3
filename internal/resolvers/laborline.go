package resolvers

import (
	"context"

	"github.com/google/uuid"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/auth"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/dtos"
	"github.com/srhoton/srnext-bff/internal/services"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// LaborLineResolver backs the LaborLine fields. The laborline schema reads
// the caller's subject from identity.claims.sub.
type LaborLineResolver struct {
	api   *services.LaborLinesAPI
	guard auth.Guard
}

func NewLaborLineResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.NestedSubClaim(ev)
	return &LaborLineResolver{
		api:   services.NewLaborLinesAPI(cfg.LaborLinesAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *LaborLineResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getLaborLine":
		return r.getLaborLine(ctx, ev)
	case "listLaborLines":
		return r.listLaborLines(ctx, ev)
	case "createLaborLine":
		return r.createLaborLine(ctx, ev)
	case "updateLaborLine":
		return r.updateLaborLine(ctx, ev)
	case "deleteLaborLine":
		return r.deleteLaborLine(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *LaborLineResolver) getLaborLine(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string `json:"accountId"`
		LaborLineID string `json:"laborLineId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.GetLaborLine(ctx, args.AccountID, args.LaborLineID)
}

func (r *LaborLineResolver) listLaborLines(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		TaskID    string `json:"taskId"`
		Cursor    string `json:"cursor"`
		Limit     int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.ListLaborLines(ctx, args.AccountID, services.LaborLineListOptions{
		TaskID: args.TaskID,
		Cursor: args.Cursor,
		Limit:  args.Limit,
	})
}

func (r *LaborLineResolver) createLaborLine(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                    `json:"accountId"`
		Input     dtos.LaborLineCreateInput `json:"input"`
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

	create := args.Input.ToBackend()
	if create.LaborLineID == "" {
		create.LaborLineID = uuid.NewString()
	}
	return r.api.CreateLaborLine(ctx, args.AccountID, create)
}

func (r *LaborLineResolver) updateLaborLine(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string                    `json:"accountId"`
		LaborLineID string                    `json:"laborLineId"`
		Input       dtos.LaborLineUpdateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.UpdateLaborLine(ctx, args.AccountID, args.LaborLineID, args.Input.ToBackend())
}

func (r *LaborLineResolver) deleteLaborLine(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string `json:"accountId"`
		LaborLineID string `json:"laborLineId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	if err := r.api.DeleteLaborLine(ctx, args.AccountID, args.LaborLineID); err != nil {
		return nil, err
	}
	return dtos.LaborLineDeleteResponse{
		Success:     true,
		AccountID:   args.AccountID,
		LaborLineID: args.LaborLineID,
		Message:     "Labor line deleted successfully",
	}, nil
}
