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

// WorkOrderResolver backs the WorkOrder fields. The caller's subject comes
// from identity.claims.sub.
type WorkOrderResolver struct {
	api   *services.WorkOrdersAPI
	guard auth.Guard
}

func NewWorkOrderResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.NestedSubClaim(ev)
	return &WorkOrderResolver{
		api:   services.NewWorkOrdersAPI(cfg.WorkOrdersAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *WorkOrderResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getWorkOrder":
		return r.getWorkOrder(ctx, ev)
	case "listWorkOrders":
		return r.listWorkOrders(ctx, ev)
	case "createWorkOrder":
		return r.createWorkOrder(ctx, ev)
	case "updateWorkOrder":
		return r.updateWorkOrder(ctx, ev)
	case "deleteWorkOrder":
		return r.deleteWorkOrder(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *WorkOrderResolver) getWorkOrder(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string `json:"accountId"`
		WorkOrderID string `json:"workOrderId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	wo, err := r.api.GetWorkOrder(ctx, args.AccountID, args.WorkOrderID)
	if err != nil {
		return nil, err
	}
	return dtos.WorkOrderFromBackend(*wo), nil
}

func (r *WorkOrderResolver) listWorkOrders(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		PageSize  int    `json:"pageSize"`
		Cursor    string `json:"cursor"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	pageSize := args.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	page, err := r.api.ListWorkOrders(ctx, args.AccountID, pageSize, args.Cursor)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.WorkOrder, 0, len(page.Items))
	for _, wo := range page.Items {
		items = append(items, dtos.WorkOrderFromBackend(wo))
	}
	return dtos.WorkOrderPage{
		Items:      items,
		NextCursor: page.NextCursor,
		PageSize:   pageSize,
		Count:      len(items),
	}, nil
}

func (r *WorkOrderResolver) createWorkOrder(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                    `json:"accountId"`
		Input     dtos.WorkOrderCreateInput `json:"input"`
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

	wo, err := r.api.CreateWorkOrder(ctx, args.AccountID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.WorkOrderFromBackend(*wo), nil
}

func (r *WorkOrderResolver) updateWorkOrder(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string                    `json:"accountId"`
		WorkOrderID string                    `json:"workOrderId"`
		Input       dtos.WorkOrderUpdateInput `json:"input"`
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

	wo, err := r.api.UpdateWorkOrder(ctx, args.AccountID, args.WorkOrderID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.WorkOrderFromBackend(*wo), nil
}

func (r *WorkOrderResolver) deleteWorkOrder(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID   string `json:"accountId"`
		WorkOrderID string `json:"workOrderId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	deleted, err := r.api.DeleteWorkOrder(ctx, args.AccountID, args.WorkOrderID)
	if err != nil {
		return nil, err
	}
	return deleted, nil
}
