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

// TaskResolver backs the Task fields. The caller's subject comes from
// identity.claims.sub.
type TaskResolver struct {
	api   *services.TasksAPI
	guard auth.Guard
}

func NewTaskResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.NestedSubClaim(ev)
	return &TaskResolver{
		api:   services.NewTasksAPI(cfg.TasksAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *TaskResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getTask":
		return r.getTask(ctx, ev)
	case "listTasks":
		return r.listTasks(ctx, ev)
	case "createTask":
		return r.createTask(ctx, ev)
	case "updateTask":
		return r.updateTask(ctx, ev)
	case "deleteTask":
		return r.deleteTask(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *TaskResolver) getTask(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		TaskID    string `json:"taskId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}

	task, err := r.api.GetTask(ctx, args.AccountID, args.TaskID)
	if err != nil {
		return nil, err
	}
	return dtos.TaskFromBackend(*task), nil
}

func (r *TaskResolver) listTasks(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		Limit     int    `json:"limit"`
		Cursor    string `json:"cursor"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	limit := args.Limit
	if limit <= 0 {
		limit = 20
	}

	page, err := r.api.ListTasks(ctx, args.AccountID, limit, args.Cursor)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.Task, 0, len(page.Items))
	for _, t := range page.Items {
		items = append(items, dtos.TaskFromBackend(t))
	}
	return dtos.TaskPage{
		Items:      items,
		NextCursor: page.NextCursor,
		Limit:      page.Limit,
		Count:      page.Count,
	}, nil
}

func (r *TaskResolver) createTask(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string               `json:"accountId"`
		Input     dtos.TaskCreateInput `json:"input"`
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

	create := args.Input.ToBackend(args.AccountID)
	create.TaskID = uuid.NewString()

	task, err := r.api.CreateTask(ctx, args.AccountID, create)
	if err != nil {
		return nil, err
	}
	return dtos.TaskFromBackend(*task), nil
}

func (r *TaskResolver) updateTask(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string               `json:"accountId"`
		TaskID    string               `json:"taskId"`
		Input     dtos.TaskUpdateInput `json:"input"`
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

	task, err := r.api.UpdateTask(ctx, args.AccountID, args.TaskID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.TaskFromBackend(*task), nil
}

func (r *TaskResolver) deleteTask(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		TaskID    string `json:"taskId"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireMatch(args.AccountID, auth.DeniedAccountMismatch); err != nil {
		return nil, err
	}
	return r.api.DeleteTask(ctx, args.AccountID, args.TaskID)
}
