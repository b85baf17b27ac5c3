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

// AccountResolver backs the Account fields. The account schema reads the
// caller's subject from identity.sub, and its operations address the tenant
// by the account id argument itself.
type AccountResolver struct {
	api   *services.AccountsAPI
	guard auth.Guard
}

func NewAccountResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.SubClaim(ev)
	return &AccountResolver{
		api:   services.NewAccountsAPI(cfg.AccountsAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *AccountResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getAccount":
		return r.getAccount(ctx, ev)
	case "listAccounts":
		return r.listAccounts(ctx)
	case "createAccount":
		return r.createAccount(ctx, ev)
	case "updateAccount":
		return r.updateAccount(ctx, ev)
	case "deleteAccount":
		return r.deleteAccount(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *AccountResolver) getAccount(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.ID, "Unauthorized: You can only access your own account"); err != nil {
		return nil, err
	}

	account, err := r.api.GetAccount(ctx, args.ID)
	if err != nil {
		return nil, err
	}
	return dtos.AccountFromBackend(*account), nil
}

// listAccounts only ever returns the caller's own account; a missing account
// downstream is an empty page, not an error.
func (r *AccountResolver) listAccounts(ctx context.Context) (any, error) {
	if r.guard.TenantID == "" {
		return nil, utils.Unauthenticated("Unauthorized: No account ID found in JWT")
	}

	account, err := r.api.GetAccount(ctx, r.guard.TenantID)
	if err != nil {
		if utils.IsNotFound(err) {
			return dtos.AccountPage{Items: []dtos.Account{}, HasMore: false}, nil
		}
		return nil, err
	}
	return dtos.AccountPage{
		Items:   []dtos.Account{dtos.AccountFromBackend(*account)},
		HasMore: false,
	}, nil
}

func (r *AccountResolver) createAccount(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		Input dtos.AccountCreateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := validateInput(args.Input); err != nil {
		return nil, err
	}

	// A missing id falls back to the caller's own account.
	accountID := args.Input.ID
	if accountID == "" {
		accountID = r.guard.TenantID
	}
	if accountID == "" {
		return nil, utils.Validation("Account ID is required")
	}

	account, err := r.api.CreateAccount(ctx, args.Input.ToBackend(accountID))
	if err != nil {
		return nil, err
	}
	return dtos.AccountFromBackend(*account), nil
}

func (r *AccountResolver) updateAccount(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		ID    string                  `json:"id"`
		Input dtos.AccountUpdateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.ID, "Unauthorized: You can only update your own account"); err != nil {
		return nil, err
	}
	if err := validateInput(args.Input); err != nil {
		return nil, err
	}

	account, err := r.api.UpdateAccount(ctx, args.ID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.AccountFromBackend(*account), nil
}

func (r *AccountResolver) deleteAccount(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		ID string `json:"id"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.ID, "Unauthorized: You can only delete your own account"); err != nil {
		return nil, err
	}

	if err := r.api.DeleteAccount(ctx, args.ID); err != nil {
		return nil, err
	}
	return dtos.AccountDeleteResponse{
		Success: true,
		ID:      args.ID,
		Message: "Account deleted successfully",
	}, nil
}
