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

// ContactResolver backs the Contact fields. Contacts are keyed by
// (accountId, email); the caller's subject comes from identity.sub.
type ContactResolver struct {
	api   *services.ContactsAPI
	guard auth.Guard
}

func NewContactResolver(cfg *config.Config, ev *appsync.Event) Resolver {
	sub, _ := appsync.SubClaim(ev)
	return &ContactResolver{
		api:   services.NewContactsAPI(cfg.ContactsAPIURL, ev.BearerToken(), cfg.RequestTimeout),
		guard: auth.Guard{TenantID: sub},
	}
}

func (r *ContactResolver) Resolve(ctx context.Context, ev *appsync.Event) (any, error) {
	switch ev.Info.FieldName {
	case "getContact":
		return r.getContact(ctx, ev)
	case "listContacts":
		return r.listContacts(ctx, ev)
	case "createContact":
		return r.createContact(ctx, ev)
	case "updateContact":
		return r.updateContact(ctx, ev)
	case "deleteContact":
		return r.deleteContact(ctx, ev)
	default:
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
}

func (r *ContactResolver) getContact(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		Email     string `json:"email"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only access contacts for your own account"); err != nil {
		return nil, err
	}

	contact, err := r.api.GetContact(ctx, args.AccountID, args.Email)
	if err != nil {
		return nil, err
	}
	return dtos.ContactFromBackend(*contact), nil
}

func (r *ContactResolver) listContacts(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		Cursor    string `json:"cursor"`
		Limit     int    `json:"limit"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only list contacts for your own account"); err != nil {
		return nil, err
	}

	page, err := r.api.ListContacts(ctx, args.AccountID, args.Cursor, args.Limit)
	if err != nil {
		return nil, err
	}

	items := make([]dtos.Contact, 0, len(page.Items))
	for _, c := range page.Items {
		items = append(items, dtos.ContactFromBackend(c))
	}
	result := dtos.ContactPage{Items: items, Limit: page.Limit}
	if page.NextCursor != "" {
		result.NextCursor = &page.NextCursor
	}
	return result, nil
}

// createContact requires authentication but not tenant match: provisioning
// flows create contacts under accounts the caller does not own yet.
func (r *ContactResolver) createContact(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                  `json:"accountId"`
		Input     dtos.ContactCreateInput `json:"input"`
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

	contact, err := r.api.CreateContact(ctx, args.AccountID, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.ContactFromBackend(*contact), nil
}

func (r *ContactResolver) updateContact(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string                  `json:"accountId"`
		Email     string                  `json:"email"`
		Input     dtos.ContactUpdateInput `json:"input"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only update contacts for your own account"); err != nil {
		return nil, err
	}
	if err := validateInput(args.Input); err != nil {
		return nil, err
	}

	contact, err := r.api.UpdateContact(ctx, args.AccountID, args.Email, args.Input.ToBackend())
	if err != nil {
		return nil, err
	}
	return dtos.ContactFromBackend(*contact), nil
}

// deleteContact returns the deleted contact rather than a receipt.
func (r *ContactResolver) deleteContact(ctx context.Context, ev *appsync.Event) (any, error) {
	var args struct {
		AccountID string `json:"accountId"`
		Email     string `json:"email"`
	}
	if err := ev.ParseArguments(&args); err != nil {
		return nil, utils.Validation(err.Error())
	}
	if err := r.guard.RequireOwner(args.AccountID, "Unauthorized: You can only delete contacts for your own account"); err != nil {
		return nil, err
	}

	contact, err := r.api.DeleteContact(ctx, args.AccountID, args.Email)
	if err != nil {
		return nil, err
	}
	return dtos.ContactFromBackend(*contact), nil
}
