// Package resolvers implements one GraphQL field resolver per entity. Each
// resolver is constructed per invocation with the caller's bearer credential
// and tenant claim, dispatches on the field name, and translates between the
// GraphQL shapes in dtos and the backend clients in services.
package resolvers

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/utils"
)

// Resolver handles one invocation payload and returns the GraphQL result.
type Resolver interface {
	Resolve(ctx context.Context, ev *appsync.Event) (any, error)
}

// Factory builds a resolver bound to one invocation's credentials.
type Factory func(cfg *config.Config, ev *appsync.Event) Resolver

// Registry maps every resolvable field to its entity factory.
type Registry struct {
	byField map[string]Factory
}

func NewRegistry() *Registry {
	r := &Registry{byField: make(map[string]Factory)}

	register := func(factory Factory, fields ...string) {
		for _, f := range fields {
			r.byField[f] = factory
		}
	}

	register(NewAccountResolver,
		"getAccount", "listAccounts", "createAccount", "updateAccount", "deleteAccount")
	register(NewContactResolver,
		"getContact", "listContacts", "createContact", "updateContact", "deleteContact")
	register(NewEventResolver,
		"getEvent", "listEvents", "listEventsByStatus", "createEvent", "updateEvent", "deleteEvent")
	register(NewLaborLineResolver,
		"getLaborLine", "listLaborLines", "createLaborLine", "updateLaborLine", "deleteLaborLine")
	register(NewLocationResolver,
		"getLocation", "listLocations", "createLocation", "updateLocation", "deleteLocation")
	register(NewPartResolver,
		"getPart", "listParts", "createPart", "updatePart", "deletePart")
	register(NewTaskResolver,
		"getTask", "listTasks", "createTask", "updateTask", "deleteTask")
	register(NewUnitResolver,
		"getUnit", "listUnits", "getUnitWithWorkOrders", "createUnit", "updateUnit", "deleteUnit")
	register(NewWorkOrderResolver,
		"getWorkOrder", "listWorkOrders", "createWorkOrder", "updateWorkOrder", "deleteWorkOrder")

	return r
}

// Resolve routes the invocation to the entity resolver owning its field.
func (r *Registry) Resolve(ctx context.Context, cfg *config.Config, ev *appsync.Event) (any, error) {
	factory, ok := r.byField[ev.Info.FieldName]
	if !ok {
		return nil, utils.UnknownField(ev.Info.FieldName)
	}
	return factory(cfg, ev).Resolve(ctx, ev)
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct-tag validation on a GraphQL input and folds any
// failure into a single validation error.
func validateInput(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	if invalid, ok := err.(*validator.InvalidValidationError); ok {
		return utils.Validation(invalid.Error())
	}
	for _, fe := range err.(validator.ValidationErrors) {
		return utils.Validation(fmt.Sprintf("Validation failed: %s failed on the '%s' rule", fe.Field(), fe.Tag()))
	}
	return utils.Validation(err.Error())
}
