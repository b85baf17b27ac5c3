// Package gateway exposes the field resolvers over HTTP for local serving.
// The managed GraphQL layer in front of this service verifies credentials;
// this layer decodes the invocation payload, fills in the identity when only
// the raw authorization header made it through, and routes to the resolver
// registry.
package gateway

import (
	"encoding/json"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/config"
	"github.com/srhoton/srnext-bff/internal/resolvers"
	"github.com/srhoton/srnext-bff/internal/utils"
)

type Gateway struct {
	cfg      *config.Config
	registry *resolvers.Registry
}

func New(cfg *config.Config) *Gateway {
	return &Gateway{cfg: cfg, registry: resolvers.NewRegistry()}
}

// Routes registers the gateway endpoints on the router.
func (g *Gateway) Routes(router *mux.Router) {
	router.HandleFunc("/health", g.HealthHandler).Methods(http.MethodGet)
	router.HandleFunc("/resolve/{entity}", g.ResolveHandler).Methods(http.MethodPost)
}

func (g *Gateway) HealthHandler(w http.ResponseWriter, _ *http.Request) {
	utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ResolveHandler accepts one invocation payload and returns the field result.
// The unit entity keeps its legacy contract: failures come back as a 200 with
// an {error, errorType} body instead of an error status.
func (g *Gateway) ResolveHandler(w http.ResponseWriter, r *http.Request) {
	entity := mux.Vars(r)["entity"]

	var ev appsync.Event
	if err := json.NewDecoder(r.Body).Decode(&ev); err != nil {
		utils.RespondError(w, utils.Validation("Invalid invocation payload: "+err.Error()))
		return
	}
	backfillIdentity(&ev)

	utils.Logger.WithFields(logrus.Fields{
		"entity": entity,
		"field":  ev.Info.FieldName,
	}).Info("Resolving field")

	result, err := g.registry.Resolve(r.Context(), g.cfg, &ev)
	if err != nil {
		if entity == "unit" {
			utils.Logger.WithError(err).Error("Error processing request")
			utils.RespondWithJSON(w, http.StatusOK, unitErrorEnvelope(err))
			return
		}
		utils.RespondError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, result)
}

// backfillIdentity populates the identity subject from the bearer credential
// when the payload carries only the authorization header. The token is not
// re-verified here; the gateway in front of this service already did.
func backfillIdentity(ev *appsync.Event) {
	if ev.Identity != nil && (ev.Identity.Sub != "" || (ev.Identity.Claims != nil && ev.Identity.Claims.Sub != "")) {
		return
	}
	token := ev.BearerToken()
	if token == "" {
		return
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		utils.Logger.WithError(err).Warn("Could not parse bearer token for identity backfill")
		return
	}
	sub, err := parsed.Claims.GetSubject()
	if err != nil || sub == "" {
		return
	}

	if ev.Identity == nil {
		ev.Identity = &appsync.Identity{}
	}
	if ev.Identity.Sub == "" {
		ev.Identity.Sub = sub
	}
	if ev.Identity.Claims == nil {
		ev.Identity.Claims = &appsync.Claims{}
	}
	if ev.Identity.Claims.Sub == "" {
		ev.Identity.Claims.Sub = sub
	}
}

// unitErrorEnvelope reproduces the unit handler's historical error contract.
type unitError struct {
	Error     string `json:"error"`
	ErrorType string `json:"errorType"`
}

func unitErrorEnvelope(err error) unitError {
	var errorType string
	switch utils.CodeOf(err) {
	case utils.ErrCodeUnauthenticated, utils.ErrCodeForbidden:
		errorType = "UnauthorizedError"
	case utils.ErrCodeValidation:
		errorType = "ValidationError"
	case utils.ErrCodeNotFound:
		errorType = "NotFoundError"
	case utils.ErrCodeService:
		errorType = "ServiceError"
	case utils.ErrCodeUnknownField:
		errorType = "Error"
	default:
		errorType = "InternalError"
	}
	return unitError{Error: err.Error(), ErrorType: errorType}
}
