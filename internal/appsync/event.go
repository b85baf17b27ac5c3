// Package appsync models the normalized invocation payload the managed
// GraphQL gateway delivers to each field resolver.
package appsync

import (
	"encoding/json"
	"strings"
)

type Event struct {
	Arguments json.RawMessage `json:"arguments"`
	Identity  *Identity       `json:"identity,omitempty"`
	Source    json.RawMessage `json:"source,omitempty"`
	Request   *Request        `json:"request,omitempty"`
	Info      Info            `json:"info"`
	Prev      json.RawMessage `json:"prev,omitempty"`
	Stash     map[string]any  `json:"stash,omitempty"`
}

type Identity struct {
	Sub      string  `json:"sub,omitempty"`
	Claims   *Claims `json:"claims,omitempty"`
	Issuer   string  `json:"issuer,omitempty"`
	Username string  `json:"username,omitempty"`
}

type Claims struct {
	Sub   string `json:"sub,omitempty"`
	Email string `json:"email,omitempty"`
}

type Request struct {
	Headers    map[string]string `json:"headers,omitempty"`
	DomainName string            `json:"domainName,omitempty"`
}

type Info struct {
	FieldName      string `json:"fieldName"`
	ParentTypeName string `json:"parentTypeName"`
}

// ParseArguments decodes the field arguments into the operation-specific
// shape. Missing arguments decode as the zero value.
func (e *Event) ParseArguments(v any) error {
	if len(e.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(e.Arguments, v)
}

// BearerToken returns the credential from the authorization header with any
// leading "Bearer " prefix stripped. Header lookup is case-insensitive.
func (e *Event) BearerToken() string {
	if e.Request == nil {
		return ""
	}
	var raw string
	for name, value := range e.Request.Headers {
		if strings.EqualFold(name, "authorization") {
			raw = value
			break
		}
	}
	if raw == "" {
		return ""
	}
	if len(raw) >= 7 && strings.EqualFold(raw[:7], "bearer ") {
		return strings.TrimSpace(raw[7:])
	}
	return raw
}

// ClaimsSource extracts the tenant identifier from the invocation's identity
// claims. The gateway is inconsistent about where the subject lands, so each
// entity module picks the source matching its schema wiring.
type ClaimsSource func(e *Event) (string, bool)

// SubClaim reads identity.sub (account, contact, event, unit).
func SubClaim(e *Event) (string, bool) {
	if e.Identity == nil || e.Identity.Sub == "" {
		return "", false
	}
	return e.Identity.Sub, true
}

// NestedSubClaim reads identity.claims.sub (laborline, location, part, task,
// workorder).
func NestedSubClaim(e *Event) (string, bool) {
	if e.Identity == nil || e.Identity.Claims == nil || e.Identity.Claims.Sub == "" {
		return "", false
	}
	return e.Identity.Claims.Sub, true
}
