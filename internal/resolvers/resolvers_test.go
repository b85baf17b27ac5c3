package resolvers

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/srhoton/srnext-bff/internal/appsync"
	"github.com/srhoton/srnext-bff/internal/config"
)

// testConfig points every backend client at the same fixture server.
func testConfig(baseURL string) *config.Config {
	return &config.Config{
		RequestTimeout:   5 * time.Second,
		AccountsAPIURL:   baseURL,
		ContactsAPIURL:   baseURL,
		EventsAPIURL:     baseURL,
		LaborLinesAPIURL: baseURL,
		LocationsAPIURL:  baseURL,
		PartsAPIURL:      baseURL,
		TasksAPIURL:      baseURL,
		UnitsAPIURL:      baseURL,
		WorkOrdersAPIURL: baseURL,
	}
}

// newEvent builds an invocation payload carrying the subject in both claim
// locations, the way a verified gateway invocation does.
func newEvent(t *testing.T, fieldName, sub string, args any) *appsync.Event {
	t.Helper()
	ev := &appsync.Event{
		Info: appsync.Info{FieldName: fieldName},
		Request: &appsync.Request{
			Headers: map[string]string{"authorization": "Bearer test-token"},
		},
	}
	if sub != "" {
		ev.Identity = &appsync.Identity{
			Sub:    sub,
			Claims: &appsync.Claims{Sub: sub},
		}
	}
	if args != nil {
		raw, err := json.Marshal(args)
		if err != nil {
			t.Fatalf("marshal arguments: %v", err)
		}
		ev.Arguments = raw
	}
	return ev
}

func ptr[T any](v T) *T { return &v }
