package config

import (
	"os"
	"time"

	"github.com/srhoton/srnext-bff/internal/utils"
)

const AppName = "srnext-bff"

// Config carries every environment-derived setting. Backend base URLs are
// explicit fields so tests can point clients at fixture servers instead of
// mutating process state.
type Config struct {
	AppPort string

	RequestTimeout time.Duration

	AccountsAPIURL   string
	ContactsAPIURL   string
	EventsAPIURL     string
	LaborLinesAPIURL string
	LocationsAPIURL  string
	PartsAPIURL      string
	TasksAPIURL      string
	UnitsAPIURL      string
	WorkOrdersAPIURL string
}

// Load reads the environment, falling back to the sandbox hosts each backend
// service is deployed to.
func Load() *Config {
	cfg := &Config{
		AppPort:        envOr("APP_PORT", "8080"),
		RequestTimeout: 30 * time.Second,

		AccountsAPIURL:   envOr("ACCOUNTS_API_URL", "https://account-srnext.sb.fullbay.com"),
		ContactsAPIURL:   envOr("CONTACTS_API_URL", "https://contact-srnext.sb.fullbay.com"),
		EventsAPIURL:     envOr("EVENTS_API_URL", "https://event-srnext.sb.fullbay.com"),
		LaborLinesAPIURL: envOr("LABORLINES_API_URL", "https://laborlines-dev.sb.fullbay.com"),
		LocationsAPIURL:  envOr("LOCATIONS_API_URL", "https://location-srnext.sb.fullbay.com"),
		PartsAPIURL:      envOr("PARTS_API_URL", "https://part-srnext.sb.fullbay.com"),
		TasksAPIURL:      envOr("TASKS_API_URL", "https://srnext-tasks.sb.fullbay.com"),
		UnitsAPIURL:      envOr("UNITS_API_URL", "https://unit-srnext.sb.fullbay.com"),
		WorkOrdersAPIURL: envOr("WORKORDERS_API_URL", "https://workorder-srnext.sb.fullbay.com"),
	}

	utils.Logger.WithField("port", cfg.AppPort).Info("Loaded config")
	return cfg
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
