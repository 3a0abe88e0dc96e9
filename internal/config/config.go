// Package config defines the global configuration structure for the
// CourtNotify service. Configuration is loaded once at process startup and
// is immutable thereafter, following 12-Factor App principles by strictly
// separating code from configuration.
//
// Values are resolved via a priority chain:
//
//	OS Environment (Highest) -> Dotenv File
//
// Any missing required value or invalid format causes the application to
// fail immediately on startup.
package config

import (
	"time"

	"courtnotify/internal/types"
)

// SecretString is an alias for types.SecretString, the redacted secret type
// used throughout configuration to prevent accidental logging of sensitive
// values.
type SecretString = types.SecretString

// Config is the top-level configuration struct for the CourtNotify service.
// It is populated once during process initialization and never modified.
// Sub-components receive only the specific config subsets they require.
type Config struct {
	// System Metadata
	Environment string `envconfig:"APP_ENV" validate:"required,oneof=local dev staging prod"`
	Service     string `envconfig:"SERVICE_NAME" default:"courtnotify"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Domain Configurations
	Server Server
	Notify Notify
	Data   Data
	Links  Links
}

// Server holds HTTP server configuration.
type Server struct {
	Port            string        `envconfig:"PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// Notify holds delivery provider credentials and dispatch settings.
type Notify struct {
	APIKey  SecretString `envconfig:"NOTIFY_API_KEY" validate:"required"`
	BaseURL string       `envconfig:"NOTIFY_BASE_URL"` // Empty uses the provider default
	// EnvName labels non-production system admin update emails so operators
	// can tell which environment raised them. Blank in production.
	EnvName string `envconfig:"NOTIFY_ENV_NAME"`
	// RetentionWeeks controls how long provider-hosted attachments remain
	// downloadable. Zero uses the provider default.
	RetentionWeeks int `envconfig:"NOTIFY_RETENTION_WEEKS" default:"78" validate:"gte=0"`
}

// Data holds the data-management service connection settings.
type Data struct {
	BaseURL string        `envconfig:"DATA_MANAGEMENT_URL" validate:"required,url"`
	Timeout time.Duration `envconfig:"DATA_MANAGEMENT_TIMEOUT" default:"30s"`
}

// Links holds the public frontend URLs embedded into email bodies
// (no trailing slash).
type Links struct {
	StartPage        string `envconfig:"LINK_START_PAGE" validate:"required,url"`
	SubscriptionPage string `envconfig:"LINK_SUBSCRIPTION_PAGE" validate:"required,url"`
	GovGuidancePage  string `envconfig:"LINK_GOV_GUIDANCE" validate:"required,url"`
	AadSignInPage    string `envconfig:"LINK_AAD_SIGN_IN" validate:"required,url"`
	CftSignInPage    string `envconfig:"LINK_CFT_SIGN_IN" validate:"required,url"`
	ResetPassword    string `envconfig:"LINK_RESET_PASSWORD" validate:"required,url"`
	Verification     string `envconfig:"LINK_VERIFICATION" validate:"required,url"`
}

// ConfigErrorType categorizes configuration loading failures to aid debugging.
type ConfigErrorType string

const (
	// ErrValidation indicates the configuration failed struct validation rules.
	ErrValidation ConfigErrorType = "VALIDATION_FAILED"
	// ErrParsing indicates a failure when parsing environment variable values
	// into their target types.
	ErrParsing ConfigErrorType = "PARSING_FAILED"
)
