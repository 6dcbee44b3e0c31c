package types

type RunMode string

const (
	// ModeLocal is the mode for running the API server on a developer machine
	ModeLocal RunMode = "local"
	// ModeProduction is the mode for any deployed environment
	ModeProduction RunMode = "production"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)
