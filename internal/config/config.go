package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Validation ValidationConfig `mapstructure:"validation" validate:"required"`
	CORS       CORSConfig       `mapstructure:"cors"`
	Events     EventsConfig     `mapstructure:"events"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
// An empty URL selects the in-memory category store.
type DatabaseConfig struct {
	URL         string `mapstructure:"url" validate:"omitempty,url"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

// ValidationConfig holds the rule set applied to incoming category requests.
type ValidationConfig struct {
	NameMinLength int `mapstructure:"name_min_length" validate:"gte=1"`
	NameMaxLength int `mapstructure:"name_max_length" validate:"gtefield=NameMinLength"`
}

// CORSConfig lists the origins allowed to call the API from a browser.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" validate:"min=1"`
}

// EventsConfig controls delivery of category lifecycle events.
// Zero workers delivers events synchronously on the request goroutine.
type EventsConfig struct {
	Workers   int `mapstructure:"workers" validate:"gte=0,lte=64"`
	QueueSize int `mapstructure:"queue_size" validate:"gte=1"`
}

// UsesDatabase reports whether a PostgreSQL backend is configured.
func (c *Config) UsesDatabase() bool {
	return c.Database.URL != ""
}
