package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration environment variable.
const EnvPrefix = "CATEGORY"

// PortEnvVar is the legacy variable that overrides the listening port.
const PortEnvVar = "HTTP_EXTERNAL_PORT"

// Default values applied when no other source sets a key.
const (
	DefaultPort                   = 8000
	DefaultLogLevel               = "info"
	DefaultShutdownTimeoutSeconds = 10
	DefaultNameMinLength          = 1
	DefaultNameMaxLength          = 255
	DefaultEventWorkers           = 2
	DefaultEventQueueSize         = 100
)

// Load configuration from environment variables and optionally config files.
// Environment variables take precedence over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom is Load with an explicit directory for .env and config.yaml.
func LoadFrom(dir string) (*Config, error) {
	// godotenv never overrides variables that are already set.
	if err := godotenv.Load(dir + "/.env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", PortEnvVar); err != nil {
		return nil, fmt.Errorf("failed to bind port environment variables: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("server.shutdown_timeout_seconds", DefaultShutdownTimeoutSeconds)
	v.SetDefault("database.url", "")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("validation.name_min_length", DefaultNameMinLength)
	v.SetDefault("validation.name_max_length", DefaultNameMaxLength)
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("events.workers", DefaultEventWorkers)
	v.SetDefault("events.queue_size", DefaultEventQueueSize)
}
