// Package config handles configuration loading, parsing, and validation
// from various sources (environment variables, files). It provides type-safe
// access to application settings needed by different components while keeping
// configuration details separate from business logic.
//
// Precedence, highest first: environment variables (CATEGORY_ prefix, plus
// HTTP_EXTERNAL_PORT for the listening port), a .env file, config.yaml in
// the working directory, and built-in defaults.
package config
