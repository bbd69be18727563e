// Package config defines the application configuration structure and loads
// it from the environment (FLASHDECK_ prefix) and an optional config.yaml,
// validating the result before the rest of the application starts.
package config
