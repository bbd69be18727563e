package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Default values applied before reading the environment.
const (
	defaultPort           = 8080
	defaultLogLevel       = "info"
	defaultFile           = "flashdeck-library.json"
	defaultProvider       = "openrouter"
	defaultModel          = "mistralai/mistral-7b-instruct"
	defaultOpenRouterURL  = "https://openrouter.ai/api/v1/chat/completions"
	defaultTimeoutSeconds = 60
)

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables use the
// FLASHDECK_ prefix with underscores for nesting (e.g. FLASHDECK_SERVER_PORT,
// FLASHDECK_LLM_OPENROUTER_API_KEY) and take precedence over file values.
// Returns a populated, validated Config or an error.
func Load() (*Config, error) {
	v := viper.New()

	v.SetDefault("server.port", defaultPort)
	v.SetDefault("server.log_level", defaultLogLevel)
	v.SetDefault("database.url", "")
	v.SetDefault("database.file", defaultFile)
	v.SetDefault("auth.token_secret", "")
	v.SetDefault("llm.provider", defaultProvider)
	v.SetDefault("llm.model", defaultModel)
	v.SetDefault("llm.openrouter_api_key", "")
	v.SetDefault("llm.openrouter_url", defaultOpenRouterURL)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.timeout_seconds", defaultTimeoutSeconds)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine; the environment is the primary source.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("FLASHDECK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}
