package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	LLM      LLMConfig      `mapstructure:"llm"      validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains persistence settings. URL selects the PostgreSQL
// backend; when it is empty the service falls back to the local JSON file
// store at File.
type DatabaseConfig struct {
	URL  string `mapstructure:"url"  validate:"omitempty,url"`
	File string `mapstructure:"file" validate:"required_without=URL"`
}

// AuthConfig contains the optional bearer-token settings. When TokenSecret
// is empty the API accepts unauthenticated requests.
type AuthConfig struct {
	TokenSecret string `mapstructure:"token_secret" validate:"omitempty,min=32"`
}

// LLMConfig contains the model-provider settings.
type LLMConfig struct {
	Provider         string `mapstructure:"provider"           validate:"required,oneof=openrouter gemini"`
	Model            string `mapstructure:"model"              validate:"required"`
	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
	OpenRouterURL    string `mapstructure:"openrouter_url"     validate:"required,url"`
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`
	TimeoutSeconds   int    `mapstructure:"timeout_seconds"    validate:"required,gt=0"`
}
