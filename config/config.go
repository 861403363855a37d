package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the portal server.
// Tags use mapstructure for Viper unmarshalling and env for environment variable binding.
type Config struct {
	HTTPPort  string `mapstructure:"HTTP_PORT"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogPretty bool   `mapstructure:"LOG_PRETTY"`

	OtelServiceName string `mapstructure:"OTEL_SERVICE_NAME"`

	// Identity provider connection. The API key belongs to the admin handle
	// only; session handles never see it.
	ProviderEndpoint  string `mapstructure:"PROVIDER_ENDPOINT"`
	ProviderProjectID string `mapstructure:"PROVIDER_PROJECT_ID"`
	ProviderAPIKey    string `mapstructure:"PROVIDER_API_KEY"`

	// CookieName is the name of the session-credential cookie.
	CookieName string `mapstructure:"COOKIE_NAME"`

	// RecoveryBaseURL is the externally reachable origin used to build
	// password-recovery links (environment dependent: production host vs.
	// local development).
	RecoveryBaseURL string `mapstructure:"RECOVERY_BASE_URL"`
}

// LoadConfig reads configuration from file, environment variables, and defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("/etc/account-portal/")
	v.AddConfigPath(".")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", true)
	v.SetDefault("OTEL_SERVICE_NAME", "account-portal")
	v.SetDefault("PROVIDER_ENDPOINT", "http://localhost:9011/v1")
	// Registered with empty defaults so AutomaticEnv surfaces them through
	// Unmarshal; both are validated as required below.
	v.SetDefault("PROVIDER_PROJECT_ID", "")
	v.SetDefault("PROVIDER_API_KEY", "")
	v.SetDefault("COOKIE_NAME", "_session")
	v.SetDefault("RECOVERY_BASE_URL", "http://localhost:8080")

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is fine, we fall back to env vars and
		// defaults. Anything else (malformed file, permissions) is fatal.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	if cfg.ProviderProjectID == "" {
		return nil, fmt.Errorf("PROVIDER_PROJECT_ID is required")
	}
	if cfg.ProviderAPIKey == "" {
		return nil, fmt.Errorf("PROVIDER_API_KEY is required")
	}

	return &cfg, nil
}
