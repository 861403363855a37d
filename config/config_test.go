package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.pilab.hu/portal/config"
)

// Helper to reset environment variables for isolated tests
func resetConfigEnv(t *testing.T) {
	t.Helper()
	os.Unsetenv("HTTP_PORT")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("LOG_PRETTY")
	os.Unsetenv("PROVIDER_ENDPOINT")
	os.Unsetenv("PROVIDER_PROJECT_ID")
	os.Unsetenv("PROVIDER_API_KEY")
	os.Unsetenv("COOKIE_NAME")
	os.Unsetenv("RECOVERY_BASE_URL")
}

func TestLoadConfig_Defaults(t *testing.T) {
	resetConfigEnv(t)
	os.Setenv("PROVIDER_PROJECT_ID", "proj-1")
	os.Setenv("PROVIDER_API_KEY", "admin-key")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogPretty)
	assert.Equal(t, "http://localhost:9011/v1", cfg.ProviderEndpoint)
	assert.Equal(t, "_session", cfg.CookieName)
	assert.Equal(t, "http://localhost:8080", cfg.RecoveryBaseURL)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	resetConfigEnv(t)
	os.Setenv("PROVIDER_PROJECT_ID", "proj-1")
	os.Setenv("PROVIDER_API_KEY", "admin-key")
	os.Setenv("HTTP_PORT", "9090")
	os.Setenv("COOKIE_NAME", "portal_session")
	os.Setenv("RECOVERY_BASE_URL", "https://accounts.example.com")
	defer resetConfigEnv(t)

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, "portal_session", cfg.CookieName)
	assert.Equal(t, "https://accounts.example.com", cfg.RecoveryBaseURL)
}

func TestLoadConfig_RequiredProviderSettings(t *testing.T) {
	resetConfigEnv(t)

	_, err := config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_PROJECT_ID")

	os.Setenv("PROVIDER_PROJECT_ID", "proj-1")
	defer resetConfigEnv(t)

	_, err = config.LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROVIDER_API_KEY")
}
