package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears the variables Load reads so the host environment cannot leak in.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, name := range []string{
		"KM_ENVIRONMENT", "APP_ENV", "KM_BASE_URL", "KM_API_KEY", "KM_LOG_LEVEL",
		"KM_TIMEOUT_SECONDS", "KM_RAISE_ON_UNEXPECTED_STATUS", "KM_VERIFY_SSL",
	} {
		t.Setenv(name, "")
	}
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadDefaultsFromSettingsFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"base_url": "http://localhost:9001"}`)

	cfg, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true, UseEnvVars: true})
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:9001", cfg.BaseURL)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.True(t, cfg.VerifySSL)
	assert.False(t, cfg.FollowRedirects)
	assert.False(t, cfg.RaiseOnUnexpectedStatus)
	assert.Equal(t, "Authorization", cfg.AuthHeaderName)
	assert.Equal(t, "Bearer", cfg.AuthPrefix)
}

func TestLoadRequiresSettingsFile(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()

	_, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "appsettings.json not found")
	assert.Contains(t, err.Error(), dir)
}

func TestLoadWithoutSettingsFilesUsesEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("KM_BASE_URL", "https://km.example.com")
	t.Setenv("KM_RAISE_ON_UNEXPECTED_STATUS", "true")

	cfg, err := Load(LoadOptions{SettingsDir: t.TempDir(), UseEnvVars: true})
	require.NoError(t, err)
	assert.Equal(t, "https://km.example.com", cfg.BaseURL)
	assert.True(t, cfg.RaiseOnUnexpectedStatus)
}

func TestLoadEnvironmentOverlay(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"base_url": "http://localhost:9001", "log_level": "info", "timeout_seconds": 10}`)
	writeFile(t, dir, "appsettings.Development.json", `{"log_level": "debug"}`)
	writeFile(t, dir, "appsettings.production.json", `{"base_url": "https://km.example.com"}`)

	t.Setenv("KM_ENVIRONMENT", "Development")
	cfg, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true, UseEnvVars: true})
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:9001", cfg.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Timeout)

	t.Setenv("KM_ENVIRONMENT", "")
	t.Setenv("APP_ENV", "production")
	cfg, err = Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true, UseEnvVars: true})
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.Env)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "https://km.example.com", cfg.BaseURL)
}

func TestLoadPrecedenceFileEnvFlag(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"base_url": "http://localhost:9001", "api_key": "from-file", "log_level": "warn"}`)
	t.Setenv("KM_API_KEY", "from-env")
	t.Setenv("KM_LOG_LEVEL", "error")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("log-level", "", "")
	flags.String("api-key", "", "")
	require.NoError(t, flags.Parse([]string{"--log-level=debug"}))

	cfg, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true, UseEnvVars: true, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.APIKey, "env overrides file, unset flag does not override env")
	assert.Equal(t, "debug", cfg.LogLevel, "explicit flag overrides env")
}

func TestLoadReadsDotEnv(t *testing.T) {
	isolateEnv(t)
	t.Setenv("KM_API_KEY", "placeholder")
	require.NoError(t, os.Unsetenv("KM_API_KEY"))

	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"base_url": "http://localhost:9001"}`)
	writeFile(t, dir, ".env", "KM_API_KEY=from-dotenv\n")

	cfg, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true, UseEnvVars: true})
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.APIKey)
}

func TestLoadValidation(t *testing.T) {
	tests := map[string]string{
		"missing base url": `{"base_url": ""}`,
		"bad base url":     `{"base_url": "not a url"}`,
		"zero timeout":     `{"base_url": "http://localhost:9001", "timeout_seconds": 0}`,
		"bad log level":    `{"base_url": "http://localhost:9001", "log_level": "loud"}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			isolateEnv(t)
			dir := t.TempDir()
			writeFile(t, dir, "appsettings.json", raw)

			_, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid config")
		})
	}
}

func TestLoadHeadersFromSettings(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	writeFile(t, dir, "appsettings.json", `{"base_url": "http://localhost:9001", "headers": {"X-Team": "search"}}`)

	cfg, err := Load(LoadOptions{SettingsDir: dir, UseSettingsFiles: true})
	require.NoError(t, err)
	// viper folds keys to lower case; header names are case-insensitive on the wire.
	assert.Equal(t, map[string]string{"x-team": "search"}, cfg.Headers)
}
