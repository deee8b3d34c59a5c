package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	origConfigDir := configDir
	origConfigFile := configFile

	tmpDir := t.TempDir()
	configDir = tmpDir
	configFile = filepath.Join(tmpDir, "config.yaml")

	t.Cleanup(func() {
		configDir = origConfigDir
		configFile = origConfigFile
	})
}

func TestGetDefaultConfig(t *testing.T) {
	cfg := GetDefaultConfig()

	assert.NotNil(t, cfg)
	assert.NotEmpty(t, cfg.DBPath)
	assert.Equal(t, "", cfg.ThemeName) // empty until set
	assert.Equal(t, 10, cfg.PageSize)
	assert.Equal(t, 100, cfg.MaxPageSize)
	assert.Equal(t, 300*time.Millisecond, cfg.SearchDebounce())
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 4, cfg.BulkConcurrency)
	assert.NoError(t, cfg.Validate())
}

func TestLoadConfig_Default(t *testing.T) {
	setupTestConfig(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	// should return default values when no config file exists
	assert.Equal(t, GetDefaultConfig(), cfg)
	assert.False(t, ConfigExists())
}

func TestSaveAndLoadConfig(t *testing.T) {
	setupTestConfig(t)

	cfg := GetDefaultConfig()
	cfg.APIURL = "https://cms.example.com/api"
	cfg.APIToken = "token"
	cfg.ThemeName = "dracula"
	cfg.PageSize = 25
	cfg.RequestsPerSecond = 2.5

	require.NoError(t, SaveConfig(cfg))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestSaveConfig_CreatesDirectory(t *testing.T) {
	setupTestConfig(t)
	os.RemoveAll(configDir)

	require.NoError(t, SaveConfig(GetDefaultConfig()))

	info, err := os.Stat(configDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestEnvironmentOverridesFile(t *testing.T) {
	setupTestConfig(t)
	require.NoError(t, SaveConfig(GetDefaultConfig()))

	t.Setenv("SITEADMIN_PAGE_SIZE", "50")
	t.Setenv("SITEADMIN_API_TOKEN", "from-env")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.PageSize)
	assert.Equal(t, "from-env", cfg.APIToken)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SITEADMIN_LOG_LEVEL=debug\n"), 0644))

	t.Setenv("SITEADMIN_LOG_LEVEL", "")
	os.Unsetenv("SITEADMIN_LOG_LEVEL")

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "debug", os.Getenv("SITEADMIN_LOG_LEVEL"))

	assert.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}

func TestSet(t *testing.T) {
	setupTestConfig(t)

	require.NoError(t, Set("page_size", "20"))
	require.NoError(t, UpdateTheme("monokai"))

	loaded, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 20, loaded.PageSize)
	assert.Equal(t, "monokai", loaded.ThemeName)

	err = Set("page_sise", "20")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	assert.Error(t, Set("page_size", "lots"))
	assert.Error(t, Set("page_size", "500"), "page size above max_page_size")
	assert.Error(t, Set("api_url", "ftp://example.com"))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero page size", func(c *Config) { c.PageSize = 0 }},
		{"huge max page size", func(c *Config) { c.MaxPageSize = 5000 }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"no bulk workers", func(c *Config) { c.BulkConcurrency = 0 }},
		{"negative debounce", func(c *Config) { c.SearchDebounceMS = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}
