package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const EnvPrefix = "SITEADMIN"

type Config struct {
	APIURL                string  `mapstructure:"api_url"`
	APIToken              string  `mapstructure:"api_token"`
	PageSize              int     `mapstructure:"page_size"`
	MaxPageSize           int     `mapstructure:"max_page_size"`
	ThemeName             string  `mapstructure:"theme_name"`
	DBPath                string  `mapstructure:"db_path"`
	SearchDebounceMS      int     `mapstructure:"search_debounce_ms"`
	RequestTimeoutSeconds int     `mapstructure:"request_timeout_seconds"`
	RequestsPerSecond     float64 `mapstructure:"requests_per_second"`
	BulkConcurrency       int     `mapstructure:"bulk_concurrency"`
	CacheTTLSeconds       int     `mapstructure:"cache_ttl_seconds"`
	LogLevel              string  `mapstructure:"log_level"`
	LogFile               string  `mapstructure:"log_file"`
	SandboxAddr           string  `mapstructure:"sandbox_addr"`
	SandboxDBPath         string  `mapstructure:"sandbox_db_path"`
}

var (
	configDir  string
	configFile string
)

func init() {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		panic(fmt.Sprintf("failed to get home directory: %v", err))
	}

	configDir = filepath.Join(homeDir, ".siteadmin")
	configFile = filepath.Join(configDir, "config.yaml")
}

func GetConfigDir() string {
	return configDir
}

func GetConfigFile() string {
	return configFile
}

func ConfigExists() bool {
	_, err := os.Stat(configFile)
	return err == nil
}

func EnsureConfigDir() error {
	return os.MkdirAll(configDir, 0755)
}

// LoadEnvFile loads KEY=value pairs from path into the environment without
// overriding variables that are already set. A missing file is not an error.
func LoadEnvFile(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func defaults() map[string]any {
	return map[string]any{
		"api_url":                 "http://localhost:8080",
		"api_token":               "",
		"page_size":               10,
		"max_page_size":           100,
		"theme_name":              "",
		"db_path":                 filepath.Join(configDir, "state.db"),
		"search_debounce_ms":      300,
		"request_timeout_seconds": 15,
		"requests_per_second":     10.0,
		"bulk_concurrency":        4,
		"cache_ttl_seconds":       30,
		"log_level":               "info",
		"log_file":                filepath.Join(configDir, "siteadmin.log"),
		"sandbox_addr":            "127.0.0.1:8080",
		"sandbox_db_path":         filepath.Join(configDir, "sandbox.db"),
	}
}

// Keys lists every setting in alphabetical order.
func Keys() []string {
	d := defaults()
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func newViper() *viper.Viper {
	v := viper.New()
	for k, val := range defaults() {
		v.SetDefault(k, val)
	}
	v.SetConfigFile(configFile)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	return v
}

// loads config from file, then environment overrides
func LoadConfig() (*Config, error) {
	if err := EnsureConfigDir(); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	v := newViper()
	if ConfigExists() {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// saves config to file
func SaveConfig(cfg *Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := EnsureConfigDir(); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	for k, val := range cfg.Values() {
		v.Set(k, val)
	}

	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func GetDefaultConfig() *Config {
	d := defaults()
	return &Config{
		APIURL:                d["api_url"].(string),
		PageSize:              d["page_size"].(int),
		MaxPageSize:           d["max_page_size"].(int),
		DBPath:                d["db_path"].(string),
		SearchDebounceMS:      d["search_debounce_ms"].(int),
		RequestTimeoutSeconds: d["request_timeout_seconds"].(int),
		RequestsPerSecond:     d["requests_per_second"].(float64),
		BulkConcurrency:       d["bulk_concurrency"].(int),
		CacheTTLSeconds:       d["cache_ttl_seconds"].(int),
		LogLevel:              d["log_level"].(string),
		LogFile:               d["log_file"].(string),
		SandboxAddr:           d["sandbox_addr"].(string),
		SandboxDBPath:         d["sandbox_db_path"].(string),
	}
}

// Values returns the settings keyed by their file names.
func (c *Config) Values() map[string]any {
	return map[string]any{
		"api_url":                 c.APIURL,
		"api_token":               c.APIToken,
		"page_size":               c.PageSize,
		"max_page_size":           c.MaxPageSize,
		"theme_name":              c.ThemeName,
		"db_path":                 c.DBPath,
		"search_debounce_ms":      c.SearchDebounceMS,
		"request_timeout_seconds": c.RequestTimeoutSeconds,
		"requests_per_second":     c.RequestsPerSecond,
		"bulk_concurrency":        c.BulkConcurrency,
		"cache_ttl_seconds":       c.CacheTTLSeconds,
		"log_level":               c.LogLevel,
		"log_file":                c.LogFile,
		"sandbox_addr":            c.SandboxAddr,
		"sandbox_db_path":         c.SandboxDBPath,
	}
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api_url must be an http(s) URL, got %q", c.APIURL)
	}
	if c.MaxPageSize < 1 || c.MaxPageSize > 1000 {
		return fmt.Errorf("max_page_size must be between 1 and 1000")
	}
	if c.PageSize < 1 || c.PageSize > c.MaxPageSize {
		return fmt.Errorf("page_size must be between 1 and %d", c.MaxPageSize)
	}
	if c.SearchDebounceMS < 0 {
		return fmt.Errorf("search_debounce_ms cannot be negative")
	}
	if c.RequestTimeoutSeconds < 1 {
		return fmt.Errorf("request_timeout_seconds must be at least 1")
	}
	if c.RequestsPerSecond < 0 {
		return fmt.Errorf("requests_per_second cannot be negative")
	}
	if c.BulkConcurrency < 1 || c.BulkConcurrency > 32 {
		return fmt.Errorf("bulk_concurrency must be between 1 and 32")
	}
	if c.CacheTTLSeconds < 0 {
		return fmt.Errorf("cache_ttl_seconds cannot be negative")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be one of debug, info, warn, error")
	}
	return nil
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

// Set parses value for key, validates the result and writes the file.
func Set(key, value string) error {
	def, ok := defaults()[key]
	if !ok {
		return fmt.Errorf("unknown config key %q (available: %s)", key, strings.Join(Keys(), ", "))
	}

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	values := cfg.Values()
	switch def.(type) {
	case int:
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s must be a whole number", key)
		}
		values[key] = n
	case float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%s must be a number", key)
		}
		values[key] = f
	default:
		values[key] = value
	}

	v := viper.New()
	for k, val := range values {
		v.Set(k, val)
	}
	var updated Config
	if err := v.Unmarshal(&updated); err != nil {
		return fmt.Errorf("failed to apply %s: %w", key, err)
	}

	return SaveConfig(&updated)
}

// updates theme in config file
func UpdateTheme(themeName string) error {
	return Set("theme_name", themeName)
}
