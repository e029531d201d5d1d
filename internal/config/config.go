// Package config provides application configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Log formats.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrMissingAPIURL means AGROAIDE_API_URL was not provided. The client
// cannot start without it.
var ErrMissingAPIURL = errors.New("AGROAIDE_API_URL is required")

// Config holds all application configuration.
type Config struct {
	APIURL         string
	DBPath         string
	RequestTimeout time.Duration
	CacheStaleTime time.Duration
	LogLevel       slog.Level
	LogFormat      string
	Ephemeral      bool // keep the session in memory only
}

// fileConfig is the optional YAML file named by AGROAIDE_CONFIG. Environment
// variables win over file values.
type fileConfig struct {
	APIURL         string `yaml:"api_url"`
	DBPath         string `yaml:"db_path"`
	RequestTimeout string `yaml:"request_timeout"`
	CacheStaleTime string `yaml:"cache_stale_time"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"`
	Ephemeral      *bool  `yaml:"ephemeral"`
}

// Load reads configuration from environment variables and the optional
// config file.
func Load() (*Config, error) {
	file, err := loadFile(os.Getenv("AGROAIDE_CONFIG"))
	if err != nil {
		return nil, err
	}

	ephemeral := false
	if file.Ephemeral != nil {
		ephemeral = *file.Ephemeral
	}

	cfg := &Config{
		APIURL:         strings.TrimSpace(getEnv("AGROAIDE_API_URL", file.APIURL)),
		DBPath:         getEnv("AGROAIDE_DB_PATH", or(file.DBPath, "./data/agroaide.db")),
		RequestTimeout: getEnvDuration("AGROAIDE_REQUEST_TIMEOUT", parseDuration(file.RequestTimeout, 15*time.Second)),
		CacheStaleTime: getEnvDuration("AGROAIDE_CACHE_STALE_TIME", parseDuration(file.CacheStaleTime, 5*time.Minute)),
		LogLevel:       parseLevel(getEnv("AGROAIDE_LOG_LEVEL", or(file.LogLevel, "info"))),
		LogFormat:      strings.ToLower(getEnv("AGROAIDE_LOG_FORMAT", or(file.LogFormat, LogFormatText))),
		Ephemeral:      getEnvBool("AGROAIDE_EPHEMERAL", ephemeral),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required configuration fields are set.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return ErrMissingAPIURL
	}
	u, err := url.Parse(c.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("AGROAIDE_API_URL must be an http(s) URL, got %q", c.APIURL)
	}
	if c.DBPath == "" && !c.Ephemeral {
		return fmt.Errorf("AGROAIDE_DB_PATH cannot be empty")
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("AGROAIDE_REQUEST_TIMEOUT must be > 0")
	}
	if c.CacheStaleTime <= 0 {
		return fmt.Errorf("AGROAIDE_CACHE_STALE_TIME must be > 0")
	}
	if c.LogFormat != LogFormatText && c.LogFormat != LogFormatJSON {
		return fmt.Errorf("AGROAIDE_LOG_FORMAT must be %q or %q", LogFormatText, LogFormatJSON)
	}
	return nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fc, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return fc, nil
}

func or(value, fallback string) string {
	if value != "" {
		return value
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "on":
		return true
	case "0", "false", "no", "off":
		return false
	default:
		return fallback
	}
}

// getEnvDuration accepts Go durations ("30s") or plain seconds ("30").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	return parseDuration(value, fallback)
}

func parseDuration(value string, fallback time.Duration) time.Duration {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback
	}
	if n, err := strconv.Atoi(value); err == nil {
		return time.Duration(n) * time.Second
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

func parseLevel(value string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(value))); err != nil {
		return slog.LevelInfo
	}
	return level
}
