// ABOUTME: Mood configuration management with backend selection.
// ABOUTME: Loads JSON config through viper with env overrides and builds the storage backend.

package config

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harperreed/mood/internal/charm"
	"github.com/harperreed/mood/internal/models"
	"github.com/harperreed/mood/internal/storage"
	"github.com/spf13/viper"
)

// Supported storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendCharm    = "charm"
)

// DefaultListenAddr is where `mood serve` listens when nothing is configured.
const DefaultListenAddr = ":8080"

// Config stores mood tool configuration.
type Config struct {
	// Backend selects the storage backend: "sqlite" (default), "postgres", or "charm".
	Backend string `mapstructure:"backend" json:"backend,omitempty"`

	// DataDir is the root directory for data storage. SQLite puts mood.db here.
	// Supports ~ expansion for home directory. Defaults to ~/.local/share/mood.
	DataDir string `mapstructure:"data_dir" json:"data_dir,omitempty"`

	// PostgresDSN is the connection string used by the postgres backend.
	PostgresDSN string `mapstructure:"postgres_dsn" json:"postgres_dsn,omitempty"`

	// CharmHost overrides the Charm server for the charm backend.
	CharmHost string `mapstructure:"charm_host" json:"charm_host,omitempty"`

	// Timezone is the IANA zone used for calendar days and week boundaries.
	// Empty means the local zone.
	Timezone string `mapstructure:"timezone" json:"timezone,omitempty"`

	// UserID owns entries created from the CLI and MCP server. Defaults to the guest user.
	UserID int64 `mapstructure:"user_id" json:"user_id,omitempty"`

	// ListenAddr is the HTTP address for `mood serve`.
	ListenAddr string `mapstructure:"listen_addr" json:"listen_addr,omitempty"`

	Weather WeatherConfig `mapstructure:"weather" json:"weather,omitempty"`
	Log     LogConfig     `mapstructure:"log" json:"log,omitempty"`
}

// WeatherConfig configures the OpenWeatherMap proxy.
type WeatherConfig struct {
	APIKey  string `mapstructure:"api_key" json:"api_key,omitempty"`
	BaseURL string `mapstructure:"base_url" json:"base_url,omitempty"`
	City    string `mapstructure:"city" json:"city,omitempty"`
}

// LogConfig configures server logging.
type LogConfig struct {
	Level string `mapstructure:"level" json:"level,omitempty"`
	File  string `mapstructure:"file" json:"file,omitempty"`
}

// envBindings maps config keys to the environment variables that override them.
var envBindings = map[string][]string{
	"backend":         {"MOOD_BACKEND"},
	"data_dir":        {"MOOD_DATA_DIR"},
	"postgres_dsn":    {"MOOD_POSTGRES_DSN"},
	"charm_host":      {"MOOD_CHARM_HOST"},
	"timezone":        {"MOOD_TIMEZONE"},
	"listen_addr":     {"MOOD_LISTEN_ADDR"},
	"weather.api_key": {"OPENWEATHER_API_KEY", "WEATHER_API_KEY"},
	"weather.city":    {"MOOD_WEATHER_CITY"},
	"log.level":       {"MOOD_LOG_LEVEL"},
	"log.file":        {"MOOD_LOG_FILE"},
}

// GetBackend returns the configured backend, defaulting to "sqlite".
func (c *Config) GetBackend() string {
	if c.Backend == "" {
		return BackendSQLite
	}
	return c.Backend
}

// GetDataDir returns the configured data directory with ~ expanded,
// defaulting to the standard XDG data directory.
func (c *Config) GetDataDir() string {
	if c.DataDir == "" {
		return storage.DataDir()
	}
	return ExpandPath(c.DataDir)
}

// GetUserID returns the configured user, defaulting to the guest user.
func (c *Config) GetUserID() int64 {
	if c.UserID <= 0 {
		return models.GuestUserID
	}
	return c.UserID
}

// GetListenAddr returns the HTTP listen address.
func (c *Config) GetListenAddr() string {
	if c.ListenAddr == "" {
		return DefaultListenAddr
	}
	return c.ListenAddr
}

// GetWeatherCity returns the fallback weather city.
func (c *Config) GetWeatherCity() string {
	if c.Weather.City == "" {
		return models.DefaultWeatherLocation
	}
	return c.Weather.City
}

// Location resolves Timezone, defaulting to the local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) string {
	if path == "" {
		return ""
	}
	if path == "~" {
		home, _ := os.UserHomeDir()
		return home
	}
	if strings.HasPrefix(path, "~/") {
		home, _ := os.UserHomeDir()
		return filepath.Join(home, path[2:])
	}
	return path
}

// OpenStorage creates a Repository implementation based on the configured backend.
func (c *Config) OpenStorage() (storage.Repository, error) {
	switch backend := c.GetBackend(); backend {
	case BackendSQLite:
		return storage.Open(filepath.Join(c.GetDataDir(), storage.DBFileName))
	case BackendPostgres:
		if c.PostgresDSN == "" {
			return nil, fmt.Errorf("postgres backend requires postgres_dsn")
		}
		return storage.OpenPostgres(context.Background(), c.PostgresDSN)
	case BackendCharm:
		return charm.InitClient(c.CharmHost)
	default:
		return nil, fmt.Errorf("unknown backend: %q", backend)
	}
}

// GetConfigPath returns the config file path.
func GetConfigPath() string {
	configDir := os.Getenv("XDG_CONFIG_HOME")
	if configDir == "" {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}
	return filepath.Join(configDir, "mood", "config.json")
}

// Load reads config from disk and applies environment overrides.
// A missing config file yields an empty config.
func Load() (*Config, error) {
	return LoadFile(GetConfigPath())
}

// LoadFile reads config from path and applies environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("json")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind env for %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save writes config to disk.
func (c *Config) Save() error {
	path := GetConfigPath()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}
