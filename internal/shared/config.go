package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override credentials from the config file.
const (
	EnvLastFMAPIKey       = "LASTFM_API_KEY"
	EnvLastFMServerAPIKey = "LASTFM_SERVER_API_KEY"
	EnvBandsintownAppID   = "BANDSINTOWN_APP_ID"
	EnvAudioDBAPIKey      = "AUDIODB_API_KEY"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Catalog     CatalogConfig     `toml:"catalog"`
}

// CredentialsConfig contains provider-specific credentials.
type CredentialsConfig struct {
	LastFM      LastFMConfig      `toml:"lastfm"`
	Bandsintown BandsintownConfig `toml:"bandsintown"`
	AudioDB     AudioDBConfig     `toml:"audiodb"`
}

// LastFMConfig contains Last.fm API keys.
//
// ServerAPIKey is only read by the HTTP passthrough endpoint, which uses APIKey when it is empty.
type LastFMConfig struct {
	APIKey       string `toml:"api_key"`
	ServerAPIKey string `toml:"server_api_key"`
}

// BandsintownConfig contains the Bandsintown application id.
type BandsintownConfig struct {
	AppID string `toml:"app_id"`
}

// AudioDBConfig contains TheAudioDB API key.
type AudioDBConfig struct {
	APIKey string `toml:"api_key"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host          string  `toml:"host"`
	Port          int     `toml:"port"`
	AllowedOrigin string  `toml:"allowed_origin"`
	RateLimit     float64 `toml:"rate_limit"`
	Burst         int     `toml:"burst"`
}

// Addr returns the host:port pair the server listens on.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CatalogConfig points at an optional catalog override file.
type CatalogConfig struct {
	Path string `toml:"path"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values not present in the file keep their defaults from the embedded example config.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read config file: %w", ErrMissingConfig, err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %w", ErrInvalidConfig, err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads variables from a dotenv file into the process environment.
//
// Variables already set in the environment are left untouched. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: failed to load %s: %w", ErrInvalidConfig, path, err)
	}
	return nil
}

// ApplyEnv overrides credentials with any non-empty values from the environment.
func (c *Config) ApplyEnv() {
	overrides := []struct {
		key string
		dst *string
	}{
		{EnvLastFMAPIKey, &c.Credentials.LastFM.APIKey},
		{EnvLastFMServerAPIKey, &c.Credentials.LastFM.ServerAPIKey},
		{EnvBandsintownAppID, &c.Credentials.Bandsintown.AppID},
		{EnvAudioDBAPIKey, &c.Credentials.AudioDB.APIKey},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.key); v != "" {
			*o.dst = v
		}
	}
}
