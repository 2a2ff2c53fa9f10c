package shared

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
)

//go:embed config.example.toml
var exampleConf []byte

// Config represents the application configuration loaded from a TOML file.
//
// Every field can be overridden by the PARTYX_* environment variable named in its env tag.
type Config struct {
	Credentials CredentialsConfig `toml:"credentials"`
	Database    DatabaseConfig    `toml:"database"`
	Server      ServerConfig      `toml:"server"`
	Media       MediaConfig       `toml:"media"`
	Log         LogConfig         `toml:"log"`
}

// CredentialsConfig contains media lookup credentials.
type CredentialsConfig struct {
	Spotify SpotifyConfig `toml:"spotify"`
	YouTube YouTubeConfig `toml:"youtube"`
}

// SpotifyConfig contains Spotify Web API client credentials.
type SpotifyConfig struct {
	ClientID     string `toml:"client_id" env:"PARTYX_SPOTIFY_CLIENT_ID"`
	ClientSecret string `toml:"client_secret" env:"PARTYX_SPOTIFY_CLIENT_SECRET"`
	BaseURL      string `toml:"base_url" env:"PARTYX_SPOTIFY_BASE_URL"`
	TokenURL     string `toml:"token_url" env:"PARTYX_SPOTIFY_TOKEN_URL"`
}

// YouTubeConfig contains YouTube Data API settings.
type YouTubeConfig struct {
	APIKey  string `toml:"api_key" env:"PARTYX_YOUTUBE_API_KEY"`
	BaseURL string `toml:"base_url" env:"PARTYX_YOUTUBE_BASE_URL"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path" env:"PARTYX_DB_PATH"`
	MaxOpenConns int    `toml:"max_open_conns" env:"PARTYX_DB_MAX_OPEN_CONNS"`
	MaxIdleConns int    `toml:"max_idle_conns" env:"PARTYX_DB_MAX_IDLE_CONNS"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Host            string        `toml:"host" env:"PARTYX_HOST"`
	Port            int           `toml:"port" env:"PARTYX_PORT"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"PARTYX_SHUTDOWN_TIMEOUT"`
}

// Addr returns the host:port listen address.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// MediaConfig tunes the media lookup chain.
type MediaConfig struct {
	// Providers lists lookup backends in fallback order ("youtube", "spotify").
	Providers []string      `toml:"providers" env:"PARTYX_MEDIA_PROVIDERS" envSeparator:","`
	Timeout   time.Duration `toml:"timeout" env:"PARTYX_MEDIA_TIMEOUT"`
	RateLimit float64       `toml:"rate_limit" env:"PARTYX_MEDIA_RATE_LIMIT"`
	Workers   int           `toml:"workers" env:"PARTYX_MEDIA_WORKERS"`
	Cache     bool          `toml:"cache" env:"PARTYX_MEDIA_CACHE"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	Level string `toml:"level" env:"PARTYX_LOG_LEVEL"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Values missing from the file fall back to the embedded defaults; environment overrides are applied last.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config: %v", ErrInvalidConfig, err)
	}

	if err := ApplyEnv(config); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides config fields from PARTYX_* environment variables.
func ApplyEnv(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("%w: parse env: %v", ErrInvalidConfig, err)
	}
	return nil
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
