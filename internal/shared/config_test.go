package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./partyx.db" {
			t.Errorf("expected database path ./partyx.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected addr 127.0.0.1:8080, got %s", config.Server.Addr())
		}

		if config.Media.Timeout != 5*time.Second {
			t.Errorf("expected media timeout 5s, got %v", config.Media.Timeout)
		}

		if len(config.Media.Providers) != 2 || config.Media.Providers[0] != "youtube" {
			t.Errorf("expected providers [youtube spotify], got %v", config.Media.Providers)
		}

		if config.Credentials.YouTube.BaseURL != "https://www.googleapis.com/youtube/v3" {
			t.Errorf("unexpected youtube base URL %s", config.Credentials.YouTube.BaseURL)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[server]
host = "0.0.0.0"
port = 9090

[media]
timeout = "2s"

[credentials.spotify]
client_id = "test_client_id"
client_secret = "test_secret"
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 9090 {
			t.Errorf("expected server port 9090, got %d", config.Server.Port)
		}

		if config.Media.Timeout != 2*time.Second {
			t.Errorf("expected media timeout 2s, got %v", config.Media.Timeout)
		}

		if config.Media.Workers != 4 {
			t.Errorf("expected default workers to survive partial file, got %d", config.Media.Workers)
		}

		if config.Credentials.Spotify.ClientID != "test_client_id" {
			t.Errorf("expected spotify client_id test_client_id, got %s", config.Credentials.Spotify.ClientID)
		}
	})

	t.Run("LoadConfig Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[database\npath ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("ApplyEnv", func(t *testing.T) {
		t.Setenv("PARTYX_DB_PATH", "/env/party.db")
		t.Setenv("PARTYX_PORT", "7070")
		t.Setenv("PARTYX_MEDIA_PROVIDERS", "spotify")
		t.Setenv("PARTYX_YOUTUBE_API_KEY", "env-key")

		config := DefaultConfig()
		if err := ApplyEnv(config); err != nil {
			t.Fatalf("failed to apply env: %v", err)
		}

		if config.Database.Path != "/env/party.db" {
			t.Errorf("expected env database path, got %s", config.Database.Path)
		}
		if config.Server.Port != 7070 {
			t.Errorf("expected env port 7070, got %d", config.Server.Port)
		}
		if len(config.Media.Providers) != 1 || config.Media.Providers[0] != "spotify" {
			t.Errorf("expected providers [spotify], got %v", config.Media.Providers)
		}
		if config.Credentials.YouTube.APIKey != "env-key" {
			t.Errorf("expected env api key, got %s", config.Credentials.YouTube.APIKey)
		}
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected unset env to keep file value, got %s", config.Server.Host)
		}
	})

	t.Run("ApplyEnv Invalid Value", func(t *testing.T) {
		t.Setenv("PARTYX_PORT", "not-a-port")

		if err := ApplyEnv(DefaultConfig()); err == nil {
			t.Error("expected error for invalid port")
		}
	})
}
