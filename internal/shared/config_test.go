package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "./soundcheck.db" {
			t.Errorf("expected database path ./soundcheck.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 3000 {
			t.Errorf("expected server port 3000, got %d", config.Server.Port)
		}

		if config.Server.Addr() != "localhost:3000" {
			t.Errorf("expected addr localhost:3000, got %s", config.Server.Addr())
		}

		if config.Credentials.AudioDB.APIKey != "2" {
			t.Errorf("expected audiodb test key 2, got %s", config.Credentials.AudioDB.APIKey)
		}

		if config.Credentials.LastFM.APIKey != "" {
			t.Errorf("expected empty lastfm key, got %s", config.Credentials.LastFM.APIKey)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

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

		if config.Database.Path != DefaultConfig().Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		testConfig := `[database]
path = "/custom/path.db"

[server]
host = "0.0.0.0"
port = 8080
allowed_origin = "http://localhost:5173"

[credentials.lastfm]
api_key = "test_lastfm_key"
server_api_key = "test_server_key"

[credentials.bandsintown]
app_id = "test_app"

[catalog]
path = "/etc/soundcheck/catalog.yaml"
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

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Credentials.LastFM.ServerAPIKey != "test_server_key" {
			t.Errorf("expected server key test_server_key, got %s", config.Credentials.LastFM.ServerAPIKey)
		}

		if config.Catalog.Path != "/etc/soundcheck/catalog.yaml" {
			t.Errorf("expected catalog path override, got %s", config.Catalog.Path)
		}

		if config.Server.Burst != 10 {
			t.Errorf("expected default burst 10 to survive partial file, got %d", config.Server.Burst)
		}

		if config.Credentials.AudioDB.APIKey != "2" {
			t.Errorf("expected default audiodb key to survive partial file, got %s", config.Credentials.AudioDB.APIKey)
		}
	})

	t.Run("LoadConfig errors", func(t *testing.T) {
		dir := t.TempDir()

		if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}

		bad := filepath.Join(dir, "bad.toml")
		if err := os.WriteFile(bad, []byte("[server\nport = "), 0644); err != nil {
			t.Fatal(err)
		}
		if _, err := LoadConfig(bad); !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Run("ApplyEnv overrides non-empty values", func(t *testing.T) {
		t.Setenv(EnvLastFMAPIKey, "env_lastfm")
		t.Setenv(EnvBandsintownAppID, "")

		config := DefaultConfig()
		config.Credentials.Bandsintown.AppID = "from_file"
		config.ApplyEnv()

		if config.Credentials.LastFM.APIKey != "env_lastfm" {
			t.Errorf("expected env_lastfm, got %s", config.Credentials.LastFM.APIKey)
		}
		if config.Credentials.Bandsintown.AppID != "from_file" {
			t.Errorf("empty env value should not override, got %s", config.Credentials.Bandsintown.AppID)
		}
	})

	t.Run("LoadEnvFile keeps existing environment", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), ".env")
		content := "AUDIODB_API_KEY=from_dotenv\nLASTFM_SERVER_API_KEY=dotenv_server\n"
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}

		t.Setenv(EnvAudioDBAPIKey, "from_env")
		t.Setenv(EnvLastFMServerAPIKey, "")
		os.Unsetenv(EnvLastFMServerAPIKey)

		if err := LoadEnvFile(path); err != nil {
			t.Fatalf("LoadEnvFile() error = %v", err)
		}

		if got := os.Getenv(EnvAudioDBAPIKey); got != "from_env" {
			t.Errorf("environment should win, got %s", got)
		}
		if got := os.Getenv(EnvLastFMServerAPIKey); got != "dotenv_server" {
			t.Errorf("expected dotenv value, got %s", got)
		}
	})

	t.Run("LoadEnvFile ignores missing file", func(t *testing.T) {
		if err := LoadEnvFile(filepath.Join(t.TempDir(), ".env")); err != nil {
			t.Errorf("expected nil for missing file, got %v", err)
		}
	})
}
