package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.API.BaseURL != "https://umb-web-taller-1.onrender.com" {
			t.Errorf("expected default base URL, got %s", config.API.BaseURL)
		}

		if config.API.Timeout.Duration != 15*time.Second {
			t.Errorf("expected timeout 15s, got %s", config.API.Timeout)
		}

		if config.Client.Serialize {
			t.Error("expected serialize to default to false")
		}

		if config.Database.Path != "./tareas.db" {
			t.Errorf("expected database path ./tareas.db, got %s", config.Database.Path)
		}

		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected server addr 127.0.0.1:8080, got %s", config.Server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		if config.API.BaseURL != DefaultConfig().API.BaseURL {
			t.Errorf("created config base URL doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[api]
base_url = "http://localhost:9090/tareas.php"
timeout = "2s"
requests_per_second = 4.5

[client]
serialize = true

[server]
port = 9000
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.API.BaseURL != "http://localhost:9090/tareas.php" {
			t.Errorf("unexpected base URL %s", config.API.BaseURL)
		}
		if config.API.Timeout.Duration != 2*time.Second {
			t.Errorf("expected timeout 2s, got %s", config.API.Timeout)
		}
		if config.API.RequestsPerSecond != 4.5 {
			t.Errorf("expected 4.5 requests per second, got %v", config.API.RequestsPerSecond)
		}
		if !config.Client.Serialize {
			t.Error("expected serialize to be true")
		}
		if config.Server.Port != 9000 {
			t.Errorf("expected server port 9000, got %d", config.Server.Port)
		}
		if config.Server.Host != "127.0.0.1" {
			t.Errorf("expected unset host to keep default, got %s", config.Server.Host)
		}
	})

	t.Run("LoadConfig rejects bad values", func(t *testing.T) {
		tc := []struct {
			name string
			body string
		}{
			{name: "bad duration", body: "[api]\ntimeout = \"soon\"\n"},
			{name: "empty base url", body: "[api]\nbase_url = \"\"\n"},
			{name: "negative rate", body: "[api]\nrequests_per_second = -1.0\n"},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				configPath := filepath.Join(t.TempDir(), "config.toml")
				if err := os.WriteFile(configPath, []byte(tt.body), 0644); err != nil {
					t.Fatalf("failed to write test config: %v", err)
				}

				_, err := LoadConfig(configPath)
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("expected ErrInvalidConfig, got %v", err)
				}
			})
		}
	})

	t.Run("LoadConfig missing file", func(t *testing.T) {
		if _, err := LoadConfig("/nonexistent/config.toml"); err == nil {
			t.Error("expected error for missing file")
		}
	})
}
