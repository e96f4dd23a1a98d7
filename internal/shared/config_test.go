package shared

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Valid File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		content := `
[server]
base_url = "http://example.com/api"
timeout_seconds = 30
rate_limit = 5.0

[auth]
token_path = "/tmp/token"

[tracking]
poll_interval_ms = 500

[database]
path = "./test.db"
max_open_conns = 4
max_idle_conns = 2

[export]
format = "html"
num_workers = 2
`
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if config.Server.BaseURL != "http://example.com/api" {
			t.Errorf("unexpected base_url: %s", config.Server.BaseURL)
		}
		if config.Server.Timeout() != 30*time.Second {
			t.Errorf("unexpected timeout: %v", config.Server.Timeout())
		}
		if config.Tracking.PollInterval() != 500*time.Millisecond {
			t.Errorf("unexpected poll interval: %v", config.Tracking.PollInterval())
		}
		if config.Auth.ResolveTokenPath() != "/tmp/token" {
			t.Errorf("unexpected token path: %s", config.Auth.ResolveTokenPath())
		}
		if config.Export.Format != "html" {
			t.Errorf("unexpected export format: %s", config.Export.Format)
		}
	})

	t.Run("Missing File", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
			t.Error("expected error for missing file")
		}
	})

	t.Run("Invalid TOML", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write config: %v", err)
		}

		if _, err := LoadConfig(path); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Server.BaseURL == "" {
		t.Error("expected default base_url")
	}
	if config.Tracking.PollInterval() != 2*time.Second {
		t.Errorf("expected default 2s poll interval, got %v", config.Tracking.PollInterval())
	}
	if config.Database.Path == "" {
		t.Error("expected default database path")
	}
}

func TestConfigDefaults(t *testing.T) {
	t.Run("Timeout Floor", func(t *testing.T) {
		if (ServerConfig{}).Timeout() != 60*time.Second {
			t.Error("expected 60s fallback for unset timeout")
		}
	})

	t.Run("Poll Interval Floor", func(t *testing.T) {
		if (TrackingConfig{}).PollInterval() != 2*time.Second {
			t.Error("expected 2s fallback for unset poll interval")
		}
		if (TrackingConfig{PollIntervalMS: -100}).PollInterval() != 2*time.Second {
			t.Error("expected 2s fallback for negative poll interval")
		}
	})

	t.Run("Token Path Fallback", func(t *testing.T) {
		got := (AuthConfig{}).ResolveTokenPath()
		want := filepath.Join(os.Getenv("HOME"), ".wayfarer", "token")
		if got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})
}

func TestCreateConfigFile(t *testing.T) {
	t.Run("Creates From Template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")

		if err := CreateConfigFile(path); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		config, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("created config does not parse: %v", err)
		}
		if config.Server.BaseURL == "" {
			t.Error("expected template values present")
		}
	})

	t.Run("Refuses To Overwrite", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(path, []byte("# existing"), 0644); err != nil {
			t.Fatalf("failed to seed file: %v", err)
		}

		if err := CreateConfigFile(path); err == nil {
			t.Error("expected error for existing file")
		}
	})
}
