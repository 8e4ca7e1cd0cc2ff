package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Addr:              "127.0.0.1",
		Port:              "8081",
		SQLiteDBPath:      "./test.db",
		SQLiteBusyTimeout: 5 * time.Second,
		ExportDir:         ".",
		LogLevel:          "info",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "localhost address",
			mutate:  func(c *Config) { c.Addr = "localhost" },
			wantErr: false,
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range low",
			mutate:      func(c *Config) { c.Port = "0" },
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name:        "invalid port - out of range high",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "invalid address",
			mutate:      func(c *Config) { c.Addr = "not an ip" },
			wantErr:     true,
			errorString: "invalid listen address 'not an ip'",
		},
		{
			name:        "missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "busy timeout too long",
			mutate:      func(c *Config) { c.SQLiteBusyTimeout = 2 * time.Minute },
			wantErr:     true,
			errorString: "invalid SQLite busy timeout 2m0s: must be at most 1 minute",
		},
		{
			name:        "empty export dir",
			mutate:      func(c *Config) { c.ExportDir = " " },
			wantErr:     true,
			errorString: "export directory cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else if err != nil {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateCollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Port = "abc"
	cfg.LogLevel = "loud"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "invalid port") || !strings.Contains(err.Error(), "invalid log level") {
		t.Errorf("expected both problems reported, got %v", err)
	}
}

func TestConfig_ValidateCreatesDBDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "workday.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to be created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	for _, key := range []string{"WORKDAY_ADDR", "PORT", "WORKDAY_DB_PATH", "WORKDAY_EXPORT_DIR", "LOG_LEVEL", "SQLITE_BUSY_TIMEOUT"} {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.ListenAddr() != "127.0.0.1:8081" {
			t.Errorf("Load() ListenAddr = %v, want 127.0.0.1:8081", cfg.ListenAddr())
		}
		if filepath.Base(cfg.SQLiteDBPath) != DefaultDBName {
			t.Errorf("Load() SQLiteDBPath = %v, want file named %s", cfg.SQLiteDBPath, DefaultDBName)
		}
		if cfg.SQLiteBusyTimeout != 5*time.Second {
			t.Errorf("Load() SQLiteBusyTimeout = %v, want 5s", cfg.SQLiteBusyTimeout)
		}
		if cfg.ExportDir != "." || cfg.LogLevel != "info" {
			t.Errorf("Load() ExportDir = %v LogLevel = %v", cfg.ExportDir, cfg.LogLevel)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("WORKDAY_DB_PATH", "/tmp/test.db")
		t.Setenv("SQLITE_BUSY_TIMEOUT", "2s")
		t.Setenv("LOG_LEVEL", "debug")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.SQLiteBusyTimeout != 2*time.Second {
			t.Errorf("Load() SQLiteBusyTimeout = %v, want 2s", cfg.SQLiteBusyTimeout)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
	})

	t.Run("invalid duration uses default", func(t *testing.T) {
		t.Setenv("SQLITE_BUSY_TIMEOUT", "invalid")

		cfg := Load()

		if cfg.SQLiteBusyTimeout != 5*time.Second {
			t.Errorf("Load() SQLiteBusyTimeout = %v, want 5s (default for invalid input)", cfg.SQLiteBusyTimeout)
		}
	})
}
