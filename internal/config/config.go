package config

import (
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// DefaultDBName is the database file created beside the executable.
const DefaultDBName = "workday.db"

type Config struct {
	// HTTP Server
	Addr string
	Port string

	// Database
	SQLiteDBPath      string
	SQLiteBusyTimeout time.Duration

	// Report exports
	ExportDir string

	// Logging
	LogLevel string
}

func Load() *Config {
	cfg := &Config{
		Addr: getEnv("WORKDAY_ADDR", "127.0.0.1"),
		Port: getEnv("PORT", "8081"),

		SQLiteDBPath:      getEnv("WORKDAY_DB_PATH", defaultDBPath()),
		SQLiteBusyTimeout: getEnvDuration("SQLITE_BUSY_TIMEOUT", 5*time.Second),

		ExportDir: getEnv("WORKDAY_EXPORT_DIR", "."),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	return cfg
}

// ListenAddr is the host:port the HTTP server binds.
func (c *Config) ListenAddr() string {
	return net.JoinHostPort(c.Addr, c.Port)
}

// Validate validates the configuration and returns an error if invalid
func (c *Config) Validate() error {
	var errors []string

	// Validate port
	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if strings.TrimSpace(c.Addr) == "" {
		errors = append(errors, "listen address cannot be empty")
	} else if c.Addr != "localhost" && net.ParseIP(c.Addr) == nil {
		errors = append(errors, fmt.Sprintf("invalid listen address '%s': must be an IP or localhost", c.Addr))
	}

	if c.SQLiteDBPath == "" {
		errors = append(errors, "SQLite database path cannot be empty")
	} else {
		// Check if directory exists or can be created
		dir := filepath.Dir(c.SQLiteDBPath)
		if dir != "." && dir != "" {
			if _, err := os.Stat(dir); os.IsNotExist(err) {
				if err := os.MkdirAll(dir, 0755); err != nil {
					errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
				}
			}
		}
	}

	if c.SQLiteBusyTimeout < 0 {
		errors = append(errors, fmt.Sprintf("invalid SQLite busy timeout %v: must not be negative", c.SQLiteBusyTimeout))
	} else if c.SQLiteBusyTimeout > time.Minute {
		errors = append(errors, fmt.Sprintf("invalid SQLite busy timeout %v: must be at most 1 minute", c.SQLiteBusyTimeout))
	}

	if strings.TrimSpace(c.ExportDir) == "" {
		errors = append(errors, "export directory cannot be empty")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		errors = append(errors, fmt.Sprintf("invalid log level '%s': must be one of debug, info, warn, error", c.LogLevel))
	}

	// Return combined errors
	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// defaultDBPath places the database next to the running binary, falling back
// to the working directory.
func defaultDBPath() string {
	exe, err := os.Executable()
	if err != nil {
		return DefaultDBName
	}
	return filepath.Join(filepath.Dir(exe), DefaultDBName)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
