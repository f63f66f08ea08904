// Package config reads the CLI's settings from the environment. A .env file
// in the working directory, or the file named by TRIPDESK_ENV_FILE, is
// loaded first; variables already set in the environment win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIURL is the backend address when TRIPDESK_API_URL is unset.
	DefaultAPIURL = "http://localhost:8000/api"

	defaultEnvFile = ".env"
	logFileName    = "tripdesk.log"
)

// Config holds the CLI settings. It is read once at startup.
type Config struct {
	APIURL   string
	StateDir string

	LogLevel slog.Level
	LogFile  string

	// RateLimit caps outgoing requests per second. Zero disables it.
	RateLimit float64

	// MetricsFile receives the request metrics on exit when set.
	MetricsFile string
}

// Load reads the configuration.
func Load() (*Config, error) {
	envFile := getEnvString("TRIPDESK_ENV_FILE", defaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	cfg := &Config{
		APIURL:      strings.TrimRight(getEnvString("TRIPDESK_API_URL", DefaultAPIURL), "/"),
		StateDir:    os.Getenv("TRIPDESK_STATE_DIR"),
		LogFile:     os.Getenv("TRIPDESK_LOG_FILE"),
		MetricsFile: os.Getenv("TRIPDESK_METRICS_FILE"),
	}

	var problems []string

	u, err := url.Parse(cfg.APIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		problems = append(problems, fmt.Sprintf("TRIPDESK_API_URL %q is not an http(s) URL", cfg.APIURL))
	}

	if cfg.StateDir == "" {
		dir, err := DefaultStateDir()
		if err != nil {
			return nil, err
		}
		cfg.StateDir = dir
	}
	if cfg.LogFile == "" {
		cfg.LogFile = filepath.Join(cfg.StateDir, logFileName)
	}

	if v := os.Getenv("TRIPDESK_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			problems = append(problems, fmt.Sprintf("TRIPDESK_LOG_LEVEL %q is not a log level", v))
		}
	}

	if v := os.Getenv("TRIPDESK_RATE_LIMIT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 {
			problems = append(problems, fmt.Sprintf("TRIPDESK_RATE_LIMIT %q is not a non-negative number", v))
		}
		cfg.RateLimit = f
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

// DefaultStateDir returns ~/.tripdesk.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".tripdesk"), nil
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
