package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

const (
	defaultBaseURL        = "https://api.ecommerce.qafdev.com"
	defaultTimeoutSeconds = 10
)

// Config holds client configuration loaded from the environment.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	StateDir       string
}

// Load reads configuration from environment variables, applying defaults.
// Call godotenv.Load beforehand if a .env file should be honoured.
func Load() (*Config, error) {
	baseURL := os.Getenv("API_BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	timeoutSeconds := defaultTimeoutSeconds
	if v := os.Getenv("API_TIMEOUT_SECONDS"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			log.Printf("Invalid API_TIMEOUT_SECONDS %q, defaulting to %d: %v", v, defaultTimeoutSeconds, err)
		} else {
			timeoutSeconds = parsed
		}
	}

	stateDir := os.Getenv("STATE_DIR")
	if stateDir == "" {
		configDir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("STATE_DIR not set and user config dir unavailable: %w", err)
		}
		stateDir = filepath.Join(configDir, "storefront")
	}
	if err := os.MkdirAll(stateDir, 0o700); err != nil {
		return nil, fmt.Errorf("failed to create state directory %s: %w", stateDir, err)
	}

	return &Config{
		BaseURL:        baseURL,
		RequestTimeout: time.Duration(timeoutSeconds) * time.Second,
		StateDir:       stateDir,
	}, nil
}
