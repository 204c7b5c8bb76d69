package config

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Config holds application configuration.
type Config struct {
	// HistoryLimit caps the retained history entries (FIFO eviction).
	HistoryLimit int `json:"history_limit"`

	// ModelEndpoint overrides the upstream model base URL. Empty means the
	// hosted Gemini endpoint; a chat-completions URL switches the provider
	// to the OpenAI-compatible request shape.
	ModelEndpoint string `json:"model_endpoint,omitempty"`

	// ModelID is the upstream model identifier.
	ModelID string `json:"model_id"`

	// APIKeyEnv names the environment variable holding the upstream API key.
	// When the variable is unset, generation falls back to a deterministic
	// local artifact instead of calling upstream.
	APIKeyEnv string `json:"api_key_env"`

	// RatePerMinute limits requests per client IP on the HTTP surface.
	// Zero or negative disables rate limiting.
	RatePerMinute int `json:"rate_per_minute"`

	// MaxBodyBytes caps the POST /generate request body size.
	MaxBodyBytes int64 `json:"max_body_bytes"`

	// Bind and Port are the default HTTP listen address.
	Bind string `json:"bind"`
	Port int    `json:"port"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		HistoryLimit:  200,
		ModelID:       "gemini-2.5-flash",
		APIKeyEnv:     "GEMINI_API_KEY",
		RatePerMinute: 60,
		MaxBodyBytes:  1 << 20,
		Bind:          "127.0.0.1",
		Port:          5000,
	}
}

// Load loads configuration from baseDir/config.json. Fields omitted from the
// file keep their defaults; a missing file yields the default config. The
// baseDir parameter allows tests to use t.TempDir() instead of ~/.codegen.
func Load(baseDir string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
