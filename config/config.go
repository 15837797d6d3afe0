// ABOUTME: Console configuration and session persistence
// ABOUTME: JSON config at XDG paths with environment variable overrides and device ID generation
package config

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/oklog/ulid/v2"
)

// Config stores API credentials and console settings.
type Config struct {
	APIURL             string `json:"api_url"`
	Token              string `json:"token,omitempty"`
	UserID             string `json:"user_id,omitempty"`
	DisplayName        string `json:"display_name,omitempty"`
	DeviceID           string `json:"device_id,omitempty"`
	RosterPollSeconds  int    `json:"roster_poll_seconds,omitempty"`
	MessagePollSeconds int    `json:"message_poll_seconds,omitempty"`
	CatalogQuotaBytes  int    `json:"catalog_quota_bytes,omitempty"`
}

// DefaultAPIURL is used until an operator points the console elsewhere.
const DefaultAPIURL = "https://api.tablevine.dev"

// Dir returns the XDG-compliant data directory.
func Dir() string {
	return filepath.Join(xdg.DataHome, "tablevine")
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(Dir(), "config.json")
}

// CachePath returns the local cache database location.
func CachePath() string {
	return filepath.Join(Dir(), "cache.db")
}

// CatalogDir returns the experiences catalog directory.
func CatalogDir() string {
	return filepath.Join(Dir(), "catalog")
}

// Load reads the config file, falling back to defaults when it does not
// exist. Environment variables override file values:
// - TABLEVINE_API_URL
// - TABLEVINE_TOKEN
// - TABLEVINE_USER_ID
// - TABLEVINE_DEVICE_ID
// - TABLEVINE_CATALOG_QUOTA.
func Load() (*Config, error) {
	cfg := &Config{APIURL: DefaultAPIURL}

	f, err := os.Open(Path())
	if err != nil {
		if os.IsNotExist(err) {
			applyEnvOverrides(cfg)
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	if err := json.NewDecoder(f).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if cfg.APIURL == "" {
		cfg.APIURL = DefaultAPIURL
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if url := os.Getenv("TABLEVINE_API_URL"); url != "" {
		cfg.APIURL = url
	}
	if token := os.Getenv("TABLEVINE_TOKEN"); token != "" {
		cfg.Token = token
	}
	if userID := os.Getenv("TABLEVINE_USER_ID"); userID != "" {
		cfg.UserID = userID
	}
	if deviceID := os.Getenv("TABLEVINE_DEVICE_ID"); deviceID != "" {
		cfg.DeviceID = deviceID
	}
	if quota := os.Getenv("TABLEVINE_CATALOG_QUOTA"); quota != "" {
		if n, err := strconv.Atoi(quota); err == nil && n > 0 {
			cfg.CatalogQuotaBytes = n
		}
	}
}

// Save writes the config with restricted permissions; it holds a credential.
func Save(cfg *Config) error {
	if err := os.MkdirAll(Dir(), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(Path(), os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer func() { _ = f.Close() }()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// RosterInterval returns the configured roster poll interval, or zero to use
// the messaging default.
func (c *Config) RosterInterval() time.Duration {
	return time.Duration(c.RosterPollSeconds) * time.Second
}

// MessageInterval returns the configured message poll interval, or zero to
// use the messaging default.
func (c *Config) MessageInterval() time.Duration {
	return time.Duration(c.MessagePollSeconds) * time.Second
}

// GenerateDeviceID generates a new ULID identifying this install.
func GenerateDeviceID() string {
	entropy := ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
