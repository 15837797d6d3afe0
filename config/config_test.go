// ABOUTME: Tests for configuration persistence and overrides
// ABOUTME: Covers XDG paths, save/load round trips, env overrides, and device IDs
package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func useTempDataHome(t *testing.T) {
	t.Helper()
	origHome := xdg.DataHome
	xdg.DataHome = t.TempDir()
	t.Cleanup(func() { xdg.DataHome = origHome })
}

func TestPaths(t *testing.T) {
	base := filepath.Join(xdg.DataHome, "tablevine")
	assert.Equal(t, base, Dir())
	assert.Equal(t, "config.json", filepath.Base(Path()))
	assert.Equal(t, "cache.db", filepath.Base(CachePath()))
	assert.True(t, strings.HasPrefix(CatalogDir(), base))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	useTempDataHome(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.UserID)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	useTempDataHome(t)

	cfg := &Config{
		APIURL:             "https://staging.example.com",
		Token:              "tok-abc",
		UserID:             "2d9f0a61-6ff8-4b52-9b06-4df0f4f2ef4f",
		DisplayName:        "Pat",
		DeviceID:           GenerateDeviceID(),
		RosterPollSeconds:  60,
		MessagePollSeconds: 10,
		CatalogQuotaBytes:  1 << 20,
	}
	require.NoError(t, Save(cfg))

	// The file holds a credential, so permissions must be restricted.
	info, err := os.Stat(Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestEnvOverrides(t *testing.T) {
	useTempDataHome(t)

	require.NoError(t, Save(&Config{APIURL: "https://file.example.com", Token: "file-token"}))

	t.Setenv("TABLEVINE_API_URL", "https://env.example.com")
	t.Setenv("TABLEVINE_TOKEN", "env-token")
	t.Setenv("TABLEVINE_CATALOG_QUOTA", "2048")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://env.example.com", cfg.APIURL)
	assert.Equal(t, "env-token", cfg.Token)
	assert.Equal(t, 2048, cfg.CatalogQuotaBytes)
}

func TestPollIntervals(t *testing.T) {
	cfg := &Config{RosterPollSeconds: 45, MessagePollSeconds: 3}
	assert.Equal(t, 45*time.Second, cfg.RosterInterval())
	assert.Equal(t, 3*time.Second, cfg.MessageInterval())

	// Unset intervals are zero; callers fall back to their own defaults.
	empty := &Config{}
	assert.Equal(t, time.Duration(0), empty.RosterInterval())
	assert.Equal(t, time.Duration(0), empty.MessageInterval())
}

func TestGenerateDeviceID(t *testing.T) {
	id := GenerateDeviceID()

	parsed, err := ulid.Parse(id)
	require.NoError(t, err, "device ID should be a valid ULID")
	assert.Len(t, id, 26)
	assert.WithinDuration(t, time.Now(), ulid.Time(parsed.Time()), time.Minute)

	assert.NotEqual(t, id, GenerateDeviceID(), "device IDs should be unique")
}
