package cfg

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_ID", "sheet-123")
	t.Setenv("TZ", "UTC")

	cfg, err := load([]string{})
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "sheet-123", cfg.SpreadsheetID)
	assert.Equal(t, "", cfg.SheetsAPIKey)
	assert.Equal(t, "Content", cfg.SheetName)
	assert.Equal(t, "A1:Z100", cfg.SheetRange)
	assert.Equal(t, "0", cfg.SheetGID)
	assert.Equal(t, "https://sheets.googleapis.com/v4/spreadsheets", cfg.SheetsAPIEndpoint)
	assert.Equal(t, "https://docs.google.com/spreadsheets/d", cfg.SpreadsheetHost)
	assert.Equal(t, 10, cfg.RequestTimeout)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "Disruptors Media Blog", cfg.SiteTitle)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 900, cfg.TrackInterval)
	assert.Equal(t, 5.0, cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, "Blog Comb/1.0", cfg.UserAgent)
	assert.Equal(t, GetVersion(), cfg.Version)

	assert.Same(t, cfg, Get())
}

func TestLoadFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_ID", "from-env")
	t.Setenv("TZ", "UTC")

	cfg, err := load([]string{"--spreadsheet-id", "from-flag", "--track-interval", "0", "--sheets-api-key", "k"})
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.SpreadsheetID)
	assert.Equal(t, 0, cfg.TrackInterval)
	assert.Equal(t, "k", cfg.SheetsAPIKey)
}

func TestLoadRequiresSpreadsheetID(t *testing.T) {
	t.Setenv("GOOGLE_SHEETS_ID", "")
	os.Unsetenv("GOOGLE_SHEETS_ID")

	_, err := load([]string{})
	assert.Error(t, err)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  string
		val  string
	}{
		{"non-numeric port", "PORT", "http"},
		{"bad api endpoint", "SHEETS_API_ENDPOINT", "not a url"},
		{"zero workers", "WORKER_COUNT", "0"},
		{"negative interval", "TRACK_INTERVAL", "-5"},
		{"zero timeout", "REQUEST_TIMEOUT", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GOOGLE_SHEETS_ID", "sheet-123")
			t.Setenv(tt.env, tt.val)

			_, err := load([]string{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestSourceConfig(t *testing.T) {
	cfg := &Cfg{
		SpreadsheetID:     "sheet-123",
		SheetsAPIKey:      "key",
		SheetName:         "Content",
		SheetRange:        "A1:Z100",
		SheetGID:          "7",
		SheetsAPIEndpoint: "https://api.example.com",
		SpreadsheetHost:   "https://docs.example.com",
		RequestTimeout:    3,
		UserAgent:         "Test Agent",
	}

	source := cfg.SourceConfig()

	assert.Equal(t, "sheet-123", source.SpreadsheetID)
	assert.Equal(t, "key", source.APIKey)
	assert.Equal(t, "7", source.GID)
	assert.Equal(t, "https://api.example.com", source.APIEndpoint)
	assert.Equal(t, "https://docs.example.com", source.SpreadsheetHost)
	assert.Equal(t, 3*time.Second, source.Timeout)
	assert.Equal(t, "Test Agent", source.UserAgent)
}
