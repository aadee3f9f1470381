package cfg

import (
	"cmp"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Sheet configuration
	SpreadsheetID     string `long:"spreadsheet-id" env:"GOOGLE_SHEETS_ID" description:"Google spreadsheet ID holding the content calendar (required)" required:"true"`
	SheetsAPIKey      string `long:"sheets-api-key" env:"GOOGLE_SHEETS_API_KEY" description:"Google Sheets API key; when empty only the CSV export is used"`
	SheetName         string `long:"sheet-name" env:"SHEET_NAME" default:"Content" description:"Sheet tab read through the Sheets API"`
	SheetRange        string `long:"sheet-range" env:"SHEET_RANGE" default:"A1:Z100" description:"Cell range read through the Sheets API"`
	SheetGID          string `long:"sheet-gid" env:"SHEET_GID" default:"0" description:"Sheet gid used for the CSV export"`
	SheetsAPIEndpoint string `long:"sheets-api-endpoint" env:"SHEETS_API_ENDPOINT" default:"https://sheets.googleapis.com/v4/spreadsheets" description:"Sheets API base URL"`
	SpreadsheetHost   string `long:"spreadsheet-host" env:"SPREADSHEET_HOST" default:"https://docs.google.com/spreadsheets/d" description:"Spreadsheet host used for the CSV export"`
	RequestTimeout    int    `long:"request-timeout" env:"REQUEST_TIMEOUT" default:"10" description:"Upstream request timeout in seconds"`

	// Application configuration
	Port          string  `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl       string  `long:"base-url" env:"BASE_URL" description:"Public base URL for the service (e.g., https://blog.example.com)"`
	SiteTitle     string  `long:"site-title" env:"SITE_TITLE" default:"Disruptors Media Blog" description:"Title used for the RSS feed"`
	TaxonomyFile  string  `long:"taxonomy-file" env:"TAXONOMY_FILE" description:"YAML file overriding the built-in category taxonomy"`
	DBPath        string  `long:"db-path" env:"DB_PATH" default:"./data/blog-comb.db" description:"SQLite database file for the publication ledger"`
	WorkerCount   int     `long:"worker-count" env:"WORKER_COUNT" default:"2" description:"Number of background workers"`
	TrackInterval int     `long:"track-interval" env:"TRACK_INTERVAL" default:"900" description:"Publication tracking interval in seconds, 0 disables tracking"`
	APIAccessKey  string  `long:"api-key" env:"API_ACCESS_KEY" description:"API access key for the admin endpoints (optional)"`
	RateLimit     float64 `long:"rate-limit" env:"RATE_LIMIT" default:"5" description:"Requests per second allowed per client on public endpoints"`
	RateBurst     int     `long:"rate-burst" env:"RATE_BURST" default:"10" description:"Burst size for the per-client rate limit"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Blog Comb/1.0" description:"User agent string for HTTP requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for dates (e.g., UTC, America/Denver)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

var globalCfg *Cfg

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads .env (if present), then flags and environment. It returns nil,
// nil when help was requested.
func Load() (*Cfg, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}

	return load(nil)
}

func load(args []string) (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	var err error
	if args == nil {
		_, err = parser.Parse()
	} else {
		_, err = parser.ParseArgs(args)
	}
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		SpreadsheetID:     raw.SpreadsheetID,
		SheetsAPIKey:      raw.SheetsAPIKey,
		SheetName:         raw.SheetName,
		SheetRange:        raw.SheetRange,
		SheetGID:          raw.SheetGID,
		SheetsAPIEndpoint: raw.SheetsAPIEndpoint,
		SpreadsheetHost:   raw.SpreadsheetHost,
		RequestTimeout:    raw.RequestTimeout,
		Port:              raw.Port,
		BaseUrl:           raw.BaseUrl,
		SiteTitle:         raw.SiteTitle,
		TaxonomyFile:      raw.TaxonomyFile,
		DBPath:            raw.DBPath,
		WorkerCount:       raw.WorkerCount,
		TrackInterval:     raw.TrackInterval,
		APIAccessKey:      raw.APIAccessKey,
		RateLimit:         raw.RateLimit,
		RateBurst:         raw.RateBurst,
		UserAgent:         raw.UserAgent,
		Timezone:          raw.Timezone,
		Debug:             raw.Debug,
		Version:           GetVersion(),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	globalCfg = cfg

	return cfg, nil
}

func Get() *Cfg {
	if globalCfg == nil {
		panic("configuration not loaded - call cfg.Load() first")
	}
	return globalCfg
}

// Set replaces the process configuration. Intended for tests in other packages.
func Set(cfg *Cfg) {
	globalCfg = cfg
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
			fmt.Printf("Timezone configured: %s\n", timezone)
		}
	}
	return nil
}
