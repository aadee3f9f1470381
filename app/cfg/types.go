package cfg

import (
	"time"

	"github.com/disruptorsmedia/blog-comb/app/sheet"
)

type Cfg struct {
	// Sheet configuration
	SpreadsheetID     string `validate:"required"`
	SheetsAPIKey      string
	SheetName         string `validate:"required"`
	SheetRange        string `validate:"required"`
	SheetGID          string `validate:"required,numeric"`
	SheetsAPIEndpoint string `validate:"required,url"`
	SpreadsheetHost   string `validate:"required,url"`
	RequestTimeout    int    `validate:"gt=0"`

	// Application configuration
	Port          string `validate:"required,numeric"`
	BaseUrl       string `validate:"omitempty,url"`
	SiteTitle     string `validate:"required"`
	TaxonomyFile  string `validate:"omitempty,file"`
	DBPath        string `validate:"required"`
	WorkerCount   int    `validate:"gte=1,lte=32"`
	TrackInterval int    `validate:"gte=0"`
	APIAccessKey  string
	RateLimit     float64 `validate:"gt=0"`
	RateBurst     int     `validate:"gte=1"`

	// Application metadata
	UserAgent string `validate:"required"`
	Timezone  string
	Debug     bool
	Version   string
}

// SourceConfig returns the settings the sheet sources need.
func (c *Cfg) SourceConfig() sheet.SourceConfig {
	return sheet.SourceConfig{
		SpreadsheetID:   c.SpreadsheetID,
		APIKey:          c.SheetsAPIKey,
		SheetName:       c.SheetName,
		Range:           c.SheetRange,
		GID:             c.SheetGID,
		APIEndpoint:     c.SheetsAPIEndpoint,
		SpreadsheetHost: c.SpreadsheetHost,
		Timeout:         time.Duration(c.RequestTimeout) * time.Second,
		UserAgent:       c.UserAgent,
	}
}
