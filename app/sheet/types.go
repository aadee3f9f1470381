package sheet

import (
	"time"

	"golang.org/x/text/cases"
)

// RawRow is one unparsed spreadsheet row. Row 0 of a source is the header.
type RawRow []string

// Result is what a Source hands back: either rows, or the reason the caller
// should move on to the next source.
type Result struct {
	Rows   []RawRow
	Reason error
}

func Ok(rows []RawRow) Result {
	return Result{Rows: rows}
}

func NeedsFallback(reason error) Result {
	return Result{Reason: reason}
}

func (r Result) NeedsFallback() bool {
	return r.Reason != nil
}

type SourceConfig struct {
	SpreadsheetID   string
	APIKey          string
	SheetName       string
	Range           string
	GID             string
	APIEndpoint     string
	SpreadsheetHost string
	Timeout         time.Duration
	UserAgent       string
}

// Fold case-folds s for case-insensitive comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}
