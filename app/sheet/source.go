package sheet

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

var maxBodySize int64 = 10 << 20

type Source interface {
	Name() string
	Fetch(ctx context.Context) Result
}

var _ Source = (*APISource)(nil)
var _ Source = (*CSVSource)(nil)

// APISource reads a fixed range of one tab through the Sheets values API.
type APISource struct {
	httpClient *http.Client
	config     SourceConfig
}

func NewAPISource(httpClient *http.Client, config SourceConfig) *APISource {
	return &APISource{httpClient: httpClient, config: config}
}

func (s *APISource) Name() string {
	return "sheets_api"
}

type valuesResponse struct {
	Range          string     `json:"range"`
	MajorDimension string     `json:"majorDimension"`
	Values         [][]string `json:"values"`
}

func (s *APISource) Fetch(ctx context.Context) Result {
	data, err := fetch(ctx, s.httpClient, s.URL(), s.config)
	if err != nil {
		return NeedsFallback(err)
	}

	var resp valuesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return NeedsFallback(fmt.Errorf("failed to decode values response: %w", err))
	}

	rows := make([]RawRow, len(resp.Values))
	for i, values := range resp.Values {
		rows[i] = RawRow(values)
	}

	return Ok(rows)
}

func (s *APISource) URL() string {
	cellRange := url.PathEscape(s.config.SheetName + "!" + s.config.Range)
	return fmt.Sprintf("%s/%s/values/%s?key=%s",
		strings.TrimRight(s.config.APIEndpoint, "/"),
		url.PathEscape(s.config.SpreadsheetID),
		cellRange,
		url.QueryEscape(s.config.APIKey))
}

// CSVSource reads the public CSV export of the spreadsheet tab.
type CSVSource struct {
	httpClient *http.Client
	config     SourceConfig
}

func NewCSVSource(httpClient *http.Client, config SourceConfig) *CSVSource {
	return &CSVSource{httpClient: httpClient, config: config}
}

func (s *CSVSource) Name() string {
	return "csv_export"
}

func (s *CSVSource) Fetch(ctx context.Context) Result {
	data, err := fetch(ctx, s.httpClient, s.URL(), s.config)
	if err != nil {
		return NeedsFallback(err)
	}

	return Ok(ParseCSV(string(data)))
}

func (s *CSVSource) URL() string {
	return fmt.Sprintf("%s/%s/export?format=csv&gid=%s",
		strings.TrimRight(s.config.SpreadsheetHost, "/"),
		url.PathEscape(s.config.SpreadsheetID),
		url.QueryEscape(s.config.GID))
}

func fetch(ctx context.Context, httpClient *http.Client, rawURL string, config SourceConfig) ([]byte, error) {
	timeoutCtx := ctx
	if config.Timeout > 0 {
		var cancel context.CancelFunc
		timeoutCtx, cancel = context.WithTimeout(ctx, config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(timeoutCtx, "GET", rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if config.UserAgent != "" {
		req.Header.Set("User-Agent", config.UserAgent)
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		// url.Error carries the request URL, which may hold the API key.
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("failed to fetch sheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > maxBodySize {
		return nil, fmt.Errorf("response body exceeds %d bytes", maxBodySize)
	}

	return data, nil
}
