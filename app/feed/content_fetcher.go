package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const maxDocumentSize = 10 << 20

// ErrInvalidContentURL means the post's URL cannot be fetched at all.
var ErrInvalidContentURL = errors.New("invalid content URL")

// ContentFetcher downloads the document a post links to.
type ContentFetcher struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
}

func NewContentFetcher(httpClient *http.Client, userAgent string, timeout time.Duration) *ContentFetcher {
	return &ContentFetcher{
		httpClient: httpClient,
		userAgent:  userAgent,
		timeout:    timeout,
	}
}

// Fetch returns the HTML body and the URL it was requested from.
func (f *ContentFetcher) Fetch(ctx context.Context, rawURL string) ([]byte, *url.URL, error) {
	target, err := DocumentURL(rawURL)
	if err != nil {
		return nil, nil, err
	}

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch %s: %w", target.Host, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, nil, fmt.Errorf("HTTP error: %s", resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxDocumentSize))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return data, target, nil
}

// DocumentURL validates rawURL and rewrites Google Docs editor links to
// their HTML export.
func DocumentURL(rawURL string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidContentURL, rawURL)
	}

	if u.Host != "docs.google.com" {
		return u, nil
	}

	// /document/d/{id}/edit -> /document/d/{id}/export?format=html
	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 3 && parts[0] == "document" && parts[1] == "d" && parts[2] != "" {
		return &url.URL{
			Scheme:   "https",
			Host:     u.Host,
			Path:     "/document/d/" + parts[2] + "/export",
			RawQuery: "format=html",
		}, nil
	}

	return u, nil
}
