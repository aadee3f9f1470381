package sheet

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSourceConfig(serverURL string) SourceConfig {
	return SourceConfig{
		SpreadsheetID:   "sheet-123",
		APIKey:          "secret-key",
		SheetName:       "Content",
		Range:           "A1:Z100",
		GID:             "0",
		APIEndpoint:     serverURL + "/v4/spreadsheets",
		SpreadsheetHost: serverURL + "/spreadsheets/d",
		Timeout:         2 * time.Second,
		UserAgent:       "Blog Comb Test",
	}
}

func TestAPISource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v4/spreadsheets/sheet-123/values/Content!A1:Z100", r.URL.Path)
		assert.Equal(t, "secret-key", r.URL.Query().Get("key"))
		assert.Equal(t, "Blog Comb Test", r.Header.Get("User-Agent"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"range":"Content!A1:Z100","majorDimension":"ROWS","values":[["Title","Approved?"],["Hello","yes"]]}`))
	}))
	defer server.Close()

	source := NewAPISource(server.Client(), testSourceConfig(server.URL))
	result := source.Fetch(context.Background())

	require.False(t, result.NeedsFallback(), "unexpected fallback: %v", result.Reason)
	assert.Equal(t, []RawRow{{"Title", "Approved?"}, {"Hello", "yes"}}, result.Rows)
}

func TestAPISource_Fetch_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	result := NewAPISource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())

	assert.True(t, result.NeedsFallback())
	assert.Contains(t, result.Reason.Error(), "500")
}

func TestAPISource_Fetch_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"values": [`))
	}))
	defer server.Close()

	result := NewAPISource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())

	assert.True(t, result.NeedsFallback())
}

func TestAPISource_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	config := testSourceConfig(server.URL)
	config.Timeout = 50 * time.Millisecond

	start := time.Now()
	result := NewAPISource(server.Client(), config).Fetch(context.Background())

	assert.True(t, result.NeedsFallback())
	assert.Less(t, time.Since(start), time.Second)
}

func TestAPISource_Fetch_TransportErrorHidesKey(t *testing.T) {
	config := testSourceConfig("http://127.0.0.1:1")

	result := NewAPISource(http.DefaultClient, config).Fetch(context.Background())

	require.True(t, result.NeedsFallback())
	assert.NotContains(t, result.Reason.Error(), "secret-key")
}

func TestCSVSource_Fetch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/spreadsheets/d/sheet-123/export", r.URL.Path)
		assert.Equal(t, "csv", r.URL.Query().Get("format"))
		assert.Equal(t, "0", r.URL.Query().Get("gid"))

		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("Title,Approved?\n\"Hello, world\",yes\n"))
	}))
	defer server.Close()

	result := NewCSVSource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())

	require.False(t, result.NeedsFallback())
	assert.Equal(t, []RawRow{{"Title", "Approved?"}, {"Hello, world", "yes"}}, result.Rows)
}

func TestCSVSource_Fetch_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	result := NewCSVSource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())

	assert.True(t, result.NeedsFallback())
	assert.True(t, strings.Contains(result.Reason.Error(), "404"))
}

func TestCSVSource_Fetch_OversizedBody(t *testing.T) {
	previous := maxBodySize
	maxBodySize = 32
	t.Cleanup(func() { maxBodySize = previous })

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Title,Approved?\nFirst,yes\nSecond,yes\nThird,yes\n"))
	}))
	defer server.Close()

	result := NewCSVSource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())

	require.True(t, result.NeedsFallback(), "a truncated sheet must not be ingested")
	assert.Nil(t, result.Rows)
	assert.Contains(t, result.Reason.Error(), "exceeds 32 bytes")

	maxBodySize = 64
	result = NewCSVSource(server.Client(), testSourceConfig(server.URL)).Fetch(context.Background())
	assert.False(t, result.NeedsFallback(), "body within the limit: %v", result.Reason)
}
