package feed

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/url"

	"codeberg.org/readeck/go-readability"
	"github.com/microcosm-cc/bluemonday"
)

// Article is the readable body of a post document.
type Article struct {
	Title   string
	Content string
}

// ContentExtractor pulls the main article out of an HTML page and strips
// anything unsafe to embed.
type ContentExtractor struct {
	policy *bluemonday.Policy
}

func NewContentExtractor() *ContentExtractor {
	return &ContentExtractor{policy: bluemonday.UGCPolicy()}
}

func (e *ContentExtractor) Run(data []byte, pageURL *url.URL) (*Article, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("HTML data is empty")
	}

	article, err := readability.FromReader(bytes.NewReader(data), pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to extract content: %w", err)
	}

	content := e.policy.Sanitize(article.Content)
	if content == "" {
		return nil, fmt.Errorf("no content extracted from HTML data")
	}

	slog.Debug("Content extracted successfully",
		"title", article.Title,
		"content_length", len(content))

	return &Article{Title: article.Title, Content: content}, nil
}
