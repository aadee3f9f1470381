package blog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/disruptorsmedia/blog-comb/app/sheet"
)

// ErrSourcesUnavailable is returned when no sheet source produced rows.
var ErrSourcesUnavailable = errors.New("blog sources unavailable")

// Pipeline fetches the content sheet and normalizes it into posts. It keeps
// no state between calls and is safe for concurrent use.
type Pipeline struct {
	primary    sheet.Source
	fallback   sheet.Source
	normalizer *Normalizer
}

// NewPipeline wires the sources explicitly. primary may be nil, in which case
// only fallback is consulted.
func NewPipeline(primary, fallback sheet.Source, normalizer *Normalizer) *Pipeline {
	return &Pipeline{
		primary:    primary,
		fallback:   fallback,
		normalizer: normalizer,
	}
}

// NewSheetPipeline builds the standard pipeline: the Sheets API when an API
// key is configured, always backed by the CSV export.
func NewSheetPipeline(httpClient *http.Client, config sheet.SourceConfig, normalizer *Normalizer) *Pipeline {
	var primary sheet.Source
	if config.APIKey != "" {
		primary = sheet.NewAPISource(httpClient, config)
	}
	return NewPipeline(primary, sheet.NewCSVSource(httpClient, config), normalizer)
}

func (p *Pipeline) HasStructuredSource() bool {
	return p.primary != nil
}

func (p *Pipeline) FetchBlogPosts(ctx context.Context) ([]Post, error) {
	rows, err := p.loadRows(ctx)
	if err != nil {
		return nil, err
	}

	posts := p.normalizer.Run(rows)

	slog.Debug("Blog posts fetched", "rows", max(0, len(rows)-1), "posts", len(posts))

	return posts, nil
}

// FindBySlug runs a fresh fetch and returns the matching post, or nil.
func (p *Pipeline) FindBySlug(ctx context.Context, slug string) (*Post, error) {
	posts, err := p.FetchBlogPosts(ctx)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		if posts[i].Slug == slug {
			return &posts[i], nil
		}
	}
	return nil, nil
}

func (p *Pipeline) loadRows(ctx context.Context) ([]sheet.RawRow, error) {
	var reasons []error

	if p.primary != nil {
		result := p.primary.Fetch(ctx)
		if !result.NeedsFallback() {
			return result.Rows, nil
		}

		slog.Warn("Primary sheet source failed, falling back", "source", p.primary.Name(), "fallback", p.fallback.Name(), "error", result.Reason)
		reasons = append(reasons, fmt.Errorf("%s: %w", p.primary.Name(), result.Reason))
	}

	result := p.fallback.Fetch(ctx)
	if !result.NeedsFallback() {
		return result.Rows, nil
	}

	slog.Error("Fallback sheet source failed", "source", p.fallback.Name(), "error", result.Reason)
	reasons = append(reasons, fmt.Errorf("%s: %w", p.fallback.Name(), result.Reason))

	return nil, fmt.Errorf("%w: %w", ErrSourcesUnavailable, errors.Join(reasons...))
}
