package api

import (
	"context"
	"net/url"

	"github.com/disruptorsmedia/blog-comb/app/blog"
	"github.com/disruptorsmedia/blog-comb/app/database"
	"github.com/disruptorsmedia/blog-comb/app/feed"
	"github.com/disruptorsmedia/blog-comb/app/tasks"
)

type PostSource interface {
	FetchBlogPosts(ctx context.Context) ([]blog.Post, error)
	FindBySlug(ctx context.Context, slug string) (*blog.Post, error)
	HasStructuredSource() bool
}

type GeneratorInterface interface {
	Run(posts []blog.Post) (string, error)
}

type ContentFetcherInterface interface {
	Fetch(ctx context.Context, rawURL string) ([]byte, *url.URL, error)
}

type ContentExtractorInterface interface {
	Run(data []byte, pageURL *url.URL) (*feed.Article, error)
}

var (
	_ PostSource                = (*blog.Pipeline)(nil)
	_ GeneratorInterface        = (*feed.Generator)(nil)
	_ ContentFetcherInterface   = (*feed.ContentFetcher)(nil)
	_ ContentExtractorInterface = (*feed.ContentExtractor)(nil)
)

type Handler struct {
	posts        PostSource
	generator    GeneratorInterface
	fetcher      ContentFetcherInterface
	extractor    ContentExtractorInterface
	publications database.Publications
	scheduler    tasks.TaskSchedulerInterface
	trackTask    tasks.TaskFactory
}

// ContentResponse is the body of the post content endpoint.
type ContentResponse struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Content string `json:"content"`
}
