package api

import (
	"cmp"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/disruptorsmedia/blog-comb/app/cfg"
	"github.com/disruptorsmedia/blog-comb/app/database"
	"github.com/disruptorsmedia/blog-comb/app/export"
	"github.com/disruptorsmedia/blog-comb/app/feed"
	"github.com/disruptorsmedia/blog-comb/app/tasks"
)

const (
	defaultPublicationLimit = 50
	maxPublicationLimit     = 500
)

// NewHandler wires the request handlers. scheduler and trackTask may be nil
// when publication tracking is disabled.
func NewHandler(posts PostSource, fetcher ContentFetcherInterface, extractor ContentExtractorInterface,
	publications database.Publications, scheduler tasks.TaskSchedulerInterface, trackTask tasks.TaskFactory) *Handler {
	return &Handler{
		posts:        posts,
		generator:    feed.NewGenerator(),
		fetcher:      fetcher,
		extractor:    extractor,
		publications: publications,
		scheduler:    scheduler,
		trackTask:    trackTask,
	}
}

func (h *Handler) GetBlogPosts(c *gin.Context) {
	posts, err := h.posts.FetchBlogPosts(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch blog posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	c.Header("X-Total-Count", strconv.Itoa(len(posts)))
	c.JSON(http.StatusOK, posts)
}

func (h *Handler) GetBlogPost(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.posts.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		slog.Error("Failed to fetch blog posts", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	c.JSON(http.StatusOK, post)
}

func (h *Handler) GetBlogPostContent(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.posts.FindBySlug(c.Request.Context(), slug)
	if err != nil {
		slog.Error("Failed to fetch blog posts", "slug", slug, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	if post == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post not found"})
		return
	}

	if post.PostURL == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "Blog post has no content URL"})
		return
	}

	data, pageURL, err := h.fetcher.Fetch(c.Request.Context(), post.PostURL)
	if err != nil {
		if errors.Is(err, feed.ErrInvalidContentURL) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Blog post content URL is not fetchable"})
			return
		}
		slog.Warn("Failed to fetch blog post content", "slug", slug, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to fetch blog post content"})
		return
	}

	article, err := h.extractor.Run(data, pageURL)
	if err != nil {
		slog.Warn("Failed to extract blog post content", "slug", slug, "error", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to extract blog post content"})
		return
	}

	c.JSON(http.StatusOK, ContentResponse{
		Slug:    post.Slug,
		Title:   cmp.Or(post.Title, article.Title),
		Content: article.Content,
	})
}

func (h *Handler) ExportBlogPosts(c *gin.Context) {
	writer, err := export.WriterForFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	posts, err := h.posts.FetchBlogPosts(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch blog posts", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch blog posts"})
		return
	}

	filename := fmt.Sprintf("blog-posts-%s.%s", time.Now().In(time.Local).Format("2006-01-02"), writer.Extension())

	c.Header("Content-Type", writer.ContentType())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	if err := writer.Write(c.Writer, posts); err != nil {
		slog.Error("Failed to write export", "format", writer.Extension(), "error", err)
	}
}

func (h *Handler) GetRSSFeed(c *gin.Context) {
	posts, err := h.posts.FetchBlogPosts(c.Request.Context())
	if err != nil {
		slog.Error("Failed to fetch blog posts", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	rss, err := h.generator.Run(posts)
	if err != nil {
		slog.Error("RSS generation error", "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/rss+xml; charset=utf-8")
	c.Header("X-Feed-Items", strconv.Itoa(len(posts)))

	c.String(http.StatusOK, rss)
}

func (h *Handler) GetHealth(c *gin.Context) {
	health := map[string]interface{}{
		"timestamp":         time.Now().In(time.Local).Format(time.RFC3339),
		"version":           cfg.GetVersion(),
		"structured_source": h.posts.HasStructuredSource(),
		"tracking":          h.scheduler != nil,
	}

	if count, err := h.publications.GetPublicationCount(); err == nil {
		health["publications"] = count
	}

	c.JSON(http.StatusOK, health)
}

func (h *Handler) APIListPublications(c *gin.Context) {
	limit := defaultPublicationLimit
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(parsed, maxPublicationLimit)
	}

	publications, err := h.publications.ListPublications(limit)
	if err != nil {
		slog.Error("Database error", "operation", "list_publications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	total, err := h.publications.GetPublicationCount()
	if err != nil {
		slog.Error("Database error", "operation", "count_publications", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"publications": publications,
		"total":        total,
	})
}

func (h *Handler) APIRefreshPublications(c *gin.Context) {
	if h.scheduler == nil || h.trackTask == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Publication tracking is disabled"})
		return
	}

	task := h.trackTask()
	if err := h.scheduler.EnqueueTask(task); err != nil {
		slog.Error("Error enqueueing tracking task", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"error":   "Failed to enqueue tracking task",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"success": true,
		"task": gin.H{
			"id":   task.GetID(),
			"type": task.GetType(),
		},
	})
}
