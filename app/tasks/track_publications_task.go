package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/disruptorsmedia/blog-comb/app/blog"
	"github.com/disruptorsmedia/blog-comb/app/database"
)

// BaselineStateKey marks that the ledger holds a complete first snapshot.
// Until it is set, newly seen posts are recorded without being announced.
const BaselineStateKey = "publications_baseline"

type PostFetcher interface {
	FetchBlogPosts(ctx context.Context) ([]blog.Post, error)
}

// TrackPublicationsTask runs the ingestion pipeline and records the first
// sighting of every visible slug.
type TrackPublicationsTask struct {
	Task
	fetcher      PostFetcher
	publications database.Publications
	states       database.States
	now          func() time.Time
}

func NewTrackPublicationsTask(target string, fetcher PostFetcher, publications database.Publications, states database.States) *TrackPublicationsTask {
	return &TrackPublicationsTask{
		Task:         NewTask(TaskTypeTrackPublications, target),
		fetcher:      fetcher,
		publications: publications,
		states:       states,
		now:          time.Now,
	}
}

func (t *TrackPublicationsTask) Execute(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	posts, err := t.fetcher.FetchBlogPosts(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch blog posts: %w", err)
	}

	_, baselined, err := t.states.GetState(BaselineStateKey)
	if err != nil {
		return fmt.Errorf("failed to read baseline state: %w", err)
	}

	seenAt := t.now().UTC()
	newCount := 0

	for _, post := range posts {
		if post.Slug == "" {
			slog.Debug("Publication skipped", "id", post.ID, "title", post.Title, "reason", "empty slug")
			continue
		}

		inserted, err := t.publications.RecordPublication(database.Publication{
			Slug:        post.Slug,
			PostID:      post.ID,
			Title:       post.Title,
			Category:    post.Category,
			Author:      post.Author,
			PostDate:    post.Date,
			PostURL:     post.PostURL,
			FirstSeenAt: seenAt,
		})
		if err != nil {
			return fmt.Errorf("failed to record publication: %w", err)
		}
		if !inserted {
			continue
		}

		newCount++
		if baselined {
			slog.Info("New blog post published", "slug", post.Slug, "title", post.Title, "category", post.Category, "date", post.Date)
		}
	}

	if !baselined {
		if err := t.states.SetState(BaselineStateKey, seenAt.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to write baseline state: %w", err)
		}
		slog.Info("Publication baseline recorded", "target", t.Target, "posts", newCount)
		return nil
	}

	slog.Debug("Publications tracked", "target", t.Target, "visible", len(posts), "new", newCount)

	return nil
}
