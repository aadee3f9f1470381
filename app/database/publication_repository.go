package database

import (
	"fmt"
	"time"
)

// Fixed width keeps lexical and chronological order identical.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

// PublicationRepository handles database operations for publications
type PublicationRepository struct {
	db *DB
}

// NewPublicationRepository creates a new publication repository
func NewPublicationRepository(db *DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

func (r *PublicationRepository) RecordPublication(p Publication) (bool, error) {
	result, err := r.db.Exec(`
		INSERT INTO publications (slug, post_id, title, category, author, post_date, post_url, first_seen_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (slug) DO NOTHING
	`, p.Slug, p.PostID, p.Title, p.Category, p.Author, p.PostDate, p.PostURL, p.FirstSeenAt.UTC().Format(timestampLayout))
	if err != nil {
		return false, fmt.Errorf("failed to record publication %s: %w", p.Slug, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}

	return affected > 0, nil
}

// ListPublications returns the most recently seen publications first
func (r *PublicationRepository) ListPublications(limit int) ([]Publication, error) {
	rows, err := r.db.Query(`
		SELECT slug, post_id, title, category, author, post_date, post_url, first_seen_at
		FROM publications
		ORDER BY first_seen_at DESC, slug ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query publications: %w", err)
	}
	defer rows.Close()

	publications := []Publication{}
	for rows.Next() {
		var p Publication
		var firstSeen string
		if err := rows.Scan(&p.Slug, &p.PostID, &p.Title, &p.Category, &p.Author, &p.PostDate, &p.PostURL, &firstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan publication: %w", err)
		}

		p.FirstSeenAt, err = time.Parse(timestampLayout, firstSeen)
		if err != nil {
			return nil, fmt.Errorf("failed to parse first_seen_at for %s: %w", p.Slug, err)
		}

		publications = append(publications, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate publications: %w", err)
	}

	return publications, nil
}

func (r *PublicationRepository) GetPublicationCount() (int, error) {
	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM publications`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count publications: %w", err)
	}
	return count, nil
}
