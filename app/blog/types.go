package blog

import (
	"time"
)

const (
	DefaultAuthor   = "Disruptors Media"
	DefaultImageURL = "https://images.unsplash.com/photo-1460925895917-afdab827c52f?w=800&h=600&fit=crop"
	DefaultCategory = "marketing"
	DateLayout      = "2006-01-02"
)

// Post is one publishable blog entry, rebuilt from the sheet on every fetch.
type Post struct {
	ID             int      `json:"id"` // 1-based row position in the source, stable within one fetch
	Title          string   `json:"title"`
	Excerpt        string   `json:"excerpt"`
	Slug           string   `json:"slug"`
	Category       string   `json:"category"`
	Author         string   `json:"author"`
	Date           string   `json:"date"`
	Image          string   `json:"image"`
	ReadTime       string   `json:"readTime"`
	Content        string   `json:"content"`
	PostURL        string   `json:"postUrl"`
	PrimaryKeyword string   `json:"primaryKeyword"`
	Tags           []string `json:"tags"`
	Featured       bool     `json:"featured"`

	PublishedAt time.Time `json:"-"`
}
