package database

import (
	"time"
)

// Publication is the first sighting of a post slug on the public list.
type Publication struct {
	Slug        string    `json:"slug"`
	PostID      int       `json:"postId"`
	Title       string    `json:"title"`
	Category    string    `json:"category"`
	Author      string    `json:"author"`
	PostDate    string    `json:"date"`
	PostURL     string    `json:"postUrl"`
	FirstSeenAt time.Time `json:"firstSeenAt"`
}
