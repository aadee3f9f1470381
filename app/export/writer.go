package export

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/disruptorsmedia/blog-comb/app/blog"
)

// Writer renders a post list into a downloadable document.
type Writer interface {
	Write(w io.Writer, posts []blog.Post) error
	ContentType() string
	Extension() string
}

func WriterForFormat(format string) (Writer, error) {
	switch normalizeFormat(format) {
	case "", "csv":
		return &CSVWriter{}, nil
	case "excel", "xlsx":
		return &ExcelWriter{}, nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

func normalizeFormat(value string) string {
	return strings.TrimSpace(strings.ToLower(value))
}

var headers = []string{"ID", "Title", "Slug", "Category", "Author", "Date", "Read Time", "Primary Keyword", "Post URL", "Image", "Excerpt"}

func postValues(post blog.Post) []string {
	return []string{
		strconv.Itoa(post.ID),
		post.Title,
		post.Slug,
		post.Category,
		post.Author,
		post.Date,
		post.ReadTime,
		post.PrimaryKeyword,
		post.PostURL,
		post.Image,
		post.Excerpt,
	}
}
