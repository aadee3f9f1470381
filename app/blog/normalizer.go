package blog

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/disruptorsmedia/blog-comb/app/sheet"
)

const (
	maxExcerptTitleLength = 150
	minKeywordLength      = 10
	wordsPerMinute        = 200
)

var dateLayouts = []string{
	DateLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006/01/02",
	"1/2/2006",
	"1/2/2006 15:04:05",
	"1/2/06",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
	"2 Jan 2006",
}

// Normalizer turns raw sheet rows into ordered, publishable posts.
type Normalizer struct {
	taxonomy *Taxonomy
	now      func() time.Time
}

func NewNormalizer(taxonomy *Taxonomy, now func() time.Time) *Normalizer {
	if taxonomy == nil {
		taxonomy = DefaultTaxonomy()
	}
	if now == nil {
		now = time.Now
	}

	return &Normalizer{taxonomy: taxonomy, now: now}
}

func (n *Normalizer) Run(rows []sheet.RawRow) []Post {
	posts := []Post{}
	if len(rows) == 0 {
		return posts
	}

	columns := sheet.ResolveColumns(rows[0])
	if columns.Title == sheet.Absent {
		slog.Warn("Sheet has no title column, nothing to publish", "header", []string(rows[0]))
		return posts
	}

	now := n.now().In(time.Local)
	today := startOfDay(now)
	endOfToday := today.Add(24*time.Hour - time.Millisecond)

	for i, row := range rows[1:] {
		rowNumber := i + 1

		if row.IsEmpty() {
			continue
		}

		title := row.Cell(columns.Title)
		if title == "" {
			slog.Debug("Row skipped", "row", rowNumber, "reason", "missing title")
			continue
		}

		if sheet.Fold(row.Cell(columns.Approved)) != "yes" {
			slog.Debug("Row skipped", "row", rowNumber, "reason", "not approved", "title", title)
			continue
		}

		publishedAt, dated := parseDate(row.Cell(columns.PostDate))
		if dated && publishedAt.After(endOfToday) {
			slog.Debug("Row skipped", "row", rowNumber, "reason", "scheduled", "title", title, "date", publishedAt.Format(DateLayout))
			continue
		}
		if !dated {
			publishedAt = today
		}

		posts = append(posts, n.buildPost(rowNumber, row, columns, title, publishedAt))
	}

	slices.SortStableFunc(posts, func(a, b Post) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	return posts
}

func (n *Normalizer) buildPost(rowNumber int, row sheet.RawRow, columns sheet.Columns, title string, publishedAt time.Time) Post {
	keyword := row.Cell(columns.PrimaryKeyword)
	postURL := row.Cell(columns.Content)
	excerpt := Excerpt(title, keyword)

	return Post{
		ID:             rowNumber,
		Title:          title,
		Excerpt:        excerpt,
		Slug:           Slugify(title),
		Category:       n.taxonomy.Categorize(title + " " + keyword),
		Author:         cmp.Or(row.Cell(columns.Client), DefaultAuthor),
		Date:           publishedAt.Format(DateLayout),
		Image:          cmp.Or(row.Cell(columns.Image), DefaultImageURL),
		ReadTime:       ReadTime(excerpt),
		Content:        postURL,
		PostURL:        postURL,
		PrimaryKeyword: keyword,
		Tags:           []string{},
		Featured:       false,
		PublishedAt:    publishedAt,
	}
}

func Excerpt(title, keyword string) string {
	if utf8.RuneCountInString(title) > maxExcerptTitleLength {
		return string([]rune(title)[:maxExcerptTitleLength]) + "..."
	}

	if utf8.RuneCountInString(keyword) > minKeywordLength {
		return fmt.Sprintf("Discover how %s can transform your business with proven strategies and expert insights.", strings.ToLower(keyword))
	}

	topic := "marketing"
	if strings.Contains(sheet.Fold(title), "content") {
		topic = "content creation"
	}
	return fmt.Sprintf("Explore the latest insights and strategies in %s to help your business grow.", topic)
}

func ReadTime(text string) string {
	words := len(strings.Fields(text))
	minutes := max(1, (words+wordsPerMinute-1)/wordsPerMinute)
	return fmt.Sprintf("%d min read", minutes)
}

// Slugify lowercases title, drops everything outside [a-z0-9-] and
// whitespace, turns whitespace into hyphens and collapses hyphen runs.
func Slugify(title string) string {
	var b strings.Builder
	lastHyphen := false

	for _, r := range strings.ToLower(title) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r == '-' || unicode.IsSpace(r):
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return b.String()
}

// parseDate reports false for blank or unrecognised values; callers treat
// both as undated.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}

	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return startOfDay(t.In(time.Local)), true
		}
	}

	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
