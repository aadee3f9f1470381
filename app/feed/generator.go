package feed

import (
	"bytes"
	"cmp"
	"encoding/xml"
	"fmt"
	"html"
	"time"

	"github.com/disruptorsmedia/blog-comb/app/blog"
	"github.com/disruptorsmedia/blog-comb/app/cfg"
)

// Generator renders the public post list as an RSS 2.0 document.
type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

func (g *Generator) Run(posts []blog.Post) (string, error) {
	config := cfg.Get()

	var buf bytes.Buffer

	buf.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	buf.WriteString("\n")
	buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n  <channel>\n")

	siteURL := g.siteURL(config)

	g.writeElement(&buf, "title", config.SiteTitle, 4)
	g.writeElement(&buf, "link", siteURL, 4)
	g.writeElement(&buf, "description", fmt.Sprintf("Latest posts from %s", config.SiteTitle), 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(siteURL+"/feed.xml")))

	lastBuildDate := time.Now().In(time.Local)
	if len(posts) > 0 {
		lastBuildDate = cmp.Or(posts[0].PublishedAt, lastBuildDate)
	}

	g.writeElement(&buf, "lastBuildDate", lastBuildDate.Format(time.RFC1123Z), 4)
	g.writeElement(&buf, "generator", fmt.Sprintf("Blog-Comb/%s", config.Version), 4)
	g.writeElement(&buf, "language", "en-us", 4)

	for _, post := range posts {
		g.writeItem(&buf, post)
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (g *Generator) siteURL(config *cfg.Cfg) string {
	if config.BaseUrl != "" {
		return config.BaseUrl
	}
	return fmt.Sprintf("http://localhost:%s", config.Port)
}

func (g *Generator) writeItem(buf *bytes.Buffer, post blog.Post) {
	buf.WriteString("    <item>\n")

	guid := cmp.Or(post.PostURL, post.Slug)
	if guid != "" {
		buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", g.isURL(guid)))
		xml.EscapeText(buf, []byte(guid))
		buf.WriteString("</guid>\n")
	}

	g.writeElement(buf, "title", post.Title, 6)

	if g.isURL(post.PostURL) {
		g.writeElement(buf, "link", post.PostURL, 6)
	}

	g.writeElement(buf, "description", cmp.Or(post.Excerpt, "No description available"), 6)

	if !post.PublishedAt.IsZero() {
		g.writeElement(buf, "pubDate", post.PublishedAt.Format(time.RFC1123Z), 6)
	}

	g.writeElement(buf, "author", post.Author, 6)
	g.writeElement(buf, "category", post.Category, 6)

	if g.isURL(post.Image) {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"image/jpeg\" />\n",
			html.EscapeString(post.Image)))
	}

	buf.WriteString("    </item>\n")
}

func (g *Generator) writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

func (g *Generator) isURL(s string) bool {
	return (len(s) > 7 && s[:7] == "http://") || (len(s) > 8 && s[:8] == "https://")
}
