package blog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTaxonomyOrder(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	var names []string
	for _, category := range taxonomy.Categories {
		names = append(names, category.Name)
	}

	assert.Equal(t, []string{"technology", "design", "branding", "strategy", "systems", "ai", "social media", "seo", "content"}, names)
}

func TestCategorize(t *testing.T) {
	taxonomy := DefaultTaxonomy()

	tests := []struct {
		text string
		want string
	}{
		{"AI Marketing Wins artificial intelligence", "ai"},
		{"How AI is reshaping logo design", "design"},
		{"Design meets AI", "design"},
		{"Building a Brand That Lasts", "branding"},
		{"Instagram Reels for Local Shops", "social media"},
		{"SEO basics for dentists", "seo"},
		{"Our new blog", "content"},
		{"Email campaign ideas for spring", "ai"},
		{"Redesign Tips", "design"},
		{"Brainstorming Branded Emails", "branding"},
		{"Holiday promos that work", "marketing"},
		{"Automate your CRM", "systems"},
		{"", "marketing"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, taxonomy.Categorize(tt.text))
		})
	}
}

func TestLoadTaxonomy_Invalid(t *testing.T) {
	_, err := LoadTaxonomy([]byte("categories:\n  - keywords: [x]\n"))
	assert.Error(t, err)

	_, err = LoadTaxonomy([]byte("categories:\n  - name: empty\n"))
	assert.Error(t, err)

	_, err = LoadTaxonomy([]byte("categories: [unclosed"))
	assert.Error(t, err)
}

func TestLoadTaxonomy_FoldsKeywords(t *testing.T) {
	taxonomy, err := LoadTaxonomy([]byte("categories:\n  - name: video\n    keywords: [' YouTube ']\n"))
	require.NoError(t, err)

	assert.Equal(t, "video", taxonomy.Categorize("my youtube channel"))
}

func TestLoadTaxonomyFile(t *testing.T) {
	taxonomy, err := LoadTaxonomyFile("")
	require.NoError(t, err)
	assert.Equal(t, DefaultTaxonomy(), taxonomy)

	path := filepath.Join(t.TempDir(), "taxonomy.yml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - name: podcasts\n    keywords: [podcast, episode]\n"), 0o644))

	taxonomy, err = LoadTaxonomyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "podcasts", taxonomy.Categorize("Episode 12: growth loops"))
	assert.Equal(t, DefaultCategory, taxonomy.Categorize("Design systems"))

	_, err = LoadTaxonomyFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	empty := filepath.Join(t.TempDir(), "empty.yml")
	require.NoError(t, os.WriteFile(empty, []byte("categories: []\n"), 0o644))
	_, err = LoadTaxonomyFile(empty)
	assert.Error(t, err)
}
