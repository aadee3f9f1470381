package blog

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/disruptorsmedia/blog-comb/app/sheet"
)

//go:embed taxonomy.yml
var taxonomyYAML []byte

type Category struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
}

// Taxonomy is an ordered keyword list; earlier categories take precedence.
type Taxonomy struct {
	Categories []Category `yaml:"categories"`
}

func LoadTaxonomy(data []byte) (*Taxonomy, error) {
	var taxonomy Taxonomy
	if err := yaml.Unmarshal(data, &taxonomy); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	for i, category := range taxonomy.Categories {
		if category.Name == "" {
			return nil, fmt.Errorf("category at index %d has no name", i)
		}
		if len(category.Keywords) == 0 {
			return nil, fmt.Errorf("category %s has no keywords", category.Name)
		}
		for j, keyword := range category.Keywords {
			taxonomy.Categories[i].Keywords[j] = sheet.Fold(strings.TrimSpace(keyword))
		}
	}

	return &taxonomy, nil
}

// LoadTaxonomyFile reads a taxonomy from disk. An empty path yields the
// built-in taxonomy.
func LoadTaxonomyFile(path string) (*Taxonomy, error) {
	if path == "" {
		return DefaultTaxonomy(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	taxonomy, err := LoadTaxonomy(data)
	if err != nil {
		return nil, fmt.Errorf("invalid taxonomy %s: %w", path, err)
	}
	if len(taxonomy.Categories) == 0 {
		return nil, fmt.Errorf("invalid taxonomy %s: no categories", path)
	}

	return taxonomy, nil
}

func DefaultTaxonomy() *Taxonomy {
	taxonomy, err := LoadTaxonomy(taxonomyYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded taxonomy is invalid: %v", err))
	}
	return taxonomy
}

// Categorize returns the first category with a keyword contained in text,
// or DefaultCategory.
func (t *Taxonomy) Categorize(text string) string {
	folded := sheet.Fold(text)
	for _, category := range t.Categories {
		for _, keyword := range category.Keywords {
			if keyword != "" && strings.Contains(folded, keyword) {
				return category.Name
			}
		}
	}
	return DefaultCategory
}
