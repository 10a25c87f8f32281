// Package catalog holds the static article metadata of the blog: titles,
// descriptions, reading times and the category groups that drive breadcrumbs
// and related-article links.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/daisuki-koshian/blogpatch/internal/yamlutil"
)

// DefaultRelatedLimit is the number of related articles shown under a post.
const DefaultRelatedLimit = 3

// Sentinel errors for catalog loading.
var (
	ErrCatalogRead  = errors.New("failed to read catalog")
	ErrCatalogParse = errors.New("failed to parse catalog")
	ErrInvalid      = errors.New("invalid catalog")
)

//go:embed catalog.yaml
var embeddedCatalog []byte

// Article is the metadata of one post.
type Article struct {
	Slug        string
	Category    string
	Title       string
	Description string // inline Markdown
	ReadingTime int    // minutes
}

// Category groups articles under a breadcrumb label.
type Category struct {
	Key      string
	Label    string
	Members  []string
	Priority []string // shown first in related links, in this order
}

// Catalog is an immutable lookup table. Safe for concurrent reads.
type Catalog struct {
	categories []Category
	articles   map[string]Article
	categoryOf map[string]int
}

// file mirrors catalog.yaml.
type file struct {
	Categories []struct {
		Key      string   `yaml:"key"`
		Label    string   `yaml:"label"`
		Members  []string `yaml:"members"`
		Priority []string `yaml:"priority"`
	} `yaml:"categories"`
	Articles map[string]struct {
		Title       string `yaml:"title"`
		Description string `yaml:"description"`
		ReadingTime int    `yaml:"readingTime"`
	} `yaml:"articles"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedCatalog)
})

// Default returns the catalog embedded in the binary.
func Default() (*Catalog, error) {
	return loadDefault()
}

// LoadFile reads a catalog from a YAML file with the same layout as the
// embedded one.
func LoadFile(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided catalog path
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogRead, err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := yamlutil.UnmarshalStrict(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalogParse, err)
	}

	c := &Catalog{
		articles:   make(map[string]Article, len(f.Articles)),
		categoryOf: make(map[string]int, len(f.Articles)),
	}
	keys := make(map[string]bool, len(f.Categories))

	for i, fc := range f.Categories {
		if fc.Key == "" || fc.Label == "" {
			return nil, fmt.Errorf("%w: category %d needs key and label", ErrInvalid, i)
		}
		if keys[fc.Key] {
			return nil, fmt.Errorf("%w: duplicate category %q", ErrInvalid, fc.Key)
		}
		keys[fc.Key] = true

		members := make(map[string]bool, len(fc.Members))
		for _, slug := range fc.Members {
			if members[slug] {
				return nil, fmt.Errorf("%w: %q listed twice in %q", ErrInvalid, slug, fc.Key)
			}
			if prev, ok := c.categoryOf[slug]; ok {
				return nil, fmt.Errorf("%w: %q in both %q and %q", ErrInvalid, slug, f.Categories[prev].Key, fc.Key)
			}
			members[slug] = true
			c.categoryOf[slug] = i
		}
		for _, slug := range fc.Priority {
			if !members[slug] {
				return nil, fmt.Errorf("%w: priority slug %q is not a member of %q", ErrInvalid, slug, fc.Key)
			}
		}

		c.categories = append(c.categories, Category{
			Key:      fc.Key,
			Label:    fc.Label,
			Members:  append([]string(nil), fc.Members...),
			Priority: append([]string(nil), fc.Priority...),
		})
	}

	for slug, fa := range f.Articles {
		ci, ok := c.categoryOf[slug]
		if !ok {
			return nil, fmt.Errorf("%w: article %q belongs to no category", ErrInvalid, slug)
		}
		if fa.Title == "" {
			return nil, fmt.Errorf("%w: article %q has no title", ErrInvalid, slug)
		}
		if fa.ReadingTime <= 0 {
			return nil, fmt.Errorf("%w: article %q reading time must be positive, got %d", ErrInvalid, slug, fa.ReadingTime)
		}
		c.articles[slug] = Article{
			Slug:        slug,
			Category:    c.categories[ci].Key,
			Title:       fa.Title,
			Description: fa.Description,
			ReadingTime: fa.ReadingTime,
		}
	}
	for slug := range c.categoryOf {
		if _, ok := c.articles[slug]; !ok {
			return nil, fmt.Errorf("%w: member %q has no article entry", ErrInvalid, slug)
		}
	}

	return c, nil
}

// Lookup returns the metadata for slug.
func (c *Catalog) Lookup(slug string) (Article, bool) {
	a, ok := c.articles[slug]
	return a, ok
}

// CategoryOf returns the category that lists slug.
func (c *Catalog) CategoryOf(slug string) (Category, bool) {
	i, ok := c.categoryOf[slug]
	if !ok {
		return Category{}, false
	}
	return c.categories[i], true
}

// Slugs returns every article slug, category by category, in member order.
func (c *Catalog) Slugs() []string {
	var out []string
	for _, cat := range c.categories {
		out = append(out, cat.Members...)
	}
	return out
}

// Related returns up to limit articles from the same category as slug,
// never slug itself. Priority slugs come first, then the remaining members
// in declared order. Unknown slugs yield nil.
func (c *Catalog) Related(slug string, limit int) []Article {
	cat, ok := c.CategoryOf(slug)
	if !ok || limit <= 0 {
		return nil
	}

	seen := map[string]bool{slug: true}
	var out []Article
	add := func(s string) {
		if len(out) >= limit || seen[s] {
			return
		}
		seen[s] = true
		out = append(out, c.articles[s])
	}
	for _, s := range cat.Priority {
		add(s)
	}
	for _, s := range cat.Members {
		add(s)
	}
	return out
}
