package catalog

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"pgregory.net/rapid"
)

// Notes:
// - Default() parses the embedded catalog.yaml; a parse failure there fails
//   every test in this file, which is the intent.
// - Related is also checked with rapid over the embedded slugs.

const smallCatalog = `
categories:
  - key: a
    label: A
    members: [one, two, three, four]
    priority: [four]
  - key: b
    label: B
    members: [solo]
articles:
  one:   {title: One, description: first, readingTime: 2}
  two:   {title: Two, description: second, readingTime: 3}
  three: {title: Three, description: third, readingTime: 4}
  four:  {title: Four, description: fourth, readingTime: 5}
  solo:  {title: Solo, description: alone, readingTime: 1}
`

func mustParse(t *testing.T, src string) *Catalog {
	t.Helper()
	c, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return c
}

func TestDefault(t *testing.T) {
	t.Parallel()

	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	if got := len(c.Slugs()); got != 18 {
		t.Errorf("len(Slugs()) = %d, want 18", got)
	}

	a, ok := c.Lookup("token-efficiency")
	if !ok {
		t.Fatal("Lookup(token-efficiency) not found")
	}
	if a.Category != "tech" {
		t.Errorf("Category = %q, want %q", a.Category, "tech")
	}
	if a.ReadingTime <= 0 {
		t.Errorf("ReadingTime = %d, want > 0", a.ReadingTime)
	}

	cat, ok := c.CategoryOf("backtest-method")
	if !ok || cat.Label != "バックテスト" {
		t.Errorf("CategoryOf(backtest-method) = %+v, %v", cat, ok)
	}
}

func TestDefault_SameInstance(t *testing.T) {
	t.Parallel()

	c1, _ := Default()
	c2, _ := Default()
	if c1 != c2 {
		t.Error("Default() returned different instances")
	}
}

// ----- TestRelated - ordering and limits -----

func TestRelated(t *testing.T) {
	t.Parallel()

	c := mustParse(t, smallCatalog)

	tests := []struct {
		name  string
		slug  string
		limit int
		want  []string
	}{
		{"priority first then declared order", "one", 3, []string{"four", "two", "three"}},
		{"priority slug itself skipped", "four", 3, []string{"one", "two", "three"}},
		{"limit caps the result", "two", 1, []string{"four"}},
		{"limit larger than category", "three", 10, []string{"four", "one", "two"}},
		{"sole member has no related", "solo", 3, nil},
		{"unknown slug", "missing", 3, nil},
		{"zero limit", "one", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var got []string
			for _, a := range c.Related(tt.slug, tt.limit) {
				got = append(got, a.Slug)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("Related(%q, %d) = %v, want %v", tt.slug, tt.limit, got, tt.want)
			}
		})
	}
}

func TestRelated_TechPriority(t *testing.T) {
	t.Parallel()

	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}

	var got []string
	for _, a := range c.Related("day1", DefaultRelatedLimit) {
		got = append(got, a.Slug)
	}
	want := []string{"token-efficiency", "multi-agent-flow", "morning-briefing"}
	if !slices.Equal(got, want) {
		t.Errorf("Related(day1) = %v, want %v", got, want)
	}
}

func TestRelated_Properties(t *testing.T) {
	t.Parallel()

	c, err := Default()
	if err != nil {
		t.Fatalf("Default() error = %v", err)
	}
	slugs := c.Slugs()

	rapid.Check(t, func(rt *rapid.T) {
		slug := rapid.SampledFrom(slugs).Draw(rt, "slug")
		limit := rapid.IntRange(0, 6).Draw(rt, "limit")

		related := c.Related(slug, limit)
		if len(related) > limit {
			rt.Fatalf("got %d related, limit %d", len(related), limit)
		}

		own, _ := c.CategoryOf(slug)
		seen := map[string]bool{}
		for _, a := range related {
			if a.Slug == slug {
				rt.Fatalf("%q lists itself", slug)
			}
			if a.Category != own.Key {
				rt.Fatalf("%q related to %q across categories", slug, a.Slug)
			}
			if seen[a.Slug] {
				rt.Fatalf("%q listed twice", a.Slug)
			}
			seen[a.Slug] = true
		}
	})
}

// ----- TestParse - validation -----

func TestParse_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr error
	}{
		{
			name:    "malformed yaml",
			src:     "categories: [",
			wantErr: ErrCatalogParse,
		},
		{
			name:    "unknown field",
			src:     "categories: []\nextra: 1\n",
			wantErr: ErrCatalogParse,
		},
		{
			name: "member without metadata",
			src: `
categories:
  - {key: a, label: A, members: [x]}
articles: {}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "article without category",
			src: `
categories: []
articles:
  x: {title: X, readingTime: 1}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "slug in two categories",
			src: `
categories:
  - {key: a, label: A, members: [x]}
  - {key: b, label: B, members: [x]}
articles:
  x: {title: X, readingTime: 1}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "duplicate member",
			src: `
categories:
  - {key: a, label: A, members: [x, x]}
articles:
  x: {title: X, readingTime: 1}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "zero reading time",
			src: `
categories:
  - {key: a, label: A, members: [x]}
articles:
  x: {title: X, readingTime: 0}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "priority outside members",
			src: `
categories:
  - {key: a, label: A, members: [x], priority: [y]}
articles:
  x: {title: X, readingTime: 1}
`,
			wantErr: ErrInvalid,
		},
		{
			name: "duplicate category key",
			src: `
categories:
  - {key: a, label: A, members: [x]}
  - {key: a, label: B, members: [y]}
articles:
  x: {title: X, readingTime: 1}
  y: {title: Y, readingTime: 1}
`,
			wantErr: ErrInvalid,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse([]byte(tt.src))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "catalog.yaml")
	if err := os.WriteFile(path, []byte(smallCatalog), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if want := []string{"one", "two", "three", "four", "solo"}; !slices.Equal(c.Slugs(), want) {
		t.Errorf("Slugs() = %v, want %v", c.Slugs(), want)
	}

	_, err = LoadFile(filepath.Join(dir, "missing.yaml"))
	if !errors.Is(err, ErrCatalogRead) {
		t.Errorf("LoadFile(missing) error = %v, want ErrCatalogRead", err)
	}
}
