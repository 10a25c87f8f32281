package snippets

import (
	"bytes"
	"fmt"
	"net/url"
	"strings"
	"text/template"

	"github.com/yuin/goldmark"

	"github.com/daisuki-koshian/blogpatch/internal/assets"
	"github.com/daisuki-koshian/blogpatch/internal/catalog"
)

// homeHref is relative because every article lives one directory below the
// blog root.
const homeHref = "../"

// Site holds the per-site values baked into fragments.
type Site struct {
	BaseURL   string // with trailing slash
	ShareVia  string // X account without @, may be empty
	Analytics string // analytics tag inserted verbatim
}

// TOCEntry is one table-of-contents line.
type TOCEntry struct {
	ID   string
	Text string
}

// Renderer turns catalog data into page fragments.
//
// text/template is used instead of html/template because the fragments
// start with HTML comments that must survive rendering. Values are escaped
// explicitly with the html and quote template functions.
type Renderer struct {
	site      Site
	templates map[string]*template.Template
	styles    map[string]string
	md        goldmark.Markdown
}

var funcs = template.FuncMap{
	"quote": pathQuote,
}

// New parses the snippet set and checks each template still carries its
// detection marker.
func New(set *assets.SnippetSet, site Site) (*Renderer, error) {
	r := &Renderer{
		site:      site,
		templates: make(map[string]*template.Template, len(set.Templates)),
		styles:    set.Styles,
		md:        newInlineMarkdown(),
	}

	for _, name := range assets.SnippetTemplates {
		src, ok := set.Templates[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", assets.ErrIncompleteSnippetSet, name)
		}
		if m := templateMarkers[name]; !strings.Contains(src, m) {
			return nil, fmt.Errorf("%w: template %q must contain %q", ErrMissingMarker, name, m)
		}
		t, err := template.New(name).Funcs(funcs).Parse(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
		r.templates[name] = t
	}

	if !strings.Contains(set.Styles[assets.MobileStyle], MarkerMobileCSS) {
		return nil, fmt.Errorf("%w: style %q must contain %q", ErrMissingMarker, assets.MobileStyle, MarkerMobileCSS)
	}
	if !strings.Contains(site.Analytics, MarkerAnalytics) {
		return nil, fmt.Errorf("%w: analytics tag must contain %q", ErrMissingMarker, MarkerAnalytics)
	}

	return r, nil
}

func (r *Renderer) execute(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := r.templates[name].Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrRender, name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// Breadcrumb renders the navigation trail, its style and the matching
// BreadcrumbList JSON-LD.
func (r *Renderer) Breadcrumb(a catalog.Article, categoryLabel string) (string, error) {
	ld, err := breadcrumbJSONLD(r.site.BaseURL, categoryLabel, a.Title, a.Slug)
	if err != nil {
		return "", err
	}
	return r.execute(assets.Breadcrumb, struct {
		HomeHref, Category, Title, JSONLD, CSS string
	}{homeHref, categoryLabel, a.Title, ld, r.styles[assets.Breadcrumb]})
}

// ReadingTime renders the "約N分で読めます" badge.
func (r *Renderer) ReadingTime(minutes int) (string, error) {
	return r.execute(assets.ReadingTime, struct{ Minutes int }{minutes})
}

// ShareButtons renders X and Hatena Bookmark links for the article URL.
func (r *Renderer) ShareButtons(a catalog.Article) (string, error) {
	return r.execute(assets.ShareButtons, struct {
		URL, Title, Via, CSS string
	}{r.ArticleURL(a.Slug), a.Title, r.site.ShareVia, r.styles[assets.ShareButtons]})
}

type relatedCard struct {
	Slug            string
	Title           string
	DescriptionHTML string
}

// RelatedArticles renders one card per article. No articles, no block.
func (r *Renderer) RelatedArticles(related []catalog.Article) (string, error) {
	if len(related) == 0 {
		return "", nil
	}

	cards := make([]relatedCard, 0, len(related))
	for _, a := range related {
		desc, err := inlineHTML(r.md, a.Description)
		if err != nil {
			return "", err
		}
		cards = append(cards, relatedCard{Slug: url.PathEscape(a.Slug), Title: a.Title, DescriptionHTML: desc})
	}
	return r.execute(assets.RelatedArticles, struct {
		Cards []relatedCard
		CSS   string
	}{cards, r.styles[assets.RelatedArticles]})
}

// TOC renders the collapsible table of contents. No entries, no block.
func (r *Renderer) TOC(entries []TOCEntry) (string, error) {
	if len(entries) == 0 {
		return "", nil
	}
	return r.execute(assets.TOC, struct{ Entries []TOCEntry }{entries})
}

func (r *Renderer) ProgressBar() (string, error) {
	return r.execute(assets.ProgressBar, nil)
}

func (r *Renderer) BackToTop() (string, error) {
	return r.execute(assets.BackToTop, nil)
}

// MobileScript renders the script driving TOC collapse, the progress bar
// and the back-to-top button.
func (r *Renderer) MobileScript() (string, error) {
	return r.execute(assets.MobileScript, nil)
}

// MobileCSS returns the rules appended to the page stylesheet.
func (r *Renderer) MobileCSS() string {
	return r.styles[assets.MobileStyle]
}

// Analytics returns the configured analytics tag.
func (r *Renderer) Analytics() string {
	return strings.TrimSpace(r.site.Analytics)
}

// ArticleURL is the absolute URL of an article page.
func (r *Renderer) ArticleURL(slug string) string {
	return r.site.BaseURL + url.PathEscape(slug) + "/"
}

// pathQuote percent-encodes s the way a URL is nested inside another URL:
// spaces become %20 and "/" is left as is.
func pathQuote(s string) string {
	q := strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
	return strings.ReplaceAll(q, "%2F", "/")
}
