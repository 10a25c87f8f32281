package assets

import (
	"errors"
	"fmt"
)

// Snippet asset names. Templates and styles share a name when a snippet
// ships its own stylesheet.
const (
	Breadcrumb      = "breadcrumb"
	ReadingTime     = "reading-time"
	ShareButtons    = "share-buttons"
	RelatedArticles = "related-articles"
	TOC             = "toc"
	ProgressBar     = "progress-bar"
	BackToTop       = "back-to-top"
	MobileScript    = "mobile-script"
	MobileStyle     = "mobile"
)

// SnippetTemplates lists every template a SnippetSet needs.
var SnippetTemplates = []string{
	Breadcrumb, ReadingTime, ShareButtons, RelatedArticles,
	TOC, ProgressBar, BackToTop, MobileScript,
}

// SnippetStyles lists every stylesheet a SnippetSet needs.
var SnippetStyles = []string{Breadcrumb, ShareButtons, RelatedArticles, MobileStyle}

// SnippetSet is the raw source of all snippet assets, keyed by name.
type SnippetSet struct {
	Templates map[string]string
	Styles    map[string]string
}

// LoadSnippetSet loads every snippet template and style from loader.
// A missing asset is reported as ErrIncompleteSnippetSet.
func LoadSnippetSet(loader AssetLoader) (*SnippetSet, error) {
	set := &SnippetSet{
		Templates: make(map[string]string, len(SnippetTemplates)),
		Styles:    make(map[string]string, len(SnippetStyles)),
	}

	for _, name := range SnippetTemplates {
		src, err := loader.LoadTemplate(name)
		if errors.Is(err, ErrTemplateNotFound) {
			return nil, fmt.Errorf("%w: template %q", ErrIncompleteSnippetSet, name)
		}
		if err != nil {
			return nil, err
		}
		set.Templates[name] = src
	}
	for _, name := range SnippetStyles {
		src, err := loader.LoadStyle(name)
		if errors.Is(err, ErrStyleNotFound) {
			return nil, fmt.Errorf("%w: style %q", ErrIncompleteSnippetSet, name)
		}
		if err != nil {
			return nil, err
		}
		set.Styles[name] = src
	}
	return set, nil
}
