package snippets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultHighlightStyle is the chroma style used when none is configured.
const DefaultHighlightStyle = "github"

// HighlightStyleExists reports whether chroma knows the named style.
func HighlightStyleExists(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// Highlighter renders code blocks with chroma using CSS classes, so one
// stylesheet per page serves every block.
type Highlighter struct {
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// NewHighlighter returns ErrHighlight for an unknown style name.
func NewHighlighter(styleName string) (*Highlighter, error) {
	if styleName == "" {
		styleName = DefaultHighlightStyle
	}
	style, ok := styles.Registry[strings.ToLower(styleName)]
	if !ok {
		return nil, fmt.Errorf("%w: unknown style %q", ErrHighlight, styleName)
	}
	return &Highlighter{
		style:     style,
		formatter: chromahtml.New(chromahtml.WithClasses(true)),
	}, nil
}

// Highlight renders code (plain text, not HTML) as a chroma <pre> block.
// Unknown languages fall back to chroma's plain text lexer.
func (h *Highlighter) Highlight(lang, code string) (string, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, code)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}
	var buf bytes.Buffer
	if err := h.formatter.Format(&buf, h.style, it); err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrHighlight, lang, err)
	}
	return buf.String(), nil
}

// Stylesheet returns the chroma class rules wrapped in a marked <style> tag.
func (h *Highlighter) Stylesheet() (string, error) {
	var buf bytes.Buffer
	buf.WriteString(MarkerHighlightCSS)
	buf.WriteByte('\n')
	if err := h.formatter.WriteCSS(&buf, h.style); err != nil {
		return "", fmt.Errorf("%w: stylesheet: %v", ErrHighlight, err)
	}
	buf.WriteString("</style>")
	return buf.String(), nil
}
