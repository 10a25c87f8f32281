package snippets

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// newInlineMarkdown builds the converter for catalog descriptions. Raw HTML
// in descriptions is escaped; WithUnsafe is not set.
func newInlineMarkdown() goldmark.Markdown {
	return goldmark.New(
		goldmark.WithExtensions(extension.Strikethrough),
	)
}

// inlineHTML converts a one-line Markdown string and unwraps the single
// paragraph goldmark puts around it.
func inlineHTML(md goldmark.Markdown, src string) (string, error) {
	if strings.TrimSpace(src) == "" {
		return "", nil
	}
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("%w: description: %v", ErrRender, err)
	}

	out := strings.TrimSpace(buf.String())
	inner, ok := strings.CutPrefix(out, "<p>")
	if ok {
		inner, ok = strings.CutSuffix(inner, "</p>")
	}
	if !ok || strings.Contains(inner, "<p>") {
		return out, nil
	}
	return inner, nil
}
