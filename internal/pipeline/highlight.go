package pipeline

import (
	"fmt"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/htmlspan"
	"github.com/daisuki-koshian/blogpatch/internal/snippets"
)

// Highlighter renders source code to highlighted HTML.
type Highlighter interface {
	Highlight(lang, code string) (string, error)
	Stylesheet() (string, error)
}

// CodeHighlight replaces <pre><code class="language-x"> blocks with
// highlighted markup and adds the highlighter stylesheet before </head>
// once. Blocks already rendered by the highlighter carry class "chroma" on
// <pre> and are left alone.
type CodeHighlight struct {
	H Highlighter
}

func (CodeHighlight) Name() string { return StepCodeHighlight }

type codeBlock struct {
	start, end int
	lang, code string
}

func (c CodeHighlight) Apply(src string) (string, Edit, error) {
	doc := htmlspan.Parse(src)

	var blocks []codeBlock
	highlighted := 0
	for _, pre := range doc.FindAll(htmlspan.Selector{Tag: "pre"}) {
		if hasClass(pre, "chroma") {
			highlighted++
			continue
		}
		if !pre.Closed() {
			continue
		}
		codes := doc.FindWithin(pre, htmlspan.Selector{Tag: "code"})
		if len(codes) == 0 || !codes[0].Closed() {
			continue
		}
		lang := languageOf(codes[0])
		if lang == "" {
			continue
		}
		blocks = append(blocks, codeBlock{
			start: pre.Start,
			end:   pre.End,
			lang:  lang,
			code:  htmlspan.Text(codes[0].Inner(src)),
		})
	}

	if len(blocks) == 0 && highlighted == 0 {
		return src, Edit{Outcome: NotApplicable}, nil
	}

	out := src
	for i := len(blocks) - 1; i >= 0; i-- {
		b := blocks[i]
		rendered, err := c.H.Highlight(b.lang, b.code)
		if err != nil {
			return src, Edit{}, err
		}
		out = out[:b.start] + rendered + out[b.end:]
	}

	anchor := fmt.Sprintf("%d code blocks", len(blocks))
	if !strings.Contains(out, snippets.MarkerHighlightCSS) {
		css, err := c.H.Stylesheet()
		if err != nil {
			return src, Edit{}, err
		}
		if i, ok := htmlspan.Parse(out).FirstClose("head"); ok {
			eol := lineEnding(out)
			out = out[:i] + withLineEnding(css, eol) + eol + out[i:]
			anchor += ", stylesheet before </head>"
		}
	}

	if out == src {
		return src, Edit{Outcome: AlreadyPresent}, nil
	}
	return out, Edit{Outcome: Applied, Anchor: anchor}, nil
}

var _ Step = CodeHighlight{}

func hasClass(e htmlspan.Element, class string) bool {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

// languageOf returns x for a code element with class "language-x".
func languageOf(e htmlspan.Element) string {
	v, _ := e.Attr("class")
	for _, c := range strings.Fields(v) {
		if lang, ok := strings.CutPrefix(c, "language-"); ok && lang != "" {
			return lang
		}
	}
	return ""
}
