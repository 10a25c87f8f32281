package pipeline

import (
	"regexp"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/htmlspan"
	"github.com/daisuki-koshian/blogpatch/internal/snippets"
)

// Step names, in the order a page is patched.
const (
	StepBreadcrumb    = "breadcrumb"
	StepReadingTime   = "reading-time"
	StepShareButtons  = "share-buttons"
	StepRelated       = "related-articles"
	StepMobileCSS     = "mobile-css"
	StepProgressBar   = "progress-bar"
	StepHeadingIDs    = "heading-ids"
	StepTOC           = "toc"
	StepBackToTop     = "back-to-top"
	StepMobileScript  = "mobile-script"
	StepAnalytics     = "analytics"
	StepCodeHighlight = "code-highlight"
)

var (
	hero            = htmlspan.Selector{Tag: "div", Class: "hero"}
	contentWrapper  = htmlspan.Selector{Tag: "div", Class: "content-wrapper"}
	feedbackSection = htmlspan.Selector{Tag: "div", Class: "feedback-section"}
	nextRead        = htmlspan.Selector{Tag: "div", Class: "next-read"}
	articleHeader   = htmlspan.Selector{Tag: "div", Class: "article-header"}
	backToTopButton = htmlspan.Selector{Tag: "button", Class: "back-to-top"}
	bodyTag         = htmlspan.Selector{Tag: "body"}
	articleTag      = htmlspan.Selector{Tag: "article"}
	h2Tag           = htmlspan.Selector{Tag: "h2"}
)

var (
	feedbackPattern    = regexp.MustCompile(`(?s)<div class="feedback-section">.*?</div>`)
	nextReadPattern    = regexp.MustCompile(`(?s)<div class="next-read">.*?</div>\s*</div>`)
	headerEndPattern   = regexp.MustCompile(`(</dl>\s*</div>\s*)((?:\s*<hr[^>]*>)?\s*)(<h2)`)
	placeholderPattern = regexp.MustCompile(`(?i)<!--\s*analytics[^>]*-->`)
)

// Breadcrumb inserts the breadcrumb before the hero block.
func Breadcrumb(fragment string) Step {
	return &Splice{
		StepName: StepBreadcrumb,
		Marker:   snippets.MarkerBreadcrumb,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			OpenTag(hero, Before),
			Literal(`<div class="hero">`, Before),
		},
	}
}

// ReadingTime inserts the badge between the hero and the content wrapper.
func ReadingTime(fragment string) Step {
	return &Splice{
		StepName: StepReadingTime,
		Marker:   snippets.MarkerReadingTime,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			OpenTag(contentWrapper, Before),
			ElementEnd(hero, After),
		},
	}
}

// ShareButtons inserts the share links after the feedback section.
func ShareButtons(fragment string) Step {
	return &Splice{
		StepName: StepShareButtons,
		Marker:   snippets.MarkerShareButtons,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			ElementEnd(feedbackSection, After),
			Pattern("feedback-section pattern", feedbackPattern, 0, After),
		},
	}
}

// RelatedArticles replaces the legacy next-read block with the related
// articles section, placed right before the article ends.
func RelatedArticles(fragment string) Step {
	return &Splice{
		StepName: StepRelated,
		Marker:   snippets.MarkerRelated,
		Fragment: Static(fragment),
		Prepare:  removeNextRead,
		Anchors: []Anchor{
			ElementEnd(articleTag, Before),
			Literal("</article>", Before),
		},
	}
}

// removeNextRead drops every legacy next-read block. A block on its own
// lines takes its indentation and trailing newline with it.
func removeNextRead(src string) string {
	for {
		e, ok := htmlspan.Parse(src).Find(nextRead)
		if !ok {
			return src
		}
		if !e.Closed() {
			return nextReadPattern.ReplaceAllString(src, "")
		}

		start, end := e.Start, e.End
		for start > 0 && (src[start-1] == ' ' || src[start-1] == '\t') {
			start--
		}
		if start == 0 || src[start-1] == '\n' {
			for end < len(src) && (src[end] == ' ' || src[end] == '\t' || src[end] == '\r') {
				end++
			}
			if end < len(src) && src[end] == '\n' {
				end++
			}
		}
		src = src[:start] + src[end:]
	}
}

// MobileCSS appends the mobile rules to the first stylesheet, or adds a
// stylesheet to the head when the page has none.
func MobileCSS(css string) Step {
	css = sanitizeCSS(css)
	return &Splice{
		StepName: StepMobileCSS,
		Marker:   snippets.MarkerMobileCSS,
		Fragment: Static(css),
		Anchors: []Anchor{
			FirstCloseTag("style", Before),
			withWrap(FirstCloseTag("head", Before), func(f string) string {
				return "<style>\n" + f + "\n</style>"
			}),
		},
	}
}

// sanitizeCSS keeps CSS from closing the surrounding <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}

// ProgressBar inserts the bar right after the <body> open tag.
func ProgressBar(fragment string) Step {
	return &Splice{
		StepName: StepProgressBar,
		Marker:   snippets.MarkerProgressBar,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			OpenTag(bodyTag, After),
		},
	}
}

// TOC builds the table of contents from the first article's headings and
// inserts it after the article header. render receives the headings in
// document order and may return "" for none.
func TOC(render func([]snippets.TOCEntry) (string, error)) Step {
	return &Splice{
		StepName: StepTOC,
		Marker:   snippets.MarkerTOC,
		Fragment: func(src string) (string, error) {
			return render(ExtractHeadings(src))
		},
		Anchors: []Anchor{
			ElementEnd(articleHeader, After),
			Pattern("article header pattern", headerEndPattern, 1, After),
			firstArticleHeading(),
		},
	}
}

func firstArticleHeading() Anchor {
	return Anchor{
		Name:  "first article <h2>",
		Place: Before,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			article, ok := doc.Find(articleTag)
			if !ok {
				return 0, 0, false
			}
			hs := doc.FindWithin(article, h2Tag)
			if len(hs) == 0 {
				return 0, 0, false
			}
			return hs[0].Start, hs[0].OpenEnd, true
		},
	}
}

// BackToTop inserts the button before </body>.
func BackToTop(fragment string) Step {
	return &Splice{
		StepName: StepBackToTop,
		Marker:   snippets.MarkerBackToTop,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			LastCloseTag("body", Before),
		},
	}
}

// MobileScript inserts the script before the back-to-top button, which must
// exist when the script binds to it.
func MobileScript(fragment string) Step {
	return &Splice{
		StepName: StepMobileScript,
		Marker:   snippets.MarkerMobileScript,
		Fragment: Static(fragment),
		Anchors: []Anchor{
			OpenTag(backToTopButton, Before),
			LastCloseTag("body", Before),
		},
	}
}

// Analytics replaces the first analytics placeholder comment with tag, or
// inserts tag before </body>. Either way the tag ends up in the page once.
func Analytics(tag string) Step {
	return &Splice{
		StepName: StepAnalytics,
		Marker:   snippets.MarkerAnalytics,
		Fragment: Static(tag),
		Anchors: []Anchor{
			Pattern("analytics placeholder", placeholderPattern, 0, Replace),
			LastCloseTag("body", Before),
		},
	}
}

func withWrap(a Anchor, wrap func(string) string) Anchor {
	a.Wrap = wrap
	return a
}
