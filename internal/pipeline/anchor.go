package pipeline

import (
	"regexp"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/htmlspan"
)

// Placement says where a fragment goes relative to an anchor span.
type Placement int

const (
	Before Placement = iota
	After
	Replace
)

// Anchor locates a span in the page. Wrap, when set, adapts the fragment to
// this anchor, for example wrapping CSS in a new <style> element.
type Anchor struct {
	Name  string
	Place Placement
	Find  func(doc *htmlspan.Document) (start, end int, ok bool)
	Wrap  func(fragment string) string
}

// OpenTag anchors on the open tag of the first element matching sel.
func OpenTag(sel htmlspan.Selector, place Placement) Anchor {
	return Anchor{
		Name:  "<" + selectorName(sel) + ">",
		Place: place,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			e, ok := doc.Find(sel)
			if !ok {
				return 0, 0, false
			}
			return e.Start, e.OpenEnd, true
		},
	}
}

// ElementEnd anchors on the close tag of the first closed element matching
// sel.
func ElementEnd(sel htmlspan.Selector, place Placement) Anchor {
	return Anchor{
		Name:  "</" + selectorName(sel) + ">",
		Place: place,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			e, ok := doc.Find(sel)
			if !ok || !e.Closed() {
				return 0, 0, false
			}
			return e.CloseStart, e.End, true
		},
	}
}

// FirstCloseTag anchors on the first </tag>.
func FirstCloseTag(tag string, place Placement) Anchor {
	return closeTag(tag, place, (*htmlspan.Document).FirstClose)
}

// LastCloseTag anchors on the last </tag>.
func LastCloseTag(tag string, place Placement) Anchor {
	return closeTag(tag, place, (*htmlspan.Document).LastClose)
}

func closeTag(tag string, place Placement, find func(*htmlspan.Document, string) (int, bool)) Anchor {
	return Anchor{
		Name:  "</" + tag + ">",
		Place: place,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			i, ok := find(doc, tag)
			if !ok {
				return 0, 0, false
			}
			return i, i + len("</"+tag+">"), true
		},
	}
}

// Pattern anchors on submatch group of the first match of re. Group 0 is
// the whole match.
func Pattern(name string, re *regexp.Regexp, group int, place Placement) Anchor {
	return Anchor{
		Name:  name,
		Place: place,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			m := re.FindStringSubmatchIndex(doc.Source())
			if m == nil || m[2*group] < 0 {
				return 0, 0, false
			}
			return m[2*group], m[2*group+1], true
		},
	}
}

// Literal anchors on the first occurrence of s.
func Literal(s string, place Placement) Anchor {
	return Anchor{
		Name:  "literal " + s,
		Place: place,
		Find: func(doc *htmlspan.Document) (int, int, bool) {
			i := strings.Index(doc.Source(), s)
			if i < 0 {
				return 0, 0, false
			}
			return i, i + len(s), true
		},
	}
}

func selectorName(sel htmlspan.Selector) string {
	if sel.Class == "" {
		return sel.Tag
	}
	return sel.Tag + "." + sel.Class
}

// splice places fragment relative to [start, end). A newline separates the
// fragment from anchors it is placed next to. Line breaks follow the page's
// own line ending.
func splice(src string, start, end int, place Placement, fragment string) string {
	eol := lineEnding(src)
	fragment = withLineEnding(fragment, eol)
	switch place {
	case Before:
		return src[:start] + fragment + eol + src[start:]
	case After:
		return src[:end] + eol + fragment + src[end:]
	default:
		return src[:start] + fragment + src[end:]
	}
}

// lineEnding returns "\r\n" for pages written with CRLF line endings.
func lineEnding(src string) string {
	if strings.Contains(src, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

func withLineEnding(fragment, eol string) string {
	if eol == "\n" {
		return fragment
	}
	return strings.ReplaceAll(strings.ReplaceAll(fragment, "\r\n", "\n"), "\n", eol)
}
