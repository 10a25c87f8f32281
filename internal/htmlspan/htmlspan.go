// Package htmlspan locates element spans in hand-authored HTML pages.
//
// The page is tokenized with golang.org/x/net/html and every token keeps its
// byte offsets into the original text, so callers can splice fragments at
// exact positions without re-serializing the page. Element ends are found by
// counting nested tags of the same name, which keeps matches stable when the
// whitespace between tags drifts.
package htmlspan

import (
	"strings"

	"golang.org/x/net/html"
)

// token is a tokenizer event with its byte range in the source.
type token struct {
	typ   html.TokenType
	tag   string
	attrs []html.Attribute
	start int
	end   int
}

// Element is a matched element. [Start, OpenEnd) is the open tag and
// [CloseStart, End) the close tag. For unclosed elements CloseStart and End
// are both -1.
type Element struct {
	Tag        string
	Attrs      []html.Attribute
	Start      int
	OpenEnd    int
	CloseStart int
	End        int
}

// Closed reports whether the element's close tag was found.
func (e Element) Closed() bool {
	return e.CloseStart >= 0
}

// Attr returns the value of the named attribute.
func (e Element) Attr(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// Inner returns the source text between the open and close tags.
func (e Element) Inner(src string) string {
	if !e.Closed() {
		return src[e.OpenEnd:]
	}
	return src[e.OpenEnd:e.CloseStart]
}

// Selector matches elements by tag name and, optionally, a class.
type Selector struct {
	Tag   string
	Class string
}

func (s Selector) matches(t token) bool {
	if t.tag != s.Tag {
		return false
	}
	if s.Class == "" {
		return true
	}
	for _, a := range t.attrs {
		if a.Key != "class" {
			continue
		}
		for _, c := range strings.Fields(a.Val) {
			if c == s.Class {
				return true
			}
		}
	}
	return false
}

// Document is a tokenized page. It is a snapshot: after splicing text into
// the source, parse it again.
type Document struct {
	src    string
	tokens []token
}

// Parse tokenizes src. Parsing never fails; malformed markup yields text tokens.
func Parse(src string) *Document {
	d := &Document{src: src}
	z := html.NewTokenizer(strings.NewReader(src))
	offset := 0
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			// io.EOF or a tokenizer limit; either way the tokens so far stand.
			break
		}
		// Raw must be measured before TagName, which lowercases in place.
		n := len(z.Raw())
		t := token{typ: tt, start: offset, end: offset + n}
		offset += n

		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
			name, hasAttr := z.TagName()
			t.tag = string(name)
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				t.attrs = append(t.attrs, html.Attribute{Key: string(key), Val: string(val)})
			}
		}
		d.tokens = append(d.tokens, t)
	}
	return d
}

// Source returns the text the document was parsed from.
func (d *Document) Source() string {
	return d.src
}

// Find returns the first element matching sel.
func (d *Document) Find(sel Selector) (Element, bool) {
	for i, t := range d.tokens {
		if isOpen(t) && sel.matches(t) {
			return d.element(i), true
		}
	}
	return Element{}, false
}

// FindAll returns every element matching sel in document order.
func (d *Document) FindAll(sel Selector) []Element {
	var out []Element
	for i, t := range d.tokens {
		if isOpen(t) && sel.matches(t) {
			out = append(out, d.element(i))
		}
	}
	return out
}

// FindWithin returns the elements matching sel whose open tag lies inside
// the content of outer.
func (d *Document) FindWithin(outer Element, sel Selector) []Element {
	limit := len(d.src)
	if outer.Closed() {
		limit = outer.CloseStart
	}
	var out []Element
	for i, t := range d.tokens {
		if t.start < outer.OpenEnd || t.start >= limit {
			continue
		}
		if isOpen(t) && sel.matches(t) {
			out = append(out, d.element(i))
		}
	}
	return out
}

// LastClose returns the offset of the last close tag named tag.
func (d *Document) LastClose(tag string) (int, bool) {
	for i := len(d.tokens) - 1; i >= 0; i-- {
		t := d.tokens[i]
		if t.typ == html.EndTagToken && t.tag == tag {
			return t.start, true
		}
	}
	return -1, false
}

// FirstClose returns the offset of the first close tag named tag.
func (d *Document) FirstClose(tag string) (int, bool) {
	for _, t := range d.tokens {
		if t.typ == html.EndTagToken && t.tag == tag {
			return t.start, true
		}
	}
	return -1, false
}

func isOpen(t token) bool {
	return t.typ == html.StartTagToken || t.typ == html.SelfClosingTagToken
}

// element builds the Element opened by tokens[i], scanning forward for the
// matching close tag of the same name.
func (d *Document) element(i int) Element {
	open := d.tokens[i]
	e := Element{
		Tag:        open.tag,
		Attrs:      open.attrs,
		Start:      open.start,
		OpenEnd:    open.end,
		CloseStart: -1,
		End:        -1,
	}
	if open.typ == html.SelfClosingTagToken {
		e.CloseStart, e.End = open.end, open.end
		return e
	}

	depth := 1
	for _, t := range d.tokens[i+1:] {
		if t.tag != open.tag {
			continue
		}
		switch t.typ {
		case html.StartTagToken:
			depth++
		case html.EndTagToken:
			depth--
			if depth == 0 {
				e.CloseStart, e.End = t.start, t.end
				return e
			}
		}
	}
	return e
}

// Text returns the text content of an HTML fragment with tags removed and
// entities decoded.
func Text(fragment string) string {
	var b strings.Builder
	z := html.NewTokenizer(strings.NewReader(fragment))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return b.String()
		case html.TextToken:
			b.Write(z.Text())
		}
	}
}
