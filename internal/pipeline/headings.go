package pipeline

import (
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/daisuki-koshian/blogpatch/internal/htmlspan"
	"github.com/daisuki-koshian/blogpatch/internal/snippets"
)

// SectionID is the id given to the k-th h2 of an article, counting from 1.
func SectionID(k int) string {
	return "sec-" + strconv.Itoa(k)
}

// HeadingIDs gives every h2 inside an <article> that lacks an id the id
// sec-k, where k is the heading's 1-based position among that article's
// h2 elements. Headings that already carry an id keep it and still count.
// When a hand-authored heading already uses sec-k, the next free k is taken.
type HeadingIDs struct{}

func (HeadingIDs) Name() string { return StepHeadingIDs }

func (HeadingIDs) Apply(src string) (string, Edit, error) {
	doc := htmlspan.Parse(src)

	type insertion struct {
		at int
		id string
	}
	var ins []insertion
	seen := make(map[int]bool)
	total := 0
	for _, article := range doc.FindAll(articleTag) {
		headings := doc.FindWithin(article, h2Tag)
		ids, assigned := sectionIDs(headings)
		for k, h := range headings {
			// An outer article already numbered the h2s of a nested one.
			if seen[h.Start] {
				continue
			}
			seen[h.Start] = true
			total++
			if assigned[k] {
				ins = append(ins, insertion{at: h.Start + len("<h2"), id: ids[k]})
			}
		}
	}

	switch {
	case total == 0:
		return src, Edit{Outcome: NotApplicable}, nil
	case len(ins) == 0:
		return src, Edit{Outcome: AlreadyPresent}, nil
	}

	sort.Slice(ins, func(i, j int) bool { return ins[i].at > ins[j].at })
	out := src
	for _, in := range ins {
		out = out[:in.at] + ` id="` + in.id + `"` + out[in.at:]
	}
	return out, Edit{Outcome: Applied, Anchor: "<article> <h2>"}, nil
}

var _ Step = HeadingIDs{}

// ExtractHeadings returns the h2 headings of the first <article> in
// document order. Text has markup stripped, entities decoded, whitespace
// collapsed and is NFC-normalised. The link target is the heading's id, or
// the id HeadingIDs would assign, so links stay valid before and after it runs.
func ExtractHeadings(src string) []snippets.TOCEntry {
	doc := htmlspan.Parse(src)
	article, ok := doc.Find(articleTag)
	if !ok {
		return nil
	}

	headings := doc.FindWithin(article, h2Tag)
	ids, _ := sectionIDs(headings)
	var out []snippets.TOCEntry
	for k, h := range headings {
		text := strings.Join(strings.Fields(htmlspan.Text(h.Inner(src))), " ")
		out = append(out, snippets.TOCEntry{ID: ids[k], Text: norm.NFC.String(text)})
	}
	return out
}

// sectionIDs returns the id of each heading and whether it was assigned
// rather than authored. An assigned id starts at the heading's position and
// moves past ids already used by any heading of the article.
func sectionIDs(headings []htmlspan.Element) ([]string, []bool) {
	ids := make([]string, len(headings))
	assigned := make([]bool, len(headings))
	taken := make(map[string]bool, len(headings))
	for k, h := range headings {
		if id, ok := h.Attr("id"); ok {
			ids[k] = id
			taken[id] = true
		}
	}
	for k, h := range headings {
		if _, ok := h.Attr("id"); ok {
			continue
		}
		n := k + 1
		for taken[SectionID(n)] {
			n++
		}
		ids[k] = SectionID(n)
		assigned[k] = true
		taken[ids[k]] = true
	}
	return ids, assigned
}
