package pipeline

import (
	"fmt"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/htmlspan"
)

// Fragment produces the text a step inserts. It receives the page so that
// fragments such as the table of contents can depend on it. An empty result
// means there is nothing to insert.
type Fragment func(src string) (string, error)

// Static returns a Fragment that always yields s.
func Static(s string) Fragment {
	return func(string) (string, error) { return s, nil }
}

// Splice is the common step: check Marker, build the fragment, insert it at
// the first anchor found.
type Splice struct {
	StepName string
	Marker   string
	Fragment Fragment
	Anchors  []Anchor

	// Prepare, when set, rewrites the page before anchors are searched. Its
	// result is only kept if the splice succeeds.
	Prepare func(src string) string
}

func (s *Splice) Name() string { return s.StepName }

func (s *Splice) Apply(src string) (string, Edit, error) {
	if s.Marker != "" && strings.Contains(src, s.Marker) {
		return src, Edit{Outcome: AlreadyPresent}, nil
	}

	frag, err := s.Fragment(src)
	if err != nil {
		return src, Edit{}, fmt.Errorf("rendering fragment: %w", err)
	}
	if frag == "" {
		return src, Edit{Outcome: NotApplicable}, nil
	}

	work := src
	if s.Prepare != nil {
		work = s.Prepare(src)
	}
	doc := htmlspan.Parse(work)

	for _, a := range s.Anchors {
		start, end, ok := a.Find(doc)
		if !ok {
			continue
		}
		f := frag
		if a.Wrap != nil {
			f = a.Wrap(frag)
		}
		return splice(work, start, end, a.Place, f), Edit{Outcome: Applied, Anchor: a.Name}, nil
	}
	return src, Edit{Outcome: NoAnchor}, nil
}

var _ Step = (*Splice)(nil)
