package pipeline

import (
	"context"
	"fmt"
)

// Outcome is what a step did to the page.
type Outcome int

const (
	// Applied means the page was changed.
	Applied Outcome = iota
	// AlreadyPresent means the step's marker was found.
	AlreadyPresent
	// NoAnchor means none of the step's anchors exist in the page.
	NoAnchor
	// NotApplicable means there was nothing to insert, for example a
	// table of contents for a page without headings.
	NotApplicable
)

func (o Outcome) String() string {
	switch o {
	case Applied:
		return "applied"
	case AlreadyPresent:
		return "already present"
	case NoAnchor:
		return "no anchor"
	case NotApplicable:
		return "not applicable"
	default:
		return fmt.Sprintf("Outcome(%d)", int(o))
	}
}

// Edit describes the result of one Apply call.
type Edit struct {
	Outcome Outcome
	Anchor  string // anchor used when Applied
}

// Step is one idempotent edit. Apply must return src unchanged unless the
// outcome is Applied.
type Step interface {
	Name() string
	Apply(src string) (string, Edit, error)
}

// Report is the per-step record returned by Run.
type Report struct {
	Step string
	Edit
}

// Run applies steps in order. ctx is checked between steps. A step error
// aborts the run and the original src is returned with it.
func Run(ctx context.Context, src string, steps ...Step) (string, []Report, error) {
	out := src
	reports := make([]Report, 0, len(steps))

	for _, s := range steps {
		if err := ctx.Err(); err != nil {
			return src, reports, err
		}
		next, edit, err := s.Apply(out)
		if err != nil {
			return src, reports, fmt.Errorf("%w: %s: %v", ErrStep, s.Name(), err)
		}
		if edit.Outcome == Applied {
			out = next
		}
		reports = append(reports, Report{Step: s.Name(), Edit: edit})
	}
	return out, reports, nil
}
