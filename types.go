package blogpatch

import (
	"fmt"
	"net/url"
	"strings"
)

// Built-in site settings.
const (
	DefaultRoot      = "/tmp/blog-work"
	DefaultBaseURL   = "https://daisuki-koshian.github.io/blog/"
	DefaultShareVia  = "daisuki_koshian"
	DefaultAnalytics = `<script data-goatcounter="https://daisuki-koshian.goatcounter.com/count" async src="//gc.zgo.at/count.js"></script>`

	// DefaultReadingTime is used for pages missing from the catalog.
	DefaultReadingTime = 3
)

// Site holds the values baked into generated snippets.
type Site struct {
	BaseURL   string // absolute, ends with "/"
	ShareVia  string // X account without "@"; empty omits via=
	Analytics string // analytics tag, must contain data-goatcounter=
}

// DefaultSite returns the built-in site settings.
func DefaultSite() Site {
	return Site{
		BaseURL:   DefaultBaseURL,
		ShareVia:  DefaultShareVia,
		Analytics: DefaultAnalytics,
	}
}

// Validate checks BaseURL shape and that the analytics tag can be detected
// on later runs.
func (s Site) Validate() error {
	u, err := url.Parse(s.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: base URL %q must be an absolute http(s) URL", ErrInvalidSite, s.BaseURL)
	}
	if !strings.HasSuffix(s.BaseURL, "/") {
		return fmt.Errorf("%w: base URL %q must end with /", ErrInvalidSite, s.BaseURL)
	}
	if strings.ContainsAny(s.ShareVia, "@/?&# ") {
		return fmt.Errorf("%w: share account %q must be a bare handle", ErrInvalidSite, s.ShareVia)
	}
	if !strings.Contains(s.Analytics, "data-goatcounter=") {
		return fmt.Errorf("%w: analytics tag must contain data-goatcounter=", ErrInvalidSite)
	}
	return nil
}

// Target is one page and the features to apply to it. Slug is the page's
// directory under the blog root; the home page has an empty slug.
type Target struct {
	Path     string
	Slug     string
	Features []Feature
}

// Status is the per-page outcome.
type Status int

const (
	StatusSkipped Status = iota
	StatusModified
	StatusWarning
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusModified:
		return "modified"
	case StatusWarning:
		return "warning"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// Outcome is what one feature did to a page.
type Outcome string

const (
	OutcomeApplied        Outcome = "applied"
	OutcomeAlreadyPresent Outcome = "already present"
	OutcomeNoAnchor       Outcome = "no anchor"
	OutcomeNotApplicable  Outcome = "not applicable"
)

// StepResult records one feature applied to one page.
type StepResult struct {
	Feature Feature
	Outcome Outcome
	Anchor  string // the anchor that matched, when applied
}

// Result is the outcome for one page.
type Result struct {
	Path     string
	Slug     string
	Status   Status
	Steps    []StepResult
	Warnings []string
	Err      error
	DryRun   bool // modified in memory only
}

// Summary counts results by status.
type Summary struct {
	Total    int
	Modified int
	Skipped  int
	Warnings int
	Failed   int
}

func (s Summary) String() string {
	return fmt.Sprintf("%d/%d files modified", s.Modified, s.Total)
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	s := Summary{Total: len(results)}
	for _, r := range results {
		switch r.Status {
		case StatusModified:
			s.Modified++
		case StatusSkipped:
			s.Skipped++
		case StatusWarning:
			s.Warnings++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}
