package blogpatch

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"slices"

	"github.com/daisuki-koshian/blogpatch/internal/fileutil"
)

// Job is a named bundle of features and the pages they apply to.
type Job string

const (
	JobFeatures  Job = "features"
	JobMobile    Job = "mobile"
	JobAnalytics Job = "analytics"
)

// AllJobs returns every job in run order.
func AllJobs() []Job {
	return []Job{JobFeatures, JobMobile, JobAnalytics}
}

// ParseJob validates a job name.
func ParseJob(s string) (Job, error) {
	j := Job(s)
	if !slices.Contains(AllJobs(), j) {
		return "", fmt.Errorf("%w: %q", ErrUnknownJob, s)
	}
	return j, nil
}

const pageFile = "index.html"

// MobilePages are the long-form pages that get the mobile reading aids.
var MobilePages = []string{
	"about",
	"backtest-failures",
	"backtest-method",
	"backtest-overview",
	"comfyui",
	"cron-heartbeat",
	"day1",
	"morning-briefing",
	"multi-agent-flow",
	"soul-md-merged",
	"token-efficiency",
}

// pagesWithoutTOC skip the table of contents. The home page (empty slug)
// is one of them.
var pagesWithoutTOC = []string{"about", ""}

var (
	articleFeatures = []Feature{FeatureBreadcrumb, FeatureReadingTime, FeatureShareButtons, FeatureRelated}
	mobileFeatures  = []Feature{FeatureMobileCSS, FeatureProgressBar, FeatureHeadingIDs, FeatureTOC, FeatureBackToTop, FeatureMobileScript}
)

// Plan lists the targets for jobs under root, merged per page. Pages that
// a job names but that do not exist are still listed so they are reported.
// Enabling highlighting adds code-highlight to every target.
func (p *Patcher) Plan(root string, jobs ...Job) ([]Target, error) {
	if !fileutil.DirExists(root) {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	var all []Target
	for _, j := range jobs {
		switch j {
		case JobFeatures:
			all = append(all, p.FeaturesTargets(root)...)
		case JobMobile:
			all = append(all, MobileTargets(root)...)
		case JobAnalytics:
			ts, err := AnalyticsTargets(root)
			if err != nil {
				return nil, err
			}
			all = append(all, ts...)
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownJob, j)
		}
	}

	if p.HighlightEnabled() {
		for i := range all {
			all[i].Features = append(all[i].Features, FeatureCodeHighlight)
		}
	}
	return MergeTargets(all), nil
}

// FeaturesTargets lists every catalog article, category by category.
func (p *Patcher) FeaturesTargets(root string) []Target {
	var ts []Target
	for _, slug := range p.catalog.Slugs() {
		ts = append(ts, Target{
			Path:     filepath.Join(root, slug, pageFile),
			Slug:     slug,
			Features: slices.Clone(articleFeatures),
		})
	}
	return ts
}

// MobileTargets lists MobilePages followed by the home page.
func MobileTargets(root string) []Target {
	slugs := append(slices.Clone(MobilePages), "")

	ts := make([]Target, 0, len(slugs))
	for _, slug := range slugs {
		features := slices.Clone(mobileFeatures)
		if slices.Contains(pagesWithoutTOC, slug) {
			features = slices.DeleteFunc(features, func(f Feature) bool { return f == FeatureTOC })
		}
		ts = append(ts, Target{
			Path:     filepath.Join(root, slug, pageFile),
			Slug:     slug,
			Features: features,
		})
	}
	return ts
}

// AnalyticsTargets lists every index.html under root, the root page
// included, in lexical path order.
func AnalyticsTargets(root string) ([]Target, error) {
	var ts []Target
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || d.Name() != pageFile {
			return nil
		}
		rel, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return err
		}
		if rel == "." {
			rel = ""
		}
		ts = append(ts, Target{
			Path:     path,
			Slug:     filepath.ToSlash(rel),
			Features: []Feature{FeatureAnalytics},
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking %s: %v", ErrReadDocument, root, err)
	}
	return ts, nil
}

// MergeTargets joins targets with the same path, keeping the first
// occurrence's position and slug and taking the union of features.
func MergeTargets(ts []Target) []Target {
	index := make(map[string]int, len(ts))
	var out []Target
	for _, t := range ts {
		key := filepath.Clean(t.Path)
		i, ok := index[key]
		if !ok {
			index[key] = len(out)
			out = append(out, Target{Path: t.Path, Slug: t.Slug, Features: normalizeFeatures(t.Features)})
			continue
		}
		out[i].Features = normalizeFeatures(append(out[i].Features, t.Features...))
	}
	return out
}
