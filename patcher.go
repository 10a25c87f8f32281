package blogpatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/assets"
	"github.com/daisuki-koshian/blogpatch/internal/catalog"
	"github.com/daisuki-koshian/blogpatch/internal/fileutil"
	"github.com/daisuki-koshian/blogpatch/internal/pipeline"
	"github.com/daisuki-koshian/blogpatch/internal/snippets"
)

// Patcher applies features to pages. Create with NewPatcher. A Patcher is
// read-only after construction and safe to reuse.
type Patcher struct {
	cfg         patcherConfig
	catalog     *catalog.Catalog
	renderer    *snippets.Renderer
	highlighter *snippets.Highlighter
	log         *slog.Logger
}

type patcherConfig struct {
	site           Site
	catalogPath    string
	assetPath      string
	highlight      bool
	highlightStyle string
	dryRun         bool
	logger         *slog.Logger
}

// Option configures a Patcher.
type Option func(*patcherConfig)

// WithSite replaces the built-in site settings.
func WithSite(s Site) Option {
	return func(c *patcherConfig) { c.site = s }
}

// WithCatalogPath loads article metadata from a YAML file instead of the
// embedded table.
func WithCatalogPath(path string) Option {
	return func(c *patcherConfig) { c.catalogPath = path }
}

// WithAssetPath overrides snippet templates and styles from a directory.
// Files missing there fall back to the embedded copies.
func WithAssetPath(path string) Option {
	return func(c *patcherConfig) { c.assetPath = path }
}

// WithHighlight enables code highlighting. An empty style selects the
// default chroma style.
func WithHighlight(style string) Option {
	return func(c *patcherConfig) {
		c.highlight = true
		c.highlightStyle = style
	}
}

// WithDryRun reports changes without writing files.
func WithDryRun(dry bool) Option {
	return func(c *patcherConfig) { c.dryRun = dry }
}

// WithLogger sets the logger for per-step diagnostics, emitted at debug
// level. The default discards them.
func WithLogger(l *slog.Logger) Option {
	return func(c *patcherConfig) { c.logger = l }
}

// NewPatcher loads the catalog and snippet assets.
func NewPatcher(opts ...Option) (*Patcher, error) {
	cfg := patcherConfig{site: DefaultSite()}
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.site.Validate(); err != nil {
		return nil, err
	}

	p := &Patcher{cfg: cfg, log: cfg.logger}
	if p.log == nil {
		p.log = slog.New(slog.DiscardHandler)
	}

	var err error
	if cfg.catalogPath != "" {
		p.catalog, err = catalog.LoadFile(cfg.catalogPath)
	} else {
		p.catalog, err = catalog.Default()
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}

	resolver, err := assets.NewAssetResolver(cfg.assetPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
	}
	set, err := assets.LoadSnippetSet(resolver)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnippets, err)
	}
	p.renderer, err = snippets.New(set, snippets.Site{
		BaseURL:   cfg.site.BaseURL,
		ShareVia:  cfg.site.ShareVia,
		Analytics: cfg.site.Analytics,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSnippets, err)
	}

	if cfg.highlight {
		p.highlighter, err = snippets.NewHighlighter(cfg.highlightStyle)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrHighlightStyle, err)
		}
	}
	return p, nil
}

// HighlightEnabled reports whether WithHighlight was given.
func (p *Patcher) HighlightEnabled() bool {
	return p.highlighter != nil
}

// PatchDocument applies features to src and returns the new text. It does
// no I/O. Features are applied in application order regardless of the
// order given.
func (p *Patcher) PatchDocument(ctx context.Context, slug, src string, features []Feature) (string, []StepResult, error) {
	steps, err := p.steps(slug, normalizeFeatures(features))
	if err != nil {
		return src, nil, fmt.Errorf("%w: %v", ErrPatch, err)
	}

	out, reports, err := pipeline.Run(ctx, src, steps...)
	if err != nil {
		if ctx.Err() != nil {
			return src, nil, err
		}
		return src, nil, fmt.Errorf("%w: %v", ErrPatch, err)
	}

	results := make([]StepResult, len(reports))
	for i, r := range reports {
		results[i] = StepResult{Feature: Feature(r.Step), Outcome: outcomeOf(r.Outcome), Anchor: r.Anchor}
	}
	return out, results, nil
}

// PatchFile reads t.Path, patches it and writes it back when the text
// changed. Problems are reported in the Result, never returned.
func (p *Patcher) PatchFile(ctx context.Context, t Target) Result {
	res := Result{Path: t.Path, Slug: t.Slug, DryRun: p.cfg.dryRun}
	log := p.log.With("path", t.Path)

	src, err := fileutil.ReadDocument(t.Path)
	if errors.Is(err, fileutil.ErrNotFound) {
		res.Status = StatusWarning
		res.Warnings = append(res.Warnings, "index.html not found")
		return res
	}
	if err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%w: %v", ErrReadDocument, err)
		return res
	}

	out, steps, err := p.PatchDocument(ctx, t.Slug, src, t.Features)
	if err != nil {
		res.Status = StatusFailed
		res.Err = err
		return res
	}
	res.Steps = steps

	for _, s := range steps {
		log.Debug("step", "feature", string(s.Feature), "outcome", string(s.Outcome), "anchor", s.Anchor)
		if s.Outcome == OutcomeNoAnchor {
			res.Warnings = append(res.Warnings, noAnchorWarning(s.Feature))
		}
	}

	if out == src {
		res.Status = StatusSkipped
		if len(res.Warnings) > 0 {
			res.Status = StatusWarning
		}
		return res
	}

	res.Status = StatusModified
	if p.cfg.dryRun {
		return res
	}
	if _, err := fileutil.WriteIfChanged(t.Path, src, out); err != nil {
		res.Status = StatusFailed
		res.Err = fmt.Errorf("%w: %v", ErrWriteDocument, err)
	}
	return res
}

func noAnchorWarning(f Feature) string {
	switch f {
	case FeatureAnalytics, FeatureBackToTop:
		return fmt.Sprintf("%s: no </body> tag found", f)
	case FeatureProgressBar:
		return fmt.Sprintf("%s: no <body> tag found", f)
	default:
		return fmt.Sprintf("%s: insertion point not found", f)
	}
}

// steps builds the pipeline for one page.
func (p *Patcher) steps(slug string, features []Feature) ([]pipeline.Step, error) {
	article, known := p.catalog.Lookup(slug)
	if !known {
		article = catalog.Article{Slug: slug, Title: slug, ReadingTime: DefaultReadingTime}
	}

	steps := make([]pipeline.Step, 0, len(features))
	for _, f := range features {
		s, err := p.step(f, article, known)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f, err)
		}
		steps = append(steps, s)
	}
	return steps, nil
}

func (p *Patcher) step(f Feature, a catalog.Article, known bool) (pipeline.Step, error) {
	r := p.renderer
	switch f {
	case FeatureBreadcrumb:
		cat, ok := p.catalog.CategoryOf(a.Slug)
		if !known || !ok {
			return skip(f), nil
		}
		frag, err := r.Breadcrumb(a, cat.Label)
		return pipeline.Breadcrumb(frag), err
	case FeatureReadingTime:
		frag, err := r.ReadingTime(a.ReadingTime)
		return pipeline.ReadingTime(frag), err
	case FeatureShareButtons:
		if a.Slug == "" {
			return skip(f), nil
		}
		frag, err := r.ShareButtons(a)
		return pipeline.ShareButtons(frag), err
	case FeatureRelated:
		frag, err := r.RelatedArticles(p.catalog.Related(a.Slug, catalog.DefaultRelatedLimit))
		return pipeline.RelatedArticles(frag), err
	case FeatureMobileCSS:
		return pipeline.MobileCSS(r.MobileCSS()), nil
	case FeatureProgressBar:
		frag, err := r.ProgressBar()
		return pipeline.ProgressBar(frag), err
	case FeatureHeadingIDs:
		return pipeline.HeadingIDs{}, nil
	case FeatureTOC:
		return pipeline.TOC(r.TOC), nil
	case FeatureBackToTop:
		frag, err := r.BackToTop()
		return pipeline.BackToTop(frag), err
	case FeatureMobileScript:
		frag, err := r.MobileScript()
		return pipeline.MobileScript(frag), err
	case FeatureAnalytics:
		return pipeline.Analytics(r.Analytics()), nil
	case FeatureCodeHighlight:
		if p.highlighter == nil {
			return skip(f), nil
		}
		return pipeline.CodeHighlight{H: p.highlighter}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFeature, f)
}

// skipStep reports a feature that cannot apply to this page.
type skipStep struct{ name string }

func skip(f Feature) pipeline.Step { return skipStep{name: string(f)} }

func (s skipStep) Name() string { return s.name }

func (s skipStep) Apply(src string) (string, pipeline.Edit, error) {
	return src, pipeline.Edit{Outcome: pipeline.NotApplicable}, nil
}

func outcomeOf(o pipeline.Outcome) Outcome {
	switch o {
	case pipeline.Applied:
		return OutcomeApplied
	case pipeline.AlreadyPresent:
		return OutcomeAlreadyPresent
	case pipeline.NoAnchor:
		return OutcomeNoAnchor
	default:
		return OutcomeNotApplicable
	}
}

// String renders a one-line result for logs and status output.
func (r Result) String() string {
	var b strings.Builder
	b.WriteString(r.Status.String())
	b.WriteString(": ")
	b.WriteString(r.Path)
	if r.Err != nil {
		b.WriteString(": ")
		b.WriteString(r.Err.Error())
	}
	for _, w := range r.Warnings {
		b.WriteString(" (")
		b.WriteString(w)
		b.WriteString(")")
	}
	return b.String()
}
