package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/alecthomas/chroma/v2/styles"
	flag "github.com/spf13/pflag"

	"github.com/daisuki-koshian/blogpatch"
	"github.com/daisuki-koshian/blogpatch/internal/config"
	"github.com/daisuki-koshian/blogpatch/internal/hints"
)

var errUsage = errors.New("usage error")

// runMain runs the CLI and returns the exit code.
func runMain(args []string, env *Environment) int {
	flags, positional, err := parseFlags(args[1:])
	if errors.Is(err, flag.ErrHelp) {
		printUsage(env.Stdout)
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n\n", err)
		printUsage(env.Stderr)
		return ExitUsage
	}
	if flags.version {
		printVersion(env.Stdout)
		return ExitSuccess
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	root, err := run(ctx, positional, flags, env)
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v%s\n", err, hintFor(err, root))
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// run patches the blog and returns the root it used.
func run(ctx context.Context, positional []string, flags *cliFlags, env *Environment) (string, error) {
	cfg := config.DefaultConfig()
	if flags.config != "" {
		var err error
		cfg, err = env.LoadConfig(flags.config)
		if err != nil {
			return "", fmt.Errorf("loading config: %w", err)
		}
	}

	// CLI wins over config.
	if err := mergeFlags(flags, positional, cfg); err != nil {
		return "", err
	}
	if err := cfg.Validate(); err != nil {
		return cfg.Root, fmt.Errorf("invalid settings: %w", err)
	}

	jobs, err := resolveJobs(cfg.Jobs)
	if err != nil {
		return cfg.Root, err
	}

	logger := newLogger(env.Stderr, flags.verbose)
	p, err := blogpatch.NewPatcher(patcherOptions(cfg, flags, logger)...)
	if err != nil {
		return cfg.Root, err
	}

	targets, err := p.Plan(cfg.Root, jobs...)
	if err != nil {
		return cfg.Root, err
	}
	logger.Debug("planned", "root", cfg.Root, "jobs", jobs, "pages", len(targets))

	start := env.Now()
	results, err := p.Run(ctx, targets, func(r blogpatch.Result) {
		printResult(env, r, flags.quiet)
	})
	logger.Debug("finished", "elapsed", env.Now().Sub(start))

	printSummary(env, blogpatch.Summarize(results), flags)
	return cfg.Root, err
}

// mergeFlags applies flags and the positional root over cfg.
func mergeFlags(flags *cliFlags, positional []string, cfg *config.Config) error {
	switch len(positional) {
	case 0:
	case 1:
		cfg.Root = positional[0]
	default:
		return fmt.Errorf("%w: expected at most one root directory, got %d arguments", errUsage, len(positional))
	}

	if len(flags.jobs) > 0 {
		cfg.Jobs = flags.jobs
	}
	if flags.highlight {
		cfg.Highlight.Enabled = true
	}
	if flags.style != "" {
		cfg.Highlight.Style = flags.style
	}
	if flags.catalog != "" {
		cfg.Catalog.Path = flags.catalog
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}
	return nil
}

// resolveJobs converts job names, keeping the canonical order and dropping
// duplicates. No names means every job.
func resolveJobs(names []string) ([]blogpatch.Job, error) {
	if len(names) == 0 {
		return blogpatch.AllJobs(), nil
	}
	var jobs []blogpatch.Job
	for _, n := range names {
		j, err := blogpatch.ParseJob(n)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return slices.DeleteFunc(blogpatch.AllJobs(), func(j blogpatch.Job) bool {
		return !slices.Contains(jobs, j)
	}), nil
}

func patcherOptions(cfg *config.Config, flags *cliFlags, logger *slog.Logger) []blogpatch.Option {
	opts := []blogpatch.Option{
		blogpatch.WithSite(cfg.SiteSettings()),
		blogpatch.WithCatalogPath(cfg.Catalog.Path),
		blogpatch.WithAssetPath(cfg.Assets.BasePath),
		blogpatch.WithDryRun(flags.dryRun),
		blogpatch.WithLogger(logger),
	}
	if cfg.Highlight.Enabled {
		opts = append(opts, blogpatch.WithHighlight(cfg.Highlight.Style))
	}
	return opts
}

// printResult writes one status line. Failures always go to stderr.
func printResult(env *Environment, r blogpatch.Result, quiet bool) {
	if r.Status == blogpatch.StatusFailed {
		fmt.Fprintln(env.Stderr, r.String())
		return
	}
	if !quiet {
		fmt.Fprintln(env.Stdout, r.String())
	}
}

func printSummary(env *Environment, s blogpatch.Summary, flags *cliFlags) {
	if s.Failed > 0 {
		fmt.Fprintf(env.Stderr, "%d failed\n", s.Failed)
	}
	if flags.quiet {
		return
	}
	suffix := ""
	if flags.dryRun {
		suffix = " (dry run, nothing written)"
	}
	hint := ""
	if s.Warnings > 0 && !flags.verbose {
		hint = hints.ForNoAnchor()
	}
	fmt.Fprintf(env.Stdout, "\n%s%s%s\n", s, suffix, hint)
}

// highlightStyles lists chroma style names for hints.
func highlightStyles() []string {
	return styles.Names()
}
