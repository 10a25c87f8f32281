package main

import (
	"io"

	flag "github.com/spf13/pflag"
)

// cliFlags holds every command-line flag. Zero values mean "use the config
// file or built-in value".
type cliFlags struct {
	config    string
	jobs      []string
	highlight bool
	style     string
	catalog   string
	assetPath string
	dryRun    bool
	quiet     bool
	verbose   bool
	version   bool
}

// newFlagSet declares the flags on a fresh FlagSet. Usage output is left to
// the caller so help goes to stdout and errors to stderr.
func newFlagSet(f *cliFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("blogpatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	fs.SortFlags = false

	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringSliceVarP(&f.jobs, "job", "j", nil, "job to run: features, mobile, analytics (repeatable)")
	fs.BoolVar(&f.highlight, "highlight", false, "highlight code blocks")
	fs.StringVar(&f.style, "highlight-style", "", "chroma style for --highlight")
	fs.StringVar(&f.catalog, "catalog", "", "article catalog YAML file")
	fs.StringVar(&f.assetPath, "asset-path", "", "directory overriding snippet templates and styles")
	fs.BoolVarP(&f.dryRun, "dry-run", "n", false, "report changes without writing")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log every step")
	fs.BoolVar(&f.version, "version", false, "show version")
	return fs
}

// parseFlags parses args (without the program name) and returns the
// positional arguments.
func parseFlags(args []string) (*cliFlags, []string, error) {
	f := &cliFlags{}
	fs := newFlagSet(f)
	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return f, fs.Args(), nil
}
