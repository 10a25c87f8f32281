package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blogpatch [flags] [root]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Add breadcrumbs, reading time, share buttons, related articles, mobile")
	fmt.Fprintln(w, "reading aids and the analytics tag to the blog's static pages. Pages that")
	fmt.Fprintln(w, "already have a snippet are left alone, so it is safe to run repeatedly.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  root    Blog directory (default from config, else /tmp/blog-work)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Jobs:")
	fmt.Fprintln(w, "  features     breadcrumb, reading time, share buttons, related articles")
	fmt.Fprintln(w, "  mobile       mobile CSS, progress bar, heading ids, TOC, back-to-top")
	fmt.Fprintln(w, "  analytics    analytics tag on every index.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -j, --job <name>             Job to run, repeatable (default: all)")
	fmt.Fprintln(w, "      --highlight              Highlight <pre><code class=\"language-x\"> blocks")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style (default: github)")
	fmt.Fprintln(w, "      --catalog <path>         Article catalog YAML file")
	fmt.Fprintln(w, "      --asset-path <dir>       Override snippet templates and styles")
	fmt.Fprintln(w, "  -n, --dry-run                Report changes without writing")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Log every step")
	fmt.Fprintln(w, "      --version                Show version")
	fmt.Fprintln(w, "  -h, --help                   Show this help")
}

// printVersion prints the version line.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "blogpatch %s\n", Version)
}
