// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"

	"github.com/daisuki-koshian/blogpatch/internal/fileutil"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/blogpatch/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepath.ToSlash(p), "/blogpatch/") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForRootNotFound returns hints for a missing blog root. If the path is a
// file, the parent directory is probably what was meant.
func ForRootNotFound(root string) string {
	if fileutil.FileExists(root) {
		return format("pass the directory containing index.html: " + filepath.Dir(root))
	}
	return format("pass the blog root as an argument or set root: in the config file")
}

// ForUnknownJob lists the accepted job names.
func ForUnknownJob(jobs []string) string {
	if len(jobs) == 0 {
		return ""
	}
	return format("available jobs: " + strings.Join(jobs, ", "))
}

// ForStyleNotFound returns hints for unknown highlight styles.
func ForStyleNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForNoAnchor returns a hint for runs that left pages with warnings, most
// often a snippet with nowhere to go.
func ForNoAnchor() string {
	return format("run with --verbose to see which insertion points were tried")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
