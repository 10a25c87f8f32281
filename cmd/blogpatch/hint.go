package main

import (
	"errors"
	"strings"

	"github.com/daisuki-koshian/blogpatch"
	"github.com/daisuki-koshian/blogpatch/internal/config"
	"github.com/daisuki-koshian/blogpatch/internal/hints"
)

// hintFor returns a hint for err, or "" when there is nothing useful to add.
func hintFor(err error, root string) string {
	switch {
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(triedPaths(err))
	case errors.Is(err, blogpatch.ErrRootNotFound):
		return hints.ForRootNotFound(root)
	case errors.Is(err, config.ErrUnknownJob), errors.Is(err, blogpatch.ErrUnknownJob):
		return hints.ForUnknownJob(config.Jobs)
	case errors.Is(err, config.ErrUnknownStyle), errors.Is(err, blogpatch.ErrHighlightStyle):
		return hints.ForStyleNotFound(highlightStyles())
	}
	return ""
}

// triedPaths extracts the search list from a config-not-found error.
func triedPaths(err error) []string {
	_, list, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(list, ", ")
}
