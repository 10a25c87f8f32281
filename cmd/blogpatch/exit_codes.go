package main

import (
	"errors"
	"os"

	"github.com/daisuki-koshian/blogpatch"
	"github.com/daisuki-koshian/blogpatch/internal/config"
)

// Exit codes for the blogpatch CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
// Pages that fail individually are reported but do not change the exit code.
const (
	ExitSuccess = 0 // Run completed
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or settings
	ExitIO      = 3 // Blog root missing or unreadable
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, blogpatch.ErrRootNotFound) ||
		errors.Is(err, blogpatch.ErrReadDocument) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, errUsage) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, config.ErrUnknownJob) ||
		errors.Is(err, config.ErrUnknownStyle) ||
		errors.Is(err, blogpatch.ErrUnknownJob) ||
		errors.Is(err, blogpatch.ErrInvalidSite) ||
		errors.Is(err, blogpatch.ErrCatalog) ||
		errors.Is(err, blogpatch.ErrInvalidAssetPath) ||
		errors.Is(err, blogpatch.ErrSnippets) ||
		errors.Is(err, blogpatch.ErrHighlightStyle) {
		return ExitUsage
	}

	return ExitGeneral
}
