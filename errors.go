package blogpatch

import "errors"

// Sentinel errors for library operations.
var (
	ErrInvalidSite    = errors.New("invalid site settings")
	ErrUnknownFeature = errors.New("unknown feature")
	ErrUnknownJob     = errors.New("unknown job")

	// Setup errors.
	ErrCatalog          = errors.New("failed to load article catalog")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrSnippets         = errors.New("failed to prepare snippets")
	ErrHighlightStyle   = errors.New("invalid highlight style")

	// Per-document errors. These end up in Result.Err, never abort a run.
	ErrReadDocument  = errors.New("failed to read document")
	ErrWriteDocument = errors.New("failed to write document")
	ErrPatch         = errors.New("failed to patch document")

	ErrRootNotFound = errors.New("blog root not found")
)
