package snippets

import "errors"

var (
	// ErrTemplateParse wraps a text/template parse failure in a snippet asset.
	ErrTemplateParse = errors.New("failed to parse snippet template")

	// ErrRender wraps a template execution or Markdown conversion failure.
	ErrRender = errors.New("failed to render snippet")

	// ErrMissingMarker means a snippet asset no longer carries the marker
	// used to detect it, which would make re-runs inject it twice.
	ErrMissingMarker = errors.New("snippet lacks detection marker")

	ErrHighlight = errors.New("failed to highlight code")
)
