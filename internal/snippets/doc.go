// Package snippets renders the HTML fragments injected into blog pages.
//
// Every generator is a pure function of its arguments and the site settings
// given to New: no file access and no randomness, so the same inputs always
// produce byte-identical output. Fragments that can be detected on a later
// run begin with (or contain) the marker listed in markers.go.
package snippets
