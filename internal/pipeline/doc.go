// Package pipeline applies idempotent edits to an HTML page held in memory.
//
// Each Step looks for its marker first and stops when the marker is already
// in the page. Otherwise it tries its anchors in order, splices its fragment
// at the first one found and reports which anchor matched. A step without
// any matching anchor leaves the page untouched; the remaining steps still
// run. Run chains steps and returns the final text with one Report per step.
//
// Anchors are located structurally with internal/htmlspan where possible,
// with literal and regular-expression anchors kept as fallbacks for pages
// whose markup does not parse the expected way.
package pipeline
