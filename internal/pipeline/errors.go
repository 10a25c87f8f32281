package pipeline

import "errors"

// ErrStep wraps a fragment rendering failure inside a step.
var ErrStep = errors.New("step failed")
