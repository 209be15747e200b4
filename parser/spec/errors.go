package spec

import "github.com/pkg/errors"

// Mutation API precondition violations. They are raised with panic, wrapped
// with the offending value, and are never recovered by the parser.
var (
	ErrInvalidChild    = errors.New("invalid child")
	ErrNotChild        = errors.New("reference node is not a child")
	ErrIndexOutOfRange = errors.New("child index out of range")
)
