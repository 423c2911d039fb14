package pattern

import "errors"

var (
	// ErrCommandAlreadyExists is returned by Builder.Register (and
	// Builder.Alias) when a command name is already present.
	ErrCommandAlreadyExists = errors.New("command already exists")
	// ErrUnknownAlias is returned by Builder.Alias when the target command
	// has not been registered yet.
	ErrUnknownAlias = errors.New("unknown alias target")
	// ErrRecursionLimit is reported by the validator when a pattern tree's
	// recursion depth exceeds MaxPatternDepth. Builder.Build does not run
	// the validator, so the interpreter also checks the depth and returns
	// this error (wrapped) for the one stage whose pattern overflows.
	ErrRecursionLimit = errors.New("pattern recursion limit exceeded")
)

// MaxPatternDepth is the soft recursion-depth bound on pattern trees
// authored in the registry.
const MaxPatternDepth = 128
