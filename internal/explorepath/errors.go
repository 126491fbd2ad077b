package explorepath

import "errors"

var (
	// ErrInvalidExplorationPath covers syntax errors in the mini-language:
	// disallowed characters, empty input, or an input with no valid step.
	ErrInvalidExplorationPath = errors.New("explorepath: invalid exploration path syntax")

	// ErrInvalidStepRange is returned when a range step's end is before its
	// start (B < A).
	ErrInvalidStepRange = errors.New("explorepath: step range end precedes start")

	// ErrInvalidBasePath is returned when a base derivation path string is
	// not a syntactically valid absolute BIP32 path.
	ErrInvalidBasePath = errors.New("explorepath: invalid base derivation path")
)
