package matcher

import "errors"

// ErrCancelled is returned by Run when ctx is cancelled before
// enumeration of the search space completes.
var ErrCancelled = errors.New("matcher: search cancelled")
