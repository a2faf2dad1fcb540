package pptoken

import "errors"

// ErrNotSpelled is returned when a FileRange is requested from a token whose
// location does not resolve to a real file position.
var ErrNotSpelled = errors.New("pptoken: token has no spelled location")

// ErrCrossFile is returned when two tokens from different files are merged
// into a single FileRange.
var ErrCrossFile = errors.New("pptoken: cannot merge tokens from different files")

// ErrOutOfOrder is returned when the first of two merged tokens ends after
// the second begins.
var ErrOutOfOrder = errors.New("pptoken: tokens are out of order")

// errAlreadyConsumed guards against reusing a TokenCollector after Consume.
var errAlreadyConsumed = errors.New("pptoken: collector already consumed")

// errInvariantBroken marks a Builder invariant violation: either advance()
// failed to progress, or a captured expansion lookup came up empty. Both
// indicate an upstream contract violation rather than a recoverable query
// failure, so the Builder panics with this wrapped error and a context dump
// rather than returning it through the ordinary error path.
var errInvariantBroken = errors.New("pptoken: builder invariant broken")
