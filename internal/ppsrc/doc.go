// Package ppsrc models the location space that the token buffer is built
// against: an opaque, monotonically ordered Loc that is either a plain file
// position or a slot produced by expanding a macro.
//
// The design mirrors a source manager's location decomposition (file id +
// offset) plus a parallel table of expansion records, so that a Loc can
// always be resolved down to the file it ultimately came from without the
// rest of the system needing to know whether a given token was spelled or
// expanded.
package ppsrc
