package ppsrc

// Loc is an opaque, monotonically increasing location id. Values below a
// manager's macro base are plain file locations (fileID/offset decomposed
// directly from allocated file blocks); values at or above it index into the
// manager's macro entry table.
type Loc uint32

// NoLoc is the invalid/sentinel location, never returned by a valid
// decomposition.
const NoLoc Loc = 0

// Valid reports whether l is not the sentinel.
func (l Loc) Valid() bool { return l != NoLoc }
