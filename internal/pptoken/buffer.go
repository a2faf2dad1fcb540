package pptoken

import (
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/source"
)

// Mapping asserts that the spelled tokens at [BeginSpelled, EndSpelled) of
// one file produced the expanded tokens at [BeginExpanded, EndExpanded).
// Either side may be empty except the spelled side, which is never empty in
// a valid buffer (BeginSpelled == EndSpelled never appears).
type Mapping struct {
	BeginSpelled  int
	EndSpelled    int
	BeginExpanded int
	EndExpanded   int
}

// MarkedFile is one file's contribution to a TokenBuffer: its own raw lex,
// the half-open range of the expanded stream it's responsible for, and the
// ordered Mappings that cover the parts of that range produced by macros.
type MarkedFile struct {
	SpelledTokens []Token
	BeginExpanded int
	EndExpanded   int
	Mappings      []Mapping
}

// TokenBuffer is the finished, immutable result of Build: the full expanded
// stream plus, per contributing file, its spelled tokens and the mapping
// between the two views. It borrows the ppsrc.Manager for the rest of its
// life; queries resolve locations back through it.
type TokenBuffer struct {
	Mgr            *ppsrc.Manager
	ExpandedTokens []Token
	Files          map[source.FileID]*MarkedFile
	order          []source.FileID // ascending file-id order, fixed at build time
}
