package pptoken

import (
	"fmt"

	"ppbuf/internal/ppsrc"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// SpelledRef points at one spelled token: the file it belongs to and its
// index into that file's SpelledTokens.
type SpelledRef struct {
	File  source.FileID
	Index int
}

// SpelledRange is a half-open [Begin, End) slice of one file's
// SpelledTokens.
type SpelledRange struct {
	File  source.FileID
	Begin int
	End   int
}

func (buf *TokenBuffer) markedFile(fid source.FileID) *MarkedFile {
	mf, ok := buf.Files[fid]
	if !ok {
		panic(fmt.Errorf("pptoken: untracked file %d", fid))
	}
	return mf
}

// SpelledTokens returns fid's raw-lex output. Panics if fid was never
// tracked by the buffer (an UntrackedFile contract violation).
func (buf *TokenBuffer) SpelledTokens(fid source.FileID) []Token {
	return buf.markedFile(fid).SpelledTokens
}

// ExpandedRange returns the slice of ExpandedTokens whose locations fall in
// the inclusive, closed [begin, end] range, in translation-unit order.
// Returns nil on an invalid (empty or reversed) range.
func (buf *TokenBuffer) ExpandedRange(begin, end ppsrc.Loc) []Token {
	if !begin.Valid() || !end.Valid() || buf.Mgr.IsBeforeInTranslationUnit(end, begin) {
		return nil
	}
	var out []Token
	for _, t := range buf.ExpandedTokens {
		if buf.Mgr.IsBeforeInTranslationUnit(t.Loc, begin) {
			continue
		}
		if buf.Mgr.IsBeforeInTranslationUnit(end, t.Loc) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// SpelledForExpandedToken resolves the expanded token at index back to the
// spelled token that produced it. The returned Mapping is non-nil only when
// the token lands at the start of a macro expansion.
func (buf *TokenBuffer) SpelledForExpandedToken(index int) (SpelledRef, *Mapping, bool) {
	if index < 0 || index >= len(buf.ExpandedTokens) {
		return SpelledRef{}, nil, false
	}
	tok := buf.ExpandedTokens[index]
	exLoc := buf.Mgr.ExpansionLoc(tok.Loc)
	fid, _, ok := buf.Mgr.Decompose(exLoc)
	if !ok {
		return SpelledRef{}, nil, false
	}
	mf := buf.markedFile(fid)

	var m *Mapping
	for i := range mf.Mappings {
		if mf.Mappings[i].BeginExpanded > index {
			break
		}
		m = &mf.Mappings[i]
	}

	if m == nil {
		return SpelledRef{File: fid, Index: index - mf.BeginExpanded}, nil, true
	}
	if index < m.EndExpanded {
		return SpelledRef{File: fid, Index: m.BeginSpelled}, m, true
	}
	return SpelledRef{File: fid, Index: m.EndSpelled + (index - m.EndExpanded)}, nil, true
}

// SpelledForExpanded returns the smallest spelled range that exactly covers
// the expanded range [begin, end), or ok=false if no such range exists
// (empty range, endpoints in different files, or either endpoint crossing a
// macro boundary).
func (buf *TokenBuffer) SpelledForExpanded(begin, end int) (SpelledRange, bool) {
	if begin >= end {
		return SpelledRange{}, false
	}
	beginRef, beginMap, ok := buf.SpelledForExpandedToken(begin)
	if !ok {
		return SpelledRange{}, false
	}
	endRef, endMap, ok := buf.SpelledForExpandedToken(end - 1)
	if !ok {
		return SpelledRange{}, false
	}
	if beginRef.File != endRef.File {
		return SpelledRange{}, false
	}
	if beginMap != nil && beginMap.BeginExpanded < begin {
		return SpelledRange{}, false
	}
	if endMap != nil && endMap.EndExpanded > end {
		return SpelledRange{}, false
	}

	b := beginRef.Index
	if beginMap != nil {
		b = beginMap.BeginSpelled
	}
	e := endRef.Index + 1
	if endMap != nil {
		e = endMap.EndSpelled
	}
	return SpelledRange{File: beginRef.File, Begin: b, End: e}, true
}

// ExpansionStartingAt returns the spelled/expanded slices of the Mapping
// whose BeginSpelled equals ref.Index, if one exists.
func (buf *TokenBuffer) ExpansionStartingAt(ref SpelledRef) ([]Token, []Token, bool) {
	mf := buf.markedFile(ref.File)
	for i := range mf.Mappings {
		m := mf.Mappings[i]
		if m.BeginSpelled == ref.Index {
			return mf.SpelledTokens[m.BeginSpelled:m.EndSpelled], buf.ExpandedTokens[m.BeginExpanded:m.EndExpanded], true
		}
	}
	return nil, nil, false
}

// SpelledTokensTouching returns the 0, 1, or 2 spelled tokens in loc's file
// that touch loc: a left token (its end location >= loc, its begin strictly
// before loc) listed first, then a right token (its begin location == loc).
// The two predicates are disjoint by construction, so no token is listed
// twice. A loc interior to a token (e.g. offset 1 of "ab") touches that
// token as its left neighbour.
func (buf *TokenBuffer) SpelledTokensTouching(loc ppsrc.Loc) []Token {
	fid, off, ok := buf.Mgr.Decompose(loc)
	if !ok {
		return nil
	}
	mf, ok := buf.Files[fid]
	if !ok {
		return nil
	}
	var out []Token
	for _, t := range mf.SpelledTokens {
		_, tOff, _ := buf.Mgr.Decompose(t.Loc)
		if tOff+t.Len >= off && tOff < off {
			out = append(out, t) // left neighbour, ends at or after loc
		}
	}
	for _, t := range mf.SpelledTokens {
		_, tOff, _ := buf.Mgr.Decompose(t.Loc)
		if tOff == off {
			out = append(out, t) // right neighbour, starts at loc
		}
	}
	return out
}

// SpelledIdentifierTouching returns the first identifier among the tokens
// SpelledTokensTouching(loc) would return, left-preferred.
func (buf *TokenBuffer) SpelledIdentifierTouching(loc ppsrc.Loc) (Token, bool) {
	for _, t := range buf.SpelledTokensTouching(loc) {
		if t.Kind == token.Ident {
			return t, true
		}
	}
	return Token{}, false
}

// MacroExpansions returns, for fid, the first spelled token of every
// Mapping that begins on an identifier — a heuristic filter for object- and
// function-like macro invocations.
func (buf *TokenBuffer) MacroExpansions(fid source.FileID) []Token {
	mf := buf.markedFile(fid)
	var out []Token
	for _, m := range mf.Mappings {
		if m.BeginSpelled >= len(mf.SpelledTokens) {
			continue
		}
		first := mf.SpelledTokens[m.BeginSpelled]
		if first.Kind == token.Ident {
			out = append(out, first)
		}
	}
	return out
}
