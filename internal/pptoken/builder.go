package pptoken

import (
	"fmt"
	"sort"

	"ppbuf/internal/ppsrc"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// builder holds the mutable state of one Build run.
type builder struct {
	mgr        *ppsrc.Manager
	expanded   []Token
	expansions map[ppsrc.Loc]ppsrc.Loc
	files      map[source.FileID]*MarkedFile
	order      []source.FileID
	nextSpell  map[source.FileID]int
	nextExp    int
}

// Build fuses the watcher's expanded stream and the capturer's expansion
// table into a complete TokenBuffer, retokenizing each contributing file.
func Build(mgr *ppsrc.Manager, expanded []Token, expansions map[ppsrc.Loc]ppsrc.Loc) (*TokenBuffer, error) {
	if len(expanded) == 0 || expanded[len(expanded)-1].Kind != token.EOF {
		return nil, fmt.Errorf("pptoken: expanded stream must end in a single EOF token")
	}

	b := &builder{
		mgr:        mgr,
		expanded:   expanded,
		expansions: expansions,
		files:      make(map[source.FileID]*MarkedFile),
		nextSpell:  make(map[source.FileID]int),
	}

	b.buildSpelledTokens()

	for b.nextExp < len(b.expanded)-1 {
		b.discard(nil)
		before := b.nextExp
		b.advance()
		if b.nextExp == before {
			panic(b.invariantBroken("advance() made no progress"))
		}
	}

	for _, fid := range b.order {
		fid := fid
		b.discard(&fid)
	}

	return &TokenBuffer{Mgr: mgr, ExpandedTokens: expanded, Files: b.files, order: b.order}, nil
}

// buildSpelledTokens is the initialization pass: for each expanded token,
// resolve the file its expansion ultimately belongs to, lazily retokenizing
// that file on first sight and widening its expanded range on every sight.
func (b *builder) buildSpelledTokens() {
	for i, tok := range b.expanded {
		exLoc := b.mgr.ExpansionLoc(tok.Loc)
		fid, _, ok := b.mgr.Decompose(exLoc)
		if !ok {
			continue // EOF-less degenerate token; nothing to attribute
		}
		mf, seen := b.files[fid]
		if !seen {
			mf = &MarkedFile{
				SpelledTokens: Tokenize(b.mgr, fid, nil),
				BeginExpanded: i,
			}
			b.files[fid] = mf
			b.order = append(b.order, fid)
		}
		if tok.Kind == token.EOF {
			mf.EndExpanded = i
		} else {
			mf.EndExpanded = i + 1
		}
	}
	sort.Slice(b.order, func(i, j int) bool { return b.order[i] < b.order[j] })
}

// discard emits empty mappings for spelled tokens of one file that expanded
// to nothing, up to target. When drain is non-nil it absorbs every
// remaining spelled token of that file up to its end-of-file location
// instead of stopping at the next expanded token's expansion location.
func (b *builder) discard(drain *source.FileID) {
	var target ppsrc.Loc
	var fid source.FileID
	var beginExpanded, endExpanded int

	if drain != nil {
		fid = *drain
		mf := b.files[fid]
		target = b.mgr.LocForEndOfFile(fid)
		beginExpanded, endExpanded = mf.EndExpanded, mf.EndExpanded
	} else {
		target = b.mgr.ExpansionLoc(b.expanded[b.nextExp].Loc)
		var ok bool
		fid, _, ok = b.mgr.Decompose(target)
		if !ok {
			return
		}
		beginExpanded, endExpanded = b.nextExp, b.nextExp
	}

	mf := b.files[fid]
	spelled := mf.SpelledTokens
	cur := Mapping{BeginSpelled: b.nextSpell[fid], BeginExpanded: beginExpanded, EndExpanded: endExpanded}

	flush := func() {
		if b.nextSpell[fid] > cur.BeginSpelled {
			cur.EndSpelled = b.nextSpell[fid]
			mf.Mappings = append(mf.Mappings, cur)
		}
		cur = Mapping{BeginSpelled: b.nextSpell[fid], BeginExpanded: beginExpanded, EndExpanded: endExpanded}
	}

	for b.nextSpell[fid] < len(spelled) && b.mgr.IsBeforeInTranslationUnit(spelled[b.nextSpell[fid]].Loc, target) {
		cand := spelled[b.nextSpell[fid]]
		if knownEnd, ok := b.expansions[cand.Loc]; ok {
			flush()
			for b.nextSpell[fid] < len(spelled) && !b.mgr.IsBeforeInTranslationUnit(knownEnd, spelled[b.nextSpell[fid]].Loc) {
				b.nextSpell[fid]++
			}
			flush()
			continue
		}
		b.nextSpell[fid]++
	}
	flush()
}

// advance consumes one contiguous run rooted at the current expanded token:
// either a plain file-token run (no mapping) or one macro expansion (one
// Mapping spanning everything the capturer recorded for that call).
func (b *builder) advance() {
	tok := b.expanded[b.nextExp]
	x := b.mgr.ExpansionLoc(tok.Loc)
	fid, _, ok := b.mgr.Decompose(x)
	if !ok {
		b.nextExp++
		return
	}
	mf := b.files[fid]

	if b.mgr.IsFileLoc(tok.Loc) {
		for b.nextExp < len(b.expanded) && b.nextSpell[fid] < len(mf.SpelledTokens) {
			t := b.expanded[b.nextExp]
			if !b.mgr.IsFileLoc(t.Loc) || t.Loc != mf.SpelledTokens[b.nextSpell[fid]].Loc {
				break
			}
			b.nextSpell[fid]++
			b.nextExp++
		}
		return
	}

	end, ok := b.expansions[x]
	if !ok {
		panic(b.invariantBroken("advance(): missing captured expansion lookup"))
	}

	m := Mapping{BeginExpanded: b.nextExp, BeginSpelled: b.nextSpell[fid]}
	spelled := mf.SpelledTokens
	for b.nextSpell[fid] < len(spelled) && !b.mgr.IsBeforeInTranslationUnit(end, spelled[b.nextSpell[fid]].Loc) {
		b.nextSpell[fid]++
	}
	for b.nextExp < len(b.expanded) && b.mgr.ExpansionLoc(b.expanded[b.nextExp].Loc) == x {
		b.nextExp++
	}
	m.EndExpanded = b.nextExp
	m.EndSpelled = b.nextSpell[fid]
	mf.Mappings = append(mf.Mappings, m)
}

// invariantBroken builds a fatal error carrying a window of expanded tokens
// around the current cursor, mirroring the dump-on-fatal contract for
// Builder invariant violations.
func (b *builder) invariantBroken(reason string) error {
	lo, hi := b.nextExp-10, b.nextExp+10
	if lo < 0 {
		lo = 0
	}
	if hi > len(b.expanded) {
		hi = len(b.expanded)
	}
	return fmt.Errorf("%w: %s at expanded[%d] (window [%d,%d)=%v)", errInvariantBroken, reason, b.nextExp, lo, hi, b.expanded[lo:hi])
}
