package pptoken

import "ppbuf/internal/ppsrc"

// expansionCapturer records top-level macro-expansion spans keyed by the
// spelling-begin location of the call, merging nested calls whose own end
// overflows into a file position into the already-recorded outer entry.
//
// owner is a non-owning back-pointer to the collector that created it; the
// collector nulls it via disable() at consume time so that late preprocessor
// callbacks — the preprocessor may outlive the collector — become no-ops.
type expansionCapturer struct {
	mgr     *ppsrc.Manager
	table   map[ppsrc.Loc]ppsrc.Loc
	lastEnd ppsrc.Loc
	owner   *TokenCollector
}

func newExpansionCapturer(mgr *ppsrc.Manager, owner *TokenCollector) *expansionCapturer {
	return &expansionCapturer{mgr: mgr, table: make(map[ppsrc.Loc]ppsrc.Loc), owner: owner}
}

func (c *expansionCapturer) disable() { c.owner = nil }

func (c *expansionCapturer) onMacroExpands(ev MacroExpansion) {
	if c.owner == nil {
		return
	}
	if !c.mgr.IsFileLoc(ev.Range.End) {
		return // rule 1: only record calls that close at a file location
	}
	if c.lastEnd.Valid() && !c.mgr.IsBeforeInTranslationUnit(c.lastEnd, ev.Range.End) {
		return // rule 2: contained inside a previously recorded expansion
	}

	begin := ev.Range.Begin
	if !c.mgr.IsFileLoc(begin) {
		begin = c.mgr.ExpansionLoc(begin)
	}
	c.table[begin] = ev.Range.End
	c.lastEnd = ev.Range.End
}
