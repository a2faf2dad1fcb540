// Package bufcheck verifies the structural invariants a pptoken.TokenBuffer
// must hold once Build returns: ordered, non-overlapping mappings with a
// non-empty spelled side; no EOF among spelled tokens; and a single trailing
// EOF. It does not check that the files' expanded ranges cover the whole
// expanded stream, nor that unmapped expanded tokens match their spelled
// counterparts, nor any query results.
//
// It exists for tests and tooling (the `surge check` command) — nothing in
// the Builder depends on it, so a failing check always indicates a genuine
// invariant violation rather than a self-fulfilling assertion.
package bufcheck
