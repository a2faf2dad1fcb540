package pptoken

import "ppbuf/internal/ppsrc"

// TokenCollector registers a watcher and a capturer against a Preprocessor
// and hands their buffers to the Builder on Consume. Consume is the single
// consumption point: after it returns, the collector must not be used again.
type TokenCollector struct {
	pp       Preprocessor
	mgr      *ppsrc.Manager
	watcher  *tokenWatcher
	capturer *expansionCapturer
	consumed bool
}

// NewTokenCollector registers callbacks on pp and begins recording.
func NewTokenCollector(pp Preprocessor) *TokenCollector {
	mgr := pp.SourceManager()
	c := &TokenCollector{pp: pp, mgr: mgr, watcher: &tokenWatcher{}}
	c.capturer = newExpansionCapturer(mgr, c)

	pp.WatchTokens(func(t Token) {
		if !c.consumed {
			c.watcher.onToken(t)
		}
	})
	pp.OnMacroExpands(c.capturer.onMacroExpands)
	return c
}

// Consume stops the watcher from recording (tokens delivered later are
// ignored), disables the capturer, and builds the
// final TokenBuffer from what was collected. It takes the collector by
// (logical) move: calling it twice returns an error.
func (c *TokenCollector) Consume() (*TokenBuffer, error) {
	if c.consumed {
		return nil, errAlreadyConsumed
	}
	c.consumed = true
	c.capturer.disable()

	return Build(c.mgr, c.watcher.tokens, c.capturer.table)
}
