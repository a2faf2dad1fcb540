package pptoken

import (
	"ppbuf/internal/lexer"
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// LangOptions threads dialect information through to the raw lexer. The
// language implemented by internal/lexer has a single dialect today, so this
// is a placeholder for the collaborator contract rather than a real switch.
type LangOptions struct {
	Dialect string
}

// Tokenize raw-lexes fid from start to end and returns its spelled tokens.
// Keyword resolution happens inline in internal/lexer, matching the
// tokenizer contract's "resolve raw identifiers through the identifier
// table" step; internal/lexer only resolves keywords for identifiers built
// from its ASCII/letter continuation set (see DESIGN.md for why that makes
// §4.B's "needs cleaning" clause vacuous here, not merely unimplemented).
// The lexer here never leaves a NUL-terminator ambiguity (it walks a byte
// slice, not a NUL-sentineled buffer), so the trailing EOF token is
// unconditionally dropped — SpelledTokens never contains one.
func Tokenize(mgr *ppsrc.Manager, fid source.FileID, reporter lexer.Reporter) []Token {
	f := mgr.FileSet().Get(fid)
	lx := lexer.New(f, lexer.Options{Reporter: reporter})

	var out []Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		out = append(out, Token{
			Loc:  mgr.ComposeFileLoc(fid, tok.Span.Start),
			Len:  tok.Span.Len(),
			Kind: tok.Kind,
		})
	}
	return out
}
