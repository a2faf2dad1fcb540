package ppmacro

import (
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/token"
)

// qtok is a token paired with the hide set accumulated through whatever
// expansions produced it — macros named in the hide set never re-expand
// while this token is reprocessed, which is what stops direct and indirect
// self-reference from recursing forever.
type qtok struct {
	tok  pptoken.Token
	hide map[string]bool
}

func unionHide(a map[string]bool, extra ...string) map[string]bool {
	out := make(map[string]bool, len(a)+len(extra))
	for k := range a {
		out[k] = true
	}
	for _, e := range extra {
		out[e] = true
	}
	return out
}

// expandQueue repeatedly pops the front of queue, expanding macro calls by
// pushing their substituted body back onto the front for rescanning, and
// hands every other token to sink.
func (p *Preprocessor) expandQueue(queue []qtok, sink func(pptoken.Token)) {
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		name := cur.tok.Text(p.mgr)
		m, isMacro := p.macros[name]
		if cur.tok.Kind != token.Ident || !isMacro || cur.hide[name] {
			sink(cur.tok)
			continue
		}

		if !m.isFunctionLike() {
			queue = append(p.substituteObjectLike(m, cur), queue...)
			continue
		}

		if len(queue) == 0 || queue[0].tok.Kind != token.LParen {
			sink(cur.tok) // named like a macro but not called
			continue
		}
		args, closeTok, rest, ok := splitArgs(queue)
		if !ok {
			sink(cur.tok)
			continue
		}
		queue = append(p.substituteFunctionLike(m, cur, args, closeTok), rest...)
	}
}

// expandArgument fully macro-expands one argument's tokens in isolation,
// per the usual "arguments are expanded before substitution" rule.
func (p *Preprocessor) expandArgument(arg []qtok) []qtok {
	var out []qtok
	p.expandQueue(arg, func(t pptoken.Token) {
		out = append(out, qtok{tok: t})
	})
	return out
}

func (p *Preprocessor) substituteObjectLike(m *Macro, call qtok) []qtok {
	callLoc := call.tok.Loc
	p.fireExpand(pptoken.MacroExpansion{
		NameLoc: callLoc,
		Range:   pptoken.Range{Begin: callLoc, End: callLoc},
	})

	hide := unionHide(call.hide, m.Name)
	out := make([]qtok, len(m.Body))
	for i, b := range m.Body {
		loc := p.mgr.AllocExpansionLoc(ppsrc.ExpansionInfo{Spelling: b.Loc, Expansion: callLoc})
		out[i] = qtok{tok: pptoken.Token{Loc: loc, Len: b.Len, Kind: b.Kind}, hide: hide}
	}
	return out
}

func (p *Preprocessor) substituteFunctionLike(m *Macro, call qtok, args [][]qtok, closeTok qtok) []qtok {
	callLoc := call.tok.Loc
	p.fireExpand(pptoken.MacroExpansion{
		NameLoc: callLoc,
		Range:   pptoken.Range{Begin: callLoc, End: closeTok.tok.Loc},
	})

	hide := unionHide(unionHide(call.hide, m.Name), mapKeys(closeTok.hide)...)

	argByName := make(map[string][]qtok, len(m.Params))
	for i, name := range m.Params {
		if i < len(args) {
			argByName[name] = args[i]
		}
	}
	var variadicArgs []qtok
	if m.Variadic && len(args) > len(m.Params) {
		for _, extra := range args[len(m.Params):] {
			if len(variadicArgs) > 0 {
				commaLoc := p.mgr.AllocExpansionLoc(ppsrc.ExpansionInfo{Spelling: callLoc, Expansion: callLoc})
				variadicArgs = append(variadicArgs, qtok{tok: pptoken.Token{Loc: commaLoc, Kind: token.Comma}})
			}
			variadicArgs = append(variadicArgs, extra...)
		}
	}

	var out []qtok
	for _, b := range m.Body {
		if b.Kind == token.Ident {
			text := b.Text(p.mgr)
			if sub, ok := argByName[text]; ok {
				out = append(out, p.substituteArgTokens(sub, callLoc, hide)...)
				continue
			}
			if text == "__VA_ARGS__" {
				out = append(out, p.substituteArgTokens(variadicArgs, callLoc, hide)...)
				continue
			}
		}
		loc := p.mgr.AllocExpansionLoc(ppsrc.ExpansionInfo{Spelling: b.Loc, Expansion: callLoc})
		out = append(out, qtok{tok: pptoken.Token{Loc: loc, Len: b.Len, Kind: b.Kind}, hide: hide})
	}
	return out
}

func (p *Preprocessor) substituteArgTokens(sub []qtok, callLoc ppsrc.Loc, hide map[string]bool) []qtok {
	expanded := p.expandArgument(sub)
	out := make([]qtok, len(expanded))
	for i, a := range expanded {
		loc := p.mgr.AllocExpansionLoc(ppsrc.ExpansionInfo{Spelling: a.tok.Loc, Expansion: callLoc, IsArgument: true})
		out[i] = qtok{tok: pptoken.Token{Loc: loc, Len: a.tok.Len, Kind: a.tok.Kind}, hide: unionHide(a.hide, mapKeys(hide)...)}
	}
	return out
}

func mapKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// splitArgs consumes queue starting at its opening '(' and returns the
// comma-separated argument groups, the closing ')' token, and whatever
// follows it. ok is false when the parens never close (malformed call,
// treated as not a call by the caller).
func splitArgs(queue []qtok) (args [][]qtok, closeTok qtok, rest []qtok, ok bool) {
	depth := 0
	var cur []qtok
	for i, t := range queue {
		switch t.tok.Kind {
		case token.LParen:
			depth++
			if depth > 1 {
				cur = append(cur, t)
			}
		case token.RParen:
			depth--
			if depth == 0 {
				args = append(args, cur)
				if len(args) == 1 && len(args[0]) == 0 {
					args = nil // zero-argument call: `M()`
				}
				return args, t, queue[i+1:], true
			}
			cur = append(cur, t)
		case token.Comma:
			if depth == 1 {
				args = append(args, cur)
				cur = nil
			} else {
				cur = append(cur, t)
			}
		default:
			cur = append(cur, t)
		}
	}
	return nil, qtok{}, queue, false
}
