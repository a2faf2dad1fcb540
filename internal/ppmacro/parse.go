package ppmacro

import (
	"fmt"

	"ppbuf/internal/pptoken"
	"ppbuf/internal/token"
)

// collectDefinitions scans raw for `macro NAME = body... ;` and
// `macro NAME(p1, p2, ...) = body... ;` forms, registers each as a Macro,
// and returns every token not part of a definition, in source order.
func (p *Preprocessor) collectDefinitions(raw []pptoken.Token) ([]pptoken.Token, error) {
	var rest []pptoken.Token
	i := 0
	for i < len(raw) {
		if raw[i].Kind != token.KwMacro {
			rest = append(rest, raw[i])
			i++
			continue
		}
		consumed, err := p.parseOneDefinition(raw[i:])
		if err != nil {
			return nil, err
		}
		i += consumed
	}
	return rest, nil
}

// parseOneDefinition parses a single definition starting at toks[0] (which
// must be KwMacro) and returns how many tokens it consumed.
func (p *Preprocessor) parseOneDefinition(toks []pptoken.Token) (int, error) {
	if len(toks) < 3 || toks[1].Kind != token.Ident {
		return 0, fmt.Errorf("malformed macro definition")
	}
	name := toks[1].Text(p.mgr)
	i := 2

	var params []string
	variadic := false
	if i < len(toks) && toks[i].Kind == token.LParen {
		i++
		for i < len(toks) && toks[i].Kind != token.RParen {
			switch toks[i].Kind {
			case token.Ident:
				params = append(params, toks[i].Text(p.mgr))
			case token.DotDotDot:
				variadic = true
			case token.Comma:
				// skip
			default:
				return 0, fmt.Errorf("macro %s: unexpected token in parameter list", name)
			}
			i++
		}
		if i >= len(toks) {
			return 0, fmt.Errorf("macro %s: unterminated parameter list", name)
		}
		i++ // consume ')'
		if params == nil {
			params = []string{} // distinguishes function-like-no-args from object-like
		}
	}

	if i >= len(toks) || toks[i].Kind != token.Assign {
		return 0, fmt.Errorf("macro %s: expected '='", name)
	}
	i++

	var body []pptoken.Token
	for i < len(toks) && toks[i].Kind != token.Semicolon {
		body = append(body, toks[i])
		i++
	}
	if i >= len(toks) {
		return 0, fmt.Errorf("macro %s: unterminated definition (missing ';')", name)
	}
	i++ // consume ';'

	p.Define(&Macro{Name: name, Params: params, Variadic: variadic, Body: body})
	return i, nil
}
