package ppmacro

import (
	"fmt"

	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

// Preprocessor drives macro expansion over one or more tokenized files and
// reports the result through the pptoken.Preprocessor contract, so a
// pptoken.TokenCollector can turn a Run into a TokenBuffer.
type Preprocessor struct {
	mgr       *ppsrc.Manager
	lang      pptoken.LangOptions
	macros    map[string]*Macro
	tokenCBs  []func(pptoken.Token)
	expandCBs []func(pptoken.MacroExpansion)
}

// New creates a Preprocessor over mgr with no macros defined yet.
func New(mgr *ppsrc.Manager, lang pptoken.LangOptions) *Preprocessor {
	return &Preprocessor{mgr: mgr, lang: lang, macros: make(map[string]*Macro)}
}

// Define registers m, overwriting any previous definition of the same name
// — redefinition warnings are not part of this minimal preprocessor.
func (p *Preprocessor) Define(m *Macro) { p.macros[m.Name] = m }

// WatchTokens implements pptoken.Preprocessor.
func (p *Preprocessor) WatchTokens(fn func(pptoken.Token)) {
	p.tokenCBs = append(p.tokenCBs, fn)
}

// OnMacroExpands implements pptoken.Preprocessor.
func (p *Preprocessor) OnMacroExpands(fn func(pptoken.MacroExpansion)) {
	p.expandCBs = append(p.expandCBs, fn)
}

// SourceManager implements pptoken.Preprocessor.
func (p *Preprocessor) SourceManager() *ppsrc.Manager { return p.mgr }

// LangOptions implements pptoken.Preprocessor.
func (p *Preprocessor) LangOptions() pptoken.LangOptions { return p.lang }

func (p *Preprocessor) emit(t pptoken.Token) {
	for _, fn := range p.tokenCBs {
		fn(t)
	}
}

func (p *Preprocessor) fireExpand(ev pptoken.MacroExpansion) {
	for _, fn := range p.expandCBs {
		fn(ev)
	}
}

// Run tokenizes fid, consumes its `macro` definitions, expands every
// invocation in the remaining tokens, and emits the result through the
// registered watchers followed by a single trailing EOF token.
func (p *Preprocessor) Run(fid source.FileID) error {
	raw := pptoken.Tokenize(p.mgr, fid, nil)
	rest, err := p.collectDefinitions(raw)
	if err != nil {
		return fmt.Errorf("ppmacro: %w", err)
	}

	queue := make([]qtok, len(rest))
	for i, t := range rest {
		queue[i] = qtok{tok: t}
	}
	p.expandQueue(queue, p.emit)

	p.emit(pptoken.Token{Loc: p.mgr.LocForEndOfFile(fid), Kind: token.EOF})
	return nil
}
