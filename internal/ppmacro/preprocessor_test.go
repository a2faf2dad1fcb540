package ppmacro_test

import (
	"strings"
	"testing"

	"ppbuf/internal/bufcheck"
	"ppbuf/internal/ppmacro"
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

func expandText(t *testing.T, src string) string {
	t.Helper()
	fs := source.NewFileSet()
	fid := fs.AddVirtual("t.sg", []byte(src))
	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})
	collector := pptoken.NewTokenCollector(pp)

	if err := pp.Run(fid); err != nil {
		t.Fatalf("Run: %v", err)
	}
	buf, err := collector.Consume()
	if err != nil {
		t.Fatalf("Consume: %v", err)
	}
	for _, e := range bufcheck.Check(buf) {
		t.Errorf("invariant violated: %v", e)
	}

	var parts []string
	for _, tok := range buf.ExpandedTokens {
		if tok.Kind == token.EOF {
			continue
		}
		parts = append(parts, tok.Text(buf.Mgr))
	}
	return strings.Join(parts, " ")
}

func TestSelfRecursionIsGuarded(t *testing.T) {
	got := expandText(t, "macro A = 1 + A ; A ;")
	if want := "1 + A ;"; got != want {
		t.Fatalf("expanded = %q, want %q", got, want)
	}
}

func TestZeroArgFunctionLikeMacro(t *testing.T) {
	got := expandText(t, "macro M ( ) = 1 ; M ( ) ;")
	if want := "1 ;"; got != want {
		t.Fatalf("expanded = %q, want %q", got, want)
	}
}

func TestVariadicArgsJoinWithComma(t *testing.T) {
	got := expandText(t, "macro V ( A , ... ) = A + __VA_ARGS__ ; V ( 1 , 2 , 3 ) ;")
	if want := "1 + 2 , 3 ;"; got != want {
		t.Fatalf("expanded = %q, want %q", got, want)
	}
}

func TestMacroNamedButNotCalledPassesThrough(t *testing.T) {
	got := expandText(t, "macro M ( X ) = X ; M ;")
	if want := "M ;"; got != want {
		t.Fatalf("expanded = %q, want %q", got, want)
	}
}

func TestMalformedDefinitionMissingEquals(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("t.sg", []byte("macro X 1 ;"))
	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})

	err := pp.Run(fid)
	if err == nil || !strings.Contains(err.Error(), "expected '='") {
		t.Fatalf("Run error = %v, want mention of missing '='", err)
	}
}

func TestMalformedDefinitionUnterminated(t *testing.T) {
	fs := source.NewFileSet()
	fid := fs.AddVirtual("t.sg", []byte("macro X = 1"))
	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})

	err := pp.Run(fid)
	if err == nil || !strings.Contains(err.Error(), "unterminated") {
		t.Fatalf("Run error = %v, want mention of unterminated definition", err)
	}
}
