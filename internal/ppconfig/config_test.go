package ppconfig_test

import (
	"strings"
	"testing"

	"ppbuf/internal/bufcheck"
	"ppbuf/internal/ppconfig"
	"ppbuf/internal/ppmacro"
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
	"ppbuf/internal/token"
)

func TestLoadBytesParsesMacroEntries(t *testing.T) {
	cfg, err := ppconfig.LoadBytes([]byte(`
[[macro]]
name = "MAX"
params = ["a", "b"]
body = "a"

[[macro]]
name = "ONE"
body = "1"
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	if len(cfg.Macro) != 2 {
		t.Fatalf("expected 2 macro entries, got %d", len(cfg.Macro))
	}
	if cfg.Macro[0].Name != "MAX" || len(cfg.Macro[0].Params) != 2 {
		t.Fatalf("unexpected first entry: %+v", cfg.Macro[0])
	}
	if cfg.Macro[1].Name != "ONE" || cfg.Macro[1].Params != nil {
		t.Fatalf("unexpected second entry: %+v", cfg.Macro[1])
	}
}

func TestRegisterApplyDefinesUsablePredefinedMacro(t *testing.T) {
	cfg, err := ppconfig.LoadBytes([]byte(`
[[macro]]
name = "ONE"
body = "1"
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}

	fs := source.NewFileSet()
	fid := fs.AddVirtual("t.sg", []byte("let a = ONE ;"))
	cfgFids := ppconfig.Register(cfg, fs) // must run before NewManager

	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})
	if err := ppconfig.Apply(cfg, cfgFids, mgr, pp); err != nil {
		t.Fatalf("Apply: %v", err)
	}

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
	if got, want := strings.Join(parts, " "), "let a = 1 ;"; got != want {
		t.Fatalf("expanded = %q, want %q", got, want)
	}
}

func TestApplyRejectsMismatchedFids(t *testing.T) {
	cfg, err := ppconfig.LoadBytes([]byte(`
[[macro]]
name = "ONE"
body = "1"
`))
	if err != nil {
		t.Fatalf("LoadBytes: %v", err)
	}
	fs := source.NewFileSet()
	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})

	if err := ppconfig.Apply(cfg, nil, mgr, pp); err == nil {
		t.Fatalf("expected a mismatch error when fids is empty but cfg has entries")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := ppconfig.Load("/nonexistent/path/to/macros.toml"); err == nil {
		t.Fatalf("expected an error loading a nonexistent config file")
	}
}
