package driver

import (
	"fmt"

	"ppbuf/internal/ppconfig"
	"ppbuf/internal/ppmacro"
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
)

// BufferResult bundles the finished buffer with the FileSet it was built
// against, since callers need both to render a dump or run checks.
type BufferResult struct {
	FileSet *source.FileSet
	Buffer  *pptoken.TokenBuffer
}

// BuildTokenBuffer tokenizes path, expands every `macro` definition it
// contains (plus any predefined macros from configPath, if non-empty), and
// returns the resulting preprocessor-aware token buffer.
func BuildTokenBuffer(path, configPath string) (*BufferResult, error) {
	fs := source.NewFileSet()
	fid, err := fs.Load(path)
	if err != nil {
		return nil, err
	}

	var cfg *ppconfig.Config
	var cfgFids []source.FileID
	if configPath != "" {
		cfg, err = ppconfig.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfgFids = ppconfig.Register(cfg, fs)
	}

	mgr := ppsrc.NewManager(fs)
	pp := ppmacro.New(mgr, pptoken.LangOptions{Dialect: "surge"})

	if cfg != nil {
		if err := ppconfig.Apply(cfg, cfgFids, mgr, pp); err != nil {
			return nil, err
		}
	}

	collector := pptoken.NewTokenCollector(pp)
	if err := pp.Run(fid); err != nil {
		return nil, fmt.Errorf("driver: preprocessing failed: %w", err)
	}
	buf, err := collector.Consume()
	if err != nil {
		return nil, fmt.Errorf("driver: building token buffer failed: %w", err)
	}

	return &BufferResult{FileSet: fs, Buffer: buf}, nil
}
