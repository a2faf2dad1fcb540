package ppconfig

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"ppbuf/internal/ppmacro"
	"ppbuf/internal/ppsrc"
	"ppbuf/internal/pptoken"
	"ppbuf/internal/source"
)

// Config is the root of a predefined-macros file:
//
//	[[macro]]
//	name = "MAX"
//	params = ["a", "b"]
//	body = "a > b ? a : b"
type Config struct {
	Macro []MacroEntry `toml:"macro"`
}

// MacroEntry is one [[macro]] table. Params is omitted for an object-like
// macro; an explicit empty list (`params = []`) makes it function-like with
// no parameters.
type MacroEntry struct {
	Name     string   `toml:"name"`
	Params   []string `toml:"params"`
	Variadic bool     `toml:"variadic"`
	Body     string   `toml:"body"`
}

// Load parses path as a Config.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("ppconfig: %w", err)
	}
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("ppconfig: %w", err)
	}
	return &cfg, nil
}

// LoadBytes parses raw TOML content as a Config — used by tests and by
// callers that already have the file in memory.
func LoadBytes(content []byte) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(string(content), &cfg); err != nil {
		return nil, fmt.Errorf("ppconfig: %w", err)
	}
	return &cfg, nil
}

// Register adds one virtual file per macro entry's body to fs. It must run
// before ppsrc.NewManager(fs), since the manager fixes its file blocks at
// construction time and never discovers files added afterward.
func Register(cfg *Config, fs *source.FileSet) []source.FileID {
	fids := make([]source.FileID, len(cfg.Macro))
	for i, entry := range cfg.Macro {
		fids[i] = fs.AddVirtual(fmt.Sprintf("<predefined:%s>", entry.Name), []byte(entry.Body))
	}
	return fids
}

// Apply tokenizes each entry's body (already registered via Register, so
// mgr already has a file block for it) and defines the resulting macro on
// pp. fids must be the slice Register returned for cfg, over the same mgr.
func Apply(cfg *Config, fids []source.FileID, mgr *ppsrc.Manager, pp *ppmacro.Preprocessor) error {
	if len(fids) != len(cfg.Macro) {
		return fmt.Errorf("ppconfig: fids/macro count mismatch (%d vs %d)", len(fids), len(cfg.Macro))
	}
	for i, entry := range cfg.Macro {
		if entry.Name == "" {
			return fmt.Errorf("ppconfig: macro entry with empty name")
		}
		body := pptoken.Tokenize(mgr, fids[i], nil)

		var params []string
		if entry.Params != nil {
			params = entry.Params
		}
		pp.Define(&ppmacro.Macro{
			Name:     entry.Name,
			Params:   params,
			Variadic: entry.Variadic,
			Body:     body,
		})
	}
	return nil
}
