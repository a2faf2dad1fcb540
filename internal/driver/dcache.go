package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"github.com/vmihailenco/msgpack/v5"
)

const dumpCacheSchemaVersion uint16 = 1

// DumpCache persists the rendered dump text for a given (file content,
// config content) pair, so repeated `dump` invocations over an unchanged
// file skip rebuilding the TokenBuffer.
// Thread-safe for concurrent access.
type DumpCache struct {
	mu  sync.RWMutex
	dir string
}

// CachedDump is the on-disk payload for one cache entry.
type CachedDump struct {
	Schema     uint16
	DumpText   string
	Violations []string
}

// OpenDumpCache opens (creating if necessary) the disk cache at the
// standard XDG cache location for app.
func OpenDumpCache(app string) (*DumpCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	dir := filepath.Join(base, app, "dumps")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DumpCache{dir: dir}, nil
}

// Key derives a cache key from a file's content and the (possibly empty)
// predefined-macros config content that was applied alongside it.
func Key(content, configContent []byte) [32]byte {
	h := sha256.New()
	h.Write(content)
	h.Write([]byte{0}) // separator between the two inputs
	h.Write(configContent)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *DumpCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(key[:])+".mp")
}

// Put serializes and atomically writes payload under key.
func (c *DumpCache) Put(key [32]byte, payload *CachedDump) error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	payload.Schema = dumpCacheSchemaVersion
	p := c.pathFor(key)
	f, err := os.CreateTemp(c.dir, "tmp-*")
	if err != nil {
		return err
	}
	tmpName := f.Name()
	defer os.Remove(tmpName)

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, p)
}

// Get reads and deserializes the cache entry for key, if present.
func (c *DumpCache) Get(key [32]byte) (*CachedDump, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var out CachedDump
	if err := msgpack.NewDecoder(f).Decode(&out); err != nil {
		return nil, false, err
	}
	if out.Schema != dumpCacheSchemaVersion {
		return nil, false, nil
	}
	return &out, true, nil
}
