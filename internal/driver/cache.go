package driver

import (
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"aslc/internal/tac"
)

// cacheSchemaVersion invalidates stored payloads when the TAC encoding
// changes. Bump it on any change to cachePayload or tac.Instr.
const cacheSchemaVersion uint16 = 1

// cachePayload is the msgpack envelope stored on disk, keyed by the
// SHA-256 of the source content. Only error-free compilations are cached.
type cachePayload struct {
	Schema uint16
	Tac    tac.Program
}

// diskCache stores compiled TAC under a directory, one file per source
// content hash. All methods degrade to cache misses on I/O trouble;
// the cache is never allowed to fail a compilation.
type diskCache struct {
	dir string
}

func openCache(dir string) *diskCache {
	if dir == "" {
		base, err := os.UserCacheDir()
		if err != nil {
			return &diskCache{}
		}
		dir = filepath.Join(base, "aslc")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &diskCache{}
	}
	return &diskCache{dir: dir}
}

func (c *diskCache) path(hash [32]byte) string {
	return filepath.Join(c.dir, hex.EncodeToString(hash[:])+".tacc")
}

func (c *diskCache) load(hash [32]byte) (*tac.Program, bool) {
	if c.dir == "" {
		return nil, false
	}
	raw, err := os.ReadFile(c.path(hash))
	if err != nil {
		return nil, false
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(raw, &payload); err != nil {
		return nil, false
	}
	if payload.Schema != cacheSchemaVersion {
		return nil, false
	}
	return &payload.Tac, true
}

func (c *diskCache) store(hash [32]byte, prog *tac.Program) {
	if c.dir == "" || prog == nil {
		return
	}
	raw, err := msgpack.Marshal(cachePayload{Schema: cacheSchemaVersion, Tac: *prog})
	if err != nil {
		return
	}
	tmp := c.path(hash) + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return
	}
	// Rename keeps concurrent readers from seeing half-written payloads.
	_ = os.Rename(tmp, c.path(hash))
}
