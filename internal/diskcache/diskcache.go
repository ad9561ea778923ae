// Package diskcache persists expensive computations (year-long
// analysis batches, mostly) between runs, keyed by a digest of their
// inputs.
package diskcache

import (
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
)

// Cache is a content-addressed directory of gob-encoded values.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir. The directory is created lazily
// on the first Save.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Key digests args into a stable cache key. Any change to any input
// yields a different key, which is how stale entries are invalidated.
func Key(args ...any) string {
	h := sha256.New()
	enc := gob.NewEncoder(h)
	for _, arg := range args {
		if err := enc.Encode(arg); err != nil {
			panic("error encoding cache key: " + err.Error())
		}
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (c *Cache) path(key string) string {
	return filepath.Join(c.dir, key)
}

// Load decodes the entry for key into out. It reports false for a
// missing or undecodable entry; either way the caller recomputes.
func (c *Cache) Load(key string, out any) bool {
	f, err := os.Open(c.path(key))
	if err != nil {
		return false
	}
	defer f.Close()
	return gob.NewDecoder(f).Decode(out) == nil
}

// Save encodes val under key.
func (c *Cache) Save(key string, val any) error {
	if err := os.MkdirAll(c.dir, 0777); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	f, err := os.Create(c.path(key))
	if err != nil {
		return fmt.Errorf("creating cache entry: %w", err)
	}
	defer f.Close()
	if err := gob.NewEncoder(f).Encode(val); err != nil {
		return fmt.Errorf("encoding cache entry: %w", err)
	}
	return nil
}
