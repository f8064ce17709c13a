package cnext

import (
	"fmt"
	"os"
)

// CacheKeyGenerator derives the `mtime:<mtimeMs>` cache key a source
// file's last modification time maps to, and decides whether a
// previously recorded key is still valid (§6). File-system access goes
// through the stat function field so tests can fake mtimes without
// touching disk.
type CacheKeyGenerator struct {
	stat func(path string) (os.FileInfo, error)
}

func NewCacheKeyGenerator() *CacheKeyGenerator {
	return &CacheKeyGenerator{stat: os.Stat}
}

// KeyFor returns the current cache key for path, in the
// `mtime:<mtimeMs>` form (milliseconds since the Unix epoch).
func (c *CacheKeyGenerator) KeyFor(path string) (string, error) {
	info, err := c.stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("mtime:%d", info.ModTime().UnixMilli()), nil
}

// IsValid reports whether path's current on-disk cache key still
// matches recordedKey — i.e. the file hasn't been modified since the
// key was recorded. A stat failure (file deleted) is never valid.
func (c *CacheKeyGenerator) IsValid(path, recordedKey string) bool {
	current, err := c.KeyFor(path)
	if err != nil {
		return false
	}
	return current == recordedKey
}

// FileCacheEntry records one file's last-seen cache key alongside the
// transpile outputs it produced, so TranspileBatch can skip files whose
// key hasn't changed (§6 determinism property: re-running on an
// unchanged file is a cache hit).
type FileCacheEntry struct {
	Key     string
	Outputs ComposedOutput
}

// FileCache is the top-level incremental-compile cache for one project
// (§6), keyed by absolute source path.
type FileCache struct {
	keys    *CacheKeyGenerator
	entries map[string]FileCacheEntry
}

func NewFileCache() *FileCache {
	return &FileCache{keys: NewCacheKeyGenerator(), entries: map[string]FileCacheEntry{}}
}

// Lookup returns a file's cached outputs if its on-disk mtime still
// matches the key recorded the last time it was transpiled.
func (fc *FileCache) Lookup(path string) (ComposedOutput, bool) {
	entry, ok := fc.entries[path]
	if !ok {
		return ComposedOutput{}, false
	}
	if !fc.keys.IsValid(path, entry.Key) {
		return ComposedOutput{}, false
	}
	return entry.Outputs, true
}

// Store records path's current mtime key alongside the outputs just
// produced for it.
func (fc *FileCache) Store(path string, outputs ComposedOutput) error {
	key, err := fc.keys.KeyFor(path)
	if err != nil {
		return err
	}
	fc.entries[path] = FileCacheEntry{Key: key, Outputs: outputs}
	return nil
}

// Invalidate drops path's cache entry outright, forcing a full
// retranspile the next time it's requested.
func (fc *FileCache) Invalidate(path string) {
	delete(fc.entries, path)
}
