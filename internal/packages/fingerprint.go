package packages

import (
	"os"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint is a content-identity hash over a package file's mtime,
// size, and path — cheap to compute on every discovery pass, and good
// enough to detect "this file changed" without reading its contents.
type Fingerprint uint64

func computeFingerprint(path string) (Fingerprint, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}

	var buf []byte
	buf = strconv.AppendInt(buf, info.ModTime().UnixNano(), 10)
	buf = append(buf, '|')
	buf = strconv.AppendInt(buf, info.Size(), 10)
	buf = append(buf, '|')
	buf = append(buf, path...)

	return Fingerprint(xxhash.Sum64(buf)), nil
}

// FingerprintCache remembers the fingerprint of the last successful
// load for each package path, letting loadPackages skip files that
// have not changed since.
type FingerprintCache struct {
	mu    sync.RWMutex
	byPath map[string]Fingerprint
}

// NewFingerprintCache constructs an empty cache.
func NewFingerprintCache() *FingerprintCache {
	return &FingerprintCache{byPath: make(map[string]Fingerprint)}
}

// Unchanged reports whether path's current on-disk fingerprint matches
// the one recorded at its last successful load.
func (c *FingerprintCache) Unchanged(path string) bool {
	current, err := computeFingerprint(path)
	if err != nil {
		return false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	recorded, ok := c.byPath[path]
	return ok && recorded == current
}

// Record stores path's current fingerprint as its last-successful-load
// mark.
func (c *FingerprintCache) Record(path string) error {
	fp, err := computeFingerprint(path)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.byPath[path] = fp
	return nil
}

// Forget removes path's recorded fingerprint, forcing the next load to
// proceed regardless of Unchanged.
func (c *FingerprintCache) Forget(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byPath, path)
}
