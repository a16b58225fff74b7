package linter

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
	lru "github.com/hashicorp/golang-lru/v2"
)

// SourceCache hands out file contents backed by memory-mapped regions,
// with LRU eviction bounding the number of simultaneously mapped files.
// Files that fail to map fall back to a plain read. Watch mode hits the
// same files repeatedly, so keeping hot sources mapped avoids rereading
// them on every debounced relint.
//
// Thread-safe: loads use double-check locking so concurrent workers
// requesting the same file map it once.
type SourceCache struct {
	cache  *lru.Cache[string, *mappedSource]
	logger *slog.Logger
	mu     sync.Mutex

	hits   int64
	misses int64
}

type mappedSource struct {
	data mmap.MMap
	// raw holds the fallback copy when mmap failed; nil otherwise.
	raw  []byte
	file *os.File
}

func (m *mappedSource) bytes() []byte {
	if m.raw != nil {
		return m.raw
	}
	return m.data
}

func (m *mappedSource) close() {
	if m.data != nil {
		_ = m.data.Unmap()
	}
	if m.file != nil {
		m.file.Close()
	}
}

// DefaultCacheSize bounds the mapped-file count; beyond it the least
// recently linted file is unmapped.
const DefaultCacheSize = 1024

// NewSourceCache creates a cache holding at most maxFiles mapped
// sources. maxFiles <= 0 uses DefaultCacheSize.
func NewSourceCache(maxFiles int, logger *slog.Logger) (*SourceCache, error) {
	if maxFiles <= 0 {
		maxFiles = DefaultCacheSize
	}
	if logger == nil {
		logger = slog.Default()
	}
	cache, err := lru.NewWithEvict(maxFiles, func(key string, value *mappedSource) {
		value.close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create source cache: %w", err)
	}
	return &SourceCache{cache: cache, logger: logger}, nil
}

// Get returns the contents of path, mapping it on first access. The
// returned slice stays valid until the entry is evicted or invalidated;
// callers that outlive the lint of one file must copy.
func (c *SourceCache) Get(path string) ([]byte, error) {
	if src, ok := c.cache.Get(path); ok {
		c.mu.Lock()
		c.hits++
		c.mu.Unlock()
		return src.bytes(), nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if src, ok := c.cache.Get(path); ok {
		c.hits++
		return src.bytes(), nil
	}
	c.misses++

	src, err := c.load(path)
	if err != nil {
		return nil, err
	}
	c.cache.Add(path, src)
	return src.bytes(), nil
}

func (c *SourceCache) load(path string) (*mappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.Size() == 0 {
		f.Close()
		return &mappedSource{raw: []byte{}}, nil
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		// Pipes, some network filesystems. Fall back to a full read.
		c.logger.Debug("mmap failed, falling back to read", "file", path, "error", err)
		f.Close()
		raw, rerr := os.ReadFile(path)
		if rerr != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, rerr)
		}
		return &mappedSource{raw: raw}, nil
	}
	return &mappedSource{data: data, file: f}, nil
}

// Invalidate drops the cached mapping for path. Called by the watcher
// when a file changes on disk.
func (c *SourceCache) Invalidate(path string) {
	c.cache.Remove(path)
}

// Len returns the number of currently cached files.
func (c *SourceCache) Len() int {
	return c.cache.Len()
}

// Stats returns cumulative hit and miss counts.
func (c *SourceCache) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Close unmaps every cached file.
func (c *SourceCache) Close() {
	c.cache.Purge()
}
