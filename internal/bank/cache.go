package bank

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"golang.org/x/sync/singleflight"

	"qm/internal/question"
	"qm/internal/verbose"
)

// DefaultCapacity bounds the number of cached banks when none is configured.
const DefaultCapacity = 64

// Options configures a Cache.
type Options struct {
	Capacity    int
	Fingerprint FingerprintMode
	Verbose     *verbose.Logger
}

// Stats reports cache activity since construction.
type Stats struct {
	Hits      int64
	Misses    int64
	Reads     int64
	Evictions int64
	Entries   int
}

type entry struct {
	bank        *Bank
	fingerprint Fingerprint
	lastAccess  time.Time
}

// Cache shares loaded banks keyed by absolute path.
//
// Cached banks are immutable, so an eviction only drops the cache's reference;
// callers already holding a bank keep a complete value.
type Cache struct {
	mode  FingerprintMode
	log   *verbose.Logger
	group singleflight.Group

	mu          sync.Mutex
	entries     *lru.Cache
	generations map[string]uint64

	hits      atomic.Int64
	misses    atomic.Int64
	reads     atomic.Int64
	evictions atomic.Int64

	stat     func(string) (os.FileInfo, error)
	readFile func(string) ([]byte, error)
}

// NewCache constructs an empty cache.
func NewCache(opts Options) (*Cache, error) {
	capacity := opts.Capacity
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	mode, err := ParseFingerprintMode(string(opts.Fingerprint))
	if err != nil {
		return nil, err
	}
	entries, err := lru.New(capacity)
	if err != nil {
		return nil, fmt.Errorf("create bank cache: %w", err)
	}
	return &Cache{
		mode:        mode,
		log:         opts.Verbose,
		entries:     entries,
		generations: map[string]uint64{},
		stat:        os.Stat,
		readFile:    os.ReadFile,
	}, nil
}

// Load returns the validated bank at path, reading the file only when the
// cached fingerprint is missing or stale. Concurrent loads of the same file
// version share a single read.
func (c *Cache) Load(ctx context.Context, path string) (*Bank, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, ioError(path, err)
	}
	info, err := c.stat(abs)
	if err != nil {
		return nil, ioError(abs, err)
	}
	if info.IsDir() {
		return nil, ioError(abs, fmt.Errorf("is a directory"))
	}
	fp := statFingerprint(info)
	var data []byte
	if c.mode == FingerprintHash {
		data, err = c.read(abs)
		if err != nil {
			return nil, err
		}
		fp = hashFingerprint(fp, data)
	}

	c.mu.Lock()
	generation := c.generations[abs]
	if value, ok := c.entries.Get(abs); ok {
		cached := value.(*entry)
		if cached.fingerprint == fp {
			cached.lastAccess = time.Now()
			c.mu.Unlock()
			c.hits.Add(1)
			c.log.Logf(verbose.StyleDefault, "bank cache hit %s (%s)", abs, fp)
			return cached.bank, nil
		}
	}
	c.mu.Unlock()
	c.misses.Add(1)

	key := fmt.Sprintf("%s\x00%s\x00%d", abs, fp, generation)
	results := c.group.DoChan(key, func() (any, error) {
		return c.fill(abs, fp, generation, data)
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case result := <-results:
		if result.Err != nil {
			return nil, result.Err
		}
		return result.Val.(*Bank), nil
	}
}

// fill reads and validates a bank, then installs it unless the path was
// invalidated after the load began.
func (c *Cache) fill(abs string, fp Fingerprint, generation uint64, data []byte) (*Bank, error) {
	if data == nil {
		var err error
		data, err = c.read(abs)
		if err != nil {
			return nil, err
		}
	}
	questions, err := Parse(abs, data)
	if err != nil {
		c.log.Logf(verbose.StyleError, "bank load failed %s: %v", abs, err)
		return nil, err
	}
	bank := New(abs, fp, questions)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generations[abs] != generation {
		c.log.Logf(verbose.StyleDefault, "bank %s invalidated during load; not cached", abs)
		return bank, nil
	}
	if evicted := c.entries.Add(abs, &entry{bank: bank, fingerprint: fp, lastAccess: time.Now()}); evicted {
		c.evictions.Add(1)
		c.log.Logf(verbose.StyleMetrics, "bank cache evicted least recently used entry")
	}
	c.log.Logf(verbose.StyleEvent, "bank loaded %s: %d questions (%s)", abs, bank.Len(), fp)
	return bank, nil
}

func (c *Cache) read(abs string) ([]byte, error) {
	c.reads.Add(1)
	data, err := c.readFile(abs)
	if err != nil {
		return nil, ioError(abs, err)
	}
	return data, nil
}

// Invalidate forces the next Load of path to re-read the file. Loads already
// in flight for path finish but do not repopulate the cache.
func (c *Cache) Invalidate(path string) {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	c.mu.Lock()
	c.generations[abs]++
	c.entries.Remove(abs)
	c.mu.Unlock()
	c.log.Logf(verbose.StyleDefault, "bank cache invalidated %s", abs)
}

// Save writes questions to path atomically and invalidates the cached entry.
func (c *Cache) Save(path string, questions []question.Question) error {
	if err := WriteFile(path, questions); err != nil {
		return fmt.Errorf("save bank %s: %w", path, err)
	}
	c.Invalidate(path)
	return nil
}

// Stats returns a snapshot of cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		Hits:      c.hits.Load(),
		Misses:    c.misses.Load(),
		Reads:     c.reads.Load(),
		Evictions: c.evictions.Load(),
		Entries:   c.entries.Len(),
	}
}
