package measure

import (
	"container/list"
	"io"
	"sync"

	"github.com/agiangrant/tactile/text"
)

// DefaultCacheSize is the number of measurements kept by NewCached when no
// size is given.
const DefaultCacheSize = 10000

// Cached is an LRU cache in front of another measurer. Caret hit-testing
// measures every prefix of a string, so the same font and text pairs are
// measured over and over.
//
// Cached is safe for concurrent use if the wrapped measurer is.
type Cached struct {
	next text.Measurer

	mu      sync.Mutex
	maxSize int
	entries map[cacheKey]*list.Element
	lru     *list.List // Front = most recently used

	hits, misses uint64
}

type cacheKey struct {
	family string
	size   int
	flags  text.FontFlags
	s      string
}

type cacheEntry struct {
	key  cacheKey
	w, h int
}

// NewCached wraps m with a cache of at most maxSize entries. A size of zero
// or less selects DefaultCacheSize.
func NewCached(m text.Measurer, maxSize int) *Cached {
	if maxSize <= 0 {
		maxSize = DefaultCacheSize
	}
	return &Cached{
		next:    m,
		maxSize: maxSize,
		entries: make(map[cacheKey]*list.Element),
		lru:     list.New(),
	}
}

// Unwrap returns the wrapped measurer.
func (c *Cached) Unwrap() text.Measurer { return c.next }

// MeasureText implements text.Measurer.
func (c *Cached) MeasureText(f *text.Font, s string) (int, int) {
	if f == nil {
		f = text.DefaultFont
	}
	key := cacheKey{family: f.Family, size: f.Size, flags: f.Flags, s: s}

	c.mu.Lock()
	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		c.hits++
		e := elem.Value.(*cacheEntry)
		c.mu.Unlock()
		return e.w, e.h
	}
	c.misses++
	c.mu.Unlock()

	w, h := c.next.MeasureText(f, s)
	c.put(key, w, h)
	return w, h
}

func (c *Cached) put(key cacheKey, w, h int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.lru.MoveToFront(elem)
		return
	}

	for c.lru.Len() >= c.maxSize {
		oldest := c.lru.Back()
		c.lru.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}

	c.entries[key] = c.lru.PushFront(&cacheEntry{key: key, w: w, h: h})
}

// Len returns the number of cached measurements.
func (c *Cached) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Stats returns the number of cache hits and misses so far.
func (c *Cached) Stats() (hits, misses uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Clear removes all entries. Call it after registering new font data
// under an existing family.
func (c *Cached) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.entries)
	c.lru.Init()
}

// Close clears the cache and closes the wrapped measurer if it is an
// io.Closer.
func (c *Cached) Close() error {
	c.Clear()
	if cl, ok := c.next.(io.Closer); ok {
		return cl.Close()
	}
	return nil
}
