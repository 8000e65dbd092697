package source

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
)

type cacheKey struct {
	path string
	line int
}

// Cache memoizes snippets so paging back and forth through findings does
// not re-read and re-highlight the same file window.
type Cache struct {
	radius  int
	entries *lru.Cache[cacheKey, *Snippet]
	read    func(path string, focus, radius int) (*Snippet, error)
}

// NewCache returns a cache holding up to size snippets of the given radius.
func NewCache(size, radius int) (*Cache, error) {
	entries, err := lru.New[cacheKey, *Snippet](size)
	if err != nil {
		return nil, fmt.Errorf("creating snippet cache: %w", err)
	}
	return &Cache{radius: radius, entries: entries, read: Read}, nil
}

// Get returns the snippet centred on line of path. Read errors are not cached.
func (c *Cache) Get(path string, line int) (*Snippet, error) {
	key := cacheKey{path: path, line: line}
	if snip, ok := c.entries.Get(key); ok {
		return snip, nil
	}

	snip, err := c.read(path, line, c.radius)
	if err != nil {
		return nil, err
	}
	c.entries.Add(key, snip)
	return snip, nil
}

// Len returns the number of cached snippets.
func (c *Cache) Len() int {
	return c.entries.Len()
}
