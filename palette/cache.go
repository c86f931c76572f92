package palette

import (
	"sync"

	"recolor/lab"
)

// Cache memoizes the palette mapping of exact 8-bit colors. It is safe for
// concurrent use. The lock only covers the map lookup and the map insert; two
// workers missing on the same key both compute the match and the later write
// wins.
type Cache struct {
	pal prepared

	mu      sync.RWMutex
	entries map[[3]uint8]lab.Lab
}

// NewCache returns an empty cache for p. p must not be empty.
func NewCache(p Palette) *Cache {
	return &Cache{
		pal:     p.prepared(),
		entries: make(map[[3]uint8]lab.Lab),
	}
}

// Match returns the color r, g, b maps to: its own lightness combined with
// the a and b of the closest palette entry.
func (c *Cache) Match(r, g, b uint8) lab.Lab {
	key := [3]uint8{r, g, b}

	c.mu.RLock()
	lc, ok := c.entries[key]
	c.mu.RUnlock()
	if ok {
		return lc
	}

	orig := lab.FromRGB(r, g, b)
	closest := c.pal[c.pal.index(lab.Prepare(orig))]
	lc = orig.WithChroma(closest.Lab)

	c.mu.Lock()
	c.entries[key] = lc
	c.mu.Unlock()

	return lc
}

// Len returns the number of distinct colors seen so far.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
