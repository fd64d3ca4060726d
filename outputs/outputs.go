// Package outputs memoizes bin log-likelihoods by their arguments.
package outputs

import (
	"fmt"
	"io"

	"go4.org/sort"
)

// Key identifies one bin log-likelihood computation.
type Key struct {
	Count1    int
	Count2    int
	Precision float64
}

func (k Key) String() string {
	return fmt.Sprintf("(%d, %d, %g)", k.Count1, k.Count2, k.Precision)
}

// Cache is an unbounded, append-only map from Key to log-likelihood.
// It is not safe for concurrent use; give each goroutine its own.
type Cache struct {
	m      map[Key]float64
	hits   int
	misses int
}

// New returns an empty Cache.
func New() *Cache {
	return &Cache{m: make(map[Key]float64, 256)}
}

// Get returns the stored value for k.
func (c *Cache) Get(k Key) (float64, bool) {
	v, ok := c.m[k]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Put stores v for k, replacing nothing: a stored key keeps its first value.
func (c *Cache) Put(k Key, v float64) {
	if _, ok := c.m[k]; !ok {
		c.m[k] = v
	}
}

// Len is the number of stored results.
func (c *Cache) Len() int { return len(c.m) }

// Stats reports how many lookups found and missed a stored result.
func (c *Cache) Stats() (hits, misses int) { return c.hits, c.misses }

// Keys returns the stored keys ordered by Count1, Count2 then Precision.
func (c *Cache) Keys() []Key {
	keys := make([]Key, 0, len(c.m))
	for k := range c.m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.Count1 != b.Count1 {
			return a.Count1 < b.Count1
		}
		if a.Count2 != b.Count2 {
			return a.Count2 < b.Count2
		}
		return a.Precision < b.Precision
	})
	return keys
}

// WriteTo writes one tab-separated line per stored result in Keys order.
func (c *Cache) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, k := range c.Keys() {
		m, err := fmt.Fprintf(w, "%d\t%d\t%g\t%.6f\n", k.Count1, k.Count2, k.Precision, c.m[k])
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
