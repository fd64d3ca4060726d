// Package factorials caches log(n) and log(n!) so that log-binomials and log terms of the
// exponential series cost a few lookups.
// A Cache only grows. It is not safe for concurrent use: BuildUpto appends in place.
package factorials

import (
	"fmt"
	"math"
)

// Cache holds log(n) for 1 <= n <= Max() and log(n!) for 0 <= n <= Max().
type Cache struct {
	// logN[0] is log(0) = -Inf so that logN[n] == log(n).
	logN    []float64
	logFact []float64
}

// New returns a Cache covering at least 0..maxN.
func New(maxN int) *Cache {
	c := &Cache{logN: []float64{math.Inf(-1), 0}, logFact: []float64{0, 0}}
	c.BuildUpto(maxN)
	return c
}

// Max is the largest n for which log(n!) is stored.
func (c *Cache) Max() int {
	return len(c.logFact) - 1
}

// BuildUpto extends the tables to cover n. It is a no-op if they already do.
func (c *Cache) BuildUpto(n int) {
	max := c.Max()
	if n <= max {
		return
	}
	// amortize growth over repeated small extensions.
	if cp := cap(c.logFact); cp < n+1 {
		size := 2 * cp
		if size < n+1 {
			size = n + 1
		}
		logN := make([]float64, len(c.logN), size)
		copy(logN, c.logN)
		logFact := make([]float64, len(c.logFact), size)
		copy(logFact, c.logFact)
		c.logN, c.logFact = logN, logFact
	}
	running := c.logFact[max]
	for i := max + 1; i <= n; i++ {
		l := math.Log(float64(i))
		running += l
		c.logN = append(c.logN, l)
		c.logFact = append(c.logFact, running)
	}
}

func (c *Cache) check(n int) {
	if n < 0 || n >= len(c.logFact) {
		panic(fmt.Sprintf("factorials: index %d out of range [0, %d]", n, c.Max()))
	}
}

// Log returns log(n) for 1 <= n <= Max(). Log(0) is -Inf.
func (c *Cache) Log(n int) float64 {
	c.check(n)
	return c.logN[n]
}

// LogFactorial returns log(n!) for 0 <= n <= Max().
func (c *Cache) LogFactorial(n int) float64 {
	c.check(n)
	return c.logFact[n]
}

// LogBinomial returns log((r+s) choose r). r+s must be covered by the cache.
func (c *Cache) LogBinomial(r, s int) float64 {
	return c.LogFactorial(r+s) - c.LogFactorial(r) - c.LogFactorial(s)
}

// LogExpSeriesTerm returns log(x^k / k!) given logX = log(x): the log of the k-th term of the
// Taylor series of exp(x). The k == 0 term is 0 even for x == 0.
func (c *Cache) LogExpSeriesTerm(logX float64, k int) float64 {
	if k == 0 {
		return 0
	}
	return float64(k)*logX - c.LogFactorial(k)
}

// ExpSeries returns log(x^k / k!) for 0 <= k < n, growing the cache as needed.
func (c *Cache) ExpSeries(x float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	c.BuildUpto(n - 1)
	logX := math.Log(x)
	series := make([]float64, n)
	for k := range series {
		series[k] = c.LogExpSeriesTerm(logX, k)
	}
	return series
}
