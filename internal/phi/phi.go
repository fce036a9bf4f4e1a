// Package phi implements the partial-sieve function phi(x, a) (C8,
// spec.md §4.7): phi-tiny's O(1) closed form for a <= 6, a recursive
// phi with a per-worker cache for larger a, and the phi-vector used to
// seed each D-engine segment.
//
// Grounded on _examples/original_source/src/PhiTiny.hpp (closed-form
// phi_tiny via primorial/totient/mod-table) and src/PhiCache.hpp (the
// recursive phi with a pi-table shortcut and a bounded cache) for shape;
// reimplemented rather than ported line-for-line since neither file's
// literal mod-table contents survived retrieval (only the two headers'
// signatures did, see _INDEX.md) — the closed form here is rebuilt from
// spec.md §4.7's description directly.
package phi

// MaxTinyA bounds the closed-form phi-tiny path. spec.md allows a <= 8;
// this port caps the precomputed mod-tables at a <= 6 (primorial 30030)
// to keep their combined size in the tens of KB instead of the ~10M
// entries a=7..8 would need; Cache.Phi takes the general recursive path
// for a in (6, 8] instead — a performance-only narrowing, still correct.
// Tiny itself clamps a to MaxTinyA.
const MaxTinyA = 6

var firstPrimes = [MaxTinyA]int64{2, 3, 5, 7, 11, 13}

var (
	primorial [MaxTinyA + 1]int64   // primorial[a] = product of first a primes
	totient   [MaxTinyA + 1]int64   // totient[a] = phi(primorial[a])
	modTable  [MaxTinyA + 1][]int32 // modTable[a][r] = #{1<=n<=r : gcd(n,primorial[a])=1}
)

func init() {
	primorial[0] = 1
	totient[0] = 1
	for a := 1; a <= MaxTinyA; a++ {
		p := firstPrimes[a-1]
		primorial[a] = primorial[a-1] * p
		totient[a] = totient[a-1] * (p - 1)
	}
	for a := 0; a <= MaxTinyA; a++ {
		modTable[a] = buildModTable(a)
	}
}

func buildModTable(a int) []int32 {
	n := primorial[a]
	mark := make([]bool, n)
	for i := 0; i < a; i++ {
		p := firstPrimes[i]
		for m := p; m < n; m += p {
			mark[m] = true
		}
	}
	table := make([]int32, n)
	var cnt int32
	for r := int64(1); r < n; r++ {
		if !mark[r] {
			cnt++
		}
		table[r] = cnt
	}
	return table
}

// Tiny computes phi(x, a) for a <= MaxTinyA via the closed form
// floor(x/pp_a)*totient(pp_a) + modTable[a][x mod pp_a] (spec.md §4.7).
func Tiny(x int64, a int) int64 {
	if x <= 0 {
		return 0
	}
	if a <= 0 {
		return x
	}
	if a > MaxTinyA {
		a = MaxTinyA
	}
	pp := primorial[a]
	q, r := x/pp, x%pp
	return q*totient[a] + int64(modTable[a][r])
}

// PrimeProvider gives the recursive phi the two external facts it needs:
// the ath prime (1-indexed) and pi(x). Both are read-only, shared
// across workers (internal.PiTable / the primes slice).
type PrimeProvider interface {
	Prime(a int) int64 // the a-th prime, 1-indexed; Prime(0) is unused
	Pi(x int64) int64
	NumPrimes() int
}

// Cache is a worker-local recursive-phi memoizer (spec.md §4.7's
// PhiCache): never shared between goroutines, bounded so it only caches
// results for "small enough" x to keep memory flat in the number of
// leaves processed rather than in x itself.
type Cache struct {
	pp    PrimeProvider
	limit int64
	data  map[cacheKey]int64
}

type cacheKey struct {
	a int
	x int64
}

// NewCache builds a worker-local phi cache. limit bounds which (x, a)
// pairs get memoized; spec.md §4.7 caps cache entries at
// min(x^(1/2.5), 65535) — this port uses a flat cap instead (65535),
// which is the dominant term for every x the D engine actually reaches
// its cache with (sub-segment-sized recursion targets).
func NewCache(pp PrimeProvider) *Cache {
	return &Cache{pp: pp, limit: 1<<16 - 1, data: make(map[cacheKey]int64)}
}

// Phi computes phi(x, a): the count of integers in [1, x] coprime to
// the first a primes.
func (c *Cache) Phi(x int64, a int) int64 {
	if x <= 0 {
		return 0
	}
	if a <= 0 {
		return x
	}
	if a <= MaxTinyA {
		return Tiny(x, a)
	}
	pa := c.pp.Prime(a)
	if x <= pa {
		return 1
	}
	if a+1 <= c.pp.NumPrimes() {
		pa1 := c.pp.Prime(a + 1)
		if x < pa1*pa1 {
			return c.pp.Pi(x) - int64(a) + 1
		}
	}

	cacheable := x <= c.limit
	key := cacheKey{a: a, x: x}
	if cacheable {
		if v, ok := c.data[key]; ok {
			return v
		}
	}

	result := c.Phi(x, MaxTinyA)
	for i := MaxTinyA + 1; i <= a; i++ {
		result -= c.Phi(x/c.pp.Prime(i), i-1)
	}

	if cacheable {
		c.data[key] = result
	}
	return result
}

// Vector computes phi[b] = phi(low-1, b) for b in [0, a], seeded from
// phi_tiny(low-1, c) and extended via phi[b] = phi[b-1] -
// phi(floor((low-1)/prime[b]), b-1) (spec.md §4.7's phi-vector,
// consumed by internal/hard to initialize each D-engine segment).
func Vector(low int64, a, c int, cache *Cache) []int64 {
	x := low - 1
	v := make([]int64, a+1)
	if c > a {
		c = a
	}
	for b := 0; b <= c; b++ {
		v[b] = cache.Phi(x, b)
	}
	for b := c + 1; b <= a; b++ {
		v[b] = v[b-1] - cache.Phi(x/cache.pp.Prime(b), b-1)
	}
	return v
}
