// Legendre, Meissel, and Lehmer are the three historical pi(x) formulas
// spec.md §3's "Open Questions" resolution keeps alongside the two
// current top-level algorithms: smaller, direct-style fallbacks good
// for the CLI's --legendre/--meissel flags and the cross-check test
// harness spec.md §8 calls for ("compare all algorithm variants ...
// for x in random samples of [1, 10^9]; all must return the same
// value"). None of the three touch internal/sieve, internal/hard, or
// internal/easy — they're built directly from phi recursion (internal/
// phi) plus the aux package's P2/P3, exactly as their textbook
// definitions describe.
package primecount

import (
	"math"

	"github.com/pchuck/primecount/internal/aux"
	"github.com/pchuck/primecount/internal/phi"
)

// Legendre computes pi(x) = phi(x, a) + a - 1, a = pi(sqrt(x)).
func Legendre(x int64) (int64, error) {
	if x < 2 {
		return smallPi(x), nil
	}
	maxX := isqrt(x) + 1
	if maxX < x {
		maxX = x // phi's pi-table fallback still needs pi(x) reachable for small a
	}
	pp, err := newProvider(maxOf(maxX, x))
	if err != nil {
		return 0, err
	}
	a := pp.Pi(isqrt(x))
	cache := phi.NewCache(pp)
	return cache.Phi(x, int(a)) + a - 1, nil
}

// Meissel computes pi(x) = phi(x, a) + a - 1 - P2(x, a), a = pi(x^(1/3)).
func Meissel(x int64) (int64, error) {
	if x < 2 {
		return smallPi(x), nil
	}
	a3 := icbrt(x)
	maxX := maxOf(isqrt(x)+1, x)
	pp, err := newProvider(maxX)
	if err != nil {
		return 0, err
	}
	a := pp.Pi(a3)
	cache := phi.NewCache(pp)
	return cache.Phi(x, int(a)) + a - 1 - aux.P2(x, a, pp), nil
}

// Lehmer computes pi(x) = phi(x, a) + a - 1 - P2(x, a) - P3(x, a),
// a = pi(x^(1/4)).
func Lehmer(x int64) (int64, error) {
	if x < 2 {
		return smallPi(x), nil
	}
	a4 := int64(math.Pow(float64(x), 0.25))
	maxX := maxOf(isqrt(x)+1, x)
	pp, err := newProvider(maxX)
	if err != nil {
		return 0, err
	}
	a := pp.Pi(a4)
	cache := phi.NewCache(pp)
	return cache.Phi(x, int(a)) + a - 1 - aux.P2(x, a, pp) - aux.P3(x, a, pp), nil
}

func smallPi(x int64) int64 {
	if x < 2 {
		return 0
	}
	count := int64(0)
	for p := int64(2); p <= x; p++ {
		if isPrimeTrial(p) {
			count++
		}
	}
	return count
}

func isPrimeTrial(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func maxOf(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
