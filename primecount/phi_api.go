package primecount

import (
	"math"

	"github.com/pchuck/primecount/internal/phi"
)

// Phi computes phi(x, a): the count of integers in [1, x] coprime to
// the first a primes (spec.md §6 "phi(x, a)"). A fresh provider is
// built covering every value this single call can need: x itself (for
// pi(x) lookups the recursion falls back to) and a rough bound on
// prime_a so internal/phi.Cache can resolve Prime(a).
func Phi(x int64, a int) (int64, error) {
	if x < 0 {
		return 0, ErrRange
	}
	if a < 0 {
		return 0, ErrRange
	}
	if a == 0 {
		return x, nil
	}

	maxX := x
	if b := roughNthPrimeBound(a); b > maxX {
		maxX = b
	}
	pp, err := newProvider(maxX)
	if err != nil {
		return 0, err
	}
	cache := phi.NewCache(pp)
	return cache.Phi(x, a), nil
}

// roughNthPrimeBound over-estimates the a-th prime (for a >= 6, via
// p_a < a*(ln a + ln ln a) for a >= 6, Rosser's theorem) so a provider
// sized from it always has enough primes to answer Prime(a).
func roughNthPrimeBound(a int) int64 {
	if a < 6 {
		return 15
	}
	fa := float64(a)
	lnA := logf(fa)
	bound := fa * (lnA + logf(lnA))
	return int64(bound) + 10
}

func logf(x float64) float64 {
	if x < 1 {
		return 1
	}
	return math.Log(x)
}
