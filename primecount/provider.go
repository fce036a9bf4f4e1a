// Package primecount is the top-level pi(x) orchestrator (C13, spec.md
// §4.13): it derives the tuning parameters (y, z, alpha, x_star, c, k)
// from x, builds the shared read-only collaborators (PiTable, primes),
// dispatches to the Deleglise-Rivat or Gourdon formula, and checks the
// result against Li(x)'s Schoenfeld bound (spec.md §8 property 9); the
// outcome of that check does not change the returned value.
//
// Grounded on the teacher's top-level wiring style
// (_examples/pchuck-infinite-series/golang/cmd/primes/main.go's
// flag-driven dispatch to SieveOfEratosthenes / SegmentedSieve /
// ParallelSegmentedSieve depending on n) generalized to primecount's
// richer algorithm-selection logic (spec.md §3's tuning-parameter
// derivation, §6's public API).
package primecount

import (
	"github.com/pkg/errors"

	"github.com/pchuck/primecount/internal/pitable"
	"github.com/pchuck/primecount/prime"
)

// ErrRange is returned when x (or n, for nth_prime) exceeds the
// supported range for the chosen integer width (spec.md §7).
var ErrRange = errors.New("primecount: x exceeds the supported range")

// ErrAlloc is returned when a large shared table (PiTable, primes list)
// cannot be allocated (spec.md §7).
var ErrAlloc = errors.New("primecount: table allocation failed")

// provider implements internal/phi.PrimeProvider and is shared, by
// const reference, across every per-thread worker spawned for a single
// Pi call (spec.md §4.12's "PiTable, FactorTable, primes vector ...
// allocated once, shared by const reference").
type provider struct {
	primes []int64 // 1-indexed: primes[0] is unused, primes[1] == 2
	pi     *pitable.Table
}

// newProvider builds the shared prime/pi(x) collaborator covering every
// value this Pi(x) call's formula will query: maxX must be at least the
// largest argument ever passed to Pi() or Prime() during that call
// (callers size it from the derived y/z/x_star/sqrt(x) bounds).
func newProvider(maxX int64) (*provider, error) {
	if maxX < 10 {
		maxX = 10
	}
	pt, err := pitable.New(maxX)
	if err != nil {
		return nil, errors.Wrap(ErrAlloc, "pi table: "+err.Error())
	}

	rawPrimes := prime.GeneratePrimes(int(maxX)+1, maxX >= int64(prime.ParallelThreshold), nil)
	primes := make([]int64, len(rawPrimes)+1)
	for i, p := range rawPrimes {
		primes[i+1] = int64(p)
	}
	return &provider{primes: primes, pi: pt}, nil
}

// Prime returns the a-th prime, 1-indexed (internal/phi.PrimeProvider).
func (p *provider) Prime(a int) int64 {
	if a <= 0 || a >= len(p.primes) {
		return 0
	}
	return p.primes[a]
}

// Pi returns the number of primes <= x (internal/phi.PrimeProvider).
func (p *provider) Pi(x int64) int64 {
	if x < 0 {
		return 0
	}
	if x > p.pi.MaxCached() {
		x = p.pi.MaxCached()
	}
	return p.pi.Pi(x)
}

// NumPrimes returns how many primes are available via Prime
// (internal/phi.PrimeProvider).
func (p *provider) NumPrimes() int {
	return len(p.primes) - 1
}
