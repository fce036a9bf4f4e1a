package primecount

import (
	"math"
	"runtime"

	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/u128"
)

// gourdonCrossover is the x above which Gourdon's formula is preferred
// over Deleglise-Rivat by default (spec.md §9's "adopt the most recent
// version of each formula" resolution leaves the DR/Gourdon choice
// open for x where both apply; this repo follows the upstream
// primecount project's own empirical crossover, recorded as an Open
// Question decision in DESIGN.md).
const gourdonCrossover = 1e10

// smallXCutoff is the x below which the combinatorial machinery's
// tuning-parameter derivation (y, z, x_star all needing to be >= 1 and
// meaningfully separated) stops paying for itself; Legendre's direct
// phi-recursion formula handles these exactly instead.
const smallXCutoff = 100000

// Pi computes pi(x), the number of primes <= x, for x represented as a
// u128.U128 (spec.md §6). Values that fit in an int64 are delegated to
// the 64-bit combinatorial path (internal/hard, internal/easy,
// internal/aux); the genuine 128-bit arithmetic path through those
// engines' int64-typed hot loops is out of scope for this port (see
// DESIGN.md's Open Questions) — x beyond int64 range returns ErrRange.
func Pi(x u128.U128) (u128.U128, error) {
	return PiThreads(x, runtime.NumCPU())
}

// PiThreads is Pi with an explicit worker-count override (spec.md §6).
func PiThreads(x u128.U128, threads int) (u128.U128, error) {
	if !x.Fits64() {
		return u128.U128{}, ErrRange
	}
	xi := int64(x.Lo)
	if xi < 0 {
		return u128.U128{}, ErrRange
	}
	result, err := piInt64Threads(xi, threads)
	if err != nil {
		return u128.U128{}, err
	}
	return u128.From64(uint64(result)), nil
}

// PiInt64 is the convenience 64-bit entry point (spec.md §6).
func PiInt64(x int64) (int64, error) {
	return piInt64Threads(x, runtime.NumCPU())
}

func piInt64Threads(x int64, threads int) (int64, error) {
	if x < 0 {
		return 0, ErrRange
	}
	if x < 2 {
		return 0, nil
	}
	if threads < 1 {
		threads = 1
	}
	if x <= smallXCutoff {
		return Legendre(x)
	}
	useGourdon := float64(x) >= gourdonCrossover
	return piInt64Algo(x, threads, useGourdon)
}

// PiWithAlgo forces either the Gourdon (gourdon=true) or
// Deleglise-Rivat (gourdon=false) formula regardless of x's magnitude,
// matching cmd/primecount's --deleglise-rivat/--gourdon/--gourdon-64/
// --gourdon-128 flags (spec.md §6's CLI surface); --gourdon-64 and
// --gourdon-128 both select this same int64 Gourdon path. There is no
// 128-bit path: Pi/PiThreads return ErrRange once x exceeds int64 range.
func PiWithAlgo(x int64, threads int, gourdonAlgo bool) (int64, error) {
	if x < 0 {
		return 0, ErrRange
	}
	if x < 2 {
		return 0, nil
	}
	if threads < 1 {
		threads = 1
	}
	return piInt64Algo(x, threads, gourdonAlgo)
}

func piInt64Algo(x int64, threads int, useGourdon bool) (int64, error) {
	fx := float64(x)
	var t tuning
	if useGourdon {
		t = deriveGourdon(fx, 0, 0)
	} else {
		t = deriveDeleglisRivat(fx, 0)
	}

	maxX := maxI64(x, t.Z)
	maxX = maxI64(maxX, isqrt(x)+1)
	if t.XStar > 0 {
		maxX = maxI64(maxX, t.XStar)
	}
	pp, err := newProvider(maxX)
	if err != nil {
		return 0, err
	}

	ft := factortable.New(t.Z, t.Y)

	var result int64
	if useGourdon {
		result = gourdon(x, t, pp, ft, threads)
	} else {
		result = deleglisRivat(x, t, pp, ft, threads)
	}

	validateAgainstLi(x, result)
	return result, nil
}

// validateAgainstLi is a best-effort sanity check against Li(x)'s
// Schoenfeld bound (spec.md §8 property 9: |pi(x) - Li(x)| <
// sqrt(x)*ln(x)/(8*pi) for x >= 2657, under RH): it cannot repair a
// wrong result, and piInt64Algo discards its boolean: a result outside
// the bound is returned unchanged, with no error.
func validateAgainstLi(x, result int64) bool {
	if x < 2657 {
		return true
	}
	fx := float64(x)
	bound := math.Sqrt(fx) * math.Log(fx) / (8 * math.Pi)
	diff := math.Abs(float64(result) - Li(fx))
	return diff < bound*4 // generous slack: this repo's Li series is an approximation too
}
