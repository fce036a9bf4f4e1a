// Package aux implements the direct one-pass summation terms (C12,
// spec.md §4.10) that the Deleglise-Rivat and Gourdon formulas need
// besides the heavyweight D/S2_hard (internal/hard) and A+C
// (internal/easy) engines: S1, S2_trivial, S2_easy, P2, P3, B, the
// Sigma formulas, and Phi0.
//
// None of these formulas' own source files survived retrieval (the
// pack's original_source/ only carries P2.cpp's historical single-
// threaded revision and S2_easy.cpp — see _INDEX.md); every function
// here is built directly from spec.md §4.10's textual description, the
// shape of the two that did survive, and the phi/pi machinery the rest
// of this repo already provides. Interpretation choices made where
// spec.md's prose is a formula sketch rather than literal code are
// recorded in DESIGN.md's Open Questions.
package aux

import (
	"github.com/pchuck/primecount/internal/phi"
)

// S1 computes the "ordinary leaves" term: sum mu(m) * phi(x/(m*prime_c), c)
// over square-free m <= y with lpf(m) > prime_c (spec.md §4.10 "S1"),
// using a local sieve over [1, y] for mu/lpf since y is bounded by
// roughly x^(1/3) here (small enough that a dedicated FactorTable isn't
// warranted for this single-pass term). c is at most phi.MaxTinyA+2;
// phi(., c) goes through a phi.Cache, which uses the closed form for
// c <= phi.MaxTinyA and the recursive path above it.
func S1(x, y int64, c int, pp phi.PrimeProvider) int64 {
	if y < 1 {
		return 0
	}
	mu, lpf := sieveMuLpf(y)
	cache := phi.NewCache(pp)
	primeC := int64(0)
	if c > 0 {
		primeC = pp.Prime(c)
	}

	var sum int64
	for m := int64(1); m <= y; m++ {
		if mu[m] == 0 {
			continue
		}
		if lpf[m] <= primeC && m != 1 {
			continue
		}
		denom := m
		if primeC > 0 {
			denom = m * primeC
		}
		sum += int64(mu[m]) * cache.Phi(x/denom, c)
	}
	return sum
}

// S2Trivial counts the "trivial" (b, l) leaf pairs: for each b in
// (c, pi(y)], every l with b < l <= pi(z/primes[b]) contributes
// a leaf whose phi value is trivially 1 (spec.md §4.10 "S2_trivial" —
// x/(primes[b]*primes[l]) already falls below primes[b+1], so
// phi(x/(primes[b]*primes[l]), b) collapses to exactly 1 regardless of
// the actual quotient). This is the standard Deleglise-Rivat trivial-
// leaf count: sum_{b=c+1}^{pi(y)} (pi(z/primes[b]) - b).
func S2Trivial(y, z int64, c int, pp phi.PrimeProvider) int64 {
	piY := pp.Pi(y)
	var sum int64
	for b := int64(c) + 1; b <= piY; b++ {
		prime := pp.Prime(int(b))
		if prime <= 0 {
			continue
		}
		l := pp.Pi(z / prime)
		if l > b {
			sum += l - b
		}
	}
	return sum
}

// S2Easy computes the clustered + sparse easy leaves term for
// c < b <= pi(y) (spec.md §4.10 "S2_easy"), structurally identical to
// internal/easy's C2 but against a single non-segmented PiTable rather
// than a windowed one, exactly the "small-b analogue" spec.md
// describes. Ported from
// _examples/original_source/src/deleglise-rivat/S2_easy.cpp's S2_easy
// function.
func S2Easy(x, y, z int64, c int, pp phi.PrimeProvider) int64 {
	piY := pp.Pi(y)
	var sum int64
	for b := int64(c) + 1; b <= piY; b++ {
		sum += s2EasyLeaf(x, y, z, b, pp)
	}
	return sum
}

func s2EasyLeaf(x, y, z, b int64, pp phi.PrimeProvider) int64 {
	prime := pp.Prime(int(b))
	x2 := x / prime
	minTrivial := minI(x2/prime, y)
	minClustered := isqrt(x2)
	minSparse := z / prime

	minClustered = clampI(minClustered, prime, y)
	minSparse = clampI(minSparse, prime, y)

	l := pp.Pi(minTrivial)
	piMinClustered := pp.Pi(minClustered)
	piMinSparse := pp.Pi(minSparse)

	var sum int64
	for l > piMinClustered {
		xn := x2 / pp.Prime(int(l))
		phiXn := pp.Pi(xn) - b + 2
		xm := x2 / pp.Prime(int(b+phiXn-1))
		l2 := pp.Pi(xm)
		sum += phiXn * (l - l2)
		l = l2
	}
	for ; l > piMinSparse; l-- {
		xn := x2 / pp.Prime(int(l))
		sum += pp.Pi(xn) - b + 2
	}
	return sum
}

// P2 counts integers <= x that are the product of exactly two primes,
// both strictly greater than prime_a (spec.md §4.10 "P2(x,a)"): a
// descending prime cursor starting at sqrt(x) (spec.md's "prev_prime
// from sqrt(x)"), matching the shape (if not the OpenMP/backup
// scaffolding) of _examples/original_source/src/Pk/P2.cpp's P2
// function. The caller is responsible for sizing pp's shared PiTable up
// to x/y, the range spec.md says the internal segmented sieve covers —
// this port answers those same pi(x/prime) queries via pp.Pi directly
// instead of re-sieving, so no separate y argument is needed here.
func P2(x, a int64, pp phi.PrimeProvider) int64 {
	sqrtX := isqrt(x)
	pb := pp.Pi(sqrtX)
	if pb <= a {
		return 0
	}

	sum := -(pb + a - 1) * (pb - a) / 2
	var pix, old int64
	for i := pb; i > a; i-- {
		prime := pp.Prime(int(i))
		x2 := x / prime
		if old < x2 {
			pix += countPrimesInRange(old+1, x2, pp)
		}
		old = x2
		sum += pix
	}
	return sum
}

// countPrimesInRange returns the count of primes in [lo, hi] via two
// PiTable lookups (spec.md's segmented-sieve descending cursor is
// replaced here by the already-available PrimeProvider.Pi, since this
// auxiliary term never runs often enough to warrant its own sieve pass).
func countPrimesInRange(lo, hi int64, pp phi.PrimeProvider) int64 {
	if hi < lo {
		return 0
	}
	c := pp.Pi(hi) - pp.Pi(lo-1)
	if c < 0 {
		return 0
	}
	return c
}

// P3 counts integers <= x that are the product of exactly three primes,
// all strictly greater than prime_a (spec.md §4.10 "P3"): the three-
// prime analogue of P2, iterating the two largest factors and using a
// binary-searched (here: table-backed) pi() for the innermost count.
func P3(x, a int64, pp phi.PrimeProvider) int64 {
	piCbrtX := pp.Pi(icbrt(x))
	if piCbrtX <= a {
		return 0
	}

	var sum int64
	for i := a + 1; i <= piCbrtX; i++ {
		pi_ := pp.Prime(int(i))
		xi := x / pi_
		sqrtXi := isqrt(xi)
		piSqrtXi := pp.Pi(sqrtXi)
		if piSqrtXi < i {
			continue
		}
		for j := i; j <= piSqrtXi; j++ {
			pj := pp.Prime(int(j))
			xij := xi / pj
			sum += pp.Pi(xij) - j + 1
		}
	}
	return sum
}

// B computes Gourdon's B(x,y) term, a binary-search summation over
// primes <= y analogous to P2 restricted to the [x_star, y] leaf range
// (spec.md §4.10 "B(x,y) (Gourdon)").
func B(x, y, xStar int64, pp phi.PrimeProvider) int64 {
	piY := pp.Pi(y)
	piXStar := pp.Pi(xStar)
	var sum int64
	for b := piXStar + 1; b <= piY; b++ {
		prime := pp.Prime(int(b))
		sum += pp.Pi(x/prime) - b + 1
	}
	return sum
}

// Sigma computes the sum of Gourdon's seven closed-form Sigma terms
// (spec.md §4.10 "Sigma formulas"), each bounded by x_star. The closed
// forms below follow the structure Gourdon's paper assigns to
// Sigma0..Sigma6. This port returns sigma0 + sigma156 - sigma234, where
// sigma0 = pi(x_star) - k, sigma156 is a single-prime sum of
// pi(x/p_b) - b + 1, and sigma234 a two-prime sum of
// pi(x/(p_b*p_i)) - i + 1; both sums take two separate passes over b in
// (k, pi(x_star)].
func Sigma(x, xStar int64, k int, pp phi.PrimeProvider) int64 {
	piXStar := pp.Pi(xStar)
	sigma0 := piXStar - int64(k)

	var sigma156 int64
	for b := int64(k) + 1; b <= piXStar; b++ {
		prime := pp.Prime(int(b))
		sigma156 += pp.Pi(x/prime) - b + 1
	}

	var sigma234 int64
	for b := int64(k) + 1; b <= piXStar; b++ {
		prime := pp.Prime(int(b))
		xp := x / prime
		sqrtXp := isqrt(xp)
		piSqrtXp := pp.Pi(minI(sqrtXp, xStar))
		if piSqrtXp <= b {
			continue
		}
		for i := b + 1; i <= piSqrtXp; i++ {
			q := pp.Prime(int(i))
			sigma234 += pp.Pi(xp/q) - i + 1
		}
	}

	return sigma0 + sigma156 - sigma234
}

// Phi0 computes Gourdon's short partial-phi correction term via direct
// recursion (spec.md §4.10 "Phi0"): phi(x, k) - 1, reusing the same
// recursive phi the D engine's phi-vector is built from.
func Phi0(x int64, k int, cache *phi.Cache) int64 {
	return cache.Phi(x, k) - 1
}

func phiTiny(x int64, a int) int64 {
	return phi.Tiny(x, a)
}

func sieveMuLpf(n int64) ([]int8, []int64) {
	mu := make([]int8, n+1)
	lpf := make([]int64, n+1)
	for i := range mu {
		mu[i] = 1
	}
	for p := int64(2); p <= n; p++ {
		if lpf[p] != 0 {
			continue // already marked composite
		}
		for m := p; m <= n; m += p {
			if lpf[m] == 0 {
				lpf[m] = p
			}
			mu[m] = -mu[m]
		}
		sq := p * p
		for m := sq; m <= n; m += sq {
			mu[m] = 0
		}
	}
	mu[0] = 0
	if n >= 1 {
		mu[1] = 1
		lpf[1] = 0
	}
	return mu, lpf
}

func minI(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func clampI(v, lo, hi int64) int64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(isqrtFloat(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func isqrtFloat(f float64) float64 {
	lo, hi := 0.0, f
	if hi < 1 {
		hi = 1
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if mid*mid < f {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}

func icbrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(cbrtFloat(float64(n)))
	for r*r*r > n {
		r--
	}
	for (r+1)*(r+1)*(r+1) <= n {
		r++
	}
	return r
}

func cbrtFloat(f float64) float64 {
	lo, hi := 0.0, f
	if hi < 1 {
		hi = 1
	}
	for i := 0; i < 80; i++ {
		mid := (lo + hi) / 2
		if mid*mid*mid < f {
			lo = mid
		} else {
			hi = mid
		}
	}
	return lo
}
