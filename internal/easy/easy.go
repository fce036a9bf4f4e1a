// Package easy implements the merged A(x,y) + C(x,y) engine (C11,
// spec.md §4.9): the "easy special leaves" term of Gourdon's formula
// (the Deleglise-Rivat path uses internal/aux.S2Easy instead), reducing memory from O(sqrt(x))
// to O(z) by walking a SegmentedPiTable window instead of materializing
// a full pi(x) table up to sqrt(x).
//
// Grounded directly on _examples/original_source/src/gourdon/AC.cpp: the
// C1 recursive square-free enumeration, the C2 clustered/sparse
// easy-leaf split, and the A two-prime-leaf loop are all ported from
// that file's C1/C2/A functions (the backup/resume/status-printing
// machinery around them is external scope per spec.md §1 and is
// dropped). Uses internal/segpitable for the windowed pi(x) lookup and
// internal/phi.PrimeProvider for the shared prime/pi(x) collaborators.
package easy

import (
	"github.com/pchuck/primecount/internal/phi"
	"github.com/pchuck/primecount/internal/segpitable"
)

// Params bundles the tuning cutoffs and shared read-only prime/pi(x)
// collaborator every A+C worker needs (spec.md §3).
type Params struct {
	X, Y, Z, XStar int64
	K              int
	PP             phi.PrimeProvider // must answer Pi(x) for x up to sqrt(X)
}

// Compute runs the full A(x,y) + C(x,y) summation (spec.md §4.9) using
// numWorkers goroutines. Both the C1 pass and the segmented A/C2 pass
// are data-parallel over b; the segmented pi(x) window advances behind
// a barrier between segments, exactly as spec.md §4.9's "Partitioning"
// paragraph describes.
func Compute(p Params, numWorkers int) int64 {
	if numWorkers < 1 {
		numWorkers = 1
	}
	pp := p.PP

	x13 := icbrt(p.X)
	piY := pp.Pi(p.Y)
	piSqrtZ := pp.Pi(isqrt(p.Z))
	piXStar := pp.Pi(p.XStar)
	piRoot3XY := pp.Pi(icbrt(p.X / p.Y))
	piRoot3XZ := pp.Pi(icbrt(p.X / p.Z))

	minB := maxI(int64(p.K), piRoot3XZ) + 1

	var sum int64

	// 1st part of the C formula: k < b <= pi(sqrt(z)), no segmentation
	// needed since every leaf here resolves against the full-range
	// PiTable (spec.md §4.9 "C1").
	sum -= parallelSum(minB, piSqrtZ, numWorkers, func(b int64) int64 {
		prime := pp.Prime(int(b))
		xp := p.X / prime
		maxM := minI(xp/prime, p.Z)
		minM128 := maxI(p.X/(prime*prime*prime), p.Z/prime)
		minM := minI(minM128, maxM)
		return c1(xp, b, b, piY, 1, minM, maxM, pp, -1)
	})

	// Main segmented pass: A and the 2nd part of C, walked across
	// [0, sqrt(x)] in SegmentedPiTable windows of width align128(y).
	sqrtX := isqrt(p.X)
	width := segpitable.AlignTo128(p.Y)
	low := int64(0)
	high := width
	if high > sqrtX+1 {
		high = sqrtX + 1
	}
	seg := segpitable.New(low, high, 0)

	for low <= sqrtX {
		lowEff := maxI(low, 1)
		xDivLow := p.X / lowEff
		xDivHigh := p.X
		if high > 0 {
			xDivHigh = p.X / high
		}

		winMinB := maxI3(int64(p.K), piSqrtZ, piRoot3XY)
		winMinB = maxI(winMinB, pp.Pi(isqrt(lowEff)))
		winMinB = maxI(winMinB, pp.Pi(minI(xDivHigh/p.Y, p.XStar)))
		winMinB = minI(winMinB, piXStar) + 1

		sqrtLow := minI(isqrt(xDivLow), x13)
		winMaxB := pp.Pi(sqrtLow)
		winMaxB = maxI(winMaxB, piXStar)

		segPi := seg
		sum += parallelSum(winMinB, winMaxB, numWorkers, func(b int64) int64 {
			if b <= piXStar {
				return c2(p.X, p.Y, b, xDivLow, xDivHigh, pp, segPi)
			}
			return aTerm(p.X, p.Y, b, xDivHigh, xDivLow, pp, segPi)
		})

		if seg.High() > sqrtX {
			break
		}
		seg.Next()
		low = seg.Low()
		high = seg.High()
	}

	return sum
}

// c1 recursively enumerates square-free m coprime to the first b
// primes, with lpf(m) > primes[b] and m <= max_m, accumulating
// mu(m) * (pi(xp/m) - b + 2) for every m > min_m (spec.md §4.9 "C1",
// ported from AC.cpp's templated C1<MU> function; mu is threaded as a
// runtime parameter instead of a template argument, alternating sign
// at each recursion level exactly as the original's `C1<-MU>` does).
func c1(xp, b, i, piY, m, minM, maxM int64, pp phi.PrimeProvider, mu int64) int64 {
	var sum int64
	for i++; i <= piY; i++ {
		m2 := m * pp.Prime(int(i))
		if m2 > maxM {
			return sum
		}
		if m2 > minM {
			xpm := xp / m2
			sum += mu * (pp.Pi(xpm) - b + 2)
		}
		sum += c1(xp, b, i, piY, m2, minM, maxM, pp, -mu)
	}
	return sum
}

// c2 computes the 2nd part of the C formula for pi(sqrt(z)) < b <=
// pi(x_star): clustered easy leaves (successive identical contributions
// collapsed into one multiply) followed by sparse easy leaves (spec.md
// §4.9 "C2 sub-loop"), ported from AC.cpp's C2 function.
func c2(x, y, b, xDivLow, xDivHigh int64, pp phi.PrimeProvider, segPi *segpitable.Table) int64 {
	prime := pp.Prime(int(b))
	xp := x / prime
	var sum int64

	maxM := minI3(xDivLow/prime, xp/prime, y)
	minM128 := maxI3(xDivHigh/prime, x/(prime*prime*prime), prime)
	minM := minI(minM128, maxM)

	i := pp.Pi(maxM)
	piMinM := pp.Pi(minM)
	minClustered := clampI(isqrt(xp), minM, maxM)
	piMinClustered := pp.Pi(minClustered)

	for i > piMinClustered {
		xpq := xp / pp.Prime(int(i))
		phiXpq := segPi.Pi(xpq) - b + 2
		xpq2 := xp / pp.Prime(int(b+phiXpq-1))
		i2 := segPi.Pi(xpq2)
		sum += phiXpq * (i - i2)
		i = i2
	}

	for ; i > piMinM; i-- {
		xpq := xp / pp.Prime(int(i))
		sum += segPi.Pi(xpq) - b + 2
	}

	return sum
}

// aTerm computes the A formula for pi(x_star) < b <= pi(x^(1/3)): two-
// prime leaves with the second prime <= sqrt(xp), doubling the
// contribution once the second prime drops below y (spec.md §4.9 "A
// sub-loop"), ported from AC.cpp's A function. xDivHigh/xDivLow are
// passed in the same order AC.cpp's A() takes them (x/high then x/low).
func aTerm(x, y, b, xDivHigh, xDivLow int64, pp phi.PrimeProvider, segPi *segpitable.Table) int64 {
	prime := pp.Prime(int(b))
	xp := x / prime
	var sum int64

	sqrtXp := isqrt(xp)
	min2nd := minI(xDivHigh/prime, sqrtXp)
	i := pp.Pi(min2nd)
	i = maxI(i, b) + 1
	max2nd := minI(xDivLow/prime, sqrtXp)
	maxI_ := pp.Pi(max2nd)

	for ; i <= maxI_; i++ {
		xpq := xp / pp.Prime(int(i))
		if xpq < y {
			break
		}
		sum += segPi.Pi(xpq)
	}
	for ; i <= maxI_; i++ {
		xpq := xp / pp.Prime(int(i))
		sum += segPi.Pi(xpq) * 2
	}

	return sum
}

// parallelSum evaluates fn(b) for every b in [from, to] across
// numWorkers goroutines and returns the sum of all results (spec.md
// §4.9's "trivially data-parallel over b").
func parallelSum(from, to int64, numWorkers int, fn func(b int64) int64) int64 {
	if from > to {
		return 0
	}
	n := to - from + 1
	if int64(numWorkers) > n {
		numWorkers = int(n)
	}
	if numWorkers < 1 {
		numWorkers = 1
	}

	results := make(chan int64, numWorkers)
	chunk := (n + int64(numWorkers) - 1) / int64(numWorkers)
	for w := 0; w < numWorkers; w++ {
		lo := from + int64(w)*chunk
		hi := lo + chunk - 1
		if hi > to {
			hi = to
		}
		go func(lo, hi int64) {
			var local int64
			for b := lo; b <= hi; b++ {
				local += fn(b)
			}
			results <- local
		}(lo, hi)
	}

	var total int64
	for w := 0; w < numWorkers; w++ {
		total += <-results
	}
	return total
}

func minI(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
func maxI(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
func minI3(a, b, c int64) int64 { return minI(a, minI(b, c)) }
func maxI3(a, b, c int64) int64 { return maxI(a, maxI(b, c)) }
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
