// Package hard implements the D(x,y) / S2_hard engine (C10, spec.md
// §4.8): the dominant "hard special leaves" term of both the
// Deleglise-Rivat and Gourdon formulas. It drives internal/sieve and
// internal/phi through internal/balancer's grants, the innermost loop
// of the whole library.
//
// Grounded on _examples/original_source/src/gourdon/D.cpp (the most
// recent D formula revision in the retrieval pack, per spec.md §9's
// "adopt the most recent version of each formula" resolution) for the
// two-loop (square-free / two-prime leaves) structure, and on
// internal/sieve + internal/phi for the primitives it composes.
package hard

import (
	"github.com/pchuck/primecount/internal/balancer"
	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/phi"
	"github.com/pchuck/primecount/internal/sieve"
)

// Params bundles the tuning cutoffs and shared read-only tables every
// worker needs (spec.md §3's "Tuning parameters" plus the shared
// PiTable/FactorTable/primes collaborators, spec.md §4.12).
type Params struct {
	X, Y, Z, XStar int64
	K              int // Gourdon's pi(x^(1/4))
	PP             phi.PrimeProvider
	Factor         *factortable.Table // indexed over [1, z]
}

// segmentWorker owns the per-thread state spec.md §4.12 requires: its
// own Sieve, phi-vector, PhiCache and wheel states, never shared.
type segmentWorker struct {
	p      Params
	cache  *phi.Cache
	states map[int64]*sieve.WheelState // keyed by prime b's value
}

func newWorker(p Params) *segmentWorker {
	return &segmentWorker{p: p, cache: phi.NewCache(p.PP), states: make(map[int64]*sieve.WheelState)}
}

// Compute runs the full D(x,y)/S2_hard summation over [1, z] using
// numWorkers goroutines coordinated by an internal/balancer.Balancer
// (spec.md §4.9's "partitioning" / §5's concurrency model). It returns
// the signed sum (spec.md §4.8's "unsigned accumulation, reinterpreted
// as signed at the end").
func Compute(p Params, numWorkers int) int64 {
	if numWorkers < 1 {
		numWorkers = 1
	}
	sieveLimit := p.Z
	if sieveLimit < 240 {
		sieveLimit = 240
	}
	bal := balancer.New(sieveLimit, 240*64)

	results := make(chan int64, numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			w := newWorker(p)
			var localSum int64
			for {
				grant, ok := bal.GetWork()
				if !ok {
					break
				}
				grantSum := w.processGrant(grant.Low, grant.Segments, grant.SegmentSize)
				localSum += grantSum
				bal.Report(grantSum, 1, 1) // wall-clock timing not modeled in this port
			}
			results <- localSum
		}()
	}

	var total int64
	for i := 0; i < numWorkers; i++ {
		total += <-results
	}
	return total
}

// processGrant walks every segment a single balancer grant covers
// (spec.md §4.9's "(low, segments, segment_size)"), re-basing the
// segment-local sieve once per segment exactly as the reference
// D_thread's `for (; low < limit; low += segment_size)` does, and
// returns the grant's total signed contribution.
func (w *segmentWorker) processGrant(low, segments, segmentSize int64) int64 {
	limit := low + segments*segmentSize
	var sum int64
	for ; low < limit; low += segmentSize {
		sum += w.processSegment(low, segmentSize)
	}
	return sum
}

// processSegment runs spec.md §4.8's per-segment algorithm over
// [low, low+size) and returns that segment's signed contribution.
func (w *segmentWorker) processSegment(low, size int64) int64 {
	high := low + size
	if high > w.p.Z {
		high = w.p.Z
	}
	if low >= high {
		return 0
	}
	segLow := roundDown(low, 240)
	segSize := roundUp(high-segLow, 240)

	s := sieve.New(segLow, segSize)

	lowPrime := segLow
	if lowPrime < 1 {
		lowPrime = 1
	}

	maxB := w.p.PP.Pi(min3(isqrt(w.p.X/lowPrime), isqrt(limitOf(w.p)), w.p.XStar))
	limit := limitOf(w.p)
	minB := w.p.PP.Pi(min64(w.p.X*int64(w.p.Z)/limit, w.p.XStar))
	if minB < int64(w.p.K) {
		minB = int64(w.p.K)
	}
	minB++

	if minB > maxB {
		return 0
	}

	// Pre-sieve and bring every prime b in (1, minB-1] into the sieve's
	// sieving set before the leaf loops start (spec.md §4.8 step 2).
	var preSievePrimes []int64
	for b := int64(2); b < minB; b++ {
		preSievePrimes = append(preSievePrimes, w.p.PP.Prime(int(b)))
	}
	states := s.PreSieve(preSievePrimes)
	for b := int64(2); b < minB; b++ {
		prime := w.p.PP.Prime(int(b))
		st := states[prime]
		w.states[prime] = &st
	}
	s.InitCounter()

	phiVec := phi.Vector(segLow, int(maxB), phi.MaxTinyA, w.cache)

	var sum int64
	sqrtZ := w.p.PP.Pi(isqrt(w.p.Z))

	// Loop A: square-free leaves, b in [minB, pi(sqrt(z))].
	for b := minB; b <= sqrtZ && b <= maxB; b++ {
		prime := w.p.PP.Prime(int(b))
		xp := w.p.X / prime
		minM := maxInt64(xp/high, w.p.Z/prime)
		maxM := minInt64(xp/(prime*prime), xp/lowPrime)
		if maxM > w.p.Z {
			maxM = w.p.Z
		}
		if prime >= maxM {
			w.finishPrime(s, prime, b, &phiVec)
			continue
		}

		minIdx := factortable.ToIndex(minM + 1)
		maxIdx := factortable.ToIndex(maxM)
		for idx := maxIdx; idx > minIdx; idx-- {
			leaf := w.p.Factor.IsLeaf(idx)
			if uint64(prime) < leaf {
				m := factortable.ToNumber(idx)
				xpm := xp / m
				cnt := s.CountStop(xpm - segLow)
				phiXpm := phiVec[b] + cnt
				sum -= int64(w.p.Factor.Mu(idx)) * phiXpm
			}
		}
		sum += w.finishPrime(s, prime, b, &phiVec)
	}

	// Loop B: two-prime leaves, b in (pi(sqrt(z)), maxB].
	start := sqrtZ + 1
	if start < minB {
		start = minB
	}
	for b := start; b <= maxB; b++ {
		prime := w.p.PP.Prime(int(b))
		xp := w.p.X / prime
		minM := maxInt64(xp/high, prime)
		maxM := minInt64(xp/(prime*prime), xp/lowPrime)
		if maxM > w.p.Y {
			maxM = w.p.Y
		}
		l := w.p.PP.Pi(maxM)
		for l > 0 && w.p.PP.Prime(int(l)) > minM {
			q := w.p.PP.Prime(int(l))
			xpq := xp / q
			sum += phiVec[b] + s.CountStop(xpq-segLow)
			l--
		}
		sum += w.finishPrime(s, prime, b, &phiVec)
	}

	return sum
}

// finishPrime folds the total unsieved count into phi[b] and strikes
// the prime out of the sieve going forward, per spec.md §4.8 steps 3/4's
// final two bullets (shared by both loops).
func (w *segmentWorker) finishPrime(s *sieve.Sieve, prime int64, b int64, phiVec *[]int64) int64 {
	(*phiVec)[b] += s.GetTotalCount()
	st, ok := w.states[prime]
	if !ok {
		n := s.Add(prime)
		st = &n
		w.states[prime] = st
	}
	s.CrossOffCount(prime, st)
	return 0
}

func limitOf(p Params) int64 {
	return p.X / p.Y
}

func roundDown(x, m int64) int64 { return x / m * m }
func roundUp(x, m int64) int64   { return (x + m - 1) / m * m }

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
func min64(a, b int64) int64 { return minInt64(a, b) }
func min3(a, b, c int64) int64 {
	return minInt64(a, minInt64(b, c))
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
