// Package balancer implements the dynamic load balancer (C9, spec.md
// §4.11): hands out irregular (low, segments, segment_size) grants to
// parallel D/A+C workers, growing grants while ramping up and shrinking
// them again near the end of the interval so no thread lags behind.
//
// Grounded on _examples/original_source/src/LoadBalancer.cpp /
// S2LoadBalancer.cpp for the two-phase ramp-up/steady-state policy and
// the mutex-guarded shared cursor, and on the teacher's worker-pool
// wiring (_examples/pchuck-infinite-series/golang/prime/primes.go's
// ParallelSegmentedSieve: channel-free here since grants are pulled
// on demand rather than pushed, but the same "one goroutine per worker,
// shared accumulator under a mutex" shape).
package balancer

import (
	"sync"
)

// Grant is what GetWork hands a worker: where to start, how many
// segments to process, and how big each one should be (spec.md §3
// ThreadSettings, minus the worker-private secs/init_secs fields which
// the worker reports back via Report).
type Grant struct {
	Low         int64
	Segments    int64
	SegmentSize int64
}

// Balancer hands out segments of [1, sieveLimit] to worker goroutines.
// Every exported method is safe for concurrent use.
type Balancer struct {
	mu sync.Mutex

	sieveLimit int64
	low        int64
	sum        int64 // nonzero once any worker has reported a partial sum
	rampedUp   bool

	segmentSize int64
	segments    int64

	l1CacheBytes int64
	statusFn     func(percent, remainingSecs float64)
	startTime    func() float64 // seconds since balancer construction; injectable for tests
	elapsed      float64
}

// New creates a balancer over [1, sieveLimit]. initialSegmentSize must
// be a multiple of 240 (the sieve's minimum granularity).
func New(sieveLimit, initialSegmentSize int64) *Balancer {
	if initialSegmentSize < 240 {
		initialSegmentSize = 240
	}
	return &Balancer{
		sieveLimit:   sieveLimit,
		low:          1,
		segmentSize:  initialSegmentSize,
		segments:     1,
		l1CacheBytes: 32 * 1024,
	}
}

// SetStatusFunc installs a callback invoked (under the balancer's lock,
// per spec.md §4.11 point 4) each time GetWork hands out a grant, with
// the percent estimate from the low cursor. The remainingSecs argument
// is always 0: the balancer keeps no wall-clock estimate of its own.
func (b *Balancer) SetStatusFunc(fn func(percent, remainingSecs float64)) {
	b.mu.Lock()
	b.statusFn = fn
	b.mu.Unlock()
}

// GetWork returns the next grant, or ok=false once low has advanced
// past sieveLimit (spec.md §4.11 point 3).
func (b *Balancer) GetWork() (Grant, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.low > b.sieveLimit {
		return Grant{}, false
	}

	g := Grant{Low: b.low, Segments: b.segments, SegmentSize: b.segmentSize}
	b.low += b.segments * b.segmentSize
	b.reportStatusLocked()
	return g, true
}

// Report feeds a completed grant's timing back to the balancer and
// folds its partial sum into the running total (spec.md §4.11 steps 1-2
// and "cross-thread accounting"). secs/initSecs are the worker's
// measured elapsed/init time for that grant. The balancer stays in
// ramp-up until the running sum first becomes nonzero.
func (b *Balancer) Report(partialSum int64, secs, initSecs float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.sum += partialSum
	if !b.rampedUp && b.sum != 0 {
		b.rampedUp = true
	}

	if !b.rampedUp {
		b.advanceRampUp()
		return
	}
	b.advanceSteadyState(secs, initSecs)
}

// Sum returns the accumulated partial sum across every completed grant.
func (b *Balancer) Sum() int64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sum
}

// advanceRampUp doubles segment_size on every return until the first
// nonzero partial sum appears, capped at max(sqrt(sieveLimit),
// L1CacheBytes*30) (spec.md §4.11 step 1).
func (b *Balancer) advanceRampUp() {
	cap1 := isqrt(b.sieveLimit)
	cap2 := b.l1CacheBytes * 30
	maxSize := cap1
	if cap2 > maxSize {
		maxSize = cap2
	}
	next := b.segmentSize * 2
	if next > maxSize {
		next = maxSize
	}
	b.segmentSize = roundUp(next, 240)
	b.segments = 1
}

// advanceSteadyState implements spec.md §4.11 step 2's factor/clamp
// arithmetic. percent is estimated from the low cursor, bounded away
// from 0 so remaining_secs never explodes (spec.md §9).
func (b *Balancer) advanceSteadyState(secs, initSecs float64) {
	const minSecs = 0.02

	percent := float64(b.low) / float64(b.sieveLimit) * 100
	if percent < 0.1 {
		percent = 0.1
	}
	if percent > 100 {
		percent = 100
	}

	totalElapsed := secs // per-thread elapsed is the best local estimate available without a shared wall clock
	remainingSecs := totalElapsed * (100/percent - 1) / 3

	denom := secs
	if minSecs > denom {
		denom = minSecs
	}
	factor := remainingSecs / denom

	initFactor := clamp(21600/initSecs, 50, 5000)
	if secs > initSecs*initFactor {
		factor = initSecs * initFactor / secs
	}

	if secs*factor < initSecs*20 {
		factor = initSecs * 20 / secs
	}

	factor = clamp(factor, 0.5, 2.0)

	if secs*factor < minSecs {
		b.segments *= 2
	} else {
		b.segments = int64(float64(b.segments)*factor + 0.5)
		if b.segments < 1 {
			b.segments = 1
		}
	}
}

func (b *Balancer) reportStatusLocked() {
	if b.statusFn == nil {
		return
	}
	percent := float64(b.low) / float64(b.sieveLimit) * 100
	if percent < 0.1 {
		percent = 0.1
	}
	if percent > 100 {
		percent = 100
	}
	b.statusFn(percent, b.elapsed)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func roundUp(x, m int64) int64 {
	return (x + m - 1) / m * m
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
