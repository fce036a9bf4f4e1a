package prime

import "math"

// Iterator yields primes through Next, ascending within a fixed [lo, hi]
// window (NewIterator) or descending from hi (NewDescendingIterator). It is the external "prime iterator" collaborator
// spec.md §2 (C3) calls out as out of core scope — a standard segmented
// sieve of Eratosthenes suffices, and that's exactly what SegmentedSieve
// already is. Iterator just adds a cursor on top of it, refilling its
// internal batch from SegmentedSieve as it's exhausted so callers never
// have to materialize the whole [lo, hi] range at once.
type Iterator struct {
	hi        int
	batch     []int
	batchNext int // next batch window start, ascending mode
	idx       int // index into batch, ascending mode

	// descending mode state
	desc       bool
	descWindow int
	descBuf    []int
	descIdx    int
}

const iteratorBatchSize = 1 << 20

// NewIterator returns an ascending iterator over primes in [lo, hi].
func NewIterator(lo, hi int) *Iterator {
	it := &Iterator{hi: hi, batchNext: lo}
	return it
}

// NewDescendingIterator returns an iterator yielding primes <= hi in
// descending order via Next.
func NewDescendingIterator(hi int) *Iterator {
	return &Iterator{hi: hi, desc: true, descWindow: hi + 1}
}

// Next returns the next prime in range, or ok=false when exhausted.
func (it *Iterator) Next() (int, bool) {
	if it.desc {
		return it.nextDescending()
	}
	for it.idx >= len(it.batch) {
		if it.batchNext > it.hi {
			return 0, false
		}
		high := it.batchNext + iteratorBatchSize
		if high > it.hi+1 {
			high = it.hi + 1
		}
		if high <= it.batchNext {
			return 0, false
		}
		it.batch = windowPrimes(it.batchNext, high)
		it.idx = 0
		it.batchNext = high
	}
	p := it.batch[it.idx]
	it.idx++
	return p, true
}

func (it *Iterator) nextDescending() (int, bool) {
	for it.descIdx <= 0 {
		if it.descWindow <= 2 {
			return 0, false
		}
		low := it.descWindow - iteratorBatchSize
		if low < 2 {
			low = 2
		}
		it.descBuf = windowPrimes(low, it.descWindow)
		it.descWindow = low
		it.descIdx = len(it.descBuf)
		if it.descIdx == 0 && low <= 2 {
			return 0, false
		}
	}
	it.descIdx--
	return it.descBuf[it.descIdx], true
}

// windowPrimes returns the primes in [low, high) using the same
// base-prime-sieve-then-strike approach as SegmentedSieve, but against an
// arbitrary (not necessarily zero-based) window.
func windowPrimes(low, high int) []int {
	if high <= low {
		return nil
	}
	baseLimit := isqrt(high-1) + 1
	basePrimes := SieveOfEratosthenes(baseLimit + 1)

	segLow := low
	if segLow < 2 {
		segLow = 2
	}
	if segLow >= high {
		return nil
	}
	segLen := high - segLow
	isPrime := make([]byte, segLen)
	for i := range isPrime {
		isPrime[i] = 1
	}

	for _, p := range basePrimes {
		start := ((segLow + p - 1) / p) * p
		if start < p*p {
			start = p * p
		}
		adjustedStart := start - segLow
		if adjustedStart >= segLen {
			continue
		}
		if adjustedStart < 0 {
			adjustedStart = 0
		}
		for j := adjustedStart; j < segLen; j += p {
			isPrime[j] = 0
		}
	}

	var primes []int
	for i := 0; i < segLen; i++ {
		if isPrime[i] == 1 {
			primes = append(primes, segLow+i)
		}
	}
	return primes
}

func isqrt(n int) int {
	if n < 0 {
		return 0
	}
	r := int(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}
