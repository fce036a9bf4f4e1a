// Package sieve implements the segmented wheel-30 bit sieve (C7, spec.md
// §4.6), the innermost hot loop of the D/S2_hard and auxiliary engines:
// a byte-packed array (8 bits per 30 integers, internal/bitsieve240's
// layout) that strikes multiples of primes via wheel factorization while
// maintaining a running count of unsieved bits through a two-level
// counter array.
//
// Grounded on _examples/original_source/src/Sieve.{hpp,cpp} for the
// overall shape (pre_sieve/cross_off/count(stop) contract, counter
// array, total_count bookkeeping) and on the teacher's SegmentedSieve
// (_examples/pchuck-infinite-series/golang/prime/primes.go) for the
// "reusable byte buffer, strike base primes" segment-processing style.
//
// The original strikes each prime's multiples via a 64-entry unrolled
// switch over wheel states (one case per residue-pair, §4.6 "Cross-off
// operation"). This port replaces that with the mathematically
// equivalent internal/bitsieve240.WheelGap30 gap table: since every
// sieving prime here is coprime to 30, its wheel-30-valid multiples are
// exactly p*k for k ranging over the integers coprime to 30, and the
// gaps between consecutive such k are the fixed 8-entry cycle
// {6,4,2,4,2,4,6,2}. Both encode the identical cross-off sequence; the
// switch-based original only exists to avoid a per-bit modulo in C++.
package sieve

import (
	"math"

	"github.com/pchuck/primecount/internal/bitsieve240"
	"github.com/pchuck/primecount/internal/popcount"
)

// WheelState tracks, for one sieving prime, the next value (absolute,
// not segment-relative) to strike and which of the 8 wheel-30 residues
// it currently sits on. It persists across segments for a given prime.
type WheelState struct {
	Multiple int64
	Idx      int
}

// Sieve covers the half-open interval [low, low+size). low must be a
// multiple of 240 (spec.md requires only a multiple of 30; this port
// tightens that to 240 so every word-level popcount aligns with
// internal/bitsieve240's mod-240 masks without per-segment byte-order
// bookkeeping — always true in practice here since low only ever
// advances by segment_size, itself a multiple of 240, starting from 0).
type Sieve struct {
	low, high int64
	bytes     []byte

	counterDist int64 // value-space width of one counter cell (multiple of 240)
	counter     []int64
	totalCount  int64

	// cursor state for CountStop, reset at the start of each segment.
	counterIdx int
	counterSum int64
}

// New allocates a sieve for [low, low+segmentSize). segmentSize is
// rounded up to a multiple of 240.
func New(low, segmentSize int64) *Sieve {
	if low%240 != 0 {
		panic("sieve: low must be a multiple of 240")
	}
	if segmentSize < 240 {
		segmentSize = 240
	}
	segmentSize = roundUp(segmentSize, 240)

	s := &Sieve{
		low:   low,
		high:  low + segmentSize,
		bytes: make([]byte, segmentSize/30),
	}
	s.initCounterDist()
	return s
}

func roundUp(x, m int64) int64 {
	return (x + m - 1) / m * m
}

// Reset re-bases the sieve onto a new segment [low, low+size), where
// size is the previous segment's size (segment size may grow across
// calls; pass a fresh size via Resize first if it changed).
func (s *Sieve) Reset(low int64) {
	if low%240 != 0 {
		panic("sieve: low must be a multiple of 240")
	}
	s.low = low
	s.high = low + int64(len(s.bytes))*30
	for i := range s.bytes {
		s.bytes[i] = 0
	}
	s.initCounterDist()
}

// Resize grows (or shrinks) the sieve's byte buffer to match a new
// segment size, used by the load balancer when segment_size changes
// between grants (spec.md §4.11).
func (s *Sieve) Resize(segmentSize int64) {
	segmentSize = roundUp(segmentSize, 240)
	nBytes := int(segmentSize / 30)
	if cap(s.bytes) >= nBytes {
		s.bytes = s.bytes[:nBytes]
	} else {
		s.bytes = make([]byte, nBytes)
	}
	s.high = s.low + segmentSize
	s.initCounterDist()
}

func (s *Sieve) initCounterDist() {
	// counter.dist ~= round_pow2(sqrt(low * 240 * bytesPerPopcountWord)),
	// bounded by the sieve size (spec.md §3 "counter.dist"). This is a
	// throughput tuning knob only; any power-of-two multiple of 240
	// bytes-worth keeps count(stop) correct, just changes how much
	// residual popcounting each call does.
	const bytesPerPopcountWord = 8
	low := s.low
	if low < 1 {
		low = 1
	}
	approx := math.Sqrt(float64(low) * 240 * bytesPerPopcountWord)
	dist := nextPow2(int64(approx))
	if dist < 240 {
		dist = 240
	}
	sieveSize := int64(len(s.bytes)) * 30
	if dist > sieveSize {
		dist = sieveSize
	}
	dist = roundUp(dist, 240)
	s.counterDist = dist
}

func nextPow2(x int64) int64 {
	if x < 1 {
		return 1
	}
	p := int64(1)
	for p < x {
		p <<= 1
	}
	return p
}

// Low, High report the sieve's current absolute bounds.
func (s *Sieve) Low() int64  { return s.low }
func (s *Sieve) High() int64 { return s.high }
func (s *Sieve) Size() int64 { return int64(len(s.bytes)) * 30 }

// PreSieve fills the sieve with 1s and then crosses off every prime in
// primes (expected to be the sieving primes <= some small cutoff c,
// spec.md's "pre-sieved multiples of primes <= 37"), each starting fresh
// from this segment's low bound. Returns the per-prime wheel state so
// the caller can keep striking these same primes (via CrossOffCount) in
// later segments once they become part of the D engine's "added" set.
//
// The original pre-sieves via AND-ing three precomputed tiled byte
// arrays for {7,11,13}, {17,19,23}, {29,31,37} (spec.md §4.6); this port
// cross-off each prime directly with the same wheel-30 stepping used
// everywhere else instead of maintaining those separate tiled tables —
// identical resulting bitmap, slower by a constant factor.
func (s *Sieve) PreSieve(primes []int64) map[int64]WheelState {
	for i := range s.bytes {
		s.bytes[i] = 0xFF
	}
	states := make(map[int64]WheelState, len(primes))
	for _, p := range primes {
		st := s.add(p)
		s.CrossOff(p, &st)
		states[p] = st
	}
	return states
}

// Add computes the initial WheelState for a sieving prime p first
// encountered at this segment (spec.md §4.6 "Adding a sieving prime"):
// the first multiple of p, coprime to {2,3,5}, strictly greater than the
// sieve's low bound.
func (s *Sieve) Add(p int64) WheelState {
	return s.add(p)
}

func (s *Sieve) add(p int64) WheelState {
	k := s.low/p + 1
	m := p * k
	for {
		r := m % 30
		if idx := bitsieve240.ByteBitIndex[r]; idx >= 0 {
			return WheelState{Multiple: m, Idx: int(idx)}
		}
		m += p
	}
}

// CrossOff strikes every wheel-30 multiple of p from Multiple onward
// that falls inside [low, high), without touching the counter array
// (spec.md §4.6's non-counting cross_off, used during pre-sieving).
func (s *Sieve) CrossOff(p int64, st *WheelState) {
	for st.Multiple < s.high {
		local := st.Multiple - s.low
		byteIdx := local / 30
		bit := byte(1) << uint(st.Idx)
		s.bytes[byteIdx] &^= bit
		st.Multiple += p * int64(bitsieve240.WheelGap30[st.Idx])
		st.Idx = (st.Idx + 1) % 8
	}
}

// CrossOffCount is CrossOff's counting variant: every bit actually
// cleared also decrements its counter cell and the running total_count
// (spec.md §4.6's cross_off_count, consumed by the D engine after each
// prime's leaf loop). It finishes by resetting the CountStop cursor
// (spec.md §4.2's reset_counter, called here exactly as the reference's
// cross_off_count does): the next prime's leaf loop always starts its
// count(stop) sequence from a small stop again, so a cursor left
// wherever the previous prime's walk stopped would answer with a stale,
// inflated counterSum.
func (s *Sieve) CrossOffCount(p int64, st *WheelState) {
	distBytes := s.counterDist / 30
	for st.Multiple < s.high {
		local := st.Multiple - s.low
		byteIdx := local / 30
		bit := byte(1) << uint(st.Idx)
		if s.bytes[byteIdx]&bit != 0 {
			s.bytes[byteIdx] &^= bit
			cell := byteIdx / distBytes
			s.counter[cell]--
			s.totalCount--
		}
		st.Multiple += p * int64(bitsieve240.WheelGap30[st.Idx])
		st.Idx = (st.Idx + 1) % 8
	}
	s.ResetCursor()
}

// InitCounter rebuilds the counter array and total_count by popcounting
// the current sieve contents (spec.md §4.6's init_counter), and resets
// the CountStop cursor. Call once per segment after pre-sieving and
// before the first CountStop of that segment.
func (s *Sieve) InitCounter() {
	distBytes := s.counterDist / 30
	nCells := (int64(len(s.bytes)) + distBytes - 1) / distBytes
	if cap(s.counter) >= int(nCells) {
		s.counter = s.counter[:nCells]
	} else {
		s.counter = make([]int64, nCells)
	}
	var total int64
	for i := range s.counter {
		lo := int64(i) * distBytes
		hi := lo + distBytes
		if hi > int64(len(s.bytes)) {
			hi = int64(len(s.bytes))
		}
		c := int64(popcountBytes(s.bytes[lo:hi]))
		s.counter[i] = c
		total += c
	}
	s.totalCount = total
	s.counterIdx = 0
	s.counterSum = 0
}

func popcountBytes(b []byte) int {
	total := 0
	i := 0
	for ; i+8 <= len(b); i += 8 {
		total += popcount.Count64(bitsieve240.WordAt(b, i/8))
	}
	for ; i < len(b); i++ {
		total += popcount.Count64(uint64(b[i]))
	}
	return total
}

// ResetCursor rewinds the CountStop cursor to the start of the current
// segment without rebuilding the counter array (used when a caller needs
// to re-scan a segment, e.g. tests).
func (s *Sieve) ResetCursor() {
	s.counterIdx = 0
	s.counterSum = 0
}

// GetTotalCount returns the running count of unsieved bits across the
// whole current segment.
func (s *Sieve) GetTotalCount() int64 { return s.totalCount }

// rangeCount counts set bits for local (low-relative) offsets in
// [startLocal, stopLocal], inclusive, stateless.
func (s *Sieve) rangeCount(startLocal, stopLocal int64) int64 {
	if stopLocal < startLocal {
		return 0
	}
	startWord := startLocal / 240
	stopWord := stopLocal / 240
	rStart := startLocal % 240
	rStop := stopLocal % 240

	if startWord == stopWord {
		w := bitsieve240.WordAt(s.bytes, int(startWord))
		w &= bitsieve240.UnsetSmaller[rStart] & bitsieve240.UnsetLarger[rStop]
		return int64(popcount.Count64(w))
	}

	headW := bitsieve240.WordAt(s.bytes, int(startWord)) & bitsieve240.UnsetSmaller[rStart]
	total := int64(popcount.Count64(headW))
	for wi := startWord + 1; wi < stopWord; wi++ {
		total += int64(popcount.Count64(bitsieve240.WordAt(s.bytes, int(wi))))
	}
	tailW := bitsieve240.WordAt(s.bytes, int(stopWord)) & bitsieve240.UnsetLarger[rStop]
	total += int64(popcount.Count64(tailW))
	return total
}

// Count counts set bits in the absolute half-open-inclusive window
// [start, stop] (spec.md §4.2's stateless count(start, stop)).
func (s *Sieve) Count(start, stop int64) int64 {
	return s.rangeCount(start-s.low, stop-s.low)
}

// CountStop is the stateful incremental counter (spec.md §4.2's
// count(stop)): callers MUST invoke it with non-decreasing stop values
// (local, low-relative offsets) within one segment. It advances the
// counter-cell cursor, then finishes with a direct popcount over the
// residual span.
func (s *Sieve) CountStop(stopLocal int64) int64 {
	for s.counterIdx < len(s.counter) && (int64(s.counterIdx)+1)*s.counterDist-1 <= stopLocal {
		s.counterSum += s.counter[s.counterIdx]
		s.counterIdx++
	}
	base := int64(s.counterIdx) * s.counterDist
	return s.counterSum + s.rangeCount(base, stopLocal)
}
