// Package segpitable implements SegmentedPiTable (C5, spec.md §4.4): a
// pi(x) lookup table over a sliding window [low, high) rather than the
// whole range, used by the A+C easy-leaf engine (internal/easy) so it
// never has to materialize an O(x^(1/3))-bit table in one shot.
//
// Grounded on _examples/original_source/src/gourdon/SegmentedPiTable.{hpp,cpp}
// for the windowed-rebuild contract, and on the teacher's SegmentedSieve
// (_examples/pchuck-infinite-series/golang/prime/primes.go) for the
// "sieve a window against base primes, then scan" shape. Unlike C4's
// PiTable (which reuses the wheel-30/240 layout of internal/bitsieve240),
// this table uses the odd-numbers-only 128-per-entry layout spec.md §3
// specifies for SegmentedPiTable specifically — a 64-bit word holds
// exactly the 64 odd numbers in a 128-integer block.
package segpitable

import (
	"math/bits"

	"github.com/pchuck/primecount/prime"
)

type entry struct {
	count uint64
	bits  uint64 // bit i set <=> low+blockBase+2*i+1 is prime
}

// Table answers pi(x) for x in [low, high).
type Table struct {
	low, high int64
	pi        []entry
	has2      bool // true if prime 2 falls inside [low, high)
}

const blockSize = 128

// New builds a fresh window [low, high) given pi(low-1) (piLow) as a
// seed (spec.md §4.4 step 1: "obtained by querying the previous window's
// last entry, else a fresh one-shot pi call"). low is floored to an even
// number so every 128-integer block's base stays even, keeping the
// odd-only bit layout's indexing arithmetic (off/2 = bit index) exact.
func New(low, high int64, piLow int64) *Table {
	if low%2 != 0 {
		low--
	}
	t := &Table{low: low, high: high}
	t.rebuild(piLow)
	return t
}

func (t *Table) rebuild(piLow int64) {
	nBlocks := (t.high - t.low + blockSize - 1) / blockSize
	t.pi = make([]entry, nBlocks)
	t.has2 = t.low <= 2 && 2 < t.high

	lo := t.low
	if lo < 3 {
		lo = 3
	}
	if lo%2 == 0 {
		lo++
	}
	if lo < t.high {
		it := prime.NewIterator(int(lo), int(t.high)-1)
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			if p == 2 {
				continue
			}
			off := int64(p) - t.low
			blockIdx := off / blockSize
			k := (off % blockSize) / 2 // p is odd, off is odd too since low is kept even-aligned by callers
			t.pi[blockIdx].bits |= uint64(1) << uint(k)
		}
	}

	running := uint64(piLow)
	for i := range t.pi {
		t.pi[i].count = running
		running += uint64(bits.OnesCount64(t.pi[i].bits))
	}
}

// Pi returns the number of primes <= x, for x in [low, high).
func (t *Table) Pi(x int64) int64 {
	if x < t.low {
		panic("segpitable: query below window")
	}
	off := x - t.low
	blockIdx := off / blockSize
	if int(blockIdx) >= len(t.pi) {
		blockIdx = int64(len(t.pi)) - 1
	}
	base := t.low + blockIdx*blockSize
	kmax := (x - base - 1) / 2 // largest k with 2k+1 <= x-base
	var mask uint64
	if kmax >= 0 {
		if kmax >= 63 {
			mask = ^uint64(0)
		} else {
			mask = (uint64(1) << uint(kmax+1)) - 1
		}
	}
	e := t.pi[blockIdx]
	result := int64(e.count) + int64(bits.OnesCount64(e.bits&mask))
	if t.has2 && x >= 2 {
		result++
	}
	return result
}

// Low and High report the window bounds, used by the caller to decide
// when to call Next.
func (t *Table) Low() int64  { return t.low }
func (t *Table) High() int64 { return t.high }

// Next slides the window forward by its own width, reusing the just
// completed window's final cumulative count as the new seed (spec.md
// §4.4 "Advance policy").
func (t *Table) Next() {
	width := t.high - t.low
	newPiLow := t.Pi(t.high - 1)
	t.low = t.high
	t.high = t.low + width
	t.rebuild(newPiLow)
}

// AlignTo128 rounds y up to the nearest multiple of 128, the fixed window
// size spec.md §4.4 mandates for the A+C algorithm's segmented pass.
func AlignTo128(y int64) int64 {
	if y <= 0 {
		return blockSize
	}
	return (y + blockSize - 1) / blockSize * blockSize
}
