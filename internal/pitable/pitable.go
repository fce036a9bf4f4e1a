// Package pitable implements PiTable (C4, spec.md §4.3): an in-memory
// compressed lookup table answering "how many primes <= x?" in O(1) using
// the wheel-30 bit layout from internal/bitsieve240.
//
// Grounded on _examples/original_source/include/PiTable.hpp (count+bits
// pair per 240-block, pi_tiny_ override for x < 6) and on the teacher's
// SegmentedSieve (_examples/pchuck-infinite-series/golang/prime/primes.go)
// for the "sieve base primes, then scan" construction shape.
package pitable

import (
	"github.com/pkg/errors"

	"github.com/pchuck/primecount/internal/bitsieve240"
	"github.com/pchuck/primecount/internal/popcount"
	"github.com/pchuck/primecount/prime"
)

// entry mirrors the original's pi_t{count, bits}.
type entry struct {
	count uint64
	bits  uint64
}

// Table is a compressed lookup of pi(x) for 0 <= x <= maxX. The 64-bit
// path uses int64 throughout, matching spec.md §3's "64-bit path if x <=
// 2^63-1".
type Table struct {
	entries []entry
	maxX    int64
}

// New builds a PiTable covering [0, maxX]. Construction sieves primes up
// to maxX with the external prime iterator (C3) and folds a prefix-sum
// pass over the 240-integer blocks, exactly as spec.md §4.3 describes.
func New(maxX int64) (*Table, error) {
	if maxX < 0 {
		maxX = 0
	}
	nBlocks := maxX/240 + 1
	entries := make([]entry, nBlocks)
	if entries == nil {
		return nil, errors.New("pitable: allocation failed")
	}
	t := &Table{entries: entries, maxX: maxX}

	it := prime.NewIterator(0, int(maxX))
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		if p < 7 {
			continue // 2, 3, 5 aren't representable in the wheel-30 layout
		}
		block := int64(p) / 240
		rem := p % 240
		t.entries[block].bits |= bitsieve240.SetBit[rem]
	}

	var running uint64
	for i := range t.entries {
		t.entries[i].count = running
		running += uint64(popcount.Count64(t.entries[i].bits))
	}
	return t, nil
}

// Pi returns the number of primes <= x. x must be <= maxX used at
// construction.
func (t *Table) Pi(x int64) int64 {
	if x < int64(len(bitsieve240.PiTiny)) {
		if x < 0 {
			return 0
		}
		return int64(bitsieve240.PiTiny[x])
	}
	e := t.entries[x/240]
	bitmask := bitsieve240.UnsetLarger[x%240]
	return int64(e.count) + int64(popcount.Count64(e.bits&bitmask))
}

// MaxCached returns the largest x this table can answer.
func (t *Table) MaxCached() int64 {
	return t.maxX
}
