// Package factortable implements FactorTable / FactorTableD (C6, spec.md
// §3/§4.5): a compressed encoding of (mu, least-prime-factor, "is this
// number disqualified as a leaf") for every integer coprime to the first
// six primes {2,3,5,7,11,13}, indexed by a dense coprime-skipping scheme.
//
// Grounded directly on _examples/original_source/src/gourdon/DFactorTable.hpp:
// the single-slot encoding trick (store the least prime factor itself;
// every prime recorded here is >= 17 and therefore odd, so its own low
// bit already equals "one prime factor = odd count", and each additional
// factor found just XORs that bit) is ported verbatim from there, not
// reinvented. The sentinels (`math.MaxUint64`/`math.MaxUint64-1` for
// "prime"/"n == 1") and the final "clear slots whose least prime factor
// exceeds y" pass both come from the same file. Dense indexing uses the
// wheel-30030 modulus spec.md §3 names explicitly ({2,3,5,7,11,13});
// DFactorTable.hpp's own get_index/get_number aren't in the retrieval
// pack, so that half is original work built from spec.md's description.
package factortable

import (
	"math"
	"runtime"
	"sync"

	"github.com/pchuck/primecount/prime"
)

// Wheel is the product of the first six primes primecount excludes from
// the dense index (2*3*5*7*11*13).
const Wheel = 30030

// firstCoprime is the smallest prime not among the wheel's own factors,
// and therefore the smallest prime sieveSlab ever needs to strike.
const firstCoprime = 17

var wheelPrimes = [6]int64{2, 3, 5, 7, 11, 13}

// coprimes holds every residue in [1, Wheel] coprime to Wheel, ascending;
// residueIndex is its inverse (−1 for non-coprime residues).
var (
	coprimes     []int64
	residueIndex [Wheel + 1]int32
)

func init() {
	for r := int64(1); r <= Wheel; r++ {
		if gcdWithWheel(r) {
			residueIndex[r] = int32(len(coprimes))
			coprimes = append(coprimes, r)
		} else {
			residueIndex[r] = -1
		}
	}
	PerBlock = len(coprimes)
}

func gcdWithWheel(r int64) bool {
	for _, p := range wheelPrimes {
		if r%p == 0 {
			return false
		}
	}
	return true
}

// PerBlock is the number of dense indices per period-Wheel block
// (Euler's totient of 30030 = 5760).
var PerBlock int

const (
	sentinelPrime uint64 = math.MaxUint64     // n is prime
	sentinelOne   uint64 = math.MaxUint64 - 1 // n == 1
)

// ToIndex maps n (must be coprime to Wheel, or n == 1) to its dense index.
func ToIndex(n int64) int64 {
	n0 := n - 1
	q := n0 / Wheel
	r := n0%Wheel + 1
	return q*int64(PerBlock) + int64(residueIndex[r])
}

// ToNumber is the inverse of ToIndex.
func ToNumber(i int64) int64 {
	q := i / int64(PerBlock)
	p := i % int64(PerBlock)
	return q*Wheel + coprimes[p]
}

// Table is FactorTable/FactorTableD: slot[i] encodes is_leaf/mu/lpf for
// the number n = ToNumber(i), for every n in [1, maxN].
type Table struct {
	slot []uint64
}

// New builds a Table covering [1, maxN], disqualifying any number whose
// maximum prime factor exceeds y (spec.md §4.5's "is not a leaf" filter —
// the D/S2_hard and A+C engines only ever consult entries with n <= z
// where z itself is derived from y, so disqualifying on mpf(n) > y here
// keeps every live slot leaf-eligible).
func New(maxN, y int64) *Table {
	top := maxN // largest n <= maxN that ToIndex can address
	for top > 1 && residueIndex[(top-1)%Wheel+1] < 0 {
		top--
	}
	size := ToIndex(top) + 1
	slot := make([]uint64, size)
	for i := range slot {
		slot[i] = sentinelPrime
	}
	slot[0] = sentinelOne // n = 1

	threads := runtime.NumCPU()
	if threads < 1 {
		threads = 1
	}
	dist := (maxN + int64(threads) - 1) / int64(threads)
	if dist < 1 {
		dist = 1
	}

	var wg sync.WaitGroup
	for t := 0; t < threads; t++ {
		low := int64(1) + dist*int64(t)
		high := low + dist
		if high > maxN {
			high = maxN
		}
		if low > high {
			continue
		}
		wg.Add(1)
		go func(low, high int64) {
			defer wg.Done()
			sieveSlab(slot, low, high, maxN)
		}(low, high)
	}
	wg.Wait()

	// Disqualify numbers whose max prime factor exceeds y: walk primes
	// p > y up to maxN and zero out every multiple still >= 17-rooted
	// (i.e. every slot that isn't already the n==1 sentinel).
	if y < maxN {
		start := y + 1
		if start < 2 {
			start = 2
		}
		it := prime.NewIterator(int(start), int(maxN))
		for p, ok := it.Next(); ok; p, ok = it.Next() {
			pp := int64(p)
			for m := pp; m <= maxN; m += pp {
				if idx, ok := indexIfCoprime(m); ok {
					slot[idx] = 0
				}
			}
		}
	}

	return &Table{slot: slot}
}

func indexIfCoprime(n int64) (int64, bool) {
	r := (n-1)%Wheel + 1
	if residueIndex[r] < 0 {
		return 0, false
	}
	return ToIndex(n), true
}

// sieveSlab applies the smallest-prime-factor / square-free sieve to the
// dense indices covering (low, high], mirroring DFactorTable's per-thread
// slab loop. Every sieving prime up to high/firstCoprime is struck, not
// just those up to sqrt(high): a square-free n <= high has at most one
// prime factor above sqrt(high), and that factor's toggle of the parity
// (mu) bit must still happen or mu's sign comes out flipped.
func sieveSlab(slot []uint64, low, high, maxN int64) {
	maxPrime := high / firstCoprime
	it := prime.NewIterator(firstCoprime, int(maxPrime))
	for p, ok := it.Next(); ok; p, ok = it.Next() {
		pp := int64(p)
		first := firstMultipleAbove(pp, low)
		if first == pp {
			first += pp // p itself keeps the prime sentinel
		}
		for m := first; m <= high; m += pp {
			idx, ok := indexIfCoprime(m)
			if !ok {
				continue
			}
			if slot[idx] == sentinelPrime {
				slot[idx] = uint64(pp)
			} else if slot[idx] != 0 {
				slot[idx] ^= 1
			}
		}
		// square-free filter: zero out multiples of p^2.
		sq := pp * pp
		if sq <= high {
			firstSq := firstMultipleAbove(sq, low)
			if firstSq < sq {
				firstSq = sq
			}
			for m := firstSq; m <= high; m += sq {
				if idx, ok := indexIfCoprime(m); ok {
					slot[idx] = 0
				}
			}
		}
	}
}

func firstMultipleAbove(p, low int64) int64 {
	if low <= 0 {
		return p
	}
	k := low / p
	m := k * p
	if m <= low {
		m += p
	}
	return m
}

// IsLeaf returns the raw slot value for index i, for the direct
// `p < factor.IsLeaf(m)` comparison spec.md §4.8 performs in the D
// engine's hot loop (valid because a disqualified/non-squarefree slot is
// 0, which no non-negative prime p is ever less than).
func (t *Table) IsLeaf(i int64) uint64 {
	return t.slot[i]
}

// Mu returns the Mobius function value of n = ToNumber(i).
func (t *Table) Mu(i int64) int {
	v := t.slot[i]
	switch {
	case v == 0:
		return 0
	case v&1 == 1:
		return -1
	default:
		return 1
	}
}

// IsOne reports whether index i represents n == 1.
func (t *Table) IsOne(i int64) bool { return t.slot[i] == sentinelOne }

// IsPrime reports whether n = ToNumber(i) is prime.
func (t *Table) IsPrime(i int64) bool { return t.slot[i] == sentinelPrime }
