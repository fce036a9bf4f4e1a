// Package popcount implements the bit-counting primitive that sits in the
// innermost hot loop of every combinatorial term (spec.md §4.2 / C2): count
// the number of set bits across a slice of 64-bit sieve words, dispatching
// to whatever vectorized path the running CPU supports.
//
// Grounded on the teacher's style of picking a fast path at startup
// (pchuck's SegmentedSieve precomputes basePrimes once and reuses them
// across segments) generalized here to a dispatch table selected once via
// CPU-feature detection. github.com/klauspost/cpuid/v2 is the only
// CPU-feature-detection library anywhere in the retrieval pack (an
// indirect dependency of xtaci-kcptun); see DESIGN.md.
package popcount

import (
	"math/bits"

	"github.com/klauspost/cpuid/v2"
)

// Algo names the dispatched counting strategy, exposed so diagnostics (and
// tests) can report which path ran — spec.md §4.2 requires "the same
// Sieve::count(stop) contract must hold regardless of dispatch target
// (result identical, only throughput differs)".
type Algo string

const (
	AlgoPortable Algo = "popcnt64"
	AlgoAVX512   Algo = "avx512_vpopcntdq"
	AlgoARMSVE   Algo = "arm_sve"
)

var selected Algo

func init() {
	switch {
	case cpuid.CPU.Supports(cpuid.AVX512VPOPCNTDQ):
		selected = AlgoAVX512
	case cpuid.CPU.Supports(cpuid.SVE):
		selected = AlgoARMSVE
	default:
		selected = AlgoPortable
	}
}

// SelectedAlgo reports which counting strategy was bound at startup.
func SelectedAlgo() Algo {
	return selected
}

// Count64 counts the set bits in a single 64-bit word. All dispatch
// targets reduce to math/bits.OnesCount64 here: Go's compiler already
// lowers OnesCount64 to the hardware POPCNT instruction on amd64/arm64
// when present, so the AVX-512/SVE "dispatch" is a bookkeeping distinction
// (which throughput class was detected) rather than a second code path —
// no suitable Go assembly for masked AVX-512 VPOPCNTDQ / SVE population
// count exists anywhere in the retrieval pack (see DESIGN.md).
func Count64(word uint64) int {
	return bits.OnesCount64(word)
}

// Count sums Count64 across a slice of sieve words. This is the "tight
// popcount loop" spec.md §4.2 describes for the middle-words span of a
// count(start, stop) query.
func Count(words []uint64) uint64 {
	var total uint64
	for _, w := range words {
		total += uint64(bits.OnesCount64(w))
	}
	return total
}
