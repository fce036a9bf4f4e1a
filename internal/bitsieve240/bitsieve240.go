// Package bitsieve240 holds the static wheel-30 lookup tables shared by
// every bit-packed structure in primecount: the segmented sieve (C7), the
// PiTable (C4), and the SegmentedPiTable (C5). Each byte of a sieve/table
// array represents 30 consecutive integers; only the 8 residues coprime to
// {2,3,5} — {1,7,11,13,17,19,23,29} — get a bit, so a uint64 word (8 bytes)
// spans 240 integers (spec.md §3 "Wheel-30 bit layout").
//
// Grounded on _examples/original_source/src/BitSieve240.cpp: the tables
// below are regenerated here from the same left_shift/right_shift closed
// forms rather than ported as literal arrays, per spec.md §4.1's "ported
// verbatim or regenerated by the same closed-form functions".
package bitsieve240

import "encoding/binary"

// Offsets are the 8 residues mod 30 coprime to {2,3,5}, in ascending order.
var Offsets = [8]int{1, 7, 11, 13, 17, 19, 23, 29}

// PiTiny gives pi(x) for x < 6, where 2, 3 and 5 cannot be expressed in the
// wheel-30 bit layout.
var PiTiny = [6]uint64{0, 0, 1, 2, 2, 3}

// BitValues maps a global bit position (0..63 within a 240-int word) back
// to the integer offset within that 240-block it represents.
var BitValues [64]int

// SetBit holds, for each residue r in 0..239, the single-bit mask that sets
// the bit representing r (zero if r is not coprime to 30).
var SetBit [240]uint64

// UnsetBit holds, for each residue r, a mask that clears exactly the bit
// for r via AND (all bits set except r's, all bits set if r has no bit).
var UnsetBit [240]uint64

// UnsetSmaller holds, for each r, a mask that clears every bit whose
// represented value is < r (keeps bits for values >= r).
var UnsetSmaller [240]uint64

// UnsetLarger holds, for each r, a mask that clears every bit whose
// represented value is > r (keeps bits for values <= r).
var UnsetLarger [240]uint64

func init() {
	for byteIdx := 0; byteIdx < 8; byteIdx++ {
		for bitInByte, off := range Offsets {
			pos := byteIdx*8 + bitInByte
			BitValues[pos] = byteIdx*30 + off
			r := byteIdx*30 + off
			SetBit[r] = uint64(1) << uint(pos)
			UnsetBit[r] = ^(uint64(1) << uint(pos))
		}
	}

	for r := 0; r < 240; r++ {
		UnsetSmaller[r] = ^uint64(0) << uint(leftShift(r))
		if r == 0 {
			UnsetLarger[r] = 0
		} else {
			UnsetLarger[r] = ^uint64(0) >> uint(rightShift(r))
		}
	}
}

// WordAt reads the 64-bit word covering bytes [wordIdx*8, wordIdx*8+8) of a
// sieve/table byte slice, always least-significant-byte-first.
//
// spec.md §3/§9 calls for endian-aware tables because the C++ original
// reinterpret_casts its byte array to a uint64 array, which is
// byte-order-dependent. This port never does that: every word is
// assembled explicitly with encoding/binary.LittleEndian, so the table
// values above only ever need to describe one logical byte order and the
// big-endian variant the original carries has no Go equivalent to keep in
// sync.
func WordAt(b []byte, wordIdx int) uint64 {
	return binary.LittleEndian.Uint64(b[wordIdx*8:])
}

// PutWordAt writes w back into the byte slice at the given word index,
// LSB-first, matching WordAt.
func PutWordAt(b []byte, wordIdx int, w uint64) {
	binary.LittleEndian.PutUint64(b[wordIdx*8:], w)
}

// leftShift returns the number of low bits to clear so that only bit
// positions whose value is >= n survive (n in 0..239).
func leftShift(n int) int {
	byteIdx := n / 30
	rem := n % 30
	switch {
	case rem <= 1:
		return byteIdx*8 + 0
	case rem <= 7:
		return byteIdx*8 + 1
	case rem <= 11:
		return byteIdx*8 + 2
	case rem <= 13:
		return byteIdx*8 + 3
	case rem <= 17:
		return byteIdx*8 + 4
	case rem <= 19:
		return byteIdx*8 + 5
	case rem <= 23:
		return byteIdx*8 + 6
	default:
		return byteIdx*8 + 7
	}
}

// rightShift returns the number of high bits to clear so that only bit
// positions whose value is <= n survive (n in 0..239).
func rightShift(n int) int {
	byteIdx := n / 30
	rem := n % 30
	switch {
	case rem >= 29:
		return 56 - byteIdx*8
	case rem >= 23:
		return 57 - byteIdx*8
	case rem >= 19:
		return 58 - byteIdx*8
	case rem >= 17:
		return 59 - byteIdx*8
	case rem >= 13:
		return 60 - byteIdx*8
	case rem >= 11:
		return 61 - byteIdx*8
	case rem >= 7:
		return 62 - byteIdx*8
	case rem >= 1:
		return 63 - byteIdx*8
	default:
		return 64 - byteIdx*8
	}
}

// IsCoprime30 reports whether n mod 30 is one of the 8 wheel residues.
func IsCoprime30(n int) bool {
	r := n % 30
	for _, o := range Offsets {
		if o == r {
			return true
		}
	}
	return false
}

// ByteBitIndex maps a residue mod 30 to its bit position (0..7) within a
// single wheel-30 byte, or -1 if the residue isn't coprime to 30. This is
// the per-byte counterpart of BitValues, used by the segmented sieve (C7)
// which stores one byte per 30 integers rather than one word per 240.
var ByteBitIndex [30]int8

// WheelGap30 holds the gap (in units of the wheel's own "k" counter, not
// integers) between consecutive wheel residues, cyclically: the step from
// Offsets[i] to Offsets[(i+1)%8]. Since every prime p >= 7 is coprime to
// 30, the multiples of p that are themselves coprime to 30 are exactly
// p*k for k running over the integers coprime to 30 in order
// (1,7,11,...,29,31,37,...); WheelGap30[i] is the increment in k from the
// i-th such value to the next, so a prime's next wheel-30 multiple is
// found by `next = cur + p*WheelGap30[idx]` (spec.md §4.6's cross_off,
// reformulated as a single 8-entry gap table instead of the original's
// unrolled 64-case switch over explicit wheel states).
var WheelGap30 = [8]int{6, 4, 2, 4, 2, 4, 6, 2}

func init() {
	for i := range ByteBitIndex {
		ByteBitIndex[i] = -1
	}
	for i, o := range Offsets {
		ByteBitIndex[o] = int8(i)
	}
}
