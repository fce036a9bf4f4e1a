package bitsieve240

import "testing"

func TestOffsetsAreCoprimeTo30(t *testing.T) {
	for _, o := range Offsets {
		if !IsCoprime30(o) {
			t.Errorf("Offsets contains %d, not coprime to 30", o)
		}
	}
	if len(Offsets) != 8 {
		t.Fatalf("len(Offsets) = %d, want 8", len(Offsets))
	}
}

func TestBitValuesRoundTrip(t *testing.T) {
	for r := 0; r < 240; r++ {
		idx := ByteBitIndex[r%30]
		if idx == -1 {
			continue
		}
		pos := (r/30)*8 + int(idx)
		if BitValues[pos] != r {
			t.Errorf("BitValues[%d] = %d, want %d", pos, BitValues[pos], r)
		}
	}
}

func TestSetUnsetBitComplementary(t *testing.T) {
	for r := 0; r < 240; r++ {
		if SetBit[r] == 0 {
			continue // not a wheel residue
		}
		if SetBit[r]&UnsetBit[r] != 0 {
			t.Errorf("SetBit[%d] & UnsetBit[%d] != 0", r, r)
		}
		if SetBit[r]|UnsetBit[r] != ^uint64(0) {
			t.Errorf("SetBit[%d] | UnsetBit[%d] != all-ones", r, r)
		}
	}
}

func TestWordAtPutWordAtRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	PutWordAt(buf, 0, 0x0123456789abcdef)
	PutWordAt(buf, 1, 0xfedcba9876543210)
	if got := WordAt(buf, 0); got != 0x0123456789abcdef {
		t.Errorf("WordAt(0) = %#x, want %#x", got, 0x0123456789abcdef)
	}
	if got := WordAt(buf, 1); got != 0xfedcba9876543210 {
		t.Errorf("WordAt(1) = %#x, want %#x", got, uint64(0xfedcba9876543210))
	}
}

func TestUnsetSmallerUnsetLargerCoverWholeWord(t *testing.T) {
	// the lowest representable residue (1) keeps every bit under UnsetSmaller
	if UnsetSmaller[1] != ^uint64(0) {
		t.Errorf("UnsetSmaller[1] should keep all bits, got %#x", UnsetSmaller[1])
	}
	// the highest representable residue (239) keeps every bit under UnsetLarger
	if UnsetLarger[239] != ^uint64(0) {
		t.Errorf("UnsetLarger[239] should keep all bits, got %#x", UnsetLarger[239])
	}
}

func TestWheelGap30SumsToFull30Cycle(t *testing.T) {
	var sum int
	for _, g := range WheelGap30 {
		sum += g
	}
	if sum != 30 {
		t.Errorf("sum(WheelGap30) = %d, want 30", sum)
	}
}
