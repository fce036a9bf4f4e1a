package factortable

import "testing"

func TestToIndexToNumberRoundTrip(t *testing.T) {
	for n := int64(1); n <= 200000; n++ {
		r := (n-1)%Wheel + 1
		if residueIndex[r] < 0 {
			continue // not coprime to the wheel, not individually addressable
		}
		idx := ToIndex(n)
		if got := ToNumber(idx); got != n {
			t.Errorf("ToNumber(ToIndex(%d)) = %d, want %d", n, got, n)
		}
	}
}

func isPrimeRef(n int64) bool {
	if n < 2 {
		return false
	}
	for d := int64(2); d*d <= n; d++ {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func mobiusRef(n int64) int {
	if n == 1 {
		return 1
	}
	m := n
	result := 1
	for p := int64(2); p*p <= m; p++ {
		if m%p == 0 {
			m /= p
			if m%p == 0 {
				return 0
			}
			result = -result
		}
	}
	if m > 1 {
		result = -result
	}
	return result
}

func TestIsPrimeMatchesReference(t *testing.T) {
	const maxN = 5000
	tbl := New(maxN, maxN)
	for n := int64(17); n <= maxN; n++ {
		r := (n-1)%Wheel + 1
		if residueIndex[r] < 0 {
			continue
		}
		idx := ToIndex(n)
		if got, want := tbl.IsPrime(idx), isPrimeRef(n); got != want {
			t.Errorf("IsPrime(%d) = %v, want %v", n, got, want)
		}
	}
}

func TestMuMatchesReferenceForSquarefree(t *testing.T) {
	const maxN = 5000
	tbl := New(maxN, maxN)
	for n := int64(17); n <= maxN; n++ {
		r := (n-1)%Wheel + 1
		if residueIndex[r] < 0 {
			continue
		}
		idx := ToIndex(n)
		want := mobiusRef(n)
		got := tbl.Mu(idx)
		if want == 0 {
			if got != 0 {
				t.Errorf("Mu(%d) = %d, want 0 (not squarefree)", n, got)
			}
			continue
		}
		if got != want {
			t.Errorf("Mu(%d) = %d, want %d", n, got, want)
		}
	}
}

func TestDisqualifiesAboveY(t *testing.T) {
	const maxN = 5000
	const y = 100
	tbl := New(maxN, y)
	for n := int64(17); n <= maxN; n++ {
		r := (n-1)%Wheel + 1
		if residueIndex[r] < 0 {
			continue
		}
		// any n with a prime factor > y and <= maxN should be zeroed
		// unless n itself is <= y (can't have a factor exceeding itself).
		if n <= y {
			continue
		}
		hasBigFactor := false
		m := n
		for p := int64(2); p*p <= m; p++ {
			for m%p == 0 {
				m /= p
			}
		}
		if m > y {
			hasBigFactor = true
		}
		if hasBigFactor {
			idx := ToIndex(n)
			if tbl.IsLeaf(idx) != 0 {
				t.Errorf("n=%d has a prime factor > y=%d but wasn't disqualified", n, y)
			}
		}
	}
}

// TestMuOfSemiprimeAboveSqrtHigh guards against sieveSlab only striking
// prime factors up to sqrt(high): a square-free semiprime n = p*q with
// 17 <= p <= sqrt(high) < q <= high has its q factor struck only when
// sieveSlab's prime iterator runs up to high/firstCoprime, not sqrt(high).
// Missing that strike leaves exactly one parity toggle (from p) instead
// of two, flipping Mu's sign from +1 to -1.
func TestMuOfSemiprimeAboveSqrtHigh(t *testing.T) {
	const p, q = 17, 19
	const n = p * q // 323; sqrt(323) ~= 17.97, so p <= sqrt(n) < q
	const maxN = n
	const y = n // y >= maxN disables the separate "disqualify above y" pass

	tbl := New(maxN, y)
	idx := ToIndex(n)
	if got, want := tbl.Mu(idx), 1; got != want {
		t.Errorf("Mu(%d) = %d, want %d (square-free product of two distinct primes)", n, got, want)
	}
}

func TestIsOne(t *testing.T) {
	tbl := New(1000, 1000)
	if !tbl.IsOne(0) {
		t.Errorf("IsOne(ToIndex(1)) = false, want true")
	}
}
