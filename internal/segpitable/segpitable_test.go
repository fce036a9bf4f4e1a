package segpitable

import "testing"

func isPrime(n int64) bool {
	if n < 2 {
		return false
	}
	if n%2 == 0 {
		return n == 2
	}
	for d := int64(3); d*d <= n; d += 2 {
		if n%d == 0 {
			return false
		}
	}
	return true
}

func referencePi(x int64) int64 {
	var count int64
	for n := int64(2); n <= x; n++ {
		if isPrime(n) {
			count++
		}
	}
	return count
}

func TestPiMatchesReferenceFirstWindow(t *testing.T) {
	tbl := New(0, 256, 0)
	for x := tbl.Low(); x < tbl.High(); x++ {
		if got, want := tbl.Pi(x), referencePi(x); got != want {
			t.Errorf("Pi(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestNextAdvancesWindowAndStaysConsistent(t *testing.T) {
	tbl := New(0, 256, 0)
	for i := 0; i < 4; i++ {
		tbl.Next()
	}
	for x := tbl.Low(); x < tbl.High(); x += 17 {
		if got, want := tbl.Pi(x), referencePi(x); got != want {
			t.Errorf("after 4 Next calls, Pi(%d) = %d, want %d", x, got, want)
		}
	}
}

func TestAlignTo128(t *testing.T) {
	tests := []struct{ in, want int64 }{
		{0, 128}, {1, 128}, {128, 128}, {129, 256}, {256, 256}, {300, 384},
	}
	for _, tt := range tests {
		if got := AlignTo128(tt.in); got != tt.want {
			t.Errorf("AlignTo128(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
