package u128

import "testing"

func TestAddSub(t *testing.T) {
	a := From64(1 << 63)
	b := From64(1 << 63)
	sum := a.Add(b) // 2^64, overflows into Hi
	if sum.Hi != 1 || sum.Lo != 0 {
		t.Errorf("2^63 + 2^63 = {Hi:%d Lo:%d}, want {Hi:1 Lo:0}", sum.Hi, sum.Lo)
	}
	if got := sum.Sub(a); got.Cmp(b) != 0 {
		t.Errorf("(a+b)-a = %v, want %v", got, b)
	}
}

func TestMul64AndMul(t *testing.T) {
	a := From64(1000000000000)
	b := a.Mul64(1000000000000)
	want := From64(1000000000000).Mul(From64(1000000000000))
	if b.Cmp(want) != 0 {
		t.Errorf("Mul64 and Mul disagree: %v vs %v", b, want)
	}
	// 10^12 * 10^12 = 10^24, which overflows a uint64 (max ~1.8*10^19).
	if b.Hi == 0 {
		t.Errorf("expected overflow into Hi for 10^12 * 10^12, got Hi=0")
	}
}

func TestDivMod64RoundTrip(t *testing.T) {
	x := From64(123456789).Mul64(987654321)
	q, r := x.DivMod64(987654321)
	if q.Cmp(From64(123456789)) != 0 {
		t.Errorf("quotient = %v, want 123456789", q)
	}
	if r != 0 {
		t.Errorf("remainder = %d, want 0", r)
	}
}

func TestCmpAndLess(t *testing.T) {
	a := From64(5)
	b := From64(10)
	if !a.Less(b) {
		t.Errorf("5 < 10 should be true")
	}
	if b.Less(a) {
		t.Errorf("10 < 5 should be false")
	}
	if a.Cmp(a) != 0 {
		t.Errorf("a.Cmp(a) = %d, want 0", a.Cmp(a))
	}
}

func TestLshRsh(t *testing.T) {
	x := From64(1)
	shifted := x.Lsh(64)
	if shifted.Hi != 1 || shifted.Lo != 0 {
		t.Errorf("1 << 64 = %v, want {Hi:1 Lo:0}", shifted)
	}
	back := shifted.Rsh(64)
	if back.Cmp(x) != 0 {
		t.Errorf("(1<<64)>>64 = %v, want %v", back, x)
	}
}

func TestSqrtPerfectSquares(t *testing.T) {
	tests := []uint64{0, 1, 4, 9, 100, 1000000, 999999999999999999}
	for _, n := range tests {
		x := From64(n).Mul64(n)
		got := x.Sqrt()
		if got.Cmp(From64(n)) != 0 {
			t.Errorf("Sqrt(%d^2) = %v, want %d", n, got, n)
		}
	}
}

func TestSqrtFloorsNonSquares(t *testing.T) {
	for n := uint64(2); n <= 1000; n++ {
		x := From64(n)
		root := x.Sqrt()
		r := root.Lo
		if r*r > n {
			t.Errorf("Sqrt(%d) = %d, too large (square = %d)", n, r, r*r)
		}
		if (r+1)*(r+1) <= n {
			t.Errorf("Sqrt(%d) = %d, too small ((r+1)^2 = %d <= n)", n, r, (r+1)*(r+1))
		}
	}
}

func TestFits64(t *testing.T) {
	if !From64(12345).Fits64() {
		t.Errorf("From64(12345).Fits64() = false, want true")
	}
	big := From64(1).Lsh(100)
	if big.Fits64() {
		t.Errorf("(1<<100).Fits64() = true, want false")
	}
}

func TestString(t *testing.T) {
	if got := From64(12345).String(); got != "12345" {
		t.Errorf("String() = %q, want %q", got, "12345")
	}
	big := From64(1).Lsh(64) // 2^64 = 18446744073709551616
	if got, want := big.String(), "18446744073709551616"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
