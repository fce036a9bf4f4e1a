package prime

import "testing"

// bruteIsPrime is an independent, trivially-correct primality check used
// as a reference for the sieve variants below.
func bruteIsPrime(n int) bool {
	if n < 2 {
		return false
	}
	for p := 2; p*p <= n; p++ {
		if n%p == 0 {
			return false
		}
	}
	return true
}

func bruteSieve(n int) []int {
	var primes []int
	for i := 2; i < n; i++ {
		if bruteIsPrime(i) {
			primes = append(primes, i)
		}
	}
	return primes
}

func assertEqualSlices(t *testing.T, name string, got, want []int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("%s: len = %d, want %d", name, len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("%s: [%d] = %d, want %d", name, i, got[i], want[i])
		}
	}
}

func TestSieveOfEratosthenesMatchesBruteForce(t *testing.T) {
	const n = 10000
	assertEqualSlices(t, "SieveOfEratosthenes", SieveOfEratosthenes(n), bruteSieve(n))
}

func TestSegmentedSieveMatchesBruteForce(t *testing.T) {
	const n = 20000
	for _, seg := range []int{100, 997, 5000} {
		got := SegmentedSieve(n, seg, nil)
		assertEqualSlices(t, "SegmentedSieve", got, bruteSieve(n))
	}
}

func TestParallelSegmentedSieveMatchesBruteForce(t *testing.T) {
	const n = 20000
	got := ParallelSegmentedSieve(n, 4, 997, nil)
	assertEqualSlices(t, "ParallelSegmentedSieve", got, bruteSieve(n))
}

func TestGeneratePrimesSmallAndLarge(t *testing.T) {
	const n = 20000
	assertEqualSlices(t, "GeneratePrimes(serial)", GeneratePrimes(n, false, nil), bruteSieve(n))
	assertEqualSlices(t, "GeneratePrimes(parallel)", GeneratePrimes(n, true, nil), bruteSieve(n))
}

func TestProgressTracker(t *testing.T) {
	pt := NewProgressTracker(200)
	pt.AddCompleted(50)
	pt.AddCompleted(50)
	if got := pt.GetCompleted(); got != 100 {
		t.Errorf("GetCompleted() = %d, want 100", got)
	}
	if got := pt.GetPercent(); got != 50 {
		t.Errorf("GetPercent() = %d, want 50", got)
	}
}
