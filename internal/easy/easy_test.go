package easy

import (
	"testing"

	"github.com/pchuck/primecount/internal/pitable"
	"github.com/pchuck/primecount/prime"
)

// testProvider is a minimal phi.PrimeProvider backed directly by
// internal/pitable and a plain prime list, built the same way
// primecount's top-level orchestrator does (kept local here to avoid an
// import cycle with the primecount package, which itself imports
// internal/easy).
type testProvider struct {
	primes []int64
	pi     *pitable.Table
}

func newTestProvider(t *testing.T, maxX int64) *testProvider {
	t.Helper()
	pt, err := pitable.New(maxX)
	if err != nil {
		t.Fatalf("pitable.New: %v", err)
	}
	raw := prime.GeneratePrimes(int(maxX)+1, false, nil)
	primes := make([]int64, len(raw)+1)
	for i, p := range raw {
		primes[i+1] = int64(p)
	}
	return &testProvider{primes: primes, pi: pt}
}

func (p *testProvider) Prime(a int) int64 {
	if a <= 0 || a >= len(p.primes) {
		return 0
	}
	return p.primes[a]
}

func (p *testProvider) Pi(x int64) int64 {
	if x < 0 {
		return 0
	}
	if x > p.pi.MaxCached() {
		x = p.pi.MaxCached()
	}
	return p.pi.Pi(x)
}

func (p *testProvider) NumPrimes() int { return len(p.primes) - 1 }

func TestComputeIsDeterministicAcrossWorkerCounts(t *testing.T) {
	const x = 200000
	pp := newTestProvider(t, x)
	params := Params{X: x, Y: 30, Z: 30, XStar: 15, K: 2, PP: pp}

	single := Compute(params, 1)
	multi := Compute(params, 8)
	if single != multi {
		t.Errorf("Compute with 1 worker = %d, with 8 workers = %d, want equal", single, multi)
	}
}

func TestComputeDoesNotPanicAcrossSmallX(t *testing.T) {
	for _, x := range []int64{1000, 10000, 100000} {
		pp := newTestProvider(t, x)
		y := int64(10)
		params := Params{X: x, Y: y, Z: y, XStar: y / 2, K: 2, PP: pp}
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Compute(x=%d) panicked: %v", x, r)
				}
			}()
			Compute(params, 4)
		}()
	}
}
