package hard

import (
	"testing"

	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/pitable"
	"github.com/pchuck/primecount/prime"
)

// testProvider is a minimal phi.PrimeProvider, built the same way
// internal/easy's and internal/aux's test helpers do (kept local to
// avoid an import cycle with primecount, which imports internal/hard).
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
	const x, y, z = 200000, 60, 60
	pp := newTestProvider(t, x)
	ft := factortable.New(z, y)
	params := Params{X: x, Y: y, Z: z, XStar: y, K: 2, PP: pp, Factor: ft}

	single := Compute(params, 1)
	multi := Compute(params, 8)
	if single != multi {
		t.Errorf("Compute with 1 worker = %d, with 8 workers = %d, want equal", single, multi)
	}
}

// TestProcessGrantCoversEverySegment guards against processGrant
// regressing to processing only a grant's first segment (the bug that
// silently undercounted D once the balancer's steady-state phase grew
// Segments past 1): a 3-segment grant must equal the sum of the three
// individual per-segment contributions, not just the first one.
func TestProcessGrantCoversEverySegment(t *testing.T) {
	const x, y, z = 200000, 60, 720 // z = 3 * 240, exactly three segments
	pp := newTestProvider(t, x)
	ft := factortable.New(z, y)
	params := Params{X: x, Y: y, Z: z, XStar: y, K: 2, PP: pp, Factor: ft}

	const segSize = 240
	w := newWorker(params)
	got := w.processGrant(1, 3, segSize)

	w2 := newWorker(params)
	want := w2.processSegment(1, segSize) +
		w2.processSegment(1+segSize, segSize) +
		w2.processSegment(1+2*segSize, segSize)

	if got != want {
		t.Errorf("processGrant(1, 3, %d) = %d, want %d (sum of per-segment processSegment calls)", segSize, got, want)
	}
}

func TestComputeDoesNotPanicAcrossSmallX(t *testing.T) {
	for _, x := range []int64{1000, 10000, 100000} {
		pp := newTestProvider(t, x)
		y := int64(10)
		ft := factortable.New(y, y)
		params := Params{X: x, Y: y, Z: y, XStar: y / 2, K: 2, PP: pp, Factor: ft}
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
