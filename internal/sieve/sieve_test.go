package sieve

import "testing"

// wheel30Offsets lists the residues mod 30 a sieve byte actually tracks.
var wheel30Offsets = []int64{1, 7, 11, 13, 17, 19, 23, 29}

func isWheelCoprime(n int64) bool {
	for _, o := range wheel30Offsets {
		if n%30 == o {
			return true
		}
	}
	return false
}

// referenceAlive computes, for [low, high), which wheel-eligible offsets
// survive after crossing off every multiple of each prime in primes.
func referenceAlive(low, high int64, primes []int64) map[int64]bool {
	alive := make(map[int64]bool)
	for n := low; n < high; n++ {
		if isWheelCoprime(n) {
			alive[n] = true
		}
	}
	for _, p := range primes {
		k := low/p + 1
		for m := p * k; m < high; m += p {
			if isWheelCoprime(m) {
				alive[m] = false
			}
		}
	}
	return alive
}

func countAlive(alive map[int64]bool, low, hi int64) int64 {
	var c int64
	for n, v := range alive {
		if v && n >= low && n < hi {
			c++
		}
	}
	return c
}

func TestPreSieveAndCount(t *testing.T) {
	const low, size = 0, 720 // 3 blocks of 240
	s := New(low, size)
	primes := []int64{7, 11, 13}
	s.PreSieve(primes)
	s.InitCounter()

	want := countAlive(referenceAlive(low, low+size, primes), low, low+size)
	if got := s.GetTotalCount(); got != want {
		t.Errorf("GetTotalCount() = %d, want %d", got, want)
	}
	if got := s.Count(low, low+size-1); got != want {
		t.Errorf("Count(%d,%d) = %d, want %d", low, low+size-1, got, want)
	}
}

func TestCrossOffCountDecrementsTotal(t *testing.T) {
	const low, size = 0, 720
	s := New(low, size)
	s.PreSieve([]int64{7})
	s.InitCounter()
	before := s.GetTotalCount()

	st := s.Add(17)
	s.CrossOffCount(17, &st)

	want := countAlive(referenceAlive(low, low+size, []int64{7, 17}), low, low+size)
	if got := s.GetTotalCount(); got != want {
		t.Errorf("GetTotalCount() after cross-off 17 = %d, want %d", got, want)
	}
	if before <= want {
		t.Errorf("expected total count to strictly decrease: before=%d after=%d", before, want)
	}
}

func TestCountStopMatchesCount(t *testing.T) {
	const low, size = 0, 720
	s := New(low, size)
	s.PreSieve([]int64{7, 11})
	s.InitCounter()

	for _, stopLocal := range []int64{0, 29, 30, 239, 240, 480, 719} {
		want := s.Count(low, low+stopLocal)
		if got := s.CountStop(stopLocal); got != want {
			t.Errorf("CountStop(%d) = %d, want %d", stopLocal, got, want)
		}
	}
}

// TestCrossOffCountResetsCursorForNextPrime guards against the cursor
// staleness bug the D engine hit: CountStop's counter_/counterSum
// cursor only ever advances, so a prime whose leaf loop walks stop up
// to a large value must not leave that cursor position behind for the
// next prime's leaf loop, which always restarts its own count(stop)
// sequence from a small stop.
func TestCrossOffCountResetsCursorForNextPrime(t *testing.T) {
	const low, size = 0, 720
	s := New(low, size)
	s.PreSieve([]int64{7, 11})
	s.InitCounter()

	// Drive the cursor far forward with a large CountStop, as a D engine
	// worker's leaf loop does for one b, then cross that prime off.
	far := s.CountStop(700)
	if far == 0 {
		t.Fatal("CountStop(700) = 0, setup invalid")
	}
	st := s.Add(13)
	s.CrossOffCount(13, &st)

	// The next prime's leaf loop queries a small stop first; this must
	// match a stateless Count over the same small window, not the
	// stale cursor's inflated partial sum from the prime above.
	want := s.Count(low, low+29)
	if got := s.CountStop(29); got != want {
		t.Errorf("CountStop(29) after CrossOffCount = %d, want %d (cursor not reset)", got, want)
	}
}

func TestResetRebasesSegment(t *testing.T) {
	s := New(0, 720)
	s.PreSieve([]int64{7})
	s.InitCounter()
	firstTotal := s.GetTotalCount()

	s.Reset(720)
	if s.Low() != 720 || s.High() != 1440 {
		t.Fatalf("Reset(720): Low()=%d High()=%d, want 720/1440", s.Low(), s.High())
	}
	s.PreSieve([]int64{7})
	s.InitCounter()
	secondTotal := s.GetTotalCount()

	// both segments are the same size and pre-sieved with the same prime
	// set, so their unsieved-bit counts should be close (wheel residue
	// count is identical per 240-block; only boundary effects from the
	// single pre-sieved prime can differ).
	if firstTotal == 0 || secondTotal == 0 {
		t.Errorf("expected nonzero counts, got first=%d second=%d", firstTotal, secondTotal)
	}
}
