package balancer

import "testing"

func TestGetWorkCoversWholeRangeExactlyOnce(t *testing.T) {
	const limit = 100000
	b := New(limit, 240)

	var covered int64
	for {
		g, ok := b.GetWork()
		if !ok {
			break
		}
		if g.Low != covered+1 {
			t.Fatalf("grant.Low = %d, want %d (gap or overlap)", g.Low, covered+1)
		}
		covered += g.Segments * g.SegmentSize
		// simulate the worker reporting a nonzero partial sum so the
		// balancer exits ramp-up after the first grant.
		b.Report(1, 0.01, 0.001)
	}
	if covered < limit {
		t.Errorf("covered %d, want at least %d", covered, limit)
	}
}

func TestGetWorkStopsPastLimit(t *testing.T) {
	b := New(1000, 240)
	for i := 0; i < 1000; i++ {
		g, ok := b.GetWork()
		if !ok {
			return
		}
		b.Report(1, 0.01, 0.001)
		_ = g
	}
	t.Fatalf("GetWork never returned ok=false after 1000 iterations")
}

func TestSumAccumulatesReportedPartials(t *testing.T) {
	b := New(10000, 240)
	var total int64
	for i := 0; i < 5; i++ {
		if _, ok := b.GetWork(); !ok {
			break
		}
		b.Report(int64(i+1), 0.01, 0.001)
		total += int64(i + 1)
	}
	if got := b.Sum(); got != total {
		t.Errorf("Sum() = %d, want %d", got, total)
	}
}

func TestRampUpDoublesSegmentSizeUntilNonzeroSum(t *testing.T) {
	b := New(1 << 30, 240)
	g1, _ := b.GetWork()
	b.Report(0, 0.01, 0.001) // zero partial sum: still ramping up
	g2, _ := b.GetWork()
	if g2.SegmentSize <= g1.SegmentSize {
		t.Errorf("expected segment size to grow during ramp-up: %d -> %d", g1.SegmentSize, g2.SegmentSize)
	}
}

func TestSetStatusFuncInvokedDuringGetWork(t *testing.T) {
	b := New(1000, 240)
	var calls int
	b.SetStatusFunc(func(percent, remainingSecs float64) {
		calls++
		if percent < 0.1 || percent > 100 {
			t.Errorf("percent out of bounds: %f", percent)
		}
	})
	b.GetWork()
	if calls != 1 {
		t.Errorf("status callback invoked %d times, want 1", calls)
	}
}
