package pitable

import "testing"

func TestPiKnownValues(t *testing.T) {
	tbl, err := New(1000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	tests := []struct {
		x    int64
		want int64
	}{
		{0, 0}, {1, 0}, {2, 1}, {3, 2}, {4, 2}, {5, 3}, {6, 3},
		{7, 4}, {10, 4}, {11, 5}, {100, 25}, {1000, 168},
	}
	for _, tt := range tests {
		if got := tbl.Pi(tt.x); got != tt.want {
			t.Errorf("Pi(%d) = %d, want %d", tt.x, got, tt.want)
		}
	}
}

func TestPiMonotonic(t *testing.T) {
	tbl, err := New(5000)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	prev := int64(0)
	for x := int64(0); x <= 5000; x++ {
		cur := tbl.Pi(x)
		if cur < prev {
			t.Fatalf("Pi(%d) = %d < Pi(%d) = %d, not monotonic", x, cur, x-1, prev)
		}
		if cur > prev+1 {
			t.Fatalf("Pi(%d) = %d jumped by more than 1 from Pi(%d) = %d", x, cur, x-1, prev)
		}
		prev = cur
	}
}

func TestMaxCached(t *testing.T) {
	tbl, err := New(42)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := tbl.MaxCached(); got != 42 {
		t.Errorf("MaxCached() = %d, want 42", got)
	}
}
