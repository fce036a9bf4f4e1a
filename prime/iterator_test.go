package prime

import "testing"

func TestIteratorAscendingMatchesBruteForce(t *testing.T) {
	const lo, hi = 50, 5000
	want := bruteSieve(hi + 1)
	var filtered []int
	for _, p := range want {
		if p >= lo {
			filtered = append(filtered, p)
		}
	}

	it := NewIterator(lo, hi)
	var got []int
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	assertEqualSlices(t, "Iterator ascending", got, filtered)
}

func TestIteratorDescendingMatchesBruteForce(t *testing.T) {
	const hi = 5000
	want := bruteSieve(hi + 1)

	it := NewDescendingIterator(hi)
	var got []int
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	// got is descending; reverse it to compare against ascending want.
	for i, j := 0, len(got)-1; i < j; i, j = i+1, j-1 {
		got[i], got[j] = got[j], got[i]
	}
	assertEqualSlices(t, "Iterator descending", got, want)
}

func TestIteratorAscendingCrossesBatchBoundary(t *testing.T) {
	// Force multiple internal batch refills by windowing across the
	// iterator's batch size with a small range near the boundary.
	const lo, hi = iteratorBatchSize-10, iteratorBatchSize+10
	want := []int{}
	for i := lo; i <= hi; i++ {
		if bruteIsPrime(i) {
			want = append(want, i)
		}
	}
	it := NewIterator(lo, hi)
	var got []int
	for {
		p, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, p)
	}
	assertEqualSlices(t, "Iterator batch boundary", got, want)
}
