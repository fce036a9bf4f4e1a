package primecount

import "math"

// isqrt/icbrt are the same binary-search-refined integer root helpers
// every other package in this repo keeps locally rather than sharing
// (spec.md's components are meant to stay independently testable
// units, and the teacher's own packages each carry their own tiny
// math helpers rather than a shared util package).
func isqrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(math.Sqrt(float64(n)))
	for r*r > n {
		r--
	}
	for (r+1)*(r+1) <= n {
		r++
	}
	return r
}

func icbrt(n int64) int64 {
	if n <= 0 {
		return 0
	}
	r := int64(math.Cbrt(float64(n)))
	for r*r*r > n {
		r--
	}
	for (r+1)*(r+1)*(r+1) <= n {
		r++
	}
	return r
}

func minI64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}

func maxI64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
