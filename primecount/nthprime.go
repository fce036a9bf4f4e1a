package primecount

// NthPrime returns the n-th prime (1-indexed: NthPrime(1) == 2),
// spec.md §6. It estimates an upper bound via RiemannRInverse (tighter
// than Li's, spec.md §4.11's rate-estimation idiom applied to the
// inverse problem), doubling until PiInt64 confirms the bound actually
// covers n primes, then binary-searches for the smallest x with
// pi(x) >= n.
func NthPrime(n uint64) (uint64, error) {
	if n == 0 {
		return 0, ErrRange
	}
	if n <= 3 {
		return []uint64{0, 2, 3, 5}[n], nil
	}

	hi := int64(RiemannRInverse(float64(n))) + 10
	for {
		pi, err := PiInt64(hi)
		if err != nil {
			return 0, err
		}
		if pi >= int64(n) {
			break
		}
		hi *= 2
	}

	lo := int64(2)
	for lo < hi {
		mid := lo + (hi-lo)/2
		pi, err := PiInt64(mid)
		if err != nil {
			return 0, err
		}
		if pi >= int64(n) {
			hi = mid
		} else {
			lo = mid + 1
		}
	}
	return uint64(lo), nil
}
