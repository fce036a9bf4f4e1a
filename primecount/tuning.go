package primecount

import "math"

// tuning bundles the derived cutoffs spec.md §3 names: y, z, x_star, c,
// k, and the alpha factor(s) that produced them.
type tuning struct {
	Alpha, AlphaY, AlphaZ float64
	Y, Z, XStar           int64
	C, K                  int
}

// deriveDeleglisRivat computes the Deleglise-Rivat tuning parameters
// from x (spec.md §3): alpha's empirical cubic-in-ln(x) default, clamped
// to [1, x^(1/6)] and truncated to 3 decimal digits, then y = floor(x^
// (1/3) * alpha), z = y (Deleglise-Rivat doesn't separate y and z the
// way Gourdon does).
func deriveDeleglisRivat(x float64, alphaOverride float64) tuning {
	lnx := math.Log(x)
	alpha := alphaOverride
	if alpha <= 0 {
		alpha = 0.00156*lnx*lnx*lnx - 0.0539*lnx*lnx + 0.771*lnx - 1.586
	}
	x16 := math.Pow(x, 1.0/6.0)
	if alpha < 1 {
		alpha = 1
	}
	if alpha > x16 {
		alpha = x16
	}
	alpha = truncate3(alpha)

	x13 := math.Cbrt(x)
	y := int64(x13 * alpha)
	if y < 1 {
		y = 1
	}
	z := y

	c := piTinyCap(y)

	return tuning{Alpha: alpha, Y: y, Z: z, C: c}
}

// deriveGourdon computes the Gourdon tuning parameters from x (spec.md
// §3): alpha_y * alpha_z follows the same empirical cubic-in-ln(x)
// default, alpha_z defaults to ~2, enforced alpha_y*alpha_z <= x^(1/6);
// y = floor(x^(1/3)*alpha_y), z = y*alpha_z, x_star clamped to
// [x^(1/4), min(y, sqrt(x/y))].
func deriveGourdon(x float64, alphaYOverride, alphaZOverride float64) tuning {
	lnx := math.Log(x)
	product := alphaYOverride * alphaZOverride
	alphaZ := alphaZOverride
	if alphaZ <= 0 {
		alphaZ = 2.0
	}
	alphaY := alphaYOverride
	if alphaY <= 0 {
		product = 0.00149*lnx*lnx*lnx - 0.0486*lnx*lnx + 0.614*lnx - 0.984
		alphaY = product / alphaZ
	}
	x16 := math.Pow(x, 1.0/6.0)
	if alphaY*alphaZ > x16 {
		alphaY = x16 / alphaZ
	}
	if alphaY < 1 {
		alphaY = 1
	}
	alphaY = truncate3(alphaY)
	alphaZ = truncate3(alphaZ)

	x13 := math.Cbrt(x)
	y := int64(x13 * alphaY)
	if y < 1 {
		y = 1
	}
	z := int64(float64(y) * alphaZ)
	if z < y {
		z = y
	}

	x14 := int64(math.Pow(x, 0.25))
	xCeil := int64(math.Ceil(x / float64(y) / float64(y)))
	xStar := xCeil
	if x14 > xStar {
		xStar = x14
	}
	sqrtXY := int64(math.Sqrt(x / float64(y)))
	maxStar := y
	if sqrtXY < maxStar {
		maxStar = sqrtXY
	}
	if xStar > maxStar {
		xStar = maxStar
	}
	if xStar < 1 {
		xStar = 1
	}

	k := int(smallPi(x14))

	return tuning{AlphaY: alphaY, AlphaZ: alphaZ, Y: y, Z: z, XStar: xStar, K: k}
}

// piTinyCap returns pi(min(n, 20)), capped at 8 (phi-tiny's max a), the
// derivation spec.md §3 gives for "c" (Deleglise-Rivat). Gourdon's "k"
// is the uncapped pi(x^(1/4)), computed in deriveGourdon.
func piTinyCap(n int64) int {
	threshold := n
	if threshold > 20 {
		threshold = 20
	}
	c := 0
	for _, p := range []int64{2, 3, 5, 7, 11, 13, 17, 19} {
		if p > threshold {
			break
		}
		c++
	}
	if c > 8 {
		c = 8
	}
	return c
}

func truncate3(v float64) float64 {
	return math.Trunc(v*1000) / 1000
}
