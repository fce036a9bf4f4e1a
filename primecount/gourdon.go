package primecount

import (
	"github.com/pchuck/primecount/internal/aux"
	"github.com/pchuck/primecount/internal/easy"
	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/hard"
	"github.com/pchuck/primecount/internal/phi"
)

// gourdon computes pi(x) via Gourdon's formula (spec.md §4.1, §9):
// A(x,y) + B(x,y) + C(x,y) + D(x,y) + pi(y) - 1 - Phi0 - Sigma. A and C
// are merged into a single internal/easy.Compute pass (the engine is
// Gourdon-specific, unlike D/S2_hard which both formulas share).
func gourdon(x int64, t tuning, pp phi.PrimeProvider, ft *factortable.Table, numWorkers int) int64 {
	ep := easy.Params{
		X: x, Y: t.Y, Z: t.Z, XStar: t.XStar, K: t.K, PP: pp,
	}
	ac := easy.Compute(ep, numWorkers)

	b := aux.B(x, t.Y, t.XStar, pp)

	hp := hard.Params{
		X: x, Y: t.Y, Z: t.Z, XStar: t.XStar, K: t.K,
		PP: pp, Factor: ft,
	}
	d := hard.Compute(hp, numWorkers)

	piY := pp.Pi(t.Y)

	cache := phi.NewCache(pp)
	phi0 := aux.Phi0(x, t.K, cache)
	sigma := aux.Sigma(x, t.XStar, t.K, pp)

	return ac + b + d + piY - 1 - phi0 - sigma
}
