package primecount

import (
	"github.com/pchuck/primecount/internal/aux"
	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/hard"
	"github.com/pchuck/primecount/internal/phi"
)

// deleglisRivat computes pi(x) via the Deleglise-Rivat formula (spec.md
// §4.1, §9): S1 + S2_trivial + S2_easy + S2_hard + pi(y) - 1 - P2,
// y = z (Deleglise-Rivat keeps a single cutoff, unlike Gourdon's
// separate y/z). hard.Compute serves as S2_hard here exactly as it
// does Gourdon's D(x,y) term below — spec.md's own wording names D/
// S2_hard as the engine "both formulas" share.
func deleglisRivat(x int64, t tuning, pp phi.PrimeProvider, ft *factortable.Table, numWorkers int) int64 {
	s1 := aux.S1(x, t.Y, t.C, pp)
	s2Trivial := aux.S2Trivial(t.Y, t.Z, t.C, pp)
	s2Easy := aux.S2Easy(x, t.Y, t.Z, t.C, pp)

	hp := hard.Params{
		X: x, Y: t.Y, Z: t.Z, XStar: t.Y, K: t.C,
		PP: pp, Factor: ft,
	}
	s2Hard := hard.Compute(hp, numWorkers)

	piY := pp.Pi(t.Y)
	p2 := aux.P2(x, piY, pp)

	return s1 + s2Trivial + s2Easy + s2Hard + piY - 1 - p2
}
