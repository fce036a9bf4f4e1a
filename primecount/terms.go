package primecount

import (
	"github.com/pchuck/primecount/internal/aux"
	"github.com/pchuck/primecount/internal/easy"
	"github.com/pchuck/primecount/internal/factortable"
	"github.com/pchuck/primecount/internal/hard"
	"github.com/pchuck/primecount/internal/phi"
)

// Term names the individual summation terms spec.md §4.10/§6 exposes
// standalone (mirrored 1:1 by cmd/primecount's --P2/--S1/... flags, the
// teacher's own style of exposing internal stages directly from the
// CLI for debugging rather than only the combined pi(x) result).
type Term int

const (
	TermP2 Term = iota
	TermS1
	TermS2Easy
	TermS2Hard
	TermS2Trivial
	TermAC
	TermB
	TermD
	TermPhi0
	TermSigma
)

// ComputeTerm evaluates a single named term of the Deleglise-Rivat/
// Gourdon formulas in isolation, deriving tuning parameters from x the
// same way PiInt64 would (spec.md §9's test harness property "every
// term is independently computable and testable").
func ComputeTerm(term Term, x int64, threads int) (int64, error) {
	if x < 2 {
		return 0, ErrRange
	}
	if threads < 1 {
		threads = 1
	}
	fx := float64(x)
	gourdonTerm := term == TermAC || term == TermB || term == TermD || term == TermPhi0 || term == TermSigma
	var t tuning
	if gourdonTerm {
		t = deriveGourdon(fx, 0, 0)
	} else {
		t = deriveDeleglisRivat(fx, 0)
	}

	maxX := maxI64(x, t.Z)
	maxX = maxI64(maxX, isqrt(x)+1)
	if t.XStar > 0 {
		maxX = maxI64(maxX, t.XStar)
	}
	pp, err := newProvider(maxX)
	if err != nil {
		return 0, err
	}

	var ft *factortable.Table
	switch term {
	case TermS2Hard, TermD:
		ft = factortable.New(t.Z, t.Y)
	}

	switch term {
	case TermP2:
		return aux.P2(x, pp.Pi(t.Y), pp), nil
	case TermS1:
		return aux.S1(x, t.Y, t.C, pp), nil
	case TermS2Easy:
		return aux.S2Easy(x, t.Y, t.Z, t.C, pp), nil
	case TermS2Trivial:
		return aux.S2Trivial(t.Y, t.Z, t.C, pp), nil
	case TermS2Hard:
		return hard.Compute(hard.Params{X: x, Y: t.Y, Z: t.Z, XStar: t.Y, K: t.C, PP: pp, Factor: ft}, threads), nil
	case TermAC:
		return easy.Compute(easy.Params{X: x, Y: t.Y, Z: t.Z, XStar: t.XStar, K: t.K, PP: pp}, threads), nil
	case TermB:
		return aux.B(x, t.Y, t.XStar, pp), nil
	case TermD:
		return hard.Compute(hard.Params{X: x, Y: t.Y, Z: t.Z, XStar: t.XStar, K: t.K, PP: pp, Factor: ft}, threads), nil
	case TermPhi0:
		cache := phi.NewCache(pp)
		return aux.Phi0(x, t.K, cache), nil
	case TermSigma:
		return aux.Sigma(x, t.XStar, t.K, pp), nil
	default:
		return 0, ErrRange
	}
}
