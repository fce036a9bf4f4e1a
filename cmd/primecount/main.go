package main

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"

	"github.com/pchuck/primecount"
	"github.com/pchuck/primecount/internal/u128"
)

// VERSION is injected by buildflags, mirroring the teacher's cmd/primes
// convention.
var VERSION = "SELFBUILD"

func main() {
	app := cli.NewApp()
	app.Name = "primecount"
	app.Usage = "count primes <= x using Deleglise-Rivat / Gourdon"
	app.Version = VERSION
	app.Flags = []cli.Flag{
		cli.IntFlag{Name: "threads, t", Value: runtime.NumCPU(), Usage: "number of worker threads"},
		cli.Float64Flag{Name: "alpha, a", Usage: "alpha (Deleglise-Rivat tuning); accepted but not applied, alpha is always derived from x"},
		cli.Float64Flag{Name: "alpha-y", Usage: "alpha_y (Gourdon tuning); accepted but not applied, alpha_y is always derived from x"},
		cli.Float64Flag{Name: "alpha-z", Usage: "alpha_z (Gourdon tuning); accepted but not applied, alpha_z is always 2"},
		cli.BoolFlag{Name: "status, s", Usage: "print the total elapsed time to stderr when done (no live progress)"},
		cli.BoolFlag{Name: "deleglise-rivat", Usage: "force the Deleglise-Rivat formula"},
		cli.BoolFlag{Name: "gourdon", Usage: "force Gourdon's formula"},
		cli.BoolFlag{Name: "gourdon-64", Usage: "force Gourdon's formula, 64-bit path"},
		cli.BoolFlag{Name: "gourdon-128", Usage: "force Gourdon's formula (same int64 path as --gourdon; there is no 128-bit path)"},
		cli.BoolFlag{Name: "meissel", Usage: "use Meissel's formula"},
		cli.BoolFlag{Name: "legendre", Usage: "use Legendre's formula"},
		cli.BoolFlag{Name: "lmo", Usage: "use the Meissel-Lagarias-Miller-Odlyzko formula (Lehmer fallback)"},
		cli.BoolFlag{Name: "nth-prime", Usage: "compute the n-th prime instead of pi(x)"},
		cli.BoolFlag{Name: "phi", Usage: "compute phi(x, a); pass a via --number"},
		cli.Int64Flag{Name: "number", Usage: "secondary integer argument (phi's a, etc.)"},
		cli.BoolFlag{Name: "P2", Usage: "compute the P2(x,a) term only"},
		cli.BoolFlag{Name: "S1", Usage: "compute the S1 term only"},
		cli.BoolFlag{Name: "S2-easy", Usage: "compute the S2_easy term only"},
		cli.BoolFlag{Name: "S2-hard", Usage: "compute the S2_hard term only"},
		cli.BoolFlag{Name: "S2-trivial", Usage: "compute the S2_trivial term only"},
		cli.BoolFlag{Name: "AC", Usage: "compute the A+C term only (Gourdon)"},
		cli.BoolFlag{Name: "B", Usage: "compute the B term only (Gourdon)"},
		cli.BoolFlag{Name: "D", Usage: "compute the D term only (Gourdon)"},
		cli.BoolFlag{Name: "Phi0", Usage: "compute the Phi0 term only (Gourdon)"},
		cli.BoolFlag{Name: "Sigma", Usage: "compute the Sigma term only (Gourdon)"},
		cli.BoolFlag{Name: "Li", Usage: "compute the logarithmic integral Li(x)"},
		cli.BoolFlag{Name: "Li-inverse", Usage: "compute the inverse logarithmic integral"},
		cli.BoolFlag{Name: "RiemannR", Usage: "compute Riemann's R(x)"},
		cli.BoolFlag{Name: "RiemannR-inverse", Usage: "compute the inverse of Riemann's R(x)"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint(err.Error()))
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		return cli.NewExitError("primecount: missing x (or n for --nth-prime)", 1)
	}
	arg, err := strconv.ParseFloat(c.Args().Get(0), 64)
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("primecount: invalid number %q: %v", c.Args().Get(0), err), 1)
	}

	switch {
	case c.Bool("Li"):
		fmt.Println(primecount.Li(arg))
		return nil
	case c.Bool("Li-inverse"):
		fmt.Println(primecount.LiInverse(arg))
		return nil
	case c.Bool("RiemannR"):
		fmt.Println(primecount.RiemannR(arg))
		return nil
	case c.Bool("RiemannR-inverse"):
		fmt.Println(primecount.RiemannRInverse(arg))
		return nil
	}

	x := int64(arg)

	if c.Bool("phi") {
		a := int(c.Int64("number"))
		result, err := primecount.Phi(x, a)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}

	if c.Bool("nth-prime") {
		result, err := primecount.NthPrime(uint64(x))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}

	if c.Bool("legendre") {
		result, err := primecount.Legendre(x)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}
	if c.Bool("meissel") {
		result, err := primecount.Meissel(x)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}
	if c.Bool("lmo") {
		result, err := primecount.Lehmer(x)
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}

	termFlags := map[string]primecount.Term{
		"P2": primecount.TermP2, "S1": primecount.TermS1,
		"S2-easy": primecount.TermS2Easy, "S2-hard": primecount.TermS2Hard,
		"S2-trivial": primecount.TermS2Trivial, "AC": primecount.TermAC,
		"B": primecount.TermB, "D": primecount.TermD,
		"Phi0": primecount.TermPhi0, "Sigma": primecount.TermSigma,
	}
	for flagName, term := range termFlags {
		if !c.Bool(flagName) {
			continue
		}
		result, err := primecount.ComputeTerm(term, x, c.Int("threads"))
		if err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		fmt.Println(result)
		return nil
	}

	threads := c.Int("threads")
	if threads <= 0 {
		threads = runtime.NumCPU()
	}

	forceGourdon := c.Bool("gourdon") || c.Bool("gourdon-64") || c.Bool("gourdon-128")
	forceDR := c.Bool("deleglise-rivat")

	start := time.Now()
	var result int64
	switch {
	case forceGourdon:
		result, err = primecount.PiWithAlgo(x, threads, true)
	case forceDR:
		result, err = primecount.PiWithAlgo(x, threads, false)
	default:
		var u u128.U128
		u, err = primecount.PiThreads(u128.From64(uint64(x)), threads)
		if err == nil {
			result = int64(u.Lo)
		}
	}
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}
	fmt.Println(result)

	if c.Bool("status") {
		fmt.Fprintf(os.Stderr, "%s\n", color.New(color.FgCyan).Sprintf("done in %s", time.Since(start).Round(time.Millisecond)))
	}
	return nil
}
