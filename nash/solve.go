// SPDX-License-Identifier: MIT

package nash

import (
	"context"
	"errors"

	"golang.org/x/sync/errgroup"

	"github.com/gambitproject/gambit-sub018/lemke"
	"github.com/gambitproject/gambit-sub018/lemkehowson"
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
)

// Equilibrium is one mixed-strategy profile found by Lemke–Howson.
type Equilibrium[T num.Number[T]] struct {
	Start   int              // label dropped to start the path
	X       linalg.Vector[T] // player 1 mixed strategy
	Y       linalg.Vector[T] // player 2 mixed strategy
	Pivots  int              // pivots taken along the path
	Payoff1 T                // xᵀAy in the original payoffs
	Payoff2 T                // xᵀBy in the original payoffs
}

// SolveLH follows the Lemke–Howson path that drops label start
// (0..m-1 for player 1's strategies, m..m+n-1 for player 2's) from the
// artificial equilibrium.
// Errors: ErrBadGame, lemkehowson.ErrBadLabel, ErrRay, context errors and
// anything the pivoting core reports.
func SolveLH[T num.Number[T]](ctx context.Context, g *Game[T], start int, opts ...Option) (*Equilibrium[T], error) {
	if g == nil || g.A == nil || g.B == nil {
		return nil, nashErrorf(opSolveLH, ErrBadGame)
	}
	c := resolve(opts)

	return solveLH(ctx, g, start, c)
}

func solveLH[T num.Number[T]](ctx context.Context, g *Game[T], start int, c config) (*Equilibrium[T], error) {
	m, n := g.Strategies()
	a1 := shift(g.A)
	a2 := shift(g.B).Transpose()

	pair, err := lemkehowson.New(a1, a2, linalg.Ones[T](m), linalg.Ones[T](n), c.tableauOptions()...)
	if err != nil {
		return nil, nashErrorf(opSolveLH, err)
	}
	out, err := pair.Run(ctx, start)
	if err != nil {
		return nil, nashErrorf(opSolveLH, err)
	}
	if out == lemke.Ray {
		return nil, nashErrorf(opSolveLH, ErrRay)
	}

	x, y, err := pair.ExtractSolution()
	if err != nil {
		return nil, nashErrorf(opSolveLH, err)
	}
	p1, p2, err := Payoffs(g, x, y)
	if err != nil {
		return nil, nashErrorf(opSolveLH, err)
	}
	c.logger.Debug("equilibrium", "start", start, "pivots", pair.PivotCount(), "x", x.String(), "y", y.String())

	return &Equilibrium[T]{
		Start:   start,
		X:       x,
		Y:       y,
		Pivots:  pair.PivotCount(),
		Payoff1: p1,
		Payoff2: p2,
	}, nil
}

// EnumerateLH runs SolveLH from every start label, each on its own pair,
// with at most WithWorkers paths in flight. Paths ending on a ray are
// skipped. Profiles reached from several labels are reported once, under
// the smallest start label, and results are ordered by start label.
// The first error cancels the remaining paths.
func EnumerateLH[T num.Number[T]](ctx context.Context, g *Game[T], opts ...Option) ([]*Equilibrium[T], error) {
	if g == nil || g.A == nil || g.B == nil {
		return nil, nashErrorf(opEnumerateLH, ErrBadGame)
	}
	c := resolve(opts)
	m, n := g.Strategies()
	found := make([]*Equilibrium[T], m+n)

	grp, gctx := errgroup.WithContext(ctx)
	grp.SetLimit(c.workers)
	for k := 0; k < m+n; k++ {
		k := k
		grp.Go(func() error {
			eq, err := solveLH(gctx, g, k, c)
			if errors.Is(err, ErrRay) {
				return nil
			}
			if err != nil {
				return err
			}
			found[k] = eq
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, nashErrorf(opEnumerateLH, err)
	}

	tol := num.Tolerance[T](c.epsilon())
	out := make([]*Equilibrium[T], 0, len(found))
	for _, eq := range found {
		if eq == nil {
			continue
		}
		dup := false
		for _, seen := range out {
			if sameVector(eq.X, seen.X, tol) && sameVector(eq.Y, seen.Y, tol) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, eq)
		}
	}
	c.logger.Debug("enumeration done", "labels", m+n, "equilibria", len(out))

	return out, nil
}

// SolveLCP runs Lemke's algorithm on w = q + M·z and returns (z, w) with
// the outcome. On a ray z and w are nil.
func SolveLCP[T num.Number[T]](ctx context.Context, m *linalg.Dense[T], q linalg.Vector[T], opts ...Option) (z, w linalg.Vector[T], out lemke.Outcome, err error) {
	c := resolve(opts)
	lcp, err := lemke.NewLCP(m, q, c.tableauOptions()...)
	if err != nil {
		return nil, nil, lemke.Unknown, nashErrorf(opSolveLCP, err)
	}
	if out, err = lcp.Solve(ctx); err != nil {
		return nil, nil, lemke.Unknown, nashErrorf(opSolveLCP, err)
	}
	if out == lemke.Ray {
		return nil, nil, out, nil
	}
	z, w = lcp.Solution()

	return z, w, out, nil
}

func sameVector[T num.Number[T]](a, b linalg.Vector[T], tol T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !num.NearZero(a[i].Sub(b[i]), tol) {
			return false
		}
	}

	return true
}
