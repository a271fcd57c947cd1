// SPDX-License-Identifier: MIT

// Package lemkehowson finds one Nash equilibrium of a two-player game with
// the Lemke–Howson algorithm on two linked tableaus:
//
//	T1:  A1·y + r = b1   (A1 m×n, one row per strategy of player 1)
//	T2:  A2·x + s = b2   (A2 n×m, one row per strategy of player 2)
//
// With positive payoff matrices A (player 1) and B (player 2), A1 = A and
// A2 = Bᵀ with b1, b2 all ones describe the best-response polytopes.
//
// Strategy labels 0..m-1 belong to player 1 and are carried by x_i (in T2)
// and r_i (in T1); labels m..m+n-1 belong to player 2 and are carried by
// y_j (in T1) and s_j (in T2). The two variables carrying a label are
// complementary. Variables get pair-global ids by range: T1 owns [0, n+m)
// and T2 owns [n+m, 2(n+m)), so finding a variable's tableau is a range
// test and neither tableau refers to the other.
//
// A Pair is not safe for concurrent use; run independent pairs to search
// in parallel.
package lemkehowson

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/gambitproject/gambit-sub018/lemke"
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
	"github.com/gambitproject/gambit-sub018/tableau"
)

// Pair is the coupled tableau state of one Lemke–Howson run.
type Pair[T num.Number[T]] struct {
	t1, t2 *lemke.Tableau[T]
	m, n   int

	opts tableau.Options
	log  hclog.Logger
}

// New builds the pair from A1 (m×n), A2 (n×m), b1 (len m) and b2 (len n),
// both tableaus starting at their slack bases (the artificial equilibrium).
// Options apply to both tableaus; the pivot hook and pivot limit apply to
// the pair as a whole, and WithBasis is ignored.
// Errors: linalg.ErrNilMatrix, linalg.ErrDimensionMismatch, and whatever
// tableau construction returns.
func New[T num.Number[T]](a1, a2 *linalg.Dense[T], b1, b2 linalg.Vector[T], opts ...tableau.Option) (*Pair[T], error) {
	if err := linalg.ValidateNotNil(a1); err != nil {
		return nil, lhErrorf(opNew, err)
	}
	if err := linalg.ValidateNotNil(a2); err != nil {
		return nil, lhErrorf(opNew, err)
	}
	m, n := a1.Rows(), a1.Cols()
	if a2.Rows() != n || a2.Cols() != m {
		return nil, lhErrorf(opNew, linalg.ErrDimensionMismatch)
	}

	o := tableau.Resolve(opts...)
	log := o.Logger().Named("lemkehowson")
	child := func(name string) []tableau.Option {
		return append(append([]tableau.Option(nil), opts...),
			tableau.WithBasis(nil),
			tableau.WithPivotHook(nil),
			tableau.WithMaxPivots(0),
			tableau.WithLogger(log.Named(name)),
		)
	}

	t1, err := lemke.New(a1, b1, tableau.NoVariable, nil, child("t1")...)
	if err != nil {
		return nil, lhErrorf(opNew, err)
	}
	t2, err := lemke.New(a2, b2, tableau.NoVariable, nil, child("t2")...)
	if err != nil {
		return nil, lhErrorf(opNew, err)
	}

	return &Pair[T]{t1: t1, t2: t2, m: m, n: n, opts: o, log: log}, nil
}

// Players returns the strategy counts (m, n).
func (p *Pair[T]) Players() (int, int) { return p.m, p.n }

// Labels returns the number of strategy labels, m+n.
func (p *Pair[T]) Labels() int { return p.m + p.n }

// PivotCount is the diagnostic number of pivots across both tableaus.
func (p *Pair[T]) PivotCount() int { return p.t1.PivotCount() + p.t2.PivotCount() }

// size is the number of variables per tableau, n+m.
func (p *Pair[T]) size() int { return p.m + p.n }

// owner resolves a pair-global id into its tableau and local label.
func (p *Pair[T]) owner(g int) (*lemke.Tableau[T], int) {
	if g < p.size() {
		return p.t1, g
	}

	return p.t2, g - p.size()
}

// label returns the strategy label carried by variable g.
func (p *Pair[T]) label(g int) int {
	if g < p.size() {
		if g < p.n {
			return p.m + g // y_g
		}
		return g - p.n // r_i
	}

	return g - p.size() // x_i keeps i, s_j sits at local m+j
}

// complement returns the variable carrying the same label in the other
// tableau.
func (p *Pair[T]) complement(g int) int {
	size := p.size()
	if g < size {
		if g < p.n {
			return size + p.m + g // y_j ↔ s_j
		}
		return size + g - p.n // r_i ↔ x_i
	}
	l := g - size
	if l < p.m {
		return p.n + l // x_i ↔ r_i
	}

	return l - p.m // s_j ↔ y_j
}

// carriers returns the two variables carrying label k: (T1 var, T2 var).
func (p *Pair[T]) carriers(k int) (int, int) {
	size := p.size()
	if k < p.m {
		return p.n + k, size + k // r_k, x_k
	}
	j := k - p.m

	return j, size + p.m + j // y_j, s_j
}

func (p *Pair[T]) isBasic(g int) bool {
	tab, local := p.owner(g)
	return tab.IsBasic(local)
}

// Run follows the Lemke–Howson path that drops label dup from the current
// complementary basis: the complement of whichever variable carrying dup
// is basic enters, and each evicted variable's complement enters next in
// the other tableau. The run stops when a variable carrying dup leaves
// (Solved) or a ratio test finds no exiting row (Ray).
//
// ctx is polled once per pivot; on cancellation both tableaus are
// discarded and the context error is returned wrapped.
// Errors: ErrBadLabel, lemke.ErrPivotLimit, tableau.ErrDiscarded, and
// pivot failures.
func (p *Pair[T]) Run(ctx context.Context, dup int) (lemke.Outcome, error) {
	if dup < 0 || dup >= p.Labels() {
		return lemke.Unknown, lhErrorf(opRun, ErrBadLabel)
	}
	c1, c2 := p.carriers(dup)
	var entering int
	switch b1, b2 := p.isBasic(c1), p.isBasic(c2); {
	case b1 && !b2:
		entering = c2
	case b2 && !b1:
		entering = c1
	default:
		return lemke.Unknown, lhErrorf(opRun, ErrBadLabel)
	}

	limit := p.opts.MaxPivots()
	hook := p.opts.Hook()
	p.log.Debug("run", "label", dup, "entering", entering)
	for {
		if err := ctx.Err(); err != nil {
			p.t1.Discard()
			p.t2.Discard()
			p.log.Debug("run canceled", "label", dup, "pivots", p.PivotCount())
			return lemke.Unknown, lhErrorf(opRun, err)
		}
		if limit > 0 && p.PivotCount() >= limit {
			return lemke.Unknown, lhErrorf(opRun, lemke.ErrPivotLimit)
		}

		tab, local := p.owner(entering)
		left, err := tab.Enter(local)
		if err != nil {
			return lemke.Unknown, lhErrorf(opRun, err)
		}
		if left == tableau.NoVariable {
			p.log.Debug("secondary ray", "label", dup, "pivots", p.PivotCount())
			return lemke.Ray, nil
		}
		leaving := left
		if tab == p.t2 {
			leaving += p.size()
		}

		if hook != nil {
			hook(tableau.PivotEvent{
				Step:     p.PivotCount(),
				Row:      tab.Find(local),
				Entering: entering,
				Leaving:  leaving,
				Basis:    p.Basis(),
			})
		}

		if p.label(leaving) == dup {
			p.log.Debug("equilibrium", "label", dup, "pivots", p.PivotCount())
			return lemke.Solved, nil
		}
		entering = p.complement(leaving)
	}
}

// Basis returns the pair-global ids of all basic variables, T1's rows
// first.
func (p *Pair[T]) Basis() []int {
	b1, b2 := p.t1.Basis(), p.t2.Basis()
	out := make([]int, 0, len(b1)+len(b2))
	out = append(out, b1...)
	for _, l := range b2 {
		out = append(out, l+p.size())
	}

	return out
}

// ExtractSolution reads x (player 1, from T2) and y (player 2, from T1) off
// the current basis with non-basic entries at zero and normalizes each to
// sum one.
// Errors: ErrNoSolution when a player's values sum to zero.
func (p *Pair[T]) ExtractSolution() (x, y linalg.Vector[T], err error) {
	x = linalg.NewVector[T](p.m)
	for i := range x {
		x[i] = p.t2.Value(i)
	}
	y = linalg.NewVector[T](p.n)
	for j := range y {
		y[j] = p.t1.Value(j)
	}

	if x, err = normalize(x, p.t2.Tolerance()); err != nil {
		return nil, nil, lhErrorf(opExtract, err)
	}
	if y, err = normalize(y, p.t1.Tolerance()); err != nil {
		return nil, nil, lhErrorf(opExtract, err)
	}

	return x, y, nil
}

func normalize[T num.Number[T]](v linalg.Vector[T], tol T) (linalg.Vector[T], error) {
	sum := v.Sum()
	if num.NearZero(sum, tol) {
		return nil, ErrNoSolution
	}
	for i := range v {
		v[i] = v[i].Quo(sum)
	}

	return v, nil
}
