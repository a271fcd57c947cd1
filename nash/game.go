// SPDX-License-Identifier: MIT

package nash

import (
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
)

// Game is a bimatrix game: player 1 picks a row, player 2 a column, and
// they receive A[i][j] and B[i][j].
type Game[T num.Number[T]] struct {
	A *linalg.Dense[T]
	B *linalg.Dense[T]
}

// NewGame validates that a and b are non-nil and of the same shape.
func NewGame[T num.Number[T]](a, b *linalg.Dense[T]) (*Game[T], error) {
	if a == nil || b == nil {
		return nil, nashErrorf(opNewGame, ErrBadGame)
	}
	if err := linalg.ValidateSameShape(a, b); err != nil {
		return nil, nashErrorf(opNewGame, ErrBadGame)
	}

	return &Game[T]{A: a.Clone(), B: b.Clone()}, nil
}

// FromGonum converts float payoff matrices into a Game over T.
// NaN and ±Inf entries are rejected with ErrBadGame.
func FromGonum[T num.Number[T]](a, b mat.Matrix) (*Game[T], error) {
	if a == nil || b == nil {
		return nil, nashErrorf(opFromGonum, ErrBadGame)
	}
	r, c := a.Dims()
	if br, bc := b.Dims(); br != r || bc != c {
		return nil, nashErrorf(opFromGonum, ErrBadGame)
	}

	// Stage 1: reject non-finite payoffs before any conversion
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if !finite(a.At(i, j)) || !finite(b.At(i, j)) {
				return nil, nashErrorf(opFromGonum, ErrBadGame)
			}
		}
	}

	// Stage 2: convert into T
	var zero T
	am, err := linalg.NewDense[T](r, c)
	if err != nil {
		return nil, nashErrorf(opFromGonum, err)
	}
	bm, _ := linalg.NewDense[T](r, c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			_ = am.Set(i, j, zero.FromFloat(a.At(i, j)))
			_ = bm.Set(i, j, zero.FromFloat(b.At(i, j)))
		}
	}

	return &Game[T]{A: am, B: bm}, nil
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

// Strategies returns the strategy counts (m, n).
func (g *Game[T]) Strategies() (int, int) { return g.A.Rows(), g.A.Cols() }

// Payoffs returns the expected payoffs xᵀAy and xᵀBy.
func Payoffs[T num.Number[T]](g *Game[T], x, y linalg.Vector[T]) (T, T, error) {
	var zero T
	ay, by, err := responses(g, x, y)
	if err != nil {
		return zero, zero, nashErrorf(opPayoffs, err)
	}
	p1, _ := x.Dot(ay)
	p2, _ := x.Dot(by)

	return p1, p2, nil
}

// IsEquilibrium reports whether (x, y) is a Nash equilibrium of g: both are
// probability vectors and neither player has a pure strategy paying more
// than the profile, up to the zero tolerance of T (exact for num.Rat).
func IsEquilibrium[T num.Number[T]](g *Game[T], x, y linalg.Vector[T], eps float64) (bool, error) {
	ay, by, err := responses(g, x, y)
	if err != nil {
		return false, nashErrorf(opIsEquilibrium, err)
	}
	tol := num.Tolerance[T](eps)
	if !isDistribution(x, tol) || !isDistribution(y, tol) {
		return false, nil
	}

	p1, _ := x.Dot(ay)
	for _, v := range ay {
		if d := v.Sub(p1); d.Sign() > 0 && !num.NearZero(d, tol) {
			return false, nil
		}
	}

	// player 2's payoff for column j is (xᵀB)_j
	m, n := g.Strategies()
	p2, _ := x.Dot(by)
	for j := 0; j < n; j++ {
		col := num.Zero[T]()
		for i := 0; i < m; i++ {
			bij, _ := g.B.At(i, j)
			col = col.Add(x[i].Mul(bij))
		}
		if d := col.Sub(p2); d.Sign() > 0 && !num.NearZero(d, tol) {
			return false, nil
		}
	}

	return true, nil
}

// responses returns A·y and B·y after checking shapes.
func responses[T num.Number[T]](g *Game[T], x, y linalg.Vector[T]) (linalg.Vector[T], linalg.Vector[T], error) {
	if g == nil || g.A == nil || g.B == nil {
		return nil, nil, ErrBadGame
	}
	m, n := g.Strategies()
	if len(x) != m || len(y) != n {
		return nil, nil, ErrBadGame
	}
	ay, err := g.A.MulVec(y)
	if err != nil {
		return nil, nil, err
	}
	by, err := g.B.MulVec(y)
	if err != nil {
		return nil, nil, err
	}

	return ay, by, nil
}

func isDistribution[T num.Number[T]](v linalg.Vector[T], tol T) bool {
	for _, p := range v {
		if p.Sign() < 0 && !num.NearZero(p, tol) {
			return false
		}
	}

	return num.NearZero(v.Sum().Sub(num.One[T]()), tol)
}

// shift returns a − min(a) + 1, a matrix with all entries ≥ 1 that has the
// same equilibria.
func shift[T num.Number[T]](a *linalg.Dense[T]) *linalg.Dense[T] {
	offset := num.One[T]().Sub(a.MinEntry())

	return a.Map(func(v T) T { return v.Add(offset) })
}
