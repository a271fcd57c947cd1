// SPDX-License-Identifier: MIT

// Package tableau implements the base simplex/LCP tableau shared by the
// Lemke and Lemke–Howson layers.
//
// A tableau represents the system
//
//	A·x + I·s = b,   A m×n
//
// over the label universe 0..n+m-1: labels 0..n-1 are structural columns of
// A, labels n..n+m-1 are slack (or artificial) columns, label n+i being the
// unit column e_i. Exactly m labels are basic at any time; the basis matrix
// B is the selection of their columns and is kept factorized by package
// factor. The tableau tracks the basic solution B⁻¹·b across pivots.
//
// NoVariable and NoRow are out-of-band sentinels that never collide with a
// real label or row.
//
// A Tableau is not safe for concurrent use.
package tableau

import (
	"github.com/hashicorp/go-hclog"

	"github.com/gambitproject/gambit-sub018/factor"
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
)

const (
	// NoVariable denotes "no label".
	NoVariable = -1

	// NoRow denotes "no row" (a non-basic label, or a ray in a ratio test).
	NoRow = -1
)

// Tableau is the base pivoting tableau over numeric type T.
type Tableau[T num.Number[T]] struct {
	a *linalg.Dense[T] // constant structural block, m×n
	b linalg.Vector[T] // original right-hand side
	m int              // rows
	n int              // structural columns

	basis []int // row → label
	where []int // label → row, NoRow when non-basic

	lu  *factor.LU[T]
	rhs linalg.Vector[T] // current basic solution B⁻¹·b

	opts      Options
	tol       T
	log       hclog.Logger
	pivots    int
	discarded bool
}

// New builds a tableau for A·x + s = b.
// Stage 1 (Validate): A non-nil, len(b) == rows(A).
// Stage 2 (Basis): slack basis by default, or the WithBasis labels.
// Stage 3 (Factor): factorize the basis matrix and compute B⁻¹·b.
//
// Errors: linalg.ErrNilMatrix, linalg.ErrDimensionMismatch,
// linalg.ErrOutOfRange (basis label outside the universe), ErrBadBasis
// (duplicate label or wrong length), factor.ErrSingular (basis matrix not
// invertible).
func New[T num.Number[T]](a *linalg.Dense[T], b linalg.Vector[T], opts ...Option) (*Tableau[T], error) {
	if err := linalg.ValidateNotNil(a); err != nil {
		return nil, tableauErrorf(opNew, err)
	}
	m, n := a.Rows(), a.Cols()
	if err := linalg.ValidateVecLen(b, m); err != nil {
		return nil, tableauErrorf(opNew, err)
	}
	o := Resolve(opts...)
	t := &Tableau[T]{
		a:     a.Clone(),
		b:     b.Clone(),
		m:     m,
		n:     n,
		basis: make([]int, m),
		where: make([]int, n+m),
		opts:  o,
		tol:   num.Tolerance[T](o.eps),
		log:   o.logger,
	}
	for i := range t.where {
		t.where[i] = NoRow
	}

	labels := o.basis
	if labels == nil {
		labels = make([]int, m)
		for i := range labels {
			labels[i] = n + i
		}
	}
	if len(labels) != m {
		return nil, tableauErrorf(opNew, ErrBadBasis)
	}
	for row, label := range labels {
		if !t.validLabel(label) {
			return nil, tableauErrorf(opNew, linalg.ErrOutOfRange)
		}
		if t.where[label] != NoRow {
			return nil, tableauErrorf(opNew, ErrBadBasis)
		}
		t.basis[row] = label
		t.where[label] = row
	}

	bm, err := t.basisMatrix()
	if err != nil {
		return nil, tableauErrorf(opNew, err)
	}
	if t.lu, err = factor.Build(bm, o.factorOptions()...); err != nil {
		return nil, tableauErrorf(opNew, err)
	}
	if t.rhs, err = t.lu.Solve(t.b); err != nil {
		return nil, tableauErrorf(opNew, err)
	}

	return t, nil
}

// Rows returns m, the number of basis positions.
func (t *Tableau[T]) Rows() int { return t.m }

// Structural returns n, the number of structural labels.
func (t *Tableau[T]) Structural() int { return t.n }

// NumLabels returns n+m, the size of the label universe.
func (t *Tableau[T]) NumLabels() int { return t.n + t.m }

// IsSlack reports whether label is a slack/artificial label.
func (t *Tableau[T]) IsSlack(label int) bool { return label >= t.n && label < t.n+t.m }

// SlackLabel returns the slack label of row i.
func (t *Tableau[T]) SlackLabel(i int) int { return t.n + i }

// Options returns the resolved configuration.
func (t *Tableau[T]) Options() Options { return t.opts }

// Logger returns the configured logger.
func (t *Tableau[T]) Logger() hclog.Logger { return t.log }

// Tolerance returns the zero tolerance in T (exact zero for exact types).
func (t *Tableau[T]) Tolerance() T { return t.tol }

// PivotCount is the diagnostic count of pivots performed on this instance.
func (t *Tableau[T]) PivotCount() int { return t.pivots }

// Discard marks the instance unusable; later mutations fail with ErrDiscarded.
func (t *Tableau[T]) Discard() { t.discarded = true }

// Discarded reports whether Discard was called.
func (t *Tableau[T]) Discarded() bool { return t.discarded }

func (t *Tableau[T]) validLabel(label int) bool { return label >= 0 && label < t.n+t.m }

// Label returns the basic label at row.
func (t *Tableau[T]) Label(row int) (int, error) {
	if row < 0 || row >= t.m {
		return NoVariable, tableauErrorf(opLabel, linalg.ErrOutOfRange)
	}

	return t.basis[row], nil
}

// Find returns the row holding label, or NoRow when label is non-basic or
// outside the universe. Complexity: O(1).
func (t *Tableau[T]) Find(label int) int {
	if !t.validLabel(label) {
		return NoRow
	}

	return t.where[label]
}

// IsBasic reports whether label is currently basic.
func (t *Tableau[T]) IsBasic(label int) bool { return t.Find(label) != NoRow }

// Basis returns a copy of the row → label map.
func (t *Tableau[T]) Basis() []int { return append([]int(nil), t.basis...) }

// Column returns the constraint column of label: A's column for structural
// labels, e_i for slack label n+i.
func (t *Tableau[T]) Column(label int) (linalg.Vector[T], error) {
	if !t.validLabel(label) {
		return nil, tableauErrorf(opColumn, linalg.ErrOutOfRange)
	}
	if t.IsSlack(label) {
		e, _ := linalg.Unit[T](t.m, label-t.n)
		return e, nil
	}
	col, err := t.a.Col(label)
	if err != nil {
		return nil, tableauErrorf(opColumn, err)
	}

	return col, nil
}

// Image returns B⁻¹·a_label, the tableau column of label.
// Complexity: O(m²) plus the update chain.
func (t *Tableau[T]) Image(label int) (linalg.Vector[T], error) {
	col, err := t.Column(label)
	if err != nil {
		return nil, err
	}
	d, err := t.lu.Solve(col)
	if err != nil {
		return nil, tableauErrorf(opImage, err)
	}

	return d, nil
}

// Entry returns the tableau entry (B⁻¹·a_label)[row].
func (t *Tableau[T]) Entry(row, label int) (T, error) {
	var zero T
	if row < 0 || row >= t.m {
		return zero, tableauErrorf(opImage, linalg.ErrOutOfRange)
	}
	d, err := t.Image(label)
	if err != nil {
		return zero, err
	}

	return d[row], nil
}

// CanPivot reports whether the entry at (row, label) is non-zero, the
// structural precondition of Pivot. Out-of-range arguments yield an error.
func (t *Tableau[T]) CanPivot(row, label int) (bool, error) {
	v, err := t.Entry(row, label)
	if err != nil {
		return false, tableauErrorf(opCanPivot, err)
	}

	return !num.NearZero(v, t.tol), nil
}

// RHS returns a copy of the current basic solution B⁻¹·b (indexed by row).
func (t *Tableau[T]) RHS() linalg.Vector[T] { return t.rhs.Clone() }

// Value returns the current value of label (zero when non-basic).
func (t *Tableau[T]) Value(label int) T {
	if row := t.Find(label); row != NoRow {
		return t.rhs[row]
	}

	return num.Zero[T]()
}

// BasicSolution returns the full solution over the label universe with
// non-basic labels at zero.
func (t *Tableau[T]) BasicSolution() linalg.Vector[T] {
	x := linalg.NewVector[T](t.n + t.m)
	for row, label := range t.basis {
		x[label] = t.rhs[row]
	}

	return x
}

// Solve returns x with B·x = b for the current basis.
func (t *Tableau[T]) Solve(b linalg.Vector[T]) (linalg.Vector[T], error) {
	x, err := t.lu.Solve(b)
	if err != nil {
		return nil, tableauErrorf(opSolve, err)
	}

	return x, nil
}

// SolveTranspose returns y with Bᵀ·y = c for the current basis.
func (t *Tableau[T]) SolveTranspose(c linalg.Vector[T]) (linalg.Vector[T], error) {
	y, err := t.lu.SolveTranspose(c)
	if err != nil {
		return nil, tableauErrorf(opSolve, err)
	}

	return y, nil
}

// Pivot makes label basic at row, evicting the label currently there.
// Stage 1 (Validate): instance usable, indices in range, label non-basic,
// non-zero pivot entry.
// Stage 2 (Execute): update B⁻¹·b, record the factor update, swap labels.
// Complexity: O(m) plus the factorization update; the entering column image
// costs one O(m²) solve.
func (t *Tableau[T]) Pivot(row, label int) error {
	d, err := t.Image(label)
	if err != nil {
		return tableauErrorf(opPivot, err)
	}

	return t.PivotImage(row, label, d)
}

// PivotImage is Pivot with the entering image B⁻¹·a_label already computed,
// as ratio tests do. d is retained by the factorization and must not be
// modified afterwards.
func (t *Tableau[T]) PivotImage(row, label int, d linalg.Vector[T]) error {
	if t.discarded {
		return tableauErrorf(opPivot, ErrDiscarded)
	}
	if row < 0 || row >= t.m || !t.validLabel(label) {
		return tableauErrorf(opPivot, linalg.ErrOutOfRange)
	}
	if err := linalg.ValidateVecLen(d, t.m); err != nil {
		return tableauErrorf(opPivot, err)
	}
	if t.where[label] != NoRow || num.NearZero(d[row], t.tol) {
		return tableauErrorf(opPivot, ErrBadPivot)
	}
	col, err := t.Column(label)
	if err != nil {
		return tableauErrorf(opPivot, err)
	}

	// x_B ← x_B − θ·d, x_B[row] ← θ
	theta := t.rhs[row].Quo(d[row])
	for i := range t.rhs {
		if i == row || d[i].IsZero() {
			continue
		}
		t.rhs[i] = t.rhs[i].Sub(d[i].Mul(theta))
	}
	t.rhs[row] = theta

	refactors := t.lu.Refactors()
	if err := t.lu.UpdateImage(row, col, d); err != nil {
		t.discarded = true // rhs already moved; the instance is inconsistent
		return tableauErrorf(opPivot, err)
	}

	leaving := t.basis[row]
	t.where[leaving] = NoRow
	t.where[label] = row
	t.basis[row] = label
	t.pivots++

	if t.lu.Refactors() != refactors {
		// a refactor just happened: resync the basic solution with it
		if t.rhs, err = t.lu.Solve(t.b); err != nil {
			return tableauErrorf(opPivot, err)
		}
	}

	if t.log.IsTrace() {
		t.log.Trace("pivot", "step", t.pivots, "row", row, "entering", label, "leaving", leaving)
	}
	if t.opts.hook != nil {
		t.opts.hook(PivotEvent{
			Step:     t.pivots,
			Row:      row,
			Entering: label,
			Leaving:  leaving,
			Basis:    t.Basis(),
		})
	}

	return nil
}

// Refactor refactorizes the current basis and recomputes B⁻¹·b from b,
// discarding any accumulated drift.
func (t *Tableau[T]) Refactor() error {
	if t.discarded {
		return tableauErrorf(opRefactor, ErrDiscarded)
	}
	if err := t.lu.Refactor(); err != nil {
		return tableauErrorf(opRefactor, err)
	}
	rhs, err := t.lu.Solve(t.b)
	if err != nil {
		return tableauErrorf(opRefactor, err)
	}
	t.rhs = rhs

	return nil
}

// Updates reports the length of the factorization's update chain.
func (t *Tableau[T]) Updates() int { return t.lu.Updates() }

// basisMatrix assembles the columns of the current basis.
func (t *Tableau[T]) basisMatrix() (*linalg.Dense[T], error) {
	bm, err := linalg.NewDense[T](t.m, t.m)
	if err != nil {
		return nil, err
	}
	for row, label := range t.basis {
		col, err := t.Column(label)
		if err != nil {
			return nil, err
		}
		if err = bm.SetCol(row, col); err != nil {
			return nil, err
		}
	}

	return bm, nil
}
