// SPDX-License-Identifier: MIT

// Package lemke implements complementary pivoting on a tableau: the
// lexicographic minimum-ratio test and Lemke's path following for the
// linear complementarity problem
//
//	w = q + M·z,   w, z ≥ 0,   w·z = 0.
//
// A path starts from a basis made feasible by one artificial variable, then
// repeatedly enters the complement of the variable that just left. It ends
// when the artificial leaves (Solved) or when the entering column has no
// positive entry (Ray). The lexicographic rule makes the exiting row unique
// under degeneracy, so no basis is ever visited twice.
//
// The same ratio test drives both tableaus of a Lemke–Howson pair, which
// construct their tableaus without an artificial and chain pivots across
// tableaus themselves (see package lemkehowson).
package lemke

import (
	"context"

	"github.com/hashicorp/go-hclog"

	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
	"github.com/gambitproject/gambit-sub018/tableau"
)

// Outcome is how a complementary path ended.
type Outcome int

const (
	// Unknown is the zero Outcome, returned alongside errors.
	Unknown Outcome = iota
	// Solved: a complementary basic feasible solution was reached.
	Solved
	// Ray: the entering column admits no exiting row (secondary ray).
	Ray
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case Solved:
		return "solved"
	case Ray:
		return "ray"
	default:
		return "unknown"
	}
}

// Complement maps a label to its complementary label, or
// tableau.NoVariable when it has none.
type Complement func(label int) int

// Tableau is a tableau equipped with the lexicographic ratio test and an
// optional artificial variable. It is not safe for concurrent use.
type Tableau[T num.Number[T]] struct {
	*tableau.Tableau[T]

	artificial int
	complement Complement
	lcp        int // LCP dimension for NewLCP instances, 0 otherwise

	entering int
	leaving  int
	log      hclog.Logger
}

// New wraps A·x + s = b with the given artificial label (or
// tableau.NoVariable) and complement map (nil when pivots are chained by
// the caller).
// Errors: everything tableau.New returns, plus linalg.ErrOutOfRange for an
// artificial label outside the universe.
func New[T num.Number[T]](a *linalg.Dense[T], b linalg.Vector[T], artificial int, complement Complement, opts ...tableau.Option) (*Tableau[T], error) {
	tab, err := tableau.New(a, b, opts...)
	if err != nil {
		return nil, lemkeErrorf(opNew, err)
	}
	if artificial != tableau.NoVariable && (artificial < 0 || artificial >= tab.NumLabels()) {
		return nil, lemkeErrorf(opNew, linalg.ErrOutOfRange)
	}

	return &Tableau[T]{
		Tableau:    tab,
		artificial: artificial,
		complement: complement,
		entering:   tableau.NoVariable,
		leaving:    tableau.NoVariable,
		log:        tab.Logger().Named("lemke"),
	}, nil
}

// NewLCP builds the tableau of w − M·z − e·z0 = q with w basic.
// Labels: z_j = j, the artificial z0 = n, w_i = n+1+i; z_j and w_j are
// complementary.
// Errors: linalg.ErrNilMatrix, linalg.ErrDimensionMismatch (M not square,
// len(q) ≠ n), plus anything New returns.
func NewLCP[T num.Number[T]](m *linalg.Dense[T], q linalg.Vector[T], opts ...tableau.Option) (*Tableau[T], error) {
	if err := linalg.ValidateSquare(m); err != nil {
		return nil, lemkeErrorf(opNewLCP, err)
	}
	n := m.Rows()
	if err := linalg.ValidateVecLen(q, n); err != nil {
		return nil, lemkeErrorf(opNewLCP, err)
	}

	a, err := linalg.NewDense[T](n, n+1)
	if err != nil {
		return nil, lemkeErrorf(opNewLCP, err)
	}
	minusOne := num.Int[T](-1)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			v, _ := m.At(i, j)
			_ = a.Set(i, j, v.Neg())
		}
		_ = a.Set(i, n, minusOne)
	}

	complement := func(label int) int {
		switch {
		case label >= 0 && label < n:
			return n + 1 + label
		case label > n && label <= 2*n:
			return label - n - 1
		default:
			return tableau.NoVariable
		}
	}

	t, err := New(a, q, n, complement, opts...)
	if err != nil {
		return nil, lemkeErrorf(opNewLCP, err)
	}
	t.lcp = n

	return t, nil
}

// Artificial returns the artificial label, or tableau.NoVariable.
func (t *Tableau[T]) Artificial() int { return t.artificial }

// Complement returns the complement of label, or tableau.NoVariable.
func (t *Tableau[T]) Complement(label int) int {
	if t.complement == nil {
		return tableau.NoVariable
	}

	return t.complement(label)
}

// Entering returns the label entered by the last pivot.
func (t *Tableau[T]) Entering() int { return t.entering }

// Leaving returns the label evicted by the last pivot.
func (t *Tableau[T]) Leaving() int { return t.leaving }

// ExitRow runs the ratio test for entering label: among rows with a
// strictly positive entry d_i of B⁻¹·a_label it returns the row that
// lexicographically minimizes (x_B[i], B⁻¹[i,0], B⁻¹[i,1], …) / d_i.
// A row holding the artificial wins any tie on the first component.
// It returns tableau.NoRow when no entry is positive (a ray).
// Errors: linalg.ErrOutOfRange, ErrBadExitIndex (label basic, or no unique row).
func (t *Tableau[T]) ExitRow(label int) (int, error) {
	row, _, err := t.exitRow(label)

	return row, err
}

// exitRow also returns the entering image so Enter can pivot without a
// second solve.
func (t *Tableau[T]) exitRow(label int) (int, linalg.Vector[T], error) {
	// Stage 1: validate; a basic label cannot enter
	if t.IsBasic(label) {
		return tableau.NoRow, nil, lemkeErrorf(opExitRow, ErrBadExitIndex)
	}
	// Stage 2: entering image d = B⁻¹·a_label
	d, err := t.Image(label)
	if err != nil {
		return tableau.NoRow, nil, lemkeErrorf(opExitRow, err)
	}

	// Stage 3: candidate rows have d_i > 0; none means a ray
	tol := t.Tolerance()
	rows := make([]int, 0, len(d))
	for i, v := range d {
		if v.Sign() > 0 && !num.NearZero(v, tol) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return tableau.NoRow, d, nil
	}
	// Stage 4: lexicographic minimum; a nonsingular basis leaves one row
	if rows, err = t.lexMin(rows, d); err != nil {
		return tableau.NoRow, nil, lemkeErrorf(opExitRow, err)
	}
	if len(rows) != 1 {
		return tableau.NoRow, nil, lemkeErrorf(opExitRow, ErrBadExitIndex)
	}

	return rows[0], d, nil
}

// lexMin narrows rows to those minimizing (x_B[i], B⁻¹[i,·]) / scale[i],
// one component at a time. Column j of B⁻¹ is obtained as B⁻¹·e_j only
// when the tie survives to it.
func (t *Tableau[T]) lexMin(rows []int, scale linalg.Vector[T]) ([]int, error) {
	rhs := t.RHS()
	rows = t.narrow(rows, func(i int) T { return rhs[i].Quo(scale[i]) })
	if len(rows) < 2 {
		return rows, nil
	}
	if r := t.Find(t.artificial); r != tableau.NoRow {
		for _, i := range rows {
			if i == r {
				return []int{r}, nil
			}
		}
	}

	m := t.Rows()
	for j := 0; j < m && len(rows) > 1; j++ {
		e, err := linalg.Unit[T](m, j)
		if err != nil {
			return nil, err
		}
		col, err := t.Tableau.Solve(e)
		if err != nil {
			return nil, err
		}
		rows = t.narrow(rows, func(i int) T { return col[i].Quo(scale[i]) })
	}

	return rows, nil
}

// narrow keeps the rows whose key is minimal, preserving order.
func (t *Tableau[T]) narrow(rows []int, key func(int) T) []int {
	tol := t.Tolerance()
	out := make([]int, 0, len(rows))
	var best T
	for _, i := range rows {
		k := key(i)
		if len(out) == 0 {
			best, out = k, append(out, i)
			continue
		}
		switch {
		case num.NearZero(k.Sub(best), tol):
			out = append(out, i)
		case k.Cmp(best) < 0:
			best, out = k, append(out[:0], i)
		}
	}

	return out
}

// Enter runs the ratio test for label and pivots it in. It returns the
// evicted label, or tableau.NoVariable when the test reports a ray (no
// pivot happens then).
func (t *Tableau[T]) Enter(label int) (int, error) {
	row, d, err := t.exitRow(label)
	if err != nil {
		return tableau.NoVariable, err
	}
	if row == tableau.NoRow {
		return tableau.NoVariable, nil
	}
	leaving, err := t.Label(row)
	if err != nil {
		return tableau.NoVariable, lemkeErrorf(opEnter, err)
	}
	if err = t.PivotImage(row, label, d); err != nil {
		return tableau.NoVariable, lemkeErrorf(opEnter, err)
	}
	t.entering, t.leaving = label, leaving

	return leaving, nil
}

// Start makes the basis feasible by pivoting the artificial in at the
// lexicographically most infeasible row, i.e. the row minimizing
// (x_B[i], B⁻¹[i,·]) / |d_i| over rows with d_i < 0, where d is the
// artificial column's image. It returns the label that must enter next, or
// tableau.NoVariable when the basis is already feasible (q ≥ 0), in which
// case the slack basis is itself complementary.
// The artificial column must be negative in every infeasible row.
// Errors: ErrBadExitIndex (no artificial, artificial already basic, or no
// row qualifies), plus anything the pivot returns.
func (t *Tableau[T]) Start() (int, error) {
	// Stage 1: validate the artificial
	if t.artificial == tableau.NoVariable || t.IsBasic(t.artificial) {
		return tableau.NoVariable, lemkeErrorf(opStart, ErrBadExitIndex)
	}
	// Stage 2: q ≥ 0 needs no artificial
	tol := t.Tolerance()
	feasible := true
	for _, v := range t.RHS() {
		if v.Sign() < 0 && !num.NearZero(v, tol) {
			feasible = false
			break
		}
	}
	if feasible {
		t.log.Debug("start basis already feasible")
		return tableau.NoVariable, nil
	}

	// Stage 3: rows where the artificial column is negative
	d, err := t.Image(t.artificial)
	if err != nil {
		return tableau.NoVariable, lemkeErrorf(opStart, err)
	}
	rows := make([]int, 0, len(d))
	for i, v := range d {
		if v.Sign() < 0 && !num.NearZero(v, tol) {
			rows = append(rows, i)
		}
	}
	if len(rows) == 0 {
		return tableau.NoVariable, lemkeErrorf(opStart, ErrBadExitIndex)
	}
	// Stage 4: most infeasible row, ties broken lexicographically on |d_i|
	if rows, err = t.lexMin(rows, d.Scale(num.Int[T](-1))); err != nil {
		return tableau.NoVariable, lemkeErrorf(opStart, err)
	}
	if len(rows) != 1 {
		return tableau.NoVariable, lemkeErrorf(opStart, ErrBadExitIndex)
	}

	// Stage 5: pivot the artificial in; the complement of the evicted label enters next
	leaving, err := t.Label(rows[0])
	if err != nil {
		return tableau.NoVariable, lemkeErrorf(opStart, err)
	}
	if err = t.PivotImage(rows[0], t.artificial, d); err != nil {
		return tableau.NoVariable, lemkeErrorf(opStart, err)
	}
	t.entering, t.leaving = t.artificial, leaving

	return t.Complement(leaving), nil
}

// FollowPath pivots entering in and keeps entering the complement of each
// evicted label until the artificial leaves (Solved) or the ratio test
// reports a ray (Ray). ctx is polled once per pivot; on cancellation the
// instance is discarded and ctx.Err() is returned wrapped.
// Errors: ErrPivotLimit, ErrBadExitIndex (an evicted label has no
// complement), tableau.ErrDiscarded, and pivot failures.
func (t *Tableau[T]) FollowPath(ctx context.Context, entering int) (Outcome, error) {
	limit := t.Options().MaxPivots()
	label := entering
	for {
		if err := ctx.Err(); err != nil {
			t.Discard()
			t.log.Debug("path canceled", "pivots", t.PivotCount())
			return Unknown, lemkeErrorf(opFollowPath, err)
		}
		if limit > 0 && t.PivotCount() >= limit {
			return Unknown, lemkeErrorf(opFollowPath, ErrPivotLimit)
		}

		leaving, err := t.Enter(label)
		if err != nil {
			return Unknown, lemkeErrorf(opFollowPath, err)
		}
		if leaving == tableau.NoVariable {
			t.log.Debug("secondary ray", "entering", label, "pivots", t.PivotCount())
			return Ray, nil
		}
		if leaving == t.artificial {
			t.log.Debug("complementary solution", "pivots", t.PivotCount())
			return Solved, nil
		}
		if label = t.Complement(leaving); label == tableau.NoVariable {
			return Unknown, lemkeErrorf(opFollowPath, ErrBadExitIndex)
		}
	}
}

// Solve runs Start and then FollowPath from the label Start hands back.
func (t *Tableau[T]) Solve(ctx context.Context) (Outcome, error) {
	next, err := t.Start()
	if err != nil {
		return Unknown, err
	}
	if next == tableau.NoVariable {
		return Solved, nil
	}

	return t.FollowPath(ctx, next)
}

// Solution returns (z, w) read from the current basis of an NewLCP
// instance; both are nil for tableaus built with New.
func (t *Tableau[T]) Solution() (z, w linalg.Vector[T]) {
	if t.lcp == 0 {
		return nil, nil
	}
	n := t.lcp
	z, w = linalg.NewVector[T](n), linalg.NewVector[T](n)
	for j := 0; j < n; j++ {
		z[j] = t.Value(j)
		w[j] = t.Value(n + 1 + j)
	}

	return z, w
}
