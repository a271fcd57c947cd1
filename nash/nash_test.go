package nash_test

import (
	"context"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/gambitproject/gambit-sub018/lemke"
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/nash"
	"github.com/gambitproject/gambit-sub018/num"
	"github.com/gambitproject/gambit-sub018/tableau"
)

func mustGame(t *testing.T, a, b [][]int64) *nash.Game[num.Rat] {
	t.Helper()
	am, err := linalg.Ints[num.Rat](a)
	require.NoError(t, err)
	bm, err := linalg.Ints[num.Rat](b)
	require.NoError(t, err)
	g, err := nash.NewGame(am, bm)
	require.NoError(t, err)

	return g
}

func TestSolveLHMatchingPennies(t *testing.T) {
	t.Parallel()

	g := mustGame(t, [][]int64{{1, -1}, {-1, 1}}, [][]int64{{-1, 1}, {1, -1}})
	for start := 0; start < 4; start++ {
		eq, err := nash.SolveLH(context.Background(), g, start)
		require.NoError(t, err)
		require.Equal(t, start, eq.Start)
		require.Equal(t, "(1/2, 1/2)", eq.X.String())
		require.Equal(t, "(1/2, 1/2)", eq.Y.String())
		require.True(t, eq.Payoff1.IsZero())
		require.True(t, eq.Payoff2.IsZero())
		require.Equal(t, 4, eq.Pivots)

		ok, err := nash.IsEquilibrium(g, eq.X, eq.Y, 0)
		require.NoError(t, err)
		require.True(t, ok)
	}
}

func TestSolveLHDominant(t *testing.T) {
	t.Parallel()

	g := mustGame(t, [][]int64{{3, 0}, {5, 1}}, [][]int64{{3, 5}, {0, 1}})
	eq, err := nash.SolveLH(context.Background(), g, 0)
	require.NoError(t, err)
	require.Equal(t, "(0, 1)", eq.X.String())
	require.Equal(t, "(0, 1)", eq.Y.String())
	require.Equal(t, "1", eq.Payoff1.String())
	require.Equal(t, "1", eq.Payoff2.String())
	require.LessOrEqual(t, eq.Pivots, 4)
}

// TestEnumerateCoordination: [[2,0],[0,1]] for both players has two pure
// equilibria reachable by Lemke–Howson; the mixed one is not.
func TestEnumerateCoordination(t *testing.T) {
	t.Parallel()

	coord := [][]int64{{2, 0}, {0, 1}}
	g := mustGame(t, coord, coord)
	eqs, err := nash.EnumerateLH(context.Background(), g, nash.WithWorkers(2))
	require.NoError(t, err)
	require.Len(t, eqs, 2)

	type profile struct {
		Start int
		X, Y  []float64
		P1    float64
	}
	got := make([]profile, len(eqs))
	for i, eq := range eqs {
		got[i] = profile{eq.Start, eq.X.Floats(), eq.Y.Floats(), eq.Payoff1.Float64()}
	}
	want := []profile{
		{Start: 0, X: []float64{1, 0}, Y: []float64{1, 0}, P1: 2},
		{Start: 1, X: []float64{0, 1}, Y: []float64{0, 1}, P1: 1},
	}
	require.Empty(t, cmp.Diff(want, got))
}

func TestEnumerateCanceled(t *testing.T) {
	t.Parallel()

	g := mustGame(t, [][]int64{{1, -1}, {-1, 1}}, [][]int64{{-1, 1}, {1, -1}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := nash.EnumerateLH(ctx, g)
	require.ErrorIs(t, err, context.Canceled)
}

// TestSolveCanceledMidPath cancels from the pivot hook after the first
// pivot of a four-pivot path.
func TestSolveCanceledMidPath(t *testing.T) {
	t.Parallel()

	g := mustGame(t, [][]int64{{1, -1}, {-1, 1}}, [][]int64{{-1, 1}, {1, -1}})
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	steps := 0
	_, err := nash.SolveLH(ctx, g, 0, nash.WithTableau(tableau.WithPivotHook(func(e tableau.PivotEvent) {
		steps = e.Step
		if e.Step == 1 {
			cancel()
		}
	})))
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, 1, steps)
}

func TestFromGonumFloat(t *testing.T) {
	t.Parallel()

	a := mat.NewDense(2, 2, []float64{1, -1, -1, 1})
	b := mat.NewDense(2, 2, []float64{-1, 1, 1, -1})
	g, err := nash.FromGonum[num.Float](a, b)
	require.NoError(t, err)

	eq, err := nash.SolveLH(context.Background(), g, 1,
		nash.WithLogger(hclog.NewNullLogger()),
		nash.WithTableau(tableau.WithEpsilon(1e-10), tableau.WithRefactorEvery(2)))
	require.NoError(t, err)
	require.Empty(t, cmp.Diff([]float64{0.5, 0.5}, eq.X.Floats(), cmpopts.EquateApprox(0, 1e-12)))
	require.Empty(t, cmp.Diff([]float64{0.5, 0.5}, eq.Y.Floats(), cmpopts.EquateApprox(0, 1e-12)))

	ok, err := nash.IsEquilibrium(g, eq.X, eq.Y, 1e-9)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = nash.FromGonum[num.Float](a, mat.NewDense(2, 3, nil))
	require.ErrorIs(t, err, nash.ErrBadGame)
}

func TestFromGonumNonFinite(t *testing.T) {
	t.Parallel()

	ok := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		bad := mat.NewDense(2, 2, []float64{1, 2, v, 4})

		_, err := nash.FromGonum[num.Rat](bad, ok)
		require.ErrorIs(t, err, nash.ErrBadGame, "A with %v", v)
		_, err = nash.FromGonum[num.Decimal](ok, bad)
		require.ErrorIs(t, err, nash.ErrBadGame, "B with %v", v)
		_, err = nash.FromGonum[num.Float](bad, bad)
		require.ErrorIs(t, err, nash.ErrBadGame, "both with %v", v)
	}
}

func TestIsEquilibrium(t *testing.T) {
	t.Parallel()

	coord := [][]int64{{2, 0}, {0, 1}}
	g := mustGame(t, coord, coord)
	third := num.NewRat(1, 3)
	twoThirds := num.NewRat(2, 3)
	half := num.NewRat(1, 2)

	ok, err := nash.IsEquilibrium(g, linalg.Vector[num.Rat]{third, twoThirds}, linalg.Vector[num.Rat]{third, twoThirds}, 0)
	require.NoError(t, err)
	require.True(t, ok, "mixed equilibrium")

	ok, err = nash.IsEquilibrium(g, linalg.Vector[num.Rat]{half, half}, linalg.Vector[num.Rat]{half, half}, 0)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = nash.IsEquilibrium(g, linalg.IntVector[num.Rat](1, 1), linalg.IntVector[num.Rat](1, 0), 0)
	require.NoError(t, err)
	require.False(t, ok, "not a distribution")

	_, err = nash.IsEquilibrium(g, linalg.IntVector[num.Rat](1), linalg.IntVector[num.Rat](1, 0), 0)
	require.ErrorIs(t, err, nash.ErrBadGame)

	p1, p2, err := nash.Payoffs(g, linalg.Vector[num.Rat]{third, twoThirds}, linalg.Vector[num.Rat]{third, twoThirds})
	require.NoError(t, err)
	require.Equal(t, "2/3", p1.String())
	require.Equal(t, "2/3", p2.String())
}

func TestSolveLCP(t *testing.T) {
	t.Parallel()

	m, err := linalg.Ints[num.Rat]([][]int64{{2, 1}, {1, 2}})
	require.NoError(t, err)
	z, w, out, err := nash.SolveLCP(context.Background(), m, linalg.IntVector[num.Rat](-5, -6))
	require.NoError(t, err)
	require.Equal(t, lemke.Solved, out)
	require.Equal(t, "(4/3, 7/3)", z.String())
	require.Equal(t, "(0, 0)", w.String())

	neg, err := linalg.Ints[num.Rat]([][]int64{{-1, 0}, {0, -1}})
	require.NoError(t, err)
	z, w, out, err = nash.SolveLCP(context.Background(), neg, linalg.IntVector[num.Rat](-1, -1))
	require.NoError(t, err)
	require.Equal(t, lemke.Ray, out)
	require.Nil(t, z)
	require.Nil(t, w)
}

func TestBadGame(t *testing.T) {
	t.Parallel()

	a, err := linalg.Ints[num.Rat]([][]int64{{1, 2}})
	require.NoError(t, err)
	b, err := linalg.Ints[num.Rat]([][]int64{{1}, {2}})
	require.NoError(t, err)
	_, err = nash.NewGame(a, b)
	require.ErrorIs(t, err, nash.ErrBadGame)
	_, err = nash.NewGame(a, nil)
	require.ErrorIs(t, err, nash.ErrBadGame)
	_, err = nash.SolveLH[num.Rat](context.Background(), nil, 0)
	require.ErrorIs(t, err, nash.ErrBadGame)

	require.Panics(t, func() { nash.WithWorkers(-1) })
}
