package lemkehowson_test

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/gambitproject/gambit-sub018/lemke"
	"github.com/gambitproject/gambit-sub018/lemkehowson"
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
	"github.com/gambitproject/gambit-sub018/tableau"
)

type PairSuite struct {
	suite.Suite
}

func TestPairSuite(t *testing.T) {
	suite.Run(t, new(PairSuite))
}

// newPair builds the pair for already positive payoffs a (player 1) and
// b (player 2): A1 = a, A2 = bᵀ, unit right-hand sides.
func (s *PairSuite) newPair(a, b [][]int64, opts ...tableau.Option) *lemkehowson.Pair[num.Rat] {
	a1, err := linalg.Ints[num.Rat](a)
	s.Require().NoError(err)
	bm, err := linalg.Ints[num.Rat](b)
	s.Require().NoError(err)
	m, n := a1.Rows(), a1.Cols()

	p, err := lemkehowson.New(a1, bm.Transpose(), linalg.Ones[num.Rat](m), linalg.Ones[num.Rat](n), opts...)
	s.Require().NoError(err)

	return p
}

// noRepeat fails when a run revisits a combined basis.
func (s *PairSuite) noRepeat() tableau.Option {
	seen := make(map[string]bool)

	return tableau.WithPivotHook(func(e tableau.PivotEvent) {
		sig := append([]int(nil), e.Basis...)
		sort.Ints(sig)
		key := fmt.Sprint(sig)
		s.Require().False(seen[key], "basis %s revisited at step %d", key, e.Step)
		seen[key] = true
	})
}

// TestMatchingPennies: shifted payoffs [[3,1],[1,3]] and [[1,3],[3,1]].
func (s *PairSuite) TestMatchingPennies() {
	a := [][]int64{{3, 1}, {1, 3}}
	b := [][]int64{{1, 3}, {3, 1}}

	for dup := 0; dup < 4; dup++ {
		p := s.newPair(a, b, s.noRepeat())
		out, err := p.Run(context.Background(), dup)
		s.Require().NoError(err)
		s.Require().Equal(lemke.Solved, out, "label %d", dup)

		x, y, err := p.ExtractSolution()
		s.Require().NoError(err)
		s.Require().Equal("(1/2, 1/2)", x.String(), "label %d", dup)
		s.Require().Equal("(1/2, 1/2)", y.String(), "label %d", dup)
		s.Require().Equal(4, p.PivotCount(), "label %d", dup)
	}
}

// TestDominantStrategies: prisoner's dilemma shifted by one; both players
// defect (strategy 1) after three pivots.
func (s *PairSuite) TestDominantStrategies() {
	p := s.newPair([][]int64{{4, 1}, {6, 2}}, [][]int64{{4, 6}, {1, 2}}, s.noRepeat())
	out, err := p.Run(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Equal(lemke.Solved, out)
	s.Require().Equal(3, p.PivotCount())

	x, y, err := p.ExtractSolution()
	s.Require().NoError(err)
	s.Require().Equal("(0, 1)", x.String())
	s.Require().Equal("(0, 1)", y.String())
}

// TestDegenerateTie: in the all-ones game every ratio test ties; the
// lexicographic rule still ends the path.
func (s *PairSuite) TestDegenerateTie() {
	ones := [][]int64{{1, 1}, {1, 1}}
	p := s.newPair(ones, ones, s.noRepeat())
	out, err := p.Run(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Equal(lemke.Solved, out)
	s.Require().Equal(3, p.PivotCount())

	x, y, err := p.ExtractSolution()
	s.Require().NoError(err)
	s.Require().Equal("(0, 1)", x.String())
	s.Require().Equal("(0, 1)", y.String())

	for dup := 1; dup < 4; dup++ {
		q := s.newPair(ones, ones, s.noRepeat(), tableau.WithMaxPivots(50))
		out, err := q.Run(context.Background(), dup)
		s.Require().NoError(err, "label %d", dup)
		s.Require().Equal(lemke.Solved, out, "label %d", dup)
		_, _, err = q.ExtractSolution()
		s.Require().NoError(err, "label %d", dup)
	}
}

// TestRerunReturnsToArtificial: matching pennies has one equilibrium, so
// dropping another label from it leads back to the artificial one.
func (s *PairSuite) TestRerunReturnsToArtificial() {
	p := s.newPair([][]int64{{3, 1}, {1, 3}}, [][]int64{{1, 3}, {3, 1}})
	out, err := p.Run(context.Background(), 0)
	s.Require().NoError(err)
	s.Require().Equal(lemke.Solved, out)

	out, err = p.Run(context.Background(), 1)
	s.Require().NoError(err)
	s.Require().Equal(lemke.Solved, out)
	_, _, err = p.ExtractSolution()
	s.Require().ErrorIs(err, lemkehowson.ErrNoSolution)
}

func (s *PairSuite) TestBadInput() {
	p := s.newPair([][]int64{{3, 1}, {1, 3}}, [][]int64{{1, 3}, {3, 1}})
	_, err := p.Run(context.Background(), 4)
	s.Require().ErrorIs(err, lemkehowson.ErrBadLabel)
	_, err = p.Run(context.Background(), -1)
	s.Require().ErrorIs(err, lemkehowson.ErrBadLabel)

	_, _, err = p.ExtractSolution()
	s.Require().ErrorIs(err, lemkehowson.ErrNoSolution, "artificial equilibrium")

	a1, err := linalg.Ints[num.Rat]([][]int64{{1, 2, 3}, {4, 5, 6}})
	s.Require().NoError(err)
	_, err = lemkehowson.New(a1, a1, linalg.Ones[num.Rat](2), linalg.Ones[num.Rat](3))
	s.Require().ErrorIs(err, linalg.ErrDimensionMismatch)
	_, err = lemkehowson.New(a1, a1.Transpose(), linalg.Ones[num.Rat](3), linalg.Ones[num.Rat](3))
	s.Require().ErrorIs(err, linalg.ErrDimensionMismatch)
	_, err = lemkehowson.New(nil, a1, linalg.Ones[num.Rat](2), linalg.Ones[num.Rat](3))
	s.Require().ErrorIs(err, linalg.ErrNilMatrix)
}

func (s *PairSuite) TestCanceled() {
	p := s.newPair([][]int64{{3, 1}, {1, 3}}, [][]int64{{1, 3}, {3, 1}})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out, err := p.Run(ctx, 0)
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().Equal(lemke.Unknown, out)
	_, err = p.Run(context.Background(), 0)
	s.Require().ErrorIs(err, tableau.ErrDiscarded)
}

// TestCanceledMidPath cancels after the first pivot of a four-pivot path.
func (s *PairSuite) TestCanceledMidPath() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	p := s.newPair([][]int64{{3, 1}, {1, 3}}, [][]int64{{1, 3}, {3, 1}},
		tableau.WithPivotHook(func(e tableau.PivotEvent) {
			if e.Step == 1 {
				cancel()
			}
		}))

	out, err := p.Run(ctx, 0)
	s.Require().ErrorIs(err, context.Canceled)
	s.Require().Equal(lemke.Unknown, out)
	s.Require().Equal(1, p.PivotCount())
	_, err = p.Run(context.Background(), 1)
	s.Require().ErrorIs(err, tableau.ErrDiscarded)
}

func (s *PairSuite) TestPivotLimit() {
	p := s.newPair([][]int64{{3, 1}, {1, 3}}, [][]int64{{1, 3}, {3, 1}}, tableau.WithMaxPivots(2))
	_, err := p.Run(context.Background(), 0)
	s.Require().ErrorIs(err, lemke.ErrPivotLimit)
	s.Require().Equal(2, p.PivotCount())
}

func (s *PairSuite) TestHookSeesCombinedBasis() {
	var events []tableau.PivotEvent
	p := s.newPair([][]int64{{4, 1}, {6, 2}}, [][]int64{{4, 6}, {1, 2}},
		tableau.WithPivotHook(func(e tableau.PivotEvent) { events = append(events, e) }))
	_, err := p.Run(context.Background(), 0)
	s.Require().NoError(err)

	s.Require().Len(events, 3)
	// x_0 (id 4) enters T2 and evicts s_1 (id 7)
	s.Require().Equal(4, events[0].Entering)
	s.Require().Equal(7, events[0].Leaving)
	s.Require().Equal([]int{2, 3, 6, 4}, events[0].Basis)
	for i, e := range events {
		s.Require().Equal(i+1, e.Step)
		s.Require().Len(e.Basis, 4)
	}
	s.Require().Equal(p.Basis(), events[2].Basis)
}

func (s *PairSuite) TestDebugDump() {
	p := s.newPair([][]int64{{4, 1}, {6, 2}}, [][]int64{{4, 6}, {1, 2}})
	_, err := p.Run(context.Background(), 0)
	s.Require().NoError(err)

	var buf bytes.Buffer
	s.Require().NoError(p.DebugDump(&buf))
	out := buf.String()
	s.Require().Contains(out, "pivots=3")
	s.Require().Contains(out, "T1")
	s.Require().Contains(out, "T2")
	s.Require().Contains(out, "1/2")
	s.Require().Contains(strings.ToLower(out), "basic in", "label table header rendered")
}

func TestFloatPair(t *testing.T) {
	t.Parallel()

	a1, err := linalg.NewDenseFrom([][]num.Float{{3, 1}, {1, 3}})
	require.NoError(t, err)
	a2, err := linalg.NewDenseFrom([][]num.Float{{1, 3}, {3, 1}})
	require.NoError(t, err)
	p, err := lemkehowson.New(a1, a2, linalg.Ones[num.Float](2), linalg.Ones[num.Float](2))
	require.NoError(t, err)

	out, err := p.Run(context.Background(), 2)
	require.NoError(t, err)
	require.Equal(t, lemke.Solved, out)
	x, y, err := p.ExtractSolution()
	require.NoError(t, err)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, x.Floats(), 1e-12)
	require.InDeltaSlice(t, []float64{0.5, 0.5}, y.Floats(), 1e-12)
	m, n := p.Players()
	require.Equal(t, 2, m)
	require.Equal(t, 2, n)
}
