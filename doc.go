// Package gambit computes Nash equilibria by exact complementary pivoting.
//
// The module is a pivoting core plus a thin driver:
//
//	num/         numeric capability (Float, Rat, Decimal) shared by all layers
//	linalg/      dense matrices and vectors over any num.Number
//	factor/      LU factorization with eta-chain updates and periodic refactor
//	tableau/     simplex-style tableau: basis bookkeeping, pivots, DebugDump
//	lemke/       lexicographic ratio test and Lemke path following (LCP)
//	lemkehowson/ two linked tableaus running Lemke–Howson on bimatrix games
//	nash/        games, SolveLH / EnumerateLH / SolveLCP, equilibrium checks
//
// Quick example:
//
//	a, _ := linalg.Ints[num.Rat]([][]int64{{1, -1}, {-1, 1}})
//	b, _ := linalg.Ints[num.Rat]([][]int64{{-1, 1}, {1, -1}})
//	g, _ := nash.NewGame(a, b)
//	eq, _ := nash.SolveLH(context.Background(), g, 0)
//	// eq.X = (1/2, 1/2), eq.Y = (1/2, 1/2)
//
// Every instance is single-threaded; parallel search runs independent
// instances (see nash.EnumerateLH). Long paths poll a context.Context
// between pivots and a canceled instance must be discarded.
package gambit
