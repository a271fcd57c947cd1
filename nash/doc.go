// SPDX-License-Identifier: MIT

// Package nash computes Nash equilibria of two-player games in strategic
// form on top of the pivoting core.
//
// Overview:
//
//   - SolveLH follows one Lemke–Howson path: payoffs are shifted to be
//     positive, the two best-response polytopes become a tableau pair, and
//     the path that drops the chosen start label ends at an equilibrium.
//   - EnumerateLH runs every start label (m+n of them) on independent pairs,
//     concurrently, and reports each distinct profile once.
//   - SolveLCP runs Lemke's algorithm on a general LCP w = q + M·z.
//   - IsEquilibrium and Payoffs check and evaluate profiles.
//
// Numeric types:
//
//   - num.Rat     exact; equilibria come back as exact fractions.
//   - num.Float   fast; ties and zero tests use the tableau epsilon.
//   - num.Decimal arbitrary precision with rounded division.
//
// Options:
//
//   - WithWorkers(n)   bounds EnumerateLH fan-out (default: one per CPU).
//   - WithLogger(l)    hclog logger for solver and pivot tracing.
//   - WithTableau(...) passes tableau options through (epsilon, refactor
//     interval, pivot limit, pivot hook). A hook passed here is shared by
//     all concurrent paths of EnumerateLH and must be safe for that.
//
// Error handling (sentinel errors):
//
//   - ErrBadGame: nil or mismatched payoff matrices, or wrong profile length.
//   - ErrRay: the path from this start label ended on a secondary ray.
//   - Errors from the core (factor.ErrSingular, tableau.ErrBadPivot,
//     lemke.ErrBadExitIndex, lemke.ErrPivotLimit) propagate wrapped and
//     match with errors.Is; so do context.Canceled and DeadlineExceeded.
//
// Complexity:
//
//   - Each pivot costs O(m²) or O(n²) for the solve plus O(m) bookkeeping;
//     the number of pivots can be exponential in the worst case, which is
//     why every path polls its context between pivots.
package nash
