// SPDX-License-Identifier: MIT

// Package factor maintains an invertible factorization of a changing basis
// matrix. A full LU factorization with row pivoting is taken at Build and at
// every Refactor; between refactors each column replacement is recorded as an
// eta (rank-one) update, so a pivot costs O(m) to record and O(m²) to solve
// against, instead of an O(m³) refactorization.
//
// With B0 = Pᵀ·L·U the basis at the last refactor and E_k the eta matrix of
// the k-th update, the current basis is B = B0·E_1·…·E_k. Solve applies
// B0⁻¹ and then E_1⁻¹ … E_k⁻¹ in insertion order; SolveTranspose applies
// E_k⁻ᵀ … E_1⁻ᵀ in reverse order and then B0⁻ᵀ.
//
// An LU is not safe for concurrent use.
package factor

import (
	"github.com/gambitproject/gambit-sub018/linalg"
	"github.com/gambitproject/gambit-sub018/num"
)

// eta records the replacement of basis column col: image = B_old⁻¹·a.
type eta[T num.Number[T]] struct {
	col   int
	image linalg.Vector[T]
}

// LU is an incrementally updated factorization of an n×n basis matrix.
type LU[T num.Number[T]] struct {
	n     int
	basis *linalg.Dense[T] // raw current basis, kept in step with every update
	lu    []T              // combined factors: unit L strictly below the diagonal, U on and above
	perm  []int            // row i of P·B0 is row perm[i] of B0
	etas  []eta[T]         // append-only update chain since the last refactor

	refactorEvery int
	tol           T
	exact         bool
	refactors     int
}

// Build factorizes a copy of b.
// Errors: linalg.ErrNilMatrix / linalg.ErrDimensionMismatch for bad shapes,
// ErrSingular when b is not invertible.
// Complexity: O(n³).
func Build[T num.Number[T]](b *linalg.Dense[T], opts ...Option) (*LU[T], error) {
	if err := linalg.ValidateSquare(b); err != nil {
		return nil, factorErrorf(opBuild, err)
	}
	o := gatherOptions(opts)
	f := &LU[T]{
		n:             b.Rows(),
		basis:         b.Clone(),
		refactorEvery: o.refactorEvery,
		tol:           num.Tolerance[T](o.eps),
		exact:         num.IsExact[T](),
	}
	if err := f.factorize(); err != nil {
		return nil, factorErrorf(opBuild, err)
	}

	return f, nil
}

// Size returns n.
func (f *LU[T]) Size() int { return f.n }

// Updates returns the current length of the eta chain.
func (f *LU[T]) Updates() int { return len(f.etas) }

// Refactors returns how many full factorizations have been taken,
// including the one performed by Build.
func (f *LU[T]) Refactors() int { return f.refactors }

// Basis returns a copy of the raw basis matrix the factors represent.
func (f *LU[T]) Basis() *linalg.Dense[T] { return f.basis.Clone() }

// Refactor discards the update chain and refactorizes the current basis.
// Complexity: O(n³).
func (f *LU[T]) Refactor() error {
	if err := f.factorize(); err != nil {
		return factorErrorf(opRefactor, err)
	}

	return nil
}

// factorize runs Gaussian elimination with row pivoting on f.basis.
// Stage 1: copy the basis into the flat work array and reset perm.
// Stage 2: for each column k pick a pivot row, swap, eliminate below.
// Stage 3: publish the factors and drop the eta chain.
// On error the previous factors are left untouched.
func (f *LU[T]) factorize() error {
	// Stage 1: row-major work copy, identity permutation
	n := f.n
	a := make([]T, n*n)
	var i, j, k int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			a[i*n+j], _ = f.basis.At(i, j)
		}
	}
	perm := make([]int, n)
	for i = range perm {
		perm[i] = i
	}

	// Stage 2: eliminate column by column
	for k = 0; k < n; k++ {
		p := f.pivotRow(a, k)
		if p < 0 {
			return ErrSingular
		}
		if p != k {
			for j = 0; j < n; j++ {
				a[k*n+j], a[p*n+j] = a[p*n+j], a[k*n+j]
			}
			perm[k], perm[p] = perm[p], perm[k]
		}
		// store multipliers l_ik in place of the eliminated entries
		pivot := a[k*n+k]
		for i = k + 1; i < n; i++ {
			if a[i*n+k].IsZero() {
				continue
			}
			l := a[i*n+k].Quo(pivot)
			a[i*n+k] = l
			for j = k + 1; j < n; j++ {
				if a[k*n+j].IsZero() {
					continue
				}
				a[i*n+j] = a[i*n+j].Sub(l.Mul(a[k*n+j]))
			}
		}
	}

	// Stage 3: commit only after every column found a pivot
	f.lu, f.perm, f.etas = a, perm, f.etas[:0]
	f.refactors++

	return nil
}

// pivotRow selects the elimination pivot for column k, or -1.
// Inexact types take the largest magnitude entry for stability; exact types
// take the first non-zero entry since no rounding error accumulates.
func (f *LU[T]) pivotRow(a []T, k int) int {
	n := f.n
	best := -1
	var bestAbs T
	for i := k; i < n; i++ {
		v := a[i*n+k]
		if num.NearZero(v, f.tol) {
			continue
		}
		if f.exact {
			return i
		}
		if abs := v.Abs(); best < 0 || abs.Cmp(bestAbs) > 0 {
			best, bestAbs = i, abs
		}
	}

	return best
}

// Update records the replacement of basis column col by a.
// It solves for the eta image through the current chain first.
// Complexity: O(n²) for the solve, O(n) to record.
func (f *LU[T]) Update(col int, a linalg.Vector[T]) error {
	image, err := f.Solve(a)
	if err != nil {
		return factorErrorf(opUpdate, err)
	}

	return f.UpdateImage(col, a, image)
}

// UpdateImage records the replacement of basis column col by a, given the
// already computed image = B⁻¹·a (the tableau has it from the ratio test).
// The image is retained; callers must not modify it afterwards.
// Errors: linalg.ErrOutOfRange, linalg.ErrDimensionMismatch, ErrSingular when
// image[col] is zero (the new basis would be singular).
// Complexity: amortized O(n); O(n³) on the update that triggers a refactor.
func (f *LU[T]) UpdateImage(col int, a, image linalg.Vector[T]) error {
	if col < 0 || col >= f.n {
		return factorErrorf(opUpdate, linalg.ErrOutOfRange)
	}
	if err := linalg.ValidateVecLen(a, f.n); err != nil {
		return factorErrorf(opUpdate, err)
	}
	if err := linalg.ValidateVecLen(image, f.n); err != nil {
		return factorErrorf(opUpdate, err)
	}
	if num.NearZero(image[col], f.tol) {
		return factorErrorf(opUpdate, ErrSingular)
	}
	if err := f.basis.SetCol(col, a); err != nil {
		return factorErrorf(opUpdate, err)
	}
	f.etas = append(f.etas, eta[T]{col: col, image: image})
	if len(f.etas) >= f.refactorEvery {
		return f.Refactor()
	}

	return nil
}

// Solve returns x with B·x = b.
// Stage 1: permute b. Stage 2: forward and back substitution with B0's
// factors. Stage 3: apply the eta chain.
// Complexity: O(n² + n·k) for k chained updates.
func (f *LU[T]) Solve(b linalg.Vector[T]) (linalg.Vector[T], error) {
	// Stage 0: validate
	if err := linalg.ValidateVecLen(b, f.n); err != nil {
		return nil, factorErrorf(opSolve, err)
	}
	n, a := f.n, f.lu
	x := make(linalg.Vector[T], n)
	var i, k int
	// Stage 1: P·b
	for i = 0; i < n; i++ {
		x[i] = b[f.perm[i]]
	}
	// Stage 2: L·y = P·b, unit diagonal
	for i = 1; i < n; i++ {
		for k = 0; k < i; k++ {
			if l := a[i*n+k]; !l.IsZero() && !x[k].IsZero() {
				x[i] = x[i].Sub(l.Mul(x[k]))
			}
		}
	}
	// U·x = y
	for i = n - 1; i >= 0; i-- {
		for k = i + 1; k < n; k++ {
			if u := a[i*n+k]; !u.IsZero() && !x[k].IsZero() {
				x[i] = x[i].Sub(u.Mul(x[k]))
			}
		}
		x[i] = x[i].Quo(a[i*n+i])
	}
	// Stage 3: E_1⁻¹ … E_k⁻¹ in insertion order; each touches column r of x
	for _, e := range f.etas {
		r := e.col
		xr := x[r].Quo(e.image[r])
		if !xr.IsZero() {
			for i = 0; i < n; i++ {
				if i != r && !e.image[i].IsZero() {
					x[i] = x[i].Sub(e.image[i].Mul(xr))
				}
			}
		}
		x[r] = xr
	}

	return x, nil
}

// SolveTranspose returns y with Bᵀ·y = c.
// Stage 1: undo the eta chain in reverse. Stage 2: substitute with Uᵀ then
// Lᵀ. Stage 3: unpermute.
// Complexity: O(n² + n·k) for k chained updates.
func (f *LU[T]) SolveTranspose(c linalg.Vector[T]) (linalg.Vector[T], error) {
	// Stage 0: validate
	if err := linalg.ValidateVecLen(c, f.n); err != nil {
		return nil, factorErrorf(opSolveTranspose, err)
	}
	n, a := f.n, f.lu
	z := c.Clone()
	var i, k int
	// Stage 1: E_k⁻ᵀ … E_1⁻ᵀ in reverse order; only entry r changes
	for idx := len(f.etas) - 1; idx >= 0; idx-- {
		e := f.etas[idx]
		r := e.col
		acc := z[r]
		for i = 0; i < n; i++ {
			if i != r && !e.image[i].IsZero() && !z[i].IsZero() {
				acc = acc.Sub(e.image[i].Mul(z[i]))
			}
		}
		z[r] = acc.Quo(e.image[r])
	}
	// Stage 2a: Uᵀ·w = z (forward)
	for i = 0; i < n; i++ {
		for k = 0; k < i; k++ {
			if u := a[k*n+i]; !u.IsZero() && !z[k].IsZero() {
				z[i] = z[i].Sub(u.Mul(z[k]))
			}
		}
		z[i] = z[i].Quo(a[i*n+i])
	}
	// Stage 2b: Lᵀ·v = w (backward, unit diagonal)
	for i = n - 2; i >= 0; i-- {
		for k = i + 1; k < n; k++ {
			if l := a[k*n+i]; !l.IsZero() && !z[k].IsZero() {
				z[i] = z[i].Sub(l.Mul(z[k]))
			}
		}
	}
	// Stage 3: y = Pᵀ·v
	y := make(linalg.Vector[T], n)
	for i = 0; i < n; i++ {
		y[f.perm[i]] = z[i]
	}

	return y, nil
}
