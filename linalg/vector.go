// SPDX-License-Identifier: MIT

package linalg

import (
	"fmt"
	"strings"

	"github.com/gambitproject/gambit-sub018/num"
)

// Vector is a dense vector of T. Direct indexing is allowed for internal
// hot loops; At/Set give the checked access required at API boundaries.
type Vector[T num.Number[T]] []T

// NewVector returns a zero vector of length n.
func NewVector[T num.Number[T]](n int) Vector[T] {
	v := make(Vector[T], n)
	zero := num.Zero[T]()
	for i := range v {
		v[i] = zero
	}

	return v
}

// Ones returns a vector of n ones.
func Ones[T num.Number[T]](n int) Vector[T] {
	v := make(Vector[T], n)
	one := num.One[T]()
	for i := range v {
		v[i] = one
	}

	return v
}

// Unit returns e_i of length n.
func Unit[T num.Number[T]](n, i int) (Vector[T], error) {
	if i < 0 || i >= n {
		return nil, indexErrorf("Unit", i, 0)
	}
	v := NewVector[T](n)
	v[i] = num.One[T]()

	return v, nil
}

// IntVector converts integers into a Vector.
func IntVector[T num.Number[T]](vals ...int64) Vector[T] {
	v := make(Vector[T], len(vals))
	for i, x := range vals {
		v[i] = num.Int[T](x)
	}

	return v
}

// Len returns the number of entries.
func (v Vector[T]) Len() int { return len(v) }

// At returns v[i] or ErrOutOfRange.
func (v Vector[T]) At(i int) (T, error) {
	if i < 0 || i >= len(v) {
		var zero T
		return zero, indexErrorf(opAt, i, 0)
	}

	return v[i], nil
}

// Set assigns v[i] = x or returns ErrOutOfRange.
func (v Vector[T]) Set(i int, x T) error {
	if i < 0 || i >= len(v) {
		return indexErrorf(opSet, i, 0)
	}
	v[i] = x

	return nil
}

// Clone returns an independent copy.
func (v Vector[T]) Clone() Vector[T] {
	out := make(Vector[T], len(v))
	copy(out, v)

	return out
}

// Dot returns Σ v[i]*w[i].
func (v Vector[T]) Dot(w Vector[T]) (T, error) {
	if len(v) != len(w) {
		var zero T
		return zero, linalgErrorf(opDot, ErrDimensionMismatch)
	}
	sum := num.Zero[T]()
	for i := range v {
		sum = sum.Add(v[i].Mul(w[i]))
	}

	return sum, nil
}

// Sum returns Σ v[i].
func (v Vector[T]) Sum() T {
	sum := num.Zero[T]()
	for _, x := range v {
		sum = sum.Add(x)
	}

	return sum
}

// Scale returns alpha*v.
func (v Vector[T]) Scale(alpha T) Vector[T] {
	out := make(Vector[T], len(v))
	for i, x := range v {
		out[i] = x.Mul(alpha)
	}

	return out
}

// Floats converts to float64 for reporting.
func (v Vector[T]) Floats() []float64 {
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x.Float64()
	}

	return out
}

func (v Vector[T]) String() string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = x.String()
	}

	return fmt.Sprintf("(%s)", strings.Join(parts, ", "))
}
