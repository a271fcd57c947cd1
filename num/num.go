// SPDX-License-Identifier: MIT

// Package num defines the compile-time numeric capability shared by every
// pivoting layer, together with three instantiations:
//
//   - Float   IEEE-754 float64, inexact.
//   - Rat     math/big rationals, exact.
//   - Decimal shopspring arbitrary-precision decimals, rounded division.
//
// Algorithms are written once against Number[T] and instantiated per type,
// so the pivot hot path carries no interface dispatch.
package num

// Number is the self-referential constraint every scalar type must satisfy.
// Methods never mutate the receiver; results are fresh values.
//
// FromInt, FromFloat and Exact are called on the zero value of T to build
// constants inside generic code, so the zero value must be usable.
type Number[T any] interface {
	Add(T) T
	Sub(T) T
	Mul(T) T
	Quo(T) T
	Neg() T
	Abs() T

	// Cmp returns -1, 0 or +1.
	Cmp(T) int
	Sign() int
	IsZero() bool

	FromInt(int64) T
	FromFloat(float64) T
	Float64() float64

	// Exact reports whether arithmetic on T is free of rounding.
	Exact() bool
	String() string
}

// Zero returns the additive identity of T.
func Zero[T Number[T]]() T {
	var z T
	return z.FromInt(0)
}

// One returns the multiplicative identity of T.
func One[T Number[T]]() T {
	var z T
	return z.FromInt(1)
}

// Int converts an integer into T.
func Int[T Number[T]](v int64) T {
	var z T
	return z.FromInt(v)
}

// Frac returns p/q in T. q must be non-zero.
func Frac[T Number[T]](p, q int64) T {
	return Int[T](p).Quo(Int[T](q))
}

// IsExact reports whether T is an exact type.
func IsExact[T Number[T]]() bool {
	var z T
	return z.Exact()
}

// Tolerance is the zero-test threshold used for T: 0 for exact types,
// eps otherwise.
func Tolerance[T Number[T]](eps float64) T {
	if IsExact[T]() {
		return Zero[T]()
	}
	var z T
	return z.FromFloat(eps)
}

// NearZero reports |v| <= tol.
func NearZero[T Number[T]](v, tol T) bool {
	if tol.IsZero() {
		return v.IsZero()
	}
	return v.Abs().Cmp(tol) <= 0
}

// Min returns the smaller of a and b (a on ties).
func Min[T Number[T]](a, b T) T {
	if b.Cmp(a) < 0 {
		return b
	}
	return a
}

// Max returns the larger of a and b (a on ties).
func Max[T Number[T]](a, b T) T {
	if b.Cmp(a) > 0 {
		return b
	}
	return a
}
