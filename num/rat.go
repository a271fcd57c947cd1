// SPDX-License-Identifier: MIT

package num

import "math/big"

// Rat is an immutable exact rational. The zero value is 0.
type Rat struct {
	r *big.Rat // nil means 0; never mutated after construction
}

// NewRat returns p/q. It panics if q == 0, like big.NewRat.
func NewRat(p, q int64) Rat {
	return Rat{r: big.NewRat(p, q)}
}

// RatFromBig copies v into a Rat.
func RatFromBig(v *big.Rat) Rat {
	if v == nil {
		return Rat{}
	}
	return Rat{r: new(big.Rat).Set(v)}
}

// ParseRat parses "p/q", an integer or a decimal literal.
func ParseRat(s string) (Rat, bool) {
	v, ok := new(big.Rat).SetString(s)
	if !ok {
		return Rat{}, false
	}
	return Rat{r: v}, true
}

func (a Rat) val() *big.Rat {
	if a.r == nil {
		return new(big.Rat)
	}
	return a.r
}

// Big returns a copy of the underlying value.
func (a Rat) Big() *big.Rat { return new(big.Rat).Set(a.val()) }

func (a Rat) Add(b Rat) Rat { return Rat{r: new(big.Rat).Add(a.val(), b.val())} }
func (a Rat) Sub(b Rat) Rat { return Rat{r: new(big.Rat).Sub(a.val(), b.val())} }
func (a Rat) Mul(b Rat) Rat { return Rat{r: new(big.Rat).Mul(a.val(), b.val())} }

// Quo panics on division by zero; pivoting code checks divisors first.
func (a Rat) Quo(b Rat) Rat { return Rat{r: new(big.Rat).Quo(a.val(), b.val())} }

func (a Rat) Neg() Rat { return Rat{r: new(big.Rat).Neg(a.val())} }
func (a Rat) Abs() Rat { return Rat{r: new(big.Rat).Abs(a.val())} }

func (a Rat) Cmp(b Rat) int { return a.val().Cmp(b.val()) }
func (a Rat) Sign() int     { return a.val().Sign() }
func (a Rat) IsZero() bool  { return a.Sign() == 0 }

func (Rat) FromInt(v int64) Rat { return Rat{r: new(big.Rat).SetInt64(v)} }

// FromFloat converts v exactly. Non-finite input is a programmer error.
func (Rat) FromFloat(v float64) Rat {
	r := new(big.Rat).SetFloat64(v)
	if r == nil {
		panic("num: Rat.FromFloat: non-finite value")
	}
	return Rat{r: r}
}

func (a Rat) Float64() float64 {
	f, _ := a.val().Float64()
	return f
}

func (Rat) Exact() bool { return true }

func (a Rat) String() string { return a.val().RatString() }
