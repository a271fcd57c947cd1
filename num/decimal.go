// SPDX-License-Identifier: MIT

package num

import "github.com/shopspring/decimal"

// DecimalPrecision is the number of fractional digits kept by Decimal.Quo.
const DecimalPrecision int32 = 40

// Decimal is an arbitrary-precision decimal. Everything but division is
// exact; division rounds to DecimalPrecision digits, so Decimal reports
// itself as inexact.
type Decimal struct {
	d decimal.Decimal
}

// NewDecimal wraps an existing decimal value.
func NewDecimal(d decimal.Decimal) Decimal { return Decimal{d: d} }

// ParseDecimal parses a decimal literal such as "-1.25".
func ParseDecimal(s string) (Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Decimal{}, err
	}
	return Decimal{d: d}, nil
}

// Value returns the wrapped decimal.
func (a Decimal) Value() decimal.Decimal { return a.d }

func (a Decimal) Add(b Decimal) Decimal { return Decimal{d: a.d.Add(b.d)} }
func (a Decimal) Sub(b Decimal) Decimal { return Decimal{d: a.d.Sub(b.d)} }
func (a Decimal) Mul(b Decimal) Decimal { return Decimal{d: a.d.Mul(b.d)} }

func (a Decimal) Quo(b Decimal) Decimal {
	return Decimal{d: a.d.DivRound(b.d, DecimalPrecision)}
}

func (a Decimal) Neg() Decimal { return Decimal{d: a.d.Neg()} }
func (a Decimal) Abs() Decimal { return Decimal{d: a.d.Abs()} }

func (a Decimal) Cmp(b Decimal) int { return a.d.Cmp(b.d) }
func (a Decimal) Sign() int         { return a.d.Sign() }
func (a Decimal) IsZero() bool      { return a.d.IsZero() }

func (Decimal) FromInt(v int64) Decimal     { return Decimal{d: decimal.NewFromInt(v)} }
func (Decimal) FromFloat(v float64) Decimal { return Decimal{d: decimal.NewFromFloat(v)} }
func (a Decimal) Float64() float64          { return a.d.InexactFloat64() }
func (Decimal) Exact() bool                 { return false }
func (a Decimal) String() string            { return a.d.String() }
