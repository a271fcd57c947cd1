// SPDX-License-Identifier: MIT

package num

import "strconv"

// Float is a float64 scalar. Comparisons are exact; tolerance handling is
// the caller's business (see Tolerance and NearZero).
type Float float64

func (a Float) Add(b Float) Float { return a + b }
func (a Float) Sub(b Float) Float { return a - b }
func (a Float) Mul(b Float) Float { return a * b }
func (a Float) Quo(b Float) Float { return a / b }
func (a Float) Neg() Float        { return -a }

func (a Float) Abs() Float {
	if a < 0 {
		return -a
	}
	return a
}

func (a Float) Cmp(b Float) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func (a Float) Sign() int { return a.Cmp(0) }

func (a Float) IsZero() bool { return a == 0 }

func (Float) FromInt(v int64) Float     { return Float(v) }
func (Float) FromFloat(v float64) Float { return Float(v) }
func (a Float) Float64() float64        { return float64(a) }
func (Float) Exact() bool               { return false }

func (a Float) String() string {
	return strconv.FormatFloat(float64(a), 'g', -1, 64)
}
