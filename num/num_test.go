package num_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gambitproject/gambit-sub018/num"
)

func TestRatZeroValueIsUsable(t *testing.T) {
	var z num.Rat
	require.True(t, z.IsZero())
	require.Equal(t, "0", z.String())
	require.Equal(t, "3/2", z.Add(num.NewRat(3, 2)).String())
	require.Equal(t, 0, z.Cmp(num.Zero[num.Rat]()))
}

func TestRatArithmeticIsExact(t *testing.T) {
	third := num.Frac[num.Rat](1, 3)
	sum := third.Add(third).Add(third)
	require.Equal(t, 0, sum.Cmp(num.One[num.Rat]()))
	require.Equal(t, "-1/3", third.Neg().String())
	require.Equal(t, 1, third.Abs().Sign())
	require.True(t, num.IsExact[num.Rat]())
}

func TestParseRat(t *testing.T) {
	v, ok := num.ParseRat("6/4")
	require.True(t, ok)
	require.Equal(t, "3/2", v.String())

	_, ok = num.ParseRat("x")
	require.False(t, ok)
}

func TestFloatBasics(t *testing.T) {
	a, b := num.Float(1.5), num.Float(-2)
	require.Equal(t, num.Float(-0.5), a.Add(b))
	require.Equal(t, 1, a.Cmp(b))
	require.Equal(t, -1, b.Sign())
	require.Equal(t, num.Float(2), b.Abs())
	require.False(t, num.IsExact[num.Float]())
}

func TestDecimalDivisionRounds(t *testing.T) {
	third := num.Frac[num.Decimal](1, 3)
	back := third.Mul(num.Int[num.Decimal](3))
	// rounding leaves a residue far below any practical tolerance
	require.False(t, back.Sub(num.One[num.Decimal]()).IsZero())
	require.True(t, num.NearZero(back.Sub(num.One[num.Decimal]()), num.Tolerance[num.Decimal](1e-30)))
	require.False(t, num.IsExact[num.Decimal]())

	d, err := num.ParseDecimal("-1.25")
	require.NoError(t, err)
	require.Equal(t, -1.25, d.Float64())
}

func TestToleranceIsZeroForExactTypes(t *testing.T) {
	require.True(t, num.Tolerance[num.Rat](1e-9).IsZero())
	require.Equal(t, num.Float(1e-9), num.Tolerance[num.Float](1e-9))
	require.True(t, num.NearZero(num.Float(1e-12), num.Float(1e-9)))
	require.False(t, num.NearZero(num.NewRat(1, 1000000000000), num.Zero[num.Rat]()))
}

func TestMinMax(t *testing.T) {
	a, b := num.NewRat(1, 2), num.NewRat(2, 3)
	require.Equal(t, "1/2", num.Min(a, b).String())
	require.Equal(t, "2/3", num.Max(a, b).String())
}
