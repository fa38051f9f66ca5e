package money

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFloat(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want Cents
	}{
		{name: "whole amount", in: 100, want: 10000},
		{name: "two decimals", in: 12.34, want: 1234},
		{name: "float drift", in: 0.1 + 0.2, want: 30},
		{name: "half rounds up", in: 12.345, want: 1235},
		{name: "below half rounds down", in: 12.344, want: 1234},
		{name: "negative half rounds away from zero", in: -0.005, want: -1},
		{name: "zero", in: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := FromFloat(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFromFloatRejectsOutOfRange(t *testing.T) {
	c, err := FromFloat(MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, MaxCents, c)

	c, err = FromFloat(-MaxAmount)
	require.NoError(t, err)
	assert.Equal(t, -MaxCents, c)

	for _, f := range []float64{2e17, -2e17, MaxAmount + 1, 1e300, math.Inf(1), math.NaN()} {
		_, err := FromFloat(f)
		assert.ErrorIs(t, err, ErrInvalidAmount, "%v", f)
	}

	_, err = FromDecimal(decimal.RequireFromString("92233720368547758.08"))
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestParse(t *testing.T) {
	c, err := Parse("70.10")
	require.NoError(t, err)
	assert.Equal(t, Cents(7010), c)

	_, err = Parse("seventy")
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Parse("1000000000000.01")
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestCentsConversions(t *testing.T) {
	c := Cents(3333)

	assert.True(t, decimal.RequireFromString("33.33").Equal(c.Decimal()))
	assert.Equal(t, 33.33, c.Float64())
	assert.Equal(t, "33.33", c.String())
	assert.Equal(t, "-0.50", Cents(-50).String())
	assert.Equal(t, Cents(50), Cents(-50).Abs())
}

func TestSum(t *testing.T) {
	total, err := Sum()
	require.NoError(t, err)
	assert.Equal(t, Cents(0), total)

	total, err = Sum(7000, 3000, -500)
	require.NoError(t, err)
	assert.Equal(t, Cents(9500), total)

	_, err = Sum(math.MaxInt64, 1)
	assert.ErrorIs(t, err, ErrInvalidAmount)

	_, err = Add(math.MinInt64, -1)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}
