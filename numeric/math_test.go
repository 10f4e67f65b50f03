package numeric_test

import (
	"errors"
	"testing"

	"github.com/zeebo/assert"

	"github.com/terra-community/station-core/numeric"
)

func TestArithmetic(t *testing.T) {
	plus, err := numeric.Plus("1234567890", "1")
	assert.NoError(t, err)
	assert.Equal(t, "1234567891", plus)

	minus, err := numeric.Minus("1000000", "1")
	assert.NoError(t, err)
	assert.Equal(t, "999999", minus)

	// amounts above 2^53 must not lose precision
	times, err := numeric.Times("90071992547409920", "2")
	assert.NoError(t, err)
	assert.Equal(t, "180143985094819840", times)

	div, err := numeric.Div("10", "4")
	assert.NoError(t, err)
	assert.Equal(t, "2.5", div)
}

func TestInvalidInput(t *testing.T) {
	_, err := numeric.Plus("abc", "1")
	assert.True(t, errors.Is(err, numeric.ErrInvalidNumber))

	_, err = numeric.Div("1", "0")
	assert.True(t, errors.Is(err, numeric.ErrInvalidNumber))

	_, err = numeric.Times("", "1")
	assert.True(t, errors.Is(err, numeric.ErrInvalidNumber))

	// callers guard empty input with Or before arithmetic
	sum, err := numeric.Plus(numeric.Or("", "0"), "5")
	assert.NoError(t, err)
	assert.Equal(t, "5", sum)
}

func TestRounding(t *testing.T) {
	ceil, err := numeric.Ceil("885.5")
	assert.NoError(t, err)
	assert.Equal(t, "886", ceil)

	floor, err := numeric.Floor("885.5")
	assert.NoError(t, err)
	assert.Equal(t, "885", floor)

	ceil, err = numeric.Ceil("886")
	assert.NoError(t, err)
	assert.Equal(t, "886", ceil)
}

func TestMinMax(t *testing.T) {
	min, err := numeric.Min("3", "1", "2")
	assert.NoError(t, err)
	assert.Equal(t, "1", min)

	max, err := numeric.Max("3", "1", "2")
	assert.NoError(t, err)
	assert.Equal(t, "3", max)
}

func TestPercent(t *testing.T) {
	p, err := numeric.Percent("0.00506", 3)
	assert.NoError(t, err)
	assert.Equal(t, "0.506%", p)
}

func TestComparisons(t *testing.T) {
	gt, err := numeric.Gt("2", "1")
	assert.NoError(t, err)
	assert.True(t, gt)

	lte, err := numeric.Lte("2", "2")
	assert.NoError(t, err)
	assert.True(t, lte)

	assert.True(t, numeric.IsInteger("1234567890"))
	assert.False(t, numeric.IsInteger("1.5"))
	assert.False(t, numeric.IsInteger("abc"))
}
