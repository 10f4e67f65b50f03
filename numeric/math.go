// Package numeric implements fixed-point decimal arithmetic over
// integer-denominated token amounts. All amounts travel as decimal strings
// and all math goes through shopspring/decimal; native floats are never
// used because amounts routinely exceed 2^53 micro-units.
package numeric

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrInvalidNumber reports a non-numeric input or a division by zero.
// Callers holding possibly-empty user input should substitute "0" with Or
// before doing arithmetic.
var ErrInvalidNumber = errors.New("invalid number")

// Or returns s unless it is empty, in which case it returns fallback.
func Or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func parse(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return d, nil
}

func parse2(a, b string) (decimal.Decimal, decimal.Decimal, error) {
	da, err := parse(a)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	db, err := parse(b)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	return da, db, nil
}

// Plus returns a + b.
func Plus(a, b string) (string, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return da.Add(db).String(), nil
}

// Minus returns a - b.
func Minus(a, b string) (string, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return da.Sub(db).String(), nil
}

// Times returns a * b.
func Times(a, b string) (string, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	return da.Mul(db).String(), nil
}

// Div returns a / b. Division by zero is ErrInvalidNumber.
func Div(a, b string) (string, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return "", err
	}
	if db.IsZero() {
		return "", fmt.Errorf("%w: division by zero", ErrInvalidNumber)
	}
	return da.DivRound(db, 18).String(), nil
}

// Ceil rounds up to an integer amount.
func Ceil(s string) (string, error) {
	d, err := parse(s)
	if err != nil {
		return "", err
	}
	return d.Ceil().String(), nil
}

// Floor rounds down to an integer amount.
func Floor(s string) (string, error) {
	d, err := parse(s)
	if err != nil {
		return "", err
	}
	return d.Floor().String(), nil
}

// Min returns the smallest of the given values.
func Min(values ...string) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("%w: no values", ErrInvalidNumber)
	}
	min, err := parse(values[0])
	if err != nil {
		return "", err
	}
	for _, v := range values[1:] {
		d, err := parse(v)
		if err != nil {
			return "", err
		}
		if d.LessThan(min) {
			min = d
		}
	}
	return min.String(), nil
}

// Max returns the largest of the given values.
func Max(values ...string) (string, error) {
	if len(values) == 0 {
		return "", fmt.Errorf("%w: no values", ErrInvalidNumber)
	}
	max, err := parse(values[0])
	if err != nil {
		return "", err
	}
	for _, v := range values[1:] {
		d, err := parse(v)
		if err != nil {
			return "", err
		}
		if d.GreaterThan(max) {
			max = d
		}
	}
	return max.String(), nil
}

// Percent renders a rate as a percentage truncated to p decimal places,
// e.g. Percent("0.00506", 3) == "0.506%".
func Percent(s string, p int32) (string, error) {
	d, err := parse(Or(s, "0"))
	if err != nil {
		return "", err
	}
	return d.Mul(decimal.NewFromInt(100)).Truncate(p).String() + "%", nil
}

// Gt reports a > b.
func Gt(a, b string) (bool, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return false, err
	}
	return da.GreaterThan(db), nil
}

// Gte reports a >= b.
func Gte(a, b string) (bool, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return false, err
	}
	return da.GreaterThanOrEqual(db), nil
}

// Lt reports a < b.
func Lt(a, b string) (bool, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return false, err
	}
	return da.LessThan(db), nil
}

// Lte reports a <= b.
func Lte(a, b string) (bool, error) {
	da, db, err := parse2(a, b)
	if err != nil {
		return false, err
	}
	return da.LessThanOrEqual(db), nil
}

// IsInteger reports whether s parses as a whole number. Micro-unit amounts
// must be integers; a send of "0.1" micro-units is malformed input.
func IsInteger(s string) bool {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return false
	}
	return d.Equal(d.Truncate(0))
}
