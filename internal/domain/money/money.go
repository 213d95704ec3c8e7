package money

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
)

var (
	ErrMalformedAmount = errors.New("malformed amount")
	ErrNegativeAmount  = errors.New("amount cannot be negative")
	ErrOverflow        = errors.New("amount overflow")
)

// Money is an amount in cents of the catalog currency.
type Money struct {
	cents int64
}

func FromCents(cents int64) Money {
	return Money{cents: cents}
}

func (m Money) Cents() int64 { return m.cents }

func (m Money) IsZero() bool { return m.cents == 0 }

// Mul multiplies by a non-negative quantity without leaving integer arithmetic.
func (m Money) Mul(qty int) (Money, error) {
	if qty < 0 {
		return Money{}, ErrNegativeAmount
	}
	if qty == 0 || m.cents == 0 {
		return Money{}, nil
	}
	if m.cents > math.MaxInt64/int64(qty) {
		return Money{}, ErrOverflow
	}
	return Money{cents: m.cents * int64(qty)}, nil
}

// String renders the amount with two decimals, e.g. "200.00".
func (m Money) String() string {
	sign := ""
	c := m.cents
	if c < 0 {
		sign = "-"
		c = -c
	}
	return fmt.Sprintf("%s%d.%02d", sign, c/100, c%100)
}

// Parse reads catalog price strings such as "$100", "100.5" or "BZ$ 1,299.50".
// Any leading currency symbol or code is ignored; thousands separators are commas.
func Parse(s string) (Money, error) {
	raw := strings.TrimSpace(s)
	start := strings.IndexFunc(raw, func(r rune) bool {
		return unicode.IsDigit(r) || r == '-' || r == '.'
	})
	if start < 0 {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if strings.ContainsFunc(raw[:start], unicode.IsDigit) {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}

	num := strings.ReplaceAll(strings.TrimSpace(raw[start:]), ",", "")
	if strings.HasPrefix(num, "-") {
		return Money{}, ErrNegativeAmount
	}

	whole, frac, hasFrac := strings.Cut(num, ".")
	if whole == "" {
		whole = "0"
	}
	if hasFrac && (len(frac) == 0 || len(frac) > 2) {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	cents, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return Money{}, fmt.Errorf("%w: %q", ErrMalformedAmount, s)
	}
	if units > (math.MaxInt64-cents)/100 {
		return Money{}, ErrOverflow
	}
	return Money{cents: units*100 + cents}, nil
}

func MustParse(s string) Money {
	m, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return m
}
