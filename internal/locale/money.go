package locale

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

var ErrInvalidPrice = errors.New("invalid price")

// FormatAmount renders an amount with exactly two decimals and no symbol,
// e.g. "599.98".
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatMoney renders an amount for display with the locale's symbol and
// thousand separators, e.g. "$1,299.99".
func (l Locale) FormatMoney(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	whole, frac, _ := strings.Cut(s, ".")
	out := thousandSep(whole) + "." + frac
	if neg {
		return "-" + l.Symbol + out
	}
	return l.Symbol + out
}

func thousandSep(digits string) string {
	var b strings.Builder
	for i, c := range digits {
		if i != 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(c)
	}
	return b.String()
}

// ParsePrice reads a display price such as "¥2,199.50", "$24.99" or
// "CNY 88". Fractional digits are kept.
func ParsePrice(s string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(s)
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		default:
			return -1
		}
	}, raw)
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidPrice, s)
	}
	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: %q is negative", ErrInvalidPrice, s)
	}
	return d, nil
}
