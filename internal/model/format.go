package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Format renders d with full precision and without trailing fractional
// zeros or a lone decimal point. Results wider than the display are not
// truncated.
func Format(d decimal.Decimal) string {
	return d.String()
}

// CheckOperand rejects values that could not be typed on the keypad: written
// out in plain decimal form, d may have at most MaxDigits digits. Sign and
// decimal point do not count.
func CheckOperand(d decimal.Decimal) error {
	if d.IsZero() {
		return nil
	}
	coef := d.Coefficient()
	n := len(coef.Abs(coef).String())
	exp := int(d.Exponent())

	digits := n + exp
	if exp < 0 {
		digits = max(n, -exp)
	}
	if digits > MaxDigits {
		return fmt.Errorf("%w: %d digits, limit %d", ErrOperandTooLong, digits, MaxDigits)
	}
	return nil
}

// parseInput returns the numeric value of an input string such as "-12.",
// or zero when the text is not a number.
func parseInput(s string) decimal.Decimal {
	s = strings.TrimSuffix(s, ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// validInput reports whether s is an optional "-" followed by digits with at
// most one ".", containing at least one digit.
func validInput(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" {
		return false
	}
	digits, dots := 0, 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

func countDigits(s string) int {
	n := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n++
		}
	}
	return n
}
