// Package money represents currency as integer minor units (cents).
// Decimal strings such as "$5,000" or "1,234.50" exist only at the
// external boundary; everything internal stays in int64 arithmetic.
package money

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var ErrInvalidAmount = errors.New("invalid money amount")

// Amount is a currency value in minor units (1/100 of a unit).
type Amount int64

// FromMajor converts a whole-unit value to an Amount.
func FromMajor(units int64) Amount {
	return Amount(units * 100)
}

// FromFloat converts a user-entered decimal value to an Amount safely.
// Prefer Parse for string input; this exists for JSON numeric payloads.
func FromFloat(v float64) (Amount, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrInvalidAmount
	}
	if v < 0 {
		return 0, ErrInvalidAmount
	}
	// int64 max ~9e18 minor units => ~9e16 major units
	if v > 9e16 {
		return 0, fmt.Errorf("%w: too large", ErrInvalidAmount)
	}
	return Amount(math.Round(v * 100.0)), nil
}

// Parse converts boundary strings like "$5,000", "1,234.50" or "300"
// into an Amount. Currency symbols, commas and surrounding whitespace
// are tolerated; at most two decimal places are accepted.
func Parse(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}

	neg := false
	if s[0] == '-' {
		neg = true
		s = s[1:]
	}

	whole, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		whole, frac = s[:i], s[i+1:]
	}
	if whole == "" && frac == "" {
		return 0, ErrInvalidAmount
	}
	if len(frac) > 2 {
		return 0, fmt.Errorf("%w: more than two decimal places", ErrInvalidAmount)
	}
	for len(frac) < 2 {
		frac += "0"
	}

	var minor int64
	for _, part := range []string{whole, frac} {
		for _, c := range part {
			if c < '0' || c > '9' {
				return 0, ErrInvalidAmount
			}
			if minor > (math.MaxInt64-int64(c-'0'))/10 {
				return 0, fmt.Errorf("%w: overflow", ErrInvalidAmount)
			}
			minor = minor*10 + int64(c-'0')
		}
	}
	if neg {
		minor = -minor
	}
	return Amount(minor), nil
}

// Float returns the major-unit value for display payloads.
func (a Amount) Float() float64 {
	return float64(a) / 100.0
}

// String formats the amount as a plain decimal, e.g. "1234.50".
func (a Amount) String() string {
	sign := ""
	v := int64(a)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// MulPercent returns a percentage of the amount, rounded half up.
// Used for fees and commission rates (e.g. MulPercent(25) is 25%).
func (a Amount) MulPercent(pct int64) Amount {
	v := int64(a) * pct
	if v >= 0 {
		return Amount((v + 50) / 100)
	}
	return Amount((v - 50) / 100)
}
