package investment

import (
	"strconv"
	"strings"
	"time"

	"trivest/internal/models"
)

// FirstIncomeDelay is how long after purchase the first daily credit
// becomes available.
const FirstIncomeDelay = 24 * time.Hour

// ParseValidityDays reads a validity period of the form "30 days",
// "1 day" or a bare integer. ok is false for anything else; an
// investment with an unparsable validity never expires.
func ParseValidityDays(validity string) (days int, ok bool) {
	s := strings.TrimSpace(strings.ToLower(validity))
	s = strings.TrimSuffix(s, "days")
	s = strings.TrimSuffix(s, "day")
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

// IsExpired reports whether the investment's validity window has
// passed at the given instant.
func IsExpired(inv *models.Investment, now time.Time) bool {
	days, ok := ParseValidityDays(inv.Validity)
	if !ok {
		return false
	}
	return now.After(inv.InvestDate.AddDate(0, 0, days))
}

// RemainingDays returns the whole days left in the validity window,
// rounded up and floored at zero. Unparsable validity reports zero;
// such investments stay active regardless (see IsExpired).
func RemainingDays(inv *models.Investment, now time.Time) int {
	days, ok := ParseValidityDays(inv.Validity)
	if !ok {
		return 0
	}
	end := inv.InvestDate.AddDate(0, 0, days)
	if !now.Before(end) {
		return 0
	}
	remaining := end.Sub(now)
	return int((remaining + 24*time.Hour - 1) / (24 * time.Hour))
}
