package service

import (
	"math"
	"strings"
	"unicode"

	"github.com/shopspring/decimal"
)

const maxNameLength = 120

var maxInt64 = decimal.NewFromInt(math.MaxInt64)

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// parseAmount strips "." and "," grouping separators and parses what is
// left as a whole currency amount.
func parseAmount(raw string) (decimal.Decimal, bool) {
	cleaned := strings.NewReplacer(".", "", ",", "").Replace(strings.TrimSpace(raw))
	if !isDigits(cleaned) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil || d.GreaterThan(maxInt64) {
		return decimal.Zero, false
	}
	return d, true
}

// parseRate accepts a percent such as "1" or "1.5".
func parseRate(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if !isDigits(strings.ReplaceAll(raw, ".", "")) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

func parseTerm(raw string) (int64, bool) {
	raw = strings.TrimSpace(raw)
	if !isDigits(raw) {
		return 0, false
	}
	d, err := decimal.NewFromString(raw)
	if err != nil || d.GreaterThan(maxInt64) {
		return 0, false
	}
	return d.IntPart(), true
}

// sanitizeName drops control characters and collapses whitespace runs.
func sanitizeName(raw string) string {
	var b strings.Builder
	space := false
	for _, r := range raw {
		switch {
		case unicode.IsSpace(r):
			space = b.Len() > 0
		case unicode.IsControl(r), r == unicode.ReplacementChar:
			continue
		default:
			if space {
				b.WriteByte(' ')
				space = false
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}
