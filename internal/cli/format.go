// Package cli provides the plan runner and terminal rendering used by tripctl.
package cli

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// FormatMoney formats an amount in dollars with thousands separators and cents.
// e.g., 1234.5 -> "$1,234.50", -20 -> "-$20.00"
func FormatMoney(d decimal.Decimal) string {
	if d.IsNegative() {
		return "-" + FormatMoney(d.Neg())
	}
	fixed := d.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")
	return "$" + groupThousands(whole) + "." + cents
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(p int) string {
	return fmt.Sprintf("%d%%", p)
}

// FormatHours formats an activity duration, dropping a trailing ".0".
// e.g., 2 -> "2h", 1.5 -> "1.5h"
func FormatHours(h float64) string {
	if h == float64(int64(h)) {
		return fmt.Sprintf("%dh", int64(h))
	}
	return fmt.Sprintf("%.1fh", h)
}

// groupThousands inserts comma separators into a string of digits.
func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
