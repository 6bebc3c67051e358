// Package currency formats INR amounts with Indian digit grouping
// (1,00,000 rather than 100,000).
package currency

import (
	"fmt"
	"strings"
)

// Format renders an amount as ₹ with two decimal places, e.g. ₹43,311.00.
func Format(amount float64) string {
	return format(amount, true)
}

// FormatPrice drops the decimals when the amount is a whole number, which is
// how prices are shown on product cards.
func FormatPrice(amount float64) string {
	return format(amount, amount != float64(int64(amount)))
}

func format(amount float64, decimals bool) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	pattern := "%.0f"
	if decimals {
		pattern = "%.2f"
	}
	s := fmt.Sprintf(pattern, amount)

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	if negative {
		b.WriteByte('-')
	}
	b.WriteString("₹")
	b.WriteString(groupIndian(intPart))
	b.WriteString(fracPart)
	return b.String()
}

// groupIndian inserts commas in the lakh/crore pattern: the last three
// digits form one group, every two digits before that form another.
func groupIndian(digits string) string {
	if len(digits) <= 3 {
		return digits
	}

	head := digits[:len(digits)-3]
	tail := digits[len(digits)-3:]

	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	groups = append(groups, tail)
	return strings.Join(groups, ",")
}
