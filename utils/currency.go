package utils

import (
	"fmt"
	"strings"
	"time"
)

// FormatCurrency renders an amount with a thousands separator and two
// decimals, prefixed by the shop's currency symbol.
func FormatCurrency(symbol string, amount float64) string {
	if symbol == "" {
		symbol = "₹"
	}
	formatted := fmt.Sprintf("%.2f", amount)

	parts := strings.Split(formatted, ".")
	integerPart := parts[0]
	decimalPart := parts[1]

	neg := strings.HasPrefix(integerPart, "-")
	integerPart = strings.TrimPrefix(integerPart, "-")

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + symbol + strings.Join(groups, ",") + "." + decimalPart
}

// ParseDate parses the YYYY-MM-DD strings the entity rows carry. The zero
// time signals an unparsable or empty value.
func ParseDate(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Today returns the current date in the row date format.
func Today() string {
	return time.Now().Format("2006-01-02")
}
