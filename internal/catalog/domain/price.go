package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatPrice renders integer cents with two fraction digits.
func FormatPrice(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// ParsePrice converts a decimal string with at most two fraction digits to cents.
func ParsePrice(value string) (int64, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, ErrInvalidPrice
	}
	if strings.HasPrefix(value, "-") {
		return 0, ErrNegativePrice
	}
	value = strings.TrimPrefix(value, "+")

	whole, frac, hasFrac := strings.Cut(value, ".")
	if whole == "" && (!hasFrac || frac == "") {
		return 0, ErrInvalidPrice
	}
	if hasFrac && len(frac) > 2 {
		return 0, ErrInvalidPrice
	}
	if !digitsOnly(whole) || !digitsOnly(frac) {
		return 0, ErrInvalidPrice
	}
	for len(frac) < 2 {
		frac += "0"
	}
	if whole == "" {
		whole = "0"
	}

	units, err := strconv.ParseInt(whole, 10, 64)
	if err != nil || units > (1<<62)/100 {
		return 0, ErrInvalidPrice
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return units*100 + cents, nil
}

func digitsOnly(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
