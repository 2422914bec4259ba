package model

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidPrice is returned for prices that are not a whole non-negative amount.
var ErrInvalidPrice = errors.New("invalid price")

// ParsePrice reads an admin-entered VND amount such as "150.000",
// "150,000 ₫" or "150000". Dots, commas and spaces are digit grouping; the
// currency marks "₫", "đ" and "VND" are ignored.
func ParsePrice(s string) (int64, error) {
	s = strings.TrimSpace(s)
	for _, mark := range []string{"VND", "vnd", "₫", "đ"} {
		s = strings.ReplaceAll(s, mark, "")
	}
	var digits strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == '.' || r == ',' || r == ' ' || r == '\u00a0':
		default:
			return 0, ErrInvalidPrice
		}
	}
	if digits.Len() == 0 {
		return 0, ErrInvalidPrice
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return 0, ErrInvalidPrice
	}
	return n, nil
}

// FormatVND renders an amount with dot grouping, e.g. 150000 -> "150.000".
func FormatVND(v int64) string {
	neg := v < 0
	if neg {
		v = -v
	}
	s := strconv.FormatInt(v, 10)
	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	lead := len(s) % 3
	if lead == 0 {
		lead = 3
	}
	b.WriteString(s[:lead])
	for i := lead; i < len(s); i += 3 {
		b.WriteByte('.')
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
