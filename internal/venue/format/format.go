// Package format renders rupee amounts the way Indian planners read them.
package format

import (
	"fmt"
	"strconv"
)

const (
	lakh  = 100000
	crore = 10000000
)

// INR formats whole rupees: "₹1.2 Crores", "₹4.5 Lakhs" or "₹75,000".
func INR(amount int64) string {
	switch {
	case amount >= crore:
		return fmt.Sprintf("₹%.1f Crores", float64(amount)/crore)
	case amount >= lakh:
		return fmt.Sprintf("₹%.1f Lakhs", float64(amount)/lakh)
	}
	return "₹" + Grouped(amount)
}

// Grouped renders n with Indian digit grouping: 12,34,567.
func Grouped(n int64) string {
	if n < 0 {
		return "-" + Grouped(-n)
	}
	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	head, tail := s[:len(s)-3], s[len(s)-3:]
	out := make([]byte, 0, len(s)+len(s)/2)
	lead := len(head) % 2
	if lead > 0 {
		out = append(out, head[:lead]...)
	}
	for i := lead; i < len(head); i += 2 {
		if len(out) > 0 {
			out = append(out, ',')
		}
		out = append(out, head[i:i+2]...)
	}
	out = append(out, ',')
	out = append(out, tail...)
	return string(out)
}

// Rating renders a star rating without trailing zeros: 4.8, 5, 4.25.
func Rating(r float64) string {
	return strconv.FormatFloat(r, 'f', -1, 64)
}
