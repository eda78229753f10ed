package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// statement dates are strictly DD/MM/YYYY
const dateLayout = "02/01/2006"

// ParseAmount converts a pt-BR formatted amount like "1.234,56" or
// "-R$ 1.234,56" into a decimal. Thousands dots are stripped and the
// decimal comma converted before parsing.
func ParseAmount(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, " ", "") // non-breaking space
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParseDate parses a DD/MM/YYYY date. Out-of-range components
// (e.g. 32/01/2024) are rejected rather than rolled over.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(dateLayout, strings.TrimSpace(s))
}
