package report

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatDateBR renders a date in the Brazilian DD/MM/YYYY convention.
func FormatDateBR(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatDateTimeBR renders date plus 24-hour time (DD/MM/YYYY HH:MM).
func FormatDateTimeBR(t time.Time) string {
	return t.Format("02/01/2006 15:04")
}

// FormatBRL renders a monetary value in pt-BR currency style:
// dot thousands separators, comma decimal mark, two decimal places,
// e.g. -1234.5 → "-R$ 1.234,50". The output re-parses to the same
// value under the extractor's amount grammar.
func FormatBRL(d decimal.Decimal) string {
	fixed := d.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(r)
	}

	sign := ""
	if d.IsNegative() {
		sign = "-"
	}
	return fmt.Sprintf("%sR$ %s,%s", sign, b.String(), fracPart)
}

// DefaultFilename builds the artifact name from a timestamp:
// movimentacoes_YYYYMMDD_HHMM plus the extension (".pdf" or ".csv").
func DefaultFilename(now time.Time, ext string) string {
	return "movimentacoes_" + now.Format("20060102_1504") + ext
}
