package report

import (
	"io"
	"strings"

	"github.com/movimenta/extrato-ledger/internal/models"
)

// RenderDelimited writes the filtered transactions as CSV: one header
// row plus one row per transaction, same five display columns as the
// tabular report. Every field is double-quoted with embedded quotes
// doubled; encoding/csv only quotes on demand, so rows are assembled
// directly.
func RenderDelimited(txns []models.Transaction, opts Options, w io.Writer) error {
	filtered := applyOptions(txns, opts)
	if len(filtered) == 0 {
		return ErrNoTransactions
	}

	lines := make([]string, 0, len(filtered)+1)
	lines = append(lines, csvRow(tableHead))
	for _, row := range buildRows(filtered) {
		lines = append(lines, csvRow(row))
	}

	_, err := io.WriteString(w, strings.Join(lines, "\n"))
	return err
}

func csvRow(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
