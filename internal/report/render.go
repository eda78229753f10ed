// Package report projects a transaction slice into downloadable
// artifacts: a paginated PDF table or a quoted CSV payload, both with
// pt-BR formatting.
package report

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/movimenta/extrato-ledger/internal/ledger"
	"github.com/movimenta/extrato-ledger/internal/models"
)

// ErrNoTransactions fails a render whose filtered input is empty.
// A zero-row artifact is never produced.
var ErrNoTransactions = errors.New("nenhuma movimentação disponível para exportação")

// DefaultTitle heads the tabular report when no title is given.
const DefaultTitle = "Movimentações Financeiras"

// Options controls one render. The type and date-range filters are
// applied by the renderer itself, independently of any upstream
// filtering, so callers may hand over an unfiltered ledger snapshot.
type Options struct {
	Title    string
	Filename string
	Type     models.TypeFilter
	Range    *models.DateRange
	// Now overrides the render timestamp (default filename, header
	// subtitle). Zero means time.Now.
	Now time.Time
}

func (o Options) title() string {
	if o.Title == "" {
		return DefaultTitle
	}
	return o.Title
}

func (o Options) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// FileFor resolves the artifact filename for the given extension,
// swapping the extension of an explicit filename when needed.
func (o Options) FileFor(ext string) string {
	if o.Filename == "" {
		return DefaultFilename(o.now(), ext)
	}
	name := o.Filename
	for _, other := range []string{".pdf", ".csv"} {
		if other != ext && len(name) > len(other) && name[len(name)-len(other):] == other {
			return name[:len(name)-len(other)] + ext
		}
	}
	return name
}

// TableBackend is the paginated tabular renderer capability consumed by
// RenderTabular. Implementations own typesetting; the renderer owns
// content, sequencing, and pagination metadata. StampFooter must accept
// any page produced so far (random access after layout).
type TableBackend interface {
	DrawHeader(title, subtitle string)
	DrawTable(head []string, rows [][]string)
	PageCount() int
	StampFooter(page int, text string)
	Output(w io.Writer) error
}

var tableHead = []string{"Data", "Descrição", "Categoria", "Tipo", "Valor"}

// RenderTabular lays out the filtered transactions on the backend and
// writes the finished artifact to w. Footers carry "Página i de N" and
// are stamped only after the table layout is complete: N is not known
// until pagination has finished, so stamping during layout would record
// a provisional count.
func RenderTabular(txns []models.Transaction, opts Options, backend TableBackend, w io.Writer) error {
	filtered := applyOptions(txns, opts)
	if len(filtered) == 0 {
		return ErrNoTransactions
	}

	backend.DrawHeader(opts.title(), "Exportado em: "+FormatDateTimeBR(opts.now()))
	backend.DrawTable(tableHead, buildRows(filtered))

	n := backend.PageCount()
	for i := 1; i <= n; i++ {
		backend.StampFooter(i, fmt.Sprintf("Página %d de %d", i, n))
	}

	return backend.Output(w)
}

// RenderPDF is RenderTabular over the gofpdf backend.
func RenderPDF(txns []models.Transaction, opts Options, w io.Writer) error {
	return RenderTabular(txns, opts, newPDFBackend(), w)
}

func applyOptions(txns []models.Transaction, opts Options) []models.Transaction {
	return ledger.Apply(txns, models.FilterCriteria{Type: opts.Type, Range: opts.Range})
}

// buildRows projects transactions into display cells, one row each,
// in the column order of tableHead.
func buildRows(txns []models.Transaction) [][]string {
	rows := make([][]string, 0, len(txns))
	for _, t := range txns {
		rows = append(rows, []string{
			FormatDateBR(t.Date),
			t.Description,
			t.Category,
			t.Type().Label(),
			FormatBRL(t.Amount),
		})
	}
	return rows
}
