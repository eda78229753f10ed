package report

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/movimenta/extrato-ledger/internal/models"
)

// fakeBackend records the render sequence and simulates pagination by
// a fixed row capacity per page.
type fakeBackend struct {
	rowsPerPage int
	title       string
	subtitle    string
	head        []string
	rows        [][]string
	stamps      []string
	stampPages  []int
	outputs     int
}

func (f *fakeBackend) DrawHeader(title, subtitle string) {
	f.title, f.subtitle = title, subtitle
}

func (f *fakeBackend) DrawTable(head []string, rows [][]string) {
	f.head, f.rows = head, rows
}

func (f *fakeBackend) PageCount() int {
	if len(f.rows) == 0 {
		return 1
	}
	return (len(f.rows) + f.rowsPerPage - 1) / f.rowsPerPage
}

func (f *fakeBackend) StampFooter(page int, text string) {
	f.stampPages = append(f.stampPages, page)
	f.stamps = append(f.stamps, text)
}

func (f *fakeBackend) Output(w io.Writer) error {
	f.outputs++
	return nil
}

func reportTxns(n int) []models.Transaction {
	txns := make([]models.Transaction, 0, n)
	for i := 0; i < n; i++ {
		amount := decimal.New(int64((i+1)*10), 0)
		if i%2 == 1 {
			amount = amount.Neg()
		}
		txns = append(txns, models.Transaction{
			ID:          i,
			Date:        time.Date(2024, time.January, i+1, 0, 0, 0, 0, time.UTC),
			Description: fmt.Sprintf("Lançamento %d", i),
			Category:    "Outros",
			Amount:      amount,
		})
	}
	return txns
}

func TestRenderTabular_FooterStampsMatchPageCount(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 4}
	err := RenderTabular(reportTxns(10), Options{}, backend, &bytes.Buffer{})
	require.NoError(t, err)

	// 10 rows at 4 per page: 3 pages, each stamped exactly once with
	// the final total.
	require.Equal(t, []int{1, 2, 3}, backend.stampPages)
	assert.Equal(t, []string{
		"Página 1 de 3",
		"Página 2 de 3",
		"Página 3 de 3",
	}, backend.stamps)
	assert.Equal(t, 1, backend.outputs)
}

func TestRenderTabular_HeaderAndRows(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 100}
	ts := time.Date(2024, time.February, 10, 8, 45, 0, 0, time.UTC)

	err := RenderTabular(reportTxns(2), Options{Title: "Extrato Fevereiro", Now: ts}, backend, &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, "Extrato Fevereiro", backend.title)
	assert.Equal(t, "Exportado em: 10/02/2024 08:45", backend.subtitle)
	assert.Equal(t, []string{"Data", "Descrição", "Categoria", "Tipo", "Valor"}, backend.head)
	require.Len(t, backend.rows, 2)
	assert.Equal(t, []string{"01/01/2024", "Lançamento 0", "Outros", "Entrada", "R$ 10,00"}, backend.rows[0])
	assert.Equal(t, []string{"02/01/2024", "Lançamento 1", "Outros", "Saída", "-R$ 20,00"}, backend.rows[1])
}

func TestRenderTabular_DefaultTitle(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 100}
	require.NoError(t, RenderTabular(reportTxns(1), Options{}, backend, &bytes.Buffer{}))
	assert.Equal(t, DefaultTitle, backend.title)
}

func TestRenderTabular_AppliesTypeAndRange(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 100}
	opts := Options{
		Type: models.FilterDebit,
		Range: &models.DateRange{
			Start: time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
		},
	}

	err := RenderTabular(reportTxns(10), opts, backend, &bytes.Buffer{})
	require.NoError(t, err)

	// Days 2-4 hold IDs 1-3; of those only IDs 1 and 3 are debits.
	require.Len(t, backend.rows, 2)
	assert.Equal(t, "Lançamento 1", backend.rows[0][1])
	assert.Equal(t, "Lançamento 3", backend.rows[1][1])
}

func TestRenderTabular_EmptyInput(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 4}
	err := RenderTabular(nil, Options{}, backend, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.Zero(t, backend.outputs, "no artifact on empty input")
}

func TestRenderTabular_FilteredToEmpty(t *testing.T) {
	backend := &fakeBackend{rowsPerPage: 4}
	onlyCredits := []models.Transaction{{
		Date:   time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Amount: decimal.New(100, 0),
	}}
	err := RenderTabular(onlyCredits, Options{Type: models.FilterDebit}, backend, &bytes.Buffer{})
	assert.ErrorIs(t, err, ErrNoTransactions)
}

func TestRenderDelimited(t *testing.T) {
	var buf bytes.Buffer
	err := RenderDelimited(reportTxns(2), Options{}, &buf)
	require.NoError(t, err)

	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, `"Data","Descrição","Categoria","Tipo","Valor"`, lines[0])
	assert.Equal(t, `"01/01/2024","Lançamento 0","Outros","Entrada","R$ 10,00"`, lines[1])
	assert.Equal(t, `"02/01/2024","Lançamento 1","Outros","Saída","-R$ 20,00"`, lines[2])
	assert.False(t, strings.HasSuffix(buf.String(), "\n"), "no trailing newline")
}

func TestRenderDelimited_EscapesEmbeddedQuotes(t *testing.T) {
	txns := []models.Transaction{{
		Date:        time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC),
		Description: `PAGTO "LOJA, CENTRO"`,
		Category:    "Outros",
		Amount:      decimal.New(-5, 0),
	}}

	var buf bytes.Buffer
	require.NoError(t, RenderDelimited(txns, Options{}, &buf))

	assert.Contains(t, buf.String(), `"PAGTO ""LOJA, CENTRO"""`)
}

func TestRenderDelimited_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := RenderDelimited(nil, Options{}, &buf)
	assert.ErrorIs(t, err, ErrNoTransactions)
	assert.Zero(t, buf.Len())
}

func TestRenderPDF_ProducesPDFBytes(t *testing.T) {
	var buf bytes.Buffer
	err := RenderPDF(reportTxns(60), Options{Title: "Movimentações"}, &buf)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF")), "output starts with %%PDF")
	assert.Greater(t, buf.Len(), 1000)
}
