package report

import (
	"io"

	"github.com/jung-kurt/gofpdf"
)

// A4 portrait, millimetre units. The bottom margin reserves room for
// the page footer stamped after layout.
const (
	marginX      = 14.0
	tableTop     = 57.0 // first page: below the header block
	tablePageTop = 20.0 // continuation pages
	bottomLimit  = 30.0
	footerOffset = 10.0
	rowLine      = 4.0
	cellPad      = 1.5
	headRowH     = 8.0
)

// pdfBackend implements TableBackend on gofpdf. Column metrics:
// Data 25 centered, Descrição flexible left, Categoria 40 left,
// Tipo 25 centered, Valor 30 right.
type pdfBackend struct {
	pdf      *gofpdf.Fpdf
	tr       func(string) string
	widths   [5]float64
	aligns   [5]string
	head     []string
	pageH    float64
	contentW float64
}

func newPDFBackend() *pdfBackend {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)

	b := &pdfBackend{
		pdf: pdf,
		// Core fonts are cp1252; the translator covers Portuguese
		// diacritics.
		tr: pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pageW, pageH := pdf.GetPageSize()
	b.pageH = pageH
	b.contentW = pageW - 2*marginX
	b.widths = [5]float64{25, b.contentW - 120, 40, 25, 30}
	b.aligns = [5]string{"C", "L", "L", "C", "R"}
	return b
}

func (b *pdfBackend) DrawHeader(title, subtitle string) {
	b.pdf.AddPage()
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetY(15)
	b.pdf.SetFont("Helvetica", "B", 16)
	b.pdf.CellFormat(0, 10, b.tr(title), "", 1, "C", false, 0, "")
	b.pdf.SetY(27)
	b.pdf.SetFont("Helvetica", "", 10)
	b.pdf.CellFormat(0, 6, b.tr(subtitle), "", 1, "C", false, 0, "")
}

func (b *pdfBackend) DrawTable(head []string, rows [][]string) {
	b.head = head
	if b.pdf.PageCount() == 0 {
		b.pdf.AddPage()
	}
	b.pdf.SetY(tableTop)
	b.drawHeadRow()

	b.pdf.SetFont("Helvetica", "", 8)
	for i, row := range rows {
		// SplitText expects UTF-8; translate each line at draw time.
		desc := b.pdf.SplitText(row[1], b.widths[1]-2*cellPad)
		if len(desc) == 0 {
			desc = []string{""}
		}
		rowH := float64(len(desc))*rowLine + 2*cellPad

		if b.pdf.GetY()+rowH > b.pageH-bottomLimit {
			b.pdf.AddPage()
			b.pdf.SetY(tablePageTop)
			b.drawHeadRow()
			b.pdf.SetFont("Helvetica", "", 8)
		}

		y := b.pdf.GetY()
		if i%2 == 1 {
			b.pdf.SetFillColor(245, 245, 245)
			b.pdf.Rect(marginX, y, b.contentW, rowH, "F")
		}

		x := marginX
		for col := range b.widths {
			if col == 1 {
				// Description wraps; the other cells are a
				// single line, vertically centered.
				for j, line := range desc {
					b.pdf.SetXY(x+cellPad, y+cellPad+float64(j)*rowLine)
					b.pdf.CellFormat(b.widths[col]-2*cellPad, rowLine, b.tr(line), "", 0, "L", false, 0, "")
				}
			} else {
				b.pdf.SetXY(x, y+(rowH-rowLine)/2)
				b.pdf.CellFormat(b.widths[col], rowLine, b.tr(row[col]), "", 0, b.aligns[col], false, 0, "")
			}
			x += b.widths[col]
		}
		b.pdf.SetXY(marginX, y+rowH)
	}
}

// drawHeadRow paints the bold, inverse-color column header. Repeated at
// the top of every table page.
func (b *pdfBackend) drawHeadRow() {
	b.pdf.SetFont("Helvetica", "B", 8)
	b.pdf.SetFillColor(66, 139, 202)
	b.pdf.SetTextColor(255, 255, 255)

	y := b.pdf.GetY()
	x := marginX
	for i, label := range b.head {
		b.pdf.SetXY(x, y)
		b.pdf.CellFormat(b.widths[i], headRowH, b.tr(label), "", 0, "C", true, 0, "")
		x += b.widths[i]
	}
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetXY(marginX, y+headRowH)
}

func (b *pdfBackend) PageCount() int {
	return b.pdf.PageCount()
}

// StampFooter revisits an already-produced page and writes the footer
// text centered near the bottom edge.
func (b *pdfBackend) StampFooter(page int, text string) {
	b.pdf.SetPage(page)
	b.pdf.SetFont("Helvetica", "", 8)
	b.pdf.SetTextColor(0, 0, 0)
	b.pdf.SetXY(marginX, b.pageH-footerOffset)
	b.pdf.CellFormat(b.contentW, 5, b.tr(text), "", 0, "C", false, 0, "")
}

func (b *pdfBackend) Output(w io.Writer) error {
	if err := b.pdf.Error(); err != nil {
		return err
	}
	return b.pdf.Output(w)
}
