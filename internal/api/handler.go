// Package api exposes the statement pipeline over HTTP: upload a PDF,
// query and filter the resulting ledger, and download PDF/CSV reports.
package api

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/movimenta/extrato-ledger/internal/extractor"
	"github.com/movimenta/extrato-ledger/internal/ledger"
	"github.com/movimenta/extrato-ledger/internal/models"
	"github.com/movimenta/extrato-ledger/internal/parser"
	"github.com/movimenta/extrato-ledger/internal/report"
)

const version = "1.0.0"

// pageBreakMarker separates pages in pre-extracted text uploads.
const pageBreakMarker = "\n---PAGE_BREAK---\n"

// Server holds the in-memory ledger and the parsing pipeline behind the
// HTTP handlers. The ledger is replaced wholesale on each upload.
type Server struct {
	ledger *ledger.Ledger
	parser *parser.Parser
	cats   []string
	log    zerolog.Logger
}

// NewServer wires the pipeline. cat categorizes parsed transactions and
// its label list backs the categories endpoint.
func NewServer(cat Categorizer, log zerolog.Logger) *Server {
	return &Server{
		ledger: ledger.New(),
		parser: parser.New(cat, log),
		cats:   cat.Categories(),
		log:    log,
	}
}

// Categorizer is what the server needs from the taxonomy component.
type Categorizer interface {
	Categorize(description string) string
	Categories() []string
}

// Register mounts the API routes.
func (s *Server) Register(app *fiber.App) {
	app.Use(RequestID())
	app.Use(RequestLogger(s.log))
	app.Use(Recover(s.log))

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/statements", s.handleUpload)
	app.Delete("/api/statements", s.handleClear)
	app.Get("/api/transactions", s.handleTransactions)
	app.Get("/api/categories", s.handleCategories)
	app.Get("/api/export", s.handleExport)
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": version,
	})
}

type statementResponse struct {
	Success      bool                 `json:"success"`
	Error        string               `json:"error,omitempty"`
	Transactions []models.Transaction `json:"transactions"`
	Totals       models.Totals        `json:"totals"`
	Skipped      []models.Skipped     `json:"skipped,omitempty"`
}

// handleUpload rebuilds the ledger from an uploaded statement. The body
// carries either a multipart PDF under "file" or client-side extracted
// page text under "extractedText" (pages joined by the page-break
// marker).
func (s *Server) handleUpload(c *fiber.Ctx) error {
	pages, err := s.statementPages(c)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(errorBody(err.Error()))
	}
	if len(pages) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody("nenhum arquivo enviado; use o campo 'file' ou 'extractedText'"))
	}

	res := s.parser.Parse(pages)
	s.ledger.Replace(res.Transactions)

	s.log.Info().
		Int("pages", len(pages)).
		Int("transactions", len(res.Transactions)).
		Int("skipped", len(res.Skipped)).
		Msg("statement processed")

	txns := res.Transactions
	if txns == nil {
		// nil marshals to JSON null, not []
		txns = []models.Transaction{}
	}
	return c.JSON(statementResponse{
		Success:      true,
		Transactions: txns,
		Totals:       ledger.Aggregate(txns),
		Skipped:      res.Skipped,
	})
}

// statementPages resolves the uploaded statement into ordered page
// texts. Page order is preserved end to end: transaction chronology
// depends on it.
func (s *Server) statementPages(c *fiber.Ctx) ([]string, error) {
	if extracted := c.FormValue("extractedText"); extracted != "" {
		var pages []string
		for _, page := range strings.Split(extracted, pageBreakMarker) {
			if page = strings.TrimSpace(page); page != "" {
				pages = append(pages, page)
			}
		}
		return pages, nil
	}

	fh, err := c.FormFile("file")
	if err != nil {
		return nil, nil
	}
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
		return nil, fmt.Errorf("apenas arquivos PDF são aceitos")
	}

	tmp, err := os.CreateTemp("", "extrato-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("criando arquivo temporário: %w", err)
	}
	defer os.Remove(tmp.Name())
	tmp.Close()

	if err := c.SaveFile(fh, tmp.Name()); err != nil {
		return nil, fmt.Errorf("salvando upload: %w", err)
	}
	return extractor.ExtractText(tmp.Name())
}

func (s *Server) handleClear(c *fiber.Ctx) error {
	s.ledger.Clear()
	return c.JSON(fiber.Map{"success": true})
}

func (s *Server) handleTransactions(c *fiber.Ctx) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
	}

	txns := s.ledger.Filter(criteria)
	return c.JSON(statementResponse{
		Success:      true,
		Transactions: txns,
		Totals:       ledger.Aggregate(txns),
	})
}

func (s *Server) handleCategories(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"categories": s.cats})
}

// handleExport streams a PDF or CSV artifact of the (filtered) ledger.
// Search and category narrowing happen against the ledger; the renderer
// applies the type and date-range options itself.
func (s *Server) handleExport(c *fiber.Ctx) error {
	criteria, err := criteriaFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(err.Error()))
	}

	opts := report.Options{
		Title:    c.Query("title"),
		Filename: c.Query("filename"),
		Type:     criteria.Type,
		Range:    criteria.Range,
	}
	txns := s.ledger.Filter(models.FilterCriteria{
		Search:   criteria.Search,
		Category: criteria.Category,
	})

	var buf bytes.Buffer
	var contentType, filename string

	switch format := c.Query("format", "pdf"); format {
	case "pdf":
		err = report.RenderPDF(txns, opts, &buf)
		contentType = "application/pdf"
		filename = opts.FileFor(".pdf")
	case "csv":
		err = report.RenderDelimited(txns, opts, &buf)
		contentType = "text/csv; charset=utf-8"
		filename = opts.FileFor(".csv")
	default:
		return c.Status(fiber.StatusBadRequest).JSON(errorBody(fmt.Sprintf("formato desconhecido %q; use pdf ou csv", format)))
	}

	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, report.ErrNoTransactions) {
			status = fiber.StatusUnprocessableEntity
		}
		return c.Status(status).JSON(errorBody(err.Error()))
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

// criteriaFromQuery reads search/category/type/from/to query params.
// from and to are DD/MM/YYYY; a range needs both ends.
func criteriaFromQuery(c *fiber.Ctx) (models.FilterCriteria, error) {
	criteria := models.FilterCriteria{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Type:     models.FilterAll,
	}

	switch t := c.Query("type", "all"); models.TypeFilter(t) {
	case models.FilterAll, models.FilterCredit, models.FilterDebit:
		criteria.Type = models.TypeFilter(t)
	default:
		return criteria, fmt.Errorf("tipo desconhecido %q; use entrada, saida ou all", t)
	}

	from, to := c.Query("from"), c.Query("to")
	if from != "" || to != "" {
		if from == "" || to == "" {
			return criteria, fmt.Errorf("período requer 'from' e 'to' (DD/MM/AAAA)")
		}
		start, err := parser.ParseDate(from)
		if err != nil {
			return criteria, fmt.Errorf("data inicial inválida %q", from)
		}
		end, err := parser.ParseDate(to)
		if err != nil {
			return criteria, fmt.Errorf("data final inválida %q", to)
		}
		criteria.Range = &models.DateRange{Start: start, End: end}
	}

	return criteria, nil
}

func errorBody(msg string) statementResponse {
	return statementResponse{Success: false, Error: msg, Transactions: []models.Transaction{}}
}
